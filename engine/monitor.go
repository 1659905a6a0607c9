/* monitor.go
 * Contains the deadline monitor: a periodic check that detects when the active round's deadline
 * has passed, performs the one-way OPEN -> PASSED transition and triggers auto-pick assignment.
 * No error in here may stop the tick loop; every failure is logged and retried on a later tick
 * Authors: Zachary Bower
 */

package engine

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"lastman-game/logic"
)

// RunMonitor checks deadlines immediately, then on every tick of the configured interval until
// the context is cancelled. Stopping the monitor clears its ticker but never resets a round that
// has already passed
func (e *Engine) RunMonitor(ctx context.Context) error {
	log.Info().
		Str("instance", e.instanceID).
		Dur("interval", e.cfg.CheckInterval).
		Msg("deadline monitor started")

	ticker := e.clock.NewTicker(e.cfg.CheckInterval)
	defer ticker.Stop()

	// Immediate check on startup; a deadline may already have passed while no engine was running
	e.CheckDeadlines(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("instance", e.instanceID).Msg("deadline monitor stopped")
			return nil
		case <-ticker.Chan():
			e.CheckDeadlines(ctx)
		}
	}
}

// CheckDeadlines runs a single monitor pass over the active round. Exposed so a single tick can
// be driven directly in tests and by callers that want an on-demand check
func (e *Engine) CheckDeadlines(ctx context.Context) {
	round, err := e.store.GetActiveRound(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug().Str("instance", e.instanceID).Msg("no scheduled fixtures; nothing to monitor")
			return
		}
		log.Error().Err(err).Str("instance", e.instanceID).Msg("failed to determine active round")
		return
	}

	fixtures, err := e.store.GetFixturesByRound(ctx, round)
	if err != nil {
		log.Error().Err(err).Int("round", round).Str("instance", e.instanceID).Msg("failed to load fixtures")
		return
	}
	if len(fixtures) == 0 {
		return
	}

	deadline, malformed, ok := logic.ComputeDeadline(fixtures)
	if len(malformed) > 0 {
		log.Warn().
			Int("round", round).
			Strs("kickoffs", malformed).
			Str("instance", e.instanceID).
			Msg("fixtures with unparseable kickoff times excluded from deadline")
	}
	if !ok {
		// No valid kickoff in the round means no deadline can be computed and no transition happens
		return
	}

	if e.clock.Now().Before(deadline) {
		return
	}

	e.mu.Lock()
	firstTransition := !e.roundPassed[round]
	e.roundPassed[round] = true
	assigned := e.roundAssigned[round]
	e.mu.Unlock()

	if firstTransition {
		log.Info().
			Int("round", round).
			Time("deadline", deadline).
			Str("instance", e.instanceID).
			Msg("round deadline passed")
		e.events.emitRoundStateChanged(round, RoundPassed)
	}

	if assigned {
		return
	}

	created, err := e.AssignAutoPicks(ctx, round)
	if err != nil {
		// The whole round stays unassigned; the next tick retries it
		log.Error().Err(err).Int("round", round).Str("instance", e.instanceID).Msg("auto-pick assignment failed")
		return
	}

	e.mu.Lock()
	e.roundAssigned[round] = true
	e.mu.Unlock()

	e.events.emitPicksAssigned(round, len(created))
	log.Info().
		Int("round", round).
		Int("assigned", len(created)).
		Str("instance", e.instanceID).
		Msg("auto-picks assigned")
}
