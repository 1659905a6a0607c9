/* results.go
 * Contains the round result processor: when a fixture finishes, every pick on either of its teams
 * gets a win/loss/draw result, and each affected participant's lives are recomputed from their
 * full history. Recomputing rather than decrementing makes reprocessing a finished fixture a
 * no-op instead of a double hit
 * Authors: Zachary Bower
 */

package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lastman-game/logic"
	"lastman-game/store"
)

// ProcessFixtureResult applies one finished fixture to the picks that rode on it.
// Preconditions: Receives a Fixture; only fixtures with status finished and both scores present
// are processed, anything else is rejected
// Postconditions: Every matching pick has its result and livesAfterPick set and its owner's lives
// and elimination state refreshed. A failure on one pick is logged and does not block the others
func (e *Engine) ProcessFixtureResult(ctx context.Context, fixture store.Fixture) error {
	if fixture.Status != store.FixtureFinished {
		return fmt.Errorf("fixture %s vs %s has not finished", fixture.HomeTeam, fixture.AwayTeam)
	}
	if fixture.HomeScore == nil || fixture.AwayScore == nil {
		return fmt.Errorf("fixture %s vs %s is finished but has no scores", fixture.HomeTeam, fixture.AwayTeam)
	}

	picks, err := e.store.GetPicksForRound(ctx, fixture.Round)
	if err != nil {
		return fmt.Errorf("failed to load picks for round %d: %w", fixture.Round, err)
	}

	var failures int
	for _, pick := range picks {
		if pick.TeamPicked != fixture.HomeTeam && pick.TeamPicked != fixture.AwayTeam {
			continue
		}
		if err := e.settlePick(ctx, pick, fixture); err != nil {
			failures++
			log.Error().
				Err(err).
				Str("participant", pick.ParticipantID).
				Int("round", pick.Round).
				Str("instance", e.instanceID).
				Msg("failed to settle pick")
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of this fixture's picks failed to settle", failures)
	}
	return nil
}

// ProcessRoundResults applies every finished fixture in a round. Convenient for reconciling a
// whole round after results arrive in bulk from the fixture feed
func (e *Engine) ProcessRoundResults(ctx context.Context, round int) error {
	fixtures, err := e.store.GetFinishedFixtures(ctx, round)
	if err != nil {
		return fmt.Errorf("failed to load finished fixtures for round %d: %w", round, err)
	}

	var failures int
	for _, fixture := range fixtures {
		if fixture.HomeScore == nil || fixture.AwayScore == nil {
			continue
		}
		if err := e.ProcessFixtureResult(ctx, fixture); err != nil {
			failures++
			log.Error().
				Err(err).
				Int("round", round).
				Str("instance", e.instanceID).
				Msg("failed to process fixture result")
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d fixtures in round %d failed to process", failures, round)
	}
	return nil
}

// settlePick writes one pick's result and refreshes its owner's standing
func (e *Engine) settlePick(ctx context.Context, pick store.Pick, fixture store.Fixture) error {
	result := logic.DeriveResult(pick.TeamPicked, fixture)

	// Lives are recomputed over the participant's entire history with this pick's result applied,
	// so running this twice for the same fixture produces identical values
	history, err := e.store.GetParticipantPicks(ctx, pick.ParticipantID)
	if err != nil {
		return fmt.Errorf("failed to load pick history: %w", err)
	}
	for i := range history {
		if history[i].Round == pick.Round {
			history[i].Result = result
		}
	}
	lives := logic.ComputeLives(history, e.cfg.StartingLives)

	if err := e.store.UpdatePickResult(ctx, pick.ParticipantID, pick.Round, result, lives); err != nil {
		return err
	}

	participant, err := e.store.GetParticipant(ctx, pick.ParticipantID)
	if err != nil {
		return fmt.Errorf("failed to load participant: %w", err)
	}

	eliminated := lives == 0
	var eliminationRound *int
	if eliminated && !participant.IsEliminated {
		// Record the round that knocked them out, first time only
		round := pick.Round
		eliminationRound = &round
		log.Info().
			Str("participant", pick.ParticipantID).
			Int("round", pick.Round).
			Str("instance", e.instanceID).
			Msg("participant eliminated")
	}
	// Elimination never reverts, even if a reprocessed history somehow yields lives again
	if participant.IsEliminated {
		eliminated = true
	}

	return e.store.UpdateParticipantStanding(ctx, pick.ParticipantID, lives, eliminated, eliminationRound)
}
