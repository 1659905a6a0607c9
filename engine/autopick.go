/* autopick.go
 * Contains the auto-pick assigner: once a round's deadline has passed, every participant who is
 * still alive and has no pick for the round gets one assigned. All resulting picks are written in
 * a single batch so a failure assigns nothing and the round is retried whole
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

// AssignAutoPicks fills in picks for participants who missed the deadline for a round.
// Preconditions: Receives the round number; the round's deadline is expected to have passed
// Postconditions: Returns the picks that were written. An error from the batch write means none
// of them are considered assigned
func (e *Engine) AssignAutoPicks(ctx context.Context, round int) ([]store.Pick, error) {
	fixtures, err := e.store.GetFixturesByRound(ctx, round)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures for round %d: %w", round, err)
	}
	teams := logic.AvailableTeams(fixtures)
	if len(teams) == 0 {
		return nil, fmt.Errorf("no teams available for round %d", round)
	}

	participants, err := e.store.GetActiveParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active participants: %w", err)
	}

	// Re-check existing picks immediately before assignment. Another engine instance may have
	// assigned this round already; anyone with a pick is skipped
	roundPicks, err := e.store.GetPicksForRound(ctx, round)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for round %d: %w", round, err)
	}
	hasPick := make(map[string]bool, len(roundPicks))
	for _, pick := range roundPicks {
		hasPick[pick.ParticipantID] = true
	}

	var batch []store.Pick
	for _, participant := range participants {
		if hasPick[participant.UserID] {
			continue
		}

		history, err := e.store.GetParticipantPicks(ctx, participant.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load pick history for %s: %w", participant.UserID, err)
		}

		previousTeam := ""
		usedTeams := make(map[string]bool, len(history))
		for _, pick := range history {
			usedTeams[pick.TeamPicked] = true
			if pick.Round == round-1 {
				previousTeam = pick.TeamPicked
			}
		}

		team, err := logic.SelectAutoPickTeam(round, previousTeam, teams, usedTeams, e.cfg.ExcludeUsedTeams, e.rng)
		if err != nil {
			log.Warn().
				Err(err).
				Str("participant", participant.UserID).
				Int("round", round).
				Str("instance", e.instanceID).
				Msg("could not select auto-pick team")
			continue
		}

		// Guard the write with the same validator as manual picks. The deadline check is skipped
		// because auto-picks happen precisely after the deadline; the team-reuse check follows the
		// ExcludeUsedTeams setting, matching what the selection above was allowed to do
		opts := logic.ValidateOptions{
			Now:           e.clock.Now(),
			SkipDeadline:  true,
			SkipTeamReuse: !e.cfg.ExcludeUsedTeams,
		}
		if err := logic.ValidatePick(participant, round, team, history, opts); err != nil {
			log.Warn().
				Err(err).
				Str("participant", participant.UserID).
				Int("round", round).
				Str("instance", e.instanceID).
				Msg("auto-pick rejected by validator")
			continue
		}

		batch = append(batch, store.Pick{
			ParticipantID: participant.UserID,
			Round:         round,
			TeamPicked:    team,
			IsAutoPick:    true,
			SavedAt:       e.clock.Now(),
		})
	}

	if len(batch) == 0 {
		return nil, nil
	}

	if err := e.store.StorePicksBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("batch write for round %d failed: %w", round, err)
	}
	return batch, nil
}
