/* validate.go
 * Contains the pick eligibility validator. Every pick write, manual or automatic, is gated by
 * ValidatePick; the auto-pick path sets SkipDeadline because auto-picks only happen once the
 * deadline has already passed
 * Authors: Zachary Bower
 */

package logic

import (
	"time"

	"lastman-game/store"
)

// ValidateOptions carries the inputs the validator needs beyond the pick itself.
// Deadline is nil when no deadline could be computed for the round; in that case the
// deadline check is a no-op, mirroring the monitor performing no transition
type ValidateOptions struct {
	Now      time.Time
	Deadline *time.Time
	// SkipDeadline is set on the auto-pick path: auto-picks exist precisely because the
	// deadline has passed
	SkipDeadline bool
	// SkipTeamReuse is set when the engine is configured to preserve the historic auto-pick
	// fallback behavior, which may assign an already-used team
	SkipTeamReuse bool
}

// ValidatePick enforces the game's invariants before a pick is accepted. Checks run in order and
// short-circuit on the first failure:
//  1. the round's deadline has not passed
//  2. the participant has not been eliminated
//  3. no pick already exists for (participant, round)
//  4. the team has not been used by this participant in any other round
//
// Preconditions: existingPicks is the participant's full pick history for the edition
// Postconditions: Returns nil when the pick may proceed, or one of the typed errors in errors.go
func ValidatePick(participant store.Participant, round int, teamPicked string, existingPicks []store.Pick, opts ValidateOptions) error {
	if !opts.SkipDeadline && opts.Deadline != nil && !opts.Now.Before(*opts.Deadline) {
		return DeadlinePassedError{Round: round, Deadline: *opts.Deadline}
	}

	if participant.IsEliminated || participant.Lives <= 0 {
		return EliminatedParticipantError{ParticipantID: participant.UserID}
	}

	for _, pick := range existingPicks {
		if pick.Round == round {
			return DuplicatePickError{ParticipantID: participant.UserID, Round: round}
		}
	}

	if !opts.SkipTeamReuse {
		for _, pick := range existingPicks {
			if pick.TeamPicked == teamPicked {
				return TeamAlreadyUsedError{Team: teamPicked, Round: pick.Round}
			}
		}
	}

	return nil
}
