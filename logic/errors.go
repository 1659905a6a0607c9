/* errors.go
 * Contains the typed validation errors returned by the pick eligibility validator. These are
 * user-visible rejections: they are returned to the caller and never retried
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"time"
)

// DeadlinePassedError is returned when a manual pick arrives after the round's deadline
type DeadlinePassedError struct {
	Round    int
	Deadline time.Time
}

func (e DeadlinePassedError) Error() string {
	return fmt.Sprintf("the deadline for round %d passed at %s", e.Round, e.Deadline.Format(time.RFC3339))
}

// EliminatedParticipantError is returned when a participant with no lives left tries to pick
type EliminatedParticipantError struct {
	ParticipantID string
}

func (e EliminatedParticipantError) Error() string {
	return fmt.Sprintf("participant %s has been eliminated and cannot pick", e.ParticipantID)
}

// DuplicatePickError is returned when a pick already exists for the (participant, round) pair
type DuplicatePickError struct {
	ParticipantID string
	Round         int
}

func (e DuplicatePickError) Error() string {
	return fmt.Sprintf("participant %s already has a pick for round %d", e.ParticipantID, e.Round)
}

// TeamAlreadyUsedError is returned when a participant tries to pick a team they have
// already used in any other round of the edition
type TeamAlreadyUsedError struct {
	Team  string
	Round int
}

func (e TeamAlreadyUsedError) Error() string {
	return fmt.Sprintf("'%s' was already picked in round %d and cannot be used again", e.Team, e.Round)
}
