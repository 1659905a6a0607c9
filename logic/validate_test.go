/* validate_test.go
 * Contains unit tests for validate.go
 * Authors: Zachary Bower
 */

package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastman-game/store"
)

var testNow = time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)

func alive(userID string, lives int) store.Participant {
	return store.Participant{UserID: userID, DisplayName: userID, Lives: lives}
}

func TestValidatePick_Success(t *testing.T) {
	deadline := testNow.Add(time.Hour)
	err := ValidatePick(alive("user123", 2), 3, "Arsenal", []store.Pick{
		{Round: 1, TeamPicked: "Chelsea"},
		{Round: 2, TeamPicked: "Liverpool"},
	}, ValidateOptions{Now: testNow, Deadline: &deadline})
	assert.NoError(t, err)
}

func TestValidatePick_DeadlinePassed(t *testing.T) {
	deadline := testNow.Add(-time.Minute)
	err := ValidatePick(alive("user123", 2), 1, "Arsenal", nil, ValidateOptions{Now: testNow, Deadline: &deadline})
	require.Error(t, err)
	assert.IsType(t, DeadlinePassedError{}, err)
}

func TestValidatePick_DeadlineExactlyNow(t *testing.T) {
	// now >= deadline locks the round, so a pick at the exact deadline instant is rejected
	deadline := testNow
	err := ValidatePick(alive("user123", 2), 1, "Arsenal", nil, ValidateOptions{Now: testNow, Deadline: &deadline})
	assert.IsType(t, DeadlinePassedError{}, err)
}

func TestValidatePick_NoDeadlineComputed(t *testing.T) {
	// A round with no computable deadline never rejects on timing
	err := ValidatePick(alive("user123", 2), 1, "Arsenal", nil, ValidateOptions{Now: testNow})
	assert.NoError(t, err)
}

func TestValidatePick_EliminatedParticipant(t *testing.T) {
	deadline := testNow.Add(time.Hour)
	participant := store.Participant{UserID: "user123", Lives: 0, IsEliminated: true}
	err := ValidatePick(participant, 1, "Arsenal", nil, ValidateOptions{Now: testNow, Deadline: &deadline})
	require.Error(t, err)
	assert.IsType(t, EliminatedParticipantError{}, err)
}

func TestValidatePick_ZeroLivesWithoutFlag(t *testing.T) {
	// lives == 0 rejects even if the eliminated flag has not been written yet
	err := ValidatePick(alive("user123", 0), 1, "Arsenal", nil, ValidateOptions{Now: testNow, SkipDeadline: true})
	assert.IsType(t, EliminatedParticipantError{}, err)
}

func TestValidatePick_DuplicatePick(t *testing.T) {
	deadline := testNow.Add(time.Hour)
	existing := []store.Pick{{Round: 3, TeamPicked: "Chelsea"}}
	err := ValidatePick(alive("user123", 2), 3, "Arsenal", existing, ValidateOptions{Now: testNow, Deadline: &deadline})
	require.Error(t, err)
	assert.IsType(t, DuplicatePickError{}, err)
}

func TestValidatePick_TeamAlreadyUsed(t *testing.T) {
	deadline := testNow.Add(time.Hour)
	existing := []store.Pick{{Round: 1, TeamPicked: "Arsenal"}}
	err := ValidatePick(alive("user123", 2), 3, "Arsenal", existing, ValidateOptions{Now: testNow, Deadline: &deadline})
	require.Error(t, err)
	assert.IsType(t, TeamAlreadyUsedError{}, err)
}

func TestValidatePick_TeamUsedInLaterRound(t *testing.T) {
	// The reuse check covers every recorded round, including ones after the round being picked
	deadline := testNow.Add(time.Hour)
	existing := []store.Pick{{Round: 5, TeamPicked: "Arsenal"}}
	err := ValidatePick(alive("user123", 2), 3, "Arsenal", existing, ValidateOptions{Now: testNow, Deadline: &deadline})
	assert.IsType(t, TeamAlreadyUsedError{}, err)
}

func TestValidatePick_CheckOrder(t *testing.T) {
	// Deadline beats elimination beats duplicate beats reuse; the first failure wins
	deadline := testNow.Add(-time.Minute)
	participant := store.Participant{UserID: "user123", Lives: 0, IsEliminated: true}
	existing := []store.Pick{{Round: 3, TeamPicked: "Arsenal"}}

	err := ValidatePick(participant, 3, "Arsenal", existing, ValidateOptions{Now: testNow, Deadline: &deadline})
	assert.IsType(t, DeadlinePassedError{}, err)

	err = ValidatePick(participant, 3, "Arsenal", existing, ValidateOptions{Now: testNow, Deadline: &deadline, SkipDeadline: true})
	assert.IsType(t, EliminatedParticipantError{}, err)
}

func TestValidatePick_SkipDeadlineStillEnforcesRest(t *testing.T) {
	// The auto-pick path bypasses timing but keeps the other checks
	deadline := testNow.Add(-time.Minute)
	existing := []store.Pick{{Round: 1, TeamPicked: "Chelsea"}}

	err := ValidatePick(alive("user123", 2), 1, "Arsenal", existing, ValidateOptions{Now: testNow, Deadline: &deadline, SkipDeadline: true})
	assert.IsType(t, DuplicatePickError{}, err)

	err = ValidatePick(alive("user123", 2), 2, "Chelsea", existing, ValidateOptions{Now: testNow, Deadline: &deadline, SkipDeadline: true})
	assert.IsType(t, TeamAlreadyUsedError{}, err)
}

func TestValidatePick_SkipTeamReuse(t *testing.T) {
	existing := []store.Pick{{Round: 1, TeamPicked: "Chelsea"}}
	err := ValidatePick(alive("user123", 2), 2, "Chelsea", existing, ValidateOptions{Now: testNow, SkipDeadline: true, SkipTeamReuse: true})
	assert.NoError(t, err)
}
