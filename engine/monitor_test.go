/* monitor_test.go
 * Contains unit tests for the deadline monitor
 * Authors: Zachary Bower
 */

package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastman-game/store"
)

// eventRecorder captures emitted events for assertions
type eventRecorder struct {
	stateChanges  []string
	picksAssigned []int
}

func recordEvents(eng *Engine) *eventRecorder {
	rec := &eventRecorder{}
	eng.Events().OnRoundStateChanged(func(round int, state string) {
		rec.stateChanges = append(rec.stateChanges, state)
	})
	eng.Events().OnPicksAssigned(func(round, count int) {
		rec.picksAssigned = append(rec.picksAssigned, count)
	})
	return rec
}

func TestCheckDeadlines_BeforeDeadlineDoesNothing(t *testing.T) {
	mock := NewMockStore()
	mock.AddParticipant("alice", 2)
	seedRoundOneFixtures(mock)
	eng, _ := newTestEngine(mock, Config{})
	rec := recordEvents(eng)

	// Clock is at 10:00, earliest kickoff is 12:30
	eng.CheckDeadlines(context.Background())

	assert.Empty(t, rec.stateChanges)
	assert.Empty(t, rec.picksAssigned)
	assert.Empty(t, mock.Picks)
}

func TestCheckDeadlines_TransitionAndAssignmentAfterDeadline(t *testing.T) {
	mock := NewMockStore()
	mock.AddParticipant("alice", 2)
	mock.AddParticipant("bob", 2)
	seedRoundOneFixtures(mock)
	mock.AddPick(store.Pick{ParticipantID: "alice", Round: 1, TeamPicked: "Chelsea"})
	eng, clock := newTestEngine(mock, Config{})
	rec := recordEvents(eng)

	clock.Advance(3 * time.Hour)
	eng.CheckDeadlines(context.Background())

	assert.Equal(t, []string{RoundPassed}, rec.stateChanges)
	assert.Equal(t, []int{1}, rec.picksAssigned)

	pick, err := mock.GetPick(context.Background(), "bob", 1)
	require.NoError(t, err)
	assert.True(t, pick.IsAutoPick)
}

func TestCheckDeadlines_SecondPassIsIdempotent(t *testing.T) {
	mock := NewMockStore()
	mock.AddParticipant("bob", 2)
	seedRoundOneFixtures(mock)
	eng, clock := newTestEngine(mock, Config{})
	rec := recordEvents(eng)

	clock.Advance(3 * time.Hour)
	eng.CheckDeadlines(context.Background())
	eng.CheckDeadlines(context.Background())
	eng.CheckDeadlines(context.Background())

	// One transition, one assignment, one batch write, no matter how many ticks follow
	assert.Equal(t, []string{RoundPassed}, rec.stateChanges)
	assert.Len(t, rec.picksAssigned, 1)
	assert.Equal(t, 1, mock.BatchWrites)
}

func TestCheckDeadlines_FailedAssignmentRetriesNextTick(t *testing.T) {
	mock := NewMockStore()
	mock.AddParticipant("bob", 2)
	seedRoundOneFixtures(mock)
	mock.StorePicksBatchError = errors.New("primary stepped down")
	eng, clock := newTestEngine(mock, Config{})
	rec := recordEvents(eng)

	clock.Advance(3 * time.Hour)
	eng.CheckDeadlines(context.Background())

	// The transition happened but nothing was assigned
	assert.Equal(t, []string{RoundPassed}, rec.stateChanges)
	assert.Empty(t, rec.picksAssigned)
	assert.Empty(t, mock.Picks)

	// Store recovers; the next tick completes the round without re-emitting the transition
	mock.StorePicksBatchError = nil
	eng.CheckDeadlines(context.Background())

	assert.Equal(t, []string{RoundPassed}, rec.stateChanges)
	assert.Equal(t, []int{1}, rec.picksAssigned)
	_, err := mock.GetPick(context.Background(), "bob", 1)
	assert.NoError(t, err)
}

func TestCheckDeadlines_NoScheduledFixtures(t *testing.T) {
	mock := NewMockStore()
	mock.AddParticipant("alice", 2)
	eng, _ := newTestEngine(mock, Config{})
	rec := recordEvents(eng)

	eng.CheckDeadlines(context.Background())

	assert.Empty(t, rec.stateChanges)
	assert.Empty(t, mock.Picks)
}

func TestCheckDeadlines_AllKickoffsMalformed(t *testing.T) {
	// No computable deadline means the round can never transition from this data
	mock := NewMockStore()
	mock.AddParticipant("alice", 2)
	mock.Fixtures = []store.Fixture{
		{Round: 1, HomeTeam: "Chelsea", AwayTeam: "Arsenal", KickoffTime: "16/08/2025", Status: store.FixtureScheduled},
	}
	eng, clock := newTestEngine(mock, Config{})
	rec := recordEvents(eng)

	clock.Advance(24 * time.Hour)
	eng.CheckDeadlines(context.Background())

	assert.Empty(t, rec.stateChanges)
	assert.Empty(t, mock.Picks)
}

func TestCheckDeadlines_StoreErrorLoggedNotFatal(t *testing.T) {
	mock := NewMockStore()
	mock.GetActiveRoundError = errors.New("connection reset")
	eng, _ := newTestEngine(mock, Config{})
	rec := recordEvents(eng)

	// Must not panic or emit anything
	eng.CheckDeadlines(context.Background())
	assert.Empty(t, rec.stateChanges)
}

func TestRunMonitor_StopsOnContextCancel(t *testing.T) {
	mock := NewMockStore()
	seedRoundOneFixtures(mock)
	eng, _ := newTestEngine(mock, Config{CheckInterval: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- eng.RunMonitor(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("monitor did not stop after context cancellation")
	}
}

func TestRunMonitor_ChecksOnEachTick(t *testing.T) {
	mock := NewMockStore()
	mock.AddParticipant("bob", 2)
	seedRoundOneFixtures(mock)
	eng, clock := newTestEngine(mock, Config{CheckInterval: time.Minute})
	rec := recordEvents(eng)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- eng.RunMonitor(ctx)
	}()

	// Wait for the startup check and the ticker registration before moving time
	clock.BlockUntil(1)

	// Move past the 12:30 deadline, then deliver a tick
	clock.Advance(3 * time.Hour)

	require.Eventually(t, func() bool {
		_, err := mock.GetPick(context.Background(), "bob", 1)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, []string{RoundPassed}, rec.stateChanges)
}
