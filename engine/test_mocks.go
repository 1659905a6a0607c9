/* test_mocks.go
 * Contains mock structures for testing the engine package
 * Authors: Zachary Bower
 */

package engine

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"lastman-game/store"
)

// MockStore implements the store Interface for testing. A single mutex guards all state so tests
// can drive the engine from a goroutine while asserting from another
type MockStore struct {
	mu sync.Mutex

	// Storage for mock data, keyed the way the real store is
	Participants map[string]store.Participant
	Picks        map[string]store.Pick // key: "participantID/round"
	Fixtures     []store.Fixture

	// Error injection for testing error paths
	GetParticipantsError   error
	GetParticipantError    error
	UpdateStandingError    error
	GetPicksError          error
	UpsertPickError        error
	StorePicksBatchError   error
	UpdatePickResultError  error
	GetFixturesError       error
	GetActiveRoundError    error
	FailStandingUpdatesFor map[string]bool

	// Call counters for assertions
	BatchWrites     int
	StandingUpdates int
}

// NewMockStore creates a new MockStore with empty state
func NewMockStore() *MockStore {
	return &MockStore{
		Participants:           make(map[string]store.Participant),
		Picks:                  make(map[string]store.Pick),
		FailStandingUpdatesFor: make(map[string]bool),
	}
}

func pickMapKey(participantID string, round int) string {
	return fmt.Sprintf("%s/%d", participantID, round)
}

// AddParticipant seeds a participant with the given lives
func (m *MockStore) AddParticipant(userID string, lives int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Participants[userID] = store.Participant{
		UserID:       userID,
		DisplayName:  userID,
		Lives:        lives,
		IsEliminated: lives == 0,
	}
}

// AddPick seeds a pick directly into the mock
func (m *MockStore) AddPick(pick store.Pick) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Picks[pickMapKey(pick.ParticipantID, pick.Round)] = pick
}

func (m *MockStore) GetParticipants(ctx context.Context) ([]store.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetParticipantsError != nil {
		return nil, m.GetParticipantsError
	}
	var results []store.Participant
	for _, participant := range m.Participants {
		results = append(results, participant)
	}
	return results, nil
}

func (m *MockStore) GetActiveParticipants(ctx context.Context) ([]store.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetParticipantsError != nil {
		return nil, m.GetParticipantsError
	}
	var results []store.Participant
	for _, participant := range m.Participants {
		if participant.Lives > 0 {
			results = append(results, participant)
		}
	}
	return results, nil
}

func (m *MockStore) GetParticipant(ctx context.Context, userID string) (store.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetParticipantError != nil {
		return store.Participant{}, m.GetParticipantError
	}
	participant, ok := m.Participants[userID]
	if !ok {
		return store.Participant{}, mongo.ErrNoDocuments
	}
	return participant, nil
}

func (m *MockStore) UpdateParticipantStanding(ctx context.Context, userID string, lives int, eliminated bool, eliminationRound *int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateStandingError != nil {
		return m.UpdateStandingError
	}
	if m.FailStandingUpdatesFor[userID] {
		return fmt.Errorf("injected standing update failure for %s", userID)
	}
	participant, ok := m.Participants[userID]
	if !ok {
		return fmt.Errorf("participant %s not found", userID)
	}
	participant.Lives = lives
	participant.IsEliminated = eliminated
	if eliminationRound != nil {
		participant.EliminationRound = eliminationRound
	}
	m.Participants[userID] = participant
	m.StandingUpdates++
	return nil
}

func (m *MockStore) GetPick(ctx context.Context, participantID string, round int) (store.Pick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPicksError != nil {
		return store.Pick{}, m.GetPicksError
	}
	pick, ok := m.Picks[pickMapKey(participantID, round)]
	if !ok {
		return store.Pick{}, mongo.ErrNoDocuments
	}
	return pick, nil
}

func (m *MockStore) GetParticipantPicks(ctx context.Context, participantID string) ([]store.Pick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPicksError != nil {
		return nil, m.GetPicksError
	}
	var results []store.Pick
	for _, pick := range m.Picks {
		if pick.ParticipantID == participantID {
			results = append(results, pick)
		}
	}
	return results, nil
}

func (m *MockStore) GetPicksForRound(ctx context.Context, round int) ([]store.Pick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPicksError != nil {
		return nil, m.GetPicksError
	}
	var results []store.Pick
	for _, pick := range m.Picks {
		if pick.Round == round {
			results = append(results, pick)
		}
	}
	return results, nil
}

func (m *MockStore) GetAllPicks(ctx context.Context) ([]store.Pick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPicksError != nil {
		return nil, m.GetPicksError
	}
	var results []store.Pick
	for _, pick := range m.Picks {
		results = append(results, pick)
	}
	return results, nil
}

func (m *MockStore) UpsertPick(ctx context.Context, pick store.Pick) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertPickError != nil {
		return m.UpsertPickError
	}
	m.Picks[pickMapKey(pick.ParticipantID, pick.Round)] = pick
	return nil
}

func (m *MockStore) StorePicksBatch(ctx context.Context, picks []store.Pick) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StorePicksBatchError != nil {
		return m.StorePicksBatchError
	}
	for _, pick := range picks {
		m.Picks[pickMapKey(pick.ParticipantID, pick.Round)] = pick
	}
	m.BatchWrites++
	return nil
}

func (m *MockStore) UpdatePickResult(ctx context.Context, participantID string, round int, result string, livesAfter int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdatePickResultError != nil {
		return m.UpdatePickResultError
	}
	key := pickMapKey(participantID, round)
	pick, ok := m.Picks[key]
	if !ok {
		return fmt.Errorf("pick %s not found", key)
	}
	pick.Result = result
	pick.LivesAfterPick = &livesAfter
	m.Picks[key] = pick
	return nil
}

func (m *MockStore) GetFixturesByRound(ctx context.Context, round int) ([]store.Fixture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFixturesError != nil {
		return nil, m.GetFixturesError
	}
	var results []store.Fixture
	for _, fixture := range m.Fixtures {
		if fixture.Round == round {
			results = append(results, fixture)
		}
	}
	return results, nil
}

func (m *MockStore) GetFinishedFixtures(ctx context.Context, round int) ([]store.Fixture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFixturesError != nil {
		return nil, m.GetFixturesError
	}
	var results []store.Fixture
	for _, fixture := range m.Fixtures {
		if fixture.Round == round && fixture.Status == store.FixtureFinished {
			results = append(results, fixture)
		}
	}
	return results, nil
}

func (m *MockStore) GetActiveRound(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetActiveRoundError != nil {
		return 0, m.GetActiveRoundError
	}
	active := 0
	for _, fixture := range m.Fixtures {
		if fixture.Status != store.FixtureScheduled {
			continue
		}
		if active == 0 || fixture.Round < active {
			active = fixture.Round
		}
	}
	if active == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return active, nil
}

// Implement getter methods for the store Interface
func (m *MockStore) GetClubID() string {
	return "test_club"
}

func (m *MockStore) GetEditionID() string {
	return "test_edition"
}

// mockClient implements minimal client interface
type mockClient struct{}

func (mc *mockClient) Disconnect(ctx context.Context) error {
	return nil
}

func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// Ensure MockStore implements the store Interface
var _ store.Interface = (*MockStore)(nil)
