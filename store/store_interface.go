/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import "context"

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	GetParticipants(ctx context.Context) ([]Participant, error)
	GetActiveParticipants(ctx context.Context) ([]Participant, error)
	GetParticipant(ctx context.Context, userID string) (Participant, error)
	UpdateParticipantStanding(ctx context.Context, userID string, lives int, eliminated bool, eliminationRound *int) error

	GetPick(ctx context.Context, participantID string, round int) (Pick, error)
	GetParticipantPicks(ctx context.Context, participantID string) ([]Pick, error)
	GetPicksForRound(ctx context.Context, round int) ([]Pick, error)
	GetAllPicks(ctx context.Context) ([]Pick, error)
	UpsertPick(ctx context.Context, pick Pick) error
	StorePicksBatch(ctx context.Context, picks []Pick) error
	UpdatePickResult(ctx context.Context, participantID string, round int, result string, livesAfter int) error

	GetFixturesByRound(ctx context.Context, round int) ([]Fixture, error)
	GetFinishedFixtures(ctx context.Context, round int) ([]Fixture, error)
	GetActiveRound(ctx context.Context) (int, error)

	// Getter methods for accessing fields
	GetClubID() string
	GetEditionID() string
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetClubID returns the club (organization) the store is scoped to
func (s *Store) GetClubID() string {
	return s.ClubID
}

// GetEditionID returns the competition edition the store is scoped to
func (s *Store) GetEditionID() string {
	return s.EditionID
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
