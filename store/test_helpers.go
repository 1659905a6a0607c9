/* test_helpers.go
 * Contains test helper functions for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"time"
)

// NewTestStore creates a Store instance for testing purposes.
// This can be used with a real test database or in-memory MongoDB.
func NewTestStore(ctx context.Context, dbName string, mongoURI string) (*Store, error) {
	return NewStore(ctx, dbName, mongoURI, "test_club", "test_edition")
}

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function.
func CreateTestStore(ctx context.Context, mongoURI string) (*Store, func(), error) {
	store, err := NewTestStore(ctx, "test_lastman", mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			// Drop test database
			store.Database.Drop(context.TODO())
			// Disconnect client
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateSampleFixtures creates sample Fixture data for testing.
func CreateSampleFixtures(round int) []Fixture {
	return []Fixture{
		{
			ClubID:      "test_club",
			EditionID:   "test_edition",
			Round:       round,
			HomeTeam:    "Chelsea",
			AwayTeam:    "Arsenal",
			KickoffTime: "2025-08-16T15:00:00Z",
			Status:      FixtureScheduled,
		},
		{
			ClubID:      "test_club",
			EditionID:   "test_edition",
			Round:       round,
			HomeTeam:    "Liverpool",
			AwayTeam:    "Everton",
			KickoffTime: "2025-08-16T12:30:00Z",
			Status:      FixtureScheduled,
		},
	}
}

// CreateSamplePick creates sample Pick data for testing.
func CreateSamplePick(participantID string, round int, team string) Pick {
	return Pick{
		ClubID:        "test_club",
		EditionID:     "test_edition",
		ParticipantID: participantID,
		Round:         round,
		TeamPicked:    team,
		SavedAt:       time.Date(2025, 8, 15, 18, 0, 0, 0, time.UTC),
	}
}
