/* fixtures.go
 * Contains the methods for reading the fixtures collection. Fixtures are owned by the external
 * fixture feed; this engine only consumes them, so there are no write methods here
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetFixturesByRound does a DB lookup and returns all fixtures for a round
// Preconditions: Receives an int containing the round number
// Postconditions: Returns a slice of Fixtures, or an error if it occurs
func (s *Store) GetFixturesByRound(ctx context.Context, round int) ([]Fixture, error) {
	var results []Fixture
	err := s.withRetry(ctx, "GetFixturesByRound", func() error {
		cursor, err := s.Collections.Fixtures.Find(ctx, s.scopedFilter(bson.M{"round": round}))
		if err != nil {
			return fmt.Errorf("error fetching fixtures from db: %w", err)
		}
		results = nil
		if err = cursor.All(ctx, &results); err != nil {
			return fmt.Errorf("error unpacking cursor into slice of fixtures: %w", err)
		}
		return nil
	})
	return results, err
}

// GetFinishedFixtures returns the fixtures in a round whose status is finished.
// Result processing only looks at these
func (s *Store) GetFinishedFixtures(ctx context.Context, round int) ([]Fixture, error) {
	var results []Fixture
	err := s.withRetry(ctx, "GetFinishedFixtures", func() error {
		filter := s.scopedFilter(bson.M{"round": round, "status": FixtureFinished})
		cursor, err := s.Collections.Fixtures.Find(ctx, filter)
		if err != nil {
			return fmt.Errorf("error fetching finished fixtures from db: %w", err)
		}
		results = nil
		if err = cursor.All(ctx, &results); err != nil {
			return fmt.Errorf("error unpacking cursor into slice of fixtures: %w", err)
		}
		return nil
	})
	return results, err
}

// GetActiveRound finds the lowest round number that still has a scheduled fixture. This is
// the round the deadline monitor watches. Returns mongo.ErrNoDocuments when every fixture
// in the edition has finished (or none exist)
func (s *Store) GetActiveRound(ctx context.Context) (int, error) {
	var fixture Fixture
	err := s.withRetry(ctx, "GetActiveRound", func() error {
		filter := s.scopedFilter(bson.M{"status": FixtureScheduled})
		opts := options.FindOne().SetSort(bson.D{{Key: "round", Value: 1}})
		err := s.Collections.Fixtures.FindOne(ctx, filter, opts).Decode(&fixture)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return err
			}
			return fmt.Errorf("error fetching active round from db: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return fixture.Round, nil
}
