/* participants.go
 * Contains the methods for interacting with the participants collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetParticipants does a DB lookup and returns every participant in this edition
// Preconditions: none
// Postconditions: Returns a slice of Participants, or an error if it occurs
func (s *Store) GetParticipants(ctx context.Context) ([]Participant, error) {
	var results []Participant
	err := s.withRetry(ctx, "GetParticipants", func() error {
		cursor, err := s.Collections.Participants.Find(ctx, s.scopedFilter(bson.M{}))
		if err != nil {
			return fmt.Errorf("error fetching participants from db: %w", err)
		}
		results = nil
		if err = cursor.All(ctx, &results); err != nil {
			return fmt.Errorf("error unpacking cursor into slice of participants: %w", err)
		}
		return nil
	})
	return results, err
}

// GetActiveParticipants returns the participants that are still in the game (lives > 0).
// Used by the auto-pick assigner, which must never assign picks to eliminated players
func (s *Store) GetActiveParticipants(ctx context.Context) ([]Participant, error) {
	var results []Participant
	err := s.withRetry(ctx, "GetActiveParticipants", func() error {
		filter := s.scopedFilter(bson.M{"lives": bson.M{"$gt": 0}})
		cursor, err := s.Collections.Participants.Find(ctx, filter)
		if err != nil {
			return fmt.Errorf("error fetching active participants from db: %w", err)
		}
		results = nil
		if err = cursor.All(ctx, &results); err != nil {
			return fmt.Errorf("error unpacking cursor into slice of participants: %w", err)
		}
		return nil
	})
	return results, err
}

// GetParticipant fetches a single participant by their user id
// Preconditions: Receives a string containing the userID
// Postconditions: Returns the Participant if it exists, mongo.ErrNoDocuments if not, or an error
func (s *Store) GetParticipant(ctx context.Context, userID string) (Participant, error) {
	var result Participant
	err := s.withRetry(ctx, "GetParticipant", func() error {
		err := s.Collections.Participants.FindOne(ctx, s.scopedFilter(bson.M{"userid": userID})).Decode(&result)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return err
			}
			return fmt.Errorf("error fetching participant from db: %w", err)
		}
		return nil
	})
	if err != nil {
		return Participant{}, err
	}
	return result, nil
}

// UpdateParticipantStanding writes a participant's recomputed lives and elimination state.
// eliminationRound is only set the first time a participant goes out; callers pass nil to
// leave any previously recorded value untouched
func (s *Store) UpdateParticipantStanding(ctx context.Context, userID string, lives int, eliminated bool, eliminationRound *int) error {
	set := bson.M{
		"lives":        lives,
		"iseliminated": eliminated,
	}
	if eliminationRound != nil {
		set["eliminationround"] = *eliminationRound
	}

	return s.withRetry(ctx, "UpdateParticipantStanding", func() error {
		filter := s.scopedFilter(bson.M{"userid": userID})
		_, err := s.Collections.Participants.UpdateOne(ctx, filter, bson.M{"$set": set})
		if err != nil {
			return fmt.Errorf("failed to update participant standing: %w", err)
		}
		return nil
	})
}
