/* picks.go
 * Contains the methods for interacting with the picks collection. All pick writes are upserts keyed
 * on (participantid, round): the store gives us no conditional read-then-write primitive, so several
 * engine instances racing on the same round must converge on one document per key rather than insert
 * duplicates
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// pickKey is the natural idempotency key for a pick write
func (s *Store) pickKey(participantID string, round int) bson.M {
	return s.scopedFilter(bson.M{
		"participantid": participantID,
		"round":         round,
	})
}

// GetPick fetches the pick a participant holds for a round
// Preconditions: Receives a string containing the participant's userID and an int containing the round number
// Postconditions: Returns the Pick if it exists, mongo.ErrNoDocuments if not, or an error if it occurs
func (s *Store) GetPick(ctx context.Context, participantID string, round int) (Pick, error) {
	var result Pick
	err := s.withRetry(ctx, "GetPick", func() error {
		err := s.Collections.Picks.FindOne(ctx, s.pickKey(participantID, round)).Decode(&result)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return err
			}
			return fmt.Errorf("error fetching pick from db: %w", err)
		}
		return nil
	})
	if err != nil {
		return Pick{}, err
	}
	return result, nil
}

// GetParticipantPicks returns every pick a participant has made across all rounds of the edition.
// Used for lives recomputation and the team-reuse check
func (s *Store) GetParticipantPicks(ctx context.Context, participantID string) ([]Pick, error) {
	var results []Pick
	err := s.withRetry(ctx, "GetParticipantPicks", func() error {
		filter := s.scopedFilter(bson.M{"participantid": participantID})
		cursor, err := s.Collections.Picks.Find(ctx, filter)
		if err != nil {
			return fmt.Errorf("error fetching picks from db: %w", err)
		}
		results = nil
		if err = cursor.All(ctx, &results); err != nil {
			return fmt.Errorf("error unpacking cursor into slice of picks: %w", err)
		}
		return nil
	})
	return results, err
}

// GetPicksForRound returns all picks stored for one round, across every participant
func (s *Store) GetPicksForRound(ctx context.Context, round int) ([]Pick, error) {
	var results []Pick
	err := s.withRetry(ctx, "GetPicksForRound", func() error {
		cursor, err := s.Collections.Picks.Find(ctx, s.scopedFilter(bson.M{"round": round}))
		if err != nil {
			return fmt.Errorf("error fetching picks from db: %w", err)
		}
		results = nil
		if err = cursor.All(ctx, &results); err != nil {
			return fmt.Errorf("error unpacking cursor into slice of picks: %w", err)
		}
		return nil
	})
	return results, err
}

// GetAllPicks returns the full pick history for the edition
func (s *Store) GetAllPicks(ctx context.Context) ([]Pick, error) {
	var results []Pick
	err := s.withRetry(ctx, "GetAllPicks", func() error {
		cursor, err := s.Collections.Picks.Find(ctx, s.scopedFilter(bson.M{}))
		if err != nil {
			return fmt.Errorf("error fetching picks from db: %w", err)
		}
		results = nil
		if err = cursor.All(ctx, &results); err != nil {
			return fmt.Errorf("error unpacking cursor into slice of picks: %w", err)
		}
		return nil
	})
	return results, err
}

// UpsertPick stores or replaces the pick for (participant, round)
// Preconditions: Receives a Pick with ParticipantID, Round and TeamPicked set
// Postconditions: Exactly one pick document exists for the key afterwards, or an error is returned
func (s *Store) UpsertPick(ctx context.Context, pick Pick) error {
	s.stampPickScope(&pick)
	pick.Id = primitive.NilObjectID // never carry an _id into a replacement document

	return s.withRetry(ctx, "UpsertPick", func() error {
		opts := options.Replace().SetUpsert(true)
		_, err := s.Collections.Picks.ReplaceOne(ctx, s.pickKey(pick.ParticipantID, pick.Round), pick, opts)
		if err != nil {
			return fmt.Errorf("failed to upsert pick: %w", err)
		}
		return nil
	})
}

// StorePicksBatch writes a batch of picks in one operation: an ordered bulk of upserts keyed on
// (participantid, round), wrapped in a transaction when the deployment supports one. A failed batch
// leaves the round unassigned and the caller retries the whole round
// Preconditions: Receives a slice of Picks to write
// Postconditions: All picks are applied, or an error is returned and none are considered assigned
func (s *Store) StorePicksBatch(ctx context.Context, picks []Pick) error {
	if len(picks) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(picks))
	for i := range picks {
		s.stampPickScope(&picks[i])
		picks[i].Id = primitive.NilObjectID
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(s.pickKey(picks[i].ParticipantID, picks[i].Round)).
			SetReplacement(picks[i]).
			SetUpsert(true))
	}

	bulk := func(ctx context.Context) error {
		_, err := s.Collections.Picks.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
		if err != nil {
			return fmt.Errorf("failed to batch write picks: %w", err)
		}
		return nil
	}

	if !s.UseTransactions {
		return s.withRetry(ctx, "StorePicksBatch", func() error { return bulk(ctx) })
	}

	return s.withRetry(ctx, "StorePicksBatch", func() error {
		session, err := s.Client.StartSession()
		if err != nil {
			return fmt.Errorf("failed to start session for batch write: %w", err)
		}
		defer session.EndSession(ctx)

		_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			return nil, bulk(sc)
		})
		return err
	})
}

// UpdatePickResult finalizes a pick once its fixture has finished. The result is written once and
// is stable afterwards; reprocessing the same fixture writes the same values again
func (s *Store) UpdatePickResult(ctx context.Context, participantID string, round int, result string, livesAfter int) error {
	return s.withRetry(ctx, "UpdatePickResult", func() error {
		update := bson.M{"$set": bson.M{
			"result":         result,
			"livesafterpick": livesAfter,
		}}
		_, err := s.Collections.Picks.UpdateOne(ctx, s.pickKey(participantID, round), update)
		if err != nil {
			return fmt.Errorf("failed to update pick result: %w", err)
		}
		return nil
	})
}
