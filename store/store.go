/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split into three files:
 * participants, picks and fixtures. Each of these files contain methods for interacting with that part of the
 * database. All queries are scoped to the (club, edition) pair the store was constructed with
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client          *mongo.Client
	Database        *mongo.Database
	ClubID          string
	EditionID       string
	MaxRetries      uint64
	UseTransactions bool
	Collections     struct {
		Participants *mongo.Collection
		Picks        *mongo.Collection
		Fixtures     *mongo.Collection
	}
}

// Function for initialising Store. Connects to mongo and binds the collections
// Preconditions: Receives strings containing the following: dbName, mongoURI, clubID and editionID
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(ctx context.Context, dbName string, mongoURI string, clubID string, editionID string) (*Store, error) {
	if dbName == "" || clubID == "" || editionID == "" {
		return nil, fmt.Errorf("dbName, clubID and editionID are required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	return &Store{
		Client:     client,
		Database:   db,
		ClubID:     clubID,
		EditionID:  editionID,
		MaxRetries: 4,
		Collections: struct {
			Participants *mongo.Collection
			Picks        *mongo.Collection
			Fixtures     *mongo.Collection
		}{
			Participants: db.Collection("participants"),
			Picks:        db.Collection("picks"),
			Fixtures:     db.Collection("fixtures"),
		},
	}, nil
}

// scopedFilter merges the store's (club, edition) scope into a query filter.
// Every read and write in this package goes through it
func (s *Store) scopedFilter(filter bson.M) bson.M {
	scoped := bson.M{
		"clubid":    s.ClubID,
		"editionid": s.EditionID,
	}
	for k, v := range filter {
		scoped[k] = v
	}
	return scoped
}

// stampScope sets the store's scope fields on a document before it is written,
// so documents written by this store can never leak into another edition
func (s *Store) stampPickScope(pick *Pick) {
	pick.ClubID = s.ClubID
	pick.EditionID = s.EditionID
}
