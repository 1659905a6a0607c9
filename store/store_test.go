/* store_test.go
 * Contains unit tests for store.go
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// mtStore builds a Store around mtest's mocked client, pointing every collection at mt.Coll
func mtStore(mt *mtest.T) *Store {
	return &Store{
		Client:    mt.Client,
		Database:  mt.DB,
		ClubID:    "test_club",
		EditionID: "test_edition",
		Collections: struct {
			Participants *mongo.Collection
			Picks        *mongo.Collection
			Fixtures     *mongo.Collection
		}{
			Participants: mt.Coll,
			Picks:        mt.Coll,
			Fixtures:     mt.Coll,
		},
	}
}

func TestNewStore_RequiredArguments(t *testing.T) {
	ctx := context.Background()

	_, err := NewStore(ctx, "", "mongodb://localhost:27017", "club", "2025-26")
	assert.Error(t, err)

	_, err = NewStore(ctx, "lastman", "mongodb://localhost:27017", "", "2025-26")
	assert.Error(t, err)

	_, err = NewStore(ctx, "lastman", "mongodb://localhost:27017", "club", "")
	assert.Error(t, err)
}

func TestScopedFilter_MergesScope(t *testing.T) {
	store := &Store{ClubID: "club_a", EditionID: "2025-26"}

	filter := store.scopedFilter(bson.M{"round": 3})
	assert.Equal(t, bson.M{
		"clubid":    "club_a",
		"editionid": "2025-26",
		"round":     3,
	}, filter)
}

func TestScopedFilter_EmptyFilter(t *testing.T) {
	store := &Store{ClubID: "club_a", EditionID: "2025-26"}

	filter := store.scopedFilter(bson.M{})
	assert.Equal(t, bson.M{"clubid": "club_a", "editionid": "2025-26"}, filter)
}

func TestStampPickScope(t *testing.T) {
	store := &Store{ClubID: "club_a", EditionID: "2025-26"}

	pick := Pick{ParticipantID: "user123", Round: 1, TeamPicked: "Arsenal"}
	store.stampPickScope(&pick)
	assert.Equal(t, "club_a", pick.ClubID)
	assert.Equal(t, "2025-26", pick.EditionID)
}

func TestStoreImplementsInterface(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("getters expose the construction scope", func(mt *mtest.T) {
		store := mtStore(mt)
		require.Equal(t, "test_club", store.GetClubID())
		require.Equal(t, "test_edition", store.GetEditionID())
		require.NotNil(t, store.GetClient())
	})
}
