/* models.go
 * This file contains the structs and constants that relate to DB objects. Every document is scoped to a
 * (club, edition) pair so that one database can host several concurrent games
 * Authors: Zachary Bower
 */

package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pick result values. A pick keeps an empty result until its fixture finishes.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

// Fixture status values as supplied by the fixture feed
const (
	FixtureScheduled = "scheduled"
	FixtureFinished  = "finished"
)

// Participant represents a player in an edition of the game. Created on registration,
// lives and elimination state are only ever mutated by result processing
type Participant struct {
	Id               primitive.ObjectID `bson:"_id,omitempty"`
	ClubID           string             `bson:"clubid"`
	EditionID        string             `bson:"editionid"`
	UserID           string             `bson:"userid"`
	DisplayName      string             `bson:"displayname"`
	Lives            int                `bson:"lives"`
	IsEliminated     bool               `bson:"iseliminated"`
	EliminationRound *int               `bson:"eliminationround,omitempty"`
}

// Pick represents one participant's team selection for one round. At most one pick
// exists per (participant, round); writes go through an upsert keyed on that pair
type Pick struct {
	Id             primitive.ObjectID `bson:"_id,omitempty"`
	ClubID         string             `bson:"clubid"`
	EditionID      string             `bson:"editionid"`
	ParticipantID  string             `bson:"participantid"`
	Round          int                `bson:"round"`
	TeamPicked     string             `bson:"teampicked"`
	IsAutoPick     bool               `bson:"isautopick"`
	Result         string             `bson:"result,omitempty"`
	LivesAfterPick *int               `bson:"livesafterpick,omitempty"`
	SavedAt        time.Time          `bson:"savedat"`
}

// Fixture is a single match in a round, owned by the external fixture feed. The engine
// only reads these. KickoffTime is kept as the feed's RFC3339 string; feeds have been
// observed to ship malformed values, so parsing happens at deadline computation time
type Fixture struct {
	Id          primitive.ObjectID `bson:"_id,omitempty"`
	ClubID      string             `bson:"clubid"`
	EditionID   string             `bson:"editionid"`
	Round       int                `bson:"round"`
	HomeTeam    string             `bson:"hometeam"`
	AwayTeam    string             `bson:"awayteam"`
	KickoffTime string             `bson:"kickofftime"`
	Status      string             `bson:"status"`
	HomeScore   *int               `bson:"homescore,omitempty"`
	AwayScore   *int               `bson:"awayscore,omitempty"`
}
