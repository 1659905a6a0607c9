/* engine.go
 * Contains the Engine struct and the public methods for interacting with the round lifecycle. The
 * engine is constructed with explicit references to its collaborators (store, clock, emitter)
 * rather than looking them up ambiently, so tests can substitute every one of them
 * Authors: Zachary Bower
 */

package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"lastman-game/logic"
	"lastman-game/store"
)

// RoundState values for the round lifecycle. The transition is one-way: once a round has
// passed its deadline it never reopens
const (
	RoundOpen   = "OPEN"
	RoundPassed = "PASSED"
)

// Config carries the engine's tunables
type Config struct {
	// StartingLives every participant begins the edition with
	StartingLives int
	// CheckInterval between deadline monitor ticks
	CheckInterval time.Duration
	// ExcludeUsedTeams controls the auto-pick fallback. The historic behavior (false) allows the
	// fallback to assign a team the participant has already used; setting true makes the fallback
	// skip used teams and enforces the team-reuse check on auto-picks as well
	ExcludeUsedTeams bool
}

// Engine ties the deadline monitor, auto-pick assigner and result processor together over one
// shared store. Several engine instances may watch the same edition concurrently; all writes are
// keyed upserts so racing instances converge instead of duplicating
type Engine struct {
	store      store.Interface
	clock      clockwork.Clock
	events     *Emitter
	cfg        Config
	rng        *rand.Rand
	instanceID string

	// Round transition latches, local to this instance. roundPassed stops the state change event
	// firing twice; roundAssigned stays false until a batch write succeeds so a failed batch is
	// retried on the next tick
	mu            sync.Mutex
	roundPassed   map[int]bool
	roundAssigned map[int]bool
}

// NewEngine creates an engine instance over the given store. The clock is injected so tests can
// drive the monitor with a fake clock
func NewEngine(st store.Interface, clock clockwork.Clock, events *Emitter, cfg Config) *Engine {
	if cfg.StartingLives <= 0 {
		cfg.StartingLives = 2
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 60 * time.Second
	}
	if events == nil {
		events = NewEmitter()
	}

	return &Engine{
		store:         st,
		clock:         clock,
		events:        events,
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(clock.Now().UnixNano())),
		instanceID:    uuid.New().String()[:8], // short ID for log attribution across instances
		roundPassed:   make(map[int]bool),
		roundAssigned: make(map[int]bool),
	}
}

// Events returns the engine's emitter so callers can register handlers
func (e *Engine) Events() *Emitter {
	return e.events
}

// SubmitPick is the manual pick path. It resolves the entered team name against the round's pool,
// checks eligibility and writes the pick as an upsert keyed on (participant, round).
// Preconditions: Receives the participant's userID, the round number and the team name as entered
// Postconditions: Returns the stored Pick, or a validation error describing the rejection
func (e *Engine) SubmitPick(ctx context.Context, participantID string, round int, teamInput string) (store.Pick, error) {
	fixtures, err := e.store.GetFixturesByRound(ctx, round)
	if err != nil {
		return store.Pick{}, fmt.Errorf("failed to load fixtures for round %d: %w", round, err)
	}

	teams := logic.AvailableTeams(fixtures)
	team, err := logic.ResolveTeamName(teamInput, teams)
	if err != nil {
		return store.Pick{}, err
	}

	participant, err := e.store.GetParticipant(ctx, participantID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.Pick{}, fmt.Errorf("participant %s is not registered in this edition", participantID)
		}
		return store.Pick{}, err
	}

	existing, err := e.store.GetParticipantPicks(ctx, participantID)
	if err != nil {
		return store.Pick{}, err
	}

	deadline, malformed, ok := logic.ComputeDeadline(fixtures)
	if len(malformed) > 0 {
		log.Warn().
			Int("round", round).
			Strs("kickoffs", malformed).
			Str("instance", e.instanceID).
			Msg("fixtures with unparseable kickoff times excluded from deadline")
	}

	opts := logic.ValidateOptions{Now: e.clock.Now()}
	if ok {
		opts.Deadline = &deadline
	}
	if err := logic.ValidatePick(participant, round, team, existing, opts); err != nil {
		return store.Pick{}, err
	}

	pick := store.Pick{
		ParticipantID: participantID,
		Round:         round,
		TeamPicked:    team,
		IsAutoPick:    false,
		SavedAt:       e.clock.Now(),
	}
	if err := e.store.UpsertPick(ctx, pick); err != nil {
		return store.Pick{}, err
	}

	log.Info().
		Str("participant", participantID).
		Int("round", round).
		Str("team", team).
		Str("instance", e.instanceID).
		Msg("manual pick stored")
	return pick, nil
}

// Standings returns the edition's participants ordered by survival: alive before eliminated,
// then more lives first, then by display name for a stable order
func (e *Engine) Standings(ctx context.Context) ([]store.Participant, error) {
	participants, err := e.store.GetParticipants(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(participants, func(i, j int) bool {
		a, b := participants[i], participants[j]
		if a.IsEliminated != b.IsEliminated {
			return !a.IsEliminated
		}
		if a.Lives != b.Lives {
			return a.Lives > b.Lives
		}
		return a.DisplayName < b.DisplayName
	})
	return participants, nil
}

// RoundStatus summarises one round for a UI collaborator
type RoundStatus struct {
	Round     int
	Deadline  *time.Time
	IsLocked  bool
	Picks     int
	AutoPicks int
}

// GetRoundStatus reports the deadline, lock state and pick counts for a round
func (e *Engine) GetRoundStatus(ctx context.Context, round int) (RoundStatus, error) {
	fixtures, err := e.store.GetFixturesByRound(ctx, round)
	if err != nil {
		return RoundStatus{}, err
	}
	picks, err := e.store.GetPicksForRound(ctx, round)
	if err != nil {
		return RoundStatus{}, err
	}

	status := RoundStatus{Round: round, Picks: len(picks)}
	for _, pick := range picks {
		if pick.IsAutoPick {
			status.AutoPicks++
		}
	}

	if deadline, _, ok := logic.ComputeDeadline(fixtures); ok {
		status.Deadline = &deadline
		status.IsLocked = !e.clock.Now().Before(deadline)
	}
	return status, nil
}
