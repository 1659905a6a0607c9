/* main.go
 * The "main" method for running the round engine. Wires the store, engine and event logging
 * together and runs the deadline monitor until interrupted
 * Usage: go run main.go -club="<clubID>" -edition="<editionID>"
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"lastman-game/engine"
	"lastman-game/store"
)

func main() {
	err := godotenv.Load()

	// Flags
	dbPtr := flag.String("db", "lastman", "Mongo database name")
	clubPtr := flag.String("club", "", "Club (organization) ID the engine runs for")
	editionPtr := flag.String("edition", "", "Competition edition ID the engine runs for")
	livesPtr := flag.Int("lives", 2, "Starting lives per participant")
	intervalPtr := flag.Duration("interval", 60*time.Second, "Deadline check interval")
	excludeUsedPtr := flag.Bool("excludeUsedTeams", false, "Make auto-picks skip teams a participant already used")
	txnPtr := flag.Bool("transactions", false, "Wrap auto-pick batch writes in a transaction (requires a replica set)")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err != nil {
		log.Warn().Msg("no .env file loaded, relying on process environment")
	}
	if *clubPtr == "" || *editionPtr == "" {
		log.Fatal().Msg("both -club and -edition are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := store.NewStore(ctx, *dbPtr, os.Getenv("MONGO_URI"), *clubPtr, *editionPtr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}
	s.UseTransactions = *txnPtr
	defer func() {
		if err := s.Client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongo")
		}
	}()

	eng := engine.NewEngine(s, clockwork.NewRealClock(), nil, engine.Config{
		StartingLives:    *livesPtr,
		CheckInterval:    *intervalPtr,
		ExcludeUsedTeams: *excludeUsedPtr,
	})

	// Surface engine notifications in the log; a UI or mailer collaborator would register here too
	eng.Events().OnRoundStateChanged(func(round int, state string) {
		log.Info().Int("round", round).Str("state", state).Msg("round state changed")
	})
	eng.Events().OnPicksAssigned(func(round, count int) {
		log.Info().Int("round", round).Int("count", count).Msg("picks assigned")
	})

	if err := eng.RunMonitor(ctx); err != nil {
		log.Fatal().Err(err).Msg("deadline monitor exited")
	}
}
