/* teams.go
 * Contains the helpers for working with a round's team pool: building the set of teams that can be
 * picked, resolving user-entered team names, and computing round deadlines from fixture kickoffs
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"lastman-game/store"
)

// AvailableTeams builds the pool of pickable teams for a round: the union of home and away team
// names across the round's fixtures, sorted alphabetically and de-duplicated
func AvailableTeams(fixtures []store.Fixture) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, fixture := range fixtures {
		for _, name := range []string{fixture.HomeTeam, fixture.AwayTeam} {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			teams = append(teams, name)
		}
	}
	sort.Strings(teams)
	return teams
}

// ResolveTeamName matches a user-entered team name against the round's valid teams.
// Preconditions: receives the raw input string and the list of valid team names
// Postconditions: returns the canonical team name, or an error if no valid team matches
func ResolveTeamName(input string, validTeams []string) (string, error) {
	// Convert to lowercase for better matching
	lookup := make(map[string]string)
	var validLower []string
	for _, name := range validTeams {
		lower := strings.ToLower(name)
		lookup[lower] = name
		validLower = append(validLower, lower)
	}

	lowerInput := strings.ToLower(strings.TrimSpace(input))
	results := fuzzy.RankFind(lowerInput, validLower)
	if len(results) == 0 {
		return "", fmt.Errorf("'%s' does not match any team in this round", input)
	}

	// Prefer an exact match when the fuzzy search returns several candidates
	for i := range results {
		if results[i].Target == lowerInput {
			return lookup[results[i].Target], nil
		}
	}
	return lookup[results[0].Target], nil
}

// ComputeDeadline derives a round's deadline as the minimum kickoff time across its fixtures.
// Fixtures whose kickoff strings fail to parse are excluded from the minimum and reported back
// so the caller can log them as a data integrity concern; they are never fatal.
// Postconditions: Returns the deadline and true when at least one fixture has a valid kickoff,
// otherwise the zero time and false. The second return lists the malformed kickoff strings
func ComputeDeadline(fixtures []store.Fixture) (time.Time, []string, bool) {
	var deadline time.Time
	var malformed []string
	found := false

	for _, fixture := range fixtures {
		kickoff, err := time.Parse(time.RFC3339, fixture.KickoffTime)
		if err != nil {
			malformed = append(malformed, fixture.KickoffTime)
			continue
		}
		if !found || kickoff.Before(deadline) {
			deadline = kickoff
			found = true
		}
	}

	return deadline, malformed, found
}

// DeriveResult classifies a pick against a finished fixture's scores
// Preconditions: Receives the picked team name and a fixture with non-nil scores where the picked
// team is either the home or away side
// Postconditions: Returns ResultWin, ResultLoss or ResultDraw
func DeriveResult(teamPicked string, fixture store.Fixture) string {
	picked, opponent := *fixture.HomeScore, *fixture.AwayScore
	if teamPicked == fixture.AwayTeam {
		picked, opponent = opponent, picked
	}

	switch {
	case picked > opponent:
		return store.ResultWin
	case picked < opponent:
		return store.ResultLoss
	default:
		return store.ResultDraw
	}
}
