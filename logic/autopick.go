/* autopick.go
 * Contains the team selection algorithm used when a participant misses the deadline. Round 1 picks
 * uniformly at random from the round's team pool; later rounds walk the pool alphabetically from
 * the participant's previous pick, wrapping to the first team when the previous pick is absent or
 * was last in sort order
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"math/rand"
	"sort"
)

// SelectAutoPickTeam chooses a team for a participant who has no pick for the round.
// Preconditions: teams is the round's available pool; previousTeam is the participant's pick from
// the immediately preceding round ("" when absent); usedTeams holds every team the participant has
// picked before. When excludeUsed is false the selection deliberately ignores usedTeams, matching
// the behavior this game has always had
// Postconditions: Returns the selected team name, or an error when no team can be selected
func SelectAutoPickTeam(round int, previousTeam string, teams []string, usedTeams map[string]bool, excludeUsed bool, rng *rand.Rand) (string, error) {
	if len(teams) == 0 {
		return "", fmt.Errorf("no teams available for round %d", round)
	}

	pool := make([]string, len(teams))
	copy(pool, teams)
	sort.Strings(pool)

	// First round of an edition: uniform random selection
	if round <= 1 {
		if !excludeUsed {
			return pool[rng.Intn(len(pool))], nil
		}
		var unused []string
		for _, team := range pool {
			if !usedTeams[team] {
				unused = append(unused, team)
			}
		}
		if len(unused) == 0 {
			return "", fmt.Errorf("no unused teams available for round %d", round)
		}
		return unused[rng.Intn(len(unused))], nil
	}

	// Later rounds: the team alphabetically after the previous round's pick. sort.SearchStrings
	// gives the insertion point, which also handles a previous pick that is not in this round's pool
	start := 0
	if previousTeam != "" {
		idx := sort.SearchStrings(pool, previousTeam)
		if idx < len(pool) && pool[idx] == previousTeam {
			idx++
		}
		start = idx % len(pool)
	}

	if !excludeUsed {
		return pool[start], nil
	}

	for i := 0; i < len(pool); i++ {
		candidate := pool[(start+i)%len(pool)]
		if !usedTeams[candidate] {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no unused teams available for round %d", round)
}
