/* lives.go
 * Contains the lives calculator. Lives are always derived from the full pick history rather than
 * decremented in place, so reprocessing a finished fixture can never double-count a loss
 * Authors: Zachary Bower
 */

package logic

import (
	"strings"

	"lastman-game/store"
)

// IsLoss reports whether a pick result counts as a loss. Both the canonical "loss" token and the
// single-letter "L" alias are accepted, case-insensitively, because both appear in historic data
func IsLoss(result string) bool {
	switch strings.ToLower(result) {
	case store.ResultLoss, "l":
		return true
	}
	return false
}

// ComputeLives derives a participant's remaining lives from their pick history.
// Preconditions: Receives the participant's picks and their starting lives (>= 0)
// Postconditions: Returns max(0, startingLives - number of losing picks). Order of picks is
// irrelevant; wins and draws never change the result
func ComputeLives(picks []store.Pick, startingLives int) int {
	losses := 0
	for _, pick := range picks {
		if IsLoss(pick.Result) {
			losses++
		}
	}

	lives := startingLives - losses
	if lives < 0 {
		return 0
	}
	return lives
}
