package services

import (
	"errors"
	"fmt"

	"pickem-app-go/models"
)

// Validation errors surfaced verbatim to the submitter. A submission either
// satisfies every rule or is rejected outright; there is no partial accept.
var (
	ErrPickMissing        = errors.New("a pick is required for every open game")
	ErrPickUnknownGame    = errors.New("pick references a game that is not open for picks")
	ErrConfidenceCount    = errors.New("exactly three confidence picks are required")
	ErrConfidenceWeights  = errors.New("confidence weights must be 1, 2 and 3, each used exactly once")
	ErrConfidenceDupGame  = errors.New("confidence weights must go to three distinct games")
	ErrConfidenceUnpicked = errors.New("confidence assigned to a game you did not pick")
)

// ValidatePickSubmission enforces the confidence-assignment invariant before
// a submission is accepted. Rules are checked in order and the first failure
// wins:
//
//  1. picks covers exactly requiredGameIDs (the unlocked slate), no more and
//     no fewer
//  2. exactly three confidence pairs
//  3. the weights form the exact set {1,2,3}
//  4. every confidence game id is also picked
func ValidatePickSubmission(picks map[int]string, confidence []models.ConfidencePick, requiredGameIDs map[int]bool) error {
	for id := range requiredGameIDs {
		if _, ok := picks[id]; !ok {
			return fmt.Errorf("%w: game %d has no pick", ErrPickMissing, id)
		}
	}
	for id := range picks {
		if !requiredGameIDs[id] {
			return fmt.Errorf("%w: game %d", ErrPickUnknownGame, id)
		}
	}

	if len(confidence) != 3 {
		return fmt.Errorf("%w: got %d", ErrConfidenceCount, len(confidence))
	}

	seen := make(map[int]bool, 3)
	games := make(map[int]bool, 3)
	for _, c := range confidence {
		if c.Weight < 1 || c.Weight > 3 || seen[c.Weight] {
			return ErrConfidenceWeights
		}
		seen[c.Weight] = true

		if games[c.GameID] {
			return fmt.Errorf("%w: game %d appears twice", ErrConfidenceDupGame, c.GameID)
		}
		games[c.GameID] = true
	}

	for id := range games {
		if _, ok := picks[id]; !ok {
			return fmt.Errorf("%w: game %d", ErrConfidenceUnpicked, id)
		}
	}

	return nil
}
