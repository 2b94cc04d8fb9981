package services

import (
	"testing"

	"pickem-app-go/models"

	"github.com/stretchr/testify/assert"
)

func confidence(pairs ...[2]int) []models.ConfidencePick {
	out := make([]models.ConfidencePick, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.ConfidencePick{GameID: p[0], Weight: p[1]})
	}
	return out
}

func TestValidatePickSubmissionAccepts(t *testing.T) {
	required := map[int]bool{0: true, 1: true, 2: true, 3: true}
	picks := map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)", 3: "Alabama"}

	err := ValidatePickSubmission(picks, confidence([2]int{0, 3}, [2]int{1, 2}, [2]int{3, 1}), required)
	assert.NoError(t, err)
}

func TestValidatePickSubmissionCoverage(t *testing.T) {
	required := map[int]bool{0: true, 1: true, 2: true}
	conf := confidence([2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3})

	// Missing a required game.
	err := ValidatePickSubmission(map[int]string{0: "Duke", 1: "Ohio State"}, conf, required)
	assert.ErrorIs(t, err, ErrPickMissing)

	// Pick for a game outside the required set.
	picks := map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)", 9: "Alabama"}
	err = ValidatePickSubmission(picks, conf, required)
	assert.ErrorIs(t, err, ErrPickUnknownGame)
}

func TestValidatePickSubmissionConfidenceRules(t *testing.T) {
	required := map[int]bool{0: true, 1: true, 2: true, 3: true}
	picks := map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)", 3: "Alabama"}

	tests := []struct {
		name string
		conf []models.ConfidencePick
		want error
	}{
		{"too few pairs", confidence([2]int{0, 1}, [2]int{1, 2}), ErrConfidenceCount},
		{"too many pairs", confidence([2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1}), ErrConfidenceCount},
		{"duplicate weight", confidence([2]int{0, 1}, [2]int{1, 1}, [2]int{2, 2}), ErrConfidenceWeights},
		{"weight out of range", confidence([2]int{0, 1}, [2]int{1, 2}, [2]int{2, 4}), ErrConfidenceWeights},
		{"zero weight", confidence([2]int{0, 0}, [2]int{1, 2}, [2]int{2, 3}), ErrConfidenceWeights},
		{"same game twice", confidence([2]int{0, 1}, [2]int{0, 2}, [2]int{2, 3}), ErrConfidenceDupGame},
		{"confidence on unpicked game", confidence([2]int{0, 1}, [2]int{1, 2}, [2]int{9, 3}), ErrConfidenceUnpicked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePickSubmission(picks, tt.conf, required)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidatePickSubmissionEmptyRequiredSet(t *testing.T) {
	// An empty required set still demands three confidence picks on picked
	// games, so a fully-locked week cannot be submitted against.
	err := ValidatePickSubmission(map[int]string{}, nil, map[int]bool{})
	assert.ErrorIs(t, err, ErrConfidenceCount)
}
