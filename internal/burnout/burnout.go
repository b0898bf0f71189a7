// Package burnout computes the 0-100 burnout score shown on each mood record.
package burnout

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/mrwolf/burnout-server/internal/sentiment"
)

const (
	MaxScore = 100
	MinScore = 0

	shortSleepHours = 6
	longSleepHours  = 9

	shortSleepPenalty   = 15
	longSleepPenalty    = 10
	negativeMoodPenalty = 20
	negativeTextPenalty = 15
	neutralTextPenalty  = 5
)

// ErrInvalidSleep is returned when sleep hours are not a finite number.
var ErrInvalidSleep = errors.New("sleep hours must be a number")

var negativeMoods = map[string]bool{
	"sad":   true,
	"tired": true,
	"angry": true,
	"low":   true,
}

// Score starts from MaxScore and applies fixed deductions for sleep, mood
// and sentiment. The result is clamped to [MinScore, MaxScore].
func Score(mood string, sleepHours float64, category sentiment.Category) int {
	score := MaxScore

	if sleepHours < shortSleepHours {
		score -= shortSleepPenalty
	} else if sleepHours > longSleepHours {
		score -= longSleepPenalty
	}

	if negativeMoods[strings.ToLower(mood)] {
		score -= negativeMoodPenalty
	}

	switch category {
	case sentiment.Negative:
		score -= negativeTextPenalty
	case sentiment.Neutral:
		score -= neutralTextPenalty
	}

	return clamp(score)
}

// ParseSleep parses user-entered sleep hours. Surrounding whitespace is
// ignored. NaN, infinities and values beyond float32 range are rejected.
func ParseSleep(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidSleep
	}
	return v, nil
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
