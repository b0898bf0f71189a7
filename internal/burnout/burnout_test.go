package burnout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrwolf/burnout-server/internal/sentiment"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		mood     string
		sleep    float64
		category sentiment.Category
		want     int
	}{
		{"sad short sleep negative text", "Sad", 5, sentiment.Negative, 50},
		{"happy good sleep positive text", "Happy", 8, sentiment.Positive, 100},
		{"long sleep", "Happy", 10, sentiment.Positive, 90},
		{"six hours is not short", "Happy", 6, sentiment.Positive, 100},
		{"nine hours is not long", "Happy", 9, sentiment.Positive, 100},
		{"neutral text", "Neutral", 7, sentiment.Neutral, 95},
		{"mood is case folded", "TIRED", 7, sentiment.Positive, 80},
		{"low mood", "low", 7, sentiment.Positive, 80},
		{"stressed is not a negative mood", "Stressed", 7, sentiment.Positive, 100},
		{"worst case", "angry", 0, sentiment.Negative, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.mood, tt.sleep, tt.category))
		})
	}
}

func TestScoreAlwaysInRange(t *testing.T) {
	moods := []string{"Happy", "Neutral", "Tired", "Sad", "Stressed", "low", "", "??"}
	categories := []sentiment.Category{sentiment.Positive, sentiment.Neutral, sentiment.Negative}
	sleeps := []float64{-1e9, -1, 0, 5.99, 6, 9, 9.01, 24, 1e9, math.MaxFloat64}

	for _, m := range moods {
		for _, c := range categories {
			for _, s := range sleeps {
				got := Score(m, s, c)
				assert.GreaterOrEqual(t, got, MinScore)
				assert.LessOrEqual(t, got, MaxScore)
				assert.Equal(t, got, Score(m, s, c), "score must be a pure function")
			}
		}
	}
}

func TestParseSleep(t *testing.T) {
	v, err := ParseSleep("7.5")
	require.NoError(t, err)
	assert.InDelta(t, 7.5, v, 1e-6)

	v, err = ParseSleep(" 5 ")
	require.NoError(t, err)
	assert.InDelta(t, 5, v, 1e-6)

	for _, bad := range []string{"", "abc", "7h", "NaN", "Inf", "-Inf", "1e39", "-1e39"} {
		_, err := ParseSleep(bad)
		assert.ErrorIs(t, err, ErrInvalidSleep, "input %q", bad)
	}
}
