package escalation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func run(s State, results ...bool) (State, int) {
	fired := 0
	for _, unfit := range results {
		var f bool
		s, f = Next(s, unfit)
		if f {
			fired++
		}
	}
	return s, fired
}

func TestThreeUnfitFiresOnce(t *testing.T) {
	s, fired := run(State{}, true, true)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 2, s.UnfitCount)

	s, f := Next(s, true)
	assert.True(t, f)
	assert.Equal(t, 0, s.UnfitCount)
	assert.True(t, s.HandoffPending)

	s, f = Next(s, true)
	assert.False(t, f)
	assert.Equal(t, 1, s.UnfitCount, "a fourth Unfit starts a fresh streak")
}

func TestFitResetsStreak(t *testing.T) {
	tests := []struct {
		name    string
		results []bool
		count   int
		fired   int
	}{
		{"fit after one", []bool{true, false}, 0, 0},
		{"fit after two", []bool{true, true, false}, 0, 0},
		{"fit breaks streak", []bool{true, true, false, true, true}, 2, 0},
		{"six unfit fire twice", []bool{true, true, true, true, true, true}, 0, 2},
		{"fit only", []bool{false, false}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fired := run(State{}, tt.results...)
			assert.Equal(t, tt.count, s.UnfitCount)
			assert.Equal(t, tt.fired, fired)
		})
	}
}

func TestAcknowledge(t *testing.T) {
	s, _ := run(State{}, true, true, true, true)
	assert.True(t, s.HandoffPending)

	s = Acknowledge(s)
	assert.False(t, s.HandoffPending)
	assert.Equal(t, 1, s.UnfitCount)
}

func TestFitKeepsPendingHandoff(t *testing.T) {
	s, _ := run(State{}, true, true, true, false)
	assert.True(t, s.HandoffPending)
	assert.Equal(t, 0, s.UnfitCount)
}
