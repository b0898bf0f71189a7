package trends

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrwolf/burnout-server/internal/db"
)

var now = time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)

func rec(daysAgo int, mood string, score int) db.MoodRecord {
	return db.MoodRecord{
		Mood:         mood,
		BurnoutScore: score,
		CreatedAt:    now.Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}
}

func TestBuildEmpty(t *testing.T) {
	week := Build(nil, now, time.UTC)
	assert.Equal(t, NoData, week.Direction)
	assert.Empty(t, week.Days)
}

func TestBuildGroupsByDay(t *testing.T) {
	week := Build([]db.MoodRecord{
		rec(0, "Sad", 50),
		rec(0, "Sad", 60),
		rec(0, "Happy", 100),
		rec(1, "Tired", 70),
		rec(9, "Happy", 100), // outside the window
	}, now, time.UTC)

	want := []Day{
		{Date: "2024-01-15", Weekday: "Mon", Entries: 3, AverageScore: 70, DominantMood: "Sad",
			Moods: map[string]int{"Sad": 2, "Happy": 1}},
		{Date: "2024-01-14", Weekday: "Sun", Entries: 1, AverageScore: 70, DominantMood: "Tired",
			Moods: map[string]int{"Tired": 1}},
	}
	if diff := cmp.Diff(want, week.Days); diff != "" {
		t.Errorf("days mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 70.0, week.AverageScore, 0.001)
}

func TestDirection(t *testing.T) {
	worsening := Build([]db.MoodRecord{
		rec(0, "Sad", 40), rec(1, "Sad", 45),
		rec(4, "Happy", 90), rec(5, "Happy", 95),
	}, now, time.UTC)
	assert.Equal(t, Worsening, worsening.Direction)
	assert.Equal(t, 2, worsening.LowDays)

	improving := Build([]db.MoodRecord{
		rec(0, "Happy", 95), rec(3, "Sad", 50),
	}, now, time.UTC)
	assert.Equal(t, Improving, improving.Direction)

	steady := Build([]db.MoodRecord{
		rec(0, "Neutral", 80), rec(2, "Neutral", 78),
	}, now, time.UTC)
	assert.Equal(t, Steady, steady.Direction)

	single := Build([]db.MoodRecord{rec(0, "Sad", 10)}, now, time.UTC)
	assert.Equal(t, Steady, single.Direction)
}

func TestBuildUsesLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	late := db.MoodRecord{Mood: "Happy", BurnoutScore: 100,
		CreatedAt: time.Date(2024, 1, 14, 20, 0, 0, 0, time.UTC)}

	week := Build([]db.MoodRecord{late}, now, loc)
	require.Len(t, week.Days, 1)
	assert.Equal(t, "2024-01-15", week.Days[0].Date)
}

func TestDominantTieBreak(t *testing.T) {
	assert.Equal(t, "Happy", dominant(map[string]int{"Sad": 2, "Happy": 2}))
	assert.Equal(t, "", dominant(map[string]int{}))
}
