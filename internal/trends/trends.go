// Package trends summarizes a week of mood records for a quick look at
// whether things are getting better or worse.
package trends

import (
	"sort"
	"time"

	"github.com/mrwolf/burnout-server/internal/db"
)

const (
	Window = 7 * 24 * time.Hour

	// average score change between the older and recent halves of the week
	// that counts as movement
	shiftThreshold = 5.0
)

const (
	Improving = "improving"
	Worsening = "worsening"
	Steady    = "steady"
	NoData    = "no data"
)

// Day groups one calendar day of records
type Day struct {
	Date         string         `json:"date"`
	Weekday      string         `json:"weekday"`
	Entries      int            `json:"entries"`
	AverageScore float64        `json:"average_score"`
	DominantMood string         `json:"dominant_mood"`
	Moods        map[string]int `json:"moods"`
}

// Week is the trend over the last seven days, most recent day first
type Week struct {
	Days         []Day   `json:"days"`
	AverageScore float64 `json:"average_score"`
	Direction    string  `json:"direction"`
	LowDays      int     `json:"low_days"`
}

// LowScore marks a day whose average burnout score signals strain
const LowScore = 60

// Build summarizes records created within Window before now. Days are
// bucketed in loc.
func Build(records []db.MoodRecord, now time.Time, loc *time.Location) Week {
	if loc == nil {
		loc = time.UTC
	}
	since := now.Add(-Window)

	type bucket struct {
		day   Day
		total int
	}
	buckets := make(map[string]*bucket)
	var sum, count int

	for _, r := range records {
		if r.CreatedAt.Before(since) || r.CreatedAt.After(now) {
			continue
		}
		local := r.CreatedAt.In(loc)
		key := local.Format("2006-01-02")

		b, ok := buckets[key]
		if !ok {
			b = &bucket{day: Day{
				Date:    key,
				Weekday: local.Weekday().String()[:3],
				Moods:   make(map[string]int),
			}}
			buckets[key] = b
		}
		b.day.Entries++
		b.day.Moods[r.Mood]++
		b.total += r.BurnoutScore
		sum += r.BurnoutScore
		count++
	}

	week := Week{Direction: NoData, Days: []Day{}}
	if count == 0 {
		return week
	}

	for _, b := range buckets {
		b.day.AverageScore = float64(b.total) / float64(b.day.Entries)
		b.day.DominantMood = dominant(b.day.Moods)
		if b.day.AverageScore < LowScore {
			week.LowDays++
		}
		week.Days = append(week.Days, b.day)
	}
	sort.Slice(week.Days, func(i, j int) bool { return week.Days[i].Date > week.Days[j].Date })

	week.AverageScore = float64(sum) / float64(count)
	week.Direction = direction(week.Days)
	return week
}

// direction compares the recent half of the days with the older half.
// A higher burnout score means better wellbeing.
func direction(days []Day) string {
	if len(days) < 2 {
		return Steady
	}
	mid := len(days) / 2

	recent := mean(days[:mid])
	older := mean(days[mid:])
	switch {
	case recent-older >= shiftThreshold:
		return Improving
	case older-recent >= shiftThreshold:
		return Worsening
	}
	return Steady
}

func mean(days []Day) float64 {
	var total float64
	for _, d := range days {
		total += d.AverageScore
	}
	return total / float64(len(days))
}

// dominant picks the most frequent mood, breaking ties alphabetically
func dominant(moods map[string]int) string {
	best, bestN := "", 0
	for mood, n := range moods {
		if n > bestN || (n == bestN && mood < best) {
			best, bestN = mood, n
		}
	}
	return best
}
