package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordsAnalyze(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
	}{
		{"empty", "", Neutral},
		{"only negative", "I feel sad and tired", Negative},
		{"only positive", "great productive day", Positive},
		{"no keywords", "went to the office", Neutral},
		{"case folded", "HAPPY and CALM", Positive},
		{"balanced", "happy but tired", Neutral},
		{"negative wins by count", "good day but sad, angry and exhausted", Negative},
		{"repeated keyword counts once", "sad sad sad but happy and calm", Positive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Keywords{}.Analyze(tt.text))
		})
	}
}

func TestKeywordsOnlyNegativeKeywords(t *testing.T) {
	for _, k := range negativeKeywords {
		assert.Equal(t, Negative, Keywords{}.Analyze(k), "keyword %q", k)
	}
}

func TestKeywordsOnlyPositiveKeywords(t *testing.T) {
	for _, k := range positiveKeywords {
		assert.Equal(t, Positive, Keywords{}.Analyze(k), "keyword %q", k)
	}
}

func TestDiscreteScore(t *testing.T) {
	tests := []struct {
		text string
		want float32
	}{
		{"", 0},
		{"ordinary day", 0},
		{"great productive day", 1},
		{"Happy", 1},
		{"I feel sad and tired", -1},
		{"happy but exhausted", -1},
		{"Stressed about the deadline", -1},
		// "good" and "calm" only count for the record category, not the model
		{"good and calm", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscreteScore(tt.text))
		})
	}
}

func TestNewFallsBackToKeywords(t *testing.T) {
	assert.IsType(t, Keywords{}, New(""))
	assert.IsType(t, Keywords{}, New("unknown"))
	assert.IsType(t, &Vader{}, New("vader"))
}

func TestVaderAnalyze(t *testing.T) {
	v := NewVader()

	assert.Equal(t, Neutral, v.Analyze(""))
	assert.Equal(t, Positive, v.Analyze("What a wonderful, happy day. I love it!"))
	assert.Equal(t, Negative, v.Analyze("This is terrible. I hate everything and feel awful."))
}

func TestPlainText(t *testing.T) {
	got := PlainText("**Great** day, see [notes](https://example.com/x) and www.example.com")
	assert.Equal(t, "Great day, see notes and", got)
}
