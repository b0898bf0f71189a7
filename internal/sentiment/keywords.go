package sentiment

import "strings"

var (
	positiveKeywords = []string{
		"happy", "relaxed", "excited", "joy", "good", "calm", "energetic", "positive",
		"great", "productive",
	}
	negativeKeywords = []string{
		"sad", "tired", "angry", "stressed", "anxious", "bad", "drowsy", "sleepy", "exhausted",
	}
)

// Keywords scores text by counting which fixed positive and negative
// keywords appear in it. Each keyword contributes at most once.
type Keywords struct{}

func (Keywords) Analyze(text string) Category {
	lower := strings.ToLower(text)
	return fromScore(countPresent(lower, positiveKeywords) - countPresent(lower, negativeKeywords))
}

func countPresent(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}
