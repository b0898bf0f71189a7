package sentiment

import "strings"

// Keyword sets for DiscreteScore. They differ from the Keywords analyzer on
// purpose: the fitness model was calibrated against this rule.
var (
	discreteNegative = []string{"sad", "angry", "tired", "stressed", "exhausted"}
	discretePositive = []string{"happy", "great", "productive"}
)

// DiscreteScore returns -1, 0 or +1 for journal text. Negative indicators win
// over positive ones.
func DiscreteScore(journal string) float32 {
	lower := strings.ToLower(journal)
	switch {
	case containsAny(lower, discreteNegative):
		return -1
	case containsAny(lower, discretePositive):
		return 1
	default:
		return 0
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
