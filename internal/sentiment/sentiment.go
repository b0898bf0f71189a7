// Package sentiment turns journal text into the coarse signals used by the
// burnout score and the fitness model.
package sentiment

// Category is the human-readable sentiment stored on a mood record.
type Category string

const (
	Positive Category = "Positive"
	Neutral  Category = "Neutral"
	Negative Category = "Negative"
)

// Analyzer maps free text to a Category.
type Analyzer interface {
	Analyze(text string) Category
}

// New returns the analyzer registered under name. Unknown names fall back to
// the keyword analyzer.
func New(name string) Analyzer {
	switch name {
	case "vader":
		return NewVader()
	default:
		return Keywords{}
	}
}

func fromScore(score int) Category {
	switch {
	case score > 0:
		return Positive
	case score < 0:
		return Negative
	default:
		return Neutral
	}
}
