package sentiment

import (
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

const vaderThreshold = 0.20

var (
	htmlTag     = regexp.MustCompile(`<[^>]*>`)
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// Vader classifies text with the VADER lexicon. Journal text is treated as
// markdown and reduced to plain words first.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Analyze(text string) Category {
	compound := v.Compound(text)
	switch {
	case compound >= vaderThreshold:
		return Positive
	case compound <= -vaderThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Compound returns the raw VADER compound score in [-1, 1].
func (v *Vader) Compound(text string) float64 {
	plain := PlainText(text)
	if plain == "" {
		return 0
	}
	return v.analyzer.PolarityScores(plain).Compound
}

// PlainText renders markdown and strips tags, links and bare URLs.
func PlainText(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := html.UnescapeString(htmlTag.ReplaceAllString(string(rendered), " "))
	plain = urlPattern.ReplaceAllString(plain, "")
	return strings.Join(strings.Fields(plain), " ")
}
