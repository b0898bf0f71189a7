// Package classifier adapts journal submissions to the pre-trained fitness
// model: it encodes and normalizes the three raw signals, runs the model and
// maps its scalar output to Fit or Unfit.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mrwolf/burnout-server/internal/burnout"
	"github.com/mrwolf/burnout-server/internal/sentiment"
)

// DecisionThreshold splits the model output: below is Fit, at or above is Unfit.
const DecisionThreshold = 0.5

// FallbackMoodCode is used for moods the model was not trained on.
const FallbackMoodCode = 4

var moodCodes = map[string]float32{
	"Happy":    9,
	"Neutral":  5,
	"Tired":    3,
	"Sad":      1,
	"Stressed": 2,
}

// Range is a min-max calibration range for one input signal.
type Range struct {
	Min, Max float32
}

// Scale maps v onto [0,1] relative to the range. Values outside the range
// are not clipped.
func (r Range) Scale(v float32) float32 {
	return (v - r.Min) / (r.Max - r.Min)
}

// Calibration ranges. These must match the scaler the model was trained with.
var (
	MoodRange      = Range{Min: 1, Max: 9}
	SleepRange     = Range{Min: 0, Max: 10}
	SentimentRange = Range{Min: -1, Max: 1}
)

// Label is the outcome of a classification.
type Label string

const (
	LabelFit   Label = "Fit"
	LabelUnfit Label = "Unfit"
	LabelError Label = "Error"
)

// Vector is the model input: normalized mood, sleep and sentiment.
type Vector [3]float32

// Result is the classification result. Message is only set for LabelError.
type Result struct {
	Label   Label   `json:"label"`
	Raw     float32 `json:"raw"`
	Input   Vector  `json:"input"`
	Message string  `json:"message,omitempty"`
}

// Failed reports whether the model could not produce a prediction.
func (r Result) Failed() bool {
	return r.Label == LabelError
}

// Unfit reports whether the prediction is Unfit.
func (r Result) Unfit() bool {
	return r.Label == LabelUnfit
}

func (r Result) String() string {
	if r.Failed() {
		return "Error: " + r.Message
	}
	return string(r.Label)
}

// MoodCode maps a mood label onto the 1-9 scale used during training.
// Labels are matched exactly.
func MoodCode(mood string) float32 {
	if code, ok := moodCodes[mood]; ok {
		return code
	}
	return FallbackMoodCode
}

// Encode builds the normalized model input from raw submission fields.
// Unparsable sleep text counts as zero hours.
func Encode(mood, sleep, journal string) Vector {
	hours, err := burnout.ParseSleep(sleep)
	if err != nil {
		hours = 0
	}
	return Vector{
		MoodRange.Scale(MoodCode(mood)),
		SleepRange.Scale(float32(hours)),
		SentimentRange.Scale(sentiment.DiscreteScore(journal)),
	}
}

// Classifier runs the fitness model behind a Loader.
type Classifier struct {
	loader Loader
}

// NewClassifier creates a classifier that obtains its model from loader.
func NewClassifier(loader Loader) *Classifier {
	return &Classifier{loader: loader}
}

// Classify predicts work fitness for one submission. It never panics or
// returns an error; failures come back as a LabelError result.
func (c *Classifier) Classify(ctx context.Context, mood, sleep, journal string) Result {
	input := Encode(mood, sleep, journal)

	model, err := c.loader.Load()
	if err != nil {
		return failure(input, fmt.Errorf("loading model: %w", err))
	}

	raw, err := predict(ctx, model, input)
	if err != nil {
		return failure(input, err)
	}

	// NaN compares false, so a broken model never reads as Fit
	label := LabelUnfit
	if raw < DecisionThreshold {
		label = LabelFit
	}

	slog.Debug("[Classifier] Prediction",
		slog.Any("input", input),
		slog.Float64("raw", float64(raw)),
		slog.String("label", string(label)))

	return Result{Label: label, Raw: raw, Input: input}
}

// Probe loads the model and runs it once on a neutral input.
func (c *Classifier) Probe(ctx context.Context) error {
	model, err := c.loader.Load()
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}
	_, err = predict(ctx, model, Encode("Neutral", "7", "none"))
	return err
}

type prediction struct {
	raw float32
	err error
}

// predict runs the model in its own goroutine so an expired context stops
// the wait. The model call itself cannot be interrupted.
func predict(ctx context.Context, model Model, input Vector) (float32, error) {
	done := make(chan prediction, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- prediction{err: fmt.Errorf("model panicked: %v", r)}
			}
		}()

		out, err := model.Predict(input[:])
		if err != nil {
			done <- prediction{err: fmt.Errorf("running model: %w", err)}
			return
		}
		if len(out) != 1 {
			done <- prediction{err: fmt.Errorf("model returned %d outputs, want 1", len(out))}
			return
		}
		done <- prediction{raw: out[0]}
	}()

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("waiting for model: %w", ctx.Err())
	case p := <-done:
		return p.raw, p.err
	}
}

func failure(input Vector, err error) Result {
	msg := err.Error()
	if msg == "" {
		msg = "Model failed to load or run"
	}
	slog.Warn("[Classifier] Prediction failed", slog.String("error", msg))
	return Result{Label: LabelError, Input: input, Message: msg}
}

// ErrNoModel is returned by loaders without a configured model path.
var ErrNoModel = errors.New("no model configured")
