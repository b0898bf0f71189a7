package classifier

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	out    []float32
	err    error
	panic  bool
	delay  time.Duration
	inputs [][]float32
}

func (m *fakeModel) Predict(input []float32) ([]float32, error) {
	m.inputs = append(m.inputs, append([]float32(nil), input...))
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.panic {
		panic("boom")
	}
	return m.out, m.err
}

func (m *fakeModel) Close() error { return nil }

func loaderFor(m Model) Loader {
	return LoaderFunc(func() (Model, error) { return m, nil })
}

func TestMoodCode(t *testing.T) {
	tests := []struct {
		mood string
		want float32
	}{
		{"Happy", 9},
		{"Neutral", 5},
		{"Tired", 3},
		{"Sad", 1},
		{"Stressed", 2},
		{"Angry", FallbackMoodCode},
		{"happy", FallbackMoodCode},
		{"", FallbackMoodCode},
	}

	for _, tt := range tests {
		t.Run(tt.mood, func(t *testing.T) {
			assert.Equal(t, tt.want, MoodCode(tt.mood))
		})
	}
}

func TestEncode(t *testing.T) {
	v := Encode("Happy", "5", "great productive day")
	assert.InDelta(t, 1.0, v[0], 1e-6)
	assert.InDelta(t, 0.5, v[1], 1e-6)
	assert.InDelta(t, 1.0, v[2], 1e-6)

	v = Encode("Sad", "abc", "I feel sad")
	assert.InDelta(t, 0.0, v[0], 1e-6)
	assert.InDelta(t, 0.0, v[1], 1e-6, "unparsable sleep counts as zero")
	assert.InDelta(t, 0.0, v[2], 1e-6)

	v = Encode("Unknown", "10", "nothing much")
	assert.InDelta(t, 0.375, v[0], 1e-6)
	assert.InDelta(t, 1.0, v[1], 1e-6)
	assert.InDelta(t, 0.5, v[2], 1e-6)
}

func TestSleepNormalizationIsMonotonic(t *testing.T) {
	prev := float32(-1e9)
	for h := -2.0; h <= 24; h += 0.25 {
		v := SleepRange.Scale(float32(h))
		assert.GreaterOrEqual(t, v, prev, "hours %v", h)
		prev = v
	}
}

func TestClassifyThreshold(t *testing.T) {
	tests := []struct {
		raw  float32
		want Label
	}{
		{0.0, LabelFit},
		{0.49, LabelFit},
		{0.5, LabelUnfit},
		{0.97, LabelUnfit},
		{float32(math.NaN()), LabelUnfit},
	}

	for _, tt := range tests {
		c := NewClassifier(loaderFor(&fakeModel{out: []float32{tt.raw}}))
		res := c.Classify(context.Background(), "Happy", "8", "fine")
		assert.Equal(t, tt.want, res.Label, "raw %v", tt.raw)
		if !math.IsNaN(float64(tt.raw)) {
			assert.Equal(t, tt.raw, res.Raw)
		}
		assert.Empty(t, res.Message)
	}
}

func TestClassifyPassesNormalizedInput(t *testing.T) {
	m := &fakeModel{out: []float32{0.1}}
	c := NewClassifier(loaderFor(m))

	c.Classify(context.Background(), "Neutral", "7.5", "tired")

	require.Len(t, m.inputs, 1)
	assert.InDeltaSlice(t, []float32{0.5, 0.75, 0}, m.inputs[0], 1e-6)
}

func TestClassifyFailuresBecomeErrorResults(t *testing.T) {
	tests := []struct {
		name   string
		loader Loader
	}{
		{"load error", LoaderFunc(func() (Model, error) { return nil, errors.New("missing asset") })},
		{"run error", loaderFor(&fakeModel{err: errors.New("bad tensor")})},
		{"panic", loaderFor(&fakeModel{panic: true})},
		{"wrong output size", loaderFor(&fakeModel{out: []float32{0.1, 0.2}})},
		{"no model configured", FileLoader{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewClassifier(tt.loader).Classify(context.Background(), "Sad", "4", "sad")
			assert.True(t, res.Failed())
			assert.NotEmpty(t, res.Message)
			assert.Contains(t, res.String(), "Error: ")
		})
	}
}

func TestClassifyStopsWaitingOnContext(t *testing.T) {
	c := NewClassifier(loaderFor(&fakeModel{out: []float32{0.1}, delay: 200 * time.Millisecond}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	res := c.Classify(ctx, "Happy", "8", "")
	assert.True(t, res.Failed())
	assert.Contains(t, res.Message, context.DeadlineExceeded.Error())

	// let the abandoned prediction finish before the test exits
	time.Sleep(250 * time.Millisecond)
}

func TestLogisticModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fit_predictor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"weights":[-4,-3,-2],"bias":4}`), 0o644))

	m, err := FileLoader{Path: path}.Load()
	require.NoError(t, err)

	c := NewClassifier(loaderFor(m))
	assert.Equal(t, LabelFit, c.Classify(context.Background(), "Happy", "8", "great day").Label)
	assert.Equal(t, LabelUnfit, c.Classify(context.Background(), "Sad", "3", "sad and tired").Label)
}

func TestLoadLogisticRejectsBadAssets(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadLogistic(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	short := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(short, []byte(`{"weights":[1],"bias":0}`), 0o644))
	_, err = LoadLogistic(short)
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte(`not json`), 0o644))
	_, err = LoadLogistic(garbage)
	assert.Error(t, err)
}

func TestFileLoaderFormats(t *testing.T) {
	_, err := FileLoader{}.Load()
	assert.ErrorIs(t, err, ErrNoModel)

	_, err = FileLoader{Path: "model.tflite"}.Load()
	assert.ErrorContains(t, err, "unsupported model format")

	_, err = FileLoader{Path: filepath.Join(t.TempDir(), "missing.onnx"), ONNX: ONNXOptions{InputName: "in", OutputName: "out"}}.Load()
	assert.ErrorContains(t, err, "model asset")
}

func TestCachedLoader(t *testing.T) {
	calls := 0
	fail := true
	inner := LoaderFunc(func() (Model, error) {
		calls++
		if fail {
			return nil, errors.New("not yet")
		}
		return &fakeModel{out: []float32{0}}, nil
	})

	c := NewCachedLoader(inner)
	_, err := c.Load()
	assert.Error(t, err)

	fail = false
	m1, err := c.Load()
	require.NoError(t, err)
	m2, err := c.Load()
	require.NoError(t, err)

	assert.Same(t, m1, m2)
	assert.Equal(t, 2, calls)

	require.NoError(t, c.Close())
	_, err = c.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestProbe(t *testing.T) {
	c := NewClassifier(loaderFor(&fakeModel{out: []float32{0.3}}))
	assert.NoError(t, c.Probe(context.Background()))

	c = NewClassifier(FileLoader{})
	assert.ErrorIs(t, c.Probe(context.Background()), ErrNoModel)

	c = NewClassifier(loaderFor(&fakeModel{out: []float32{0.1, 0.2}}))
	assert.Error(t, c.Probe(context.Background()))
}
