package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// LogisticModel is a logistic regression exported as plain weights, for
// deployments without ONNX Runtime.
type LogisticModel struct {
	Weights []float32 `json:"weights"`
	Bias    float32   `json:"bias"`
}

// LoadLogistic reads a weights file of the form {"weights":[...],"bias":b}.
func LoadLogistic(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model asset: %w", err)
	}

	var m LogisticModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing model asset: %w", err)
	}
	if len(m.Weights) != len(Vector{}) {
		return nil, fmt.Errorf("model has %d weights, want %d", len(m.Weights), len(Vector{}))
	}
	return &m, nil
}

func (m *LogisticModel) Predict(input []float32) ([]float32, error) {
	if len(input) != len(m.Weights) {
		return nil, fmt.Errorf("input has %d values, want %d", len(input), len(m.Weights))
	}

	z := float64(m.Bias)
	for i, w := range m.Weights {
		z += float64(w) * float64(input[i])
	}
	return []float32{float32(1 / (1 + math.Exp(-z)))}, nil
}

func (m *LogisticModel) Close() error { return nil }
