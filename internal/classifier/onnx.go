package classifier

import (
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXOptions configures the ONNX Runtime session.
type ONNXOptions struct {
	// SharedLibrary is the path to the onnxruntime shared library. Empty
	// uses the platform default lookup.
	SharedLibrary string
	InputName     string
	OutputName    string
}

var ortMu sync.Mutex

func initRuntime(sharedLibrary string) error {
	ortMu.Lock()
	defer ortMu.Unlock()

	if ort.IsInitialized() {
		return nil
	}
	if sharedLibrary != "" {
		ort.SetSharedLibraryPath(sharedLibrary)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initializing onnxruntime: %w", err)
	}
	return nil
}

// ONNXModel runs a 1x3 -> 1x1 ONNX graph. Predict calls are serialized
// because the session reuses its input and output tensors.
type ONNXModel struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// LoadONNX opens the model at path and prepares a session bound to
// preallocated tensors.
func LoadONNX(path string, opts ONNXOptions) (*ONNXModel, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("model asset: %w", err)
	}
	if opts.InputName == "" || opts.OutputName == "" {
		return nil, fmt.Errorf("onnx input and output names are required")
	}
	if err := initRuntime(opts.SharedLibrary); err != nil {
		return nil, err
	}

	input, err := ort.NewTensor(ort.NewShape(1, int64(len(Vector{}))), make([]float32, len(Vector{})))
	if err != nil {
		return nil, fmt.Errorf("creating input tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("creating output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(path,
		[]string{opts.InputName}, []string{opts.OutputName},
		[]ort.Value{input}, []ort.Value{output}, nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("creating onnx session: %w", err)
	}

	return &ONNXModel{session: session, input: input, output: output}, nil
}

func (m *ONNXModel) Predict(input []float32) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dst := m.input.GetData()
	if len(input) != len(dst) {
		return nil, fmt.Errorf("input has %d values, want %d", len(input), len(dst))
	}
	copy(dst, input)

	if err := m.session.Run(); err != nil {
		return nil, err
	}
	return append([]float32(nil), m.output.GetData()...), nil
}

func (m *ONNXModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.session.Destroy()
	if e := m.input.Destroy(); err == nil {
		err = e
	}
	if e := m.output.Destroy(); err == nil {
		err = e
	}
	return err
}

// ShutdownRuntime releases the ONNX Runtime environment if it was started.
func ShutdownRuntime() error {
	ortMu.Lock()
	defer ortMu.Unlock()

	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}
