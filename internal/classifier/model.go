package classifier

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Model is a binary classifier over a normalized input vector.
type Model interface {
	Predict(input []float32) ([]float32, error)
	Close() error
}

// Loader provides a ready-to-run Model.
type Loader interface {
	Load() (Model, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func() (Model, error)

func (f LoaderFunc) Load() (Model, error) { return f() }

// FileLoader opens the model asset at Path. The format is picked from the
// file extension: .onnx runs through ONNX Runtime, .json is a logistic
// regression weights file.
type FileLoader struct {
	Path string
	ONNX ONNXOptions
}

func (l FileLoader) Load() (Model, error) {
	if l.Path == "" {
		return nil, ErrNoModel
	}
	switch strings.ToLower(filepath.Ext(l.Path)) {
	case ".onnx":
		return LoadONNX(l.Path, l.ONNX)
	case ".json":
		return LoadLogistic(l.Path)
	default:
		return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(l.Path))
	}
}

// CachedLoader keeps the first successfully loaded model. Failed loads are
// not cached and are retried on the next call.
type CachedLoader struct {
	loader Loader

	mu    sync.Mutex
	model Model
}

func NewCachedLoader(loader Loader) *CachedLoader {
	return &CachedLoader{loader: loader}
}

func (c *CachedLoader) Load() (Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model != nil {
		return c.model, nil
	}
	m, err := c.loader.Load()
	if err != nil {
		return nil, err
	}
	c.model = m
	return m, nil
}

// Close releases the cached model, if any.
func (c *CachedLoader) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model == nil {
		return nil
	}
	err := c.model.Close()
	c.model = nil
	return err
}
