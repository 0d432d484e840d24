// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package similarity

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// The ONNX Runtime environment is process-global. envRefs counts open
// sessions so the last Close tears it down.
var (
	envMu   sync.Mutex
	envRefs int
)

func acquireEnvironment(sharedLibrary string) error {
	envMu.Lock()
	defer envMu.Unlock()

	if envRefs == 0 && !ort.IsInitialized() {
		if sharedLibrary != "" {
			ort.SetSharedLibraryPath(sharedLibrary)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}
	envRefs++
	return nil
}

func releaseEnvironment() error {
	envMu.Lock()
	defer envMu.Unlock()

	envRefs--
	if envRefs > 0 {
		return nil
	}
	envRefs = 0
	if err := ort.DestroyEnvironment(); err != nil {
		return fmt.Errorf("destroy onnxruntime: %w", err)
	}
	return nil
}

// ONNXConfig locates the exported model and its tensors.
type ONNXConfig struct {
	ModelPath      string
	RuntimeLibrary string
	InputName      string
	OutputName     string
}

// ONNX evaluates an exported similarity model. The model takes a [1, cols]
// float32 input and yields a [1, rows] float32 output.
type ONNX struct {
	session *ort.DynamicAdvancedSession
	rows    int
	cols    int

	mu     sync.RWMutex
	closed bool
}

// NewONNX loads the model at cfg.ModelPath for a rows x cols feature matrix.
func NewONNX(cfg ONNXConfig, rows, cols int) (*ONNX, error) {
	if err := acquireEnvironment(cfg.RuntimeLibrary); err != nil {
		return nil, err
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName}, nil)
	if err != nil {
		_ = releaseEnvironment()
		return nil, fmt.Errorf("load onnx model %s: %w", cfg.ModelPath, err)
	}

	return &ONNX{session: session, rows: rows, cols: cols}, nil
}

// Name implements Model.
func (o *ONNX) Name() string { return "onnx" }

// Score runs one inference. ONNX Runtime cannot be interrupted, so ctx is
// checked before and after the run.
func (o *ONNX) Score(ctx context.Context, query []float32) ([]float64, error) {
	if len(query) != o.cols {
		return nil, fmt.Errorf("%w: query has %d features, model expects %d", ErrShape, len(query), o.cols)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		return nil, ErrClosed
	}

	input := make([]float32, len(query))
	copy(input, query)

	in, err := ort.NewTensor(ort.NewShape(1, int64(o.cols)), input)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer in.Destroy()

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(o.rows)))
	if err != nil {
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	defer out.Destroy()

	if err := o.session.Run([]ort.Value{in}, []ort.Value{out}); err != nil {
		return nil, fmt.Errorf("run onnx model: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := out.GetData()
	if len(raw) != o.rows {
		return nil, fmt.Errorf("%w: model produced %d scores for %d rows", ErrShape, len(raw), o.rows)
	}
	scores := make([]float64, len(raw))
	for i, v := range raw {
		scores[i] = float64(v)
	}
	return scores, nil
}

// Close destroys the session and, for the last open model, the runtime
// environment.
func (o *ONNX) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true

	if err := o.session.Destroy(); err != nil {
		_ = releaseEnvironment()
		return fmt.Errorf("destroy onnx session: %w", err)
	}
	return releaseEnvironment()
}
