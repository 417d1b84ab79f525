package achronyme

import (
	"github.com/eddndev/achronyme-go/internal/handle"
	"github.com/eddndev/achronyme-go/internal/kernels/calc"
	"github.com/eddndev/achronyme-go/internal/kernels/dsp"
	"github.com/eddndev/achronyme-go/internal/kernels/linalg"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/token"
	"github.com/eddndev/achronyme-go/internal/value"
)

// HandleID is the host-facing alias of the internal handle identifier
// (spec.md §4.11).
type HandleID = handle.ID

// Create stores v (built by the host via the Vector/Matrix helpers below)
// and returns a fresh handle with a single reference (spec.md §4.11).
func (e *Engine) Create(data []float64) HandleID {
	return e.ev.Handles.Create(value.NewVector(data...))
}

// CreateMatrix stores a rows x cols matrix, row-major (spec.md §4.11).
func (e *Engine) CreateMatrix(rows, cols int, data []float64) (HandleID, error) {
	if rows*cols != len(data) {
		return 0, soerr.New(soerr.Shape, "create_matrix: rows*cols (%d) does not match buffer length %d", rows*cols, len(data))
	}
	return e.ev.Handles.Create(value.NewTensorFromData([]int{rows, cols}, data)), nil
}

// CreateFromBuffer copies a host-owned buffer into a fresh handle; when
// rows and cols are both > 0 it is shaped as a matrix, otherwise a vector
// (spec.md §4.11's create_from_buffer — the engine always copies rather
// than aliasing the host's memory, since the host buffer's lifetime is
// independent of the handle's).
func (e *Engine) CreateFromBuffer(buf []float64, rows, cols int) (HandleID, error) {
	return e.ev.Handles.CreateFromBuffer(buf, rows, cols)
}

// Get returns the canonical string form of the Value behind a handle,
// without releasing it.
func (e *Engine) Get(id HandleID) (string, error) {
	v, err := e.ev.Handles.Get(id)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Clone increments the reference count and returns a new handle aliasing
// the same Value (spec.md §4.11).
func (e *Engine) Clone(id HandleID) (HandleID, error) {
	return e.ev.Handles.Clone(id)
}

// Release drops a handle, reporting whether it was live (spec.md §4.11;
// §8 S10: IsValid(id) is false afterward, and further operations raise
// soerr.Disposed).
func (e *Engine) Release(id HandleID) bool {
	return e.ev.Handles.Release(id)
}

// IsValid reports whether id currently refers to a live handle.
func (e *Engine) IsValid(id HandleID) bool {
	return e.ev.Handles.IsValid(id)
}

// Count returns the number of currently live handles.
func (e *Engine) Count() int {
	return e.ev.Handles.Count()
}

// Clear releases every handle (spec.md §4.11).
func (e *Engine) Clear() {
	e.ev.Handles.Clear()
}

// BindVariable bridges a handle into the top-level Environment under name,
// so the string-eval path can reference it (spec.md §4.11, §8 S10).
func (e *Engine) BindVariable(name string, id HandleID) error {
	return e.ev.BindVariable(name, id)
}

// HandleFromVariable wraps the current Value of a top-level binding in a
// fresh handle (spec.md §4.11).
func (e *Engine) HandleFromVariable(name string) (HandleID, error) {
	return e.ev.HandleFromVariable(name)
}

// BufferView is the native realization of spec.md §6's buffer protocol
// (get_length/get_data_ptr/get_rows/get_cols): Data aliases the engine's
// storage for the handle directly (not a copy), so the view is valid only
// until the handle is released (kernels never mutate a tensor in place —
// every operation below allocates a fresh output handle — so the view
// cannot be invalidated by a later fast-path call on a different handle).
// A WASM host reads the same pointer+length shape through cmd/achronyme-wasm,
// which marshals this slice's backing array into linear memory.
type BufferView struct {
	Data []float64
	Rows int
	Cols int
}

// View implements the buffer protocol for a Tensor handle.
func (e *Engine) View(id HandleID) (BufferView, error) {
	v, err := e.ev.Handles.Get(id)
	if err != nil {
		return BufferView{}, err
	}
	t, ok := v.(*value.Tensor)
	if !ok {
		return BufferView{}, soerr.New(soerr.Type, "handle %d does not hold a Tensor", id)
	}
	bv := BufferView{Data: t.Data}
	switch t.Rank() {
	case 2:
		bv.Rows, bv.Cols = t.Shape[0], t.Shape[1]
	case 1:
		bv.Rows, bv.Cols = 1, t.Shape[0]
	}
	return bv, nil
}

func (e *Engine) tensorArg(id HandleID) (*value.Tensor, error) {
	v, err := e.ev.Handles.Get(id)
	if err != nil {
		return nil, err
	}
	t, ok := v.(*value.Tensor)
	if !ok {
		return nil, soerr.New(soerr.Type, "handle %d does not hold a Tensor", id)
	}
	return t, nil
}

func (e *Engine) binaryFast(op token.Kind, a, b HandleID) (HandleID, error) {
	at, err := e.tensorArg(a)
	if err != nil {
		return 0, err
	}
	bt, err := e.tensorArg(b)
	if err != nil {
		return 0, err
	}
	result, err := e.ev.BinaryOp(op, at, bt)
	if err != nil {
		return 0, err
	}
	return e.ev.Handles.Create(result), nil
}

// VAddFast, VSubFast, VMulFast, VDivFast are the handle fast-path
// counterparts of `+`, `-`, `*`, `/` on Tensors (spec.md §4.11, §9 "two
// surfaces, one semantics"): each calls the identical Evaluator.BinaryOp
// routine the string-eval path uses, so results are bit-identical.
func (e *Engine) VAddFast(a, b HandleID) (HandleID, error) { return e.binaryFast(token.PLUS, a, b) }
func (e *Engine) VSubFast(a, b HandleID) (HandleID, error) { return e.binaryFast(token.MINUS, a, b) }
func (e *Engine) VMulFast(a, b HandleID) (HandleID, error) { return e.binaryFast(token.STAR, a, b) }
func (e *Engine) VDivFast(a, b HandleID) (HandleID, error) { return e.binaryFast(token.SLASH, a, b) }

// MatmulFast is the fast-path counterpart of `@`.
func (e *Engine) MatmulFast(a, b HandleID) (HandleID, error) { return e.binaryFast(token.AT, a, b) }

// LinspaceFast builds a vector of n evenly spaced points from start to stop
// inclusive, returning a new handle (spec.md §4.11 "e.g. linspace_fast").
func (e *Engine) LinspaceFast(start, stop float64, n int) (HandleID, error) {
	if n < 2 {
		return 0, soerr.New(soerr.Domain, "linspace_fast: n must be >= 2, got %d", n)
	}
	data := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range data {
		data[i] = start + float64(i)*step
	}
	return e.ev.Handles.Create(value.NewVector(data...)), nil
}

// FFTFast and FFTMagFast are the handle fast-path counterparts of `fft` and
// `fft_mag`, calling the same kernels.dsp routines as the registry builtins
// (spec.md §4.7, §9 "two surfaces, one semantics"; §8 S9 requires
// bit-identical results).
func (e *Engine) FFTFast(id HandleID) (HandleID, error) {
	t, err := e.tensorArg(id)
	if err != nil {
		return 0, err
	}
	in := make([]complex128, len(t.Data))
	for i, d := range t.Data {
		in[i] = complex(d, 0)
	}
	out := dsp.FFT(in)
	shape := []int{len(out), 2}
	data := make([]float64, 0, len(out)*2)
	for _, c := range out {
		data = append(data, real(c), imag(c))
	}
	return e.ev.Handles.Create(value.NewTensorFromData(shape, data)), nil
}

func (e *Engine) FFTMagFast(id HandleID) (HandleID, error) {
	t, err := e.tensorArg(id)
	if err != nil {
		return 0, err
	}
	in := make([]complex128, len(t.Data))
	for i, d := range t.Data {
		in[i] = complex(d, 0)
	}
	mag := dsp.Spectrum(dsp.FFT(in))
	return e.ev.Handles.Create(value.NewVector(mag...)), nil
}

// SolveFast is the handle fast-path counterpart of `solve(A, b)` for a
// linear system (the Tensor-argument branch of the registry's solve
// dispatch, spec.md §9's open question 2).
func (e *Engine) SolveFast(a, b HandleID) (HandleID, error) {
	at, err := e.tensorArg(a)
	if err != nil {
		return 0, err
	}
	bt, err := e.tensorArg(b)
	if err != nil {
		return 0, err
	}
	rows := at.Shape[0]
	matrix := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		matrix[i] = append([]float64(nil), at.Row(i)...)
	}
	x, err := linalg.Solve(matrix, bt.Data)
	if err != nil {
		return 0, soerr.New(soerr.Singular, "solve_fast: %v", err)
	}
	return e.ev.Handles.Create(value.NewVector(x...)), nil
}

// RootBisectionFast is the handle fast-path counterpart of
// `root_bisection`; the callback is itself a handle to a Function or
// NativeFunc Value, invoked through the evaluator's Call so it runs the
// identical SOC closure the string path would.
func (e *Engine) RootBisectionFast(fnHandle HandleID, a, b, tol float64, maxIter int) (float64, error) {
	fn, err := e.ev.Handles.Get(fnHandle)
	if err != nil {
		return 0, err
	}
	f := calc.Func(func(x float64) float64 {
		v, err := e.ev.Call(fn, []value.Value{value.Number(x)})
		if err != nil {
			return 0
		}
		if n, ok := v.(value.Number); ok {
			return float64(n)
		}
		return 0
	})
	root, err := calc.Bisection(f, a, b, tol, maxIter)
	if err != nil {
		return 0, soerr.New(soerr.Convergence, "root_bisection_fast: %v", err)
	}
	return root, nil
}
