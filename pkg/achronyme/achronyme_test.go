package achronyme

import (
	"sort"
	"strings"
	"testing"

	"github.com/eddndev/achronyme-go/internal/value"
)

func TestEvalBasicExpression(t *testing.T) {
	e := New()
	got, err := e.Eval("1 + 2 * 3")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != "7" {
		t.Fatalf("got %q, want 7", got)
	}
}

func TestEvalRecordAndVector(t *testing.T) {
	e := New()
	got, err := e.Eval(`let r = { x: 1, y: 2 }
[r.x, r.y]`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != "[1, 2]" {
		t.Fatalf("got %q", got)
	}
}

func TestEvalParseErrorReturnsSoerr(t *testing.T) {
	e := New()
	_, err := e.Eval("1 +")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(LastErrorDetail(err), "[") {
		t.Fatalf("expected a tagged diagnostic, got %q", LastErrorDetail(err))
	}
}

func TestResetClearsBindingsAndHandles(t *testing.T) {
	e := New()
	if _, err := e.Eval("let persisted = 42"); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	e.Create([]float64{1, 2, 3})
	e.Reset()
	// Reset re-binds the built-in constants, so only they remain (in no
	// particular order, hence the sort).
	names := e.ListVariables()
	sort.Strings(names)
	if strings.Join(names, ",") != "e,i,pi" {
		t.Fatalf("expected only the constants [e i pi] after Reset, got %v", names)
	}
	if e.Count() != 0 {
		t.Fatalf("expected no handles after Reset, got %d", e.Count())
	}
}

func TestHandleLifecycle(t *testing.T) {
	e := New()
	id := e.Create([]float64{1, 2, 3})
	if !e.IsValid(id) {
		t.Fatal("expected a freshly created handle to be valid")
	}
	s, err := e.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s != "[1, 2, 3]" {
		t.Fatalf("got %q", s)
	}
	if !e.Release(id) {
		t.Fatal("expected Release to report the handle was live")
	}
	if e.IsValid(id) {
		t.Fatal("expected the handle to be invalid after release")
	}
}

func TestBindVariableAndHandleFromVariable(t *testing.T) {
	e := New()
	id := e.Create([]float64{10, 20})
	if err := e.BindVariable("v", id); err != nil {
		t.Fatalf("BindVariable: %v", err)
	}
	got, err := e.Eval("v[0] + v[1]")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != "30" {
		t.Fatalf("got %q, want 30", got)
	}

	id2, err := e.HandleFromVariable("v")
	if err != nil {
		t.Fatalf("HandleFromVariable: %v", err)
	}
	s, err := e.Get(id2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s != "[10, 20]" {
		t.Fatalf("got %q", s)
	}
}

func TestVAddFastMatchesStringEvalPath(t *testing.T) {
	e := New()
	a := e.Create([]float64{1, 2, 3})
	b := e.Create([]float64{4, 5, 6})
	sum, err := e.VAddFast(a, b)
	if err != nil {
		t.Fatalf("VAddFast: %v", err)
	}
	got, err := e.Get(sum)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	want, err := e.Eval("[1, 2, 3] + [4, 5, 6]")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != want {
		t.Fatalf("fast path %q does not match eval path %q", got, want)
	}
}

func TestMatmulFastMatchesStringEvalPath(t *testing.T) {
	e := New()
	a, err := e.CreateMatrix(2, 2, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("CreateMatrix: %v", err)
	}
	b, err := e.CreateMatrix(2, 2, []float64{5, 6, 7, 8})
	if err != nil {
		t.Fatalf("CreateMatrix: %v", err)
	}
	product, err := e.MatmulFast(a, b)
	if err != nil {
		t.Fatalf("MatmulFast: %v", err)
	}
	got, err := e.Get(product)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	want, err := e.Eval("[[1, 2], [3, 4]] @ [[5, 6], [7, 8]]")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != want {
		t.Fatalf("fast path %q does not match eval path %q", got, want)
	}
}

func TestLinspaceFast(t *testing.T) {
	e := New()
	id, err := e.LinspaceFast(0, 1, 5)
	if err != nil {
		t.Fatalf("LinspaceFast: %v", err)
	}
	got, err := e.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "[0, 0.25, 0.5, 0.75, 1]" {
		t.Fatalf("got %q", got)
	}
}

func TestFFTFastAllocatesValidHandle(t *testing.T) {
	e := New()
	v := e.Create([]float64{1, 0, -1, 0})
	id, err := e.FFTFast(v)
	if err != nil {
		t.Fatalf("FFTFast: %v", err)
	}
	if !e.IsValid(id) {
		t.Fatal("expected FFTFast to allocate a valid handle")
	}
}

func TestCreateFromBufferHandleViewMatchesShape(t *testing.T) {
	e := New()
	id, err := e.CreateFromBuffer([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		t.Fatalf("CreateFromBuffer: %v", err)
	}
	view, err := e.View(id)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if view.Rows != 2 || view.Cols != 3 {
		t.Fatalf("got rows=%d cols=%d, want 2x3", view.Rows, view.Cols)
	}
	if len(view.Data) != 6 {
		t.Fatalf("got %d data points, want 6", len(view.Data))
	}
}

func TestToJSONRecord(t *testing.T) {
	rec := value.NewRecord()
	rec.Fields["a"] = value.Number(1)
	rec.Fields["b"] = value.NewVector(1, 2)

	doc, err := ToJSON(rec)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if v, ok := QueryJSON(doc, "a"); !ok || v != "1" {
		t.Fatalf("got a=%q ok=%v, want 1", v, ok)
	}
	if v, ok := QueryJSON(doc, "b.0"); !ok || v != "1" {
		t.Fatalf("got b.0=%q ok=%v, want 1", v, ok)
	}
}

func TestListVariablesJSON(t *testing.T) {
	e := New()
	if _, err := e.Eval("let x = 1"); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	doc, err := e.ListVariablesJSON()
	if err != nil {
		t.Fatalf("ListVariablesJSON: %v", err)
	}
	// Names are sorted and include the constants: e, i, pi, x.
	if v, ok := QueryJSON(doc, "3.name"); !ok || v != `"x"` {
		t.Fatalf("got %q ok=%v", v, ok)
	}
}
