package handle

import (
	"testing"

	"github.com/eddndev/achronyme-go/internal/value"
)

func TestCreateGetRelease(t *testing.T) {
	m := New()
	id := m.Create(value.Number(42))
	v, err := m.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n, ok := v.(value.Number); !ok || n != 42 {
		t.Fatalf("got %v, want 42", v)
	}
	if !m.Release(id) {
		t.Fatal("expected Release to report the handle was live")
	}
	if m.IsValid(id) {
		t.Fatal("expected handle to be invalid after release")
	}
	if _, err := m.Get(id); err == nil {
		t.Fatal("expected an error getting a released handle")
	}
}

func TestReleaseUnknownHandleReportsFalse(t *testing.T) {
	m := New()
	if m.Release(999) {
		t.Fatal("expected Release of an unknown handle to report false")
	}
}

func TestCloneAliasesSameValue(t *testing.T) {
	m := New()
	id := m.Create(value.String("hello"))
	clone, err := m.Clone(id)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if clone == id {
		t.Fatal("expected a distinct handle id from Clone")
	}
	m.Release(id)
	v, err := m.Get(clone)
	if err != nil {
		t.Fatalf("expected the clone to remain valid after the original is released: %v", err)
	}
	if s, ok := v.(value.String); !ok || s != "hello" {
		t.Fatalf("got %v, want \"hello\"", v)
	}
}

func TestCountAndStats(t *testing.T) {
	m := New()
	a := m.Create(value.Number(1))
	m.Create(value.Number(2))
	if m.Count() != 2 {
		t.Fatalf("got count %d, want 2", m.Count())
	}
	m.Release(a)
	stats := m.Stats()
	if stats.Active != 1 || stats.TotalAllocated != 2 || stats.TotalFreed != 1 {
		t.Fatalf("got stats %+v", stats)
	}
}

func TestClearReleasesEverything(t *testing.T) {
	m := New()
	m.Create(value.Number(1))
	m.Create(value.Number(2))
	m.Clear()
	if m.Count() != 0 {
		t.Fatalf("expected 0 handles after Clear, got %d", m.Count())
	}
}

func TestCreateFromBufferVector(t *testing.T) {
	m := New()
	id, err := m.CreateFromBuffer([]float64{1, 2, 3}, 0, 0)
	if err != nil {
		t.Fatalf("CreateFromBuffer: %v", err)
	}
	v, _ := m.Get(id)
	tensor, ok := v.(*value.Tensor)
	if !ok {
		t.Fatalf("expected a Tensor, got %T", v)
	}
	if tensor.String() != "[1, 2, 3]" {
		t.Fatalf("got %s", tensor.String())
	}
}

func TestCreateFromBufferMatrixShapeMismatch(t *testing.T) {
	m := New()
	if _, err := m.CreateFromBuffer([]float64{1, 2, 3}, 2, 2); err == nil {
		t.Fatal("expected an error when rows*cols does not match buffer length")
	}
}

func TestCreateFromBufferCopiesData(t *testing.T) {
	m := New()
	buf := []float64{1, 2, 3}
	id, _ := m.CreateFromBuffer(buf, 0, 0)
	buf[0] = 999
	v, _ := m.Get(id)
	tensor := v.(*value.Tensor)
	if tensor.Data[0] == 999 {
		t.Fatal("expected CreateFromBuffer to copy, not alias, the host buffer")
	}
}
