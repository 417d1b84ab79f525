package runtime

import (
	"sort"
	"testing"

	"github.com/eddndev/achronyme-go/internal/value"
)

func TestDefineAndGet(t *testing.T) {
	e := New()
	e.Define("x", value.Number(1))
	v, ok := e.Get("x")
	if !ok {
		t.Fatal("expected x to be bound")
	}
	if n, ok := v.(value.Number); !ok || n != 1 {
		t.Fatalf("got %v, want 1", v)
	}
	if _, ok := e.Get("y"); ok {
		t.Fatal("expected y to be unbound")
	}
}

func TestChildSeesParentBindings(t *testing.T) {
	parent := New()
	parent.Define("x", value.Number(1))
	child := parent.NewChildEnv()
	v, ok := child.Get("x")
	if !ok || v.(value.Number) != 1 {
		t.Fatalf("expected child to see parent binding, got %v ok=%v", v, ok)
	}
}

func TestChildShadowsParentBinding(t *testing.T) {
	parent := New()
	parent.Define("x", value.Number(1))
	child := parent.NewChildEnv()
	child.Define("x", value.Number(2))

	if v, _ := child.Get("x"); v.(value.Number) != 2 {
		t.Fatalf("expected shadowed value 2, got %v", v)
	}
	if v, _ := parent.Get("x"); v.(value.Number) != 1 {
		t.Fatalf("expected parent's own binding to remain 1, got %v", v)
	}
}

func TestGetLocalDoesNotWalkOuter(t *testing.T) {
	parent := New()
	parent.Define("x", value.Number(1))
	child := parent.NewChildEnv()

	if _, ok := child.GetLocal("x"); ok {
		t.Fatal("expected GetLocal to not see the parent's binding")
	}
	if _, ok := child.Get("x"); !ok {
		t.Fatal("expected Get to see the parent's binding")
	}
}

func TestAssignUpdatesNearestEnclosingBinding(t *testing.T) {
	parent := New()
	parent.Define("x", value.Number(1))
	child := parent.NewChildEnv()

	if ok := child.Assign("x", value.Number(42)); !ok {
		t.Fatal("expected Assign to find the outer binding")
	}
	if v, _ := parent.Get("x"); v.(value.Number) != 42 {
		t.Fatalf("expected parent's binding updated to 42, got %v", v)
	}
}

func TestAssignToUnboundNameReportsFalse(t *testing.T) {
	e := New()
	if ok := e.Assign("never_defined", value.Number(1)); ok {
		t.Fatal("expected Assign to report false for an unbound name")
	}
}

func TestNamesReturnsOnlyOwnScope(t *testing.T) {
	parent := New()
	parent.Define("outer", value.Number(1))
	child := parent.NewChildEnv()
	child.Define("inner", value.Number(2))

	names := child.Names()
	sort.Strings(names)
	if len(names) != 1 || names[0] != "inner" {
		t.Fatalf("got %v, want [inner]", names)
	}
}
