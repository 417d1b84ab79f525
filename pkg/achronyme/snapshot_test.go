package achronyme

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestEvalSnapshots runs a curated set of representative SOC programs
// through Eval and snapshot-tests their canonical textual output, the same
// snapshot-per-fixture pattern the teacher's fixture suite uses for its
// language test corpus.
func TestEvalSnapshots(t *testing.T) {
	fixtures := []struct {
		name   string
		source string
	}{
		{"arithmetic", "2 + 3 * 4 - 1"},
		{"vector_add", "[1, 2, 3] + [4, 5, 6]"},
		{"matrix_matmul", "[[1, 2], [3, 4]] @ [[5, 6], [7, 8]]"},
		{"closure_counter", `
let makeCounter = () => do {
	let n = 0
	() => do { n = n + 1; n }
}
let counter = makeCounter()
counter()
counter()
counter()`},
		{"record_field_access", `let p = { x: 3, y: 4 }
sqrt(p.x * p.x + p.y * p.y)`},
		{"complex_arithmetic", "(1 + 2i) * (3 - 1i)"},
		{"fft_of_impulse", "fft([1, 0, 0, 0])"},
		{"map_filter_reduce", `
let xs = [1, 2, 3, 4, 5, 6]
let evens = filter((x) => mod(x, 2) == 0, xs)
reduce((a, b) => a + b, 0, evens)`},
	}

	for _, f := range fixtures {
		f := f
		t.Run(f.name, func(t *testing.T) {
			e := New()
			got, err := e.Eval(f.source)
			if err != nil {
				t.Fatalf("Eval(%s): %v", f.name, err)
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_result", f.name), got)
		})
	}
}
