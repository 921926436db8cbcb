package variable_test

import (
	"testing"

	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/unit"
	"github.com/jokasimr/scipp/variable"
)

// TestSumIntoReducesOuterRows mirrors spec scenario S6: out's Dims
// ("x") are a subset of in's Dims ("y", "x"), and SumInto folds every
// row of in's "y" axis into the matching "x" slot of out. The row
// count is well beyond any realistic GOMAXPROCS so the engine's
// parallel split (over out's own outermost Dim, not the reduction
// axis) must still land every row in the right slot no matter how
// many goroutine chunks the runtime creates.
func TestSumIntoReducesOuterRows(t *testing.T) {
	const rows = 4096
	const cols = 3

	inDims := dims(t, []dim.Dim{"y", "x"}, []int64{rows, cols})
	values := make([]float64, rows*cols)
	want := make([]float64, cols)
	for r := int64(0); r < rows; r++ {
		for c := int64(0); c < cols; c++ {
			v := float64(r*int64(cols) + c)
			values[r*int64(cols)+c] = v
			want[c] += v
		}
	}
	in, err := variable.New(inDims, unit.Dimensionless, values)
	if err != nil {
		t.Fatalf("New(in): %v", err)
	}

	outDims := dims(t, []dim.Dim{"x"}, []int64{cols})
	out, err := variable.New(outDims, unit.Dimensionless, make([]float64, cols))
	if err != nil {
		t.Fatalf("New(out): %v", err)
	}

	if err := variable.SumInto(&out, in); err != nil {
		t.Fatalf("SumInto: %v", err)
	}

	got, err := variable.Values[float64](out)
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	for c := range want {
		if got[c] != want[c] {
			t.Errorf("out[%d] = %v, want %v", c, got[c], want[c])
		}
	}
}

// TestSumIntoUniquifiesSharedBuffer mirrors TestInPlaceMutationDoesNotCorruptSlicedChild
// for the accumulate path: out shares a buffer with a sibling slice
// before SumInto mutates it in place.
func TestSumIntoUniquifiesSharedBuffer(t *testing.T) {
	parentDims := dims(t, []dim.Dim{"x"}, []int64{2})
	parent, err := variable.New(parentDims, unit.Dimensionless, []float64{0, 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sibling, err := parent.Slice("x", 0, 2)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}

	inDims := dims(t, []dim.Dim{"y", "x"}, []int64{2, 2})
	in, err := variable.New(inDims, unit.Dimensionless, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("New(in): %v", err)
	}
	if err := variable.SumInto(&parent, in); err != nil {
		t.Fatalf("SumInto: %v", err)
	}

	gotParent, _ := variable.Values[float64](parent)
	wantParent := []float64{4, 6}
	for i := range wantParent {
		if gotParent[i] != wantParent[i] {
			t.Errorf("parent[%d] = %v, want %v", i, gotParent[i], wantParent[i])
		}
	}

	gotSibling, _ := variable.Values[float64](sibling)
	wantSibling := []float64{0, 0}
	for i := range wantSibling {
		if gotSibling[i] != wantSibling[i] {
			t.Errorf("sibling[%d] = %v, want %v (SumInto corrupted a buffer it shared)", i, gotSibling[i], wantSibling[i])
		}
	}
}
