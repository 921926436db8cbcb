package dataarray_test

import (
	"testing"

	"github.com/jokasimr/scipp/dataarray"
	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/unit"
	"github.com/jokasimr/scipp/variable"
)

func vec(t *testing.T, labels []dim.Dim, sizes []int64, u unit.Unit, values []float64) variable.Variable {
	t.Helper()
	d, err := dim.New(labels, sizes)
	if err != nil {
		t.Fatalf("dim.New: %v", err)
	}
	v, err := variable.New(d, u, values)
	if err != nil {
		t.Fatalf("variable.New: %v", err)
	}
	return v
}

func TestRenameAlsoRenamesData(t *testing.T) {
	data := vec(t, []dim.Dim{"x"}, []int64{3}, unit.Dimensionless, []float64{1, 2, 3})
	da := dataarray.New("a", data)
	renamed, err := da.Rename("x", "y")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Data().Dims().Contains("x") {
		t.Errorf("Rename: Data() still has old dim x")
	}
	if !renamed.Data().Dims().Contains("y") {
		t.Errorf("Rename: Data() missing new dim y")
	}
}

func TestIsEdgeOnlyWithSibling(t *testing.T) {
	data := vec(t, []dim.Dim{"x"}, []int64{3}, unit.Dimensionless, []float64{1, 2, 3})
	coord := vec(t, []dim.Dim{"x"}, []int64{4}, unit.Dimensionless, []float64{0, 1, 2, 3})
	da := dataarray.New("a", data).SetCoord("x", coord)
	if !da.IsEdge("x") {
		t.Errorf("IsEdge(x) = false, want true (coord is N+1 vs Data()'s N)")
	}
}

func TestConcatenateAlongExistingDim(t *testing.T) {
	a := vec(t, []dim.Dim{"x"}, []int64{2}, unit.Dimensionless, []float64{1, 2})
	b := vec(t, []dim.Dim{"x"}, []int64{2}, unit.Dimensionless, []float64{3, 4})
	daA := dataarray.New("a", a)
	daB := dataarray.New("a", b)
	got, err := dataarray.Concatenate(daA, daB, "x")
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}
	vals, err := variable.Values[float64](got.Data())
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	want := []float64{1, 2, 3, 4}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("Data()[%d] = %v, want %v", i, vals[i], want[i])
		}
	}
}

func TestConcatenateEdgeCoordsSeamAgrees(t *testing.T) {
	a := vec(t, []dim.Dim{"x"}, []int64{2}, unit.Dimensionless, []float64{1, 2})
	b := vec(t, []dim.Dim{"x"}, []int64{2}, unit.Dimensionless, []float64{3, 4})
	edgeA := vec(t, []dim.Dim{"x"}, []int64{3}, unit.Dimensionless, []float64{0, 1, 2})
	edgeB := vec(t, []dim.Dim{"x"}, []int64{3}, unit.Dimensionless, []float64{2, 3, 4})
	daA := dataarray.New("a", a).SetCoord("x", edgeA)
	daB := dataarray.New("a", b).SetCoord("x", edgeB)

	got, err := dataarray.Concatenate(daA, daB, "x")
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}
	edge, ok := got.Coords()["x"]
	if !ok {
		t.Fatalf("coord %q missing from result", "x")
	}
	vals, err := variable.Values[float64](edge)
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	want := []float64{0, 1, 2, 3, 4}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("edge[%d] = %v, want %v", i, vals[i], want[i])
		}
	}
}

func TestConcatenateEdgeCoordsSeamMismatchErrors(t *testing.T) {
	a := vec(t, []dim.Dim{"x"}, []int64{2}, unit.Dimensionless, []float64{1, 2})
	b := vec(t, []dim.Dim{"x"}, []int64{2}, unit.Dimensionless, []float64{3, 4})
	edgeA := vec(t, []dim.Dim{"x"}, []int64{3}, unit.Dimensionless, []float64{0, 1, 2})
	edgeB := vec(t, []dim.Dim{"x"}, []int64{3}, unit.Dimensionless, []float64{99, 3, 4})
	daA := dataarray.New("a", a).SetCoord("x", edgeA)
	daB := dataarray.New("a", b).SetCoord("x", edgeB)

	_, err := dataarray.Concatenate(daA, daB, "x")
	if err == nil {
		t.Fatalf("Concatenate: want BinEdgeError for mismatched seam, got nil")
	}
	if _, ok := err.(*variable.BinEdgeError); !ok {
		t.Errorf("Concatenate error = %T, want *variable.BinEdgeError", err)
	}
}

func TestConcatenateNewDimStacksAttrs(t *testing.T) {
	a := vec(t, []dim.Dim{"x"}, []int64{2}, unit.Dimensionless, []float64{1, 2})
	b := vec(t, []dim.Dim{"x"}, []int64{2}, unit.Dimensionless, []float64{3, 4})
	attrA := vec(t, []dim.Dim{"x"}, []int64{2}, unit.Dimensionless, []float64{10, 20})
	attrB := vec(t, []dim.Dim{"x"}, []int64{2}, unit.Dimensionless, []float64{30, 40})
	daA := dataarray.New("a", a).SetAttr("run", attrA)
	daB := dataarray.New("a", b).SetAttr("run", attrB)

	got, err := dataarray.Concatenate(daA, daB, "run")
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}
	stacked, ok := got.Attrs()["run"]
	if !ok {
		t.Fatalf("attr %q missing from result", "run")
	}
	if !stacked.Dims().Contains("run") {
		t.Errorf("stacked attr does not carry the new dim %q", "run")
	}
}
