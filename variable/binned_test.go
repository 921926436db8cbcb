package variable_test

import (
	"testing"

	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/dtype"
	"github.com/jokasimr/scipp/unit"
	"github.com/jokasimr/scipp/variable"
)

func makeBinned(t *testing.T, pairs []dtype.IndexPair, buf []float64) variable.Variable {
	t.Helper()
	outer := dims(t, []dim.Dim{"y"}, []int64{int64(len(pairs))})
	idx, err := variable.New(outer, unit.Dimensionless, pairs)
	if err != nil {
		t.Fatalf("New(indices): %v", err)
	}
	bufDims := dims(t, []dim.Dim{"x"}, []int64{int64(len(buf))})
	bufVar, err := variable.New(bufDims, unit.Dimensionless, buf)
	if err != nil {
		t.Fatalf("New(buffer): %v", err)
	}
	v, err := variable.MakeBins(idx, "x", bufVar)
	if err != nil {
		t.Fatalf("MakeBins: %v", err)
	}
	return v
}

// TestBinnedConcatenate mirrors spec scenario S5: indices_a = [(0,2),(2,4)]
// over buffer [1,2,3,4] along X; b = a*3; concatenate(a,b) produces
// indices [(0,4),(4,8)] over buffer [1,2,3,6,3,4,9,12].
func TestBinnedConcatenate(t *testing.T) {
	a := makeBinned(t, []dtype.IndexPair{{Begin: 0, End: 2}, {Begin: 2, End: 4}}, []float64{1, 2, 3, 4})

	aSum, err := variable.Sum(a)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	aSumVals, _ := variable.Values[float64](aSum)
	if aSumVals[0] != 3 || aSumVals[1] != 7 {
		t.Errorf("Sum(a) = %v, want [3 7]", aSumVals)
	}

	b := makeBinned(t, []dtype.IndexPair{{Begin: 0, End: 2}, {Begin: 2, End: 4}}, []float64{3, 6, 9, 12})

	got, err := variable.Concatenate(a, b)
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}
	gotIndices, _ := got.BinIndices()
	gotPairs, err := variable.Values[dtype.IndexPair](gotIndices)
	if err != nil {
		t.Fatalf("Values(indices): %v", err)
	}
	wantPairs := []dtype.IndexPair{{Begin: 0, End: 4}, {Begin: 4, End: 8}}
	for i := range wantPairs {
		if gotPairs[i] != wantPairs[i] {
			t.Errorf("indices[%d] = %v, want %v", i, gotPairs[i], wantPairs[i])
		}
	}
	gotBuf, err := variable.Values[float64](got.BinBuffer())
	if err != nil {
		t.Fatalf("Values(events): %v", err)
	}
	wantBuf := []float64{1, 2, 3, 6, 3, 4, 9, 12}
	for i := range wantBuf {
		if gotBuf[i] != wantBuf[i] {
			t.Errorf("buffer[%d] = %v, want %v", i, gotBuf[i], wantBuf[i])
		}
	}
}

func TestHistogramNonLinearEdges(t *testing.T) {
	events, err := variable.New(dims(t, []dim.Dim{"x"}, []int64{4}), unit.Dimensionless, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("New(events): %v", err)
	}
	weights, err := variable.NewWithVariances(dims(t, []dim.Dim{"x"}, []int64{4}), unit.Counts, []float64{1, 2, 3, 4}, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewWithVariances(weights): %v", err)
	}
	edges, err := variable.New(dims(t, []dim.Dim{"x"}, []int64{4}), unit.Dimensionless, []float64{0, 1, 2, 4})
	if err != nil {
		t.Fatalf("New(edges): %v", err)
	}
	got, err := variable.Histogram(events, weights, edges)
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	vals, _ := variable.Values[float64](got)
	vars, _ := variable.Variances[float64](got)
	wantVals := []float64{0, 1, 5}
	wantVars := []float64{0, 1, 5}
	for i := range wantVals {
		if vals[i] != wantVals[i] || vars[i] != wantVars[i] {
			t.Errorf("bin %d = (%v,%v), want (%v,%v)", i, vals[i], vars[i], wantVals[i], wantVars[i])
		}
	}
}
