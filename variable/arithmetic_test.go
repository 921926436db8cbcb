package variable_test

import (
	"math"
	"testing"

	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/unit"
	"github.com/jokasimr/scipp/variable"
)

func dims(t *testing.T, labels []dim.Dim, sizes []int64) dim.Dimensions {
	t.Helper()
	d, err := dim.New(labels, sizes)
	if err != nil {
		t.Fatalf("dim.New: %v", err)
	}
	return d
}

func TestMulPropagatesVariance(t *testing.T) {
	d := dims(t, []dim.Dim{"x"}, []int64{1})
	a, err := variable.NewWithVariances(d, unit.Dimensionless, []float64{2}, []float64{1})
	if err != nil {
		t.Fatalf("NewWithVariances: %v", err)
	}
	b, err := variable.NewWithVariances(d, unit.Dimensionless, []float64{3}, []float64{2})
	if err != nil {
		t.Fatalf("NewWithVariances: %v", err)
	}
	got, err := variable.Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	vals, _ := variable.Values[float64](got)
	vars, _ := variable.Variances[float64](got)
	if vals[0] != 6 {
		t.Errorf("value = %v, want 6", vals[0])
	}
	// Var(a*b) = Var(a)*b^2 + Var(b)*a^2 = 1*9 + 2*4 = 17
	if vars[0] != 17 {
		t.Errorf("variance = %v, want 17", vars[0])
	}
}

func TestMulInPlaceRejectsVarianceMismatch(t *testing.T) {
	d := dims(t, []dim.Dim{"x"}, []int64{1})
	a, err := variable.NewWithVariances(d, unit.Dimensionless, []float64{3}, []float64{2})
	if err != nil {
		t.Fatalf("NewWithVariances: %v", err)
	}
	b, err := variable.New(d, unit.Dimensionless, []float64{4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := variable.MulInPlace(&a, b); err == nil {
		t.Fatalf("MulInPlace: want VariancesError, got nil")
	} else if _, ok := err.(*variable.VariancesError); !ok {
		t.Errorf("MulInPlace error = %T, want *VariancesError", err)
	}
}

func TestNegVarianceUnchanged(t *testing.T) {
	d := dims(t, []dim.Dim{"x"}, []int64{2})
	a, err := variable.NewWithVariances(d, unit.Dimensionless, []float64{1, -2}, []float64{5, 6})
	if err != nil {
		t.Fatalf("NewWithVariances: %v", err)
	}
	got, err := variable.Neg(a)
	if err != nil {
		t.Fatalf("Neg: %v", err)
	}
	vals, _ := variable.Values[float64](got)
	vars, _ := variable.Variances[float64](got)
	if vals[0] != -1 || vals[1] != 2 {
		t.Errorf("values = %v, want [-1 2]", vals)
	}
	if vars[0] != 5 || vars[1] != 6 {
		t.Errorf("variances = %v, want unchanged [5 6]", vars)
	}
}

func TestSqrtRequiresPerfectSquareUnit(t *testing.T) {
	d := dims(t, []dim.Dim{"x"}, []int64{1})
	a, err := variable.New(d, unit.MeterSquared, []float64{9})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := variable.Sqrt(a)
	if err != nil {
		t.Fatalf("Sqrt: %v", err)
	}
	vals, _ := variable.Values[float64](got)
	if vals[0] != 3 {
		t.Errorf("sqrt(9) = %v, want 3", vals[0])
	}
	if !got.Unit().Equal(unit.Meter) {
		t.Errorf("sqrt(m^2) unit = %v, want %v", got.Unit(), unit.Meter)
	}
	bad, err := variable.New(d, unit.Meter, []float64{9})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := variable.Sqrt(bad); err == nil {
		t.Errorf("Sqrt(m): want UnitError, got nil")
	} else if _, ok := err.(*variable.UnitError); !ok {
		t.Errorf("Sqrt(m) error = %T, want *UnitError", err)
	}
}

func TestAddInPlaceAliasedBuffer(t *testing.T) {
	// a_copy and b alias the same buffer (b is a second handle on
	// a_copy's buffer); per spec §8 Testable Property 3 the in-place
	// result must equal the out-of-place result even when buffers are
	// shared.
	d := dims(t, []dim.Dim{"x"}, []int64{1})
	a, err := variable.New(d, unit.Dimensionless, []float64{5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	aCopy := a.Copy()
	b := aCopy
	want, err := variable.Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := variable.AddInPlace(&aCopy, b); err != nil {
		t.Fatalf("AddInPlace: %v", err)
	}
	wantVals, _ := variable.Values[float64](want)
	gotVals, _ := variable.Values[float64](aCopy)
	if gotVals[0] != wantVals[0] {
		t.Errorf("in-place add = %v, want %v", gotVals[0], wantVals[0])
	}
}

// TestInPlaceMutationDoesNotCorruptSlicedChild exercises the actual
// copy-on-write path: child shares parent's buffer via Slice, so
// mutating parent in place must uniquify parent's buffer first rather
// than writing through the shared one underneath child.
func TestInPlaceMutationDoesNotCorruptSlicedChild(t *testing.T) {
	d := dims(t, []dim.Dim{"x"}, []int64{3})
	parent, err := variable.New(d, unit.Dimensionless, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	child, err := parent.Slice("x", 1, 3)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	childBefore, _ := variable.Values[float64](child)
	wantChild := append([]float64(nil), childBefore...)

	delta, err := variable.New(d, unit.Dimensionless, []float64{100, 100, 100})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := variable.AddInPlace(&parent, delta); err != nil {
		t.Fatalf("AddInPlace: %v", err)
	}

	gotParent, _ := variable.Values[float64](parent)
	wantParent := []float64{101, 102, 103}
	for i := range wantParent {
		if gotParent[i] != wantParent[i] {
			t.Errorf("parent[%d] = %v, want %v", i, gotParent[i], wantParent[i])
		}
	}

	gotChild, _ := variable.Values[float64](child)
	for i := range wantChild {
		if gotChild[i] != wantChild[i] {
			t.Errorf("child[%d] = %v, want %v (in-place write on parent corrupted the sliced child's buffer)", i, gotChild[i], wantChild[i])
		}
	}
}

func TestPowByRepeatedSquaring(t *testing.T) {
	d := dims(t, []dim.Dim{"x"}, []int64{1})
	a, err := variable.New(d, unit.Dimensionless, []float64{2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := variable.Pow(a, 5)
	if err != nil {
		t.Fatalf("Pow: %v", err)
	}
	vals, _ := variable.Values[float64](got)
	if vals[0] != 32 {
		t.Errorf("2^5 = %v, want 32", vals[0])
	}
}

func TestExpRequiresDimensionless(t *testing.T) {
	d := dims(t, []dim.Dim{"x"}, []int64{1})
	a, err := variable.New(d, unit.Dimensionless, []float64{0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := variable.Exp(a)
	if err != nil {
		t.Fatalf("Exp: %v", err)
	}
	vals, _ := variable.Values[float64](got)
	if math.Abs(vals[0]-1) > 1e-12 {
		t.Errorf("exp(0) = %v, want 1", vals[0])
	}
	bad, err := variable.New(d, unit.Meter, []float64{0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := variable.Exp(bad); err == nil {
		t.Errorf("Exp(m): want UnitError, got nil")
	} else if _, ok := err.(*variable.UnitError); !ok {
		t.Errorf("Exp(m) error = %T, want *UnitError", err)
	}
}
