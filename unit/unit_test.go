package unit_test

import (
	"testing"

	"github.com/jokasimr/scipp/unit"
)

func TestMulDiv(t *testing.T) {
	mPerS := unit.Meter.Div(unit.Second)
	if got, want := mPerS.String(), "m s^-1"; got != want {
		t.Errorf("Meter/Second = %q, want %q", got, want)
	}
	area := unit.Meter.Mul(unit.Meter)
	if !area.Equal(unit.MeterSquared) {
		t.Errorf("Meter*Meter = %v, want %v", area, unit.MeterSquared)
	}
	if got := unit.Meter.Mul(unit.Second).Div(unit.Second); !got.Equal(unit.Meter) {
		t.Errorf("(m*s)/s = %v, want %v", got, unit.Meter)
	}
}

func TestPowSqrt(t *testing.T) {
	cube := unit.Meter.Pow(3)
	if got, want := cube.String(), "m^3"; got != want {
		t.Errorf("Meter^3 = %q, want %q", got, want)
	}
	root, ok := unit.MeterSquared.Sqrt()
	if !ok || !root.Equal(unit.Meter) {
		t.Errorf("sqrt(m^2) = (%v, %v), want (%v, true)", root, ok, unit.Meter)
	}
	if _, ok := unit.Meter.Sqrt(); ok {
		t.Errorf("sqrt(m) should not be a perfect square")
	}
}

func TestCountsPolicy(t *testing.T) {
	if !unit.Counts.IsCounts() {
		t.Errorf("Counts.IsCounts() = false, want true")
	}
	if unit.Dimensionless.IsCounts() {
		t.Errorf("Dimensionless.IsCounts() = true, want false")
	}
	if !unit.Dimensionless.IsDimensionless() {
		t.Errorf("Dimensionless.IsDimensionless() = false, want true")
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		u    unit.Unit
		want string
	}{
		{unit.Dimensionless, "dimensionless"},
		{unit.Meter, "m"},
		{unit.MeterSquared, "m^2"},
		{unit.Meter.Div(unit.Second.Pow(2)), "m s^-2"},
	}
	for _, c := range cases {
		if got := c.u.String(); got != c.want {
			t.Errorf("%#v.String() = %q, want %q", c.u, got, c.want)
		}
	}
}
