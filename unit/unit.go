package unit

import (
	"bytes"
	"fmt"
	"sort"
)

// Dimension names one axis of a Unit's exponent vector.
type Dimension int

// The base dimensions known to the core, plus CountsDim, a pseudo-dimension
// used only for the counts*counts policy check in the transform engine.
const (
	Length Dimension = iota
	Mass
	Time
	Current
	Temperature
	Luminosity
	Amount
	CountsDim
	numDimensions
)

var symbols = [numDimensions]string{
	Length:      "m",
	Mass:        "kg",
	Time:        "s",
	Current:     "A",
	Temperature: "K",
	Luminosity:  "cd",
	Amount:      "mol",
	CountsDim:   "counts",
}

func (d Dimension) String() string {
	if d < 0 || d >= numDimensions {
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
	return symbols[d]
}

// Unit is a dimensional-exponent vector. The zero Unit is dimensionless.
// Units are comparable with == and are safe to copy and share freely.
type Unit struct {
	exp [numDimensions]int8
}

// Dimensionless is the multiplicative identity unit.
var Dimensionless = Unit{}

// Counts is the pseudo-unit for histogram/event weights.
var Counts = New(CountsDim, 1)

// New constructs a Unit with the given exponent for a single dimension.
// Use Mul/Div/Pow to build compound units, e.g.
//
//	meterPerSecond := unit.New(unit.Length, 1).Div(unit.New(unit.Time, 1))
func New(d Dimension, power int) Unit {
	var u Unit
	u.exp[d] = int8(power)
	return u
}

// IsDimensionless reports whether u is the identity unit.
func (u Unit) IsDimensionless() bool {
	return u == Dimensionless
}

// IsCounts reports whether u is exactly the Counts pseudo-unit.
func (u Unit) IsCounts() bool {
	return u == Counts
}

// Equal reports whether u and o name the same dimensional exponents.
func (u Unit) Equal(o Unit) bool {
	return u == o
}

// Mul returns the unit of a product: exponents add.
func (u Unit) Mul(o Unit) Unit {
	var r Unit
	for i := range r.exp {
		r.exp[i] = u.exp[i] + o.exp[i]
	}
	return r
}

// Div returns the unit of a quotient: exponents subtract.
func (u Unit) Div(o Unit) Unit {
	var r Unit
	for i := range r.exp {
		r.exp[i] = u.exp[i] - o.exp[i]
	}
	return r
}

// Pow raises u to an integer power.
func (u Unit) Pow(n int) Unit {
	var r Unit
	for i := range r.exp {
		r.exp[i] = u.exp[i] * int8(n)
	}
	return r
}

// Sqrt returns the unit whose square is u, and false if u is not a
// perfect square (some exponent is odd).
func (u Unit) Sqrt() (Unit, bool) {
	var r Unit
	for i, e := range u.exp {
		if e%2 != 0 {
			return Unit{}, false
		}
		r.exp[i] = e / 2
	}
	return r, true
}

// String renders the unit as space-separated "symbol" or "symbol^power"
// atoms, positive powers first, matching the formatting convention the
// core's error messages rely on.
func (u Unit) String() string {
	if u.IsDimensionless() {
		return "dimensionless"
	}
	type atom struct {
		sym   string
		power int
	}
	var atoms []atom
	for i, e := range u.exp {
		if e != 0 {
			atoms = append(atoms, atom{symbols[i], int(e)})
		}
	}
	sort.Slice(atoms, func(i, j int) bool {
		pi, pj := atoms[i].power, atoms[j].power
		if (pi > 0) != (pj > 0) {
			return pi > 0
		}
		return atoms[i].sym < atoms[j].sym
	})
	var b bytes.Buffer
	for i, a := range atoms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.sym)
		if a.power != 1 {
			fmt.Fprintf(&b, "^%d", a.power)
		}
	}
	return b.String()
}

// Named convenience units used throughout tests and examples.
var (
	Meter        = New(Length, 1)
	Kilogram     = New(Mass, 1)
	Second       = New(Time, 1)
	MeterSquared = New(Length, 2)
)
