package variable

import (
	"math"

	"github.com/jokasimr/scipp/dtype"
	"github.com/jokasimr/scipp/transform"
	"github.com/jokasimr/scipp/unit"
)

// real is the constraint satisfied by every variance-capable element
// type this core registers (dtype.VarianceCapable).
type real interface{ ~float32 | ~float64 }

// integral is the constraint satisfied by the plain integer element
// types registered with the factory; these never carry variances.
type integral interface{ ~int32 | ~int64 }

func addUnit(a, b unit.Unit) (unit.Unit, error) {
	if !a.Equal(b) {
		return unit.Unit{}, &UnitError{Msg: "add/sub: operands have different units (" + a.String() + " vs " + b.String() + ")"}
	}
	return a, nil
}

func mulUnit(a, b unit.Unit) (unit.Unit, error) {
	if a.IsCounts() && b.IsCounts() {
		return unit.Unit{}, &UnitError{Msg: "mul: counts * counts is forbidden (histogram data times histogram data)"}
	}
	return a.Mul(b), nil
}

func divUnit(a, b unit.Unit) (unit.Unit, error) {
	return a.Div(b), nil
}

// addOp builds the BinaryOp bundle for a + b over a variance-capable
// real type, implementing Var(a+b) = Var(a) + Var(b) (scipp core spec
// §4.D). Additive operators permit one side to lack a variance channel,
// treating it as zero.
func addOp[T real]() transform.BinaryOp[T, T, T] {
	return transform.BinaryOp[T, T, T]{
		Value:    func(a, b T) T { return a + b },
		Unit:     addUnit,
		Variance: func(_ T, va T, _ T, vb T) T { return va + vb },
		Additive: true,
	}
}

func subOp[T real]() transform.BinaryOp[T, T, T] {
	return transform.BinaryOp[T, T, T]{
		Value:    func(a, b T) T { return a - b },
		Unit:     addUnit,
		Variance: func(_ T, va T, _ T, vb T) T { return va + vb },
		Additive: true,
	}
}

// mulOp implements Var(a*b) = Var(a)*b^2 + Var(b)*a^2.
func mulOp[T real]() transform.BinaryOp[T, T, T] {
	return transform.BinaryOp[T, T, T]{
		Value: func(a, b T) T { return a * b },
		Unit:  mulUnit,
		Variance: func(a T, va T, b T, vb T) T {
			return va*b*b + vb*a*a
		},
	}
}

// divOp implements Var(a/b) = Var(a)/b^2 + Var(b)*a^2/b^4.
func divOp[T real]() transform.BinaryOp[T, T, T] {
	return transform.BinaryOp[T, T, T]{
		Value: func(a, b T) T { return a / b },
		Unit:  divUnit,
		Variance: func(a T, va T, b T, vb T) T {
			return va/(b*b) + vb*a*a/(b*b*b*b)
		},
	}
}

func intAddOp[T integral]() transform.BinaryOp[T, T, T] {
	return transform.BinaryOp[T, T, T]{Value: func(a, b T) T { return a + b }, Unit: addUnit, Additive: true}
}

func intSubOp[T integral]() transform.BinaryOp[T, T, T] {
	return transform.BinaryOp[T, T, T]{Value: func(a, b T) T { return a - b }, Unit: addUnit, Additive: true}
}

func intMulOp[T integral]() transform.BinaryOp[T, T, T] {
	return transform.BinaryOp[T, T, T]{Value: func(a, b T) T { return a * b }, Unit: mulUnit}
}

func intDivOp[T integral]() transform.BinaryOp[T, T, T] {
	return transform.BinaryOp[T, T, T]{Value: func(a, b T) T { return a / b }, Unit: divUnit}
}

// binaryHomogeneous dispatches a, b of equal DType to the concrete
// generic transform.Binary instantiation and rewraps the Result as a
// Variable, the pattern every element-type tuple the factory knows
// plugs into (scipp core spec §4.G "transform's supported type tuples").
func binaryHomogeneous[T any](a, b Variable, op transform.BinaryOp[T, T, T]) (Variable, error) {
	va, err := viewOf[T](a)
	if err != nil {
		return Variable{}, err
	}
	vb, err := viewOf[T](b)
	if err != nil {
		return Variable{}, err
	}
	res, err := transform.Binary(va, vb, op)
	if err != nil {
		return Variable{}, err
	}
	return fromResult(res)
}

func fromResult[T any](r transform.Result[T]) (Variable, error) {
	if r.Variances != nil {
		return NewWithVariances(r.Dims, r.Unit, r.Values, r.Variances)
	}
	return New(r.Dims, r.Unit, r.Values)
}

// dispatchBinary runs the requested operator tuple set for a,b,
// choosing the concrete Go type from the pair's runtime DType. Only
// element-type combinations the factory actually registers for
// arithmetic are supported; anything else fails with TypeError, mirroring
// the "transform for an unregistered DType is TypeError" rule (scipp
// core spec §4.G).
func dispatchBinary(a, b Variable, name string) (Variable, error) {
	if a.elem != b.elem {
		return Variable{}, &TypeError{Msg: "variable: " + name + " requires operands of the same element type (got " + a.elem.String() + " and " + b.elem.String() + ")"}
	}
	switch a.elem {
	case dtype.Float64:
		return binaryHomogeneous[float64](a, b, binaryOpByName[float64](name))
	case dtype.Float32:
		return binaryHomogeneous[float32](a, b, binaryOpByName[float32](name))
	case dtype.Int64:
		return binaryHomogeneous[int64](a, b, intBinaryOpByName[int64](name))
	case dtype.Int32:
		return binaryHomogeneous[int32](a, b, intBinaryOpByName[int32](name))
	}
	return Variable{}, &TypeError{Msg: "variable: " + name + " not supported for dtype " + a.elem.String()}
}

func binaryOpByName[T real](name string) transform.BinaryOp[T, T, T] {
	switch name {
	case "add":
		return addOp[T]()
	case "sub":
		return subOp[T]()
	case "mul":
		return mulOp[T]()
	case "div":
		return divOp[T]()
	}
	panic("variable: unknown operator " + name)
}

func intBinaryOpByName[T integral](name string) transform.BinaryOp[T, T, T] {
	switch name {
	case "add":
		return intAddOp[T]()
	case "sub":
		return intSubOp[T]()
	case "mul":
		return intMulOp[T]()
	case "div":
		return intDivOp[T]()
	}
	panic("variable: unknown operator " + name)
}

// Add returns a + b, broadcasting by Dim (scipp core spec §4.C).
func Add(a, b Variable) (Variable, error) { return dispatchBinary(a, b, "add") }

// Sub returns a - b.
func Sub(a, b Variable) (Variable, error) { return dispatchBinary(a, b, "sub") }

// Mul returns a * b.
func Mul(a, b Variable) (Variable, error) { return dispatchBinary(a, b, "mul") }

// Div returns a / b.
func Div(a, b Variable) (Variable, error) { return dispatchBinary(a, b, "div") }

func unaryHomogeneous[T any](a Variable, op transform.UnaryOp[T, T]) (Variable, error) {
	va, err := viewOf[T](a)
	if err != nil {
		return Variable{}, err
	}
	res, err := transform.Unary(va, op)
	if err != nil {
		return Variable{}, err
	}
	return fromResult(res)
}

// Neg returns -a; per the unary-minus invariant, variances are
// unchanged (Var(-a) == Var(a)) while values negate (scipp core spec
// §4.C).
func Neg(a Variable) (Variable, error) {
	switch a.elem {
	case dtype.Float64:
		return unaryHomogeneous[float64](a, negOp[float64]())
	case dtype.Float32:
		return unaryHomogeneous[float32](a, negOp[float32]())
	case dtype.Int64:
		return unaryHomogeneous[int64](a, intNegOp[int64]())
	case dtype.Int32:
		return unaryHomogeneous[int32](a, intNegOp[int32]())
	}
	return Variable{}, &TypeError{Msg: "variable: neg not supported for dtype " + a.elem.String()}
}

func negOp[T real]() transform.UnaryOp[T, T] {
	return transform.UnaryOp[T, T]{
		Value:    func(a T) T { return -a },
		Unit:     func(u unit.Unit) (unit.Unit, error) { return u, nil },
		Variance: func(_ T, va T) T { return va },
	}
}

func intNegOp[T integral]() transform.UnaryOp[T, T] {
	return transform.UnaryOp[T, T]{
		Value: func(a T) T { return -a },
		Unit:  func(u unit.Unit) (unit.Unit, error) { return u, nil },
	}
}

// Sqrt returns the elementwise square root; the unit must be a perfect
// square (scipp core spec §4.D "sqrt requires a perfect-square Unit").
func Sqrt(a Variable) (Variable, error) {
	switch a.elem {
	case dtype.Float64:
		return unaryHomogeneous[float64](a, sqrtOp(math.Sqrt))
	case dtype.Float32:
		return unaryHomogeneous[float32](a, sqrtOp(func(x float32) float32 { return float32(math.Sqrt(float64(x))) }))
	}
	return Variable{}, &TypeError{Msg: "variable: sqrt not supported for dtype " + a.elem.String()}
}

func sqrtOp[T real](sqrtFn func(T) T) transform.UnaryOp[T, T] {
	return transform.UnaryOp[T, T]{
		Value: sqrtFn,
		Unit: func(u unit.Unit) (unit.Unit, error) {
			r, ok := u.Sqrt()
			if !ok {
				return unit.Unit{}, &UnitError{Msg: "sqrt: unit " + u.String() + " is not a perfect square"}
			}
			return r, nil
		},
		Variance: func(a T, va T) T {
			return va / (4 * a)
		},
	}
}

// requireDimensionless is the Unit callable every transcendental
// operator uses (scipp core spec §4.D "Transcendental functions require
// dimensionless").
func requireDimensionless(name string) func(unit.Unit) (unit.Unit, error) {
	return func(u unit.Unit) (unit.Unit, error) {
		if !u.IsDimensionless() {
			return unit.Unit{}, &UnitError{Msg: name + ": requires a dimensionless unit, got " + u.String()}
		}
		return u, nil
	}
}

// Reciprocal returns 1/a; Var(1/a) = Var(a)/a^4.
func Reciprocal(a Variable) (Variable, error) {
	switch a.elem {
	case dtype.Float64:
		return unaryHomogeneous[float64](a, reciprocalOp[float64]())
	case dtype.Float32:
		return unaryHomogeneous[float32](a, reciprocalOp[float32]())
	}
	return Variable{}, &TypeError{Msg: "variable: reciprocal not supported for dtype " + a.elem.String()}
}

func reciprocalOp[T real]() transform.UnaryOp[T, T] {
	return transform.UnaryOp[T, T]{
		Value: func(a T) T { return 1 / a },
		Unit:  func(u unit.Unit) (unit.Unit, error) { return unit.Dimensionless.Div(u), nil },
		Variance: func(a T, va T) T {
			a2 := a * a
			return va / (a2 * a2)
		},
	}
}

// Abs returns |a|; variance is unchanged since abs is value-only on the
// (value, variance) pair (scipp core spec §4.D).
func Abs(a Variable) (Variable, error) {
	switch a.elem {
	case dtype.Float64:
		return unaryHomogeneous[float64](a, absOp(math.Abs))
	case dtype.Float32:
		return unaryHomogeneous[float32](a, absOp(func(x float32) float32 { return float32(math.Abs(float64(x))) }))
	}
	return Variable{}, &TypeError{Msg: "variable: abs not supported for dtype " + a.elem.String()}
}

func absOp[T real](absFn func(T) T) transform.UnaryOp[T, T] {
	return transform.UnaryOp[T, T]{
		Value:    absFn,
		Unit:     func(u unit.Unit) (unit.Unit, error) { return u, nil },
		Variance: func(_ T, va T) T { return va },
	}
}

// Exp returns e^a; requires a dimensionless unit. Var(exp(a)) =
// Var(a)*exp(a)^2.
func Exp(a Variable) (Variable, error) {
	switch a.elem {
	case dtype.Float64:
		return unaryHomogeneous[float64](a, expOp(math.Exp))
	case dtype.Float32:
		return unaryHomogeneous[float32](a, expOp(func(x float32) float32 { return float32(math.Exp(float64(x))) }))
	}
	return Variable{}, &TypeError{Msg: "variable: exp not supported for dtype " + a.elem.String()}
}

func expOp[T real](expFn func(T) T) transform.UnaryOp[T, T] {
	return transform.UnaryOp[T, T]{
		Value: expFn,
		Unit:  requireDimensionless("exp"),
		Variance: func(a T, va T) T {
			e := expFn(a)
			return va * e * e
		},
	}
}

// Log and Log10 require a dimensionless unit; Var(log(a)) = Var(a)/a^2.
func Log(a Variable) (Variable, error) {
	switch a.elem {
	case dtype.Float64:
		return unaryHomogeneous[float64](a, logOp(math.Log))
	case dtype.Float32:
		return unaryHomogeneous[float32](a, logOp(func(x float32) float32 { return float32(math.Log(float64(x))) }))
	}
	return Variable{}, &TypeError{Msg: "variable: log not supported for dtype " + a.elem.String()}
}

func Log10(a Variable) (Variable, error) {
	switch a.elem {
	case dtype.Float64:
		return unaryHomogeneous[float64](a, logOp(math.Log10))
	case dtype.Float32:
		return unaryHomogeneous[float32](a, logOp(func(x float32) float32 { return float32(math.Log10(float64(x))) }))
	}
	return Variable{}, &TypeError{Msg: "variable: log10 not supported for dtype " + a.elem.String()}
}

func logOp[T real](logFn func(T) T) transform.UnaryOp[T, T] {
	return transform.UnaryOp[T, T]{
		Value: logFn,
		Unit:  requireDimensionless("log"),
		Variance: func(a T, va T) T {
			return va / (a * a)
		},
	}
}

// Pow raises every element of a to the integer power n by repeated
// squaring on the (value, variance) pair, so variance propagates
// through the same chain of multiplications the value does (scipp core
// spec §4.D "pow(a, n)... computed by repeated squaring").
func Pow(a Variable, n int) (Variable, error) {
	if n == 1 {
		return a.Copy(), nil
	}
	if n == 0 {
		return onesLike(a)
	}
	if n < 0 {
		p, err := Pow(a, -n)
		if err != nil {
			return Variable{}, err
		}
		return Reciprocal(p)
	}
	half, err := Pow(a, n/2)
	if err != nil {
		return Variable{}, err
	}
	sq, err := Mul(half, half)
	if err != nil {
		return Variable{}, err
	}
	if n%2 == 0 {
		return sq, nil
	}
	return Mul(sq, a)
}

func onesLike(a Variable) (Variable, error) {
	switch a.elem {
	case dtype.Float64:
		vals, err := Values[float64](a)
		if err != nil {
			return Variable{}, err
		}
		ones := make([]float64, len(vals))
		for i := range ones {
			ones[i] = 1
		}
		return New(a.dims, unit.Dimensionless, ones)
	case dtype.Float32:
		vals, err := Values[float32](a)
		if err != nil {
			return Variable{}, err
		}
		ones := make([]float32, len(vals))
		for i := range ones {
			ones[i] = 1
		}
		return New(a.dims, unit.Dimensionless, ones)
	}
	return Variable{}, &TypeError{Msg: "variable: pow(a, 0) not supported for dtype " + a.elem.String()}
}
