package variable

import (
	"github.com/jokasimr/scipp/dtype"
	"github.com/jokasimr/scipp/transform"
)

// inPlaceHomogeneous runs op on dst and src in place, writing both
// values and, if present, variances back into dst's own buffer slots,
// and updating dst's Unit to the result of op.Unit. dst and src may
// share a buffer (e.g. src was sliced from dst, or dst *= dst): the
// transform engine forms the src view before any write begins, so
// every read happens before the write that could invalidate it (scipp
// core spec §4.D, §8 Testable Property 3).
func inPlaceHomogeneous[T any](dst *Variable, src Variable, op transform.BinaryOp[T, T, T]) error {
	*dst = dst.uniquify()
	dv, err := viewOf[T](*dst)
	if err != nil {
		return err
	}
	sv, err := viewOf[T](src)
	if err != nil {
		return err
	}
	outUnit, err := transform.BinaryInPlace(dv, sv, op)
	if err != nil {
		return err
	}
	dst.u = outUnit
	return nil
}

// AddInPlace computes dst += src.
func AddInPlace(dst *Variable, src Variable) error { return dispatchBinaryInPlace(dst, src, "add") }

// SubInPlace computes dst -= src.
func SubInPlace(dst *Variable, src Variable) error { return dispatchBinaryInPlace(dst, src, "sub") }

// MulInPlace computes dst *= src.
func MulInPlace(dst *Variable, src Variable) error { return dispatchBinaryInPlace(dst, src, "mul") }

// DivInPlace computes dst /= src.
func DivInPlace(dst *Variable, src Variable) error { return dispatchBinaryInPlace(dst, src, "div") }

func dispatchBinaryInPlace(dst *Variable, src Variable, name string) error {
	if dst.elem != src.elem {
		return &TypeError{Msg: "variable: " + name + "_in_place requires operands of the same element type (got " + dst.elem.String() + " and " + src.elem.String() + ")"}
	}
	switch dst.elem {
	case dtype.Float64:
		return inPlaceHomogeneous[float64](dst, src, binaryOpByName[float64](name))
	case dtype.Float32:
		return inPlaceHomogeneous[float32](dst, src, binaryOpByName[float32](name))
	case dtype.Int64:
		return inPlaceHomogeneous[int64](dst, src, intBinaryOpByName[int64](name))
	case dtype.Int32:
		return inPlaceHomogeneous[int32](dst, src, intBinaryOpByName[int32](name))
	}
	return &TypeError{Msg: "variable: " + name + "_in_place not supported for dtype " + dst.elem.String()}
}

// NegInPlace computes dst = -dst.
func NegInPlace(dst *Variable) error {
	switch dst.elem {
	case dtype.Float64:
		return unaryInPlace[float64](dst, negOp[float64]())
	case dtype.Float32:
		return unaryInPlace[float32](dst, negOp[float32]())
	case dtype.Int64:
		return unaryInPlace[int64](dst, intNegOp[int64]())
	case dtype.Int32:
		return unaryInPlace[int32](dst, intNegOp[int32]())
	}
	return &TypeError{Msg: "variable: neg_in_place not supported for dtype " + dst.elem.String()}
}

func unaryInPlace[T any](dst *Variable, op transform.UnaryOp[T, T]) error {
	*dst = dst.uniquify()
	dv, err := viewOf[T](*dst)
	if err != nil {
		return err
	}
	outUnit, err := transform.UnaryInPlace(dv, op)
	if err != nil {
		return err
	}
	dst.u = outUnit
	return nil
}
