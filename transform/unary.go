package transform

import (
	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/unit"
)

// UnaryOp bundles the callables for a single-input elementwise operator
// (scipp core spec §4.D, specialized to one argument): Value computes
// the result, Unit computes (and validates) the result unit, and
// Variance propagates the variance channel from the operand's own
// (value, variance) pair using the operator's closed-form derivative.
type UnaryOp[A, R any] struct {
	Value    func(a A) R
	Unit     func(a unit.Unit) (unit.Unit, error)
	Variance func(a A, va A) R
}

// Unary runs an out-of-place elementwise transform over a single input
// (scipp core spec §4.D).
func Unary[A, R any](a View[A], op UnaryOp[A, R]) (Result[R], error) {
	outUnit, err := op.Unit(a.Unit)
	if err != nil {
		return Result[R]{}, err
	}
	needVariance := op.Variance != nil && a.Variances != nil

	n := a.Dims.Volume()
	values := make([]R, n)
	var variances []R
	if needVariance {
		variances = make([]R, n)
	}

	strides, aVals, aVars, err := a.broadcastTo(a.Dims)
	if err != nil {
		return Result[R]{}, err
	}
	inner := innerVolume(a.Dims)

	parallelFor(outerExtent(a.Dims), func(begin, end int64) {
		lo, hi := begin*inner, end*inner
		av := aVals.Chunk(a.Dims, strides, a.Offset, lo, hi)
		var avv *dim.ElementArrayView[A]
		if aVars != nil {
			avv = aVars.Chunk(a.Dims, strides, a.Offset, lo, hi)
		}
		for pos := lo; pos < hi; pos++ {
			aValue := av.Get()
			values[pos] = op.Value(aValue)
			if needVariance {
				var va A
				if avv != nil {
					va = avv.Get()
				}
				variances[pos] = op.Variance(aValue, va)
			}
			av.Increment()
			if avv != nil {
				avv.Increment()
			}
		}
	})

	return Result[R]{Dims: a.Dims, Unit: outUnit, Values: values, Variances: variances}, nil
}
