package transform

import (
	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/unit"
)

// View describes one transform operand: a typed buffer read through a
// Dimensions/Strides/offset triple, exactly what a (possibly sliced or
// already-broadcast) Variable exposes to this package.
type View[T any] struct {
	Dims      dim.Dimensions
	Strides   dim.Strides
	Offset    int64
	Unit      unit.Unit
	Values    []T
	Variances []T // same concrete type as Values; nil if none
}

// broadcastTo resolves the strides that let v be read as if shaped like
// target, and the two ElementArrayViews (values, variances) built from
// them. The returned strides are kept so a worker can cheaply rebuild a
// chunked sub-view with ElementArrayView.Chunk.
func (v View[T]) broadcastTo(target dim.Dimensions) (dim.Strides, *dim.ElementArrayView[T], *dim.ElementArrayView[T], error) {
	strides, err := dim.BroadcastTo(v.Dims, v.Strides, target)
	if err != nil {
		return nil, nil, nil, err
	}
	vals := dim.NewElementArrayView(v.Values, target, strides, v.Offset)
	var vars *dim.ElementArrayView[T]
	if v.Variances != nil {
		vars = dim.NewElementArrayView(v.Variances, target, strides, v.Offset)
	}
	return strides, vals, vars, nil
}

// outerExtent returns the length of the outermost Dim (1 for a scalar),
// the axis the engine parallelizes over (scipp core spec §5).
func outerExtent(d dim.Dimensions) int64 {
	if d.NDim() == 0 {
		return 1
	}
	return d.Size(0)
}

// innerVolume returns the product of every Dim but the outermost.
func innerVolume(d dim.Dimensions) int64 {
	if d.NDim() == 0 {
		return 1
	}
	v := int64(1)
	for i := 1; i < d.NDim(); i++ {
		v *= d.Size(i)
	}
	return v
}

// Result is the out-of-place output of a Binary/Unary call: freshly
// allocated, contiguous, row-major buffers plus the Dimensions and Unit
// the engine computed for them.
type Result[R any] struct {
	Dims      dim.Dimensions
	Unit      unit.Unit
	Values    []R
	Variances []R // nil if the op produced no variance channel
}

// BinaryOp bundles the callables the scipp core spec §4.D calls the
// "overloaded operator bundle" for a two-input elementwise operator:
// Value computes the result, Unit computes (and validates) the result
// unit before any value is touched, and Variance propagates the
// variance channel analytically from each operand's own (value,
// variance) pair. Variance is only invoked when at least one input
// actually carries variances; this package does not attempt general
// symbolic differentiation (no autodiff, a stated Non-goal) so Variance
// must be supplied explicitly per operator with the closed-form
// first-order formula the spec gives for it.
type BinaryOp[A, B, R any] struct {
	Value    func(a A, b B) R
	Unit     func(a, b unit.Unit) (unit.Unit, error)
	Variance func(a A, va A, b B, vb B) R
	// Additive is true for operators where a missing variance on one
	// side may be treated as zero (+, -). Multiplicative operators
	// (*, /) require either both operands to carry variances or
	// neither (scipp core spec §4.D).
	Additive bool
}

// Binary runs an out-of-place broadcasting elementwise transform over
// two inputs (scipp core spec §4.D).
func Binary[A, B, R any](a View[A], b View[B], op BinaryOp[A, B, R]) (Result[R], error) {
	outDims, err := dim.Merge(a.Dims, b.Dims)
	if err != nil {
		return Result[R]{}, err
	}
	if !a.Dims.Equal(outDims) && !b.Dims.Equal(outDims) {
		return Result[R]{}, &dim.DimensionError{Msg: "transform: neither input's dimensions are a superset of the merged result (use accumulate for reductions)"}
	}
	outUnit, err := op.Unit(a.Unit, b.Unit)
	if err != nil {
		return Result[R]{}, err
	}
	hasVarA := a.Variances != nil
	hasVarB := b.Variances != nil
	if !op.Additive && hasVarA != hasVarB {
		return Result[R]{}, &VariancesError{Msg: "transform: either both or none of the operands must have a variance"}
	}
	needVariance := op.Variance != nil && (hasVarA || hasVarB)

	n := outDims.Volume()
	values := make([]R, n)
	var variances []R
	if needVariance {
		variances = make([]R, n)
	}

	stridesA, aVals, aVars, err := a.broadcastTo(outDims)
	if err != nil {
		return Result[R]{}, err
	}
	stridesB, bVals, bVars, err := b.broadcastTo(outDims)
	if err != nil {
		return Result[R]{}, err
	}
	inner := innerVolume(outDims)

	parallelFor(outerExtent(outDims), func(begin, end int64) {
		lo, hi := begin*inner, end*inner
		av := aVals.Chunk(outDims, stridesA, a.Offset, lo, hi)
		bv := bVals.Chunk(outDims, stridesB, b.Offset, lo, hi)
		var avv *dim.ElementArrayView[A]
		var bvVarView *dim.ElementArrayView[B]
		if aVars != nil {
			avv = aVars.Chunk(outDims, stridesA, a.Offset, lo, hi)
		}
		if bVars != nil {
			bvVarView = bVars.Chunk(outDims, stridesB, b.Offset, lo, hi)
		}
		for pos := lo; pos < hi; pos++ {
			aValue := av.Get()
			bValue := bv.Get()
			values[pos] = op.Value(aValue, bValue)
			if needVariance {
				var va A
				var vb B
				if avv != nil {
					va = avv.Get()
				}
				if bvVarView != nil {
					vb = bvVarView.Get()
				}
				variances[pos] = op.Variance(aValue, va, bValue, vb)
			}
			av.Increment()
			bv.Increment()
			if avv != nil {
				avv.Increment()
			}
			if bvVarView != nil {
				bvVarView.Increment()
			}
		}
	})

	return Result[R]{Dims: outDims, Unit: outUnit, Values: values, Variances: variances}, nil
}
