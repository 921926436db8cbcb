package transform

import (
	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/unit"
)

// rejectBroadcastOutput fails if strides carries a 0 stride on a Dim
// whose length isn't 1 — writing through such a stride would alias
// multiple logical positions onto one physical slot and silently drop
// all but the last write (spec: "writing is forbidden into a broadcast
// output").
func rejectBroadcastOutput(dims dim.Dimensions, strides dim.Strides) error {
	for i := 0; i < dims.NDim(); i++ {
		if strides[i] == 0 && dims.Size(i) != 1 {
			return &dim.DimensionError{Msg: "transform: cannot write into a broadcast output along " + string(dims.Label(i))}
		}
	}
	return nil
}

// BinaryInPlace computes dst = op(dst, src), using dst's own Values as
// the op's first operand and writing the result back into the same
// physical slot it was read from. src is broadcast to dst's Dims; if
// src's buffer aliases dst's, the read for a given output position
// still happens before that position's write (the view over src is
// formed up front), matching the engine's "detect aliasing by buffer
// identity, read before write" contract (scipp core spec §4.D).
func BinaryInPlace[A, R any](dst View[R], src View[A], op BinaryOp[R, A, R]) (unit.Unit, error) {
	if err := rejectBroadcastOutput(dst.Dims, dst.Strides); err != nil {
		return unit.Unit{}, err
	}
	outUnit, err := op.Unit(dst.Unit, src.Unit)
	if err != nil {
		return unit.Unit{}, err
	}
	hasVarDst := dst.Variances != nil
	hasVarSrc := src.Variances != nil
	if !op.Additive && hasVarDst != hasVarSrc {
		return unit.Unit{}, &VariancesError{Msg: "transform: either both or none of the operands must have a variance"}
	}
	needVariance := op.Variance != nil && (hasVarDst || hasVarSrc)

	srcStrides, srcVals, srcVars, err := src.broadcastTo(dst.Dims)
	if err != nil {
		return unit.Unit{}, err
	}
	inner := innerVolume(dst.Dims)
	parallelFor(outerExtent(dst.Dims), func(begin, end int64) {
		lo, hi := begin*inner, end*inner
		dv := dim.NewElementArrayView(dst.Values, dst.Dims, dst.Strides, dst.Offset).Chunk(dst.Dims, dst.Strides, dst.Offset, lo, hi)
		sv := srcVals.Chunk(dst.Dims, srcStrides, src.Offset, lo, hi)
		var dvv *dim.ElementArrayView[R]
		var svv *dim.ElementArrayView[A]
		if hasVarDst {
			dvv = dim.NewElementArrayView(dst.Variances, dst.Dims, dst.Strides, dst.Offset).Chunk(dst.Dims, dst.Strides, dst.Offset, lo, hi)
		}
		if srcVars != nil {
			svv = srcVars.Chunk(dst.Dims, srcStrides, src.Offset, lo, hi)
		}
		for pos := lo; pos < hi; pos++ {
			dValue := dv.Get()
			sValue := sv.Get()
			result := op.Value(dValue, sValue)
			var varResult R
			if needVariance {
				var vd R
				var vs A
				if dvv != nil {
					vd = dvv.Get()
				}
				if svv != nil {
					vs = svv.Get()
				}
				varResult = op.Variance(dValue, vd, sValue, vs)
			}
			dv.Set(result)
			if needVariance && dvv != nil {
				dvv.Set(varResult)
			}
			dv.Increment()
			sv.Increment()
			if dvv != nil {
				dvv.Increment()
			}
			if svv != nil {
				svv.Increment()
			}
		}
	})
	return outUnit, nil
}

// UnaryInPlace computes dst = op(dst), writing each result back into
// the slot it was read from.
func UnaryInPlace[A any](dst View[A], op UnaryOp[A, A]) (unit.Unit, error) {
	if err := rejectBroadcastOutput(dst.Dims, dst.Strides); err != nil {
		return unit.Unit{}, err
	}
	outUnit, err := op.Unit(dst.Unit)
	if err != nil {
		return unit.Unit{}, err
	}
	needVariance := op.Variance != nil && dst.Variances != nil
	inner := innerVolume(dst.Dims)
	parallelFor(outerExtent(dst.Dims), func(begin, end int64) {
		lo, hi := begin*inner, end*inner
		dv := dim.NewElementArrayView(dst.Values, dst.Dims, dst.Strides, dst.Offset).Chunk(dst.Dims, dst.Strides, dst.Offset, lo, hi)
		var dvv *dim.ElementArrayView[A]
		if dst.Variances != nil {
			dvv = dim.NewElementArrayView(dst.Variances, dst.Dims, dst.Strides, dst.Offset).Chunk(dst.Dims, dst.Strides, dst.Offset, lo, hi)
		}
		for pos := lo; pos < hi; pos++ {
			dValue := dv.Get()
			result := op.Value(dValue)
			var varResult A
			if needVariance {
				var vd A
				if dvv != nil {
					vd = dvv.Get()
				}
				varResult = op.Variance(dValue, vd)
			}
			dv.Set(result)
			if needVariance && dvv != nil {
				dvv.Set(varResult)
			}
			dv.Increment()
			if dvv != nil {
				dvv.Increment()
			}
		}
	})
	return outUnit, nil
}
