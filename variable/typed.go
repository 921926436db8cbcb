package variable

import (
	"reflect"

	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/transform"
)

// sliceLen returns len(s) for s holding a slice of unknown element type.
// reflect is only used here, at the boundary between the type-erased
// buffer and everything else; all hot-path code works on concrete
// typed slices obtained via Values[T]/Variances[T].
func sliceLen(s any) int {
	if s == nil {
		return 0
	}
	return reflect.ValueOf(s).Len()
}

// gatherDense walks src (shape dims, layout strides/offset, possibly
// strided, broadcast, or a window into a larger shared buffer) and
// returns a freshly allocated contiguous row-major slice holding just
// the elements dims/strides/offset designate. nil in, nil out.
func gatherDense(src any, dims dim.Dimensions, strides dim.Strides, offset int64) any {
	if src == nil {
		return nil
	}
	v := reflect.ValueOf(src)
	n := dims.Volume()
	out := reflect.MakeSlice(v.Type(), int(n), int(n))
	idx := dim.NewViewIndex(dims, strides, offset)
	for pos := int64(0); pos < n; pos++ {
		out.Index(int(pos)).Set(v.Index(int(idx.Get())))
		idx.Increment()
	}
	return out.Interface()
}

// Values returns the typed value buffer of v as a span over the
// variable's own elements (not the shared backing array it may alias).
// It fails with a TypeError if T does not match v's element type, and
// requires v to be a contiguous, non-broadcast dense Variable: a
// strided or broadcast view must go through transform, which walks it
// with an ElementArrayView instead of asking for a flat span.
func Values[T any](v Variable) ([]T, error) {
	if v.binned {
		return nil, &TypeError{Msg: "Values: variable is binned, use BinBuffer() and slice per bin"}
	}
	got, ok := v.buf.values.([]T)
	if !ok {
		return nil, &TypeError{Msg: "Values: type mismatch for dtype " + v.elem.String()}
	}
	if !v.isDenseContiguous() {
		return nil, &TypeError{Msg: "Values: variable is not a contiguous dense view"}
	}
	n := v.dims.Volume()
	return got[v.offset : v.offset+n], nil
}

// viewOf builds a transform.View[T] over v's raw backing buffer, strides
// and offset unchanged, so a strided or broadcast Variable can be
// handed directly to the transform engine instead of requiring a
// contiguous span. It fails with TypeError if T does not match v's
// registered element type.
func viewOf[T any](v Variable) (transform.View[T], error) {
	values, ok := v.buf.values.([]T)
	if !ok {
		return transform.View[T]{}, &TypeError{Msg: "viewOf: type mismatch for dtype " + v.elem.String()}
	}
	var variances []T
	if v.buf.variances != nil {
		variances, ok = v.buf.variances.([]T)
		if !ok {
			return transform.View[T]{}, &TypeError{Msg: "viewOf: variance type mismatch for dtype " + v.elem.String()}
		}
	}
	return transform.View[T]{
		Dims:      v.dims,
		Strides:   v.strides,
		Offset:    v.offset,
		Unit:      v.u,
		Values:    values,
		Variances: variances,
	}, nil
}

// Variances is Values for the variance channel; it fails with
// VariancesError if v carries none.
func Variances[T any](v Variable) ([]T, error) {
	if v.binned || v.buf.variances == nil {
		return nil, &VariancesError{Msg: "Variances: variable has no variance channel"}
	}
	got, ok := v.buf.variances.([]T)
	if !ok {
		return nil, &TypeError{Msg: "Variances: type mismatch for dtype " + v.elem.String()}
	}
	if !v.isDenseContiguous() {
		return nil, &TypeError{Msg: "Variances: variable is not a contiguous dense view"}
	}
	n := v.dims.Volume()
	return got[v.offset : v.offset+n], nil
}
