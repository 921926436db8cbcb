package variable

import (
	"fmt"

	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/dtype"
	"github.com/jokasimr/scipp/unit"
)

// Variable is a labeled, unit-tagged N-D array. The zero Variable is not
// valid; construct one with New, NewWithVariances, or MakeBins.
//
// A dense Variable shares its buffer with every Variable sliced from it
// until one of them is mutated in place, at which point that Variable
// uniquifies its buffer first (copy-on-write, scipp core spec §3).
type Variable struct {
	dims    dim.Dimensions
	strides dim.Strides
	offset  int64
	u       unit.Unit
	elem    dtype.DType
	buf     *buffer

	// Binned form fields; zero unless binned is true. See MakeBins.
	binned  bool
	indices *Variable
	binDim  dim.Dim
	events  *Variable
}

// New constructs a dense Variable owning values, with no variance
// channel. len(values) must equal dims.Volume().
func New[T any](dims dim.Dimensions, u unit.Unit, values []T) (Variable, error) {
	return newDense(dims, u, values, nil)
}

// NewWithVariances constructs a dense Variable with a variance channel.
// T must be variance-capable (scipp core spec §4.C); len(values) must
// equal len(variances) and both must equal dims.Volume().
func NewWithVariances[T any](dims dim.Dimensions, u unit.Unit, values, variances []T) (Variable, error) {
	if !dtype.Of[T]().VarianceCapable() {
		return Variable{}, &VariancesError{Msg: fmt.Sprintf("dtype %v cannot carry a variance channel", dtype.Of[T]())}
	}
	if len(values) != len(variances) {
		return Variable{}, &VariancesError{Msg: fmt.Sprintf("values has length %d but variances has length %d", len(values), len(variances))}
	}
	return newDense(dims, u, values, variances)
}

func newDense[T any](dims dim.Dimensions, u unit.Unit, values, variances []T) (Variable, error) {
	if int64(len(values)) != dims.Volume() {
		return Variable{}, errorf("variable: %d values but dims %v has volume %d", len(values), dims, dims.Volume())
	}
	d := dtype.Of[T]()
	if d == dtype.Invalid {
		return Variable{}, &TypeError{Msg: "variable: unregistered element type"}
	}
	var varAny any
	if variances != nil {
		varAny = variances
	}
	return Variable{
		dims:    dims,
		strides: dim.RowMajor(dims),
		offset:  0,
		u:       u,
		elem:    d,
		buf:     newBuffer(d, values, varAny),
	}, nil
}

// Dims returns the Variable's Dimensions.
func (v Variable) Dims() dim.Dimensions { return v.dims }

// DType returns the Variable's element type tag. For a binned Variable
// this is dtype.IndexPairType, the type of its indices buffer.
func (v Variable) DType() dtype.DType { return v.elem }

// Unit returns the Variable's physical unit.
func (v Variable) Unit() unit.Unit { return v.u }

// HasVariances reports whether the Variable carries a variance channel.
// Always false for a binned Variable (variances live on its buffer).
func (v Variable) HasVariances() bool {
	return !v.binned && v.buf.variances != nil
}

// Size returns the number of elements (dims.Volume()).
func (v Variable) Size() int64 { return v.dims.Volume() }

// Binned reports whether v is a binned (bucketed) Variable.
func (v Variable) Binned() bool { return v.binned }

// Strides exposes the Variable's actual (possibly non-contiguous or
// broadcast) strides.
func (v Variable) Strides() dim.Strides { return append(dim.Strides(nil), v.strides...) }

// Offset exposes the Variable's element offset into its shared buffer.
func (v Variable) Offset() int64 { return v.offset }

// RawValues exposes the buffer's value slice (the full, possibly larger
// shared backing array, not just v's own elements) as any. Callers must
// index it using
// Strides()/Offset(), never assume it starts at v's first element.
func (v Variable) RawValues() any {
	if v.binned {
		return nil
	}
	return v.buf.values
}

// RawVariances is RawValues for the variance channel, or nil.
func (v Variable) RawVariances() any {
	if v.binned {
		return nil
	}
	return v.buf.variances
}

func (v Variable) isDenseContiguous() bool {
	if v.binned {
		return false
	}
	want := dim.RowMajor(v.dims)
	if len(want) != len(v.strides) {
		return false
	}
	for i := range want {
		if want[i] != v.strides[i] {
			return false
		}
	}
	return v.offset+v.dims.Volume() <= int64(v.buf.valuesLen())
}

// Copy makes a deep copy of v, uniquifying its buffer (scipp core spec
// §4.C "Deep copy() — uniquifies buffers").
func (v Variable) Copy() Variable {
	if v.binned {
		return Variable{
			dims:    v.dims,
			binned:  true,
			indices: ptr(v.indices.Copy()),
			binDim:  v.binDim,
			events:  ptr(v.events.Copy()),
			elem:    v.elem,
			u:       v.u,
		}
	}
	values := gatherDense(v.buf.values, v.dims, v.strides, v.offset)
	variances := gatherDense(v.buf.variances, v.dims, v.strides, v.offset)
	out := v
	out.buf = newBuffer(v.buf.dtype, values, variances)
	out.offset = 0
	out.strides = dim.RowMajor(v.dims)
	return out
}

func ptr[T any](v T) *T { return &v }

func (v Variable) String() string {
	if v.binned {
		return fmt.Sprintf("Variable(binned, dims=%v, bin_dim=%s)", v.dims, v.binDim)
	}
	return fmt.Sprintf("Variable(dims=%v, dtype=%v, unit=%v, variances=%v)", v.dims, v.elem, v.u, v.HasVariances())
}
