package variable

import (
	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/dtype"
	"github.com/jokasimr/scipp/unit"
)

// Empty allocates a fresh, default-initialized dense Variable of the
// given DType, Dims and Unit, with or without a variance channel. This
// is the runtime-dispatch counterpart to New[T]/NewWithVariances[T] for
// code that only has a DType value, not a static Go type — the one
// place element-type-specific construction happens by DType rather than
// by generic parameter (scipp core spec §4.G).
func Empty(d dtype.DType, dims dim.Dimensions, u unit.Unit, withVariances bool) (Variable, error) {
	maker, ok := dtype.Lookup(d)
	if !ok {
		return Variable{}, &TypeError{Msg: "factory: dtype " + d.String() + " is not registered"}
	}
	if withVariances && !d.VarianceCapable() {
		return Variable{}, &VariancesError{Msg: "factory: dtype " + d.String() + " cannot carry a variance channel"}
	}
	n := int(dims.Volume())
	values := maker.NewSlice(n)
	var varAny any
	if withVariances {
		varAny = maker.NewSlice(n)
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

// Info reports, for any Variable (including one the caller only got by
// DType value), its element DType, Unit, whether it carries variances,
// and — for a binned Variable — the backing buffer Variable, mirroring
// the maker's "given an existing Variable, report its properties"
// contract (scipp core spec §4.G).
type Info struct {
	DType          dtype.DType
	Unit           unit.Unit
	HasVariances   bool
	BufferIfBinned *Variable
}

// Inspect returns v's Info.
func Inspect(v Variable) Info {
	info := Info{DType: v.elem, Unit: v.u, HasVariances: v.HasVariances()}
	if v.binned {
		info.BufferIfBinned = v.events
	}
	return info
}
