package variable

import "github.com/jokasimr/scipp/dim"

// Slice returns a non-owning view of v restricted to the half-open
// range [begin, end) of dimension d, sharing v's buffer.
func (v Variable) Slice(d dim.Dim, begin, end int64) (Variable, error) {
	if v.binned {
		return v.sliceBinned(d, begin, end)
	}
	i, ok := v.dims.IndexOf(d)
	if !ok {
		return Variable{}, &dim.DimensionNotFoundError{Dim: d, In: v.dims}
	}
	newDims, err := v.dims.Slice(d, begin, end)
	if err != nil {
		return Variable{}, err
	}
	out := v
	out.dims = newDims
	out.offset = v.offset + begin*v.strides[i]
	out.buf = v.buf.alias()
	return out, nil
}

// SliceIndex returns a non-owning view of v with dimension d fixed to
// index i and dropped from the result's Dimensions.
func (v Variable) SliceIndex(d dim.Dim, i int64) (Variable, error) {
	if v.binned {
		s, err := v.sliceBinned(d, i, i+1)
		if err != nil {
			return Variable{}, err
		}
		newDims, err := s.dims.SliceIndex(d, 0)
		if err != nil {
			return Variable{}, err
		}
		s.dims = newDims
		return s, nil
	}
	idx, ok := v.dims.IndexOf(d)
	if !ok {
		return Variable{}, &dim.DimensionNotFoundError{Dim: d, In: v.dims}
	}
	newDims, err := v.dims.SliceIndex(d, i)
	if err != nil {
		return Variable{}, err
	}
	out := v
	out.offset = v.offset + i*v.strides[idx]
	out.dims = newDims
	out.strides = append(append(dim.Strides{}, v.strides[:idx]...), v.strides[idx+1:]...)
	out.buf = v.buf.alias()
	return out, nil
}

// Rename replaces Dim old with new in v's Dims, without touching data or
// strides. For a binned Variable the indices' Dims are renamed as well,
// and when old is the bin dimension the buffer's Dims and the bin
// dimension follow the same rename.
func (v Variable) Rename(old, new dim.Dim) (Variable, error) {
	newDims, err := v.dims.Rename(old, new)
	if err != nil {
		return Variable{}, err
	}
	out := v
	out.dims = newDims
	if v.binned {
		renamedIndices, err := v.indices.Rename(old, new)
		if err != nil {
			return Variable{}, err
		}
		out.indices = ptr(renamedIndices)
		if v.binDim == old {
			renamedEvents, err := v.events.Rename(old, new)
			if err != nil {
				return Variable{}, err
			}
			out.events = ptr(renamedEvents)
			out.binDim = new
		}
	}
	return out, nil
}

// uniquify ensures v's buffer is not shared with any other Variable,
// deep-copying it first if it is. It returns the (possibly new)
// Variable to use for subsequent in-place writes, implementing
// copy-on-write (scipp core spec §3, §5).
func (v Variable) uniquify() Variable {
	if v.binned || !v.buf.isShared() {
		return v
	}
	return v.Copy()
}
