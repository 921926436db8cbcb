package dataarray

import (
	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/variable"
)

// DataArray is a Variable with attached named coordinates, masks and
// attributes, each itself a Variable (scipp core spec §3 "DataArray").
// A coord whose Dims are a subset of the DataArray's own Dims is
// aligned; others may still be carried as metadata.
type DataArray struct {
	name   string
	data   variable.Variable
	coords map[dim.Dim]variable.Variable
	masks  map[string]variable.Variable
	attrs  map[dim.Dim]variable.Variable
}

// New constructs a DataArray wrapping data, with empty coord/mask/attr
// dictionaries.
func New(name string, data variable.Variable) DataArray {
	return DataArray{
		name:   name,
		data:   data,
		coords: map[dim.Dim]variable.Variable{},
		masks:  map[string]variable.Variable{},
		attrs:  map[dim.Dim]variable.Variable{},
	}
}

// Name returns the DataArray's name.
func (d DataArray) Name() string { return d.name }

// Data returns the DataArray's underlying Variable.
func (d DataArray) Data() variable.Variable { return d.data }

// Coords returns the coordinate dictionary (keyed by Dim).
func (d DataArray) Coords() map[dim.Dim]variable.Variable { return d.coords }

// Masks returns the mask dictionary (keyed by name).
func (d DataArray) Masks() map[string]variable.Variable { return d.masks }

// Attrs returns the attribute dictionary (keyed by Dim).
func (d DataArray) Attrs() map[dim.Dim]variable.Variable { return d.attrs }

// SetCoord attaches coord as the coordinate for d. Per the edge-coordinate
// open question (scipp core spec §9), a coord of length N+1 along a Dim
// where Data() has length N is accepted as an edge coordinate only
// because it has a sibling (Data()) of length N to disambiguate against;
// see IsEdge.
func (d DataArray) SetCoord(l dim.Dim, coord variable.Variable) DataArray {
	out := d.clone()
	out.coords[l] = coord
	return out
}

// SetMask attaches mask under name.
func (d DataArray) SetMask(name string, mask variable.Variable) DataArray {
	out := d.clone()
	out.masks[name] = mask
	return out
}

// SetAttr attaches attr under Dim l.
func (d DataArray) SetAttr(l dim.Dim, attr variable.Variable) DataArray {
	out := d.clone()
	out.attrs[l] = attr
	return out
}

func (d DataArray) clone() DataArray {
	out := DataArray{name: d.name, data: d.data}
	out.coords = make(map[dim.Dim]variable.Variable, len(d.coords))
	for k, v := range d.coords {
		out.coords[k] = v
	}
	out.masks = make(map[string]variable.Variable, len(d.masks))
	for k, v := range d.masks {
		out.masks[k] = v
	}
	out.attrs = make(map[dim.Dim]variable.Variable, len(d.attrs))
	for k, v := range d.attrs {
		out.attrs[k] = v
	}
	return out
}

// IsEdge reports whether the coordinate attached at l is an edge
// coordinate: present, and one length longer than Data()'s length along
// l. A standalone Variable of length N+1 cannot be reliably classified
// on its own (scipp core spec §9 Open Question 1) — this method only
// ever answers the question in the one context where it is decidable,
// because Data() is the sibling of known length N.
func (d DataArray) IsEdge(l dim.Dim) bool {
	coord, ok := d.coords[l]
	if !ok {
		return false
	}
	n, ok := d.data.Dims().SizeOf(l)
	if !ok {
		return false
	}
	edgeN, ok := coord.Dims().SizeOf(l)
	if !ok {
		return false
	}
	return edgeN == n+1
}

// Slice restricts the DataArray along l to [begin, end), slicing Data()
// and every coord/mask/attr that has l among its Dims. An edge
// coordinate along l is sliced to [begin, end+1) so the result remains
// an edge coordinate for the sliced data.
func (d DataArray) Slice(l dim.Dim, begin, end int64) (DataArray, error) {
	out := d.clone()
	data, err := d.data.Slice(l, begin, end)
	if err != nil {
		return DataArray{}, err
	}
	out.data = data
	for k, v := range out.coords {
		if !v.Dims().Contains(l) {
			continue
		}
		e := end
		if d.IsEdge(l) && k == l {
			e = end + 1
		}
		sliced, err := v.Slice(l, begin, e)
		if err != nil {
			return DataArray{}, err
		}
		out.coords[k] = sliced
	}
	for k, v := range out.masks {
		if !v.Dims().Contains(l) {
			continue
		}
		sliced, err := v.Slice(l, begin, end)
		if err != nil {
			return DataArray{}, err
		}
		out.masks[k] = sliced
	}
	for k, v := range out.attrs {
		if !v.Dims().Contains(l) {
			continue
		}
		sliced, err := v.Slice(l, begin, end)
		if err != nil {
			return DataArray{}, err
		}
		out.attrs[k] = sliced
	}
	return out, nil
}

// Rename replaces old with new across Data() and every coord/mask/attr
// that carries old among its Dims, moving a coord/attr keyed by old to
// new as well.
func (d DataArray) Rename(old, new dim.Dim) (DataArray, error) {
	out := d.clone()
	data, err := d.data.Rename(old, new)
	if err != nil {
		return DataArray{}, err
	}
	out.data = data
	out.coords = map[dim.Dim]variable.Variable{}
	for k, v := range d.coords {
		key := k
		if key == old {
			key = new
		}
		if v.Dims().Contains(old) {
			renamed, err := v.Rename(old, new)
			if err != nil {
				return DataArray{}, err
			}
			v = renamed
		}
		out.coords[key] = v
	}
	out.attrs = map[dim.Dim]variable.Variable{}
	for k, v := range d.attrs {
		key := k
		if key == old {
			key = new
		}
		if v.Dims().Contains(old) {
			renamed, err := v.Rename(old, new)
			if err != nil {
				return DataArray{}, err
			}
			v = renamed
		}
		out.attrs[key] = v
	}
	out.masks = map[string]variable.Variable{}
	for k, v := range d.masks {
		if v.Dims().Contains(old) {
			renamed, err := v.Rename(old, new)
			if err != nil {
				return DataArray{}, err
			}
			v = renamed
		}
		out.masks[k] = v
	}
	return out, nil
}

// Concatenate joins a and b along l, implementing the library's one
// domain-level operation (scipp core spec §9 Open Question 2). Coords
// and masks carrying l are concatenated alongside Data(); an edge
// coordinate at l (per IsEdge) is concatenated with b's first edge
// dropped, once it is confirmed to coincide with a's last — a
// mismatched seam raises BinEdgeError rather than silently keeping or
// dropping either point (scipp core spec §4.C). Coords/masks absent
// from either side, or present but not carrying l, keep a's value.
//
// Attributes follow the source's own documented-but-unsettled policy
// (spec §9 Open Question 2): a's attrs are kept; when l is new to the
// data (a stacking concatenation rather than an extension of an
// existing Dim) an attr present under the same key on both sides is
// itself stacked along l, gaining the new Dim — otherwise b's attr is
// simply dropped.
func Concatenate(a, b DataArray, l dim.Dim) (DataArray, error) {
	newDim := !a.data.Dims().Contains(l)

	data, err := variable.ConcatenateAlong(a.data, b.data, l)
	if err != nil {
		return DataArray{}, err
	}
	out := New(a.name, data)

	for k, av := range a.coords {
		bv, ok := b.coords[k]
		if !ok || !av.Dims().Contains(l) {
			out = out.SetCoord(k, av)
			continue
		}
		rhs := bv
		if k == l && a.IsEdge(l) && b.IsEdge(l) {
			agree, err := variable.EdgesAgree(av, bv, l)
			if err != nil {
				return DataArray{}, err
			}
			if !agree {
				return DataArray{}, &variable.BinEdgeError{Msg: "concatenate: edge coordinate " + string(l) + " does not agree at the seam (a's last edge != b's first edge)"}
			}
			n, _ := bv.Dims().SizeOf(l)
			rhs, err = bv.Slice(l, 1, n)
			if err != nil {
				return DataArray{}, err
			}
		}
		c, err := variable.ConcatenateAlong(av, rhs, l)
		if err != nil {
			return DataArray{}, err
		}
		out = out.SetCoord(k, c)
	}

	for k, av := range a.masks {
		bv, ok := b.masks[k]
		if !ok || !av.Dims().Contains(l) {
			out = out.SetMask(k, av)
			continue
		}
		c, err := variable.ConcatenateAlong(av, bv, l)
		if err != nil {
			return DataArray{}, err
		}
		out = out.SetMask(k, c)
	}

	for k, av := range a.attrs {
		bv, ok := b.attrs[k]
		if ok && newDim && av.Dims().Equal(bv.Dims()) {
			c, err := variable.ConcatenateAlong(av, bv, l)
			if err != nil {
				return DataArray{}, err
			}
			out = out.SetAttr(k, c)
			continue
		}
		out = out.SetAttr(k, av)
	}

	return out, nil
}
