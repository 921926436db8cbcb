package dataarray

import (
	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/variable"
)

// Dataset is a dictionary of DataArrays that share a common set of
// aligned coordinates (scipp core spec §3 "Dataset"). A DataArray's own
// Coords() are promoted into the Dataset's shared dictionary on
// insertion wherever no coord for that Dim is held yet; each item is
// stored as given, its own coords included.
type Dataset struct {
	coords map[dim.Dim]variable.Variable
	items  map[string]DataArray
}

// NewDataset returns an empty Dataset.
func NewDataset() Dataset {
	return Dataset{
		coords: map[dim.Dim]variable.Variable{},
		items:  map[string]DataArray{},
	}
}

// Coords returns the Dataset's shared coordinate dictionary.
func (d Dataset) Coords() map[dim.Dim]variable.Variable { return d.coords }

// Items returns the dictionary of named DataArrays currently held,
// each with its own per-item coords already merged into Coords().
func (d Dataset) Items() map[string]DataArray { return d.items }

func (d Dataset) clone() Dataset {
	out := Dataset{
		coords: make(map[dim.Dim]variable.Variable, len(d.coords)),
		items:  make(map[string]DataArray, len(d.items)),
	}
	for k, v := range d.coords {
		out.coords[k] = v
	}
	for k, v := range d.items {
		out.items[k] = v
	}
	return out
}

// SetCoord attaches a Dataset-wide coordinate, shared by every item
// aligned along l.
func (d Dataset) SetCoord(l dim.Dim, coord variable.Variable) Dataset {
	out := d.clone()
	out.coords[l] = coord
	return out
}

// Set inserts da under name. Any coord of da that is not already
// present in the Dataset's shared dictionary under the same Dim is
// promoted into it; a coord already present must have the same
// Dimensions as da's own (values are not compared), or Set reports a
// DimensionMismatchError, since the Dataset's whole
// point is that its items share one coordinate system (scipp core spec
// §3).
func (d Dataset) Set(name string, da DataArray) (Dataset, error) {
	out := d.clone()
	for l, coord := range da.Coords() {
		existing, ok := out.coords[l]
		if !ok {
			out.coords[l] = coord
			continue
		}
		if !existing.Dims().Equal(coord.Dims()) {
			return Dataset{}, &variable.DimensionMismatchError{Msg: "dataset: coordinate " + string(l) + " for item " + name + " disagrees with the dataset's existing coordinate"}
		}
	}
	out.items[name] = da
	return out, nil
}

// Get returns the named item, with the Dataset's shared coords merged
// back onto it so it is usable as a standalone DataArray.
func (d Dataset) Get(name string) (DataArray, bool) {
	da, ok := d.items[name]
	if !ok {
		return DataArray{}, false
	}
	out := da
	for l, coord := range d.coords {
		if !out.data.Dims().Contains(l) {
			continue
		}
		if _, has := out.coords[l]; has {
			continue
		}
		out = out.SetCoord(l, coord)
	}
	return out, true
}
