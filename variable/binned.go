package variable

import (
	"math"
	"sort"

	"github.com/jokasimr/scipp/dim"
	"github.com/jokasimr/scipp/dtype"
	"github.com/jokasimr/scipp/unit"
)

// MakeBins constructs a binned Variable: indices must have element type
// dtype.IndexPair, every pair must satisfy 0 <= Begin <= End <=
// buffer.Dims()[binDim], and buffer must actually have binDim among its
// Dims (scipp core spec §3, binned form invariants).
func MakeBins(indices Variable, binDim dim.Dim, buffer Variable) (Variable, error) {
	if indices.elem != dtype.IndexPairType {
		return Variable{}, &TypeError{Msg: "make_bins: indices must have element type index_pair"}
	}
	n, ok := buffer.dims.SizeOf(binDim)
	if !ok {
		return Variable{}, &dim.DimensionNotFoundError{Dim: binDim, In: buffer.dims}
	}
	pairs, err := Values[dtype.IndexPair](indices)
	if err != nil {
		return Variable{}, err
	}
	for _, p := range pairs {
		if p.Begin < 0 || p.Begin > p.End || p.End > n {
			return Variable{}, &dim.SliceError{Dim: binDim, Begin: p.Begin, End: p.End, Length: n}
		}
	}
	return MakeBinsNoValidate(indices, binDim, buffer), nil
}

// MakeBinsNoValidate is MakeBins without range checking: the caller
// guarantees every pair is valid, and that overlapping ranges (if any)
// are intentional (scipp core spec §3).
func MakeBinsNoValidate(indices Variable, binDim dim.Dim, buffer Variable) Variable {
	return Variable{
		dims:    indices.dims,
		binned:  true,
		indices: ptr(indices),
		binDim:  binDim,
		events:  ptr(buffer),
		elem:    dtype.IndexPairType,
		u:       buffer.u,
	}
}

// BinIndices returns the IndexPair Variable backing a binned Variable,
// and the Dim its ranges index into. Panics if v is not binned.
func (v Variable) BinIndices() (Variable, dim.Dim) {
	if !v.binned {
		panic("variable: BinIndices called on a non-binned Variable")
	}
	return *v.indices, v.binDim
}

// BinBuffer returns the shared buffer Variable a binned Variable's
// ranges index into. Panics if v is not binned.
func (v Variable) BinBuffer() Variable {
	if !v.binned {
		panic("variable: BinBuffer called on a non-binned Variable")
	}
	return *v.events
}

// sliceBinned restricts a binned Variable's indices along d, sharing the
// same underlying buffer (scipp core spec §4.F "slicing a binned
// Variable... produces another binned Variable sharing the same
// buffer").
func (v Variable) sliceBinned(d dim.Dim, begin, end int64) (Variable, error) {
	sliced, err := v.indices.Slice(d, begin, end)
	if err != nil {
		return Variable{}, err
	}
	out := v
	out.indices = ptr(sliced)
	out.dims = sliced.dims
	return out, nil
}

// BinSizes returns end-begin for every bin of v, in v's own Dims.
func BinSizes(v Variable) (Variable, error) {
	if !v.binned {
		return Variable{}, &TypeError{Msg: "bin_sizes: variable is not binned"}
	}
	pairs, err := Values[dtype.IndexPair](*v.indices)
	if err != nil {
		return Variable{}, err
	}
	sizes := make([]int64, len(pairs))
	for i, p := range pairs {
		sizes[i] = p.End - p.Begin
	}
	return New(v.dims, unit.Dimensionless, sizes)
}

// Sum reduces every bin's buffer slice to a single value using the
// buffer's own arithmetic (scipp core spec §4.F "sum(v) per bin").
// Currently supports float64 and float32 buffers.
func Sum(v Variable) (Variable, error) {
	if !v.binned {
		return Variable{}, &TypeError{Msg: "sum: variable is not binned"}
	}
	pairs, err := Values[dtype.IndexPair](*v.indices)
	if err != nil {
		return Variable{}, err
	}
	switch v.events.elem {
	case dtype.Float64:
		return sumBins[float64](v, pairs)
	case dtype.Float32:
		return sumBins[float32](v, pairs)
	}
	return Variable{}, &TypeError{Msg: "sum: unsupported bin buffer dtype " + v.events.elem.String()}
}

func sumBins[T real](v Variable, pairs []dtype.IndexPair) (Variable, error) {
	buf, err := Values[T](*v.events)
	if err != nil {
		return Variable{}, err
	}
	out := make([]T, len(pairs))
	for i, p := range pairs {
		var acc T
		for k := p.Begin; k < p.End; k++ {
			acc += buf[k]
		}
		out[i] = acc
	}
	return New(v.dims, v.events.u, out)
}

// Concatenate produces, for each logical outer coordinate, a bin whose
// buffer slice is a's slice followed by b's (scipp core spec §4.F
// "concatenate(a,b) (bin-wise)"). If a and b have equal outer
// Dimensions this proceeds element-parallel; if one is a length-1
// broadcast of the other along every Dim, it is repeated per bin of the
// larger side.
func Concatenate(a, b Variable) (Variable, error) {
	if !a.binned || !b.binned {
		return Variable{}, &TypeError{Msg: "concatenate: both operands must be binned variables"}
	}
	if a.binDim != b.binDim {
		return Variable{}, &DimensionMismatchError{Msg: "concatenate: bin dimensions differ (" + string(a.binDim) + " vs " + string(b.binDim) + ")"}
	}
	switch a.events.elem {
	case dtype.Float64:
		return concatenateBins[float64](a, b)
	case dtype.Float32:
		return concatenateBins[float32](a, b)
	}
	return Variable{}, &TypeError{Msg: "concatenate: unsupported bin buffer dtype " + a.events.elem.String()}
}

func concatenateBins[T real](a, b Variable) (Variable, error) {
	aPairs, err := Values[dtype.IndexPair](*a.indices)
	if err != nil {
		return Variable{}, err
	}
	bPairs, err := Values[dtype.IndexPair](*b.indices)
	if err != nil {
		return Variable{}, err
	}
	n := len(aPairs)
	broadcastB := len(bPairs) == 1 && len(aPairs) != 1
	broadcastA := len(aPairs) == 1 && len(bPairs) != 1
	if broadcastA {
		n = len(bPairs)
	}
	if !broadcastA && !broadcastB && len(aPairs) != len(bPairs) {
		return Variable{}, &DimensionMismatchError{Msg: "concatenate: bin counts differ and neither side is a length-1 broadcast"}
	}

	aBuf, err := Values[T](*a.events)
	if err != nil {
		return Variable{}, err
	}
	bBuf, err := Values[T](*b.events)
	if err != nil {
		return Variable{}, err
	}

	var buf []T
	newPairs := make([]dtype.IndexPair, n)
	for i := 0; i < n; i++ {
		ai := i
		if broadcastA {
			ai = 0
		}
		bi := i
		if broadcastB {
			bi = 0
		}
		begin := int64(len(buf))
		buf = append(buf, aBuf[aPairs[ai].Begin:aPairs[ai].End]...)
		buf = append(buf, bBuf[bPairs[bi].Begin:bPairs[bi].End]...)
		newPairs[i] = dtype.IndexPair{Begin: begin, End: int64(len(buf))}
	}

	outerDims := a.dims
	if broadcastA {
		outerDims = b.dims
	}
	indices, err := New(outerDims, unit.Dimensionless, newPairs)
	if err != nil {
		return Variable{}, err
	}
	flat, err := dim.New([]dim.Dim{a.binDim}, []int64{int64(len(buf))})
	if err != nil {
		return Variable{}, err
	}
	bufVar, err := New(flat, a.events.u, buf)
	if err != nil {
		return Variable{}, err
	}
	return MakeBins(indices, a.binDim, bufVar)
}

// Append is Concatenate restricted to an exact dimension match (no
// broadcast); it fails with DimensionMismatchError otherwise (scipp
// core spec §4.F). It returns the result as a new Variable and does not
// modify a in place.
func Append(a, b Variable) (Variable, error) {
	if !a.binned || !b.binned {
		return Variable{}, &TypeError{Msg: "append: both operands must be binned variables"}
	}
	if !a.dims.Equal(b.dims) {
		return Variable{}, &DimensionMismatchError{Msg: "append: outer dimensions " + a.dims.String() + " and " + b.dims.String() + " differ"}
	}
	return Concatenate(a, b)
}

// Histogram runs the 1-D histogramming algorithm on the flat event
// coordinates in events against edges, adding each event's weight (and
// weight variance) into the bin it falls in (scipp core spec §4.F).
// events must be a dense Variable: a binned one is rejected with
// TypeError, and no per-bin histogram is computed. Edges that are not
// sorted ascending are rejected with BinEdgeError.
func Histogram(events Variable, weights Variable, edges Variable) (Variable, error) {
	edgeVals, err := Values[float64](edges)
	if err != nil {
		return Variable{}, err
	}
	if !sort.Float64sAreSorted(edgeVals) {
		return Variable{}, &BinEdgeError{Msg: "histogram: edges are not sorted in ascending order"}
	}
	if !edges.u.Equal(events.u) {
		return Variable{}, &UnitError{Msg: "histogram: edge unit " + edges.u.String() + " does not match event coordinate unit " + events.u.String()}
	}
	if !weights.u.IsCounts() && !weights.u.IsDimensionless() {
		return Variable{}, &UnitError{Msg: "histogram: weight unit must be counts or dimensionless, got " + weights.u.String()}
	}
	nbin := len(edgeVals) - 1
	if nbin < 0 {
		nbin = 0
	}
	find := binFinder(edgeVals)

	eventVals, err := Values[float64](events)
	if err != nil {
		return Variable{}, err
	}
	weightVals, err := Values[float64](weights)
	if err != nil {
		return Variable{}, err
	}
	var weightVars []float64
	if weights.HasVariances() {
		weightVars, err = Variances[float64](weights)
		if err != nil {
			return Variable{}, err
		}
	}

	values := make([]float64, nbin)
	variances := make([]float64, nbin)
	for i, x := range eventVals {
		b, ok := find(x)
		if !ok {
			continue
		}
		values[b] += weightVals[i]
		if weightVars != nil {
			variances[b] += weightVars[i]
		}
	}
	d, err := edges.dims.Slice(edges.dims.Label(edges.dims.NDim()-1), 0, int64(nbin))
	if err != nil {
		return Variable{}, err
	}
	return NewWithVariances(d, weights.u, values, variances)
}

// binFinder returns a function mapping a coordinate to a bin index (and
// whether it fell within range), implementing the linear-fast-path vs
// upper_bound-general-path split (scipp core spec §4.F).
func binFinder(edges []float64) func(float64) (int, bool) {
	n := len(edges) - 1
	if n <= 0 {
		return func(float64) (int, bool) { return 0, false }
	}
	if isLinear(edges) {
		offset := edges[0]
		scale := float64(n) / (edges[n] - edges[0])
		return func(x float64) (int, bool) {
			b := int(math.Floor((x - offset) * scale))
			if b < 0 || b >= n {
				return 0, false
			}
			return b, true
		}
	}
	return func(x float64) (int, bool) {
		i := sort.Search(len(edges), func(i int) bool { return edges[i] > x })
		b := i - 1
		if b < 0 || b >= n {
			return 0, false
		}
		return b, true
	}
}

// isLinear reports whether edges has constant spacing, within a
// relative tolerance tight enough to rule out float round-off but loose
// enough to still admit a genuinely linear array built from arithmetic.
func isLinear(edges []float64) bool {
	if len(edges) < 3 {
		return true
	}
	step := edges[1] - edges[0]
	if step == 0 {
		return false
	}
	const tol = 1e-9
	for i := 2; i < len(edges); i++ {
		d := edges[i] - edges[i-1]
		if (d-step) > tol*step || (step-d) > tol*step {
			return false
		}
	}
	return true
}

// Map looks up, for every event in every bin of events, the value of
// histValues at the event's coordinate (found via binFinder against
// edges), emitting it into a parallel bin structure sharing events'
// indices/bin_dim. Events outside every edge map to 0 (scipp core spec
// §4.F "map(hist, v, dim)").
func Map(events Variable, histValues Variable, edges Variable) (Variable, error) {
	if !events.binned {
		return Variable{}, &TypeError{Msg: "map: events must be a binned variable"}
	}
	edgeVals, err := Values[float64](edges)
	if err != nil {
		return Variable{}, err
	}
	find := binFinder(edgeVals)
	histVals, err := Values[float64](histValues)
	if err != nil {
		return Variable{}, err
	}
	coordVals, err := Values[float64](*events.events)
	if err != nil {
		return Variable{}, err
	}
	pairs, err := Values[dtype.IndexPair](*events.indices)
	if err != nil {
		return Variable{}, err
	}
	out := make([]float64, len(coordVals))
	for _, p := range pairs {
		for k := p.Begin; k < p.End; k++ {
			if b, ok := find(coordVals[k]); ok {
				out[k] = histVals[b]
			}
		}
	}
	buf, err := New(events.events.dims, histValues.u, out)
	if err != nil {
		return Variable{}, err
	}
	return MakeBinsNoValidate(*events.indices, events.binDim, buf), nil
}
