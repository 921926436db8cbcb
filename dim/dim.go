package dim

import (
	"bytes"
	"fmt"
)

// Dim is an axis label. Any comparable string works; the core never
// interprets the label beyond equality and printing.
type Dim string

// Dimensions is an ordered sequence of (Dim, length) pairs, outermost
// first. All Dims in a Dimensions value are distinct and every length is
// non-negative.
type Dimensions struct {
	labels []Dim
	sizes  []int64
}

// New builds a Dimensions from parallel label/size slices. It copies
// both slices so the caller's backing arrays may be reused.
func New(labels []Dim, sizes []int64) (Dimensions, error) {
	if len(labels) != len(sizes) {
		return Dimensions{}, &DimensionError{Msg: fmt.Sprintf("dim: %d labels but %d sizes", len(labels), len(sizes))}
	}
	seen := make(map[Dim]bool, len(labels))
	for i, l := range labels {
		if seen[l] {
			return Dimensions{}, &DimensionError{Msg: fmt.Sprintf("dim: duplicate dimension %q", l)}
		}
		seen[l] = true
		if sizes[i] < 0 {
			return Dimensions{}, &DimensionError{Msg: fmt.Sprintf("dim: negative length %d for dimension %q", sizes[i], l)}
		}
	}
	d := Dimensions{
		labels: append([]Dim(nil), labels...),
		sizes:  append([]int64(nil), sizes...),
	}
	if v := d.volume(); v < 0 {
		return Dimensions{}, &DimensionError{Msg: "dim: volume overflows int64"}
	}
	return d, nil
}

// Scalar is the Dimensions of a rank-0 (single element) Variable.
var Scalar, _ = New(nil, nil)

func (d Dimensions) volume() int64 {
	v := int64(1)
	for _, s := range d.sizes {
		if s != 0 && v > (1<<62)/s {
			return -1 // overflow guard, see Invariant in spec §3
		}
		v *= s
	}
	return v
}

// NDim returns the number of dimensions (rank).
func (d Dimensions) NDim() int { return len(d.labels) }

// Volume returns the product of all lengths.
func (d Dimensions) Volume() int64 { return d.volume() }

// Label returns the Dim at position i (0 = outermost).
func (d Dimensions) Label(i int) Dim { return d.labels[i] }

// Size returns the length at position i (0 = outermost).
func (d Dimensions) Size(i int) int64 { return d.sizes[i] }

// Labels returns a copy of the ordered Dim labels.
func (d Dimensions) Labels() []Dim { return append([]Dim(nil), d.labels...) }

// Sizes returns a copy of the ordered lengths.
func (d Dimensions) Sizes() []int64 { return append([]int64(nil), d.sizes...) }

// Contains reports whether l is one of d's dimensions.
func (d Dimensions) Contains(l Dim) bool {
	_, ok := d.IndexOf(l)
	return ok
}

// IndexOf returns the position of l within d, outermost-first.
func (d Dimensions) IndexOf(l Dim) (int, bool) {
	for i, x := range d.labels {
		if x == l {
			return i, true
		}
	}
	return 0, false
}

// SizeOf returns the length of l within d.
func (d Dimensions) SizeOf(l Dim) (int64, bool) {
	i, ok := d.IndexOf(l)
	if !ok {
		return 0, false
	}
	return d.sizes[i], true
}

// Equal reports whether d and o name the same dimensions, in the same
// order, with the same lengths.
func (d Dimensions) Equal(o Dimensions) bool {
	if len(d.labels) != len(o.labels) {
		return false
	}
	for i := range d.labels {
		if d.labels[i] != o.labels[i] || d.sizes[i] != o.sizes[i] {
			return false
		}
	}
	return true
}

// Rename returns a copy of d with the label old replaced by new,
// preserving position and length.
func (d Dimensions) Rename(old, new Dim) (Dimensions, error) {
	i, ok := d.IndexOf(old)
	if !ok {
		return Dimensions{}, &DimensionNotFoundError{Dim: old, In: d}
	}
	if old != new && d.Contains(new) {
		return Dimensions{}, &DimensionError{Msg: fmt.Sprintf("dim: rename target %q already present in %v", new, d)}
	}
	labels := d.Labels()
	labels[i] = new
	out, _ := New(labels, d.Sizes())
	return out, nil
}

// Append returns a copy of d with a new Dim l of length n inserted at
// the outer end (position 0), the same placement rule Merge uses for a
// Dim new to an operation.
func (d Dimensions) Append(l Dim, n int64) (Dimensions, error) {
	if d.Contains(l) {
		return Dimensions{}, &DimensionError{Msg: fmt.Sprintf("dim: %q already present in %v", l, d)}
	}
	labels := append([]Dim{l}, d.labels...)
	sizes := append([]int64{n}, d.sizes...)
	return New(labels, sizes)
}

// Erase returns a copy of d with l removed entirely.
func (d Dimensions) Erase(l Dim) (Dimensions, error) {
	i, ok := d.IndexOf(l)
	if !ok {
		return Dimensions{}, &DimensionNotFoundError{Dim: l, In: d}
	}
	labels := append(append([]Dim(nil), d.labels[:i]...), d.labels[i+1:]...)
	sizes := append(append([]int64(nil), d.sizes[:i]...), d.sizes[i+1:]...)
	return New(labels, sizes)
}

// Slice shortens l to the half-open range [begin, end).
func (d Dimensions) Slice(l Dim, begin, end int64) (Dimensions, error) {
	i, ok := d.IndexOf(l)
	if !ok {
		return Dimensions{}, &DimensionNotFoundError{Dim: l, In: d}
	}
	n := d.sizes[i]
	if begin < 0 || end < begin || end > n {
		return Dimensions{}, &SliceError{Dim: l, Begin: begin, End: end, Length: n}
	}
	sizes := d.Sizes()
	sizes[i] = end - begin
	out, _ := New(d.Labels(), sizes)
	return out, nil
}

// SliceIndex removes l from d after validating that i is in range; this
// is the "single index instead of a range" form of Slice, which drops
// the dimension from the result (scipp core spec §4.A).
func (d Dimensions) SliceIndex(l Dim, i int64) (Dimensions, error) {
	idx, ok := d.IndexOf(l)
	if !ok {
		return Dimensions{}, &DimensionNotFoundError{Dim: l, In: d}
	}
	n := d.sizes[idx]
	if i < 0 || i >= n {
		return Dimensions{}, &SliceError{Dim: l, Begin: i, End: i + 1, Length: n}
	}
	return d.Erase(l)
}

func (d Dimensions) String() string {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, l := range d.labels {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", l, d.sizes[i])
	}
	b.WriteByte('}')
	return b.String()
}

// Merge returns the minimal Dimensions containing both a and b as
// subsets, preserving outer-first order. A Dim shared by a and b must
// agree on length. A Dim present in only one of a, b is placed at the
// outer end of the result, in the order it appears while scanning b,
// unless it already appears in a (in which case its position in a is
// kept). See scipp core spec §4.A.
func Merge(a, b Dimensions) (Dimensions, error) {
	labels := a.Labels()
	sizes := a.Sizes()
	var newLabels []Dim
	var newSizes []int64
	for i, l := range b.labels {
		if j, ok := a.IndexOf(l); ok {
			if a.sizes[j] != b.sizes[i] {
				return Dimensions{}, &DimensionLengthError{Dim: l, Got: b.sizes[i], Want: a.sizes[j]}
			}
			continue
		}
		newLabels = append(newLabels, l)
		newSizes = append(newSizes, b.sizes[i])
	}
	labels = append(newLabels, labels...)
	sizes = append(newSizes, sizes...)
	return New(labels, sizes)
}
