package dim

// ViewIndex walks a target Dimensions of rank n, turning successive
// logical row-major positions into memory offsets according to Strides.
// It keeps a per-dimension coordinate, innermost first, and a running
// flat offset; Increment adds the innermost stride and ripple-carries
// into outer dimensions when the innermost coordinate saturates, so a
// fully contiguous non-broadcast view advances at the cost of one add
// per step (scipp core spec §4.B).
type ViewIndex struct {
	// shape and stride are stored innermost-first (reverse of the
	// Dimensions they were built from) so Increment touches the fast
	// axis first without any index arithmetic.
	shape  []int64
	stride []int64
	coord  []int64
	base   int64 // offset of logical position 0, e.g. a sliced Variable's start
	offset int64
	pos    int64
	total  int64
}

// NewViewIndex builds a ViewIndex over target, using strides (as
// returned by RowMajor or BroadcastTo) to map coordinates to offsets,
// starting at base (the offset of a Variable's first element within its
// possibly shared, larger underlying buffer).
func NewViewIndex(target Dimensions, strides Strides, base int64) *ViewIndex {
	n := target.NDim()
	v := &ViewIndex{
		shape:  make([]int64, n),
		stride: make([]int64, n),
		coord:  make([]int64, n),
		base:   base,
		offset: base,
		total:  target.Volume(),
	}
	for i := 0; i < n; i++ {
		v.shape[i] = target.Size(n - 1 - i)
		v.stride[i] = strides[n-1-i]
	}
	return v
}

// Get returns the current memory offset.
func (v *ViewIndex) Get() int64 { return v.offset }

// Pos returns the current linear (row-major) position, in [0, total).
func (v *ViewIndex) Pos() int64 { return v.pos }

// AtEnd reports whether the view has been fully walked.
func (v *ViewIndex) AtEnd() bool { return v.pos >= v.total }

// Increment advances to the next logical position.
func (v *ViewIndex) Increment() {
	v.pos++
	for i := range v.shape {
		v.coord[i]++
		v.offset += v.stride[i]
		if v.coord[i] < v.shape[i] {
			return
		}
		v.offset -= v.stride[i] * v.shape[i]
		v.coord[i] = 0
	}
}

// SeekTo moves the view to linear position pos, recomputing the
// coordinate and offset from scratch.
func (v *ViewIndex) SeekTo(pos int64) {
	v.pos = pos
	rem := pos
	v.offset = v.base
	for i := range v.shape {
		if v.shape[i] == 0 {
			v.coord[i] = 0
			continue
		}
		v.coord[i] = rem % v.shape[i]
		rem /= v.shape[i]
		v.offset += v.coord[i] * v.stride[i]
	}
}

// Equal reports whether v and o are at the same linear position. It
// does not compare shape/stride, matching the contract that equality is
// only meaningful between two views over the same iteration.
func (v *ViewIndex) Equal(o *ViewIndex) bool { return v.pos == o.pos }

// ElementArrayView couples a typed buffer with a ViewIndex so callers
// can iterate a Dimensions-shaped, possibly strided or broadcast view of
// data without manual offset bookkeeping.
type ElementArrayView[T any] struct {
	data []T
	idx  *ViewIndex
}

// NewElementArrayView builds a view of data over target using strides,
// starting at element offset base.
func NewElementArrayView[T any](data []T, target Dimensions, strides Strides, base int64) *ElementArrayView[T] {
	return &ElementArrayView[T]{data: data, idx: NewViewIndex(target, strides, base)}
}

// Get returns the element at the current position.
func (e *ElementArrayView[T]) Get() T { return e.data[e.idx.Get()] }

// Set writes the element at the current position.
func (e *ElementArrayView[T]) Set(v T) { e.data[e.idx.Get()] = v }

// Increment advances to the next logical position.
func (e *ElementArrayView[T]) Increment() { e.idx.Increment() }

// AtEnd reports whether the view has been fully walked.
func (e *ElementArrayView[T]) AtEnd() bool { return e.idx.AtEnd() }

// Pos returns the current linear position.
func (e *ElementArrayView[T]) Pos() int64 { return e.idx.Pos() }

// SeekTo moves the view to linear position pos.
func (e *ElementArrayView[T]) SeekTo(pos int64) { e.idx.SeekTo(pos) }

// Chunk returns an independent view over the same (target, strides,
// base) iteration restricted to linear positions [begin, end) — the
// contiguous range of outer-dim coordinates a parallel_for worker
// operates on (scipp core spec §5).
func (e *ElementArrayView[T]) Chunk(target Dimensions, strides Strides, base, begin, end int64) *ElementArrayView[T] {
	v := NewElementArrayView(e.data, target, strides, base)
	v.idx.SeekTo(begin)
	v.idx.total = end
	return v
}
