package variable

import (
	"sync/atomic"

	"github.com/jokasimr/scipp/dtype"
)

// buffer is the shared "concept" handle behind one or more Variables.
// Values and Variances are always the same Go slice type, picked by
// DType; holding them as any keeps buffer itself monomorphic, matching
// the type-erased holder design the spec calls for (§4.C, §9
// "type-erased holders").
//
// Go has no destructors, so buffer cannot track "how many Variables
// currently alias me" precisely the way a C++ shared_ptr use_count
// does. Instead shared is a monotonic flag: Slice/SliceIndex set it the
// first time a second Variable starts pointing at this buffer, and it
// is never cleared. A mutation uniquifies (deep-copies) whenever shared
// is set, which is always safe — it only ever costs an extra copy it
// did not strictly need, never an aliasing bug.
type buffer struct {
	dtype     dtype.DType
	values    any // e.g. []float64
	variances any // same concrete type as values, or nil
	shared    atomic.Bool
}

func newBuffer(d dtype.DType, values, variances any) *buffer {
	return &buffer{dtype: d, values: values, variances: variances}
}

// alias marks b as shared and returns it, for a second Variable that is
// about to start pointing at it (e.g. a Slice view).
func (b *buffer) alias() *buffer {
	b.shared.Store(true)
	return b
}

func (b *buffer) isShared() bool {
	return b.shared.Load()
}

// valuesLen reports the length of the underlying values slice, via the
// generic helper in typed.go (buffer itself cannot range over `any`).
func (b *buffer) valuesLen() int {
	return sliceLen(b.values)
}
