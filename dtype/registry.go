package dtype

import "time"

// Maker is what the factory needs to allocate a fresh, default
// initialized buffer for one element type without knowing that type at
// compile time. It is the runtime counterpart to Of[T]().
type Maker interface {
	// NewSlice allocates a fresh, zero-valued slice of n elements,
	// returned as any (e.g. []float64 for Float64).
	NewSlice(n int) any
	// Name is the human readable name used in error messages.
	Name() string
}

type sliceMaker[T any] struct{ name string }

func (m sliceMaker[T]) NewSlice(n int) any { return make([]T, n) }
func (m sliceMaker[T]) Name() string       { return m.name }

// registry is the process-wide DType -> Maker table described in the
// core spec §4.G / §5: populated once below, read concurrently
// thereafter without locking. Register is not safe to call concurrently
// with lookups and is only expected to run from package init functions.
var registry = map[DType]Maker{}

func init() {
	Register(Float32, sliceMaker[float32]{"float32"})
	Register(Float64, sliceMaker[float64]{"float64"})
	Register(Int32, sliceMaker[int32]{"int32"})
	Register(Int64, sliceMaker[int64]{"int64"})
	Register(Bool, sliceMaker[bool]{"bool"})
	Register(String, sliceMaker[string]{"string"})
	Register(Vector3Type, sliceMaker[Vector3]{"vector3"})
	Register(Matrix3x3Type, sliceMaker[Matrix3x3]{"matrix3x3"})
	Register(AffineTransform3Type, sliceMaker[AffineTransform3]{"affine_transform3"})
	Register(QuaternionType, sliceMaker[Quaternion]{"quaternion"})
	Register(TimePointType, sliceMaker[TimePoint]{"time_point"})
	Register(IndexPairType, sliceMaker[IndexPair]{"index_pair"})
}

// Register installs the maker for a DType. Consumers that add new
// element types unknown to this package call Register from their own
// init function, exactly as the built-ins above do.
func Register(d DType, m Maker) {
	registry[d] = m
}

// Lookup returns the maker registered for d, or false if d is unknown.
func Lookup(d DType) (Maker, bool) {
	m, ok := registry[d]
	return m, ok
}

// Now returns the current time as a TimePoint, a small convenience for
// consumers that stamp events.
func Now() TimePoint {
	return TimePoint(time.Now().UnixNano())
}
