package dtype

import "fmt"

// DType identifies an element type a Variable buffer may hold.
type DType int

// The element types the core registers at init (scipp core spec §4.G).
// Affine transform, quaternion and time point are registered so they
// can be carried as opaque payload columns (e.g. a per-event timestamp
// coordinate) but have no arithmetic type-tuples wired beyond equality.
const (
	Invalid DType = iota
	Float32
	Float64
	Int32
	Int64
	Bool
	String
	Vector3Type
	Matrix3x3Type
	AffineTransform3Type
	QuaternionType
	TimePointType
	IndexPairType
	numDTypes
)

func (d DType) String() string {
	if int(d) < 0 || int(d) >= len(names) || names[d] == "" {
		return fmt.Sprintf("DType(%d)", int(d))
	}
	return names[d]
}

var names = [numDTypes]string{
	Invalid:              "invalid",
	Float32:              "float32",
	Float64:              "float64",
	Int32:                "int32",
	Int64:                "int64",
	Bool:                 "bool",
	String:               "string",
	Vector3Type:          "vector3",
	Matrix3x3Type:        "matrix3x3",
	AffineTransform3Type: "affine_transform3",
	QuaternionType:       "quaternion",
	TimePointType:        "time_point",
	IndexPairType:        "index_pair",
}

// Vector3 is a fixed-size 3D vector element type.
type Vector3 [3]float64

// Matrix3x3 is a fixed-size row-major 3x3 matrix element type.
type Matrix3x3 [9]float64

// AffineTransform3 composes a linear map with a translation.
type AffineTransform3 struct {
	Linear      Matrix3x3
	Translation Vector3
}

// Quaternion is a fixed-size quaternion element type, (w, x, y, z).
type Quaternion [4]float64

// TimePoint is a timestamp stored as nanoseconds since the Unix epoch.
type TimePoint int64

// IndexPair is the element type of a binned Variable's indices buffer:
// a half-open range [Begin, End) into a shared buffer along bin_dim.
type IndexPair struct {
	Begin, End int64
}

// VarianceCapable reports whether values of this DType may carry a
// variance channel. Only the floating point numeric types qualify.
func (d DType) VarianceCapable() bool {
	return d == Float32 || d == Float64
}

// IsNumeric reports whether arithmetic type-tuples are registered for d
// in the transform engine's built-in operators.
func (d DType) IsNumeric() bool {
	switch d {
	case Float32, Float64, Int32, Int64:
		return true
	default:
		return false
	}
}

// Registered reports whether d names a known element type.
func (d DType) Registered() bool {
	return d > Invalid && d < numDTypes
}

// Of returns the DType tag for a known Go element type. It is the
// compile-time counterpart to the runtime registry below: most code in
// this module knows its element type statically and should use Of
// rather than look up a registry entry.
func Of[T any]() DType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case bool:
		return Bool
	case string:
		return String
	case Vector3:
		return Vector3Type
	case Matrix3x3:
		return Matrix3x3Type
	case AffineTransform3:
		return AffineTransform3Type
	case Quaternion:
		return QuaternionType
	case TimePoint:
		return TimePointType
	case IndexPair:
		return IndexPairType
	default:
		return Invalid
	}
}
