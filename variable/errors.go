package variable

import (
	"fmt"

	"github.com/jokasimr/scipp/transform"
)

// TypeError reports an element type unsupported for the requested
// operation, or a typed accessor (Values[T], Variances[T]) called with
// the wrong T. Canonically defined in transform, which raises it first
// for any op dispatched through the transform engine.
type TypeError = transform.TypeError

// UnitError reports a violated unit precondition: mismatched summands,
// a non-dimensionless argument to a transcendental function, a
// non-perfect-square argument to sqrt, or the counts*counts
// histogram-product rule.
type UnitError = transform.UnitError

// VariancesError reports a variance-channel precondition violation:
// requested on a type that cannot carry variances, missing on one
// operand of a multiplicative op while present on the other, or an
// attempt to assign variances from a Variable that already has them.
type VariancesError = transform.VariancesError

// BinEdgeError reports a histogram/concatenation precondition on edges
// violated: edges not ascending, or a concatenation seam mismatch.
type BinEdgeError struct{ Msg string }

func (e *BinEdgeError) Error() string { return e.Msg }

// DimensionMismatchError is raised when a binned operation (append,
// bin-wise concatenate without broadcast) requires two Dimensions
// values to match exactly and they do not.
type DimensionMismatchError struct{ Msg string }

func (e *DimensionMismatchError) Error() string { return e.Msg }

func errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
