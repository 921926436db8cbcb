package transform

import "fmt"

// TypeError reports an input DType unsupported by the operator's
// declared type-tuples (scipp core spec §4.D step 1).
type TypeError struct{ Msg string }

func (e *TypeError) Error() string { return e.Msg }

// UnitError reports a violated unit precondition: mismatched summands,
// a non-dimensionless argument to a transcendental function, a
// non-perfect-square argument to sqrt, or the counts*counts
// histogram-product rule (scipp core spec §4.D "Unit algebra").
type UnitError struct{ Msg string }

func (e *UnitError) Error() string { return e.Msg }

// VariancesError reports a variance-channel precondition violation:
// requested on a type that cannot carry variances, or missing on one
// operand of a multiplicative op while present on the other (scipp core
// spec §4.D "Value/variance algebra").
type VariancesError struct{ Msg string }

func (e *VariancesError) Error() string { return e.Msg }

func errf(format string, args ...any) error { return fmt.Errorf(format, args...) }
