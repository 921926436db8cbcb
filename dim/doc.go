// Package dim implements the dimension-labeled shape model shared by
// every Variable: Dim labels, ordered Dimensions, row-major Strides, and
// the ViewIndex/ElementArrayView pair used to walk a possibly strided or
// broadcast view without per-step bounds checks.
//
// See the scipp core spec §4.A and §4.B for the invariants this package
// enforces: Dimensions order is significant (outermost first), a stride
// of zero encodes broadcasting along that Dim, and merging two
// Dimensions values places any Dim new to the merge at the outer end.
package dim
