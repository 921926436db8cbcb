// Package transform implements the broadcasting, multi-input,
// multi-type elementwise dispatcher described in the scipp core spec
// §4.D (transform) and §4.E (accumulate): it merges input Dimensions,
// broadcasts each input to the result shape, derives the result Unit
// before touching any value, propagates variances analytically, and
// parallelizes the walk along the output's outermost dimension.
//
// transform knows nothing about Variable; it operates on plain typed
// slices plus the Dimensions/Strides/offset describing how to read
// them, exactly the pieces dim.ElementArrayView wraps. The variable
// package is the only caller, bridging a Variable's type-erased storage
// to the generic functions here.
package transform
