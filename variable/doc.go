// Package variable implements Variable, the owning, labeled,
// unit-tagged N-D buffer every other part of scipp is built from (scipp
// core spec §3, §4.C), plus its binned (bucketed) cousin (§4.F) and the
// typed-holder factory that allocates either of them from a runtime
// DType tag (§4.G).
//
// A dense Variable owns a copy-on-write buffer that is flagged as shared
// once a Slice view points at it; an in-place mutation of a flagged
// buffer first uniquifies it, so a Slice view shares storage safely
// with its parent until one of them is written through. Arithmetic is
// implemented by calling into the transform package, which knows
// nothing about Variable and operates purely on typed views — this
// package is the only one that bridges a Variable's type-erased storage
// to transform's generically-instantiated per-type code.
package variable
