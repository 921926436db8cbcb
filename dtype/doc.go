// Package dtype enumerates the element types a Variable can hold and
// the metadata the rest of the core needs to do runtime dispatch on
// them: display name, whether the type may carry a variance channel,
// and (through the registry) how to allocate a zero-valued buffer of it.
//
// Go's generics give static dispatch for free once an element type is
// known at compile time; dtype exists for the remaining case the core
// spec calls out explicitly — a DType value arriving at runtime (from a
// deserializer, a plug-in, a binned-variable buffer lookup) that must be
// turned into the right concrete constructor. That mapping lives in the
// registry below and is populated once, at init, for every type the
// core ships with (see scipp core spec §4.G).
package dtype
