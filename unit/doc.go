// Package unit provides a small opaque physical-unit value type used
// throughout scipp to tag the buffers held by a Variable.
//
// A Unit is a vector of integer exponents over a fixed set of SI base
// dimensions plus one pseudo-dimension, Counts, which lets the transform
// engine recognize and reject the "histogram data times histogram data"
// pattern (see the scipp core spec, §4.D). Units are small, comparable
// values: two Units are equal exactly when their exponent vectors match,
// so Unit can be compared with == and passed by value everywhere.
//
// This package does not know about prefixes, named derived units (joule,
// pascal, ...), or unit conversion factors; it only tracks dimensional
// exponents, which is all the core's broadcasting arithmetic needs.
package unit
