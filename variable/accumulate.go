package variable

import (
	"github.com/jokasimr/scipp/dtype"
	"github.com/jokasimr/scipp/transform"
)

// SumInto reduces in along every Dim not present in out's own Dims,
// accumulating into out in place; out's Dims must be a subset of in's
// (scipp core spec §4.E). out's Unit is left unchanged, matching the
// "no Unit callable, unit unchanged" rule.
func SumInto(out *Variable, in Variable) error {
	if out.elem != in.elem {
		return &TypeError{Msg: "sum_into: operands have different element types (" + out.elem.String() + " and " + in.elem.String() + ")"}
	}
	switch out.elem {
	case dtype.Float64:
		return accumulateInto[float64](out, in)
	case dtype.Float32:
		return accumulateInto[float32](out, in)
	case dtype.Int64:
		return accumulateInto[int64](out, in)
	case dtype.Int32:
		return accumulateInto[int32](out, in)
	}
	return &TypeError{Msg: "sum_into: unsupported dtype " + out.elem.String()}
}

func accumulateInto[T addable](out *Variable, in Variable) error {
	*out = out.uniquify()
	ov, err := viewOf[T](*out)
	if err != nil {
		return err
	}
	iv, err := viewOf[T](in)
	if err != nil {
		return err
	}
	return transform.AccumulateInPlace(ov, iv, transform.AccumulateOp[T]{
		Value: func(acc, a T) T { return acc + a },
	})
}

// addable is every element type SumInto supports; kept distinct from
// real/integral since both already satisfy it and nothing here needs
// variance capability.
type addable interface{ ~float32 | ~float64 | ~int32 | ~int64 }
