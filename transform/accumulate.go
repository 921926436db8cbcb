package transform

import "github.com/jokasimr/scipp/dim"

// AccumulateOp is the reduction counterpart of BinaryOp: Value folds one
// input element into the accumulator already sitting at the matching
// output position. Unlike Binary, no Unit callable is invoked — the
// scipp core spec calls accumulate's output unit "unchanged" because an
// operator like repeated multiplication into a sum slot would not yield
// a consistent unit from a per-call f_u (§4.E).
type AccumulateOp[A any] struct {
	Value func(acc, a A) A
}

// AccumulateInPlace folds in into out, where out's Dims are a subset of
// in's Dims (a reduction target): every logical position of in maps,
// via broadcasting out to in's shape, to exactly one position of out,
// and Value is applied there. The engine parallelizes over out's
// outermost Dim; within a block of out, the same output element may be
// visited by more than one input chunk serialized onto the same
// goroutine, so Value must be commutative-associative for determinism
// (a precondition the engine does not check, per scipp core spec §4.E).
func AccumulateInPlace[A any](out View[A], in View[A], op AccumulateOp[A]) error {
	if out.Dims.NDim() == 0 {
		return accumulateSerial(out, in, op)
	}
	for i := 0; i < out.Dims.NDim(); i++ {
		n, ok := in.Dims.SizeOf(out.Dims.Label(i))
		if !ok {
			return &dim.DimensionError{Msg: "accumulate: output dimensions are not a subset of the input's"}
		}
		if n != out.Dims.Size(i) {
			return &dim.DimensionLengthError{Dim: out.Dims.Label(i), Got: n, Want: out.Dims.Size(i)}
		}
	}

	// Iterate with out's own outermost Dim leading, not in's: in.Dims may
	// lead with a Dim unique to in (the reduction axis, broadcast to
	// stride 0 in out) at position 0, so splitting the
	// parallel range along in.Dims.Size(0) would hand every goroutine
	// chunk the same out position to write. Leading with a Dim out
	// actually varies along guarantees disjoint out slices per chunk
	// (scipp core spec §5).
	splitDim := out.Dims.Label(0)
	splitPos, ok := in.Dims.IndexOf(splitDim)
	if !ok {
		return &dim.DimensionNotFoundError{Dim: splitDim, In: in.Dims}
	}
	labels := make([]dim.Dim, 0, in.Dims.NDim())
	sizes := make([]int64, 0, in.Dims.NDim())
	labels = append(labels, splitDim)
	sizes = append(sizes, in.Dims.Size(splitPos))
	for i := 0; i < in.Dims.NDim(); i++ {
		if i == splitPos {
			continue
		}
		labels = append(labels, in.Dims.Label(i))
		sizes = append(sizes, in.Dims.Size(i))
	}
	iterDims, err := dim.New(labels, sizes)
	if err != nil {
		return err
	}

	outStrides, err := dim.BroadcastTo(out.Dims, out.Strides, iterDims)
	if err != nil {
		return err
	}
	inStrides, err := dim.BroadcastTo(in.Dims, in.Strides, iterDims)
	if err != nil {
		return err
	}

	inner := innerVolume(iterDims)

	parallelFor(outerExtent(iterDims), func(begin, end int64) {
		lo, hi := begin*inner, end*inner
		ov := dim.NewElementArrayView(out.Values, iterDims, outStrides, out.Offset).Chunk(iterDims, outStrides, out.Offset, lo, hi)
		iv := dim.NewElementArrayView(in.Values, iterDims, inStrides, in.Offset).Chunk(iterDims, inStrides, in.Offset, lo, hi)
		for pos := lo; pos < hi; pos++ {
			ov.Set(op.Value(ov.Get(), iv.Get()))
			ov.Increment()
			iv.Increment()
		}
	})
	return nil
}

// accumulateSerial handles a scalar (rank-0) output: every input
// element visits the same single accumulator, so there is no outer-dim
// axis left to parallelize and the engine bails out to a plain serial
// walk (scipp core spec §4.E "verifies output is not scalar broadcast
// to itself").
func accumulateSerial[A any](out View[A], in View[A], op AccumulateOp[A]) error {
	strides, err := dim.BroadcastTo(in.Dims, in.Strides, in.Dims)
	if err != nil {
		return err
	}
	iv := dim.NewElementArrayView(in.Values, in.Dims, strides, in.Offset)
	n := in.Dims.Volume()
	acc := out.Values[out.Offset]
	for pos := int64(0); pos < n; pos++ {
		acc = op.Value(acc, iv.Get())
		iv.Increment()
	}
	out.Values[out.Offset] = acc
	return nil
}
