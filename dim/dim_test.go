package dim_test

import (
	"testing"

	"github.com/jokasimr/scipp/dim"
)

func dims(t *testing.T, labels []dim.Dim, sizes []int64) dim.Dimensions {
	t.Helper()
	d, err := dim.New(labels, sizes)
	if err != nil {
		t.Fatalf("dim.New(%v, %v) error: %v", labels, sizes, err)
	}
	return d
}

func TestVolumeAndAccessors(t *testing.T) {
	d := dims(t, []dim.Dim{"Z", "Y", "X"}, []int64{3, 2, 1})
	if d.Volume() != 6 {
		t.Errorf("Volume() = %d, want 6", d.Volume())
	}
	if i, ok := d.IndexOf("Y"); !ok || i != 1 {
		t.Errorf("IndexOf(Y) = (%d, %v), want (1, true)", i, ok)
	}
	if _, ok := d.IndexOf("W"); ok {
		t.Errorf("IndexOf(W) unexpectedly found")
	}
}

func TestMergeNewDimAtOuterEnd(t *testing.T) {
	a := dims(t, []dim.Dim{"Z", "Y"}, []int64{3, 2})
	b := dims(t, []dim.Dim{"Z"}, []int64{3})
	got, err := dim.Merge(a, b)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	want := dims(t, []dim.Dim{"Z", "Y"}, []int64{3, 2})
	if !got.Equal(want) {
		t.Errorf("Merge(a,b) = %v, want %v", got, want)
	}

	c := dims(t, []dim.Dim{"W"}, []int64{5})
	got2, err := dim.Merge(a, c)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	want2 := dims(t, []dim.Dim{"W", "Z", "Y"}, []int64{5, 3, 2})
	if !got2.Equal(want2) {
		t.Errorf("Merge(a,c) = %v, want %v", got2, want2)
	}
}

func TestMergeLengthMismatch(t *testing.T) {
	a := dims(t, []dim.Dim{"X"}, []int64{3})
	b := dims(t, []dim.Dim{"X"}, []int64{4})
	if _, err := dim.Merge(a, b); err == nil {
		t.Errorf("Merge with conflicting length should fail")
	}
}

func TestSliceAndSliceIndex(t *testing.T) {
	d := dims(t, []dim.Dim{"X"}, []int64{5})
	sliced, err := d.Slice("X", 1, 3)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if n, _ := sliced.SizeOf("X"); n != 2 {
		t.Errorf("Slice(1,3) length = %d, want 2", n)
	}
	idxed, err := d.SliceIndex("X", 2)
	if err != nil {
		t.Fatalf("SliceIndex: %v", err)
	}
	if idxed.Contains("X") {
		t.Errorf("SliceIndex should drop the dimension")
	}
	if _, err := d.Slice("X", 1, 10); err == nil {
		t.Errorf("out of range slice should fail")
	}
}

func TestSliceThenSliceIsSliceComposed(t *testing.T) {
	// scipp core spec §8 property 9.
	d := dims(t, []dim.Dim{"X"}, []int64{10})
	i, j, k, l := int64(2), int64(8), int64(1), int64(4)
	a, err := d.Slice("X", i, j)
	if err != nil {
		t.Fatal(err)
	}
	b, err := a.Slice("X", k, l)
	if err != nil {
		t.Fatal(err)
	}
	c, err := d.Slice("X", i+k, i+l)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Equal(c) {
		t.Errorf("a.Slice(k,l) = %v, want %v (slice composed)", b, c)
	}
}

func TestBroadcastToAndViewIndex(t *testing.T) {
	source := dims(t, []dim.Dim{"Z"}, []int64{3})
	target := dims(t, []dim.Dim{"Z", "Y", "X"}, []int64{3, 2, 1})
	strides, err := dim.BroadcastDenseTo(source, target)
	if err != nil {
		t.Fatalf("BroadcastTo: %v", err)
	}
	data := []float64{0.1, 0.2, 0.3}
	view := dim.NewElementArrayView(data, target, strides, 0)
	var got []float64
	for !view.AtEnd() {
		got = append(got, view.Get())
		view.Increment()
	}
	want := []float64{0.1, 0.1, 0.2, 0.2, 0.3, 0.3}
	if len(got) != len(want) {
		t.Fatalf("got %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestViewIndexContiguous(t *testing.T) {
	target := dims(t, []dim.Dim{"Y", "X"}, []int64{2, 3})
	strides := dim.RowMajor(target)
	data := []int{0, 1, 2, 3, 4, 5}
	view := dim.NewElementArrayView(data, target, strides, 0)
	var got []int
	for !view.AtEnd() {
		got = append(got, view.Get())
		view.Increment()
	}
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("contiguous walk[%d] = %d, want %d", i, got[i], data[i])
		}
	}
}
