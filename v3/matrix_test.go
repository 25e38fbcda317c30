package v3

import "testing"

func TestZerosShape(t *testing.T) {
	m := Zeros(4)
	if m.NVecs() != 4 {
		t.Errorf("expected 4 rows, got %d", m.NVecs())
	}
}

func TestSetVecAt3(t *testing.T) {
	m := Zeros(2)
	m.SetVec(1, [3]float64{1, 2, 3})
	got := m.At3(1)
	want := [3]float64{1, 2, 3}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if z := m.At3(0); z != ([3]float64{0, 0, 0}) {
		t.Errorf("row 0 should be untouched, got %v", z)
	}
}

func TestGatherRows(t *testing.T) {
	src := Zeros(5)
	for i := 0; i < 5; i++ {
		src.SetVec(i, [3]float64{float64(i), float64(i) * 10, float64(i) * 100})
	}
	dst := Zeros(3)
	dst.GatherRows(src, []int{0, 2, 4})
	want := [][3]float64{{0, 0, 0}, {2, 20, 200}, {4, 40, 400}}
	for i, w := range want {
		if got := dst.At3(i); got != w {
			t.Errorf("row %d: got %v, want %v", i, got, w)
		}
	}
}

func TestNewMatrixBadLength(t *testing.T) {
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		t.Errorf("expected error for length not divisible by 3")
	}
}
