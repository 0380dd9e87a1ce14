package hir

import "testing"

func TestArenaAllocIsOneBasedAndStable(t *testing.T) {
	a := NewArena[string](0)
	i1 := a.Alloc("first")
	i2 := a.Alloc("second")
	if i1 != 1 || i2 != 2 {
		t.Fatalf("got indices %d, %d; want 1, 2", i1, i2)
	}
	if got := *a.Get(i1); got != "first" {
		t.Fatalf("Get(i1) = %q; want %q", got, "first")
	}
	if got := *a.Get(i2); got != "second" {
		t.Fatalf("Get(i2) = %q; want %q", got, "second")
	}
	if a.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", a.Len())
	}
}

func TestArenaZeroIdxIsAbsent(t *testing.T) {
	a := NewArena[int](0)
	var zero Idx[int]
	if zero.IsValid() {
		t.Fatal("zero Idx reported valid")
	}
	if a.Get(zero) != nil {
		t.Fatal("Get(0) should be nil")
	}
}

func TestArenaAllIteratesInOrder(t *testing.T) {
	a := NewArena[int](0)
	a.Alloc(10)
	a.Alloc(20)
	a.Alloc(30)
	var got []int
	a.All(func(idx Idx[int], v *int) bool {
		got = append(got, *v)
		return true
	})
	if len(got) != 3 || got[0] != 10 || got[1] != 20 || got[2] != 30 {
		t.Fatalf("All() yielded %v", got)
	}
}
