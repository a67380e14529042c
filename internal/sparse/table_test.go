package sparse

import (
	"math"
	"testing"
)

func TestTableDefault(t *testing.T) {
	tb := New[string, string](0.25)
	if got := tb.Get("das", "the"); got != 0.25 {
		t.Errorf("Get unset = %v, want 0.25", got)
	}
	if tb.Has("das", "the") {
		t.Error("unset entry should not be present")
	}
	if tb.Len() != 0 {
		t.Errorf("Len = %d, want 0", tb.Len())
	}
}

func TestTablePresentVersusZero(t *testing.T) {
	tb := New[int, int](0)
	tb.Set(1, 2, 0)

	v, ok := tb.Lookup(1, 2)
	if !ok || v != 0 {
		t.Errorf("Lookup(1,2) = %v, %v; want 0, true", v, ok)
	}
	if _, ok := tb.Lookup(2, 1); ok {
		t.Error("Lookup(2,1) should be absent")
	}
}

func TestTableDerivedKeys(t *testing.T) {
	tb := New[int, int](0)
	tb.Set(0, 0, 1)
	for _, d := range [][2]int{{-1, -1}, {-1, 0}, {0, -1}, {1, 1}, {100, -100}} {
		if tb.Has(d[0], d[1]) {
			t.Errorf("Has(%d,%d) = true, want false", d[0], d[1])
		}
		if got := tb.Get(d[0], d[1]); got != 0 {
			t.Errorf("Get(%d,%d) = %v, want 0", d[0], d[1], got)
		}
	}
}

func TestTableAddAndRowSum(t *testing.T) {
	tb := New[string, string](0)
	tb.Add("buch", "book", 0.5)
	tb.Add("buch", "book", 0.25)
	tb.Add("buch", "the", 0.25)

	if got := tb.Get("buch", "book"); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Get = %v, want 0.75", got)
	}
	if got := tb.RowSum("buch"); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("RowSum = %v, want 1", got)
	}
	if tb.Len() != 2 {
		t.Errorf("Len = %d, want 2", tb.Len())
	}
	if !tb.HasRow("buch") || tb.HasRow("haus") {
		t.Error("HasRow mismatch")
	}
}

func TestTableAddOnDefault(t *testing.T) {
	tb := New[string, string](1e-4)
	if got := tb.Add("a", "b", 1); math.Abs(got-1.0001) > 1e-12 {
		t.Errorf("Add = %v, want 1.0001", got)
	}
}

func TestTableEachDeleteClone(t *testing.T) {
	tb := New[int, int](0)
	tb.Set(0, 1, 1)
	tb.Set(2, 3, 1)
	tb.Set(2, 4, 1)

	clone := tb.Clone()
	tb.Delete(2, 3)
	tb.Delete(9, 9)

	if tb.Len() != 2 {
		t.Errorf("Len after delete = %d, want 2", tb.Len())
	}
	if clone.Len() != 3 || !clone.Has(2, 3) {
		t.Error("clone should be unaffected by delete")
	}

	seen := 0
	clone.Each(func(r, c int, v float64) {
		if v != 1 {
			t.Errorf("Each(%d,%d) = %v, want 1", r, c, v)
		}
		seen++
	})
	if seen != 3 {
		t.Errorf("Each visited %d entries, want 3", seen)
	}

	tb.Reset()
	if tb.Len() != 0 || len(tb.Rows()) != 0 {
		t.Error("Reset should drop all entries")
	}
}
