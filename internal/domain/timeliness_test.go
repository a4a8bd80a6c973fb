package domain

import (
	"math"
	"testing"
)

func TestParseTimeliness(t *testing.T) {
	cases := []struct {
		raw  float64
		want Timeliness
	}{
		{0, Late},
		{1, OnTime},
		{2.0, NotApplicable},
		{math.NaN(), TimelinessUnknown},
		{0.5, TimelinessUnknown},
	}

	for _, c := range cases {
		if got := ParseTimeliness(c.raw); got != c.want {
			t.Errorf("ParseTimeliness(%v) = %v, want %v", c.raw, got, c.want)
		}
	}

	if NotApplicable.Analyzable() {
		t.Fatalf("sentinel must not be analyzable")
	}
	if !Late.Analyzable() || !OnTime.Analyzable() {
		t.Fatalf("late and on-time must be analyzable")
	}
}

func TestFloatDowngradesNonFinite(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if f := Float(v); f.Valid {
			t.Errorf("Float(%v) should be missing, got %v", v, f)
		}
	}

	f := Float(5)
	if v, ok := f.Get(); !ok || v != 5 {
		t.Fatalf("Float(5) = %v, %v", v, ok)
	}
	if Missing.GreaterThan(-1) {
		t.Fatalf("missing value must not compare greater")
	}
}

func TestCrossTabAccessors(t *testing.T) {
	ct := &CrossTab{
		RowLabels: []string{"a", "b"},
		ColLabels: []string{"x", "y"},
		Cells:     [][]float64{{1, 2}, {3, 4}},
		Total:     10,
	}

	if v, ok := ct.Cell("b", "x"); !ok || v != 3 {
		t.Fatalf("Cell(b, x) = %v, %v", v, ok)
	}
	if _, ok := ct.Cell("c", "x"); ok {
		t.Fatalf("expected unknown row to miss")
	}
	if ct.Sum() != 10 {
		t.Fatalf("sum = %v, want 10", ct.Sum())
	}
	col := ct.Column("y")
	if col["a"] != 2 || col["b"] != 4 {
		t.Fatalf("column y = %v", col)
	}
	if len(ct.Column("z")) != 0 {
		t.Fatalf("expected empty column for unknown label")
	}
}
