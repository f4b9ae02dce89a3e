package buffer

import "testing"

func TestComparePos(t *testing.T) {
	cases := []struct {
		a, b Pos
		want int
	}{
		{a: Pos{Row: 0, GraphemeCol: 5}, b: Pos{Row: 1, GraphemeCol: 0}, want: -1},
		{a: Pos{Row: 2, GraphemeCol: 0}, b: Pos{Row: 1, GraphemeCol: 9}, want: 1},
		{a: Pos{Row: 1, GraphemeCol: 0}, b: Pos{Row: 1, GraphemeCol: 1}, want: -1},
		{a: Pos{Row: 3, GraphemeCol: 4}, b: Pos{Row: 3, GraphemeCol: 4}, want: 0},
	}
	for _, tc := range cases {
		if got := ComparePos(tc.a, tc.b); got != tc.want {
			t.Fatalf("ComparePos(%v, %v)=%d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestNormalizeRange(t *testing.T) {
	r := NormalizeRange(Range{Start: Pos{Row: 2, GraphemeCol: 3}, End: Pos{Row: 1, GraphemeCol: 9}})
	if r.Start != (Pos{Row: 1, GraphemeCol: 9}) || r.End != (Pos{Row: 2, GraphemeCol: 3}) {
		t.Fatalf("unexpected range: %v", r)
	}
	if r2 := NormalizeRange(r); r2 != r {
		t.Fatalf("expected idempotent normalize: %v != %v", r2, r)
	}
}

func TestClampPos(t *testing.T) {
	lineLens := []int{1, 0, 3}
	ll := func(row int) int { return lineLens[row] }

	cases := []struct {
		in   Pos
		want Pos
	}{
		{in: Pos{Row: -1, GraphemeCol: -1}, want: Pos{Row: 0, GraphemeCol: 0}},
		{in: Pos{Row: 0, GraphemeCol: 9}, want: Pos{Row: 0, GraphemeCol: 1}},
		{in: Pos{Row: 1, GraphemeCol: 2}, want: Pos{Row: 1, GraphemeCol: 0}},
		{in: Pos{Row: 9, GraphemeCol: 2}, want: Pos{Row: 2, GraphemeCol: 2}},
	}
	for _, tc := range cases {
		if got := ClampPos(tc.in, len(lineLens), ll); got != tc.want {
			t.Fatalf("ClampPos(%v)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: Pos{Row: 0, GraphemeCol: 2}, End: Pos{Row: 1, GraphemeCol: 1}}
	if !r.Contains(Pos{Row: 0, GraphemeCol: 2}) {
		t.Fatalf("start must be contained")
	}
	if r.Contains(Pos{Row: 1, GraphemeCol: 1}) {
		t.Fatalf("end must not be contained")
	}
	if got, want := r.String(), "[0:2, 1:1)"; got != want {
		t.Fatalf("String()=%q, want %q", got, want)
	}
}
