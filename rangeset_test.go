package hpgeom

import (
	"slices"
	"testing"
)

func rangesOf(s RangeSet) [][2]int64 {
	var out [][2]int64
	for a, b := range s.All() {
		out = append(out, [2]int64{a, b})
	}
	return out
}

func TestRangeSetAppend(t *testing.T) {
	testCases := []struct {
		name   string
		add    [][2]int64
		expect [][2]int64
	}{
		{"empty", nil, nil},
		{"empty interval", [][2]int64{{5, 5}, {7, 3}}, nil},
		{"ordered disjoint", [][2]int64{{0, 2}, {4, 6}}, [][2]int64{{0, 2}, {4, 6}}},
		{"adjacent coalesce", [][2]int64{{0, 2}, {2, 6}}, [][2]int64{{0, 6}}},
		{"overlap tail", [][2]int64{{0, 5}, {3, 8}}, [][2]int64{{0, 8}}},
		{"contained", [][2]int64{{0, 10}, {3, 4}}, [][2]int64{{0, 10}}},
		{"out of order", [][2]int64{{10, 12}, {0, 2}}, [][2]int64{{0, 2}, {10, 12}}},
		{"bridge", [][2]int64{{0, 2}, {4, 6}, {8, 10}, {1, 9}}, [][2]int64{{0, 10}}},
		{"insert middle", [][2]int64{{0, 2}, {8, 10}, {4, 6}}, [][2]int64{{0, 2}, {4, 6}, {8, 10}}},
		{"touch both", [][2]int64{{0, 2}, {4, 6}, {2, 4}}, [][2]int64{{0, 6}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var s RangeSet
			for _, r := range tc.add {
				s.Append(r[0], r[1])
			}
			if got := rangesOf(s); !slices.Equal(got, tc.expect) {
				t.Errorf("expected %v, got %v", tc.expect, got)
			}
		})
	}
}

func TestRangeSetIntersectRemove(t *testing.T) {
	build := func() RangeSet {
		var s RangeSet
		s.Append(0, 10)
		s.Append(20, 30)
		return s
	}

	s := build()
	s.Intersect(5, 25)
	if got := rangesOf(s); !slices.Equal(got, [][2]int64{{5, 10}, {20, 25}}) {
		t.Errorf("unexpected intersection %v", got)
	}

	s = build()
	s.Intersect(12, 12)
	if !s.Empty() {
		t.Errorf("expected empty interval to empty the set, got %v", rangesOf(s))
	}

	s = build()
	s.Remove(5, 25)
	if got := rangesOf(s); !slices.Equal(got, [][2]int64{{0, 5}, {25, 30}}) {
		t.Errorf("unexpected removal %v", got)
	}

	s = build()
	s.Remove(3, 4)
	if got := rangesOf(s); !slices.Equal(got, [][2]int64{{0, 3}, {4, 10}, {20, 30}}) {
		t.Errorf("unexpected split %v", got)
	}

	s = build()
	s.Remove(8, 8)
	if got := rangesOf(s); !slices.Equal(got, [][2]int64{{0, 10}, {20, 30}}) {
		t.Errorf("expected empty removal to keep the set, got %v", got)
	}
}

func TestRangeSetQueries(t *testing.T) {
	var s RangeSet
	s.Append(2, 4)
	s.Append(7, 8)
	if s.Len() != 2 || s.Npix() != 3 {
		t.Errorf("expected 2 ranges holding 3 pixels, got %d and %d", s.Len(), s.Npix())
	}
	if a, b := s.Range(1); a != 7 || b != 8 {
		t.Errorf("expected second range [7, 8), got [%d, %d)", a, b)
	}
	for p, want := range map[int64]bool{1: false, 2: true, 3: true, 4: false, 7: true, 8: false} {
		if s.Contains(p) != want {
			t.Errorf("expected Contains(%d) = %v", p, want)
		}
	}
	if got := s.Pixels(); !slices.Equal(got, []int64{2, 3, 7}) {
		t.Errorf("expected pixels [2 3 7], got %v", got)
	}
	s.Clear()
	if !s.Empty() || len(s.Pixels()) != 0 {
		t.Error("expected cleared set to be empty")
	}
}
