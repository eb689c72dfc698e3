package hpgeom

import (
	"iter"
	"sort"
)

// A set of pixel indices stored as sorted, disjoint, non-adjacent half-open
// ranges [start, end). RING scheme query results are naturally a handful of
// ranges per ring, so this is far smaller than the expanded pixel list.
type RangeSet struct {
	r []int64 // flattened start,end pairs
}

// Adds [a, b) to the set, coalescing with any overlapping or adjacent range.
// Appending in increasing order is the fast path.
func (s *RangeSet) Append(a, b int64) {
	if a >= b {
		return
	}
	n := len(s.r)
	if n == 0 || a > s.r[n-1] {
		s.r = append(s.r, a, b)
		return
	}
	if a >= s.r[n-2] {
		s.r[n-1] = max(s.r[n-1], b)
		return
	}
	s.insert(a, b)
}

func (s *RangeSet) insert(a, b int64) {
	n := len(s.r) / 2
	// ranges [i, j) overlap or touch [a, b)
	i := sort.Search(n, func(k int) bool { return s.r[2*k+1] >= a })
	j := sort.Search(n, func(k int) bool { return s.r[2*k] > b })
	if i < j {
		a = min(a, s.r[2*i])
		b = max(b, s.r[2*(j-1)+1])
	}
	out := make([]int64, 0, len(s.r)-2*(j-i)+2)
	out = append(out, s.r[:2*i]...)
	out = append(out, a, b)
	out = append(out, s.r[2*j:]...)
	s.r = out
}

func (s *RangeSet) AppendSet(o RangeSet) {
	for i := 0; i < len(o.r); i += 2 {
		s.Append(o.r[i], o.r[i+1])
	}
}

// Restricts the set to [a, b). An empty interval empties the set.
func (s *RangeSet) Intersect(a, b int64) {
	out := s.r[:0]
	if a < b {
		for i := 0; i < len(s.r); i += 2 {
			lo, hi := max(s.r[i], a), min(s.r[i+1], b)
			if lo < hi {
				out = append(out, lo, hi)
			}
		}
	}
	s.r = out
}

// Removes [a, b) from the set. An empty interval removes nothing.
func (s *RangeSet) Remove(a, b int64) {
	if a >= b {
		return
	}
	out := make([]int64, 0, len(s.r)+2)
	for i := 0; i < len(s.r); i += 2 {
		start, end := s.r[i], s.r[i+1]
		if end <= a || start >= b {
			out = append(out, start, end)
			continue
		}
		if start < a {
			out = append(out, start, a)
		}
		if end > b {
			out = append(out, b, end)
		}
	}
	s.r = out
}

func (s *RangeSet) Clear() {
	s.r = s.r[:0]
}

func (s RangeSet) Empty() bool {
	return len(s.r) == 0
}

// Number of ranges.
func (s RangeSet) Len() int {
	return len(s.r) / 2
}

// Returns the i'th range.
func (s RangeSet) Range(i int) (start, end int64) {
	return s.r[2*i], s.r[2*i+1]
}

// Number of pixels in the set.
func (s RangeSet) Npix() int64 {
	var n int64
	for i := 0; i < len(s.r); i += 2 {
		n += s.r[i+1] - s.r[i]
	}
	return n
}

func (s RangeSet) Contains(pix int64) bool {
	n := len(s.r) / 2
	k := sort.Search(n, func(k int) bool { return s.r[2*k+1] > pix })
	return k < n && s.r[2*k] <= pix
}

// Iterates the ranges in increasing order.
func (s RangeSet) All() iter.Seq2[int64, int64] {
	return func(yield func(int64, int64) bool) {
		for i := 0; i < len(s.r); i += 2 {
			if !yield(s.r[i], s.r[i+1]) {
				return
			}
		}
	}
}

// Expands the set into a sorted slice of pixel indices.
func (s RangeSet) Pixels() []int64 {
	out := make([]int64, 0, s.Npix())
	for i := 0; i < len(s.r); i += 2 {
		for p := s.r[i]; p < s.r[i+1]; p++ {
			out = append(out, p)
		}
	}
	return out
}
