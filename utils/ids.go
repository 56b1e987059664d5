// Package utils provides the ordered-id plumbing shared by the mass core:
// sorted intersection for subsetting requested ids against the model, and
// binary-search membership lookups over ascending id arrays.
package utils

import "sort"

// SortedIntersect returns the elements present in both a and b. Both inputs
// must be in ascending order; the result is ascending. Duplicates in either
// input are collapsed.
func SortedIntersect(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			if len(out) == 0 || out[len(out)-1] != a[i] {
				out = append(out, a[i])
			}
			i++
			j++
		}
	}
	return out
}

// Contains reports whether v is present in the ascending slice sorted.
func Contains(sorted []int, v int) bool {
	i := sort.SearchInts(sorted, v)
	return i < len(sorted) && sorted[i] == v
}

// IndexOf returns the position of v in the ascending slice sorted, or -1 when
// absent.
func IndexOf(sorted []int, v int) int {
	i := sort.SearchInts(sorted, v)
	if i < len(sorted) && sorted[i] == v {
		return i
	}
	return -1
}

// SortedUnique returns a sorted copy of ids with duplicates removed. The
// input is left untouched.
func SortedUnique(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	sort.Ints(out)
	n := 0
	for i, v := range out {
		if i == 0 || v != out[n-1] {
			out[n] = v
			n++
		}
	}
	return out[:n]
}
