package teasort

import (
	"cmp"
	"errors"
	"slices"
)

// ErrUnsorted is returned when the finishing pass leaves the sequence out of
// order. It indicates a defect, never bad input.
var ErrUnsorted = errors.New("finishing pass left sequence unsorted")

// finish sorts seq[1:] in place by insertion and returns the number of
// comparisons made.
//
// seq[0] is a sentinel slot. finish overwrites it with the smallest value of
// seq[1:], which is no greater than any real value, so the inner loop stops
// at index 1 at the latest without a bounds check. Every evaluation of the
// loop condition counts as one comparison, including the final one that
// fails.
func finish[T cmp.Ordered](seq []T) uint64 {
	n := len(seq) - 1
	if n < 2 {
		return 0
	}
	seq[0] = slices.Min(seq[1:])

	var comparisons uint64
	for i := 2; i <= n; i++ {
		v := seq[i]
		j := i
		for {
			comparisons++
			if !(seq[j-1] > v) {
				break
			}
			seq[j] = seq[j-1]
			j--
		}
		seq[j] = v
	}
	return comparisons
}
