package rtree

import (
	"math"

	"github.com/maja42/vmath"
)

// quickSelect performs a Floyd-Rivest partial sort over [left, right] so
// that the element ultimately at position k is the one that would be
// there in sorted order, with everything before it no greater and
// everything after it no smaller (comparisons via a.Less). It is the
// selection primitive the OMT bulk loader partitions items with.
//
// For large ranges it recursively narrows [left, right] to a sampled
// sub-range expected to contain index k before doing the real
// Hoare-style partition; this keeps the expected number of comparisons
// linear in (right-left) instead of the naive quickselect's worse
// constant factor. See Floyd & Rivest, "Algorithm 489: The algorithm
// SELECT—for finding the ith smallest of n elements" (1975).
func quickSelect(a sortable, k, left, right int) {
	for right > left {
		if right-left > 600 {
			n := float64(right - left + 1)
			i := float64(k - left + 1)
			z := math.Log(n)
			s := 0.5 * math.Exp(2*z/3)

			sd := 0.5 * math.Sqrt(z*s*(n-s)/n)
			if i < n/2 {
				sd = -sd
			}

			newLeft := vmath.Maxi(left, int(float64(k)-i*s/n+sd))
			newRight := vmath.Mini(right, int(float64(k)+(n-i)*s/n+sd))
			quickSelect(a, k, newLeft, newRight)
		}

		pivot := hoarePartition(a, left, right, k)
		if pivot <= k {
			left = pivot + 1
		}
		if k <= pivot {
			right = pivot - 1
		}
	}
}

// sortable is the minimal index-based access quickSelect/hoarePartition
// need: sort.Interface without requiring Len, since both always operate
// on an explicit [left, right] window rather than the whole collection.
type sortable interface {
	Less(i, j int) bool
	Swap(i, j int)
}

// hoarePartition partitions a[left:right+1] around the value currently at
// a[pivotIdx], moving smaller elements left and larger elements right,
// and returns the pivot's final resting index.
func hoarePartition(a sortable, left, right, pivotIdx int) int {
	a.Swap(left, pivotIdx)
	pivotIdx = left

	i, j := left+1, right
	for i <= j {
		for i <= right && a.Less(i, pivotIdx) {
			i++
		}
		for j >= pivotIdx && a.Less(pivotIdx, j) {
			j--
		}
		if i <= j {
			a.Swap(i, j)
			i++
			j--
		}
	}
	a.Swap(pivotIdx, j)
	return j
}

// multiSelect partitions items[left:right+1] into contiguous blocks of
// at most groupSize elements, each block sorted relative to its
// neighbors (but not internally) by the given axis's min coordinate. It
// is the tiling primitive the OMT bulk loader uses to group items into
// roughly-square strips and tiles.
func multiSelect[T any](items []T, left, right, groupSize int, axisX bool, bboxFn BoundsFunc[T]) {
	stack := []int{left, right}
	a := itemsByAxis[T]{items: items, bboxFn: bboxFn, axisX: axisX}

	for len(stack) > 0 {
		r, l := stack[len(stack)-1], stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		if r-l <= groupSize {
			continue
		}

		mid := l + int(math.Ceil(float64(r-l)/float64(groupSize)/2))*groupSize
		quickSelect(a, mid, l, r)

		stack = append(stack, l, mid, mid, r)
	}
}
