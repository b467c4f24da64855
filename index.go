package rtree

import "github.com/maja42/vmath"

// defaultMaxEntries is used when New is called with maxEntries <= 0.
const defaultMaxEntries = 9

// Index is a two-dimensional R-tree over payloads of type T. It is not
// safe for concurrent use; see the package doc comment for the exact
// exclusion rules.
type Index[T any] struct {
	maxEntries, minEntries int
	bboxFn                 BoundsFunc[T]
	root                   *treeNode[T]
}

// New creates an empty Index. maxEntries is the branching factor M; it
// is floored at 4 (per spec, not an error). minEntries (m) is derived as
// max(2, ceil(0.4*M)). A maxEntries <= 0 selects the default (9).
func New[T any](bboxFn BoundsFunc[T], maxEntries int) *Index[T] {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	maxEntries = vmath.Maxi(4, maxEntries)

	idx := &Index[T]{
		bboxFn:     bboxFn,
		maxEntries: maxEntries,
		minEntries: vmath.Maxi(2, int(vmath.Ceil(float32(maxEntries)*0.4))),
	}
	idx.Clear()
	return idx
}

// Clear removes all items, resetting the index to a single empty leaf
// root at height 1.
func (idx *Index[T]) Clear() {
	idx.root = newLeaf[T]()
}

// Len returns the total number of indexed items.
func (idx *Index[T]) Len() int {
	count := 0
	stack := []*treeNode[T]{idx.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count += len(n.items)
		stack = append(stack, n.children...)
	}
	return count
}

// Height returns the current tree height (1 for an empty or
// single-level tree).
func (idx *Index[T]) Height() int {
	return idx.root.height
}

// MaxEntries returns the configured branching factor M.
func (idx *Index[T]) MaxEntries() int {
	return idx.maxEntries
}

// MinEntries returns the derived lower bound m.
func (idx *Index[T]) MinEntries() int {
	return idx.minEntries
}
