package rtree

import (
	"math"

	"github.com/maja42/vmath"
)

// Load replaces (or merges into) the index with a near-optimal packed
// tree built over items via the OMT (overlap-minimizing top-down)
// algorithm. Bulk loading is considerably faster than inserting items
// one at a time, and the resulting tree also queries faster, at the cost
// of working best when items is spatially clustered rather than
// scattered relative to whatever was already indexed.
//
// If fewer than minEntries items are given, Load degrades to sequential
// Insert calls. The first invalid item aborts before any item is
// inserted (Load is atomic), mirroring Insert's error contract.
func (idx *Index[T]) Load(items []T) error {
	for _, item := range items {
		bbox, err := idx.bboxFn(item)
		if err != nil {
			return err
		}
		if !bbox.Valid() {
			return &InvalidBoundsError{Bounds: bbox}
		}
	}

	if len(items) < idx.minEntries {
		for _, item := range items {
			if err := idx.Insert(item); err != nil {
				return err
			}
		}
		return nil
	}

	built := idx.build(items, 0, len(items)-1, 0)

	switch {
	case idx.root.entries() == 0:
		idx.root = built
	case idx.root.height == built.height:
		idx.splitRoot(idx.root, built)
	default:
		small, large := idx.root, built
		if small.height > large.height {
			small, large = large, small
		}
		idx.root = large
		idx.insertNode(small, large.height-small.height-1)
	}
	return nil
}

// build recursively tiles items[left:right+1] into a near-optimal packed
// subtree of the requested height. height == 0 means "top-level call":
// the target height and the effective root branching factor are derived
// from N and M before tiling starts, to maximize storage utilization.
func (idx *Index[T]) build(items []T, left, right, height int) *treeNode[T] {
	n := float64(right - left + 1)
	m := float64(idx.maxEntries)

	if n <= m {
		node := newLeaf[T]()
		node.items = append(node.items, items[left:right+1]...)
		node.recalcBounds(idx.bboxFn)
		return node
	}

	if height == 0 {
		height = int(math.Ceil(logBase(n, m)))
		capacity := math.Pow(m, float64(height-1))
		m = math.Ceil(n / capacity)
	}

	node := newInternal[T](height)

	n2 := int(math.Ceil(n / m))
	n1 := n2 * int(math.Ceil(math.Sqrt(m)))

	multiSelect(items, left, right, n1, true, idx.bboxFn)

	for i := left; i <= right; i += n1 {
		stripRight := vmath.Mini(i+n1-1, right)
		multiSelect(items, i, stripRight, n2, false, idx.bboxFn)

		for j := i; j <= stripRight; j += n2 {
			tileRight := vmath.Mini(j+n2-1, stripRight)
			node.children = append(node.children, idx.build(items, j, tileRight, height-1))
		}
	}

	node.recalcBounds(idx.bboxFn)
	return node
}

func logBase(v, base float64) float64 {
	return math.Log(v) / math.Log(base)
}
