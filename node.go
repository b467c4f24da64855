package rtree

import "sort"

// treeNode is an R-tree element that contains either sub-elements
// (internal node) or payload items (leaf node), but never both.
type treeNode[T any] struct {
	children []*treeNode[T]
	items    []T

	height int
	leaf   bool
	bounds BoundingRect
}

func newLeaf[T any]() *treeNode[T] {
	return &treeNode[T]{
		height: 1,
		leaf:   true,
		bounds: NoBounds,
	}
}

func newInternal[T any](height int) *treeNode[T] {
	return &treeNode[T]{
		height: height,
		leaf:   false,
		bounds: NoBounds,
	}
}

// entries returns the number of direct children/items held by n.
func (n *treeNode[T]) entries() int {
	return len(n.children) + len(n.items)
}

// recalcBounds recomputes n.bounds from its children or items.
func (n *treeNode[T]) recalcBounds(bboxFn BoundsFunc[T]) {
	n.bounds = n.subBounds(0, n.entries(), bboxFn)
}

// subBounds returns the union of the rectangles of entries [start, end).
func (n *treeNode[T]) subBounds(start, end int, bboxFn BoundsFunc[T]) BoundingRect {
	bbox := NoBounds
	if n.leaf {
		for _, item := range n.items[start:end] {
			// Insert and Load validate an item's bounds before placing
			// it in a leaf; Deserialize does not, and any error here is
			// ignored.
			b, _ := bboxFn(item)
			Extend(&bbox, b)
		}
	} else {
		for _, child := range n.children[start:end] {
			Extend(&bbox, child.bounds)
		}
	}
	return bbox
}

// sort.Interface wrappers used by the split-axis and OMT tiling passes.

type nodesByMinX[T any] []*treeNode[T]
type nodesByMinY[T any] []*treeNode[T]

func (a nodesByMinX[T]) Len() int           { return len(a) }
func (a nodesByMinX[T]) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a nodesByMinX[T]) Less(i, j int) bool { return a[i].bounds.MinX < a[j].bounds.MinX }

func (a nodesByMinY[T]) Len() int           { return len(a) }
func (a nodesByMinY[T]) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a nodesByMinY[T]) Less(i, j int) bool { return a[i].bounds.MinY < a[j].bounds.MinY }

type itemsByAxis[T any] struct {
	items  []T
	bboxFn BoundsFunc[T]
	axisX  bool
}

func (a itemsByAxis[T]) Len() int      { return len(a.items) }
func (a itemsByAxis[T]) Swap(i, j int) { a.items[i], a.items[j] = a.items[j], a.items[i] }
func (a itemsByAxis[T]) Less(i, j int) bool {
	bi, _ := a.bboxFn(a.items[i])
	bj, _ := a.bboxFn(a.items[j])
	if a.axisX {
		return bi.MinX < bj.MinX
	}
	return bi.MinY < bj.MinY
}

var _ sort.Interface = itemsByAxis[int]{}
