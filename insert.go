package rtree

import "sort"

// Insert adds a single item to the index, preserving all invariants.
// It fails, leaving the index unchanged, if the item's bounds are
// invalid (NaN or infinite coordinate, or min > max on either axis).
func (idx *Index[T]) Insert(item T) error {
	bbox, err := idx.bboxFn(item)
	if err != nil {
		return err
	}
	if !bbox.Valid() {
		return &InvalidBoundsError{Bounds: bbox}
	}

	level := idx.root.height - 1
	leaf, path := idx.chooseSubtree(bbox, idx.root, level)
	leaf.items = append(leaf.items, item)
	Extend(&leaf.bounds, bbox)

	level = idx.splitNodes(path, level)
	idx.adjustParentBBoxes(path, bbox, level)
	return nil
}

// insertNode attaches an already-built subtree at the given target
// level, used by the bulk loader to graft a packed subtree into an
// existing tree.
func (idx *Index[T]) insertNode(node *treeNode[T], level int) {
	bbox := node.bounds

	leaf, path := idx.chooseSubtree(bbox, idx.root, level)
	leaf.children = append(leaf.children, node)
	Extend(&leaf.bounds, bbox)

	level = idx.splitNodes(path, level)
	idx.adjustParentBBoxes(path, bbox, level)
}

// chooseSubtree descends from root toward the target level, at each
// step picking the child that needs the least enlargement to contain
// bbox (ties broken by smaller area), and returns the chosen node along
// with the path of nodes visited to reach it, from the root down to and
// including the chosen node itself (so path[level] is the chosen node).
func (idx *Index[T]) chooseSubtree(bbox BoundingRect, root *treeNode[T], level int) (*treeNode[T], []*treeNode[T]) {
	path := make([]*treeNode[T], 0, root.height)

	node := root
	for {
		path = append(path, node)

		if node.leaf || len(path)-1 == level {
			break
		}

		var next *treeNode[T]
		minEnlargement := posInf
		minArea := posInf

		for _, child := range node.children {
			area := child.bounds.Area()
			enlargement := bbox.EnlargedArea(child.bounds) - area

			if enlargement < minEnlargement {
				minEnlargement = enlargement
				minArea = area
				next = child
				continue
			}
			if enlargement == minEnlargement && area < minArea {
				minArea = area
				next = child
			}
		}
		node = next
	}
	return node, path
}

// splitNodes walks the insertion path from level upward, splitting any
// node that has overflowed beyond maxEntries. It returns the level of the
// first node that did not overflow, or -1 if the root itself was split.
func (idx *Index[T]) splitNodes(path []*treeNode[T], level int) int {
	for level >= 0 {
		if path[level].entries() <= idx.maxEntries {
			break
		}
		idx.split(path, level)
		level--
	}
	return level
}

// split divides the overflowing node at path[level] into two nodes,
// choosing the split axis and index per the quadratic-split heuristic,
// and attaches the new sibling to the parent (or grows the root).
func (idx *Index[T]) split(path []*treeNode[T], level int) {
	node := path[level]
	m := idx.minEntries
	count := node.entries()

	idx.chooseSplitAxis(node, m, count)
	splitIndex := idx.chooseSplitIndex(node, m, count)

	sibling := &treeNode[T]{height: node.height, leaf: node.leaf, bounds: NoBounds}
	if node.leaf {
		sibling.items = append(sibling.items, node.items[splitIndex:]...)
		node.items = node.items[:splitIndex]
	} else {
		sibling.children = append(sibling.children, node.children[splitIndex:]...)
		node.children = node.children[:splitIndex]
	}

	node.recalcBounds(idx.bboxFn)
	sibling.recalcBounds(idx.bboxFn)

	if level > 0 {
		path[level-1].children = append(path[level-1].children, sibling)
	} else {
		idx.splitRoot(node, sibling)
	}
}

// splitRoot replaces the current root with a fresh internal node whose
// two children are a and b.
func (idx *Index[T]) splitRoot(a, b *treeNode[T]) {
	newRoot := newInternal[T](idx.root.height + 1)
	newRoot.children = []*treeNode[T]{a, b}
	newRoot.recalcBounds(idx.bboxFn)
	idx.root = newRoot
}

// chooseSplitIndex picks the split position k in [min, count-min] that
// minimizes the intersection area of the two resulting rectangles,
// breaking ties by minimizing their combined area. node's children are
// assumed already sorted along the chosen split axis.
func (idx *Index[T]) chooseSplitIndex(node *treeNode[T], m, count int) int {
	minOverlap := posInf
	minArea := posInf
	index := count - m // safe default if m > count-m

	for k := m; k <= count-m; k++ {
		left := node.subBounds(0, k, idx.bboxFn)
		right := node.subBounds(k, count, idx.bboxFn)

		overlap := left.IntersectionArea(right)
		area := left.Area() + right.Area()

		if overlap < minOverlap {
			minOverlap = overlap
			minArea = area
			index = k
		} else if overlap == minOverlap && area < minArea {
			minArea = area
			index = k
		}
	}
	return index
}

// chooseSplitAxis sorts node's entries along whichever axis (x or y)
// yields the smaller total margin over all valid split positions, and
// leaves the entries sorted along that axis for chooseSplitIndex.
func (idx *Index[T]) chooseSplitAxis(node *treeNode[T], m, count int) {
	var sortX, sortY sort.Interface
	if node.leaf {
		sortX = itemsByAxis[T]{items: node.items, bboxFn: idx.bboxFn, axisX: true}
		sortY = itemsByAxis[T]{items: node.items, bboxFn: idx.bboxFn, axisX: false}
	} else {
		sortX = nodesByMinX[T](node.children)
		sortY = nodesByMinY[T](node.children)
	}

	sort.Sort(sortX)
	xMargin := idx.allDistMargin(node, m, count)
	sort.Sort(sortY)
	yMargin := idx.allDistMargin(node, m, count)

	if xMargin < yMargin {
		sort.Sort(sortX)
	}
	// else: already sorted by Y from the measurement pass above.
}

// allDistMargin sums the margins of every valid (left, right) split
// distribution of node's entries, assuming they are already sorted along
// the axis being evaluated. Used purely as a comparative heuristic
// between the x and y axis.
func (idx *Index[T]) allDistMargin(node *treeNode[T], m, count int) float64 {
	leftBBox := node.subBounds(0, m, idx.bboxFn)
	rightBBox := node.subBounds(count-m, count, idx.bboxFn)
	margin := leftBBox.Margin() + rightBBox.Margin()

	boundsAt := func(i int) BoundingRect {
		if node.leaf {
			b, _ := idx.bboxFn(node.items[i])
			return b
		}
		return node.children[i].bounds
	}

	for i := m; i < count-m; i++ {
		Extend(&leftBBox, boundsAt(i))
		margin += leftBBox.Margin()
	}
	for i := count - m - 1; i >= m; i-- {
		Extend(&rightBBox, boundsAt(i))
		margin += rightBBox.Margin()
	}
	return margin
}

// adjustParentBBoxes extends every ancestor on the insertion path (from
// level up to the root) by bbox.
func (idx *Index[T]) adjustParentBBoxes(path []*treeNode[T], bbox BoundingRect, level int) {
	for i := level; i >= 0; i-- {
		Extend(&path[i].bounds, bbox)
	}
}
