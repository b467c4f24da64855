package rtree

// Remove deletes one leaf item matching item, or is a no-op if none is
// found. If equals is nil, items are compared with Go's `==`, which
// requires T to be comparable at the call site's usage (pointer or
// interface payloads are the common case); panics if T is not
// comparable and equals is nil. Reports whether an item was removed.
func (idx *Index[T]) Remove(item T, equals EqualsFunc[T]) bool {
	bbox, err := idx.bboxFn(item)
	if err != nil {
		return false
	}

	var path []*treeNode[T]
	var childIdxStack []int
	var parent *treeNode[T]
	childIdx := 0
	goingUp := false

	node := idx.root
	for node != nil || len(path) > 0 {
		if node == nil { // backtrack: go up
			node = path[len(path)-1]
			path = path[:len(path)-1]

			parent = idx.root
			if len(path) > 0 {
				parent = path[len(path)-1]
			}
			childIdx = childIdxStack[len(childIdxStack)-1]
			childIdxStack = childIdxStack[:len(childIdxStack)-1]
			goingUp = true
		}

		if node.leaf {
			if removeLeafItem(node, item, equals) {
				idx.condense(append(path, node))
				return true
			}
		}

		contained := node.bounds.Contains(bbox)
		if !goingUp && !node.leaf && contained {
			path = append(path, node)
			childIdxStack = append(childIdxStack, childIdx)
			childIdx = 0
			parent = node
			node = node.children[0]
		} else if parent != nil {
			node = nil
			childIdx++
			if childIdx < len(parent.children) {
				node = parent.children[childIdx]
			}
			goingUp = false
		} else {
			node = nil
		}
	}
	return false
}

// condense walks path from its deepest entry back toward the root,
// pruning nodes that became empty and re-tightening the bounds of the
// ones that didn't. If the root itself becomes empty, the tree is reset
// to a fresh empty leaf.
func (idx *Index[T]) condense(path []*treeNode[T]) {
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		if n.entries() == 0 {
			if i > 0 {
				removeChildNode(path[i-1], n)
			} else {
				idx.Clear()
			}
		} else {
			n.recalcBounds(idx.bboxFn)
		}
	}
}

// removeLeafItem removes the first matching item from a leaf's items,
// reporting whether one was found.
func removeLeafItem[T any](leaf *treeNode[T], target T, equals EqualsFunc[T]) bool {
	for i, item := range leaf.items {
		var found bool
		if equals == nil {
			found = any(item) == any(target)
		} else {
			found = equals(item, target)
		}
		if found {
			leaf.items = append(leaf.items[:i], leaf.items[i+1:]...)
			return true
		}
	}
	return false
}

// removeChildNode removes child from parent's children, by identity.
func removeChildNode[T any](parent, child *treeNode[T]) {
	for i, n := range parent.children {
		if n == child {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			return
		}
	}
}
