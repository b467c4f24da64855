package rtree

import "encoding/json"

// DocRect is the wire representation of a BoundingRect.
type DocRect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

func toDocRect(b BoundingRect) DocRect {
	return DocRect{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
}

func (d DocRect) toBoundingRect() BoundingRect {
	return BoundingRect{MinX: d.MinX, MinY: d.MinY, MaxX: d.MaxX, MaxY: d.MaxY}
}

// DocNode is the wire representation of one tree node: a depth-first
// mirror of treeNode[T]. Children holds sub-nodes for an internal node,
// Items holds payloads for a leaf — never both, matching the tree
// invariant that a leaf's children carry data and an internal node's
// children don't. Both serialize to the same "children" JSON key.
type DocNode[T any] struct {
	Bounds   DocRect
	Height   int
	IsLeaf   bool
	Children []DocNode[T]
	Items    []T
}

type docNodeHeader struct {
	Bounds DocRect `json:"bbox"`
	Height int     `json:"height"`
	IsLeaf bool    `json:"is_leaf"`
}

// MarshalJSON emits {bbox, height, is_leaf, children}, where children is
// a node array for internal nodes and an item array for leaves.
func (n DocNode[T]) MarshalJSON() ([]byte, error) {
	header := docNodeHeader{Bounds: n.Bounds, Height: n.Height, IsLeaf: n.IsLeaf}
	if n.IsLeaf {
		return json.Marshal(struct {
			docNodeHeader
			Children []T `json:"children"`
		}{header, n.Items})
	}
	return json.Marshal(struct {
		docNodeHeader
		Children []DocNode[T] `json:"children"`
	}{header, n.Children})
}

// UnmarshalJSON reads the header first to learn is_leaf, then decodes
// "children" into either Items or Children accordingly.
func (n *DocNode[T]) UnmarshalJSON(data []byte) error {
	var raw struct {
		docNodeHeader
		Children json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Bounds = raw.Bounds
	n.Height = raw.Height
	n.IsLeaf = raw.IsLeaf
	if len(raw.Children) == 0 {
		return nil
	}
	if raw.IsLeaf {
		return json.Unmarshal(raw.Children, &n.Items)
	}
	return json.Unmarshal(raw.Children, &n.Children)
}

// Document is the portable structured document produced by Serialize
// and consumed by Deserialize. Field names are part of the
// compatibility surface described by the package's serialization
// contract.
type Document[T any] struct {
	MaxEntries int      `json:"max_entries"`
	MinEntries int      `json:"min_entries"`
	Root       DocNode[T] `json:"root"`
}

// Serialize produces a depth-first mirror of the tree's shape,
// rectangles, and payloads. deserialize(serialize(idx)) reconstructs a
// structurally identical tree.
func (idx *Index[T]) Serialize() Document[T] {
	return Document[T]{
		MaxEntries: idx.maxEntries,
		MinEntries: idx.minEntries,
		Root:       toDocNode(idx.root),
	}
}

func toDocNode[T any](n *treeNode[T]) DocNode[T] {
	doc := DocNode[T]{
		Bounds: toDocRect(n.bounds),
		Height: n.height,
		IsLeaf: n.leaf,
	}
	if n.leaf {
		doc.Items = append([]T(nil), n.items...)
		return doc
	}
	doc.Children = make([]DocNode[T], len(n.children))
	for i, child := range n.children {
		doc.Children[i] = toDocNode(child)
	}
	return doc
}

// Deserialize reconstructs the tree verbatim from doc, including the
// stored max_entries/min_entries, without recomputing any node's
// bounding rectangle (those are taken as authoritative from the
// document; only the on-demand, per-item rectangles used by queries
// still flow through the Extractor, exactly as for any other tree
// state). The document is fully validated into a fresh tree before it
// replaces the live one, so a malformed document never corrupts the
// index.
func (idx *Index[T]) Deserialize(doc Document[T]) error {
	if doc.MaxEntries < 4 {
		return &MalformedDocumentError{Reason: "max_entries below the floor of 4"}
	}
	if doc.MinEntries < 2 || doc.MinEntries > doc.MaxEntries {
		return &MalformedDocumentError{Reason: "min_entries out of [2, max_entries] range"}
	}

	root, err := fromDocNode(doc.Root)
	if err != nil {
		return err
	}

	idx.maxEntries = doc.MaxEntries
	idx.minEntries = doc.MinEntries
	idx.root = root
	return nil
}

func fromDocNode[T any](doc DocNode[T]) (*treeNode[T], error) {
	if doc.IsLeaf != (doc.Height == 1) {
		return nil, &MalformedDocumentError{Reason: "is_leaf and height disagree"}
	}
	if doc.IsLeaf {
		if len(doc.Children) != 0 {
			return nil, &MalformedDocumentError{Reason: "leaf node carries child nodes"}
		}
		return &treeNode[T]{
			bounds: doc.Bounds.toBoundingRect(),
			height: doc.Height,
			leaf:   true,
			items:  append([]T(nil), doc.Items...),
		}, nil
	}

	if len(doc.Items) != 0 {
		return nil, &MalformedDocumentError{Reason: "internal node carries a payload"}
	}
	if len(doc.Children) == 0 {
		return nil, &MalformedDocumentError{Reason: "internal node has no children"}
	}

	children := make([]*treeNode[T], len(doc.Children))
	for i, childDoc := range doc.Children {
		child, err := fromDocNode(childDoc)
		if err != nil {
			return nil, err
		}
		if child.height != doc.Height-1 {
			return nil, &MalformedDocumentError{Reason: "child height inconsistent with parent height"}
		}
		children[i] = child
	}

	return &treeNode[T]{
		bounds:   doc.Bounds.toBoundingRect(),
		height:   doc.Height,
		leaf:     false,
		children: children,
	}, nil
}
