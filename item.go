package rtree

// BoundsFunc maps a caller's payload to its bounding rectangle. It is the
// Extractor capability: supplied once, at index construction, rather
// than required via a payload interface. A BoundsFunc may fail — on a
// NaN coordinate, or on a malformed rectangle (min > max) — in which
// case the triggering Insert/Load call is rejected without mutating the
// index.
type BoundsFunc[T any] func(item T) (BoundingRect, error)

// EqualsFunc is the optional equality predicate used by Index.Remove. If
// nil is passed to Remove, items are compared by identity: for pointer
// and interface payloads this is `==`; for values it is Go's ordinary
// comparable equality.
type EqualsFunc[T any] func(a, b T) bool

// Boxer is implemented by payloads that can report their own bounding
// rectangle through four scalar accessors — the Go-idiomatic analogue of
// the "items with fields min_x, min_y, max_x, max_y" default mapping
// described for the Extractor capability.
type Boxer interface {
	MinX() float64
	MinY() float64
	MaxX() float64
	MaxY() float64
}

// BoxerBounds is the built-in BoundsFunc for payloads implementing
// Boxer. It validates the result and reports InvalidBoundsError for NaN
// or infinite coordinates or an inverted rectangle.
func BoxerBounds[T Boxer](item T) (BoundingRect, error) {
	b := BoundingRect{
		MinX: item.MinX(),
		MinY: item.MinY(),
		MaxX: item.MaxX(),
		MaxY: item.MaxY(),
	}
	if !b.Valid() {
		return BoundingRect{}, &InvalidBoundsError{Bounds: b}
	}
	return b, nil
}
