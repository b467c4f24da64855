package rtree

import "fmt"

// InvalidBoundsError is returned by a BoundsFunc (or surfaces from a
// caller-supplied one) when a rectangle has a NaN or infinite
// coordinate, or min > max on either axis. Insert and Load leave the
// index unchanged when this error occurs.
type InvalidBoundsError struct {
	Bounds BoundingRect
}

func (e *InvalidBoundsError) Error() string {
	return fmt.Sprintf("rtree: invalid bounds %+v: NaN or infinite coordinate, or min > max", e.Bounds)
}

// MalformedDocumentError is returned by Index.Deserialize when a
// Document is structurally invalid: a missing field's zero value
// contradicts is_leaf/height, a leaf node carries children instead of
// items (or vice versa), or a height/leaf pairing violates the
// is_leaf <=> height==1 invariant.
type MalformedDocumentError struct {
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("rtree: malformed document: %s", e.Reason)
}
