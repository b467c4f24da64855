package rtree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rect(minX, minY, maxX, maxY float64) BoundingRect {
	return BoundingRect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func TestBoundingRect_Area(t *testing.T) {
	assert.Equal(t, 6.0, rect(0, 0, 3, 2).Area())
	assert.Equal(t, 0.0, rect(1, 1, 1, 1).Area())
}

func TestBoundingRect_Margin(t *testing.T) {
	assert.Equal(t, 5.0, rect(0, 0, 3, 2).Margin())
}

func TestBoundingRect_Contains(t *testing.T) {
	outer := rect(0, 0, 10, 10)
	assert.True(t, outer.Contains(rect(1, 1, 9, 9)))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(rect(-1, 1, 9, 9)))
}

func TestBoundingRect_Intersects(t *testing.T) {
	a := rect(0, 0, 2, 2)
	assert.True(t, a.Intersects(rect(2, 2, 3, 3)), "touching edges intersect")
	assert.True(t, a.Intersects(rect(1, 1, 3, 3)))
	assert.False(t, a.Intersects(rect(3, 3, 4, 4)))
}

func TestBoundingRect_EnlargedArea(t *testing.T) {
	a := rect(0, 0, 2, 2)
	b := rect(1, 1, 4, 4)
	assert.Equal(t, 16.0, a.EnlargedArea(b))
}

func TestBoundingRect_IntersectionArea(t *testing.T) {
	a := rect(0, 0, 2, 2)
	b := rect(1, 1, 3, 3)
	assert.Equal(t, 1.0, a.IntersectionArea(b))

	disjoint := rect(5, 5, 6, 6)
	assert.Equal(t, 0.0, a.IntersectionArea(disjoint))
}

func TestBoundingRect_Extend(t *testing.T) {
	b := NoBounds
	Extend(&b, rect(1, 2, 3, 4))
	assert.Equal(t, rect(1, 2, 3, 4), b)

	Extend(&b, rect(-1, 0, 2, 10))
	assert.Equal(t, rect(-1, 0, 3, 10), b)
}

func TestBoundingRect_Valid(t *testing.T) {
	assert.True(t, rect(0, 0, 1, 1).Valid())
	assert.False(t, rect(1, 0, 0, 1).Valid(), "min_x > max_x")
	assert.False(t, rect(0, 1, 1, 0).Valid(), "min_y > max_y")
	assert.False(t, rect(math.NaN(), 0, 1, 1).Valid())
	assert.False(t, NoBounds.Valid(), "NoBounds is not itself a valid rectangle")
}
