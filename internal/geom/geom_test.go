package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Bounds(t *testing.T) {
	r := Rect{X: 1, Y: 2, Width: 4, Depth: 3}
	assert.Equal(t, 5.0, r.MaxX())
	assert.Equal(t, 5.0, r.MaxY())
	assert.Equal(t, 12.0, r.Area())
}

func TestRect_Overlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 4, Depth: 4}
	b := Rect{X: 2, Y: 2, Width: 4, Depth: 4}
	c := Rect{X: 4, Y: 0, Width: 2, Depth: 2} // shares an edge with a

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c), "touching edges are not overlap")
}

func TestSharedSpan(t *testing.T) {
	s, ok := SharedSpan(0, 5, 3, 8)
	assert.True(t, ok)
	assert.Equal(t, Span{Start: 3, End: 5}, s)

	_, ok = SharedSpan(0, 2, 2, 5)
	assert.False(t, ok, "zero-length overlap is rejected")

	_, ok = SharedSpan(0, 2, 4, 5)
	assert.False(t, ok)
}

func TestAABB_Overlaps(t *testing.T) {
	a := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{2, 2, 2}}
	b := AABB{Min: Vec3{1, 1, 1}, Max: Vec3{3, 3, 3}}
	// Overlaps a on X and Y but sits on top on Z.
	c := AABB{Min: Vec3{0, 0, 2}, Max: Vec3{2, 2, 4}}

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c), "must intersect on all three axes")
}

func TestAABB_Volume(t *testing.T) {
	a := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{2, 3, 4}}
	assert.InDelta(t, 24.0, a.Volume(), Epsilon)

	inverted := AABB{Min: Vec3{1, 0, 0}, Max: Vec3{0, 1, 1}}
	assert.Zero(t, inverted.Volume())
}

func TestAABB_RotateZ_Cardinal(t *testing.T) {
	a := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{2, 1, 3}}
	r := a.RotateZ(math.Pi / 2)

	assert.InDelta(t, -1.0, r.Min.X, Epsilon)
	assert.InDelta(t, 0.0, r.Min.Y, Epsilon)
	assert.InDelta(t, 0.0, r.Max.X, Epsilon)
	assert.InDelta(t, 2.0, r.Max.Y, Epsilon)
	assert.InDelta(t, 3.0, r.Max.Z, Epsilon, "Z extents are preserved")
}

func TestSnap(t *testing.T) {
	assert.Equal(t, 9.0, Snap(9.1))
	assert.Equal(t, 9.25, Snap(9.2))
	assert.Equal(t, 0.0, Snap(0.1))
	assert.Equal(t, -0.25, Snap(-0.2))
}

func TestWallAngle(t *testing.T) {
	assert.InDelta(t, 0.0, WallAngle(0, 0, 5, 0), Epsilon)
	assert.InDelta(t, math.Pi/2, WallAngle(0, 0, 0, 5), Epsilon)
	assert.InDelta(t, math.Pi, math.Abs(WallAngle(5, 0, 0, 0)), Epsilon)
}
