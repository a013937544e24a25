// Package geom provides the axis-aligned value types the generation pipeline
// is built on: 2D rectangles for floorplans, 3D boxes for collision and
// carved wall pieces, and the small helpers (grid snapping, span overlap,
// wall angles) shared by every stage.
package geom

import "math"

const (
	// Epsilon is the tolerance for all geometric comparisons.
	Epsilon = 1e-6

	// GridUnit is the modular grid all split offsets and anchors snap to.
	GridUnit = 0.25

	// Phi is the golden ratio, used to bias splits and spacing.
	Phi = 1.618033988749895
)

// Vec3 is a point in 3D space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rect is an axis-aligned rectangle in the floorplan plane, addressed by its
// minimum corner. Pure value type, no identity.
type Rect struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// MaxX returns the maximum X coordinate of the rectangle.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the maximum Y coordinate of the rectangle.
func (r Rect) MaxY() float64 { return r.Y + r.Depth }

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.Width * r.Depth }

// Overlaps reports whether two rectangles share interior area (touching
// edges do not count).
func (r Rect) Overlaps(o Rect) bool {
	ox := math.Min(r.MaxX(), o.MaxX()) - math.Max(r.X, o.X)
	oy := math.Min(r.MaxY(), o.MaxY()) - math.Max(r.Y, o.Y)
	return ox > Epsilon && oy > Epsilon
}

// Span is a closed 1D interval along a wall or axis.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Length returns the span's length; degenerate spans report zero.
func (s Span) Length() float64 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// SharedSpan returns the overlap of two intervals [aMin,aMax] and
// [bMin,bMax], and ok=false if they overlap by less than Epsilon.
func SharedSpan(aMin, aMax, bMin, bMax float64) (Span, bool) {
	lo := math.Max(aMin, bMin)
	hi := math.Min(aMax, bMax)
	if hi-lo <= Epsilon {
		return Span{}, false
	}
	return Span{Start: lo, End: hi}, true
}

// AABB is an axis-aligned bounding box in 3D, used for slot collision.
type AABB struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Overlaps reports whether two boxes intersect on all three axes
// simultaneously. Touching faces do not count as overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X < b.Max.X-Epsilon && b.Min.X < a.Max.X-Epsilon &&
		a.Min.Y < b.Max.Y-Epsilon && b.Min.Y < a.Max.Y-Epsilon &&
		a.Min.Z < b.Max.Z-Epsilon && b.Min.Z < a.Max.Z-Epsilon
}

// Volume returns the box volume; an inverted box reports zero.
func (a AABB) Volume() float64 {
	dx := a.Max.X - a.Min.X
	dy := a.Max.Y - a.Min.Y
	dz := a.Max.Z - a.Min.Z
	if dx < 0 || dy < 0 || dz < 0 {
		return 0
	}
	return dx * dy * dz
}

// Translate returns the box shifted by (x, y, z).
func (a AABB) Translate(x, y, z float64) AABB {
	return AABB{
		Min: Vec3{X: a.Min.X + x, Y: a.Min.Y + y, Z: a.Min.Z + z},
		Max: Vec3{X: a.Max.X + x, Y: a.Max.Y + y, Z: a.Max.Z + z},
	}
}

// RotateZ returns the axis-aligned bounds of the box rotated by angle
// radians around the Z axis through the origin. The result stays
// axis-aligned, so for non-cardinal angles it is the rotated box's hull.
func (a AABB) RotateZ(angle float64) AABB {
	sin, cos := math.Sincos(angle)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, x := range []float64{a.Min.X, a.Max.X} {
		for _, y := range []float64{a.Min.Y, a.Max.Y} {
			rx := x*cos - y*sin
			ry := x*sin + y*cos
			minX = math.Min(minX, rx)
			minY = math.Min(minY, ry)
			maxX = math.Max(maxX, rx)
			maxY = math.Max(maxY, ry)
		}
	}
	return AABB{
		Min: Vec3{X: minX, Y: minY, Z: a.Min.Z},
		Max: Vec3{X: maxX, Y: maxY, Z: a.Max.Z},
	}
}

// Snap rounds v to the nearest multiple of GridUnit.
func Snap(v float64) float64 {
	return math.Round(v/GridUnit) * GridUnit
}

// WallAngle returns the orientation of a wall run from start to end as the
// standard 2-argument arctangent of its direction vector, in radians.
func WallAngle(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// NearlyEqual reports whether a and b differ by less than Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}
