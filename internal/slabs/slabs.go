// Package slabs produces horizontal floor and ceiling slabs for each story.
// A stairwell hole is cut by decomposing the slab into up to four boxes
// around the hole instead of a boolean subtraction, the same discipline the
// wall carver follows.
package slabs

import (
	"github.com/mfactor/manifold/internal/floorplan"
	"github.com/mfactor/manifold/internal/geom"
)

const (
	FloorThickness   = 0.3
	CeilingThickness = 0.2
)

// Kind distinguishes the two slab planes of a story.
type Kind string

const (
	KindFloor   Kind = "floor"
	KindCeiling Kind = "ceiling"
)

// Slab is one horizontal plate, possibly split into several boxes around a
// stairwell hole.
type Slab struct {
	Kind   Kind        `json:"kind"`
	Floor  int         `json:"floor"`
	Pieces []geom.AABB `json:"pieces"`
}

// Area sums the footprint area of the slab's pieces.
func (s Slab) Area() float64 {
	var total float64
	for _, p := range s.Pieces {
		total += (p.Max.X - p.Min.X) * (p.Max.Y - p.Min.Y)
	}
	return total
}

// Build emits the floor and ceiling slabs for one story. floorHole and
// ceilHole are stairwell cutouts in plan coordinates; nil means a solid
// single-piece plate. The ground story keeps a solid floor and the top story
// a solid ceiling, so callers pass holes only where the shaft actually
// passes through. The floor slab of story n sits directly below
// z = n*StoryHeight, the ceiling slab directly below the next story's floor.
func Build(footprint geom.Rect, floor int, floorHole, ceilHole *geom.Rect) []Slab {
	baseZ := float64(floor) * floorplan.StoryHeight
	ceilZ := baseZ + floorplan.StoryHeight - CeilingThickness

	return []Slab{
		{
			Kind:   KindFloor,
			Floor:  floor,
			Pieces: plate(footprint, floorHole, baseZ-FloorThickness, FloorThickness),
		},
		{
			Kind:   KindCeiling,
			Floor:  floor,
			Pieces: plate(footprint, ceilHole, ceilZ, CeilingThickness),
		},
	}
}

// plate decomposes a footprint with an optional rectangular hole into axis
// aligned boxes: a band south of the hole, a band north of it, and side
// strips west and east at the hole's own Y range.
func plate(footprint geom.Rect, hole *geom.Rect, z, thickness float64) []geom.AABB {
	box := func(r geom.Rect) geom.AABB {
		return geom.AABB{
			Min: geom.Vec3{X: r.X, Y: r.Y, Z: z},
			Max: geom.Vec3{X: r.MaxX(), Y: r.MaxY(), Z: z + thickness},
		}
	}

	if hole == nil || !footprint.Overlaps(*hole) {
		return []geom.AABB{box(footprint)}
	}

	// Clamp the hole to the footprint so edge-touching stairwells decompose
	// cleanly into fewer bands.
	hx0 := max(hole.X, footprint.X)
	hy0 := max(hole.Y, footprint.Y)
	hx1 := min(hole.MaxX(), footprint.MaxX())
	hy1 := min(hole.MaxY(), footprint.MaxY())

	var pieces []geom.AABB
	add := func(x, y, w, d float64) {
		if w > geom.Epsilon && d > geom.Epsilon {
			pieces = append(pieces, box(geom.Rect{X: x, Y: y, Width: w, Depth: d}))
		}
	}

	add(footprint.X, footprint.Y, footprint.Width, hy0-footprint.Y)     // south band
	add(footprint.X, hy1, footprint.Width, footprint.MaxY()-hy1)       // north band
	add(footprint.X, hy0, hx0-footprint.X, hy1-hy0)                    // west strip
	add(hx1, hy0, footprint.MaxX()-hx1, hy1-hy0)                       // east strip
	return pieces
}
