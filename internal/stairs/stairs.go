// Package stairs places the building's stairwell. Multi-story buildings get
// one vertical stairwell shaft at the far end of the primary corridor,
// aligned across every floor so the slab holes stack.
package stairs

import (
	"github.com/mfactor/manifold/internal/floorplan"
	"github.com/mfactor/manifold/internal/geom"
)

const (
	Width         = 2.0
	Depth         = 4.0
	StepsPerStory = 16
)

// Stairwell describes the vertical shaft. Bounds is the plan-view cutout
// used by every floor's slab; step geometry is left to the mesh builder.
type Stairwell struct {
	Bounds        geom.Rect `json:"bounds"`
	StepsPerStory int       `json:"steps_per_story"`
	Stories       int       `json:"stories"`
}

// Place decides the stairwell for a building. Single-story buildings and
// unsplit floorplans have none. The shaft sits at the high end of the
// primary corridor's long axis, centered on the corridor width, and is
// derived from the ground-floor partition only so upper floors inherit the
// same cutout regardless of their own room layout.
func Place(ground *floorplan.PartitionNode, floors int) *Stairwell {
	if floors < 2 {
		return nil
	}
	corridors := ground.Corridors()
	if len(corridors) == 0 {
		return nil
	}
	spine := corridors[0].Bounds

	var bounds geom.Rect
	if spine.Width >= spine.Depth {
		// East-west corridor, shaft at the east end. The shaft depth runs
		// along the corridor, its width across it.
		bounds = geom.Rect{
			X:     spine.MaxX() - Depth,
			Y:     spine.Y + (spine.Depth-Width)/2,
			Width: Depth,
			Depth: Width,
		}
	} else {
		bounds = geom.Rect{
			X:     spine.X + (spine.Width-Width)/2,
			Y:     spine.MaxY() - Depth,
			Width: Width,
			Depth: Depth,
		}
	}
	return &Stairwell{
		Bounds:        bounds,
		StepsPerStory: StepsPerStory,
		Stories:       floors,
	}
}
