// Package openings chooses door and window positions for a floor's walls.
// Doors connect every room to its corridor; windows populate exterior walls
// at golden-ratio proportions instead of a mechanical uniform pitch.
package openings

import (
	"sort"

	"github.com/mfactor/manifold/internal/floorplan"
	"github.com/mfactor/manifold/internal/geom"
	"github.com/mfactor/manifold/internal/rng"
)

// Opening dimensions and placement constraints.
const (
	DoorWidth  = 0.9
	DoorHeight = 2.0
	// DoorMargin keeps a door clear of each end of its shared span so it
	// never touches a corner.
	DoorMargin = 0.2

	WindowWidth      = 1.0
	WindowHeight     = 1.2
	WindowSillHeight = 0.9
	// WindowMinWall is the minimum exterior wall length that receives
	// windows at all.
	WindowMinWall = 2.0
	// WindowPitch is the nominal spacing budget per window.
	WindowPitch = 3.0
	// WindowEdgeMargin keeps windows clear of wall endpoints.
	WindowEdgeMargin = 0.4
)

// Type discriminates door and window openings.
type Type string

const (
	Door   Type = "door"
	Window Type = "window"
)

// Opening is one planned gap in a wall. Position is the opening's center
// measured along the wall from its (X1, Y1) endpoint.
type Opening struct {
	Type       Type    `json:"type"`
	WallID     int     `json:"wallId"`
	Position   float64 `json:"position"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	SillHeight float64 `json:"sillHeight,omitempty"` // windows only
	Angle      float64 `json:"angle"`
}

// Plan is the opening set for one floor plus the rooms that could not be
// given corridor access. A no-access room is not an error; it is reported in
// output statistics and generation continues.
type Plan struct {
	Openings      []Opening
	NoAccessRooms []int
}

// ByWall groups the plan's openings by wall ID, each group sorted by
// position, ready for carving.
func (p *Plan) ByWall() map[int][]Opening {
	byWall := make(map[int][]Opening)
	for _, o := range p.Openings {
		byWall[o.WallID] = append(byWall[o.WallID], o)
	}
	for id := range byWall {
		group := byWall[id]
		sort.Slice(group, func(i, j int) bool { return group[i].Position < group[j].Position })
	}
	return byWall
}

// PlanFloor places doors and windows for one floor's layout. Identical
// (layout, seed, floor) inputs always produce the identical plan.
func PlanFloor(layout *floorplan.Layout, seed int64, floor int) *Plan {
	src := rng.ForFloor(seed, "openings", floor)
	plan := &Plan{}

	hasDoor := make(map[int]bool)
	for _, edge := range layout.Edges {
		wall := layout.Walls[edge.WallID]
		if door, ok := planDoor(wall, edge, src); ok {
			plan.Openings = append(plan.Openings, door)
			hasDoor[edge.RoomID] = true
		}
	}
	for _, room := range layout.Rooms {
		if !hasDoor[room.ID] {
			plan.NoAccessRooms = append(plan.NoAccessRooms, room.ID)
		}
	}

	for _, wall := range layout.Walls {
		if wall.Exterior {
			plan.Openings = append(plan.Openings, planWindows(wall)...)
		}
	}
	return plan
}

// planDoor positions exactly one door on a corridor-facing wall, centered
// inside the shared span minus the corner margins. A span too short for the
// minimum door yields no door.
func planDoor(wall floorplan.WallSegment, edge floorplan.AdjacencyEdge, src *rng.Source) (Opening, bool) {
	usable := edge.Span.Length() - 2*DoorMargin
	if usable < DoorWidth-geom.Epsilon {
		return Opening{}, false
	}

	// Offset of the shared span along the wall.
	relStart := edge.Span.Start - wallStart(wall)

	// Golden-ratio point of the slack range, jittered and snapped.
	slack := usable - DoorWidth
	offset := 0.0
	if slack > geom.Epsilon {
		offset = src.GoldenSplit(slack)
		if offset < 0 {
			offset = 0
		}
		if offset > slack {
			offset = slack
		}
	}
	center := relStart + DoorMargin + DoorWidth/2 + offset

	return Opening{
		Type:     Door,
		WallID:   wall.ID,
		Position: center,
		Width:    DoorWidth,
		Height:   DoorHeight,
		Angle:    wall.Angle(),
	}, true
}

// planWindows fills an exterior wall with windows at the nominal pitch. The
// usable span is divided into one cell per pitch, and every cell keeps its
// window: each sits at the golden point of its cell, alternating between
// phi's reciprocal and its complement, so the spacing varies around the
// pitch instead of repeating evenly while the pitch-derived count is
// preserved.
func planWindows(wall floorplan.WallSegment) []Opening {
	length := wall.Length()
	if length < WindowMinWall-geom.Epsilon {
		return nil
	}

	lo := WindowEdgeMargin
	hi := length - WindowEdgeMargin
	usable := hi - lo
	if usable < WindowWidth-geom.Epsilon {
		return nil
	}

	count := int(usable / WindowPitch)
	if count < 1 {
		count = 1
	}
	cell := usable / float64(count)

	out := make([]Opening, 0, count)
	for i := 0; i < count; i++ {
		start := lo + float64(i)*cell
		offset := cell / geom.Phi
		if i%2 == 1 {
			offset = cell - cell/geom.Phi
		}

		// Confine the window to its own cell so neighbors never collide.
		center := start + offset
		if center < start+WindowWidth/2 {
			center = start + WindowWidth/2
		}
		if center > start+cell-WindowWidth/2 {
			center = start + cell - WindowWidth/2
		}

		out = append(out, Opening{
			Type:       Window,
			WallID:     wall.ID,
			Position:   center,
			Width:      WindowWidth,
			Height:     WindowHeight,
			SillHeight: WindowSillHeight,
			Angle:      wall.Angle(),
		})
	}
	return out
}

// wallStart returns the wall's starting coordinate along its own axis.
func wallStart(wall floorplan.WallSegment) float64 {
	if geom.NearlyEqual(wall.Y1, wall.Y2) {
		return wall.X1
	}
	return wall.Y1
}
