package carve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfactor/manifold/internal/floorplan"
	"github.com/mfactor/manifold/internal/geom"
	"github.com/mfactor/manifold/internal/openings"
)

func testWall(length float64) floorplan.WallSegment {
	return floorplan.WallSegment{
		ID: 1, X1: 0, Y1: 0, X2: length, Y2: 0,
		Thickness: floorplan.WallThickness,
		Height:    floorplan.StoryHeight,
	}
}

func wallVolume(w floorplan.WallSegment) float64 {
	return w.Length() * w.Thickness * w.Height
}

func piecesVolume(pieces []Piece) float64 {
	total := 0.0
	for _, p := range pieces {
		total += p.Bounds.Volume()
	}
	return total
}

func TestWall_NoOpenings(t *testing.T) {
	w := testWall(5)

	pieces, err := Wall(w, nil, 0)
	require.NoError(t, err)

	require.Len(t, pieces, 1)
	assert.Equal(t, BandFull, pieces[0].Band)
	assert.InDelta(t, wallVolume(w), piecesVolume(pieces), 1e-9)
}

func TestWall_DoorSplitsIntoSidesAndHeader(t *testing.T) {
	w := testWall(5)
	door := openings.Opening{
		Type: openings.Door, WallID: 1, Position: 2.5,
		Width: openings.DoorWidth, Height: openings.DoorHeight,
	}

	pieces, err := Wall(w, []openings.Opening{door}, 0)
	require.NoError(t, err)

	// Left full, header above the door, right full.
	require.Len(t, pieces, 3)
	assert.Equal(t, BandFull, pieces[0].Band)
	assert.Equal(t, BandHeader, pieces[1].Band)
	assert.Equal(t, BandFull, pieces[2].Band)

	assert.InDelta(t, openings.DoorHeight, pieces[1].Bounds.Min.Z, geom.Epsilon)
	assert.InDelta(t, floorplan.StoryHeight, pieces[1].Bounds.Max.Z, geom.Epsilon)

	doorVolume := door.Width * w.Thickness * door.Height
	assert.InDelta(t, wallVolume(w), piecesVolume(pieces)+doorVolume, 1e-6)
}

func TestWall_WindowSplitsIntoThreeVerticalBands(t *testing.T) {
	w := testWall(4)
	win := openings.Opening{
		Type: openings.Window, WallID: 1, Position: 2,
		Width: openings.WindowWidth, Height: openings.WindowHeight,
		SillHeight: openings.WindowSillHeight,
	}

	pieces, err := Wall(w, []openings.Opening{win}, 0)
	require.NoError(t, err)

	// Left full, sill, header, right full.
	require.Len(t, pieces, 4)
	bands := map[Band]int{}
	for _, p := range pieces {
		bands[p.Band]++
	}
	assert.Equal(t, 2, bands[BandFull])
	assert.Equal(t, 1, bands[BandSill])
	assert.Equal(t, 1, bands[BandHeader])

	winVolume := win.Width * w.Thickness * win.Height
	assert.InDelta(t, wallVolume(w), piecesVolume(pieces)+winVolume, 1e-6)
}

func TestWall_OpeningFlushAgainstWallEnd(t *testing.T) {
	w := testWall(2)
	// Door whose left edge sits exactly on the wall start: no left piece.
	door := openings.Opening{
		Type: openings.Door, WallID: 1, Position: openings.DoorWidth / 2,
		Width: openings.DoorWidth, Height: openings.DoorHeight,
	}

	pieces, err := Wall(w, []openings.Opening{door}, 0)
	require.NoError(t, err)

	for _, p := range pieces {
		assert.Greater(t, p.Bounds.Volume(), 0.0, "degenerate intervals must yield no piece")
	}
	doorVolume := door.Width * w.Thickness * door.Height
	assert.InDelta(t, wallVolume(w), piecesVolume(pieces)+doorVolume, 1e-6)
}

func TestWall_OverlappingOpeningsFailCarving(t *testing.T) {
	w := testWall(3)
	a := openings.Opening{Type: openings.Door, Position: 1.0, Width: 0.9, Height: 2.0}
	b := openings.Opening{Type: openings.Door, Position: 1.5, Width: 0.9, Height: 2.0}

	pieces, err := Wall(w, []openings.Opening{a, b}, 0)
	assert.Nil(t, pieces)

	var carveErr *Error
	require.ErrorAs(t, err, &carveErr)
	assert.Equal(t, 1, carveErr.WallID)
	assert.Contains(t, carveErr.Reason, "overlap")
}

func TestWall_VerticalWallOrientation(t *testing.T) {
	w := floorplan.WallSegment{
		ID: 2, X1: 3, Y1: 0, X2: 3, Y2: 6,
		Thickness: floorplan.WallThickness, Height: floorplan.StoryHeight,
	}

	pieces, err := Wall(w, nil, 3.0)
	require.NoError(t, err)

	require.Len(t, pieces, 1)
	b := pieces[0].Bounds
	assert.InDelta(t, 3-w.Thickness/2, b.Min.X, geom.Epsilon)
	assert.InDelta(t, 3+w.Thickness/2, b.Max.X, geom.Epsilon)
	assert.InDelta(t, 0.0, b.Min.Y, geom.Epsilon)
	assert.InDelta(t, 6.0, b.Max.Y, geom.Epsilon)
	assert.InDelta(t, 3.0, b.Min.Z, geom.Epsilon, "base elevation carries into the piece")
}

func TestWall_BaseElevationForUpperFloor(t *testing.T) {
	w := testWall(5)
	baseZ := 2 * floorplan.StoryHeight

	pieces, err := Wall(w, nil, baseZ)
	require.NoError(t, err)
	assert.InDelta(t, baseZ, pieces[0].Bounds.Min.Z, geom.Epsilon)
	assert.InDelta(t, baseZ+floorplan.StoryHeight, pieces[0].Bounds.Max.Z, geom.Epsilon)
}

func TestWall_VolumeConservationAcrossSeeds(t *testing.T) {
	// Full pipeline walls: partition, plan, carve, and check conservation
	// for every wall.
	for _, seed := range []int64{0, 7, 42} {
		tree := floorplan.Partition(geom.Rect{Width: 40, Depth: 20}, seed, 0)
		layout := floorplan.Resolve(tree, 0)
		plan := openings.PlanFloor(layout, seed, 0)
		byWall := plan.ByWall()

		for _, wall := range layout.Walls {
			pieces, err := Wall(wall, byWall[wall.ID], 0)
			require.NoError(t, err, "seed %d wall %d", seed, wall.ID)

			openVolume := 0.0
			for _, o := range byWall[wall.ID] {
				openVolume += o.Width * wall.Thickness * o.Height
			}
			assert.InDelta(t, wallVolume(wall), piecesVolume(pieces)+openVolume, 1e-6,
				"seed %d wall %d", seed, wall.ID)
		}
	}
}
