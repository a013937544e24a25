package floorplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfactor/manifold/internal/geom"
)

func TestPartition_Deterministic(t *testing.T) {
	fp := geom.Rect{Width: 40, Depth: 20}

	a := Partition(fp, 7, 0)
	b := Partition(fp, 7, 0)

	assert.Equal(t, a, b, "identical (footprint, seed, floor) must yield a bit-identical tree")
}

func TestPartition_FloorsDifferDeterministically(t *testing.T) {
	fp := geom.Rect{Width: 40, Depth: 20}

	f0 := Partition(fp, 7, 0)
	f1 := Partition(fp, 7, 1)

	assert.NotEqual(t, f0, f1, "seed must be mixed with floor index")
	assert.Equal(t, f1, Partition(fp, 7, 1))
}

func TestPartition_TooSmallFootprintIsSingleLeaf(t *testing.T) {
	// Smaller than two minimum rooms plus a corridor on both axes.
	fp := geom.Rect{Width: 7, Depth: 5}

	tree := Partition(fp, 42, 0)

	require.True(t, tree.IsLeaf())
	rooms := tree.Rooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, fp, rooms[0].Bounds)
	assert.Empty(t, tree.Corridors())
}

func TestPartition_NoDegenerateRooms(t *testing.T) {
	for _, seed := range []int64{0, 1, 42, 123, 9999} {
		tree := Partition(geom.Rect{Width: 30, Depth: 30}, seed, 0)
		for _, room := range tree.Rooms() {
			assert.GreaterOrEqual(t, room.Bounds.Width, MinRoomSize-geom.Epsilon, "seed %d", seed)
			assert.GreaterOrEqual(t, room.Bounds.Depth, MinRoomSize-geom.Epsilon, "seed %d", seed)
		}
	}
}

func TestPartition_ThinFootprintNeverSplits(t *testing.T) {
	// Long enough to cut across its width, but too shallow to hold a
	// minimum room in the cross dimension: must stay a single leaf instead
	// of producing 2 m deep rooms.
	for _, seed := range []int64{0, 7, 42} {
		tree := Partition(geom.Rect{Width: 10, Depth: 2}, seed, 0)
		require.True(t, tree.IsLeaf(), "seed %d", seed)
		assert.Empty(t, tree.Corridors(), "seed %d", seed)
	}
}

func TestPartition_RoomsMeetMinimumSizeInBothDimensions(t *testing.T) {
	footprints := []geom.Rect{
		{Width: 40, Depth: 20},
		{Width: 12, Depth: 3.5},
		{Width: 9, Depth: 30},
	}
	for _, fp := range footprints {
		for _, seed := range []int64{1, 42, 9999} {
			tree := Partition(fp, seed, 0)
			for _, room := range tree.Rooms() {
				assert.GreaterOrEqual(t, room.Bounds.Width, MinRoomSize-geom.Epsilon,
					"footprint %+v seed %d room %d", fp, seed, room.ID)
				assert.GreaterOrEqual(t, room.Bounds.Depth, MinRoomSize-geom.Epsilon,
					"footprint %+v seed %d room %d", fp, seed, room.ID)
			}
		}
	}
}

func TestPartition_NoOverlappingRegions(t *testing.T) {
	tree := Partition(geom.Rect{Width: 30, Depth: 30}, 123, 0)

	var rects []geom.Rect
	for _, r := range tree.Rooms() {
		rects = append(rects, r.Bounds)
	}
	for _, c := range tree.Corridors() {
		rects = append(rects, c.Bounds)
	}

	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			assert.False(t, rects[i].Overlaps(rects[j]), "regions %d and %d overlap", i, j)
		}
	}
}

func TestPartition_AreaConserved(t *testing.T) {
	fp := geom.Rect{Width: 40, Depth: 20}
	tree := Partition(fp, 7, 0)

	total := 0.0
	for _, r := range tree.Rooms() {
		total += r.Bounds.Area()
	}
	for _, c := range tree.Corridors() {
		total += c.Bounds.Area()
	}
	assert.InDelta(t, fp.Area(), total, 1e-6)
}

func TestPartition_RoomIDsAreStable(t *testing.T) {
	tree := Partition(geom.Rect{Width: 40, Depth: 20}, 7, 0)
	for i, room := range tree.Rooms() {
		assert.Equal(t, i, room.ID, "rooms are numbered in depth-first order")
	}
	for i, corr := range tree.Corridors() {
		assert.Equal(t, i, corr.ID)
	}
}

func TestPartition_SpineCutIsGoldenBiased(t *testing.T) {
	fp := geom.Rect{Width: 20, Depth: 16}
	tree := Partition(fp, 42, 0)

	require.False(t, tree.IsLeaf())
	corr := tree.Corridor
	require.NotNil(t, corr)
	assert.Equal(t, SplitX, tree.Axis, "wider-than-deep footprint splits across its width")

	// The cut sits near width/phi, within jitter plus one grid step.
	center := corr.Bounds.X + CorridorWidth/2
	assert.InDelta(t, fp.Width/geom.Phi, center, 0.02*fp.Width+geom.GridUnit)
	assert.InDelta(t, CorridorWidth, corr.Bounds.Width, geom.Epsilon)
	assert.InDelta(t, fp.Depth, corr.Bounds.Depth, geom.Epsilon, "spine runs the full depth")
}
