// Package floorplan partitions a building footprint into rooms and corridors
// and derives the adjacency and raw wall layout the rest of the pipeline
// consumes. Partitioning is a recursive binary split: every split carves a
// corridor of fixed width on the cut line and recurses into the two flanks,
// so rooms never touch each other directly; all circulation routes through
// corridors.
package floorplan

import (
	"github.com/mfactor/manifold/internal/geom"
	"github.com/mfactor/manifold/internal/rng"
)

// Architectural constants for partitioning and wall construction.
const (
	CorridorWidth = 1.8
	MinRoomSize   = 3.0
	MinRoomArea   = MinRoomSize * MinRoomSize
	MaxSplitDepth = 4
	StoryHeight   = 3.0
	WallThickness = 0.2
)

// SplitAxis identifies the direction of a partition cut.
type SplitAxis string

const (
	// SplitX cuts across the width, producing a corridor that runs
	// north-south.
	SplitX SplitAxis = "x"
	// SplitY cuts across the depth, producing a corridor that runs
	// east-west.
	SplitY SplitAxis = "y"
)

// Room is a partition leaf. Its ID is stable within a floor: rooms are
// numbered in depth-first order, which is fixed for a given (footprint,
// seed, floor) input.
type Room struct {
	ID     int       `json:"id"`
	Bounds geom.Rect `json:"bounds"`
	Floor  int       `json:"floor"`
}

// Corridor is the circulation spine carved by one partition split.
type Corridor struct {
	ID     int       `json:"id"`
	Bounds geom.Rect `json:"bounds"`
	Floor  int       `json:"floor"`
}

// PartitionNode is a node of the partition tree. A node is either a leaf
// holding a Room, or a split holding a Corridor and two children. Children
// are owned exclusively by their parent; adjacency is represented separately
// as a non-owning edge list (see Resolve).
type PartitionNode struct {
	Bounds   geom.Rect
	Room     *Room
	Corridor *Corridor
	Axis     SplitAxis
	Left     *PartitionNode
	Right    *PartitionNode
}

// IsLeaf reports whether the node is a terminal room.
func (n *PartitionNode) IsLeaf() bool { return n.Room != nil }

// Rooms returns all rooms in the subtree in depth-first (ID) order.
func (n *PartitionNode) Rooms() []*Room {
	var out []*Room
	n.walk(func(node *PartitionNode) {
		if node.Room != nil {
			out = append(out, node.Room)
		}
	})
	return out
}

// Corridors returns all corridors in the subtree in depth-first (ID) order.
func (n *PartitionNode) Corridors() []*Corridor {
	var out []*Corridor
	n.walk(func(node *PartitionNode) {
		if node.Corridor != nil {
			out = append(out, node.Corridor)
		}
	})
	return out
}

func (n *PartitionNode) walk(fn func(*PartitionNode)) {
	if n == nil {
		return
	}
	fn(n)
	n.Left.walk(fn)
	n.Right.walk(fn)
}

// Partition recursively splits the footprint into a corridor spine and rooms.
// Identical (footprint, seed, floor) inputs always yield a bit-identical
// tree: the random stream is derived from (seed, floor) alone and consumed
// in a fixed depth-first order.
//
// A footprint too small to hold two minimum rooms plus a corridor is
// returned as a single-leaf tree; a zero- or negative-area room is never
// produced.
func Partition(footprint geom.Rect, seed int64, floor int) *PartitionNode {
	src := rng.ForFloor(seed, "floorplan", floor)
	var roomID, corridorID int
	return split(footprint, floor, 0, src, &roomID, &corridorID)
}

func split(bounds geom.Rect, floor, depth int, src *rng.Source, roomID, corridorID *int) *PartitionNode {
	axis, ok := chooseAxis(bounds)
	if !ok || depth >= MaxSplitDepth || bounds.Area() < 2*MinRoomArea {
		return leaf(bounds, floor, roomID)
	}
	// The cut runs along the longer dimension, so the shorter one is
	// inherited unchanged by both flanks. It must already hold a minimum
	// room, otherwise a long thin footprint would split into rooms below the
	// minimum size in the cross dimension.
	if bounds.Width < MinRoomSize-geom.Epsilon || bounds.Depth < MinRoomSize-geom.Epsilon {
		return leaf(bounds, floor, roomID)
	}

	length := bounds.Width
	if axis == SplitY {
		length = bounds.Depth
	}

	// Golden-ratio split with jitter, clamped so both flanks keep at least
	// a minimum room beside the corridor.
	lo := MinRoomSize + CorridorWidth/2
	hi := length - MinRoomSize - CorridorWidth/2
	cut := src.GoldenSplit(length)
	if cut < lo {
		cut = lo
	}
	if cut > hi {
		cut = hi
	}

	var corrBounds, leftBounds, rightBounds geom.Rect
	if axis == SplitX {
		corrBounds = geom.Rect{X: bounds.X + cut - CorridorWidth/2, Y: bounds.Y, Width: CorridorWidth, Depth: bounds.Depth}
		leftBounds = geom.Rect{X: bounds.X, Y: bounds.Y, Width: cut - CorridorWidth/2, Depth: bounds.Depth}
		rightBounds = geom.Rect{X: corrBounds.MaxX(), Y: bounds.Y, Width: bounds.MaxX() - corrBounds.MaxX(), Depth: bounds.Depth}
	} else {
		corrBounds = geom.Rect{X: bounds.X, Y: bounds.Y + cut - CorridorWidth/2, Width: bounds.Width, Depth: CorridorWidth}
		leftBounds = geom.Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Depth: cut - CorridorWidth/2}
		rightBounds = geom.Rect{X: bounds.X, Y: corrBounds.MaxY(), Width: bounds.Width, Depth: bounds.MaxY() - corrBounds.MaxY()}
	}

	corridor := &Corridor{ID: *corridorID, Bounds: corrBounds, Floor: floor}
	*corridorID++

	node := &PartitionNode{Bounds: bounds, Corridor: corridor, Axis: axis}
	node.Left = split(leftBounds, floor, depth+1, src, roomID, corridorID)
	node.Right = split(rightBounds, floor, depth+1, src, roomID, corridorID)
	return node
}

func leaf(bounds geom.Rect, floor int, roomID *int) *PartitionNode {
	room := &Room{ID: *roomID, Bounds: bounds, Floor: floor}
	*roomID++
	return &PartitionNode{Bounds: bounds, Room: room}
}

// chooseAxis picks the split direction along the longer dimension, and
// reports whether the rectangle is large enough to split at all.
func chooseAxis(bounds geom.Rect) (SplitAxis, bool) {
	minLength := 2*MinRoomSize + CorridorWidth
	if bounds.Width >= bounds.Depth {
		if bounds.Width >= minLength-geom.Epsilon {
			return SplitX, true
		}
		return "", false
	}
	if bounds.Depth >= minLength-geom.Epsilon {
		return SplitY, true
	}
	return "", false
}
