package floorplan

import (
	"github.com/mfactor/manifold/internal/geom"
)

// Side identifies which face of its owner a wall covers.
type Side string

const (
	SideNorth Side = "north" // max Y
	SideEast  Side = "east"  // max X
	SideSouth Side = "south" // min Y
	SideWest  Side = "west"  // min X
)

// sideOrder fixes the emission order of walls per owner so wall IDs are
// stable for a given tree.
var sideOrder = []Side{SideNorth, SideEast, SideSouth, SideWest}

// WallSegment is one raw (uncarved) boundary wall between two owners. The
// endpoints run in ascending coordinate order along the wall's axis.
type WallSegment struct {
	ID         int     `json:"id"`
	Floor      int     `json:"floor"`
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
	Thickness  float64 `json:"thickness"`
	Height     float64 `json:"height"`
	Exterior   bool    `json:"exterior"`
	RoomID     int     `json:"roomId"`     // -1 when corridor-owned
	CorridorID int     `json:"corridorId"` // facing corridor, -1 when none
	Side       Side    `json:"side"`
}

// Length returns the wall's run length.
func (w WallSegment) Length() float64 {
	return geom.Span{Start: w.X1, End: w.X2}.Length() + geom.Span{Start: w.Y1, End: w.Y2}.Length()
}

// Angle returns the wall's orientation as the 2-argument arctangent of its
// direction vector, for downstream slot placement.
func (w WallSegment) Angle() float64 {
	return geom.WallAngle(w.X1, w.Y1, w.X2, w.Y2)
}

// AdjacencyEdge records that a room borders a corridor along a shared span.
// Edges are non-owning: they reference stable IDs, never nodes, so the
// partition tree stays a strict tree with no back-references.
type AdjacencyEdge struct {
	RoomID     int       `json:"roomId"`
	CorridorID int       `json:"corridorId"`
	WallID     int       `json:"wallId"`
	Span       geom.Span `json:"span"`
}

// Layout is the resolved view of one floor's partition tree.
type Layout struct {
	Footprint geom.Rect
	Rooms     []*Room
	Corridors []*Corridor
	Walls     []WallSegment
	Edges     []AdjacencyEdge
}

// Resolve walks a partition tree and derives room/corridor adjacency and the
// raw wall set. Every room boundary on the outer footprint becomes an
// exterior wall; every room boundary on a corridor becomes an interior wall
// plus an AdjacencyEdge. Rooms are never adjacent to each other directly;
// every split interposes a corridor.
func Resolve(tree *PartitionNode, floor int) *Layout {
	layout := &Layout{
		Footprint: tree.Bounds,
		Rooms:     tree.Rooms(),
		Corridors: tree.Corridors(),
	}

	for _, room := range layout.Rooms {
		for _, side := range sideOrder {
			layout.addRoomWall(room, side, floor)
		}
	}
	for _, corr := range layout.Corridors {
		layout.addCorridorEndWalls(corr, floor)
	}
	return layout
}

// addRoomWall classifies one side of a room and emits its wall segment.
func (l *Layout) addRoomWall(room *Room, side Side, floor int) {
	wall := wallOnSide(room.Bounds, side, floor)
	wall.RoomID = room.ID
	wall.CorridorID = -1

	if l.onFootprintBoundary(side, wall) {
		wall.Exterior = true
		l.appendWall(wall)
		return
	}

	if corr, span, ok := l.facingCorridor(side, wall); ok {
		wall.CorridorID = corr.ID
		id := l.appendWall(wall)
		l.Edges = append(l.Edges, AdjacencyEdge{
			RoomID:     room.ID,
			CorridorID: corr.ID,
			WallID:     id,
			Span:       span,
		})
		return
	}

	// By construction every interior room boundary faces a corridor; an
	// unmatched side still gets a solid wall.
	l.appendWall(wall)
}

// addCorridorEndWalls emits exterior walls for corridor ends that terminate
// on the footprint boundary. Ends that meet another corridor stay open.
func (l *Layout) addCorridorEndWalls(corr *Corridor, floor int) {
	vertical := corr.Bounds.Depth > corr.Bounds.Width
	ends := []Side{SideNorth, SideSouth}
	if !vertical {
		ends = []Side{SideEast, SideWest}
	}
	for _, side := range ends {
		wall := wallOnSide(corr.Bounds, side, floor)
		wall.RoomID = -1
		wall.CorridorID = corr.ID
		if l.onFootprintBoundary(side, wall) {
			wall.Exterior = true
			l.appendWall(wall)
		}
	}
}

func (l *Layout) appendWall(wall WallSegment) int {
	wall.ID = len(l.Walls)
	l.Walls = append(l.Walls, wall)
	return wall.ID
}

func (l *Layout) onFootprintBoundary(side Side, w WallSegment) bool {
	fp := l.Footprint
	switch side {
	case SideNorth:
		return geom.NearlyEqual(w.Y1, fp.MaxY())
	case SideSouth:
		return geom.NearlyEqual(w.Y1, fp.Y)
	case SideEast:
		return geom.NearlyEqual(w.X1, fp.MaxX())
	case SideWest:
		return geom.NearlyEqual(w.X1, fp.X)
	}
	return false
}

// facingCorridor finds the corridor whose boundary carries this wall, along
// with the shared span between the two owners.
func (l *Layout) facingCorridor(side Side, w WallSegment) (*Corridor, geom.Span, bool) {
	for _, corr := range l.Corridors {
		cb := corr.Bounds
		switch side {
		case SideNorth:
			if geom.NearlyEqual(w.Y1, cb.Y) {
				if span, ok := geom.SharedSpan(w.X1, w.X2, cb.X, cb.MaxX()); ok {
					return corr, span, true
				}
			}
		case SideSouth:
			if geom.NearlyEqual(w.Y1, cb.MaxY()) {
				if span, ok := geom.SharedSpan(w.X1, w.X2, cb.X, cb.MaxX()); ok {
					return corr, span, true
				}
			}
		case SideEast:
			if geom.NearlyEqual(w.X1, cb.X) {
				if span, ok := geom.SharedSpan(w.Y1, w.Y2, cb.Y, cb.MaxY()); ok {
					return corr, span, true
				}
			}
		case SideWest:
			if geom.NearlyEqual(w.X1, cb.MaxX()) {
				if span, ok := geom.SharedSpan(w.Y1, w.Y2, cb.Y, cb.MaxY()); ok {
					return corr, span, true
				}
			}
		}
	}
	return nil, geom.Span{}, false
}

// wallOnSide builds the raw segment covering one side of a rectangle.
func wallOnSide(r geom.Rect, side Side, floor int) WallSegment {
	w := WallSegment{
		Floor:     floor,
		Thickness: WallThickness,
		Height:    StoryHeight,
		Side:      side,
	}
	switch side {
	case SideNorth:
		w.X1, w.Y1, w.X2, w.Y2 = r.X, r.MaxY(), r.MaxX(), r.MaxY()
	case SideSouth:
		w.X1, w.Y1, w.X2, w.Y2 = r.X, r.Y, r.MaxX(), r.Y
	case SideEast:
		w.X1, w.Y1, w.X2, w.Y2 = r.MaxX(), r.Y, r.MaxX(), r.MaxY()
	case SideWest:
		w.X1, w.Y1, w.X2, w.Y2 = r.X, r.Y, r.X, r.MaxY()
	}
	return w
}
