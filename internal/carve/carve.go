// Package carve converts raw wall runs plus their openings into validated
// sets of rectangular-prism pieces. No boolean solid subtraction is ever
// performed: the wall is walked along its length and split into intervals
// between openings, with windows additionally banded vertically (below sill,
// above header). The union of pieces plus opening extents reconstitutes the
// wall exactly, which is checked by volume conservation.
package carve

import (
	"fmt"
	"sort"

	"github.com/mfactor/manifold/internal/floorplan"
	"github.com/mfactor/manifold/internal/geom"
	"github.com/mfactor/manifold/internal/openings"
)

// Band labels the vertical extent a carved piece covers.
type Band string

const (
	// BandFull spans floor to ceiling.
	BandFull Band = "full"
	// BandHeader sits above an opening, up to the ceiling.
	BandHeader Band = "header"
	// BandSill sits below a window, down to the floor.
	BandSill Band = "sill"
)

// Piece is one carved rectangular prism of a wall.
type Piece struct {
	WallID   int       `json:"wallId"`
	Index    int       `json:"index"`
	Bounds   geom.AABB `json:"bounds"`
	Band     Band      `json:"band"`
	Exterior bool      `json:"exterior"`
}

// Error reports a carving failure for a single wall segment. It is fatal
// for that segment only; other segments continue.
type Error struct {
	WallID int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("carve failed for wall %d: %s", e.WallID, e.Reason)
}

// Wall carves one raw wall segment around its openings. baseZ is the
// floor's base elevation. Openings may arrive in any order; they are sorted
// by position. The sum of all piece volumes plus opening volumes must equal
// the original wall volume within tolerance, otherwise a carving error is
// returned and the wall produces no pieces.
func Wall(wall floorplan.WallSegment, opens []openings.Opening, baseZ float64) ([]Piece, error) {
	length := wall.Length()
	if length < geom.Epsilon {
		return nil, &Error{WallID: wall.ID, Reason: "zero-length wall"}
	}

	sorted := make([]openings.Opening, len(opens))
	copy(sorted, opens)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	var pieces []Piece
	emit := func(a, b, z1, z2 float64, band Band) {
		if b-a <= geom.Epsilon || z2-z1 <= geom.Epsilon {
			return // degenerate interval yields no piece
		}
		pieces = append(pieces, Piece{
			WallID:   wall.ID,
			Index:    len(pieces),
			Bounds:   intervalBox(wall, a, b, z1, z2),
			Band:     band,
			Exterior: wall.Exterior,
		})
	}

	topZ := baseZ + wall.Height
	cursor := 0.0
	for _, o := range sorted {
		start := o.Position - o.Width/2
		end := o.Position + o.Width/2
		if start < cursor-geom.Epsilon {
			return nil, &Error{WallID: wall.ID, Reason: fmt.Sprintf("openings overlap at %.3f", start)}
		}
		if end > length+geom.Epsilon {
			return nil, &Error{WallID: wall.ID, Reason: fmt.Sprintf("opening extends past wall end at %.3f", end)}
		}

		emit(cursor, start, baseZ, topZ, BandFull)

		switch o.Type {
		case openings.Door:
			// Doors run floor to lintel; only a header band remains.
			emit(start, end, baseZ+o.Height, topZ, BandHeader)
		case openings.Window:
			emit(start, end, baseZ, baseZ+o.SillHeight, BandSill)
			emit(start, end, baseZ+o.SillHeight+o.Height, topZ, BandHeader)
		}
		cursor = end
	}
	emit(cursor, length, baseZ, topZ, BandFull)

	if err := checkVolume(wall, sorted, pieces); err != nil {
		return nil, err
	}
	return pieces, nil
}

// checkVolume asserts conservation: carved pieces plus opening extents must
// exactly reconstitute the original wall volume.
func checkVolume(wall floorplan.WallSegment, opens []openings.Opening, pieces []Piece) error {
	total := 0.0
	for _, p := range pieces {
		total += p.Bounds.Volume()
	}
	for _, o := range opens {
		total += o.Width * wall.Thickness * o.Height
	}

	want := wall.Length() * wall.Thickness * wall.Height
	if diff := total - want; diff > 1e-6 || diff < -1e-6 {
		return &Error{
			WallID: wall.ID,
			Reason: fmt.Sprintf("volume mismatch: pieces+openings %.9f, wall %.9f", total, want),
		}
	}
	return nil
}

// intervalBox builds the world-space prism for the along-wall interval
// [a, b] and vertical band [z1, z2], centered on the wall line.
func intervalBox(wall floorplan.WallSegment, a, b, z1, z2 float64) geom.AABB {
	half := wall.Thickness / 2
	if geom.NearlyEqual(wall.Y1, wall.Y2) {
		// Wall runs along X.
		return geom.AABB{
			Min: geom.Vec3{X: wall.X1 + a, Y: wall.Y1 - half, Z: z1},
			Max: geom.Vec3{X: wall.X1 + b, Y: wall.Y1 + half, Z: z2},
		}
	}
	return geom.AABB{
		Min: geom.Vec3{X: wall.X1 - half, Y: wall.Y1 + a, Z: z1},
		Max: geom.Vec3{X: wall.X1 + half, Y: wall.Y1 + b, Z: z2},
	}
}
