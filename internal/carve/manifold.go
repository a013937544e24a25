package carve

import (
	"fmt"
	"sort"

	"github.com/mfactor/manifold/internal/geom"
)

// Defect describes a carved component that failed topological validation.
// The component is excluded from handoff; the rest of the floor proceeds.
type Defect struct {
	WallID     int    `json:"wallId"`
	PieceIndex int    `json:"pieceIndex"`
	Reason     string `json:"reason"`
}

func (d Defect) String() string {
	return fmt.Sprintf("wall %d piece %d: %s", d.WallID, d.PieceIndex, d.Reason)
}

// Validate checks carved pieces for topological consistency before handoff
// to the mesh builder. Each connected solid component must satisfy Euler's
// formula V - E + F = 2 for a genus-0 closed solid, and no two pieces may
// occupy overlapping volume. Valid pieces are returned; defective ones are
// reported and withheld.
func Validate(pieces []Piece) ([]Piece, []Defect) {
	var valid []Piece
	var defects []Defect

	bad := make(map[int]string)
	for i, p := range pieces {
		if v, e, f := eulerCounts(p.Bounds); v-e+f != 2 {
			bad[i] = fmt.Sprintf("non-manifold solid: V-E+F = %d", v-e+f)
		}
	}
	for i := range pieces {
		for j := i + 1; j < len(pieces); j++ {
			if pieces[i].Bounds.Overlaps(pieces[j].Bounds) {
				if _, ok := bad[i]; !ok {
					bad[i] = fmt.Sprintf("overlaps piece %d of wall %d", pieces[j].Index, pieces[j].WallID)
				}
				if _, ok := bad[j]; !ok {
					bad[j] = fmt.Sprintf("overlaps piece %d of wall %d", pieces[i].Index, pieces[i].WallID)
				}
			}
		}
	}

	for i, p := range pieces {
		if reason, ok := bad[i]; ok {
			defects = append(defects, Defect{WallID: p.WallID, PieceIndex: p.Index, Reason: reason})
			continue
		}
		valid = append(valid, p)
	}
	return valid, defects
}

// eulerCounts derives vertex, edge, and face counts for a rectangular prism
// with degenerate extents collapsed. A true box yields (8, 12, 6); any
// collapsed dimension loses elements and fails Euler's formula.
func eulerCounts(box geom.AABB) (v, e, f int) {
	xs := []float64{box.Min.X, box.Max.X}
	ys := []float64{box.Min.Y, box.Max.Y}
	zs := []float64{box.Min.Z, box.Max.Z}

	var corners [8][3]float64
	idx := 0
	for _, x := range xs {
		for _, y := range ys {
			for _, z := range zs {
				corners[idx] = [3]float64{x, y, z}
				idx++
			}
		}
	}

	// Formatting with fixed precision quantizes coordinates, so corners
	// within tolerance of each other collapse to one vertex.
	key := func(c [3]float64) string {
		return fmt.Sprintf("%.7f,%.7f,%.7f", c[0], c[1], c[2])
	}

	verts := make(map[string]bool)
	keys := make([]string, 8)
	for i, c := range corners {
		k := key(c)
		keys[i] = k
		verts[k] = true
	}

	// Corner index layout: bit 2 = x, bit 1 = y, bit 0 = z.
	boxEdges := [12][2]int{
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along X
		{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
		{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along Z
	}
	edges := make(map[string]bool)
	for _, ed := range boxEdges {
		a, b := keys[ed[0]], keys[ed[1]]
		if a == b {
			continue // collapsed edge
		}
		if a > b {
			a, b = b, a
		}
		edges[a+"|"+b] = true
	}

	boxFaces := [6][4]int{
		{0, 1, 3, 2}, {4, 5, 7, 6}, // x faces
		{0, 1, 5, 4}, {2, 3, 7, 6}, // y faces
		{0, 2, 6, 4}, {1, 3, 7, 5}, // z faces
	}
	faces := make(map[string]bool)
	for _, fc := range boxFaces {
		unique := make(map[string]bool)
		for _, ci := range fc {
			unique[keys[ci]] = true
		}
		if len(unique) < 3 {
			continue // collapsed face
		}
		ordered := make([]string, 0, len(unique))
		for k := range unique {
			ordered = append(ordered, k)
		}
		sort.Strings(ordered)
		fk := ""
		for _, k := range ordered {
			fk += k + "|"
		}
		faces[fk] = true
	}

	return len(verts), len(edges), len(faces)
}
