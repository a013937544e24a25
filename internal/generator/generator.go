// Package generator runs the full building pipeline: partition each floor,
// resolve adjacency, plan openings, carve walls, validate the carved solids,
// build slabs and stairs, compute the roof profile, and fill slots from the
// asset registry. Geometry stages are pure; only the slot engine touches
// shared state. A run always returns its Output, partial failures included;
// only specification errors abort before any geometry is produced.
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfactor/manifold/internal/carve"
	"github.com/mfactor/manifold/internal/floorplan"
	"github.com/mfactor/manifold/internal/geom"
	"github.com/mfactor/manifold/internal/openings"
	"github.com/mfactor/manifold/internal/roof"
	"github.com/mfactor/manifold/internal/slabs"
	"github.com/mfactor/manifold/internal/slots"
	"github.com/mfactor/manifold/internal/spec"
	"github.com/mfactor/manifold/internal/stairs"
	"github.com/mfactor/manifold/pkg/registry"
)

// FloorStats is the per-floor summary reported in the manifest.
type FloorStats struct {
	Floor            int   `json:"floor"`
	RoomCount        int   `json:"room_count"`
	DoorCount        int   `json:"door_count"`
	WindowCount      int   `json:"window_count"`
	WallSegmentCount int   `json:"wall_segment_count"`
	NoAccessRooms    []int `json:"no_access_rooms,omitempty"`
	UnfilledSlots    int   `json:"unfilled_slots"`
	CarveErrors      int   `json:"carve_errors"`
	ManifoldDefects  int   `json:"manifold_defects"`
}

// Floor is everything produced for one story.
type Floor struct {
	Stats       FloorStats              `json:"stats"`
	Rooms       []*floorplan.Room       `json:"rooms"`
	Corridors   []*floorplan.Corridor   `json:"corridors"`
	Walls       []floorplan.WallSegment `json:"walls"`
	Openings    []openings.Opening      `json:"openings"`
	Pieces      []carve.Piece           `json:"pieces"`
	Slabs       []slabs.Slab            `json:"slabs"`
	Placements  []slots.Placement       `json:"placements"`
	CarveErrors []string                `json:"carve_errors,omitempty"`
	Defects     []carve.Defect          `json:"defects,omitempty"`
}

// Output is the finished result of a generation run. It is built
// incrementally and never mutated after return.
type Output struct {
	Spec      spec.BuildingSpec `json:"spec"`
	Seed      int64             `json:"seed"`
	Floors    []Floor           `json:"floors"`
	Roof      roof.Profile      `json:"roof"`
	Stairwell *stairs.Stairwell `json:"stairwell,omitempty"`
}

// Generator wires the pipeline to an asset registry.
type Generator struct {
	store slots.Registry
}

// New returns a generator backed by the given registry. A nil registry is
// allowed; every slot then resolves to unfilled.
func New(store slots.Registry) *Generator {
	return &Generator{store: store}
}

// Run generates one building. Specification errors abort before any
// geometry work. Carve errors and manifold defects are local to their wall
// segment and recorded on the floor. Registry failures (lock timeout
// included) stop slot filling but still return the Output built so far, with
// the error alongside so the caller can apply a retry policy.
func (g *Generator) Run(ctx context.Context, bs spec.BuildingSpec) (*Output, error) {
	if err := bs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid building spec: %w", err)
	}

	seed := bs.EffectiveSeed()
	footprint := geom.Rect{Width: bs.Width, Depth: bs.Depth}

	out := &Output{Spec: bs, Seed: seed}

	profile, err := roof.Compute(footprint, bs.Roof.Type, bs.Floors)
	if err != nil {
		return nil, fmt.Errorf("invalid building spec: %w", err)
	}
	out.Roof = profile
	out.Stairwell = stairs.Place(floorplan.Partition(footprint, seed, 0), bs.Floors)

	var slotErr error
	for f := 0; f < bs.Floors; f++ {
		floor := g.buildFloor(ctx, footprint, seed, f, bs.Floors, out.Stairwell, &slotErr)
		out.Floors = append(out.Floors, floor)
		if slotErr != nil {
			break
		}
	}
	return out, slotErr
}

func (g *Generator) buildFloor(ctx context.Context, footprint geom.Rect, seed int64, f, totalFloors int, sw *stairs.Stairwell, slotErr *error) Floor {
	tree := floorplan.Partition(footprint, seed, f)
	layout := floorplan.Resolve(tree, f)
	plan := openings.PlanFloor(layout, seed, f)

	floor := Floor{
		Rooms:     layout.Rooms,
		Corridors: layout.Corridors,
		Walls:     layout.Walls,
		Openings:  plan.Openings,
	}

	// Carve and validate wall by wall. Walls of the same room meet at
	// corners and legitimately share corner volume; the mesh builder merges
	// them, so topology is checked per segment, never across segments.
	baseZ := float64(f) * floorplan.StoryHeight
	byWall := plan.ByWall()
	for _, wall := range layout.Walls {
		pieces, err := carve.Wall(wall, byWall[wall.ID], baseZ)
		if err != nil {
			floor.CarveErrors = append(floor.CarveErrors, err.Error())
			continue
		}
		valid, defects := carve.Validate(pieces)
		floor.Pieces = append(floor.Pieces, valid...)
		floor.Defects = append(floor.Defects, defects...)
	}

	floorHole, ceilHole := slabHoles(sw, f, totalFloors)
	floor.Slabs = slabs.Build(footprint, f, floorHole, ceilHole)

	requested := buildSlots(layout, plan, f, baseZ)
	if g.store == nil {
		for _, s := range requested {
			floor.Placements = append(floor.Placements, slots.Placement{Slot: s, Unfilled: true})
		}
	} else {
		placements, err := slots.NewEngine(g.store, seed, f).Fill(ctx, requested)
		floor.Placements = placements
		if err != nil {
			*slotErr = fmt.Errorf("floor %d: %w", f, err)
		}
	}

	floor.Stats = stats(f, layout, plan, floor)
	return floor
}

// slabHoles decides where the stairwell pierces this story's plates: the
// ground story keeps a solid floor, the top story a solid ceiling.
func slabHoles(sw *stairs.Stairwell, floor, totalFloors int) (floorHole, ceilHole *geom.Rect) {
	if sw == nil {
		return nil, nil
	}
	if floor > 0 {
		floorHole = &sw.Bounds
	}
	if floor < totalFloors-1 {
		ceilHole = &sw.Bounds
	}
	return floorHole, ceilHole
}

// buildSlots derives the slot requests for one floor: one per opening, for
// door and window frames, plus one furniture anchor at each room's center.
// Anchors snap to the modular grid; the list is sorted into canonical order
// so the seeded candidate permutation is the only source of variation
// between runs.
func buildSlots(layout *floorplan.Layout, plan *openings.Plan, floor int, baseZ float64) []slots.Slot {
	var out []slots.Slot

	counts := make(map[openings.Type]int)
	for _, o := range plan.Openings {
		wall := layout.Walls[o.WallID]
		x, y := pointAlongWall(wall, o.Position)
		n := counts[o.Type]
		counts[o.Type]++

		slot := slots.Slot{
			ID:     fmt.Sprintf("%s-%d-%d", o.Type, floor, n),
			Anchor: geom.Vec3{X: geom.Snap(x), Y: geom.Snap(y), Z: baseZ},
			Angle:  o.Angle,
			Tags:   []string{string(o.Type)},
			WallID: o.WallID,
			Floor:  floor,
		}
		if o.Type == openings.Window {
			slot.Anchor.Z = baseZ + o.SillHeight
		}
		out = append(out, slot)
	}

	for _, room := range layout.Rooms {
		out = append(out, slots.Slot{
			ID:     fmt.Sprintf("furniture-%d-%d", floor, room.ID),
			Anchor: geom.Vec3{X: geom.Snap(room.Bounds.X + room.Bounds.Width/2), Y: geom.Snap(room.Bounds.Y + room.Bounds.Depth/2), Z: baseZ},
			Tags:   []string{"furniture"},
			WallID: -1,
			Floor:  floor,
		})
	}
	slots.SortSlots(out)
	return out
}

// pointAlongWall maps a distance along the wall to plan coordinates.
func pointAlongWall(wall floorplan.WallSegment, distance float64) (float64, float64) {
	if geom.NearlyEqual(wall.Y1, wall.Y2) {
		return wall.X1 + distance, wall.Y1
	}
	return wall.X1, wall.Y1 + distance
}

func stats(f int, layout *floorplan.Layout, plan *openings.Plan, floor Floor) FloorStats {
	st := FloorStats{
		Floor:            f,
		RoomCount:        len(layout.Rooms),
		WallSegmentCount: len(layout.Walls),
		NoAccessRooms:    plan.NoAccessRooms,
		CarveErrors:      len(floor.CarveErrors),
		ManifoldDefects:  len(floor.Defects),
	}
	for _, o := range plan.Openings {
		switch o.Type {
		case openings.Door:
			st.DoorCount++
		case openings.Window:
			st.WindowCount++
		}
	}
	for _, p := range floor.Placements {
		if p.Unfilled {
			st.UnfilledSlots++
		}
	}
	return st
}

// IsLockTimeout reports whether a run error was caused by registry lock
// contention and is therefore worth retrying.
func IsLockTimeout(err error) bool {
	return errors.Is(err, registry.ErrLockTimeout)
}
