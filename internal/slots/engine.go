// Package slots places registry assets onto anchor points produced by the
// opening planner and the floorplan. Every slot resolution happens under the
// registry lock so concurrent generator processes see a consistent inventory.
package slots

import (
	"context"
	"fmt"
	"sort"

	"github.com/mfactor/manifold/internal/geom"
	"github.com/mfactor/manifold/internal/rng"
	"github.com/mfactor/manifold/pkg/registry"
)

// Slot is a named anchor point that wants an asset with particular tags.
type Slot struct {
	ID     string    `json:"id"`
	Anchor geom.Vec3 `json:"anchor"`
	Angle  float64   `json:"angle"`
	Tags   []string  `json:"tags"`
	WallID int       `json:"wall_id"`
	Floor  int       `json:"floor"`
}

// Placement records the outcome for a single slot. Unfilled placements keep
// the slot so callers can report what could not be satisfied.
type Placement struct {
	Slot     Slot                 `json:"slot"`
	Asset    *registry.AssetEntry `json:"asset,omitempty"`
	Bounds   geom.AABB            `json:"bounds"`
	Unfilled bool                 `json:"unfilled"`
}

// Registry is the slice of the asset store the engine needs. Acquire returns
// a release func that must be called once queries for the slot are done.
type Registry interface {
	Acquire(ctx context.Context) (func(), error)
	QueryByTags(required []string) ([]*registry.AssetEntry, error)
}

// Engine resolves slots against a registry, one slot at a time.
type Engine struct {
	store Registry
	src   *rng.Source
}

// NewEngine builds an engine whose candidate ordering is derived from the
// building seed, independent of the other subsystem streams.
func NewEngine(store Registry, seed int64, floor int) *Engine {
	return &Engine{
		store: store,
		src:   rng.ForFloor(seed, "slots", floor),
	}
}

// Fill resolves every slot in order. Slots that cannot be satisfied, either
// because no asset carries the required tags or because every candidate
// collides with an earlier placement, come back marked Unfilled. The only
// errors returned are registry failures, lock timeouts included.
func (e *Engine) Fill(ctx context.Context, in []Slot) ([]Placement, error) {
	placements := make([]Placement, 0, len(in))
	var committed []geom.AABB

	for _, slot := range in {
		candidates, err := e.query(ctx, slot.Tags)
		if err != nil {
			return placements, fmt.Errorf("resolving slot %s: %w", slot.ID, err)
		}

		placement := e.place(slot, candidates, committed)
		if !placement.Unfilled {
			committed = append(committed, placement.Bounds)
		}
		placements = append(placements, placement)
	}
	return placements, nil
}

// query holds the lock only for the duration of a single tag lookup.
func (e *Engine) query(ctx context.Context, tags []string) ([]*registry.AssetEntry, error) {
	release, err := e.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return e.store.QueryByTags(tags)
}

func (e *Engine) place(slot Slot, candidates []*registry.AssetEntry, committed []geom.AABB) Placement {
	// QueryByTags returns candidates in stable name order; a seeded
	// permutation over that order makes the pick deterministic per seed
	// while still varying between seeds.
	for _, idx := range e.src.Perm(len(candidates)) {
		asset := candidates[idx]
		bounds := assetBounds(asset, slot)
		if overlapsAny(bounds, committed) {
			continue
		}
		return Placement{Slot: slot, Asset: asset, Bounds: bounds}
	}
	return Placement{Slot: slot, Unfilled: true}
}

// assetBounds positions the asset's local box, centred on X/Y and grounded
// at Z=0, at the slot anchor with the slot's rotation applied.
func assetBounds(asset *registry.AssetEntry, slot Slot) geom.AABB {
	d := asset.Dimensions
	local := geom.AABB{
		Min: geom.Vec3{X: -d.Width / 2, Y: -d.Depth / 2, Z: 0},
		Max: geom.Vec3{X: d.Width / 2, Y: d.Depth / 2, Z: d.Height},
	}
	return local.RotateZ(slot.Angle).Translate(slot.Anchor.X, slot.Anchor.Y, slot.Anchor.Z)
}

func overlapsAny(b geom.AABB, committed []geom.AABB) bool {
	for _, c := range committed {
		if b.Overlaps(c) {
			return true
		}
	}
	return false
}

// SortSlots puts slots into canonical resolution order: by floor, then wall,
// then ID. The generator normalizes every floor's slot list with this before
// filling, so commit priority depends only on the layout, never on the order
// the slots were derived in.
func SortSlots(in []Slot) {
	sort.Slice(in, func(i, j int) bool {
		if in[i].Floor != in[j].Floor {
			return in[i].Floor < in[j].Floor
		}
		if in[i].WallID != in[j].WallID {
			return in[i].WallID < in[j].WallID
		}
		return in[i].ID < in[j].ID
	})
}
