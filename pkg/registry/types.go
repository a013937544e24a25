// Package registry provides type-safe access to the shared asset inventory.
// The inventory is process-wide state: many generation runs, possibly in
// separate processes, read it concurrently while assets are registered into
// it. All access goes through a cross-process file lock with a bounded wait,
// acquired for the minimal section touching the inventory and released on
// every exit path.
package registry

import (
	"time"

	"github.com/google/uuid"
)

// Dimensions is an asset's bounding size in meters.
type Dimensions struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// AssetEntry is one registered asset. Entries are read-mostly and looked up
// by tag; the slot engine treats the tag set as the asset's capabilities.
type AssetEntry struct {
	ID         string            `json:"id"`   // UUID
	Name       string            `json:"name"` // unique inventory key
	Tags       []string          `json:"tags"`
	Dimensions Dimensions        `json:"dimensions"`
	SourceFile string            `json:"sourceFile,omitempty"`
	Seed       int64             `json:"seed"`
	CreatedAt  time.Time         `json:"createdAt"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// HasTags reports whether the entry's tag set is a superset of required.
func (e *AssetEntry) HasTags(required []string) bool {
	have := make(map[string]bool, len(e.Tags))
	for _, t := range e.Tags {
		have[t] = true
	}
	for _, t := range required {
		if !have[t] {
			return false
		}
	}
	return true
}

// NewAssetEntry creates an entry with a fresh UUID and creation timestamp.
func NewAssetEntry(name string, tags []string, dims Dimensions, seed int64) *AssetEntry {
	return &AssetEntry{
		ID:         uuid.New().String(),
		Name:       name,
		Tags:       tags,
		Dimensions: dims,
		Seed:       seed,
		CreatedAt:  time.Now().UTC(),
	}
}

// inventory is the persisted form of the registry, keyed by asset name.
type inventory struct {
	Assets map[string]*AssetEntry `json:"assets"`
}
