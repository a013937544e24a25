// Package spec defines the parametric building specification and loads it
// from YAML or JSON files.
package spec

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied when a field is absent from flags and spec files.
const (
	DefaultWidth  = 20.0
	DefaultDepth  = 16.0
	DefaultFloors = 1
)

// RoofType is the closed set of supported roof shapes.
type RoofType string

const (
	RoofFlat   RoofType = "flat"
	RoofHip    RoofType = "hip"
	RoofGabled RoofType = "gabled"
	RoofShed   RoofType = "shed"
)

// ParseRoofType validates a roof type string (case-insensitive).
func ParseRoofType(s string) (RoofType, error) {
	switch RoofType(strings.ToLower(s)) {
	case RoofFlat:
		return RoofFlat, nil
	case RoofHip:
		return RoofHip, nil
	case RoofGabled:
		return RoofGabled, nil
	case RoofShed:
		return RoofShed, nil
	case "":
		return RoofFlat, nil
	default:
		return "", fmt.Errorf("unknown roof type: %q (expected flat, hip, gabled, or shed)", s)
	}
}

// BuildingSpec is the immutable parametric input for one generation run.
type BuildingSpec struct {
	Width  float64     `yaml:"width" json:"width"`
	Depth  float64     `yaml:"depth" json:"depth"`
	Floors int         `yaml:"floors" json:"floors"`
	Seed   *int64      `yaml:"seed,omitempty" json:"seed,omitempty"`
	Roof   RoofSpec    `yaml:"roof,omitempty" json:"roof,omitempty"`
	Output *OutputSpec `yaml:"output,omitempty" json:"output,omitempty"`
}

// RoofSpec selects the roof shape for a building.
type RoofSpec struct {
	Type RoofType `yaml:"type,omitempty" json:"type,omitempty"`
}

// OutputSpec overrides where generated artifacts are written.
type OutputSpec struct {
	Directory string `yaml:"directory,omitempty" json:"directory,omitempty"`
}

// BatchSpec is the top-level batch production file.
type BatchSpec struct {
	Batch BatchSection `yaml:"batch" json:"batch"`
}

// BatchSection lists the buildings to produce and their shared output.
type BatchSection struct {
	Output    *OutputSpec    `yaml:"output,omitempty" json:"output,omitempty"`
	Buildings []BuildingSpec `yaml:"buildings" json:"buildings"`
}

// EffectiveSeed returns the spec's seed, defaulting to 0 when unset.
func (s *BuildingSpec) EffectiveSeed() int64 {
	if s.Seed == nil {
		return 0
	}
	return *s.Seed
}

// Validate performs strict validation on the specification. Specification
// errors are fatal and reported before any partitioning begins.
func (s *BuildingSpec) Validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("building width must be positive, got %g", s.Width)
	}
	if s.Depth <= 0 {
		return fmt.Errorf("building depth must be positive, got %g", s.Depth)
	}
	if s.Floors < 1 {
		return fmt.Errorf("building must have at least 1 floor, got %d", s.Floors)
	}
	if _, err := ParseRoofType(string(s.Roof.Type)); err != nil {
		return err
	}
	return nil
}

// specFile accepts both a bare BuildingSpec document and one nested under a
// top-level "building" key.
type specFile struct {
	Building *BuildingSpec `yaml:"building" json:"building"`
}

// Load reads a building spec from a YAML or JSON file. The format is chosen
// by file extension; anything that is not .json is parsed as YAML.
func Load(path string) (*BuildingSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}

	unmarshal := yaml.Unmarshal
	if strings.HasSuffix(path, ".json") {
		unmarshal = json.Unmarshal
	}

	var wrapper specFile
	if err := unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse spec file %s: %w", path, err)
	}

	s := wrapper.Building
	if s == nil {
		s = &BuildingSpec{}
		if err := unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse spec file %s: %w", path, err)
		}
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadBatch reads a batch production spec from a YAML or JSON file.
func LoadBatch(path string) (*BatchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch spec: %w", err)
	}

	unmarshal := yaml.Unmarshal
	if strings.HasSuffix(path, ".json") {
		unmarshal = json.Unmarshal
	}

	var batch BatchSpec
	if err := unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch spec %s: %w", path, err)
	}
	if len(batch.Batch.Buildings) == 0 {
		return nil, fmt.Errorf("batch spec %s defines no buildings", path)
	}

	for i := range batch.Batch.Buildings {
		b := &batch.Batch.Buildings[i]
		b.applyDefaults()
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("batch building %d: %w", i, err)
		}
	}
	return &batch, nil
}

func (s *BuildingSpec) applyDefaults() {
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Depth == 0 {
		s.Depth = DefaultDepth
	}
	if s.Floors == 0 {
		s.Floors = DefaultFloors
	}
	if s.Roof.Type == "" {
		s.Roof.Type = RoofFlat
	}
}
