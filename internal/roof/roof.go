// Package roof computes the roof profile for a building. Only the
// trigonometry lives here: ridge height and slope length per roof type at a
// fixed pitch. Mesh construction belongs to the host builder.
package roof

import (
	"fmt"
	"math"

	"github.com/mfactor/manifold/internal/floorplan"
	"github.com/mfactor/manifold/internal/geom"
	"github.com/mfactor/manifold/internal/spec"
)

// PitchDegrees is the fixed roof pitch for every sloped roof type.
const PitchDegrees = 35.0

// Profile is the computed roof geometry handed to the mesh builder.
type Profile struct {
	Type        spec.RoofType `json:"type"`
	RidgeHeight float64       `json:"ridge_height"`
	SlopeLength float64       `json:"slope_length"`
	RidgeLength float64       `json:"ridge_length"`
	BaseZ       float64       `json:"base_z"`
}

// Compute derives the profile for a footprint and roof type. The base sits
// on top of the last story. Gabled and hip roofs rise from both eaves to a
// central ridge; a shed roof slopes across the full width; flat roofs have
// zero-height parapet values.
func Compute(footprint geom.Rect, roofType spec.RoofType, floors int) (Profile, error) {
	p := Profile{
		Type:  roofType,
		BaseZ: float64(floors) * floorplan.StoryHeight,
	}
	pitch := PitchDegrees * math.Pi / 180

	// The ridge runs along the longer footprint axis; the slope spans the
	// shorter one.
	span := math.Min(footprint.Width, footprint.Depth)
	run := math.Max(footprint.Width, footprint.Depth)

	switch roofType {
	case spec.RoofFlat:
		// Zero-height parapet, no slope.
	case spec.RoofGabled:
		p.RidgeHeight = (span / 2) * math.Tan(pitch)
		p.SlopeLength = (span / 2) / math.Cos(pitch)
		p.RidgeLength = run
	case spec.RoofHip:
		p.RidgeHeight = (span / 2) * math.Tan(pitch)
		p.SlopeLength = (span / 2) / math.Cos(pitch)
		// Hip ends pull the ridge in from both gable ends at 45 degrees in
		// plan; a square footprint degenerates to a pyramid.
		p.RidgeLength = math.Max(0, run-span)
	case spec.RoofShed:
		p.RidgeHeight = span * math.Tan(pitch)
		p.SlopeLength = span / math.Cos(pitch)
		p.RidgeLength = run
	default:
		return Profile{}, fmt.Errorf("unknown roof type %q", roofType)
	}
	return p, nil
}
