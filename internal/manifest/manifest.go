// Package manifest persists and presents a generation run: manifest.json on
// disk for the mesh builder, a compact table on stdout for humans.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mfactor/manifold/internal/generator"
)

const FileName = "manifest.json"

// Write serializes the run output as pretty-printed JSON under dir,
// creating the directory if needed. Returns the manifest path.
func Write(dir string, out *generator.Output) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// Read loads a previously written manifest.
func Read(path string) (*generator.Output, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var out generator.Output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &out, nil
}

// FormatTable writes the per-floor statistics as a formatted table.
// Returns the number of floors formatted.
func FormatTable(w io.Writer, out *generator.Output) int {
	fmt.Fprintf(w, "Building %gx%g, %d floor(s), seed %d, roof %s:\n\n",
		out.Spec.Width, out.Spec.Depth, out.Spec.Floors, out.Seed, out.Roof.Type)

	fmt.Fprintf(w, "%-6s %-6s %-6s %-8s %-6s %-9s %-8s %s\n",
		"FLOOR", "ROOMS", "DOORS", "WINDOWS", "WALLS", "NO-ACCESS", "UNFILLED", "DEFECTS")
	fmt.Fprintf(w, "%-6s %-6s %-6s %-8s %-6s %-9s %-8s %s\n",
		"------", "------", "------", "--------", "------", "---------", "--------", "-------")

	for _, floor := range out.Floors {
		st := floor.Stats
		fmt.Fprintf(w, "%-6d %-6d %-6d %-8d %-6d %-9d %-8d %d\n",
			st.Floor, st.RoomCount, st.DoorCount, st.WindowCount,
			st.WallSegmentCount, len(st.NoAccessRooms), st.UnfilledSlots,
			st.CarveErrors+st.ManifoldDefects)
	}

	if out.Stairwell != nil {
		fmt.Fprintf(w, "\nStairwell: %gx%g, %d steps per story\n",
			out.Stairwell.Bounds.Width, out.Stairwell.Bounds.Depth, out.Stairwell.StepsPerStory)
	}
	if out.Roof.RidgeHeight > 0 {
		fmt.Fprintf(w, "Roof: ridge %.2fm, slope %.2fm\n", out.Roof.RidgeHeight, out.Roof.SlopeLength)
	}
	return len(out.Floors)
}
