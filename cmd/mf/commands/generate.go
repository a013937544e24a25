package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfactor/manifold/internal/generator"
	"github.com/mfactor/manifold/internal/manifest"
	"github.com/mfactor/manifold/internal/printer"
	"github.com/mfactor/manifold/internal/spec"
	"github.com/mfactor/manifold/pkg/registry"
)

var (
	genWidth    float64
	genDepth    float64
	genFloors   int
	genSeed     int64
	genRoof     string
	genOutput   string
	genSpecPath string
	genRegistry string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one building",
	Long: `Generate one building from flags or a spec file.

With --spec, the building specification is read from a YAML or JSON file
and any dimension flags are ignored. Without it, the footprint, floor
count, seed, and roof type come from the flags.

The run writes manifest.json into the output directory and prints a
per-floor summary table. Partial failures (carve errors, manifold
defects, unfilled slots) are reported in the table, not fatal.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Float64VarP(&genWidth, "width", "w", spec.DefaultWidth, "Footprint width in meters")
	generateCmd.Flags().Float64VarP(&genDepth, "depth", "d", spec.DefaultDepth, "Footprint depth in meters")
	generateCmd.Flags().IntVarP(&genFloors, "floors", "f", spec.DefaultFloors, "Number of floors")
	generateCmd.Flags().Int64VarP(&genSeed, "seed", "s", 0, "Generation seed")
	generateCmd.Flags().StringVarP(&genRoof, "roof", "r", "flat", "Roof type (flat, hip, gabled, shed)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "output", "Output directory")
	generateCmd.Flags().StringVar(&genSpecPath, "spec", "", "Path to a building spec file (YAML or JSON)")
	generateCmd.Flags().StringVar(&genRegistry, "registry", "_registry", "Asset registry directory")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	bs, err := resolveSpec(cmd)
	if err != nil {
		return err
	}

	outDir := genOutput
	if bs.Output != nil && bs.Output.Directory != "" && !cmd.Flags().Changed("output") {
		outDir = bs.Output.Directory
	}

	out, path, err := generateOne(cmd, bs, outDir)
	if err != nil {
		return err
	}

	manifest.FormatTable(os.Stdout, out)
	printer.Success("Manifest written to %s\n", path)
	return nil
}

// resolveSpec builds the BuildingSpec from --spec or from the flags.
func resolveSpec(cmd *cobra.Command) (*spec.BuildingSpec, error) {
	if genSpecPath != "" {
		bs, err := spec.Load(genSpecPath)
		if err != nil {
			return nil, printer.Error(
				"Invalid building spec",
				err.Error(),
				[]string{"Check the spec file syntax and field values"},
			)
		}
		return bs, nil
	}

	roofType, err := spec.ParseRoofType(genRoof)
	if err != nil {
		return nil, printer.Error(
			"Invalid roof type",
			err.Error(),
			[]string{"Use one of: flat, hip, gabled, shed"},
		)
	}

	bs := &spec.BuildingSpec{
		Width:  genWidth,
		Depth:  genDepth,
		Floors: genFloors,
		Roof:   spec.RoofSpec{Type: roofType},
	}
	if cmd.Flags().Changed("seed") {
		bs.Seed = &genSeed
	}
	if err := bs.Validate(); err != nil {
		return nil, printer.Error(
			"Invalid building spec",
			err.Error(),
			[]string{"Width and depth must be positive; floors must be at least 1"},
		)
	}
	return bs, nil
}

// generateOne runs the pipeline for one building and writes its manifest.
func generateOne(cmd *cobra.Command, bs *spec.BuildingSpec, outDir string) (*generator.Output, string, error) {
	if verbose {
		printer.Step("Generating %gx%g, %d floor(s), seed %d\n",
			bs.Width, bs.Depth, bs.Floors, bs.EffectiveSeed())
	}

	store := registry.NewFileStore(genRegistry)
	out, err := generator.New(store).Run(cmd.Context(), *bs)
	if err != nil {
		if generator.IsLockTimeout(err) {
			return nil, "", printer.Error(
				"Asset registry is busy",
				fmt.Sprintf("Could not acquire the registry lock: %v", err),
				[]string{
					"Wait for concurrent generation runs to finish and retry",
					"Remove a stale inventory.lock if no other run is active",
				},
			)
		}
		return nil, "", printer.Error(
			"Generation failed",
			err.Error(),
			nil,
		)
	}

	path, err := manifest.Write(outDir, out)
	if err != nil {
		return nil, "", printer.Error(
			"Failed to write manifest",
			err.Error(),
			[]string{fmt.Sprintf("Check that %s is writable", outDir)},
		)
	}
	return out, path, nil
}
