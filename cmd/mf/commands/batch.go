package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mfactor/manifold/internal/printer"
	"github.com/mfactor/manifold/internal/spec"
)

var (
	batchSpecPath string
	batchOutput   string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate a batch of buildings",
	Long: `Generate every building listed in a batch spec file.

Each building gets its own subdirectory under the batch output directory,
named building-<index>-seed-<seed>, holding that run's manifest.json.
A building that fails does not stop the batch; failures are summarized at
the end.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchSpecPath, "spec", "", "Path to a batch spec file (YAML or JSON)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "output", "Batch output directory")
	batchCmd.Flags().StringVar(&genRegistry, "registry", "_registry", "Asset registry directory")
	batchCmd.MarkFlagRequired("spec")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := spec.LoadBatch(batchSpecPath)
	if err != nil {
		return printer.Error(
			"Invalid batch spec",
			err.Error(),
			[]string{"Check the batch file syntax and each building's field values"},
		)
	}

	outDir := batchOutput
	if batch.Batch.Output != nil && batch.Batch.Output.Directory != "" && !cmd.Flags().Changed("output") {
		outDir = batch.Batch.Output.Directory
	}

	total := len(batch.Batch.Buildings)
	failed := 0
	for i := range batch.Batch.Buildings {
		bs := &batch.Batch.Buildings[i]
		printer.Step("Building %d/%d (%gx%g, %d floor(s), seed %d)\n",
			i+1, total, bs.Width, bs.Depth, bs.Floors, bs.EffectiveSeed())

		dir := filepath.Join(outDir, fmt.Sprintf("building-%d-seed-%d", i, bs.EffectiveSeed()))
		if _, _, err := generateOne(cmd, bs, dir); err != nil {
			printer.Warning("Building %d failed, continuing\n", i+1)
			failed++
			continue
		}
	}

	if failed > 0 {
		return printer.Error(
			"Batch finished with failures",
			fmt.Sprintf("%d of %d buildings failed", failed, total),
			[]string{"Inspect the errors above and rerun the failed entries"},
		)
	}
	printer.Success("Batch complete: %d building(s) written to %s\n", total, outDir)
	return nil
}
