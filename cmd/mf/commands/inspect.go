package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mfactor/manifold/internal/manifest"
	"github.com/mfactor/manifold/internal/printer"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect PATH",
	Short: "Inspect a generated manifest",
	Long: `Inspect a generation run from its manifest.

PATH is either a manifest.json file or a directory containing one. Prints
the per-floor statistics table plus the manifest's size on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	out, err := manifest.Read(path)
	if err != nil {
		return printer.Error(
			"Failed to read manifest",
			err.Error(),
			[]string{"Pass a manifest.json file or an output directory containing one"},
		)
	}

	manifest.FormatTable(os.Stdout, out)
	if info, err := os.Stat(path); err == nil {
		printer.Printf("\nManifest: %s (%d bytes)\n", path, info.Size())
	}
	return nil
}
