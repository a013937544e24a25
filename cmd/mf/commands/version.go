package commands

import (
	"github.com/spf13/cobra"

	"github.com/mfactor/manifold/internal/printer"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		printer.Printf("mf %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
