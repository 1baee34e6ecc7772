package cmd

import (
	"github.com/spf13/cobra"

	"pixprep/internal/batch"
	"pixprep/internal/policy"
)

var (
	runOutputDir string
	runZip       bool
	runRename    bool
	runBaseName  string
	runConfig    string
	runQuiet     bool
	runVerbose   bool
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <path>...",
	Short: "Crop white borders, pad onto a white canvas and re-encode",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := policy.Load(runConfig)
		if err != nil {
			return err
		}

		opts := batch.Options{
			Mode:     batch.ModeNormalize,
			Layout:   layout,
			Rename:   runRename,
			BaseName: runBaseName,
		}
		return executeBatch(cmd.Context(), args, opts, runOutputDir, runZip, runQuiet, runVerbose)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOutputDir, "output", "o", "processed", "destination folder for results")
	runCmd.Flags().BoolVar(&runZip, "zip", false, "bundle results into "+batch.ArchiveName)
	runCmd.Flags().BoolVar(&runRename, "rename", false, "rename outputs from a base name")
	runCmd.Flags().StringVar(&runBaseName, "base", "", "base name for renaming (default: first file's sanitized stem)")
	runCmd.Flags().StringVar(&runConfig, "config", "pixprep.yaml", "layout policy file")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "disable the progress UI")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "print a per-image detail line after the run")

	rootCmd.AddCommand(runCmd)
}
