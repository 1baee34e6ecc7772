package cmd

import (
	"github.com/spf13/cobra"

	"pixprep/internal/batch"
	"pixprep/internal/bgremove"
	"pixprep/internal/policy"
)

var (
	removeOutputDir string
	removeZip       bool
	removeRename    bool
	removeBaseName  string
	removeEndpoint  string
	removeQuiet     bool
	removeVerbose   bool
)

var removebgCmd = &cobra.Command{
	Use:   "removebg [flags] <path>...",
	Short: "Remove gray backgrounds (heuristic) or call a segmentation service",
	Long: "Without --endpoint, uniform gray pixels are recolored to white and results stay\n" +
		"opaque JPEG. With --endpoint, the image is alpha-masked against the service's\n" +
		"foreground confidence and written as PNG.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := batch.Options{
			Mode:     batch.ModeRemoveBackground,
			Layout:   policy.Default(),
			Rename:   removeRename,
			BaseName: removeBaseName,
		}
		if removeEndpoint != "" {
			opts.Segmenter = bgremove.NewHTTPSegmenter(removeEndpoint)
		}
		return executeBatch(cmd.Context(), args, opts, removeOutputDir, removeZip, removeQuiet, removeVerbose)
	},
}

func init() {
	removebgCmd.Flags().StringVarP(&removeOutputDir, "output", "o", "processed", "destination folder for results")
	removebgCmd.Flags().BoolVar(&removeZip, "zip", false, "bundle results into "+batch.ArchiveName)
	removebgCmd.Flags().BoolVar(&removeRename, "rename", false, "rename outputs from a base name")
	removebgCmd.Flags().StringVar(&removeBaseName, "base", "", "base name for renaming (default: first file's sanitized stem)")
	removebgCmd.Flags().StringVar(&removeEndpoint, "endpoint", "", "segmentation service URL (empty: local gray heuristic)")
	removebgCmd.Flags().BoolVarP(&removeQuiet, "quiet", "q", false, "disable the progress UI")
	removebgCmd.Flags().BoolVarP(&removeVerbose, "verbose", "v", false, "print a per-image detail line after the run")

	rootCmd.AddCommand(removebgCmd)
}
