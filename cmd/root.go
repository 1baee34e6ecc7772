package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pixprep",
	Short: "pixprep - batch image normalizer",
	Long: "pixprep crops uniform white borders from images, pads them onto a fixed-minimum\n" +
		"white canvas and re-encodes them under a byte budget, one batch at a time.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
