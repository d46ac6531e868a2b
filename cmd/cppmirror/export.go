package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"cppmirror/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] <manifest.toml>...",
	Short: "Serialize enumerated method metadata to msgpack archives",
	Long:  `Load one or more declaration manifests, enumerate every scope, and write one msgpack archive per manifest for downstream tools`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("out", "o", ".", "output directory for archives")
}

func runExport(cmd *cobra.Command, args []string) error {
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cppmirror",
	})
	if quiet {
		logger.SetLevel(log.ErrorLevel)
	}

	if err := export.ExportAll(args, outDir, logReporter{logger: logger}); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if !quiet {
		logger.Info("export complete", "manifests", len(args), "dir", outDir)
	}
	return nil
}
