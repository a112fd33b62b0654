// Package main provides the CLI entry point for rostergrid.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/rostergrid/internal/config"
	"github.com/ukaji3/rostergrid/pkg/rostergrid"
	"github.com/ukaji3/rostergrid/pkg/rostergrid/output"
	"github.com/ukaji3/rostergrid/pkg/rostergrid/parser"
)

var (
	configPath      string
	outputPath      string
	pretty          bool
	sheetName       string
	rangeRef        string
	timestampColumn string
	summaryColumn   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rostergrid",
		Short: "Edit spreadsheet rosters with per-row change tracking",
		Long: `rostergrid loads an xlsx table, applies column, row and cell edits,
stamps every changed row with a last-modified time, and writes the result.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: first sheet)")
	rootCmd.PersistentFlags().StringVar(&rangeRef, "range", "", "Restrict reading to a cell range, e.g. A1:F200")
	rootCmd.PersistentFlags().StringVar(&timestampColumn, "timestamp-column", rostergrid.DefaultTimestampColumn, "Name of the last-modified column")

	rootCmd.AddCommand(
		newServeCmd(),
		newInspectCmd(),
		newAddColumnCmd(),
		newAddRowCmd(),
		newDeleteRowsCmd(),
		newFilterCmd(),
	)
	return rootCmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Print the table as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	store, _, err := openStore(cmd, args[0])
	if err != nil {
		return err
	}

	jsonData, err := output.ToJSON(store.Table(), pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

// openStore loads inputPath using the persistent read flags. Settings not
// given on the command line come from the config file.
func openStore(cmd *cobra.Command, inputPath string) (*rostergrid.Store, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("timestamp-column") {
		cfg.TimestampColumn = timestampColumn
	}

	opts := rostergrid.Options{
		TimestampColumn: cfg.TimestampColumn,
		SheetName:       sheetName,
	}
	if rangeRef != "" {
		refSheet, area, err := parser.ParseReference(rangeRef)
		if err != nil {
			return nil, nil, err
		}
		if refSheet != "" && opts.SheetName == "" {
			opts.SheetName = refSheet
		}
		opts.Area = &area
	}

	store := rostergrid.NewStore(opts)
	if err := store.LoadFile(inputPath); err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}
