package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ukaji3/rostergrid/pkg/rostergrid"
	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
	"github.com/ukaji3/rostergrid/pkg/rostergrid/output"
)

var (
	columnName   string
	filterColumn string
	setValues    []string
	rowIndices   []int
	filterValues []string
)

// addWriteFlags registers the flags shared by commands that write a workbook.
func addWriteFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&outputPath, "output", "o", "", "Output file path (default: overwrite the input)")
	fs.StringVar(&summaryColumn, "summary", "", "Add a count chart sheet for this column")
}

func newAddColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-column [input.xlsx]",
		Short: "Append an empty column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editFile(cmd, args[0], func(s *rostergrid.Store) error {
				return s.AddColumn(columnName)
			}, fmt.Sprintf("New column '%s' added.", columnName))
		},
	}
	cmd.Flags().StringVar(&columnName, "name", "", "Name of the new column")
	addWriteFlags(cmd.Flags())
	return cmd
}

func newAddRowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-row [input.xlsx]",
		Short: "Append a row; the last-modified column is set automatically",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(setValues)
			if err != nil {
				return err
			}
			return editFile(cmd, args[0], func(s *rostergrid.Store) error {
				return s.AddRow(values)
			}, "New row added.")
		},
	}
	cmd.Flags().StringArrayVar(&setValues, "set", nil, "Column value as column=value (repeatable)")
	addWriteFlags(cmd.Flags())
	return cmd
}

func newDeleteRowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-rows [input.xlsx]",
		Short: "Delete rows by 0-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editFile(cmd, args[0], func(s *rostergrid.Store) error {
				return s.DeleteRows(rowIndices)
			}, "Selected row(s) deleted.")
		},
	}
	cmd.Flags().IntSliceVar(&rowIndices, "row", nil, "Row index to delete (repeatable)")
	addWriteFlags(cmd.Flags())
	return cmd
}

func newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter [input.xlsx]",
		Short: "Keep rows whose column value is one of --value",
		Long: `filter keeps the rows whose value in --column matches one of the --value
flags. Without any --value every row is kept. The result is written to -o as
xlsx, or printed as JSON when -o is not given.`,
		Args: cobra.ExactArgs(1),
		RunE: runFilter,
	}
	cmd.Flags().StringVar(&filterColumn, "column", "", "Column to filter on (default: filter_column from the config)")
	cmd.Flags().StringArrayVar(&filterValues, "value", nil, "Allowed value (repeatable)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: JSON to stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func runFilter(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore(cmd, args[0])
	if err != nil {
		return err
	}
	column := filterColumn
	if !cmd.Flags().Changed("column") {
		column = cfg.FilterColumn
	}

	allowed := make([]models.Value, 0, len(filterValues))
	for _, v := range filterValues {
		allowed = append(allowed, cliValue(v))
		// Numeric cells match their text form too.
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			allowed = append(allowed, models.Number(f))
		}
	}
	filtered, err := store.FilterBy(column, allowed)
	if err != nil {
		return err
	}

	if outputPath == "" {
		jsonData, err := output.ToJSON(filtered, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	}

	result := rostergrid.NewStore(rostergrid.Options{TimestampColumn: store.TimestampColumn()})
	if err := result.LoadTable(filtered); err != nil {
		return err
	}
	return result.ExportFile(outputPath, rostergrid.ExportOptions{})
}

// editFile loads inputPath, applies op and writes the result.
func editFile(cmd *cobra.Command, inputPath string, op func(*rostergrid.Store) error, success string) error {
	store, _, err := openStore(cmd, inputPath)
	if err != nil {
		return err
	}
	if err := op(store); err != nil {
		return err
	}

	dest := outputPath
	if dest == "" {
		dest = inputPath
	}
	if err := store.ExportFile(dest, rostergrid.ExportOptions{SummaryColumn: summaryColumn}); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), success)
	return nil
}

// parseAssignments turns column=value flags into row values.
func parseAssignments(pairs []string) (map[string]models.Value, error) {
	values := make(map[string]models.Value, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: expected column=value", pair)
		}
		values[name] = cliValue(value)
	}
	return values, nil
}

// cliValue stores flag text as-is; an empty string is a blank cell.
func cliValue(s string) models.Value {
	if s == "" {
		return models.Empty()
	}
	return models.String(s)
}
