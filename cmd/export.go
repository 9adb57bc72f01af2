package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/cratedig/internal/formatter"
	"github.com/desertthunder/cratedig/internal/workbook"
	"github.com/urfave/cli/v3"
)

// Export renders the results workbook in another format, to a file or stdout.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	outputPath := cmd.String("output")
	resultsPath := r.resultsPath(cmd)

	table, err := workbook.LoadResults(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	r.logger.Info("exporting results", "rows", table.Len(), "format", format)

	if outputPath == "" {
		data, err := formatter.Render(table, format)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	if err := formatter.WriteExport(table, format, outputPath); err != nil {
		return err
	}

	r.writePlain("✓ Exported %d rows to %s\n", table.Len(), outputPath)
	return nil
}
