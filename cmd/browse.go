package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cratedig/internal/shared"
	"github.com/desertthunder/cratedig/internal/ui"
	"github.com/desertthunder/cratedig/internal/workbook"
	"github.com/urfave/cli/v3"
)

// Browse launches the interactive terminal UI over the results workbook.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/cratedig-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(workbook.NewStore(r.resultsPath(cmd)))
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if err := model.Err(); err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	return nil
}
