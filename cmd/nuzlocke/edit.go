package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/internal/cache"
	"github.com/mesh-intelligence/nuzlocke/internal/paths"
	"github.com/mesh-intelligence/nuzlocke/internal/tui"
)

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <run-id>",
		Short: "Edit a run's entries interactively",
		Long: `Edit shows the run's entries. Enter opens the editor on the selected
entry; ctrl+s saves, ctrl+d deletes and esc closes it. Logs go to
nuzlocke-tui.log in the data directory.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := a.resolvedDataDir()
			if err != nil {
				return systemError(err)
			}
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return systemError(err)
			}
			logFile, err := os.OpenFile(paths.TUILogPath(dataDir), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return systemError(fmt.Errorf("open log: %w", err))
			}
			defer logFile.Close()
			logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: a.settings.Level()}))

			svc, closeFn, err := a.openTracker(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer closeFn()

			client := cache.NewClient(svc, nil)
			model := tui.NewModel(cmd.Context(), client, args[0], logger)
			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := program.Run(); err != nil {
				return systemError(fmt.Errorf("editor: %w", err))
			}
			return nil
		},
	}
}
