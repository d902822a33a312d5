package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tirewriter/backend/internal/app"
	"tirewriter/backend/internal/logger"
	"tirewriter/backend/internal/tui"
)

var tuiSessionID string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the demo in the terminal",
	Long: `Runs the six demo modules as a full-screen terminal UI.

The session is kept in the configured store, so with SESSION_STORE=redis
a run can be resumed with --session.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// JSON log lines would tear the alternate screen.
	logger.SetLogger(zap.NewNop())

	a, err := app.New(cmd.Context(), cfg, releaseVersion)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer a.Close()

	sessionID := tuiSessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	model, err := tui.New(cmd.Context(), a, sessionID)
	if err != nil {
		return fmt.Errorf("failed to restore session %s: %w", sessionID, err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	fmt.Println("session:", sessionID)
	return nil
}
