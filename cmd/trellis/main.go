// Package main provides the entry point for the Trellis TUI application.
//
// Trellis is a keyboard-driven kanban board client: tasks live in category
// columns, parents can expand one level of subtasks, and every mutation is
// applied optimistically and reconciled against the task service.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/trellisboard/trellis/internal/app"
	"github.com/trellisboard/trellis/internal/config"
)

func main() {
	var (
		apiURL      string
		token       string
		workspaceID int64
	)

	rootCmd := &cobra.Command{
		Use:   "trellis",
		Short: "Keyboard-driven kanban board for Trellis workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			// CLI flags override file config
			if apiURL != "" {
				cfg.API.BaseURL = apiURL
			}
			if token != "" {
				cfg.API.Token = token
			}
			if workspaceID != 0 {
				cfg.API.WorkspaceID = workspaceID
			}

			if cfg.API.WorkspaceID == 0 {
				return fmt.Errorf("no workspace configured: set --workspace or api.workspaceId in .trellis.json")
			}

			model := app.New(cfg)
			p := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running program: %w", err)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "task service base URL")
	rootCmd.Flags().StringVar(&token, "token", "", "API bearer token")
	rootCmd.Flags().Int64Var(&workspaceID, "workspace", 0, "workspace id")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
