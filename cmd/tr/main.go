// Short alias binary for trellis.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellisboard/trellis/internal/app"
	"github.com/trellisboard/trellis/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.API.WorkspaceID == 0 {
		fmt.Fprintln(os.Stderr, "No workspace configured: set api.workspaceId in .trellis.json")
		os.Exit(1)
	}

	model := app.New(cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
