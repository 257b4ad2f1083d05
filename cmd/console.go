package cmd

import (
	"context"
	"fmt"
	"time"

	"camconsole/domain/host"
	"camconsole/domain/selection"
	"camconsole/internal/logging"
	"camconsole/modules/console"
	"camconsole/modules/minimap"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive camera console",
	RunE:  runConsole,
}

func runConsole(cmd *cobra.Command, args []string) error {
	closer, err := logging.Setup(cfg.Log, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	h, err := host.New(cfg.Host)
	if err != nil {
		return err
	}
	defer h.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := console.New(ctx, h, console.Options{
		SearchMode: selection.SearchMode(cfg.Search.Mode),
		Minimap: minimap.Options{
			ZLevel:  cfg.Minimap.ZLevel,
			Width:   cfg.Minimap.Width,
			Height:  cfg.Minimap.Height,
			MaxZoom: cfg.Minimap.MaxZoom,
		},
		Timeout:        cfg.Host.Timeout,
		ReconnectDelay: 2 * time.Second,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
