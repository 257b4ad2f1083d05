package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"camconsole/domain/host"
	"camconsole/domain/selection"
	"camconsole/entity"
	"camconsole/internal/logging"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	searchText  string
	fuzzySearch bool
)

var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "Inspect and switch cameras without the interactive console",
}

var camerasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the host's cameras, sorted by name",
	Example: `  camconsole cameras list --search brig
  camconsole cameras list --search mdb --fuzzy --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := logging.Setup(cfg.Log, false); err != nil {
			return err
		}
		h, err := host.New(cfg.Host)
		if err != nil {
			return err
		}
		defer h.Close()

		snapshot, err := fetchSnapshot(cmd.Context(), h)
		if err != nil {
			return err
		}

		mode := selection.SearchMode(cfg.Search.Mode)
		if fuzzySearch {
			mode = selection.SearchFuzzy
		}
		cameras := selection.SelectCamerasWith(snapshot.Cameras, selection.NewSearch(mode, searchText))

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cameras)
		}
		return printCameras(os.Stdout, cameras, snapshot)
	},
}

var camerasSwitchCmd = &cobra.Command{
	Use:     "switch <name>",
	Short:   "Ask the host to switch to a camera",
	Args:    cobra.ExactArgs(1),
	Example: `  camconsole cameras switch "Bridge"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := logging.Setup(cfg.Log, false); err != nil {
			return err
		}
		h, err := host.New(cfg.Host)
		if err != nil {
			return err
		}
		defer h.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Host.Timeout)
		defer cancel()

		// The websocket transport needs a live connection to send on.
		if _, ok := h.(*host.WebsocketHost); ok {
			if _, err := h.Subscribe(ctx); err != nil {
				return err
			}
		}
		if err := host.SwitchCamera(ctx, h, args[0]); err != nil {
			return err
		}
		fmt.Printf("Requested camera %q.\n", args[0])
		return nil
	},
}

func fetchSnapshot(parent context.Context, h host.Host) (entity.Snapshot, error) {
	ctx, cancel := context.WithTimeout(parent, cfg.Host.Timeout)
	defer cancel()

	updates, err := h.Subscribe(ctx)
	if err != nil {
		return entity.Snapshot{}, err
	}
	select {
	case snapshot, ok := <-updates:
		if !ok {
			return entity.Snapshot{}, errors.New("host closed the connection before sending cameras")
		}
		return snapshot, nil
	case <-ctx.Done():
		return entity.Snapshot{}, fmt.Errorf("waiting for cameras: %w", ctx.Err())
	}
}

func printCameras(out io.Writer, cameras []entity.Camera, snapshot entity.Snapshot) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tZ\tX\tY\tSTATUS\tACTIVE")
	fmt.Fprintln(w, "----\t-\t-\t-\t------\t------")

	for _, cam := range cameras {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
			cam.Name,
			cam.Z,
			cam.X,
			cam.Y,
			cam.Status,
			lo.Ternary(snapshot.IsActive(cam), "*", ""),
		)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(camerasCmd)

	camerasCmd.AddCommand(camerasListCmd)
	camerasCmd.AddCommand(camerasSwitchCmd)

	camerasListCmd.Flags().StringVar(&searchText, "search", "", "Only show cameras matching this text")
	camerasListCmd.Flags().BoolVar(&fuzzySearch, "fuzzy", false, "Match the search characters in order rather than as a substring")
}
