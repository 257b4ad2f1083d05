package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"camconsole/domain/camnet"
	"camconsole/internal/logging"
	"camconsole/internal/simhost"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var simhostCmd = &cobra.Command{
	Use:   "simhost",
	Short: "Serve a camera fixture over the host protocol for development",
	Example: `  camconsole simhost --fixture station.yaml --addr :8080
  camconsole --transport http --url http://localhost:8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := logging.Setup(cfg.Log, false); err != nil {
			return err
		}

		fixture, err := camnet.LoadFixture(cfg.Simhost.Fixture)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return simhost.New(cfg.Simhost.Addr, fixture.Network()).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(simhostCmd)

	simhostCmd.Flags().String("addr", "", "listen address (default :8080)")
	simhostCmd.Flags().String("fixture", "", "camera fixture YAML")
	_ = viper.BindPFlag("simhost.addr", simhostCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("simhost.fixture", simhostCmd.Flags().Lookup("fixture"))
}
