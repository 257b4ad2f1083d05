package cmd

import (
	"fmt"
	"os"

	"camconsole/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var jsonOutput bool

var cfg *config.Config

// rootCmd represents the base command; without a subcommand it opens the console.
var rootCmd = &cobra.Command{
	Use:   "camconsole",
	Short: "Browse and switch surveillance cameras of a game host",
	Long: `A terminal camera console. Lists the host's cameras, searches them,
shows them on a minimap and asks the host to switch the viewed camera.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(viper.GetViper(), cfgFile); err != nil {
			return err
		}
		loaded, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE:          runConsole,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.camconsole.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	rootCmd.PersistentFlags().String("transport", "", "host transport: websocket, http or local")
	rootCmd.PersistentFlags().String("url", "", "host URL")
	rootCmd.PersistentFlags().String("local-fixture", "", "camera fixture for the local transport")
	_ = viper.BindPFlag("host.transport", rootCmd.PersistentFlags().Lookup("transport"))
	_ = viper.BindPFlag("host.url", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("host.fixture", rootCmd.PersistentFlags().Lookup("local-fixture"))
}
