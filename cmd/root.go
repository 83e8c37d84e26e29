package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"vizcast/internal/logger"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "vizcast",
	Short: "Vizcast - control Vizio SmartCast TVs and speakers",
	Long: `Vizcast controls Vizio SmartCast devices over their local HTTPS API.
It can pair with devices, send remote key presses, launch apps, query
what's running, and expose registered devices over a REST bridge.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetSilentMode(false)
			logger.SetLevel("debug")
		}
		if configPath == "" {
			configPath = defaultConfigPath()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "device registry path (default ~/.vizcast.yaml)")

	// Add subcommands
	rootCmd.AddCommand(tvCmd)
	rootCmd.AddCommand(pairCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(bridgeCmd)
	rootCmd.AddCommand(remoteCmd)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vizcast.yaml"
	}
	return filepath.Join(home, ".vizcast.yaml")
}
