package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"vizcast/internal"
	"vizcast/internal/bridge"
	"vizcast/internal/logger"
)

var (
	bridgeAddress   string
	bridgeDBPath    string
	bridgeJWTSecret string
	bridgeDebug     bool
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Run the REST bridge server",
	Long: `Run an authenticated REST API that proxies actions to registered
SmartCast devices, for integrations that can't speak the device protocol.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetSilentMode(false)
		if bridgeDebug {
			logger.SetLevel("debug")
		}

		if bridgeJWTSecret == "" {
			bridgeJWTSecret = os.Getenv("VIZCAST_JWT_SECRET")
		}
		if bridgeJWTSecret == "" {
			return fmt.Errorf("a JWT secret is required (--jwt-secret or VIZCAST_JWT_SECRET)")
		}

		database, err := bridge.NewDatabase(bridgeDBPath)
		if err != nil {
			return err
		}
		defer database.Close()

		options := internal.FnModeOptions{Debug: bridgeDebug}
		server := bridge.NewAPIServer(database, bridgeJWTSecret, options)

		log := logger.New()
		log.Info().
			Str("address", bridgeAddress).
			Str("db", bridgeDBPath).
			Msg("Starting bridge")

		return server.Start(bridgeAddress)
	},
}

func init() {
	bridgeCmd.Flags().StringVarP(&bridgeAddress, "address", "a", ":8090", "Listen address")
	bridgeCmd.Flags().StringVar(&bridgeDBPath, "db", "vizcast.db", "SQLite database path")
	bridgeCmd.Flags().StringVar(&bridgeJWTSecret, "jwt-secret", "", "JWT signing secret")
	bridgeCmd.Flags().BoolVarP(&bridgeDebug, "debug", "d", false, "Enable debug logging")
}
