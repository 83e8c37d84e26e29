package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	cliui "vizcast/cmd/cli"
	"vizcast/internal"
	"vizcast/internal/cli"
	"vizcast/internal/logger"
	"vizcast/internal/smartcast"
)

var (
	remoteHost     string
	remoteToken    string
	remoteType     string
	remoteDeviceID string
	remoteDebug    bool
	remoteTest     bool
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Interactive remote control",
	Long: `Open a terminal remote for a SmartCast device. Arrow keys navigate,
'a' opens the app launcher, 'q' quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if remoteDebug {
			logger.SetSilentMode(false)
			logger.SetLevel("debug")
		}

		host := remoteHost
		token := remoteToken
		deviceType := smartcast.DeviceTypeTV

		if host == "" {
			manager := cli.NewConfigManager(configPath)

			var saved *cli.DeviceConfig
			var err error
			if remoteDeviceID != "" {
				saved, err = manager.GetDevice(remoteDeviceID)
			} else {
				saved, err = manager.GetDefaultDevice()
			}
			if err != nil {
				return fmt.Errorf("no target device: %w (use --host or pair a device first)", err)
			}

			host = saved.Address
			token = saved.AuthToken
			deviceType = smartcast.DeviceType(saved.Type)
		} else if remoteType != "" {
			deviceType = smartcast.DeviceType(remoteType)
		}

		options := internal.FnModeOptions{Debug: remoteDebug, Test: remoteTest}
		dev := smartcast.NewSmartCastRemote(host, token, deviceType, options)

		return cliui.StartRemote(dev, dev.GetDeviceInfo(), remoteDebug, remoteTest)
	},
}

func init() {
	remoteCmd.Flags().StringVarP(&remoteHost, "host", "H", "", "SmartCast device address")
	remoteCmd.Flags().StringVarP(&remoteToken, "token", "t", "", "Pairing auth token")
	remoteCmd.Flags().StringVar(&remoteType, "type", "", "Device type: tv or speaker")
	remoteCmd.Flags().StringVarP(&remoteDeviceID, "device", "D", "", "Saved device ID from the registry")
	remoteCmd.Flags().BoolVarP(&remoteDebug, "debug", "d", false, "Enable debug logging")
	remoteCmd.Flags().BoolVar(&remoteTest, "test", false, "Test mode, do not send commands")
}
