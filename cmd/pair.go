package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"vizcast/internal"
	"vizcast/internal/cli"
	"vizcast/internal/logger"
	"vizcast/internal/smartcast"
)

var (
	pairHost   string
	pairType   string
	pairName   string
	pairSaveID string
	pairDebug  bool
)

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Pair with a SmartCast device",
	Long: `Pair with a SmartCast device to obtain an auth token. The device shows
a PIN on screen; enter it when prompted. With --save the device and its
token are stored in the registry for later use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if pairDebug {
			logger.SetSilentMode(false)
			logger.SetLevel("debug")
		}

		deviceType := smartcast.DeviceTypeTV
		if pairType != "" {
			deviceType = smartcast.DeviceType(pairType)
		}

		options := internal.FnModeOptions{Debug: pairDebug}
		client := smartcast.NewSmartCastClient(pairHost, "", deviceType, options)

		pairingID := smartcast.NewPairingDeviceID()

		challenge, err := client.StartPairing(pairName, pairingID)
		if err != nil {
			return err
		}

		fmt.Print("Enter the PIN shown on the device: ")
		reader := bufio.NewReader(os.Stdin)
		pin, err := reader.ReadString('\n')
		if err != nil {
			// Best effort cleanup so the device doesn't stay in pairing mode
			_ = client.CancelPairing(pairingID)
			return fmt.Errorf("failed to read pin: %w", err)
		}

		token, err := client.FinishPairing(pairingID, *challenge, strings.TrimSpace(pin))
		if err != nil {
			_ = client.CancelPairing(pairingID)
			return err
		}

		fmt.Printf("Paired successfully. Auth token: %s\n", token)

		if pairSaveID != "" {
			manager := cli.NewConfigManager(configPath)
			err := manager.AddDevice(cli.DeviceConfig{
				ID:        pairSaveID,
				Name:      pairName,
				Type:      string(deviceType),
				Address:   pairHost,
				AuthToken: token,
				PairingID: pairingID,
			})
			if err != nil {
				return fmt.Errorf("paired but failed to save device: %w", err)
			}
			fmt.Printf("Saved as device '%s' in %s\n", pairSaveID, configPath)
		}

		return nil
	},
}

func init() {
	pairCmd.Flags().StringVarP(&pairHost, "host", "H", "", "SmartCast device address")
	pairCmd.Flags().StringVar(&pairType, "type", "tv", "Device type: tv or speaker")
	pairCmd.Flags().StringVar(&pairName, "name", "vizcast", "Client name shown on the device")
	pairCmd.Flags().StringVar(&pairSaveID, "save", "", "Save the paired device in the registry under this ID")
	pairCmd.Flags().BoolVarP(&pairDebug, "debug", "d", false, "Enable debug logging")

	pairCmd.MarkFlagRequired("host")
}
