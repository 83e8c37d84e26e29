package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"vizcast/internal/cli"
)

var (
	addName    string
	addType    string
	addAddress string
	addToken   string
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Manage the saved device registry",
}

var devicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager := cli.NewConfigManager(configPath)

		config, err := manager.LoadConfig()
		if err != nil {
			return err
		}

		if len(config.Devices) == 0 {
			fmt.Println("No devices saved. Pair one with 'vizcast pair --host <ip> --save <id>'.")
			return nil
		}

		for _, device := range config.Devices {
			marker := "  "
			if device.ID == config.Default {
				marker = "* "
			}
			paired := ""
			if device.AuthToken != "" {
				paired = " (paired)"
			}
			fmt.Printf("%s%s  %s  %s  %s%s\n", marker, device.ID, device.Type, device.Address, device.Name, paired)
		}

		return nil
	},
}

var devicesAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Add a device manually",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager := cli.NewConfigManager(configPath)

		err := manager.AddDevice(cli.DeviceConfig{
			ID:        args[0],
			Name:      addName,
			Type:      addType,
			Address:   addAddress,
			AuthToken: addToken,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Added device '%s'\n", args[0])
		return nil
	},
}

var devicesRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a saved device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager := cli.NewConfigManager(configPath)

		if err := manager.RemoveDevice(args[0]); err != nil {
			return err
		}

		fmt.Printf("Removed device '%s'\n", args[0])
		return nil
	},
}

var devicesDefaultCmd = &cobra.Command{
	Use:   "default [id]",
	Short: "Set the default device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager := cli.NewConfigManager(configPath)

		if err := manager.SetDefaultDevice(args[0]); err != nil {
			return err
		}

		fmt.Printf("Default device is now '%s'\n", args[0])
		return nil
	},
}

func init() {
	devicesAddCmd.Flags().StringVar(&addName, "name", "", "Display name")
	devicesAddCmd.Flags().StringVar(&addType, "type", "tv", "Device type: tv or speaker")
	devicesAddCmd.Flags().StringVar(&addAddress, "address", "", "Device address")
	devicesAddCmd.Flags().StringVar(&addToken, "token", "", "Auth token from a previous pairing")
	devicesAddCmd.MarkFlagRequired("address")

	devicesCmd.AddCommand(devicesListCmd)
	devicesCmd.AddCommand(devicesAddCmd)
	devicesCmd.AddCommand(devicesRemoveCmd)
	devicesCmd.AddCommand(devicesDefaultCmd)
}
