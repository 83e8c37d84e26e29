package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"vizcast/internal"
	"vizcast/internal/cli"
	"vizcast/internal/logger"
	"vizcast/internal/smartcast"
)

var (
	tvHost     string
	tvToken    string
	tvType     string
	tvDeviceID string
	tvDebug    bool

	launchAppID     string
	launchNameSpace int
	launchMessage   string
)

var tvCmd = &cobra.Command{
	Use:   "tv",
	Short: "Control a SmartCast device directly",
	Long: `Send commands to a Vizio SmartCast device. The target comes from
--host/--token, or from a saved device (--device, or the registry default).`,
}

// resolveTarget picks the device to talk to: explicit --host wins,
// otherwise a saved registry entry
func resolveTarget() (host, token string, deviceType smartcast.DeviceType, err error) {
	if tvHost != "" {
		deviceType = smartcast.DeviceTypeTV
		if tvType != "" {
			deviceType = smartcast.DeviceType(tvType)
		}
		return tvHost, tvToken, deviceType, nil
	}

	manager := cli.NewConfigManager(configPath)

	var saved *cli.DeviceConfig
	if tvDeviceID != "" {
		saved, err = manager.GetDevice(tvDeviceID)
	} else {
		saved, err = manager.GetDefaultDevice()
	}
	if err != nil {
		return "", "", "", fmt.Errorf("no target device: %w (use --host or pair a device first)", err)
	}

	return saved.Address, saved.AuthToken, smartcast.DeviceType(saved.Type), nil
}

func tvClient() (*smartcast.SmartCastClient, error) {
	if tvDebug {
		logger.SetSilentMode(false)
		logger.SetLevel("debug")
	}

	host, token, deviceType, err := resolveTarget()
	if err != nil {
		return nil, err
	}

	options := internal.FnModeOptions{Debug: tvDebug}
	return smartcast.NewSmartCastClient(host, token, deviceType, options), nil
}

var tvKeyCmd = &cobra.Command{
	Use:   "key [name]",
	Short: "Send a remote key press",
	Long:  `Send a remote key press. Run 'vizcast tv keys' for available names.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, exists := smartcast.KeyByName[args[0]]
		if !exists {
			return fmt.Errorf("unknown key: %s", args[0])
		}

		client, err := tvClient()
		if err != nil {
			return err
		}

		if err := client.KeyPress(key); err != nil {
			return err
		}

		fmt.Printf("Sent key '%s'\n", args[0])
		return nil
	},
}

var tvKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List available key names",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := make([]string, 0, len(smartcast.KeyByName))
		for name := range smartcast.KeyByName {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("Available keys:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

var tvLaunchCmd = &cobra.Command{
	Use:   "launch [app name]",
	Short: "Launch an app by name or explicit config",
	Long: `Launch an app by catalog name (e.g. 'vizcast tv launch Netflix'), or by
explicit config with --app-id and --namespace for apps not in the catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := tvClient()
		if err != nil {
			return err
		}

		if launchAppID != "" {
			var message *string
			if launchMessage != "" {
				message = &launchMessage
			}
			config := smartcast.NewAppConfig(launchAppID, launchNameSpace, message)
			if err := client.LaunchApp(config); err != nil {
				return err
			}
			fmt.Printf("Launched app %s (namespace %d)\n", launchAppID, launchNameSpace)
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("an app name or --app-id is required")
		}

		if _, found := smartcast.FindAppByName(args[0]); !found {
			fmt.Printf("Warning: %q is not in the app catalog; the device will likely ignore the request\n", args[0])
		}

		if err := client.LaunchAppByName(args[0]); err != nil {
			return err
		}

		fmt.Printf("Launched %s\n", args[0])
		return nil
	},
}

var tvAppsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List known apps",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Known apps:")
		for _, name := range smartcast.AppNames() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

var tvCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the currently running app",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := tvClient()
		if err != nil {
			return err
		}

		config, err := client.CurrentApp()
		if err != nil {
			return err
		}

		switch name := smartcast.CurrentAppName(config); name {
		case smartcast.NoAppRunning:
			fmt.Println("No app running")
		case smartcast.UnknownApp:
			data, _ := json.Marshal(config)
			fmt.Printf("Unknown app: %s\n", string(data))
		default:
			fmt.Println(name)
		}
		return nil
	},
}

var tvPowerCmd = &cobra.Command{
	Use:   "power [on|off|toggle|status]",
	Short: "Control or query device power",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := tvClient()
		if err != nil {
			return err
		}

		switch args[0] {
		case "on":
			return client.PowerOn()
		case "off":
			return client.PowerOff()
		case "toggle":
			return client.PowerToggle()
		case "status":
			on, err := client.PowerState()
			if err != nil {
				return err
			}
			if on {
				fmt.Println("on")
			} else {
				fmt.Println("off")
			}
			return nil
		default:
			return fmt.Errorf("unknown power action: %s", args[0])
		}
	},
}

var tvVolumeCmd = &cobra.Command{
	Use:   "volume [up|down|mute|status]",
	Short: "Control or query volume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := tvClient()
		if err != nil {
			return err
		}

		switch args[0] {
		case "up":
			return client.KeyPress(smartcast.KeyVolumeUp)
		case "down":
			return client.KeyPress(smartcast.KeyVolumeDown)
		case "mute":
			return client.KeyPress(smartcast.KeyMuteToggle)
		case "status":
			level, err := client.Volume()
			if err != nil {
				return err
			}
			fmt.Println(level)
			return nil
		default:
			return fmt.Errorf("unknown volume action: %s", args[0])
		}
	},
}

var tvInputCmd = &cobra.Command{
	Use:   "input [list|current|set NAME]",
	Short: "Control or query the active input",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := tvClient()
		if err != nil {
			return err
		}

		switch args[0] {
		case "list":
			inputs, err := client.ListInputs()
			if err != nil {
				return err
			}
			for _, input := range inputs {
				fmt.Println(input)
			}
			return nil
		case "current":
			input, err := client.CurrentInput()
			if err != nil {
				return err
			}
			fmt.Println(input)
			return nil
		case "set":
			if len(args) != 2 {
				return fmt.Errorf("input set requires a name")
			}
			return client.SetInput(args[1])
		default:
			return fmt.Errorf("unknown input action: %s", args[0])
		}
	},
}

func init() {
	tvCmd.PersistentFlags().StringVarP(&tvHost, "host", "H", "", "SmartCast device address")
	tvCmd.PersistentFlags().StringVarP(&tvToken, "token", "t", "", "Pairing auth token")
	tvCmd.PersistentFlags().StringVar(&tvType, "type", "", "Device type: tv or speaker")
	tvCmd.PersistentFlags().StringVarP(&tvDeviceID, "device", "D", "", "Saved device ID from the registry")
	tvCmd.PersistentFlags().BoolVarP(&tvDebug, "debug", "d", false, "Enable debug logging")

	tvLaunchCmd.Flags().StringVar(&launchAppID, "app-id", "", "Explicit APP_ID")
	tvLaunchCmd.Flags().IntVar(&launchNameSpace, "namespace", 0, "Explicit NAME_SPACE")
	tvLaunchCmd.Flags().StringVar(&launchMessage, "message", "", "Optional launch MESSAGE payload")

	tvCmd.AddCommand(tvKeyCmd)
	tvCmd.AddCommand(tvKeysCmd)
	tvCmd.AddCommand(tvLaunchCmd)
	tvCmd.AddCommand(tvAppsCmd)
	tvCmd.AddCommand(tvCurrentCmd)
	tvCmd.AddCommand(tvPowerCmd)
	tvCmd.AddCommand(tvVolumeCmd)
	tvCmd.AddCommand(tvInputCmd)
}
