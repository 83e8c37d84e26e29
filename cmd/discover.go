package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"vizcast/internal/discovery"
	"vizcast/internal/logger"
)

var discoverTimeout time.Duration

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find SmartCast devices on the local network",
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger.SetSilentMode(false)
		}

		fmt.Printf("Scanning for SmartCast devices (%s)...\n", discoverTimeout)

		discoverer := discovery.NewDiscoverer()
		devices, err := discoverer.Discover(discoverTimeout)
		if err != nil {
			return err
		}

		if len(devices) == 0 {
			fmt.Println("No devices found")
			return nil
		}

		for _, device := range devices {
			fmt.Printf("  %s  %s\n", device.IP, device.Server)
			fmt.Printf("    location: %s\n", device.Location)
		}

		return nil
	},
}

func init() {
	discoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", 3*time.Second, "How long to wait for responses")
}
