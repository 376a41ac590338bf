package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/smartcube"
)

var scanTimeout time.Duration

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror a GoCube smart cube",
	Long: `Connect to a GoCube over Bluetooth and mirror its turns in the TUI.

The on-screen cube must start in the same state as the physical cube, so
solve the GoCube before connecting. Every physical turn is queued and
animated like a keyboard turn; ctrl+s scrambles the on-screen cube only.`,
	RunE: runMirror,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List nearby GoCube devices",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.AddCommand(scanCmd)
	mirrorCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "Bluetooth scan duration")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "Bluetooth scan duration")
}

// scanForCube runs a single scan. 5 seconds is enough for discovery on
// macOS and Linux.
func scanForCube(log *logrus.Logger) (*smartcube.Client, []smartcube.Device, error) {
	fmt.Println("Scanning for GoCube devices...")

	client, err := smartcube.NewClient(log)
	if err != nil {
		return nil, nil, fmt.Errorf("BLE not available: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	devices, err := client.Scan(ctx, scanTimeout)
	if err != nil {
		return client, nil, fmt.Errorf("scan failed: %w", err)
	}
	return client, devices, nil
}

// pickDevice prefers the last device used, then the first one found.
func pickDevice(devices []smartcube.Device, state recorder.AppState) smartcube.Device {
	for _, d := range devices {
		if state.LastDeviceAddress != "" && d.Address == state.LastDeviceAddress {
			return d
		}
	}
	return devices[0]
}

func printNoDevice() {
	fmt.Println("No GoCube devices found.")
	fmt.Println()
	fmt.Println("To fix this:")
	fmt.Println("  1. Rotate your cube to wake it up")
	fmt.Println("  2. Make sure it's not connected to your phone")
	fmt.Println("  3. Run this command again")
}

func runScan(cmd *cobra.Command, args []string) error {
	log, _, err := newLogger(false)
	if err != nil {
		return err
	}

	_, devices, err := scanForCube(log)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		printNoDevice()
		return nil
	}

	fmt.Printf("Found %d device(s):\n", len(devices))
	for _, d := range devices {
		fmt.Printf("  - %s (Address: %s, RSSI: %d)\n", d.Name, d.Address, d.RSSI)
	}
	return nil
}

func runMirror(cmd *cobra.Command, args []string) error {
	setup, err := setupPlay("smartcube")
	if err != nil {
		return err
	}
	defer setup.close()

	// Scan before entering the TUI so prompts stay readable.
	client, devices, err := scanForCube(setup.model.log)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		printNoDevice()
		return nil
	}

	stateFile := setup.stateFile
	target := pickDevice(devices, stateFile.State())

	fmt.Printf("Connecting to %s...\n", target.Name)
	if err := client.Connect(target); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	if err := stateFile.SetLastDevice(target.Address, target.Name); err != nil {
		setup.model.log.WithError(err).Warn("failed to save state")
	}

	setup.model.attach(client)
	return runProgram(setup.model)
}
