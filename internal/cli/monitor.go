package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/smartcube"
)

var monitorRaw bool

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print GoCube messages and track the cube state",
	Long: `Connect to a GoCube and print every message it sends. Turns are applied
to a tracked cube that starts solved; the net is printed when it returns
to solved.

Press Ctrl+C to exit.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&monitorRaw, "raw", false, "Also print payload bytes")
	monitorCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "Bluetooth scan duration")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	log, _, err := newLogger(false)
	if err != nil {
		return err
	}

	client, devices, err := scanForCube(log)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		printNoDevice()
		return nil
	}

	cube := cubesim.NewCube()
	tracker := cubesim.NewTracker(cube)
	tracker.SetSolvedCallback(func(moves int) {
		fmt.Printf("\n>>> SOLVED after %d moves <<<\n\n", moves)
		fmt.Print(renderNet(cube, nil, nil))
	})

	client.OnMessage(func(msg *smartcube.Message) {
		line := fmt.Sprintf("[%s] %-13s", time.Now().Format("15:04:05.000"), smartcube.MessageTypeName(msg.Type))
		if monitorRaw {
			line += " " + hex.EncodeToString(msg.Payload)
		}
		fmt.Println(line)
	})
	client.OnMove(func(m cubesim.Move) {
		if err := tracker.ApplyMove(m); err != nil {
			fmt.Printf("  move error: %v\n", err)
			return
		}
		fmt.Printf("  %-3s moves: %d phase: %s\n", m.Notation(), tracker.Moves(), tracker.Cube().Phase().DisplayName())
	})
	client.OnOrientation(func(o smartcube.Orientation) {
		fmt.Printf("  up: %s front: %s\n", o.UpFace, o.FrontFace)
	})

	target := devices[0]
	if err := client.Connect(target); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer client.Disconnect()

	if err := client.SendCommand(smartcube.CmdEnableOrientation); err != nil {
		log.WithError(err).Warn("failed to enable orientation")
	}

	fmt.Printf("Connected to: %s\n", client.DeviceName())
	fmt.Println("Cube starts SOLVED. Make moves to see them tracked.")
	fmt.Println(strings.Repeat("-", 70))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Println("\nDisconnecting...")
	return nil
}
