// Package cli implements the command-line interface for cubesim.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const version = "0.2.0"

var (
	// Global flags
	dbPath       string
	verbose      bool
	turnDuration time.Duration
	scrambleLen  int
	seed         int64
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesim",
	Short: "Rubik's Cube simulator",
	Long: `cubesim - A terminal Rubik's Cube simulator and solve timer.

Turn layers from the keyboard or by dragging stickers with the mouse,
scramble and time your solves, mirror a GoCube smart cube over Bluetooth,
and browse the history of recorded attempts.`,
	Version:      version,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubesim/cubesim.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().DurationVar(&turnDuration, "duration", 0, "Turn animation duration (default: 300ms)")
	rootCmd.PersistentFlags().IntVar(&scrambleLen, "scramble", 0, "Scramble length (default: 20)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed for scrambles (0 = random)")
}
