package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show settings and history information",
	Long:  `Display the database location, saved settings, solve counts and the last smart cube used.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	stateFile, err := loadState()
	if err != nil {
		return err
	}
	state := stateFile.State()

	fmt.Println("cubesim Status")
	fmt.Println("==============")
	fmt.Println()

	path := getDBPath(state)
	if path == "" {
		path, _ = storage.DefaultDBPath()
	}
	fmt.Printf("Database:        %s\n", path)

	db, err := openDB(state)
	if err == nil {
		defer db.Close()
		if v, err := db.CurrentVersion(); err == nil {
			fmt.Printf("Schema version:  %d\n", v)
		}

		solveRepo := storage.NewSolveRepository(db)
		if last, err := solveRepo.GetLast(); err == nil && last != nil {
			fmt.Printf("Last solve:      %s\n", last.StartedAt.Local().Format(time.RFC3339))
		}
		if all, err := solveRepo.List(10000); err == nil {
			solved := 0
			for _, s := range all {
				if s.Solved {
					solved++
				}
			}
			fmt.Printf("Total solves:    %d (%d solved)\n", len(all), solved)
		}
	} else {
		fmt.Printf("Database error:  %v\n", err)
	}
	fmt.Println()

	fmt.Printf("Turn duration:   %s\n", state.TurnDuration())
	fmt.Printf("Scramble length: %d\n", state.Scramble())
	fmt.Println()

	if state.LastDeviceAddress != "" {
		fmt.Printf("Last device: %s (%s)\n", state.LastDeviceName, state.LastDeviceAddress)
	} else {
		fmt.Println("No device history")
	}

	return nil
}
