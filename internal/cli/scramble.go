package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
)

var scrambleCount int

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Generate a random scramble",
	Long: `Generate a random scramble of outer-face quarter turns, print it with
its inverse and the scrambled net.

Use --seed for a repeatable scramble.`,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVarP(&scrambleCount, "count", "n", 0, "Number of turns (default: --scramble or 20)")
}

func runScramble(cmd *cobra.Command, args []string) error {
	stateFile, err := loadState()
	if err != nil {
		return err
	}
	state := stateFile.State()

	log, _, err := newLogger(false)
	if err != nil {
		return err
	}

	n := scrambleCount
	if n <= 0 {
		n = scrambleLength(state)
	}

	cube := cubesim.NewCube()
	seq := cubesim.NewSequencer(cube, sequencerOptions(state, log)...)
	moves, _ := seq.Scramble(n)
	seq.Flush()

	fmt.Printf("Scramble: %s\n", cubesim.FormatMoves(moves))
	fmt.Printf("Inverse:  %s\n", cubesim.FormatMoves(cubesim.InverseMoves(moves)))
	fmt.Println()
	fmt.Print(renderNet(cube, nil, nil))
	return nil
}
