package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/notation"
)

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply moves to a solved cube and print it",
	Long: `Apply a move sequence to a solved cube and print the resulting net.

Examples:
  cubesim apply "R U R' U'"
  cubesim apply M2 E2 S2
  cubesim apply --spoken "R U R' U'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

var applySpoken bool

func init() {
	applyCmd.Flags().BoolVar(&applySpoken, "spoken", false, "Also print the moves as spoken phrases")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	moves, err := cubesim.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}

	log, _, err := newLogger(false)
	if err != nil {
		return err
	}

	cube := cubesim.NewCube()
	seq := cubesim.NewSequencer(cube, cubesim.WithLogger(log))
	for _, m := range moves {
		if _, err := seq.Turn(m); err != nil {
			return err
		}
	}
	seq.Flush()

	fmt.Printf("Moves:  %s (%d)\n", cubesim.FormatMoves(moves), len(moves))
	if applySpoken {
		fmt.Printf("Spoken: %s\n", notation.FormatSpoken(moves))
	}
	fmt.Println()
	fmt.Print(renderNet(cube, nil, nil))
	fmt.Println()
	fmt.Printf("Solved: %v\n", cube.IsSolved())
	fmt.Printf("Phase:  %s\n", cube.Phase().DisplayName())
	return nil
}
