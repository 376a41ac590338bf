package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/analysis"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	listLimit    int
	trendLimit   int
	showLast     bool
	showJSON     bool
	exportFormat string
	exportOutput string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded solves",
	Long:  `Display a list of recent solve attempts with basic statistics.`,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show details of a solve",
	Long: `Display detailed information about a solve including:
- Solve metadata (duration, moves, TPS)
- Pauses and cancellations
- Scramble and move sequence

Use --last to show the most recent solve.`,
	RunE: runHistoryShow,
}

var historyExportCmd = &cobra.Command{
	Use:   "export [solve-id]",
	Short: "Export moves from a solve",
	Long: `Export the move sequence from a solve in text or JSON format.

Examples:
  cubesim history export --last
  cubesim history export <solve_id> --format json -o moves.json`,
	RunE: runHistoryExport,
}

var historyTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show averages and progress across solves",
	Long: `Analyze recent completed solves: mean, best and worst times, trimmed
averages (ao5, ao12, ...), improvement and consistency.`,
	RunE: runHistoryTrend,
}

var historyPatternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Find move sequences you repeat across solves",
	Long: `Mine the most frequent repeated move sequences (n-grams) of recent
solves, such as the algorithms you reach for most.`,
	RunE: runHistoryPatterns,
}

var (
	patternMinN int
	patternMaxN int
	patternTop  int
)

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <solve-id>",
	Short: "Delete a solve and its moves",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyTrendCmd)
	historyCmd.AddCommand(historyPatternsCmd)

	historyCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of solves to display")

	historyShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent solve")
	historyShowCmd.Flags().BoolVar(&showJSON, "json", false, "Print the summary as JSON")

	historyTrendCmd.Flags().IntVar(&trendLimit, "limit", 100, "Number of recent solves to analyze")
	historyTrendCmd.Flags().BoolVar(&showJSON, "json", false, "Print the report as JSON")

	historyPatternsCmd.Flags().IntVar(&trendLimit, "limit", 100, "Number of recent solves to mine")
	historyPatternsCmd.Flags().IntVar(&patternMinN, "min", 4, "Shortest sequence length")
	historyPatternsCmd.Flags().IntVar(&patternMaxN, "max", 8, "Longest sequence length")
	historyPatternsCmd.Flags().IntVar(&patternTop, "top", 5, "Sequences to show per length")
	historyPatternsCmd.Flags().BoolVar(&showJSON, "json", false, "Print the report as JSON")

	historyExportCmd.Flags().BoolVar(&showLast, "last", false, "Export the most recent solve")
	historyExportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	historyExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func openHistory() (*storage.DB, error) {
	stateFile, err := loadState()
	if err != nil {
		return nil, err
	}
	return openDB(stateFile.State())
}

// resolveSolve finds the solve named by args or --last.
func resolveSolve(repo *storage.SolveRepository, args []string) (*storage.Solve, error) {
	var solve *storage.Solve
	var err error

	switch {
	case showLast:
		solve, err = repo.GetLast()
	case len(args) > 0:
		solve, err = repo.Get(args[0])
	default:
		return nil, fmt.Errorf("please provide a solve ID or use --last")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	if solve == nil {
		return nil, fmt.Errorf("no solve found")
	}
	return solve, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	solveRepo := storage.NewSolveRepository(db)
	solves, err := solveRepo.List(listLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet")
		fmt.Println("Scramble a cube with ctrl+s in: cubesim play")
		return nil
	}

	fmt.Printf("Recent solves (showing %d):\n", len(solves))
	fmt.Println()
	fmt.Printf("%-36s  %-19s  %-10s  %-6s  %-6s  %-9s  %s\n", "ID", "Started", "Duration", "Moves", "TPS", "Source", "Result")
	fmt.Println("------------------------------------  -------------------  ----------  ------  ------  ---------  ------")

	for _, s := range solves {
		duration := "-"
		tps := "-"

		if s.DurationMs != nil {
			duration = formatDuration(time.Duration(*s.DurationMs) * time.Millisecond)
			if *s.DurationMs > 0 && s.MoveCount > 0 {
				tps = fmt.Sprintf("%.2f", analysis.CalculateTPS(s.MoveCount, *s.DurationMs))
			}
		}

		result := "DNF"
		switch {
		case s.EndedAt == nil:
			result = "active"
		case s.Solved:
			result = "solved"
		}

		fmt.Printf("%-36s  %-19s  %-10s  %-6d  %-6s  %-9s  %s\n",
			s.SolveID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			s.MoveCount,
			tps,
			s.Source,
			result,
		)
	}

	if best, err := solveRepo.Best(); err == nil && best != nil && best.DurationMs != nil {
		fmt.Println()
		fmt.Printf("Best: %s (%d moves)\n", formatDuration(time.Duration(*best.DurationMs)*time.Millisecond), best.MoveCount)
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	solve, err := resolveSolve(storage.NewSolveRepository(db), args)
	if err != nil {
		return err
	}

	records, err := storage.NewMoveRepository(db).GetBySolve(solve.SolveID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}
	summary := analysis.Summarize(*solve, analysis.FromRecords(records))
	marks, err := storage.NewPhaseRepository(db).GetMarks(solve.SolveID)
	if err != nil {
		return fmt.Errorf("failed to get phase marks: %w", err)
	}
	summary.Phases = analysis.PhaseSplits(marks)

	if showJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("Solve Details")
	fmt.Println("=============")
	fmt.Println()

	fmt.Printf("ID:      %s\n", solve.SolveID)
	fmt.Printf("Started: %s\n", solve.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if solve.EndedAt != nil {
		fmt.Printf("Ended:   %s\n", solve.EndedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Source:  %s\n", solve.Source)
	fmt.Printf("Solved:  %v\n", solve.Solved)
	fmt.Println()

	fmt.Println("Statistics")
	fmt.Println("----------")
	fmt.Printf("Time:          %s\n", cubesim.FormatElapsed(time.Duration(summary.DurationMs)*time.Millisecond))
	fmt.Printf("Moves:         %d\n", summary.TotalMoves)
	fmt.Printf("TPS:           %.2f\n", summary.TPSOverall)
	fmt.Printf("Avg move:      %.0fms\n", summary.AvgMoveDurationMs)
	fmt.Printf("Longest pause: %dms\n", summary.LongestPauseMs)
	fmt.Printf("Pauses >%dms: %d\n", analysis.PauseThresholdMs, summary.PauseCountOver1500)
	fmt.Printf("Cancellations: %d\n", summary.Cancellations)
	fmt.Printf("Optimized:     %d moves (%.0f%%)\n", summary.OptimizedMoves, summary.Efficiency*100)
	if rep := summary.Repetitions; rep != nil && rep.TotalWastedMoves > 0 {
		fmt.Printf("Wasted moves:  %d\n", rep.TotalWastedMoves)
		for _, p := range rep.BackAndForthPatterns {
			fmt.Printf("  (%s) x%d at move %d\n", strings.Join(p.Pattern, " "), p.Count, p.StartIndex+1)
		}
	}
	if summary.MostUsedFace != "" {
		fmt.Printf("Most used:     %s (%d)\n", summary.MostUsedFace, summary.FaceCounts[summary.MostUsedFace])
	}
	if d := summary.Diagnostics; d != nil && summary.TotalMoves > 0 {
		fmt.Printf("Face entropy:  %.2f bits over %d layers\n", d.FaceEntropy, d.DistinctFaces)
		fmt.Printf("Reversals:     %d (full cycles %d, short loops %d)\n", d.Reversals, d.FullCycles, d.ShortLoops)
		fmt.Printf("D turns:       %d (longest run %d)\n", d.BaseTurns, d.LongestBaseRun)
		if summary.TotalMoves > 1 {
			fmt.Printf("Gaps:          min %dms, avg %.0fms, max %dms\n", d.MinGapMs, d.AvgGapMs, d.MaxGapMs)
			fmt.Printf("Gaps >750/1500/3000ms: %d/%d/%d\n", d.GapsOver750ms, d.GapsOver1500ms, d.GapsOver3000ms)
		}
	}
	fmt.Println()

	if len(summary.Phases) > 0 {
		fmt.Println("Phases")
		fmt.Println("------")
		for _, p := range summary.Phases {
			fmt.Printf("%-24s %s  %3d moves  %.2f TPS\n",
				p.Phase.DisplayName(),
				cubesim.FormatElapsed(time.Duration(p.DurationMs)*time.Millisecond),
				p.MoveCount, p.TPS)
		}
		fmt.Println()
	}

	if solve.ScrambleText != nil {
		fmt.Println("Scramble")
		fmt.Println("--------")
		fmt.Println(*solve.ScrambleText)
		fmt.Println()
	}

	if len(records) > 0 {
		fmt.Println("Moves")
		fmt.Println("-----")
		for _, line := range wrapMoves(storage.ToMoves(records), 60) {
			fmt.Println(line)
		}
	}

	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	solve, err := resolveSolve(storage.NewSolveRepository(db), args)
	if err != nil {
		return err
	}

	moves, err := storage.NewMoveRepository(db).GetBySolve(solve.SolveID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}
	if len(moves) == 0 {
		return fmt.Errorf("no moves found for solve %s", solve.SolveID)
	}

	var output string

	switch strings.ToLower(exportFormat) {
	case "txt":
		output = cubesim.FormatMoves(storage.ToMoves(moves))

	case "json":
		type MoveJSON struct {
			MoveIndex int    `json:"move_index"`
			TsMs      int64  `json:"ts_ms"`
			Face      string `json:"face"`
			Clockwise bool   `json:"clockwise"`
			Notation  string `json:"notation"`
		}

		movesJSON := make([]MoveJSON, 0, len(moves))
		for _, m := range moves {
			movesJSON = append(movesJSON, MoveJSON{
				MoveIndex: m.MoveIndex,
				TsMs:      m.TsMs,
				Face:      m.Face,
				Clockwise: m.Clockwise,
				Notation:  m.Notation,
			})
		}

		data, err := json.MarshalIndent(movesJSON, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		output = string(data)

	default:
		return fmt.Errorf("unknown format: %s (use txt or json)", exportFormat)
	}

	if exportOutput == "" {
		fmt.Println(output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("Exported %d moves to %s\n", len(moves), exportOutput)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)
	solve, err := repo.Get(args[0])
	if err != nil {
		return err
	}
	if solve == nil {
		return fmt.Errorf("solve not found: %s", args[0])
	}
	if err := repo.Delete(solve.SolveID); err != nil {
		return err
	}
	fmt.Printf("Deleted solve %s\n", solve.SolveID)
	return nil
}

func runHistoryTrend(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	solves, err := storage.NewSolveRepository(db).List(trendLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}
	report := analysis.AnalyzeTrends(solves)

	if showJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if report.CompletedSolves == 0 {
		fmt.Println("No completed solves yet")
		return nil
	}

	ms := func(v float64) string {
		return cubesim.FormatElapsed(time.Duration(v) * time.Millisecond)
	}

	fmt.Printf("Trend over %d completed solves (of %d)\n", report.CompletedSolves, report.TotalSolves)
	fmt.Println()
	fmt.Printf("Mean:        %s\n", ms(report.AvgDurationMs))
	fmt.Printf("Best:        %s\n", ms(float64(report.BestSolve.DurationMs)))
	fmt.Printf("Worst:       %s\n", ms(float64(report.WorstSolve.DurationMs)))
	fmt.Printf("Moves:       %.1f\n", report.AvgMoves)
	fmt.Printf("TPS:         %.2f\n", report.AvgTPS)
	for _, n := range analysis.AverageSizes {
		if avg, ok := report.Averages[n]; ok {
			fmt.Printf("ao%-3d        %s\n", n, ms(avg))
		}
	}
	fmt.Printf("Improvement: %+.1f%%\n", report.ImprovementPct)
	fmt.Printf("Consistency: %.0f/100\n", report.ConsistencyScore)
	return nil
}

func runHistoryPatterns(cmd *cobra.Command, args []string) error {
	if patternMinN < 2 || patternMaxN < patternMinN {
		return fmt.Errorf("invalid length range %d..%d", patternMinN, patternMaxN)
	}

	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	solves, err := storage.NewSolveRepository(db).List(trendLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}

	moveRepo := storage.NewMoveRepository(db)
	perSolve := make(map[string]*analysis.NGramReport, len(solves))
	for _, s := range solves {
		records, err := moveRepo.GetBySolve(s.SolveID)
		if err != nil {
			return fmt.Errorf("failed to get moves: %w", err)
		}
		// Per-solve lists are cut generously so merging does not lose
		// sequences that are frequent overall.
		perSolve[s.SolveID] = analysis.MineNGrams(analysis.FromRecords(records), patternMinN, patternMaxN, patternTop*10)
	}
	report := analysis.MineNGramsAcrossSolves(perSolve, patternTop)

	if showJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(report.TopNGrams) == 0 {
		fmt.Println("No repeated sequences found")
		return nil
	}

	fmt.Printf("Repeated sequences over %d solves\n", len(solves))
	for n := patternMinN; n <= patternMaxN; n++ {
		grams := report.TopNGrams[n]
		if len(grams) == 0 {
			continue
		}
		fmt.Println()
		fmt.Printf("Length %d\n", n)
		for _, g := range grams {
			fmt.Printf("  %3dx  %s\n", g.Count, g.Notation())
		}
	}
	return nil
}
