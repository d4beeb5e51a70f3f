package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ag3/internal/core"
	"github.com/vovakirdan/ag3/internal/platform/tui"
	"github.com/vovakirdan/ag3/internal/storage"
)

// maxListedRuns caps --limit.
const maxListedRuns = 500

var (
	flagLimit       int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run log",
	Long: `Display the best recorded runs and the all-time high score.

Examples:
  ag3 scores
  ag3 scores --limit 25
  ag3 scores -i        # browse in a table`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the run log in a table")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		names := make([]string, len(cfg.Difficulties))
		for i, d := range cfg.Difficulties {
			names[i] = d.Name
		}
		view := core.DefaultViewport()
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			view.Width, view.Height = w, h
		}
		return tui.RunScoreboard(store, names, view.Width, view.Height)
	}

	runs, err := store.TopRuns(core.Clamp(flagLimit, 1, maxListedRuns))
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	high, err := store.LoadHighScore()
	if err != nil {
		return fmt.Errorf("retrieving high score: %w", err)
	}

	fmt.Println("AG~3 // RUN LOG")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'ag3 play' to log the first one!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-5s  %-7s  %-10s  %s\n",
		"Rank", "Score", "Time", "Growth", "Eff", "Freq", "Cause", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-5s  %-7s  %-10s  %s\n",
		"----", "-----", "----", "------", "---", "----", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %06d  %-6s  %-6s  %-5s  %-7s  %-10s  %s\n",
			i+1, r.Score,
			fmt.Sprintf("%ds", r.DurationSecs),
			fmt.Sprintf("+%d", r.Growth),
			fmt.Sprintf("%d%%", r.Efficiency),
			r.Difficulty,
			strings.ToUpper(r.Cause),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	fmt.Printf("Best: %06d\n", high)
	return nil
}
