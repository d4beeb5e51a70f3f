// ag3 is the AG~3 snake game for the terminal.
//
// Usage:
//
//	ag3 play                 - Play in this terminal
//	ag3 serve                - Start SSH server for remote play
//	ag3 scores               - Show the run log
//	ag3 list                 - List difficulties and themes
//	ag3 config               - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Frame rate (default: from config, 60)
//	--seed <value>       - RNG seed for reproducible food placement
//	--db <path>          - Database path (default: ~/.ag3/ag3.db)
//	--config <path>      - Config file (default: search order)
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ag3/internal/advice"
	"github.com/vovakirdan/ag3/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ag3",
	Short: "AG~3 - neon snake for your terminal",
	Long: `AG~3 is a snake game for the terminal. Steer the snake, eat food,
avoid the walls, yourself and the barriers that grow with your score.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - Show the run log
  list     - List difficulties and themes
  config   - Print the effective configuration

Examples:
  ag3 play
  ag3 play --difficulty hard --theme neon
  ag3 serve --ssh :2222 --spectate :8080
  ag3 scores --limit 20`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ag3/ag3.db", "Path to the high score database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies the --fps override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagFPS > 0 {
		cfg.FPS = flagFPS
	}
	return cfg, nil
}

// newLogger builds a logger writing to --log-file, or to fallback when no
// file is given. The returned closer releases the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := fallback
	var closer io.Closer = io.NopCloser(nil)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// adviceGenerator builds the configured advice provider. It returns nil when
// advice is off.
func adviceGenerator(cfg config.Config, seed int64) advice.Generator {
	switch cfg.Advice.Provider {
	case config.ProviderPhrasebook:
		return advice.NewPhrasebook(cfg.Advice.Lines, seed)
	case config.ProviderHTTP:
		return advice.NewHTTPGenerator(cfg.Advice.Endpoint, &http.Client{Timeout: cfg.Advice.Timeout()})
	default:
		return nil
	}
}
