package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ag3/internal/audio"
	"github.com/vovakirdan/ag3/internal/core"
	"github.com/vovakirdan/ag3/internal/game"
	"github.com/vovakirdan/ag3/internal/platform/tui"
	"github.com/vovakirdan/ag3/internal/platform/web"
	"github.com/vovakirdan/ag3/internal/storage"
)

var (
	flagDifficulty string
	flagTheme      string
	flagSpectate   string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play AG~3 in this terminal",
	Long: `Start AG~3 in this terminal.

Controls:
  WASD/Arrows  - Steer (menus: move the cursor)
  Enter/Space  - Select
  Space (hold) - Boost while playing
  P            - Pause / resume
  R            - Reboot after a crash
  B            - Back
  Esc          - Abandon the run and return to the menu
  Ctrl+S       - Save a screenshot to ~/.ag3/screenshots
  Q/Ctrl+C     - Quit

Examples:
  ag3 play
  ag3 play --difficulty hard
  ag3 play --theme classic --mute
  ag3 play --spectate :8080 --log-file ag3.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Starting difficulty (easy, medium, hard)")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Starting theme (modern, neon, classic)")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve live snapshots over WebSocket on this address")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable the terminal bell")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(io.Discard, "ag3")
	if err != nil {
		return err
	}
	defer closer.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sinks := audio.Multi{audio.NewLogger(logger)}
	if !flagMute {
		sinks = append(sinks, audio.NewBell(os.Stdout))
	}

	opts := game.Options{
		Config: cfg,
		Seed:   seed,
		Audio:  sinks,
		Advice: adviceGenerator(cfg, seed),
		Logger: logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open high score database", "error", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	g := game.New(opts)
	if flagDifficulty != "" && !g.SetDifficulty(flagDifficulty) {
		return fmt.Errorf("unknown difficulty %q (run 'ag3 list')", flagDifficulty)
	}
	if flagTheme != "" && !g.SetTheme(flagTheme) {
		return fmt.Errorf("unknown theme %q (run 'ag3 list')", flagTheme)
	}

	view := core.DefaultViewport()
	view.FPS = cfg.FPS
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		view.Width, view.Height = w, h
	}

	var pub tui.Publisher
	if flagSpectate != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		hub := web.NewHub(logger)
		go hub.Run(ctx)
		go func() {
			if err := hub.ListenAndServe(ctx, flagSpectate); err != nil {
				logger.Error("spectator hub stopped", "error", err)
			}
		}()
		ch := hub.Channel("local")
		defer ch.Close()
		pub = ch
	}

	return tui.Run(g, view, pub)
}
