package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ag3/internal/platform/tui"
	"github.com/vovakirdan/ag3/internal/platform/web"
	"github.com/vovakirdan/ag3/internal/storage"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeSpectate string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the AG~3 SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game. All players share one high score
and one run log.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.ag3/host_key

With --spectate, every session publishes live snapshots over WebSocket.
GET /sessions lists them and /ws?session=<id> streams one.

Examples:
  ag3 serve                           # Listen on :23234
  ag3 serve --ssh :2222               # Listen on port 2222
  ag3 serve --spectate :8080          # Also serve spectators

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeSpectate, "spectate", "", "Serve live snapshots over WebSocket on this address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(os.Stderr, "ag3-ssh")
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open high score database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sshCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        cfg,
		Advice:      adviceGenerator(cfg, seed),
	}

	if flagServeSpectate != "" {
		hub := web.NewHub(logger.WithPrefix("ag3-web"))
		go hub.Run(ctx)
		go func() {
			if err := hub.ListenAndServe(ctx, flagServeSpectate); err != nil {
				logger.Error("spectator hub stopped", "error", err)
			}
		}()
		sshCfg.Spectate = func(session string) tui.Publisher {
			return hub.Channel(session)
		}
	}

	server, err := tui.NewSSHServer(sshCfg, store, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting AG~3 SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
