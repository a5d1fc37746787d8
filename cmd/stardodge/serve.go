package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-dodge/internal/broadcast"
	"github.com/vovakirdan/star-dodge/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagWSAddr      string
	flagServeSkin   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Star Dodge SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own ship picker, games and scoreboard. The
menu starts on the ship named by the SSH command (ssh host -p 23234 rocket)
or on --skin. Scores are stored per-server (all users share the same
leaderboard).

With --ws every session's score, lives, start, game-over and leave events
are streamed as JSON to WebSocket spectators at ws://<addr>/spectate.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.stardodge/host_key

Examples:
  stardodge serve                           # Listen on :23234 with auto-generated key
  stardodge serve --ssh :2222               # Listen on port 2222
  stardodge serve --ws :8080                # Also stream events to spectators
  stardodge serve --skin rocket --difficulty hard

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "Spectator WebSocket address (disabled if empty)")
	serveCmd.Flags().StringVar(&flagServeSkin, "skin", "starship", "Ship the menu starts on when the SSH command names none")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Skin = flagServeSkin
	cfg.ConfigPath = flagConfig
	cfg.Variant = flagVariant
	cfg.Difficulty = flagDifficulty
	cfg.TickRate = flagFPS
	cfg.Logger = logger.WithPrefix("stardodge-ssh")

	var spectators *http.Server
	if flagWSAddr != "" {
		hub := broadcast.NewHub(logger.WithPrefix("spectate"))
		cfg.Spectators = hub

		mux := http.NewServeMux()
		mux.Handle("/spectate", hub.Handler())
		spectators = &http.Server{
			Addr:              flagWSAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("spectator feed listening", "address", flagWSAddr)
			if err := spectators.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator server error", "error", err)
			}
		}()
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Star Dodge SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe()
	if spectators != nil {
		spectators.Close()
	}
	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", serveErr)
		os.Exit(1)
	}
}

// port returns the port of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
