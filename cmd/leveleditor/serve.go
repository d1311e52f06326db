package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hnjm/2DTileMapLevelEditor/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the level editor SSH server",
	Long: `Start an SSH server that allows users to connect and edit levels.

Each SSH connection gets its own editing session. Sessions cannot touch the
server's files; Ctrl+S stores the level in the shared level library and
Ctrl+O opens one from it.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.leveleditor/host_key

Examples:
  leveleditor serve                           # Listen on the configured address
  leveleditor serve --ssh :2222               # Listen on port 2222
  leveleditor serve --host-key ./my_host_key  # Use specific host key
  leveleditor serve --db ./levels.db          # Use specific library

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := tui.NewSSHServerConfig(appConfig)
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	// The server has no TUI of its own, so it logs to stderr
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "leveleditor-ssh",
		Level:           level,
	})

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting level editor SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
