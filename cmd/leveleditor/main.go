// leveleditor is a terminal tile map level editor.
//
// Usage:
//
//	leveleditor edit [file]             - Edit a level file (or a new level)
//	leveleditor new <file>              - Create an empty level file and edit it
//	leveleditor show <file>             - Print a level to the terminal
//	leveleditor list                    - List levels in the levels directory
//	leveleditor convert <in> <out>      - Convert between level text and YAML
//	leveleditor library <command>       - Manage the level library database
//	leveleditor serve                   - Start SSH server for remote editing
//	leveleditor config                  - Print the effective configuration
//
// Global flags:
//
//	--config <path>  - Use a specific config file
//	--db <path>      - Set library database path (default: ~/.leveleditor/levels.db)
//	--debug          - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hnjm/2DTileMapLevelEditor/internal/config"
	"github.com/hnjm/2DTileMapLevelEditor/internal/editor"
	"github.com/hnjm/2DTileMapLevelEditor/internal/levels"
	"github.com/hnjm/2DTileMapLevelEditor/internal/storage"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagDebug  bool

	// Set up by the root command before any subcommand runs
	appConfig config.EditorConfig
	logger    = log.New(io.Discard)
	logFile   *os.File
)

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "leveleditor",
	Short: "Tile map level editor for the terminal",
	Long: `leveleditor edits layered 2D tile maps in the terminal.

Levels are grids of tile ids stacked in layers. They are saved as compact
level text (.lvl) or as human-editable YAML (.yaml), and can be kept in a
local level library database.

Available commands:
  edit     - Edit a level file
  new      - Create an empty level file
  show     - Print a level
  list     - List levels in the levels directory
  convert  - Convert between level text and YAML
  library  - Manage the level library
  serve    - Start SSH server for remote editing
  config   - Print the effective configuration

Examples:
  leveleditor edit castle.lvl
  leveleditor new dungeon --width 32 --height 20
  leveleditor show castle.lvl --layer 0
  leveleditor convert castle.lvl castle.yaml
  leveleditor library list
  leveleditor serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to editor config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to level library database (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	// Add subcommands
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and opens the log file.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	appConfig = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if flagDebug {
		level = log.DebugLevel
	}

	var out io.Writer = io.Discard
	if path := config.ExpandHome(cfg.Log.File); path != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr == nil {
			f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if openErr == nil {
				logFile = f
				out = f
			}
		}
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "leveleditor",
		Level:           level,
	})
	return nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
	}
}

// Grid size flags shared by commands that create or read levels
var (
	flagWidth  int
	flagHeight int
	flagLayers int
)

func addSizeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagWidth, "width", 0, "Grid width (default from config)")
	cmd.Flags().IntVar(&flagHeight, "height", 0, "Grid height (default from config)")
	cmd.Flags().IntVar(&flagLayers, "layers", 0, "Number of layers (default from config)")
}

// gridSize returns the configured grid size with flag overrides applied.
func gridSize() levels.Size {
	size := levels.Size{W: appConfig.Grid.Width, H: appConfig.Grid.Height, L: appConfig.Grid.Layers}
	if flagWidth > 0 {
		size.W = flagWidth
	}
	if flagHeight > 0 {
		size.H = flagHeight
	}
	if flagLayers > 0 {
		size.L = flagLayers
	}
	return size
}

// newSession creates an editing session of the given size.
func newSession(size levels.Size) (*editor.Session, error) {
	return editor.NewSession(editor.Options{
		Width:           size.W,
		Height:          size.H,
		Layers:          size.L,
		TileCount:       appConfig.Tiles.Count,
		HistoryCapacity: appConfig.History.Capacity,
		Extension:       appConfig.Files.Extension,
		Logger:          logger,
	})
}

// newLoader returns a loader for the configured levels directory.
func newLoader(size levels.Size) *levels.Loader {
	return levels.NewLoader(config.ExpandHome(appConfig.Files.LevelsDir), appConfig.Files.Extension, size)
}

// openStore opens the level library.
func openStore() (*storage.Store, error) {
	return storage.Open(appConfig.Storage.DBPath, storage.WithCompression(appConfig.Storage.Compression))
}
