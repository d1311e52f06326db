package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hnjm/2DTileMapLevelEditor/internal/core"
	"github.com/hnjm/2DTileMapLevelEditor/internal/editor"
	"github.com/hnjm/2DTileMapLevelEditor/internal/levels"
	"github.com/hnjm/2DTileMapLevelEditor/internal/platform/tui"
)

var flagWatch bool

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit a level",
	Long: `Open a level file in the editor, or start an empty level.

Level text files do not record their size, so --width, --height and
--layers must match the file (defaults come from the config). YAML levels
carry their own size.

Controls:
  Arrows/hjkl    - Move cursor
  Space/Enter    - Paint (or fill in fill mode)
  X              - Erase
  E              - Pick the tile under the cursor
  F              - Toggle fill mode
  [ ] / 0-9      - Select tile
  +/- PgUp/PgDn  - Change layer
  V              - Show only the selected layer
  G              - Toggle grid
  U/Ctrl+Z       - Undo
  Ctrl+Y/Ctrl+R  - Redo
  Ctrl+S/Ctrl+O  - Save / open
  Ctrl+N         - New level
  Ctrl+L         - Level library
  Q/Ctrl+C       - Quit
  Mouse          - Left paints, right erases

Examples:
  leveleditor edit
  leveleditor edit castle.lvl
  leveleditor edit castle.lvl --width 32 --height 20
  leveleditor edit castle.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	addSizeFlags(editCmd)
	editCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the file when it changes on disk")
}

func runEdit(_ *cobra.Command, args []string) error {
	size := gridSize()
	session, err := newSession(size)
	if err != nil {
		return err
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return fmt.Errorf("%s does not exist; create it with 'leveleditor new %s'", path, path)
		}
		if err := session.Load(path); err != nil {
			return err
		}
	}

	return runEditor(session, path, size)
}

// runEditor starts the TUI for session. path is watched when --watch is set.
func runEditor(session *editor.Session, path string, size levels.Size) error {
	loader := newLoader(size)

	// Open the level library; the editor works without it
	store, err := openStore()
	if err != nil {
		logger.Warn("could not open level library", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var watcher *levels.Watcher
	if flagWatch && path != "" {
		watcher, err = levels.NewWatcher(loader.IsLevelFile, filepath.Dir(path))
		if err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		defer watcher.Close()
	}

	return tui.Run(session, tui.Options{
		Config:  appConfig,
		Runtime: terminalConfig(),
		Store:   store,
		Watcher: watcher,
		Loader:  loader,
		Logger:  logger,
	})
}

// terminalConfig sizes the screen from the controlling terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}
