package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hnjm/2DTileMapLevelEditor/internal/levels"
)

var (
	flagNoEdit bool
	flagForce  bool
)

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Create an empty level",
	Long: `Create an empty level file and open it in the editor.

The file extension picks the format: .yaml/.yml for YAML, anything else for
level text. A missing extension gets the configured one.

Examples:
  leveleditor new dungeon
  leveleditor new dungeon.yaml --width 32 --height 20 --layers 4
  leveleditor new dungeon --no-edit`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	addSizeFlags(newCmd)
	newCmd.Flags().BoolVar(&flagNoEdit, "no-edit", false, "Create the file without opening the editor")
	newCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
}

func runNew(_ *cobra.Command, args []string) error {
	size := gridSize()
	session, err := newSession(size)
	if err != nil {
		return err
	}

	path := levels.EnsureExtension(args[0], appConfig.Files.Extension)
	if _, statErr := os.Stat(path); statErr == nil && !flagForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return statErr
	}

	if err := session.Save(path); err != nil {
		return err
	}

	if flagNoEdit {
		fmt.Printf("Created %s (%dx%d, %d layers)\n", path, size.W, size.H, size.L)
		return nil
	}
	return runEditor(session, path, size)
}
