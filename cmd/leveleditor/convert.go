package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hnjm/2DTileMapLevelEditor/internal/levels"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a level between formats",
	Long: `Read a level and write it in the format given by the output extension.

Use this to turn compact level text into YAML for hand editing and back.
Reading level text needs the grid size (--width, --height, --layers).

Examples:
  leveleditor convert castle.lvl castle.yaml
  leveleditor convert castle.yaml castle.lvl`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	addSizeFlags(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	in, out := args[0], args[1]

	lvl, err := levels.LoadFile(in, gridSize())
	if err != nil {
		return err
	}
	if err := levels.SaveFile(out, lvl); err != nil {
		return err
	}

	logger.Info("level converted", "from", in, "to", out)
	fmt.Printf("Converted %s -> %s (%d tiles)\n", in, out, lvl.Grid.FilledCount())
	return nil
}
