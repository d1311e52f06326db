package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hnjm/2DTileMapLevelEditor/internal/config"
	"github.com/hnjm/2DTileMapLevelEditor/internal/levels"
	"github.com/hnjm/2DTileMapLevelEditor/internal/tilemap"
)

var (
	flagShowLayer int
	flagShowEmpty bool
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a level",
	Long: `Print the layers of a level using the configured tile glyphs.

Rows are printed top row first, so the bottom line is grid row 0. Empty
layers are skipped unless --empty is set. A bare name that is not a file in
the working directory is looked up in the levels directory.

Examples:
  leveleditor show castle.lvl
  leveleditor show castle.lvl --layer 2
  leveleditor show castle.yaml --empty
  leveleditor show castle`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeLevelNames,
	RunE:              runShow,
}

func init() {
	addSizeFlags(showCmd)
	showCmd.Flags().IntVar(&flagShowLayer, "layer", -1, "Only print this layer (-1 = all)")
	showCmd.Flags().BoolVar(&flagShowEmpty, "empty", false, "Also print empty layers")
}

func runShow(_ *cobra.Command, args []string) error {
	lvl, err := loadLevelArg(args[0])
	if err != nil {
		return err
	}
	printLevel(os.Stdout, lvl, appConfig.Tiles, flagShowLayer, flagShowEmpty)
	return nil
}

// loadLevelArg reads a level file, falling back to the levels directory for
// bare names.
func loadLevelArg(arg string) (levels.Level, error) {
	size := gridSize()
	if _, err := os.Stat(arg); errors.Is(err, os.ErrNotExist) && filepath.Base(arg) == arg {
		return newLoader(size).LoadByName(levels.NameFromPath(arg))
	}
	return levels.LoadFile(arg, size)
}

var (
	showTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	showMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// printLevel writes a level layer by layer, highest layer first.
func printLevel(w io.Writer, lvl levels.Level, tiles config.TilesConfig, only int, showEmpty bool) {
	g := lvl.Grid
	fmt.Fprintln(w, showTitleStyle.Render(fmt.Sprintf("%s - %dx%d, %d layers, %d tiles",
		lvl.Name, g.Width(), g.Height(), g.Layers(), g.FilledCount())))

	for layer := g.Layers() - 1; layer >= 0; layer-- {
		if only >= 0 && layer != only {
			continue
		}
		if g.IsLayerEmpty(layer) && !showEmpty && only < 0 {
			continue
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, showMutedStyle.Render(fmt.Sprintf("layer %d", layer)))
		for y := g.Height() - 1; y >= 0; y-- {
			var line strings.Builder
			for _, v := range g.Row(y, layer) {
				line.WriteString(renderTile(tiles, v))
			}
			fmt.Fprintln(w, line.String())
		}
	}
}

// renderTile returns the colored glyph for a tile id, or a dot for Empty.
func renderTile(tiles config.TilesConfig, v int) string {
	if v == tilemap.Empty {
		return showMutedStyle.Render("·")
	}
	st := tiles.TileStyleFor(v)
	glyph := st.Glyph
	if glyph == "" {
		glyph = fmt.Sprint(v % 10)
	}
	style := lipgloss.NewStyle()
	if st.Color != "" {
		style = style.Foreground(lipgloss.Color(st.Color))
	}
	return style.Render(glyph)
}
