package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/hnjm/2DTileMapLevelEditor/internal/config"
	"github.com/hnjm/2DTileMapLevelEditor/internal/core"
	"github.com/hnjm/2DTileMapLevelEditor/internal/editor"
	"github.com/hnjm/2DTileMapLevelEditor/internal/tilemap"
)

// Editor layout constants
const (
	minWidthForSidebar = 60 // Minimum width to show the tile/layer sidebar
	sidebarWidth       = 24 // Width of the sidebar including its border
	chromeHeight       = 2  // Status bar and help line below the map
	gridDot            = '·'
)

// tileLook is how one tile id is drawn.
type tileLook struct {
	glyph rune
	color core.Color
}

// palette resolves tile ids to glyphs and colors.
type palette struct {
	looks []tileLook
}

func newPalette(tiles config.TilesConfig) palette {
	looks := make([]tileLook, len(tiles.Palette))
	for i := range looks {
		st := tiles.TileStyleFor(i)
		r, _ := utf8.DecodeRuneInString(st.Glyph)
		if st.Glyph == "" {
			r = rune('0' + i%10)
		}
		looks[i] = tileLook{glyph: r, color: core.ParseColor(st.Color)}
	}
	return palette{looks: looks}
}

// look returns the look for a tile id. Ids past the palette reuse it
// cyclically.
func (p palette) look(id int) tileLook {
	if id < 0 || len(p.looks) == 0 {
		return tileLook{glyph: '?', color: core.ColorWarning}
	}
	return p.looks[id%len(p.looks)]
}

// mapLayout places the grid viewport on screen. Grid y grows upwards, so
// the bottom screen row of the view shows grid row scrollY.
type mapLayout struct {
	cellW   int
	box     core.Rect // Map frame including its border
	viewW   int       // Visible grid columns
	viewH   int       // Visible grid rows
	scrollX int       // Leftmost visible grid column
	scrollY int       // Lowest visible grid row
}

// computeLayout sizes the map frame for the terminal and grid. Scroll
// offsets start at zero; call follow to keep the cursor in view.
func computeLayout(cfg core.RuntimeConfig, gridW, gridH int) mapLayout {
	cellW := core.Max(cfg.CellWidth, 1)

	availW := cfg.ScreenW
	if cfg.ScreenW >= minWidthForSidebar {
		availW -= sidebarWidth + 1
	}
	availH := cfg.ScreenH - chromeHeight

	boxW := core.Clamp(gridW*cellW+2, 3, core.Max(availW, 3))
	boxH := core.Clamp(gridH+2, 3, core.Max(availH, 3))

	l := mapLayout{cellW: cellW, box: core.NewRect(0, 0, boxW, boxH)}
	inner := l.box.Inset(1)
	l.viewW = core.Max(inner.W/cellW, 1)
	l.viewH = core.Max(inner.H, 1)
	return l
}

// follow scrolls the view the least amount needed to show (cx, cy).
func (l mapLayout) follow(cx, cy, gridW, gridH int) mapLayout {
	if cx < l.scrollX {
		l.scrollX = cx
	} else if cx >= l.scrollX+l.viewW {
		l.scrollX = cx - l.viewW + 1
	}
	if cy < l.scrollY {
		l.scrollY = cy
	} else if cy >= l.scrollY+l.viewH {
		l.scrollY = cy - l.viewH + 1
	}
	l.scrollX = core.Clamp(l.scrollX, 0, core.Max(gridW-l.viewW, 0))
	l.scrollY = core.Clamp(l.scrollY, 0, core.Max(gridH-l.viewH, 0))
	return l
}

// gridToScreen returns the screen position of the first character of a
// grid cell, or false if the cell is scrolled out of view.
func (l mapLayout) gridToScreen(x, y int) (sx, sy int, ok bool) {
	col := x - l.scrollX
	row := l.viewH - 1 - (y - l.scrollY)
	if col < 0 || col >= l.viewW || row < 0 || row >= l.viewH {
		return 0, 0, false
	}
	return l.box.X + 1 + col*l.cellW, l.box.Y + 1 + row, true
}

// screenToGrid converts a terminal position, such as a mouse click, to a
// grid cell. The result may still lie outside a grid smaller than the view.
func (l mapLayout) screenToGrid(sx, sy int) (x, y int, ok bool) {
	inner := l.box.Inset(1)
	if !inner.Contains(sx, sy) {
		return 0, 0, false
	}
	col := (sx - inner.X) / l.cellW
	row := sy - inner.Y
	if col >= l.viewW || row >= l.viewH {
		return 0, 0, false
	}
	return l.scrollX + col, l.scrollY + l.viewH - 1 - row, true
}

// drawMap renders the visible part of the session grid into scr.
// The selected layer is drawn in color on top; other visible layers show
// through dimmed where the selected layer is empty.
func drawMap(scr *core.Screen, s *editor.Session, l mapLayout, pal palette, cursor tilemap.Coord) {
	scr.Resize(l.box.W, l.box.H)
	scr.Clear()
	scr.DrawBox(l.box, core.ColorGray)
	scr.DrawTextColor(l.box.X+2, l.box.Y, fmt.Sprintf(" %s ", positionLabel(cursor)), core.ColorGray)

	g := s.Grid()
	selected := s.SelectedLayer()
	visible := s.Visibility().VisibleLayers()

	for row := 0; row < l.viewH; row++ {
		for col := 0; col < l.viewW; col++ {
			x, y := l.scrollX+col, l.scrollY+l.viewH-1-row
			if x >= g.Width() || y >= g.Height() {
				continue
			}
			sx, sy, _ := l.gridToScreen(x, y)
			drawCell(scr, sx, sy, l.cellW, cellAt(g, x, y, selected, visible, pal, s.ShowGrid()))
		}
	}

	if sx, sy, ok := l.gridToScreen(cursor.X, cursor.Y); ok {
		for i := 0; i < l.cellW; i++ {
			scr.SetBg(sx+i, sy, core.ColorCursor)
		}
	}
}

// cellAt picks what to show for one grid position.
func cellAt(g *tilemap.Grid, x, y, selected int, visible []int, pal palette, showGrid bool) core.Cell {
	if v := g.At(tilemap.C(x, y, selected)); v != tilemap.Empty && containsLayer(visible, selected) {
		look := pal.look(v)
		return core.Cell{Rune: look.glyph, Fg: look.color}
	}
	for i := len(visible) - 1; i >= 0; i-- {
		layer := visible[i]
		if layer == selected {
			continue
		}
		if v := g.At(tilemap.C(x, y, layer)); v != tilemap.Empty {
			return core.Cell{Rune: pal.look(v).glyph, Fg: core.ColorDim}
		}
	}
	if showGrid {
		return core.Cell{Rune: gridDot, Fg: core.ColorDim}
	}
	return core.Cell{Rune: ' '}
}

// drawCell writes a cell cellW characters wide. Tiles repeat their glyph;
// the grid dot is drawn once.
func drawCell(scr *core.Screen, sx, sy, cellW int, c core.Cell) {
	for i := 0; i < cellW; i++ {
		if i > 0 && c.Rune == gridDot {
			scr.SetCell(sx+i, sy, core.Cell{Rune: ' '})
			continue
		}
		scr.SetCell(sx+i, sy, c)
	}
}

func containsLayer(layers []int, layer int) bool {
	for _, l := range layers {
		if l == layer {
			return true
		}
	}
	return false
}

func positionLabel(c tilemap.Coord) string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Sidebar and status styles
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(sidebarWidth-2).
			Padding(0, 1)
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dirtyMarker   = "*"
	selectMarker  = "> "
	defaultMarker = "  "
)

// renderSidebar lists tiles and layers. maxRows bounds the tile list so the
// layer list stays on screen.
func renderSidebar(s *editor.Session, pal palette, maxRows int) string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Tiles"))
	b.WriteString("\n")

	// Entries are Empty followed by every tile id
	total := s.TileCount() + 1
	selectedPos := s.SelectedTile() + 1
	rows := core.Clamp(maxRows, 1, total)
	start := core.Clamp(selectedPos-rows/2, 0, total-rows)
	for pos := start; pos < start+rows; pos++ {
		id := pos - 1
		marker := defaultMarker
		if pos == selectedPos {
			marker = selectMarker
		}
		var label string
		if id == tilemap.Empty {
			label = marker + "  empty"
		} else {
			look := pal.look(id)
			label = marker + styleFor(look.color, core.ColorDefault).Render(string(look.glyph)) + fmt.Sprintf(" %d", id)
		}
		if pos == selectedPos {
			label = activeStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Layers"))
	b.WriteString("\n")

	g := s.Grid()
	vis := s.Visibility()
	for layer := vis.Layers() - 1; layer >= 0; layer-- {
		marker := defaultMarker
		if layer == vis.Selected() {
			marker = selectMarker
		}
		fillMark := "■"
		if g.IsLayerEmpty(layer) {
			fillMark = "□"
		}
		line := fmt.Sprintf("%s%s %d", marker, fillMark, layer)
		switch {
		case layer == vis.Selected():
			line = activeStyle.Render(line)
		case !vis.IsVisible(layer):
			line = mutedStyle.Render(line + " hidden")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderStatus builds the one-line status bar.
func renderStatus(s *editor.Session, width int, fileLabel string) string {
	tile := "empty"
	if s.SelectedTile() != tilemap.Empty {
		tile = fmt.Sprintf("%d", s.SelectedTile())
	}
	if s.Dirty() {
		fileLabel += dirtyMarker
	}
	parts := []string{
		fmt.Sprintf("layer %d/%d", s.SelectedLayer(), s.Visibility().Layers()-1),
		s.Tool().String(),
		"tile " + tile,
		fmt.Sprintf("undo %d redo %d", s.History().UndoLen(), s.History().RedoLen()),
		fileLabel,
	}
	if s.Visibility().OnlyShowSelected() {
		parts = append(parts, "isolated")
	}
	line := " " + strings.Join(parts, " │ ")
	return statusStyle.Width(core.Max(width, 1)).MaxWidth(core.Max(width, 1)).Render(line)
}
