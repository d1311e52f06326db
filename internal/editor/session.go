// Package editor ties the tile grid, its history and layer visibility into
// a single editing session. One Session is owned by one UI loop.
package editor

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/hnjm/2DTileMapLevelEditor/internal/levels"
	"github.com/hnjm/2DTileMapLevelEditor/internal/tilemap"
)

// ErrUnknownTile is returned when selecting a tile id outside the tile set.
var ErrUnknownTile = errors.New("editor: unknown tile")

// Tool is the primary-click editing mode.
type Tool uint8

const (
	ToolPencil Tool = iota
	ToolFill
)

// String returns the string representation of a tool.
func (t Tool) String() string {
	switch t {
	case ToolPencil:
		return "Pencil"
	case ToolFill:
		return "Fill"
	default:
		return "Unknown"
	}
}

// Options configures a new Session.
type Options struct {
	Width           int
	Height          int
	Layers          int
	TileCount       int // Valid tile ids are [0, TileCount)
	HistoryCapacity int
	Extension       string // Level text file extension, without the dot
	Logger          *log.Logger
}

// Session is the editing state for one open level.
type Session struct {
	opts     Options
	grid     *tilemap.Grid
	history  *tilemap.History
	vis      *tilemap.Visibility
	selected int
	tool     Tool
	showGrid bool
	path     string
	dirty    bool
	logger   *log.Logger
	onChange func(*tilemap.Grid)
}

// NewSession creates a session with an empty grid and no tile selected.
func NewSession(opts Options) (*Session, error) {
	g, err := tilemap.NewGrid(opts.Width, opts.Height, opts.Layers)
	if err != nil {
		return nil, err
	}
	if opts.TileCount < 0 {
		opts.TileCount = 0
	}
	if opts.Extension == "" {
		opts.Extension = levels.DefaultExtension
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Session{
		opts:     opts,
		grid:     g,
		history:  tilemap.NewHistory(opts.HistoryCapacity),
		vis:      tilemap.NewVisibility(opts.Layers),
		selected: tilemap.Empty,
		showGrid: true,
		logger:   logger,
	}, nil
}

// Grid returns the live grid. Callers must not keep it across edits;
// undo, redo and load replace it.
func (s *Session) Grid() *tilemap.Grid { return s.grid }

// History returns the session history.
func (s *Session) History() *tilemap.History { return s.history }

// Visibility returns the layer visibility policy.
func (s *Session) Visibility() *tilemap.Visibility { return s.vis }

// SelectedTile returns the selected tile id or tilemap.Empty.
func (s *Session) SelectedTile() int { return s.selected }

// SelectedLayer returns the layer edits apply to.
func (s *Session) SelectedLayer() int { return s.vis.Selected() }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// TileCount returns the number of tiles in the tile set.
func (s *Session) TileCount() int { return s.opts.TileCount }

// ShowGrid reports whether the grid overlay is on.
func (s *Session) ShowGrid() bool { return s.showGrid }

// Path returns the file the level was last loaded from or saved to.
func (s *Session) Path() string { return s.path }

// Dirty reports whether there are edits since the last save or load.
func (s *Session) Dirty() bool { return s.dirty }

// OnChange registers fn to be called whenever the grid is replaced or
// edited. Only one callback is kept.
func (s *Session) OnChange(fn func(*tilemap.Grid)) {
	s.onChange = fn
}

func (s *Session) changed() {
	s.dirty = true
	s.notify()
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange(s.grid)
	}
}

// SelectTile selects a tile id, or clears the selection with tilemap.Empty.
func (s *Session) SelectTile(id int) error {
	if id != tilemap.Empty && !s.knownTile(id) {
		return fmt.Errorf("%w: %d", ErrUnknownTile, id)
	}
	s.selected = id
	return nil
}

func (s *Session) knownTile(id int) bool {
	return id >= 0 && id < s.opts.TileCount
}

// checkTiles rejects grids holding ids outside the tile set.
func (s *Session) checkTiles(g *tilemap.Grid) error {
	for layer := 0; layer < g.Layers(); layer++ {
		for y := 0; y < g.Height(); y++ {
			for x, v := range g.Row(y, layer) {
				if v != tilemap.Empty && !s.knownTile(v) {
					return fmt.Errorf("%w: %d at %s", ErrUnknownTile, v, tilemap.C(x, y, layer))
				}
			}
		}
	}
	return nil
}

// CycleTile moves the selection by delta through Empty and every tile id,
// wrapping at both ends.
func (s *Session) CycleTile(delta int) int {
	n := s.opts.TileCount + 1 // Empty plus tile ids
	pos := (s.selected + 1 + delta) % n
	if pos < 0 {
		pos += n
	}
	s.selected = pos - 1
	return s.selected
}

// ToggleFillMode switches between pencil and fill and returns the new tool.
func (s *Session) ToggleFillMode() Tool {
	if s.tool == ToolFill {
		s.tool = ToolPencil
	} else {
		s.tool = ToolFill
	}
	s.logger.Debug("tool changed", "tool", s.tool)
	return s.tool
}

// SetTool sets the active tool.
func (s *Session) SetTool(t Tool) {
	s.tool = t
}

// ToggleGrid flips the grid overlay and returns the new state.
func (s *Session) ToggleGrid() bool {
	s.showGrid = !s.showGrid
	return s.showGrid
}

// LayerUp selects the next layer.
func (s *Session) LayerUp() bool { return s.vis.LayerUp() }

// LayerDown selects the previous layer.
func (s *Session) LayerDown() bool { return s.vis.LayerDown() }

// ToggleOnlyShowSelected flips layer isolation and returns the new state.
func (s *Session) ToggleOnlyShowSelected() bool { return s.vis.ToggleOnlyShowSelected() }

// Paint writes tile at c with one history entry. See tilemap.Paint.
// Ids outside the tile set are ignored.
func (s *Session) Paint(c tilemap.Coord, tile int) bool {
	if tile != tilemap.Empty && !s.knownTile(tile) {
		return false
	}
	if !tilemap.Paint(s.grid, s.history, c, tile) {
		return false
	}
	s.logger.Debug("paint", "coord", c, "tile", tile)
	s.changed()
	return true
}

// Erase clears the cell at c with one history entry.
func (s *Session) Erase(c tilemap.Coord) bool {
	if !tilemap.Erase(s.grid, s.history, c) {
		return false
	}
	s.logger.Debug("erase", "coord", c)
	s.changed()
	return true
}

// Fill flood-fills from c with one history entry. See tilemap.Fill.
func (s *Session) Fill(c tilemap.Coord, tile int) int {
	if !s.knownTile(tile) {
		return 0
	}
	n := tilemap.Fill(s.grid, s.history, c, tile)
	if n == 0 {
		return 0
	}
	s.logger.Debug("fill", "coord", c, "tile", tile, "cells", n)
	s.changed()
	return n
}

// Click applies the active tool with the selected tile at (x, y) on the
// selected layer. Nothing happens while no tile is selected.
func (s *Session) Click(x, y int) bool {
	if s.selected == tilemap.Empty {
		return false
	}
	c := tilemap.C(x, y, s.vis.Selected())
	if s.tool == ToolFill {
		return s.Fill(c, s.selected) > 0
	}
	return s.Paint(c, s.selected)
}

// RightClick erases the cell at (x, y) on the selected layer. Clicking an
// already empty cell clears the tile selection instead.
func (s *Session) RightClick(x, y int) bool {
	c := tilemap.C(x, y, s.vis.Selected())
	if !s.grid.InBounds(c) {
		return false
	}
	if s.grid.At(c) == tilemap.Empty {
		s.selected = tilemap.Empty
		return false
	}
	return s.Erase(c)
}

// Pick selects the tile under (x, y) on the selected layer.
// Returns false if the cell is empty, out of bounds or not in the tile set.
func (s *Session) Pick(x, y int) bool {
	v := s.grid.At(tilemap.C(x, y, s.vis.Selected()))
	if v == tilemap.Empty {
		return false
	}
	return s.SelectTile(v) == nil
}

// Undo restores the previous grid. Returns false if there is nothing to undo.
func (s *Session) Undo() bool {
	prev, ok := s.history.Undo(s.grid)
	if !ok {
		return false
	}
	s.grid = prev
	s.logger.Debug("undo", "undo", s.history.UndoLen(), "redo", s.history.RedoLen())
	s.changed()
	return true
}

// Redo reapplies the last undone grid. Returns false if there is nothing to redo.
func (s *Session) Redo() bool {
	next, ok := s.history.Redo(s.grid)
	if !ok {
		return false
	}
	s.grid = next
	s.logger.Debug("redo", "undo", s.history.UndoLen(), "redo", s.history.RedoLen())
	s.changed()
	return true
}

// NewGrid discards the level and starts over with an empty grid of the
// session size and empty history.
func (s *Session) NewGrid() {
	s.resetBeforeLoad()
	s.path = ""
	s.dirty = false
	s.logger.Info("new level", "width", s.opts.Width, "height", s.opts.Height, "layers", s.opts.Layers)
	s.notify()
}

// resetBeforeLoad empties the grid and both history stacks.
func (s *Session) resetBeforeLoad() {
	// Dimensions were validated by NewSession
	s.grid, _ = tilemap.NewGrid(s.opts.Width, s.opts.Height, s.opts.Layers)
	s.history.Reset()
	s.vis.Resize(s.opts.Layers)
}

// Encode serializes the live grid to level text.
func (s *Session) Encode() (string, error) {
	return levels.Encode(s.grid)
}

// LoadText replaces the level with decoded level text. The grid is reset
// first; on a parse error or a tile outside the tile set it stays empty
// and the error is returned.
func (s *Session) LoadText(text string) error {
	s.resetBeforeLoad()
	s.dirty = false
	g, err := levels.Decode(text, s.opts.Width, s.opts.Height, s.opts.Layers)
	if err == nil {
		err = s.checkTiles(g)
	}
	if err != nil {
		s.notify()
		return err
	}
	s.grid = g
	s.notify()
	return nil
}

// LoadTextSized resizes the session to w x h x layers and loads text.
// Used for library levels, which carry their own dimensions.
func (s *Session) LoadTextSized(text string, w, h, layers int) error {
	if _, err := tilemap.NewGrid(w, h, layers); err != nil {
		return err
	}
	s.opts.Width, s.opts.Height, s.opts.Layers = w, h, layers
	return s.LoadText(text)
}

// LoadGrid replaces the level with g, adopting its dimensions. A grid
// holding ids outside the tile set leaves an empty grid of that size and
// returns an error wrapping ErrUnknownTile.
func (s *Session) LoadGrid(g *tilemap.Grid) error {
	s.opts.Width, s.opts.Height, s.opts.Layers = g.Width(), g.Height(), g.Layers()
	s.resetBeforeLoad()
	s.dirty = false
	if err := s.checkTiles(g); err != nil {
		s.notify()
		return err
	}
	s.grid = g.Clone()
	s.notify()
	return nil
}

// Save writes the level to path. An empty path aborts with levels.ErrNoPath.
func (s *Session) Save(path string) error {
	if path == "" {
		s.logger.Warn("Invalid path given")
		return levels.ErrNoPath
	}
	path = levels.EnsureExtension(path, s.opts.Extension)
	if err := levels.SaveFile(path, levels.Level{Name: levels.NameFromPath(path), Grid: s.grid}); err != nil {
		s.logger.Error("save failed", "path", path, "error", err)
		return err
	}
	s.path = path
	s.dirty = false
	s.logger.Info("level saved", "path", path)
	return nil
}

// Load reads the level at path. An empty path aborts with levels.ErrNoPath
// and leaves the session untouched. Any other failure leaves an untitled
// empty grid.
func (s *Session) Load(path string) error {
	if path == "" {
		s.logger.Warn("Invalid path given")
		return levels.ErrNoPath
	}

	s.resetBeforeLoad()
	s.path = ""
	s.dirty = false
	lvl, err := levels.LoadFile(path, levels.Size{W: s.opts.Width, H: s.opts.Height, L: s.opts.Layers})
	if err == nil {
		err = s.LoadGrid(lvl.Grid)
	} else {
		s.notify()
	}
	if err != nil {
		s.logger.Error("load failed", "path", path, "error", err)
		return err
	}

	s.path = path
	s.logger.Info("level loaded", "path", path, "tiles", lvl.Grid.FilledCount())
	return nil
}
