package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hnjm/2DTileMapLevelEditor/internal/core"
)

// EditorKeyMap defines the key bindings of the map editor.
type EditorKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	Apply         key.Binding
	Erase         key.Binding
	Pick          key.Binding
	ToggleFill    key.Binding
	TilePrev      key.Binding
	TileNext      key.Binding
	LayerUp       key.Binding
	LayerDown     key.Binding
	ToggleIsolate key.Binding
	ToggleGrid    key.Binding
	Undo          key.Binding
	Redo          key.Binding
	Save          key.Binding
	Load          key.Binding
	New           key.Binding
	Library       key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Erase, k.ToggleFill, k.TileNext, k.LayerUp, k.Undo, k.Save, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Apply, k.Erase, k.Pick, k.ToggleFill},
		{k.TilePrev, k.TileNext, k.LayerUp, k.LayerDown},
		{k.ToggleIsolate, k.ToggleGrid, k.Undo, k.Redo},
		{k.Save, k.Load, k.New, k.Library},
		{k.Help, k.Quit},
	}
}

// DefaultEditorKeyMap returns default key bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Apply: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "paint"),
		),
		Erase: key.NewBinding(
			key.WithKeys("x", "delete", "backspace"),
			key.WithHelp("x", "erase"),
		),
		Pick: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "pick tile"),
		),
		ToggleFill: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fill mode"),
		),
		TilePrev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev tile"),
		),
		TileNext: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tile"),
		),
		LayerUp: key.NewBinding(
			key.WithKeys("pgup", "+", "="),
			key.WithHelp("+/pgup", "layer up"),
		),
		LayerDown: key.NewBinding(
			key.WithKeys("pgdown", "-"),
			key.WithHelp("-/pgdn", "layer down"),
		),
		ToggleIsolate: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "only this layer"),
		),
		ToggleGrid: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grid"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y", "ctrl+r"),
			key.WithHelp("ctrl+y", "redo"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Load: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open"),
		),
		New: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new"),
		),
		Library: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "library"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to editor actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys     EditorKeyMap
	bindings []actionBinding
}

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// NewKeyMapper creates a key mapper for the given bindings.
func NewKeyMapper(keys EditorKeyMap) *KeyMapper {
	return &KeyMapper{
		keys: keys,
		bindings: []actionBinding{
			{keys.Quit, core.ActionQuit},
			{keys.Up, core.ActionCursorUp},
			{keys.Down, core.ActionCursorDown},
			{keys.Left, core.ActionCursorLeft},
			{keys.Right, core.ActionCursorRight},
			{keys.Apply, core.ActionApply},
			{keys.Erase, core.ActionErase},
			{keys.Pick, core.ActionPick},
			{keys.ToggleFill, core.ActionToggleFill},
			{keys.TilePrev, core.ActionTilePrev},
			{keys.TileNext, core.ActionTileNext},
			{keys.LayerUp, core.ActionLayerUp},
			{keys.LayerDown, core.ActionLayerDown},
			{keys.ToggleIsolate, core.ActionToggleIsolate},
			{keys.ToggleGrid, core.ActionToggleGrid},
			{keys.Undo, core.ActionUndo},
			{keys.Redo, core.ActionRedo},
			{keys.Save, core.ActionSave},
			{keys.Load, core.ActionLoad},
			{keys.New, core.ActionNew},
			{keys.Library, core.ActionLibrary},
			{keys.Help, core.ActionHelp},
		},
	}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() EditorKeyMap {
	return km.keys
}

// MapKey translates a key message to an editor action.
// Returns ActionNone for unbound keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	for _, b := range km.bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

// TileDigit returns the tile id selected by a digit key.
func (km *KeyMapper) TileDigit(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '0'), true
}
