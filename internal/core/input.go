package core

// Action is a semantic editor action, abstracted from physical key presses.
// The platform maps keys to actions; the editor only sees actions.
type Action int

const (
	ActionNone          Action = iota
	ActionCursorUp             // Up, k
	ActionCursorDown           // Down, j
	ActionCursorLeft           // Left, h
	ActionCursorRight          // Right, l
	ActionApply                // Space, Enter - paint or fill with the selected tile
	ActionErase                // x, Delete
	ActionPick                 // e - eyedropper
	ActionToggleFill           // f
	ActionTilePrev             // [
	ActionTileNext             // ]
	ActionLayerUp              // PgUp, +
	ActionLayerDown            // PgDown, -
	ActionToggleIsolate        // v - only show the selected layer
	ActionToggleGrid           // g
	ActionUndo                 // u, Ctrl+Z
	ActionRedo                 // Ctrl+Y, Ctrl+R
	ActionSave                 // Ctrl+S
	ActionLoad                 // Ctrl+O
	ActionNew                  // Ctrl+N
	ActionLibrary              // Ctrl+L
	ActionHelp                 // ?
	ActionQuit                 // q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCursorUp:
		return "CursorUp"
	case ActionCursorDown:
		return "CursorDown"
	case ActionCursorLeft:
		return "CursorLeft"
	case ActionCursorRight:
		return "CursorRight"
	case ActionApply:
		return "Apply"
	case ActionErase:
		return "Erase"
	case ActionPick:
		return "Pick"
	case ActionToggleFill:
		return "ToggleFill"
	case ActionTilePrev:
		return "TilePrev"
	case ActionTileNext:
		return "TileNext"
	case ActionLayerUp:
		return "LayerUp"
	case ActionLayerDown:
		return "LayerDown"
	case ActionToggleIsolate:
		return "ToggleIsolate"
	case ActionToggleGrid:
		return "ToggleGrid"
	case ActionUndo:
		return "Undo"
	case ActionRedo:
		return "Redo"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	case ActionNew:
		return "New"
	case ActionLibrary:
		return "Library"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// CursorDelta returns the cursor movement for an action in grid
// coordinates, where y grows upwards.
func (a Action) CursorDelta() (dx, dy int, ok bool) {
	switch a {
	case ActionCursorUp:
		return 0, 1, true
	case ActionCursorDown:
		return 0, -1, true
	case ActionCursorLeft:
		return -1, 0, true
	case ActionCursorRight:
		return 1, 0, true
	}
	return 0, 0, false
}
