package core

// RuntimeConfig describes the terminal the editor draws into.
type RuntimeConfig struct {
	ScreenW   int // Screen width in characters
	ScreenH   int // Screen height in characters
	CellWidth int // Characters per grid cell
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		CellWidth: 2, // Two columns make cells roughly square
	}
}
