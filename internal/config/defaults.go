package config

import (
	_ "embed"
)

//go:embed defaults/editor.yaml
var defaultEditorYAML []byte

// DefaultEditorConfig returns the default editor configuration.
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		Grid: GridConfig{
			Width:  16,
			Height: 14,
			Layers: 10,
		},
		History: HistoryConfig{
			Capacity: 100,
		},
		Tiles: TilesConfig{
			Count: 10,
			Palette: []TileStyle{
				{Glyph: "█", Color: "244"},
				{Glyph: "▓", Color: "130"},
				{Glyph: "~", Color: "33"},
				{Glyph: "♣", Color: "28"},
				{Glyph: "▲", Color: "250"},
				{Glyph: "#", Color: "166"},
				{Glyph: "o", Color: "220"},
				{Glyph: "@", Color: "201"},
				{Glyph: "+", Color: "46"},
				{Glyph: "x", Color: "196"},
			},
		},
		Files: FilesConfig{
			Extension: "lvl",
			LevelsDir: "~/.leveleditor/levels",
		},
		Storage: StorageConfig{
			DBPath:      "~/.leveleditor/levels.db",
			Compression: "default",
		},
		SSH: SSHConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.leveleditor/editor.log",
		},
	}
}
