// Package config provides YAML-based configuration loading for the level
// editor.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// EditorConfig contains all configuration for the level editor.
type EditorConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	History HistoryConfig `yaml:"history"`
	Tiles   TilesConfig   `yaml:"tiles"`
	Files   FilesConfig   `yaml:"files"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	Log     LogConfig     `yaml:"log"`
}

// GridConfig defines the size of new grids.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Layers int `yaml:"layers"`
}

// HistoryConfig defines undo/redo limits.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// TilesConfig defines the tile set.
type TilesConfig struct {
	Count   int         `yaml:"count"`
	Palette []TileStyle `yaml:"palette"`
}

// TileStyle is how a tile id is drawn in the terminal.
type TileStyle struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"` // ANSI 256 color code
}

// FilesConfig defines level file handling.
type FilesConfig struct {
	Extension string `yaml:"extension"`
	LevelsDir string `yaml:"levels_dir"`
}

// StorageConfig defines the level library database.
type StorageConfig struct {
	DBPath      string `yaml:"db_path"`
	Compression string `yaml:"compression"` // fastest, default, better, best
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Normalize replaces invalid values with usable ones.
// Grid dimensions below 1 become 1; other zero values fall back to
// defaults.
func (c *EditorConfig) Normalize() {
	def := DefaultEditorConfig()

	c.Grid.Width = max(c.Grid.Width, 1)
	c.Grid.Height = max(c.Grid.Height, 1)
	c.Grid.Layers = max(c.Grid.Layers, 1)

	if c.History.Capacity <= 0 {
		c.History.Capacity = def.History.Capacity
	}
	if c.Tiles.Count < 0 {
		c.Tiles.Count = 0
	}
	c.Files.Extension = strings.TrimPrefix(c.Files.Extension, ".")
	if c.Files.Extension == "" {
		c.Files.Extension = def.Files.Extension
	}
	if c.Files.LevelsDir == "" {
		c.Files.LevelsDir = def.Files.LevelsDir
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = def.Storage.DBPath
	}
	if c.Storage.Compression == "" {
		c.Storage.Compression = def.Storage.Compression
	}
	if c.SSH.Address == "" {
		c.SSH.Address = def.SSH.Address
	}
	if c.SSH.IdleTimeoutMinutes <= 0 {
		c.SSH.IdleTimeoutMinutes = def.SSH.IdleTimeoutMinutes
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// TileStyleFor returns the palette entry for a tile id. Ids beyond the
// palette reuse entries cyclically.
func (c TilesConfig) TileStyleFor(id int) TileStyle {
	if id < 0 || len(c.Palette) == 0 {
		return TileStyle{Glyph: "?", Color: ""}
	}
	return c.Palette[id%len(c.Palette)]
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
