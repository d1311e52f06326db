// Package levels provides level serialization and file loading.
// This package depends on tilemap but tilemap does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hnjm/2DTileMapLevelEditor/internal/levels/formats"
	"github.com/hnjm/2DTileMapLevelEditor/internal/tilemap"
)

// DefaultExtension is the extension of level text files, without the dot.
const DefaultExtension = "lvl"

var (
	// ErrNoPath is returned when a save or load is requested without a path.
	// Callers treat it as an aborted operation, not a failure.
	ErrNoPath = errors.New("levels: invalid path given")

	// ErrLevelNotFound is returned when a named level does not exist.
	ErrLevelNotFound = errors.New("levels: level not found")
)

// Size is the grid size used when reading level text, which does not
// record its own dimensions.
type Size struct {
	W int
	H int
	L int
}

// Level represents a level loaded from or bound for a file.
type Level struct {
	Name     string
	Grid     *tilemap.Grid
	Metadata map[string]string
	FilePath string
}

// NameFromPath returns the file name without directory or extension.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// EnsureExtension appends "."+ext to path unless path already has an
// extension.
func EnsureExtension(path, ext string) string {
	if path == "" || filepath.Ext(path) != "" {
		return path
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = DefaultExtension
	}
	return path + "." + ext
}

// SaveFile writes lvl to path, creating parent directories as needed.
// YAML extensions are written as YAML, everything else as level text.
func SaveFile(path string, lvl Level) error {
	if path == "" {
		return ErrNoPath
	}
	if lvl.Grid == nil {
		return fmt.Errorf("saving %s: no grid", path)
	}

	var data []byte
	if isYAMLExtension(strings.ToLower(filepath.Ext(path))) {
		name := lvl.Name
		if name == "" {
			name = NameFromPath(path)
		}
		out, err := formats.MarshalYAML(formats.Level{Name: name, Grid: lvl.Grid, Metadata: lvl.Metadata})
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		data = out
	} else {
		text, err := Encode(lvl.Grid)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		data = []byte(text)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a single level file. size is used for level text files.
func LoadFile(path string, size Size) (Level, error) {
	if path == "" {
		return Level{}, ErrNoPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	lvl, err := parseByExtension(data, strings.ToLower(filepath.Ext(path)), size)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if lvl.Name == "" {
		lvl.Name = NameFromPath(path)
	}
	lvl.FilePath = path
	return lvl, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
	Ext  string
	Size Size
}

// NewLoader creates a new level loader.
func NewLoader(root, ext string, size Size) *Loader {
	if ext == "" {
		ext = DefaultExtension
	}
	return &Loader{Root: root, Ext: strings.TrimPrefix(ext, "."), Size: size}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by name for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !l.isSupported(path) {
			return nil
		}

		level, err := LoadFile(path, l.Size)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].Name < levels[j].Name
	})

	return levels, nil
}

// LoadByName loads a specific level by name.
func (l *Loader) LoadByName(name string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.Name == name {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, name)
}

// ListNames returns all level names in sorted order.
func (l *Loader) ListNames() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(levels))
	for i, lvl := range levels {
		names[i] = lvl.Name
	}
	return names, nil
}

// PathFor returns the file path a level name maps to under Root.
func (l *Loader) PathFor(name string) string {
	return filepath.Join(l.Root, EnsureExtension(name, l.Ext))
}

// IsLevelFile reports whether path has an extension the loader reads.
func (l *Loader) IsLevelFile(path string) bool {
	return l.isSupported(path)
}

func (l *Loader) isSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == "."+strings.ToLower(l.Ext) || isYAMLExtension(ext)
}

// isYAMLExtension checks if extension is a YAML format.
func isYAMLExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string, size Size) (Level, error) {
	if isYAMLExtension(ext) {
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			return Level{}, err
		}
		return Level{Name: parsed.Name, Grid: parsed.Grid, Metadata: parsed.Metadata}, nil
	}

	g, err := Decode(string(data), size.W, size.H, size.L)
	if err != nil {
		return Level{}, err
	}
	return Level{Grid: g}, nil
}
