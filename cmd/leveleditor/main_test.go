package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hnjm/2DTileMapLevelEditor/internal/config"
	"github.com/hnjm/2DTileMapLevelEditor/internal/levels"
	"github.com/hnjm/2DTileMapLevelEditor/internal/storage"
	"github.com/hnjm/2DTileMapLevelEditor/internal/tilemap"
)

// useTestConfig points the commands at the default config with a
// temporary library database.
func useTestConfig(t *testing.T) {
	t.Helper()
	prev := appConfig
	appConfig = config.DefaultEditorConfig()
	appConfig.Storage.DBPath = filepath.Join(t.TempDir(), "levels.db")
	t.Cleanup(func() { appConfig = prev })
}

func sampleLevel(t *testing.T) levels.Level {
	t.Helper()
	g, err := tilemap.NewGrid(3, 2, 2)
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	g.Set(0, 0, 0, 0)
	g.Set(2, 1, 0, 2)
	return levels.Level{Name: "sample", Grid: g}
}

func TestPrintLevel(t *testing.T) {
	tiles := config.DefaultEditorConfig().Tiles
	lvl := sampleLevel(t)

	var buf bytes.Buffer
	printLevel(&buf, lvl, tiles, -1, false)
	out := buf.String()

	if !strings.Contains(out, "sample - 3x2, 2 layers, 2 tiles") {
		t.Errorf("missing title in output:\n%s", out)
	}
	if !strings.Contains(out, "layer 0") {
		t.Errorf("missing layer 0 in output:\n%s", out)
	}
	if strings.Contains(out, "layer 1") {
		t.Errorf("empty layer 1 should be skipped:\n%s", out)
	}

	// Top row first: the water tile at y=1 comes before the wall at y=0
	water := strings.Index(out, "~")
	wall := strings.Index(out, "█")
	if water < 0 || wall < 0 || water > wall {
		t.Errorf("rows out of order (water at %d, wall at %d):\n%s", water, wall, out)
	}
}

func TestPrintLevelSingleLayer(t *testing.T) {
	tiles := config.DefaultEditorConfig().Tiles
	lvl := sampleLevel(t)

	var buf bytes.Buffer
	printLevel(&buf, lvl, tiles, 1, false)
	out := buf.String()

	if !strings.Contains(out, "layer 1") {
		t.Errorf("selected empty layer should be printed:\n%s", out)
	}
	if strings.Contains(out, "layer 0") {
		t.Errorf("only layer 1 should be printed:\n%s", out)
	}
}

func TestRenderTileWithoutGlyph(t *testing.T) {
	tiles := config.TilesConfig{Count: 20, Palette: []config.TileStyle{{}}}
	if got := renderTile(tiles, 13); !strings.Contains(got, "3") {
		t.Errorf("renderTile() = %q, expected digit fallback", got)
	}
}

func TestLibrarySaveExportDelete(t *testing.T) {
	useTestConfig(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "castle.lvl")
	g, _ := tilemap.NewGrid(16, 14, 10)
	g.Set(1, 2, 3, 4)
	if err := levels.SaveFile(src, levels.Level{Grid: g}); err != nil {
		t.Fatalf("SaveFile() failed: %v", err)
	}

	if err := runLibrarySave(nil, []string{src}); err != nil {
		t.Fatalf("library save failed: %v", err)
	}

	out := filepath.Join(dir, "copy.yaml")
	if err := runLibraryExport(nil, []string{"castle", out}); err != nil {
		t.Fatalf("library export failed: %v", err)
	}
	lvl, err := levels.LoadFile(out, levels.Size{W: 16, H: 14, L: 10})
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if !lvl.Grid.Equal(g) {
		t.Error("exported level differs from the stored one")
	}

	if err := runLibraryDelete(nil, []string{"castle"}); err != nil {
		t.Fatalf("library delete failed: %v", err)
	}
	err = runLibraryDelete(nil, []string{"castle"})
	if !errors.Is(err, storage.ErrLevelNotFound) {
		t.Errorf("second delete error = %v, expected ErrLevelNotFound", err)
	}
}

func TestLoadLevelArgFallsBackToLevelsDir(t *testing.T) {
	useTestConfig(t)
	appConfig.Files.LevelsDir = t.TempDir()
	chdir(t, t.TempDir())

	g, _ := tilemap.NewGrid(16, 14, 10)
	g.Set(0, 0, 0, 1)
	if err := levels.SaveFile(filepath.Join(appConfig.Files.LevelsDir, "castle.lvl"), levels.Level{Grid: g}); err != nil {
		t.Fatalf("SaveFile() failed: %v", err)
	}

	lvl, err := loadLevelArg("castle")
	if err != nil {
		t.Fatalf("loadLevelArg() failed: %v", err)
	}
	if !lvl.Grid.Equal(g) {
		t.Error("loaded level differs from the saved one")
	}

	if _, err := loadLevelArg("missing"); !errors.Is(err, levels.ErrLevelNotFound) {
		t.Errorf("loadLevelArg() error = %v, expected ErrLevelNotFound", err)
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q) failed: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restoring working directory failed: %v", err)
		}
	})
}
