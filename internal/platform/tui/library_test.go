package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hnjm/2DTileMapLevelEditor/internal/storage"
)

func openLibraryStore(t *testing.T, names ...string) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "levels.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	for _, name := range names {
		if _, err := store.SaveLevel(name, 1, 1, 1, "\t01,"); err != nil {
			t.Fatalf("SaveLevel() failed: %v", err)
		}
	}
	return store
}

func updateLibrary(t *testing.T, m LibraryModel, msg tea.Msg) LibraryModel {
	t.Helper()
	next, _ := m.Update(msg)
	lm, ok := next.(LibraryModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected LibraryModel", next)
	}
	return lm
}

func TestLibraryListsLevels(t *testing.T) {
	store := openLibraryStore(t, "beta", "alpha")
	m := NewLibraryModel(store, 100, 30)

	if len(m.levels) != 2 || m.levels[0].Name != "alpha" {
		t.Fatalf("levels = %+v, expected alpha and beta", m.levels)
	}
	if view := m.View(); !strings.Contains(view, "alpha") || !strings.Contains(view, "2 levels") {
		t.Errorf("View() missing level rows or stats:\n%s", view)
	}
}

func TestLibraryOpenSelected(t *testing.T) {
	store := openLibraryStore(t, "alpha", "beta")
	m := NewLibraryModel(store, 100, 30)

	m = updateLibrary(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateLibrary(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	rec := m.Chosen()
	if rec == nil || rec.Name != "beta" || rec.Text != "\t01," {
		t.Errorf("Chosen() = %+v, expected beta", rec)
	}
}

func TestLibraryDeleteNeedsConfirmation(t *testing.T) {
	store := openLibraryStore(t, "doomed", "kept")
	m := NewLibraryModel(store, 100, 30)

	m = updateLibrary(t, m, runeKey("d"))
	if m.pendingDelete != "doomed" {
		t.Fatalf("pendingDelete = %q, expected doomed", m.pendingDelete)
	}

	// Any other key cancels
	m = updateLibrary(t, m, runeKey("r"))
	if m.pendingDelete != "" {
		t.Error("other key should cancel the pending delete")
	}

	m = updateLibrary(t, m, runeKey("d"))
	m = updateLibrary(t, m, runeKey("d"))
	if len(m.levels) != 1 || m.levels[0].Name != "kept" {
		t.Errorf("levels after delete = %+v", m.levels)
	}
	if _, err := store.LoadLevel("doomed"); !errors.Is(err, storage.ErrLevelNotFound) {
		t.Errorf("LoadLevel(doomed) error = %v, expected not found", err)
	}
}

func TestLibraryBackAndSave(t *testing.T) {
	store := openLibraryStore(t)
	m := NewLibraryModel(store, 100, 30)

	if !strings.Contains(m.View(), "No levels") {
		t.Error("empty library should say so")
	}

	if m = updateLibrary(t, m, runeKey("s")); !m.WantsSave() {
		t.Error("s should request storing the open level")
	}
	if m = updateLibrary(t, m, tea.KeyMsg{Type: tea.KeyEsc}); !m.IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestLibraryWithoutStore(t *testing.T) {
	m := NewLibraryModel(nil, 80, 24)

	if !errors.Is(m.err, ErrNoLibrary) {
		t.Errorf("err = %v, expected ErrNoLibrary", m.err)
	}
	m = updateLibrary(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Chosen() != nil {
		t.Error("nothing can be opened without a store")
	}
}
