package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/hnjm/2DTileMapLevelEditor/internal/config"
	"github.com/hnjm/2DTileMapLevelEditor/internal/core"
	"github.com/hnjm/2DTileMapLevelEditor/internal/editor"
	"github.com/hnjm/2DTileMapLevelEditor/internal/levels"
	"github.com/hnjm/2DTileMapLevelEditor/internal/storage"
	"github.com/hnjm/2DTileMapLevelEditor/internal/tilemap"
)

// reloadDelay lets an external writer finish before a changed file is read.
const reloadDelay = 150 * time.Millisecond

type mode int

const (
	modeEdit mode = iota
	modePrompt
	modeLibrary
)

type promptKind int

const (
	promptSave promptKind = iota
	promptLoad
	promptLibrarySave
)

func (k promptKind) title() string {
	switch k {
	case promptSave:
		return "Save as"
	case promptLoad:
		return "Open"
	default:
		return "Store in library as"
	}
}

// fileChangedMsg reports that a watched level file changed on disk.
type fileChangedMsg struct {
	path string
}

// reloadFileMsg asks the model to reread a changed file.
type reloadFileMsg struct {
	path string
}

// watchErrMsg carries a watcher failure.
type watchErrMsg struct {
	err error
}

// Options configures an EditorModel.
type Options struct {
	Config      config.EditorConfig
	Runtime     core.RuntimeConfig
	Store       *storage.Store  // Level library; nil disables it
	Watcher     *levels.Watcher // Reloads the open file when it changes; may be nil
	Loader      *levels.Loader  // Resolves bare level names on open; may be nil
	LibraryOnly bool            // Save and open go to the library instead of files
	Logger      *log.Logger
}

// EditorModel is the Bubble Tea model for editing one level.
type EditorModel struct {
	session     *editor.Session
	keymap      *KeyMapper
	help        help.Model
	screen      *core.Screen
	runtime     core.RuntimeConfig
	layout      mapLayout
	palette     palette
	cursorX     int
	cursorY     int
	mode        mode
	prompt      textinput.Model
	promptKind  promptKind
	library     LibraryModel
	store       *storage.Store
	watcher     *levels.Watcher
	loader      *levels.Loader
	libraryOnly bool
	libraryName string // Name the level was last stored under or opened from
	logger      *log.Logger
	status      string
	statusErr   bool
	statusSeq   int
	quitArmed   bool
	quitting    bool
}

// NewEditorModel creates the editor model for a session.
func NewEditorModel(session *editor.Session, opts Options) EditorModel {
	if opts.Runtime.CellWidth == 0 {
		opts.Runtime.CellWidth = core.DefaultConfig().CellWidth
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 40

	h := help.New()
	h.ShowAll = false
	h.Width = opts.Runtime.ScreenW

	m := EditorModel{
		session:     session,
		keymap:      NewKeyMapper(DefaultEditorKeyMap()),
		help:        h,
		screen:      core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		runtime:     opts.Runtime,
		palette:     newPalette(opts.Config.Tiles),
		prompt:      ti,
		store:       opts.Store,
		watcher:     opts.Watcher,
		loader:      opts.Loader,
		libraryOnly: opts.LibraryOnly,
		logger:      logger,
	}
	m.relayout()
	return m
}

// Init starts listening for file changes when a watcher is set.
func (m EditorModel) Init() tea.Cmd {
	return waitForChange(m.watcher)
}

// waitForChange blocks until the watcher reports a change.
func waitForChange(w *levels.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return fileChangedMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case fileChangedMsg:
		reload := tea.Tick(reloadDelay, func(time.Time) tea.Msg {
			return reloadFileMsg(msg)
		})
		return m, tea.Batch(reload, waitForChange(m.watcher))

	case reloadFileMsg:
		return m.handleReload(msg.path)

	case watchErrMsg:
		m.logger.Warn("watcher error", "error", msg.err)
		return m, tea.Batch(m.setError(msg.err), waitForChange(m.watcher))
	}

	switch m.mode {
	case modePrompt:
		return m.updatePrompt(msg)
	case modeLibrary:
		return m.updateLibrary(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m EditorModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.relayout()

	if m.mode == modeLibrary {
		lib, cmd := m.library.Update(msg)
		m.library = lib.(LibraryModel)
		return m, cmd
	}
	return m, nil
}

// relayout recomputes the map layout and keeps the cursor in view.
func (m *EditorModel) relayout() {
	g := m.session.Grid()
	m.cursorX = core.Clamp(m.cursorX, 0, g.Width()-1)
	m.cursorY = core.Clamp(m.cursorY, 0, g.Height()-1)

	prev := m.layout
	m.layout = computeLayout(m.runtime, g.Width(), g.Height())
	m.layout.scrollX, m.layout.scrollY = prev.scrollX, prev.scrollY
	m.layout = m.layout.follow(m.cursorX, m.cursorY, g.Width(), g.Height())
}

// handleKey processes keyboard input in edit mode.
func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keymap.MapKey(msg)
	if action != core.ActionQuit {
		m.quitArmed = false
	}

	if action == core.ActionNone {
		if id, ok := m.keymap.TileDigit(msg); ok {
			if err := m.session.SelectTile(id); err != nil {
				return m, m.setError(err)
			}
		}
		return m, nil
	}

	if dx, dy, ok := action.CursorDelta(); ok {
		m.cursorX += dx
		m.cursorY += dy
		m.relayout()
		return m, nil
	}

	s := m.session
	switch action {
	case core.ActionApply:
		if s.SelectedTile() == tilemap.Empty {
			return m, m.setStatus("no tile selected")
		}
		s.Click(m.cursorX, m.cursorY)

	case core.ActionErase:
		s.Erase(m.cursorCoord())

	case core.ActionPick:
		if !s.Pick(m.cursorX, m.cursorY) {
			return m, m.setStatus("nothing to pick here")
		}

	case core.ActionToggleFill:
		return m, m.setStatus("tool: " + s.ToggleFillMode().String())

	case core.ActionTilePrev:
		s.CycleTile(-1)

	case core.ActionTileNext:
		s.CycleTile(1)

	case core.ActionLayerUp:
		s.LayerUp()

	case core.ActionLayerDown:
		s.LayerDown()

	case core.ActionToggleIsolate:
		if s.ToggleOnlyShowSelected() {
			return m, m.setStatus("showing only the selected layer")
		}
		return m, m.setStatus("showing all layers")

	case core.ActionToggleGrid:
		s.ToggleGrid()

	case core.ActionUndo:
		if !s.Undo() {
			return m, m.setStatus("nothing to undo")
		}
		m.relayout()

	case core.ActionRedo:
		if !s.Redo() {
			return m, m.setStatus("nothing to redo")
		}
		m.relayout()

	case core.ActionSave:
		if m.libraryOnly {
			return m.openPrompt(promptLibrarySave, m.libraryName)
		}
		return m.openPrompt(promptSave, s.Path())

	case core.ActionLoad:
		if m.libraryOnly {
			return m.openLibrary()
		}
		return m.openPrompt(promptLoad, s.Path())

	case core.ActionNew:
		s.NewGrid()
		m.libraryName = ""
		m.cursorX, m.cursorY = 0, 0
		m.relayout()
		return m, m.setStatus("new level")

	case core.ActionLibrary:
		return m.openLibrary()

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionQuit:
		if s.Dirty() && !m.quitArmed && msg.String() != "ctrl+c" {
			m.quitArmed = true
			return m, m.setStatus("unsaved changes, press q again to quit")
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleMouse paints with the left button and erases with the right one.
// Dragging with the left button keeps painting in pencil mode.
func (m EditorModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.session.CycleTile(1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.session.CycleTile(-1)
		return m, nil
	}

	x, y, ok := m.layout.screenToGrid(msg.X, msg.Y)
	if !ok || !m.session.Grid().InBounds(tilemap.C(x, y, 0)) {
		return m, nil
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.cursorX, m.cursorY = x, y
		m.session.Click(x, y)
	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		m.cursorX, m.cursorY = x, y
		if m.session.Tool() == editor.ToolPencil {
			m.session.Click(x, y)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		m.cursorX, m.cursorY = x, y
		m.session.RightClick(x, y)
	default:
		return m, nil
	}
	m.relayout()
	return m, nil
}

func (m EditorModel) cursorCoord() tilemap.Coord {
	return tilemap.C(m.cursorX, m.cursorY, m.session.SelectedLayer())
}

// openPrompt switches to the text prompt with an initial value.
func (m EditorModel) openPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	m.mode = modePrompt
	m.promptKind = kind
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	switch kind {
	case promptLibrarySave:
		m.prompt.Placeholder = "level name"
	default:
		m.prompt.Placeholder = "path/to/level." + m.extension()
	}
	return m, m.prompt.Focus()
}

func (m EditorModel) extension() string {
	if m.loader != nil {
		return m.loader.Ext
	}
	return levels.DefaultExtension
}

// updatePrompt handles input while the prompt is open.
func (m EditorModel) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "ctrl+c":
			m.mode = modeEdit
			m.prompt.Blur()
			return m, nil
		case "enter":
			m.mode = modeEdit
			m.prompt.Blur()
			return m.submitPrompt(strings.TrimSpace(m.prompt.Value()))
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// submitPrompt runs the action the prompt was opened for.
func (m EditorModel) submitPrompt(value string) (tea.Model, tea.Cmd) {
	s := m.session
	switch m.promptKind {
	case promptSave:
		if err := s.Save(value); err != nil {
			return m, m.setError(pathError(err))
		}
		return m, m.setStatus("saved " + s.Path())

	case promptLoad:
		err := s.Load(m.resolvePath(value))
		m.libraryName = ""
		m.relayout()
		if err != nil {
			return m, m.setError(pathError(err))
		}
		return m, m.setStatus("opened " + s.Path())

	default:
		return m.storeInLibrary(value)
	}
}

// Prompt input errors shown in the status line
var (
	errInvalidPath = errors.New("invalid path given")
	errInvalidName = errors.New("invalid name given")
)

// pathError replaces ErrNoPath with the user-facing notice.
func pathError(err error) error {
	if errors.Is(err, levels.ErrNoPath) {
		return errInvalidPath
	}
	return err
}

// resolvePath maps a bare level name to the levels directory when no file
// with that name exists in the working directory.
func (m EditorModel) resolvePath(value string) string {
	if value == "" || m.loader == nil || filepath.Base(value) != value {
		return value
	}
	if _, err := os.Stat(value); err == nil {
		return value
	}
	return m.loader.PathFor(value)
}

// storeInLibrary encodes the level into the library under name.
func (m EditorModel) storeInLibrary(name string) (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, m.setError(ErrNoLibrary)
	}
	if name == "" {
		return m, m.setError(errInvalidName)
	}
	text, err := m.session.Encode()
	if err != nil {
		return m, m.setError(err)
	}
	g := m.session.Grid()
	if _, err := m.store.SaveLevel(name, g.Width(), g.Height(), g.Layers(), text); err != nil {
		m.logger.Error("library save failed", "name", name, "error", err)
		return m, m.setError(err)
	}
	m.libraryName = name
	m.logger.Info("level stored", "name", name, "bytes", len(text))
	return m, m.setStatus("stored " + name + " in library")
}

// openLibrary switches to the library browser.
func (m EditorModel) openLibrary() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, m.setError(ErrNoLibrary)
	}
	m.library = NewLibraryModel(m.store, m.runtime.ScreenW, m.runtime.ScreenH)
	m.mode = modeLibrary
	return m, m.library.Init()
}

// updateLibrary forwards input to the library browser and acts on its result.
func (m EditorModel) updateLibrary(msg tea.Msg) (tea.Model, tea.Cmd) {
	lib, cmd := m.library.Update(msg)
	m.library = lib.(LibraryModel)

	switch {
	case m.library.Chosen() != nil:
		rec := m.library.Chosen()
		m.mode = modeEdit
		err := m.session.LoadTextSized(rec.Text, rec.Width, rec.Height, rec.Layers)
		m.relayout()
		if err != nil {
			m.logger.Error("library load failed", "name", rec.Name, "error", err)
			return m, m.setError(err)
		}
		m.libraryName = rec.Name
		m.logger.Info("level opened from library", "name", rec.Name)
		return m, m.setStatus("opened " + rec.Name + " from library")

	case m.library.WantsSave():
		m.mode = modeEdit
		return m.openPrompt(promptLibrarySave, m.libraryName)

	case m.library.IsGoingBack():
		m.mode = modeEdit
		return m, nil
	}
	return m, cmd
}

// handleReload rereads the open file after it changed on disk. Unsaved
// edits are never discarded.
func (m EditorModel) handleReload(path string) (tea.Model, tea.Cmd) {
	open := m.session.Path()
	if open == "" || !samePath(open, path) {
		return m, nil
	}
	if m.session.Dirty() {
		return m, m.setStatus("file changed on disk, ctrl+o to reload")
	}

	g := m.session.Grid()
	lvl, err := levels.LoadFile(open, levels.Size{W: g.Width(), H: g.Height(), L: g.Layers()})
	if err != nil {
		m.logger.Warn("reload failed", "path", open, "error", err)
		return m, m.setError(err)
	}
	if lvl.Grid.Equal(g) {
		return m, nil
	}
	if err := m.session.Load(open); err != nil {
		m.relayout()
		return m, m.setError(err)
	}
	m.relayout()
	return m, m.setStatus("reloaded " + filepath.Base(open))
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// setStatus shows a message and schedules its removal.
func (m *EditorModel) setStatus(text string) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = false
	return clearStatusCmd(m.statusSeq)
}

// setError shows an error message and schedules its removal.
func (m *EditorModel) setError(err error) tea.Cmd {
	cmd := m.setStatus(err.Error())
	m.statusErr = true
	return cmd
}

// fileLabel names the open level for the status bar.
func (m EditorModel) fileLabel() string {
	switch {
	case m.session.Path() != "":
		return filepath.Base(m.session.Path())
	case m.libraryName != "":
		return "library:" + m.libraryName
	default:
		return "untitled"
	}
}

// View renders the current state to a string for display.
func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeLibrary {
		return m.library.View()
	}

	drawMap(m.screen, m.session, m.layout, m.palette, m.cursorCoord())
	body := RenderScreen(m.screen)

	if m.runtime.ScreenW >= minWidthForSidebar {
		maxRows := m.runtime.ScreenH - chromeHeight - m.session.Visibility().Layers() - 5
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", renderSidebar(m.session, m.palette, maxRows))
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(renderStatus(m.session, m.runtime.ScreenW, m.fileLabel()))
	b.WriteString("\n")
	b.WriteString(m.bottomLine())
	return b.String()
}

// bottomLine shows the prompt, a status message, or key help.
func (m EditorModel) bottomLine() string {
	switch {
	case m.mode == modePrompt:
		return fmt.Sprintf("%s %s", headingStyle.Render(m.promptKind.title()+":"), m.prompt.View())
	case m.status != "" && m.statusErr:
		return errorStyle.Render(m.status)
	case m.status != "":
		return messageStyle.Render(m.status)
	default:
		return helpStyle.Render(m.help.View(m.keymap.Keys()))
	}
}

// Session returns the edited session.
func (m EditorModel) Session() *editor.Session {
	return m.session
}

// Run starts the Bubble Tea program for a local editing session.
func Run(session *editor.Session, opts Options) error {
	model := NewEditorModel(session, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks and drags paint
	)

	_, err := p.Run()
	return err
}
