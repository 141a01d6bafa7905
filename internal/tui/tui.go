// Package tui provides a Bubble Tea terminal user interface for browsing
// albums as a grid of cover tiles.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/albumgrid/internal/artwork"
	"github.com/handiism/albumgrid/internal/config"
	"github.com/handiism/albumgrid/internal/dnd"
	"github.com/handiism/albumgrid/internal/grid"
	"github.com/handiism/albumgrid/internal/layout"
	"github.com/handiism/albumgrid/internal/model"
	"github.com/handiism/albumgrid/internal/queue"
	"github.com/handiism/albumgrid/internal/source"
	"github.com/handiism/albumgrid/internal/window"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	menuItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	menuSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Bold(true).
				Foreground(lipgloss.Color("#000000")).
				Background(lipgloss.Color("#F8B500"))
)

// headerHeight is the number of lines above the grid.
const headerHeight = 2

// State represents the current UI state.
type State int

const (
	StateBrowsing State = iota
	StateMenu
	StateFilter
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   queue.ProgressLevel
}

type menuAction int

const (
	menuPlay menuAction = iota
	menuAddToQueue
	menuGoToArtist
)

var menuActions = []menuAction{menuPlay, menuAddToQueue, menuGoToArtist}

func (a menuAction) String() string {
	switch a {
	case menuPlay:
		return "Play"
	case menuAddToQueue:
		return "Add to queue"
	case menuGoToArtist:
		return "Go to artist"
	}
	return ""
}

// Options configures a Model.
type Options struct {
	Settings *config.Settings
	Source   source.Source

	// Watcher, when set, reloads the settings whenever the file changes.
	Watcher *Watcher
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	settings *config.Settings
	src      source.Source
	watcher  *Watcher

	container *grid.Container
	win       *window.Window
	drags     *dnd.Registry
	covers    *artwork.Fetcher
	queue     *queue.Manager
	target    dnd.Target
	events    chan queue.ProgressEvent

	// List state
	list     grid.ListContext
	listGen  uint64
	listMode grid.DisplayMode
	loader   window.Loader
	known    map[string]*model.Album

	// Render state
	frame    grid.Frame
	bounds   layout.Bounds
	class    layout.WidthClass
	cells    layout.TileCells
	gridRows int
	focus    int
	focusKey string

	// Painted covers by tile key, and keys with a fetch in flight
	art       map[string]string
	requested map[string]bool

	menuAlbum  *model.Album
	menuCursor int

	spinner  spinner.Model
	progress progress.Model
	filter   textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	logs []LogEntry

	ctx        context.Context
	cancel     context.CancelFunc
	loadCtx    context.Context
	loadCancel context.CancelFunc

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(opts Options) (Model, error) {
	if opts.Source == nil {
		return Model{}, errors.New("tui: no album source")
	}
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}

	covers, err := artwork.NewFetcher(opts.Source, settings.CoverArtSize, settings.MaxConcurrentCovers, settings.CoverCacheSize)
	if err != nil {
		return Model{}, fmt.Errorf("cover cache: %w", err)
	}

	events := make(chan queue.ProgressEvent, 64)
	q := queue.NewManager(opts.Source, settings.ToQueueOptions(), func(event queue.ProgressEvent) {
		select {
		case events <- event:
		default:
			log.Printf("queue: %s", event.Message)
		}
	})

	known := make(map[string]*model.Album)
	drags := dnd.NewRegistry()
	win := window.New(settings.ToWindowOptions())

	ti := textinput.New()
	ti.Placeholder = "artist name or id"
	ti.CharLimit = 200
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	ctx, cancel := context.WithCancel(context.Background())

	metrics := settings.CellMetrics()
	return Model{
		state:     StateBrowsing,
		settings:  settings,
		src:       opts.Source,
		watcher:   opts.Watcher,
		container: grid.NewContainer(settings.ToGridOptions(), opts.Source, drags, win),
		win:       win,
		drags:     drags,
		covers:    covers,
		queue:     q,
		target:    q.Target(func(id string) *model.Album { return known[id] }),
		events:    events,
		list:      grid.ListContext{ListType: settings.ListType},
		known:     known,
		cells:     metrics.Cells(layout.Compute(layout.Bounds{}, layout.Columns(layout.XS))),
		art:       make(map[string]string),
		requested: make(map[string]bool),
		spinner:   sp,
		progress:  prog,
		filter:    ti,
		viewport:  viewport.New(0, 0),
		help:      help.New(),
		keys:      defaultKeyMap,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, reload, waitForEvent(m.events)}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Next())
	}
	return tea.Batch(cmds...)
}

// Queue returns the play queue.
func (m Model) Queue() *queue.Manager {
	return m.queue
}

// Frame returns the last rendered frame.
func (m Model) Frame() grid.Frame {
	return m.frame
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-30, 10), 60)
		m.relayout()
		cmds = append(cmds, m.render())

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ReloadMsg:
		cmds = append(cmds, m.reload())

	case ListLoadedMsg:
		cmds = append(cmds, m.applyList(msg))

	case PageLoadedMsg:
		cmds = append(cmds, m.applyPage(msg.Result))

	case CoverMsg:
		m.applyCover(msg.Result)

	case ProgressMsg:
		m.addLog(msg.Event.Message, msg.Event.Level)
		cmds = append(cmds, waitForEvent(m.events))

	case ExportDoneMsg:
		if msg.Err != nil {
			m.addLog(fmt.Sprintf("Export failed: %v", msg.Err), queue.LevelError)
		}

	case ConfigChangedMsg:
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.Next())
		}
		if msg.Err != nil {
			m.addLog(fmt.Sprintf("Config error: %v", msg.Err), queue.LevelError)
			break
		}
		cmds = append(cmds, m.applySettings(msg.Settings))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quit()
		return tea.Quit
	}
	switch m.state {
	case StateFilter:
		return m.handleFilterKey(msg)
	case StateMenu:
		return m.handleMenuKey(msg)
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.quit()
		return tea.Quit
	case key.Matches(msg, k.Up):
		return m.moveFocus(-m.columns())
	case key.Matches(msg, k.Down):
		return m.moveFocus(m.columns())
	case key.Matches(msg, k.Left):
		return m.moveFocus(-1)
	case key.Matches(msg, k.Right):
		return m.moveFocus(1)
	case key.Matches(msg, k.PageUp):
		return m.moveFocus(-m.columns() * m.visibleRows())
	case key.Matches(msg, k.PageDown):
		return m.moveFocus(m.columns() * m.visibleRows())
	case key.Matches(msg, k.Home):
		return m.moveFocus(-m.focus)
	case key.Matches(msg, k.End):
		return m.moveFocus(m.frame.Extent - 1 - m.focus)

	case key.Matches(msg, k.Play):
		if a := m.focusedAlbum(); a != nil {
			m.queue.Play(a)
		}
	case key.Matches(msg, k.Menu):
		if a := m.focusedAlbum(); a != nil {
			m.state = StateMenu
			m.menuAlbum = a
			m.menuCursor = 0
		}
	case key.Matches(msg, k.Drag):
		m.dragFocused()
	case key.Matches(msg, k.SortByYear):
		if t := m.focusedTile(); t != nil && t.Kind == grid.TileContent && t.Subtitle.Kind == grid.SubtitleYearRange {
			m.settings.ListType = grid.ListTypeByYear
			return m.reload()
		}

	case key.Matches(msg, k.Filter):
		m.state = StateFilter
		m.filter.SetValue("")
		return m.filter.Focus()
	case key.Matches(msg, k.ClearFilter):
		if m.list.IsArtistView() {
			m.list.FilterValues = grid.Filter{}
			return m.reload()
		}
	case key.Matches(msg, k.ListType):
		m.settings.ListType = nextListType(m.settings.ListType)
		return m.reload()
	case key.Matches(msg, k.Mode):
		m.settings.InfiniteScroll = !m.settings.InfiniteScroll
		m.container.SetOptions(m.settings.ToGridOptions())
		return m.reload()
	case key.Matches(msg, k.Reload):
		return m.reload()

	case key.Matches(msg, k.Export):
		if m.queue.Len() == 0 {
			m.addLog("Queue is empty", queue.LevelWarning)
			return nil
		}
		m.addLog("Exporting queue...", queue.LevelInfo)
		return exportQueue(m.ctx, m.queue, m.settings.QueueExportPath)
	case key.Matches(msg, k.ClearQueue):
		m.queue.Clear()
		m.addLog("Queue cleared", queue.LevelInfo)

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
		return m.render()
	}
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.state = StateBrowsing
		m.filter.Blur()
		m.list.FilterValues = grid.Filter{ArtistID: m.resolveArtist(m.filter.Value())}
		return m.reload()
	case tea.KeyEsc:
		m.state = StateBrowsing
		m.filter.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return cmd
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	n := len(menuActions)
	switch {
	case msg.Type == tea.KeyEnter:
		m.state = StateBrowsing
		return m.runMenu(menuActions[m.menuCursor])
	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keys.Menu):
		m.state = StateBrowsing
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.menuCursor = (m.menuCursor + n - 1) % n
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.menuCursor = (m.menuCursor + 1) % n
	}
	return nil
}

func (m *Model) runMenu(action menuAction) tea.Cmd {
	a := m.menuAlbum
	m.menuAlbum = nil
	if a == nil {
		return nil
	}
	switch action {
	case menuPlay:
		m.queue.Play(a)
	case menuAddToQueue:
		m.queue.Add(a)
	case menuGoToArtist:
		m.list.FilterValues = grid.Filter{ArtistID: a.ArtistID}
		return m.reload()
	}
	return nil
}

// dragFocused drags the focused tile onto the play queue.
func (m *Model) dragFocused() {
	if _, ok := m.drags.Drag(m.focusKey, m.target); !ok {
		m.addLog("Nothing to drag here", queue.LevelWarning)
	}
}

// resolveArtist maps an artist name to its id using the records seen so
// far. Unknown names are used as ids.
func (m *Model) resolveArtist(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	for _, a := range m.known {
		if strings.EqualFold(a.Artist, name) {
			return a.ArtistID
		}
	}
	return name
}

func (m *Model) quit() {
	if m.loadCancel != nil {
		m.loadCancel()
	}
	m.cancel()
}

func (m *Model) mode() grid.DisplayMode {
	return m.container.Options().Mode
}

func (m *Model) columns() int {
	return layout.Columns(m.class)
}

func (m *Model) visibleRows() int {
	return max(m.gridRows/max(m.cells.TotalHeight, 1), 1)
}

func (m *Model) footerHeight() int {
	rows := 1
	if m.help.ShowAll {
		for _, group := range m.keys.FullHelp() {
			rows = max(rows, len(group))
		}
	}
	return 2 + rows
}

// relayout derives the grid bounds and the tile footprint from the
// terminal size.
func (m *Model) relayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	scr := MeasureScreen(m.settings, m.width, m.height-headerHeight-m.footerHeight())
	m.class = scr.Class
	m.bounds = scr.Bounds
	m.gridRows = scr.Rows
	if scr.Cells != m.cells {
		clear(m.art)
		clear(m.requested)
		m.cells = scr.Cells
	}
	m.viewport.Width = scr.Width
	m.viewport.Height = scr.Rows
}

// reload drops the current list request and starts a new one.
func (m *Model) reload() tea.Cmd {
	if m.loadCancel != nil {
		m.loadCancel()
	}
	m.loadCtx, m.loadCancel = context.WithCancel(m.ctx)

	mode := m.mode()
	if mode != m.listMode {
		m.list.IDs, m.list.Data = nil, nil
		m.listMode = mode
	}
	m.listGen++
	m.list.ListType = m.settings.ListType
	m.list.Loading = true
	m.focus = 0
	m.viewport.GotoTop()

	if mode == grid.Incremental {
		m.loader = m.src.Loader(m.list.ListType, m.list.FilterValues)
		m.win.Reset()
		m.list.IDs, m.list.Data = []string{}, map[string]*model.Album{}
		return m.render()
	}

	m.loader = nil
	return tea.Batch(
		m.render(),
		loadList(m.loadCtx, m.src, m.list.ListType, m.list.FilterValues, m.listGen),
	)
}

func (m *Model) applyList(msg ListLoadedMsg) tea.Cmd {
	if msg.Generation != m.listGen || m.listMode != grid.Bulk {
		return nil
	}
	m.list.Loading = false
	if msg.Err != nil {
		m.addLog(fmt.Sprintf("Error loading albums: %v", msg.Err), queue.LevelError)
		if m.list.IDs == nil {
			m.list.IDs, m.list.Data = []string{}, map[string]*model.Album{}
		}
		return m.render()
	}

	ids, data := model.Index(msg.Albums)
	for id, a := range data {
		m.known[id] = a
	}
	m.list.IDs, m.list.Data = ids, data
	m.addLog(fmt.Sprintf("Loaded %d albums", len(ids)), queue.LevelVerbose)
	return m.render()
}

func (m *Model) applyPage(res window.Result) tea.Cmd {
	if res.Generation != m.win.Generation() || m.listMode != grid.Incremental {
		return nil
	}
	m.list.Loading = false

	err := m.win.Apply(res)
	switch {
	case errors.Is(err, window.ErrStale):
	case err != nil:
		if !errors.Is(err, context.Canceled) {
			m.addLog(fmt.Sprintf("Error loading page %d: %v", res.Index, err), queue.LevelError)
		}
	default:
		for _, a := range res.Page.Records {
			if a != nil {
				m.known[a.ID] = a
			}
		}
	}
	return m.render()
}

func (m *Model) applyCover(res artwork.Result) {
	if errors.Is(res.Err, context.Canceled) {
		return
	}
	delete(m.requested, res.Key)
	if m.frame.Position(res.Key) < 0 || res.Cols != m.cells.Width || res.Rows != m.cells.CoverRows {
		return
	}
	if res.Err != nil {
		log.Printf("Cover %s: %v", res.Key, res.Err)
	}
	m.art[res.Key] = res.Art
	if m.mode() == grid.Bulk {
		m.viewport.SetContent(m.painter().Paint(m.frame))
	}
}

func (m *Model) applySettings(s *config.Settings) tea.Cmd {
	old := m.settings
	if s.Source != old.Source || s.ServerURL != old.ServerURL || s.LibraryPath != old.LibraryPath || s.PageSize != old.PageSize {
		m.addLog("Source and page size changes apply after restart", queue.LevelWarning)
	}
	m.settings = s
	m.container.SetOptions(s.ToGridOptions())
	m.relayout()
	m.addLog("Settings reloaded", queue.LevelInfo)

	if s.InfiniteScroll != old.InfiniteScroll || s.ListType != old.ListType {
		return m.reload()
	}
	return m.render()
}

// moveFocus moves the focus by delta items and scrolls it into view.
func (m *Model) moveFocus(delta int) tea.Cmd {
	n := m.frame.Extent
	if n == 0 || m.frame.Hidden {
		return nil
	}
	m.focus = min(max(m.focus+delta, 0), n-1)
	if m.mode() == grid.Incremental {
		m.win.ScrollToIndex(m.focus)
	} else {
		m.scrollBulkTo(m.focus)
	}
	return m.render()
}

func (m *Model) scrollBulkTo(index int) {
	h := max(m.cells.TotalHeight, 1)
	top := (index / m.columns()) * h
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case top+h > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(top + h - m.viewport.Height)
	}
}

func (m *Model) renderFrame(hover string) grid.Frame {
	return m.container.Render(m.list, grid.View{
		Bounds:    m.bounds,
		Class:     m.class,
		Hover:     hover,
		RowHeight: m.rowHeight(),
	})
}

// rowHeight is the painted height of a grid row in pixels, or zero before
// the terminal size is known.
func (m *Model) rowHeight() float64 {
	if !m.bounds.Measured {
		return 0
	}
	return float64(m.cells.TotalHeight) * m.settings.CellHeightPx
}

// render runs a render pass and returns the page and cover requests it
// made necessary.
func (m *Model) render() tea.Cmd {
	f := m.renderFrame(m.focusKey)
	if f.Extent > 0 && m.focus >= f.Extent {
		m.focus = f.Extent - 1
	}
	if k := keyAt(f, m.focus); k != m.focusKey {
		m.focusKey = k
		f = m.renderFrame(k)
	}
	m.frame = f
	if m.mode() == grid.Bulk {
		m.viewport.SetContent(m.painter().Paint(f))
	}

	var cmds []tea.Cmd
	if m.mode() == grid.Incremental && m.loader != nil {
		for _, req := range m.win.Pending() {
			cmds = append(cmds, loadPage(m.loadCtx, m.loader, req))
		}
	}
	cmds = append(cmds, m.requestCovers()...)
	return tea.Batch(cmds...)
}

func keyAt(f grid.Frame, index int) string {
	for _, t := range f.Tiles {
		if t.Index == index {
			return t.Key
		}
	}
	return ""
}

// visibleTiles returns the tiles on screen.
func (m *Model) visibleTiles() []grid.Tile {
	if m.frame.Hidden {
		return nil
	}
	if m.mode() == grid.Incremental {
		return m.frame.Tiles
	}
	h := max(m.cells.TotalHeight, 1)
	cols := max(m.frame.Columns, 1)
	first := min((m.viewport.YOffset/h)*cols, len(m.frame.Tiles))
	last := min(((m.viewport.YOffset+m.viewport.Height)/h+1)*cols, len(m.frame.Tiles))
	return m.frame.Tiles[first:last]
}

// requestCovers starts cover fetches for visible tiles and cancels the
// fetches of tiles that left the screen.
func (m *Model) requestCovers() []tea.Cmd {
	if !m.bounds.Measured {
		return nil
	}
	visible := m.visibleTiles()
	keys := make([]string, 0, len(visible))
	var cmds []tea.Cmd
	for _, t := range visible {
		keys = append(keys, t.Key)
		if t.Kind != grid.TileContent || t.Cover.Kind != grid.CoverImage || t.Record == nil {
			continue
		}
		if _, ok := m.art[t.Key]; ok || m.requested[t.Key] {
			continue
		}
		req := artwork.Request{Key: t.Key, Album: t.Record, Cols: m.cells.Width, Rows: m.cells.CoverRows}
		if art, ok := m.covers.Cached(req); ok {
			m.art[t.Key] = art
			continue
		}
		if !t.Record.HasCoverArt() {
			m.art[t.Key] = ""
			continue
		}
		m.requested[t.Key] = true
		cmds = append(cmds, fetchCover(m.ctx, m.covers, req))
	}

	if n := m.covers.Retain(keys); n > 0 {
		log.Printf("Canceled %d cover fetches", n)
	}
	onScreen := make(map[string]bool, len(keys))
	for _, k := range keys {
		onScreen[k] = true
	}
	for k := range m.requested {
		if !onScreen[k] {
			delete(m.requested, k)
		}
	}
	return cmds
}

func (m Model) painter() Painter {
	art := m.art
	return Painter{
		Cells: m.cells,
		Focus: m.focusKey,
		Art: func(key string) (string, bool) {
			a, ok := art[key]
			return a, ok
		},
	}
}

func (m *Model) focusedTile() *grid.Tile {
	pos := m.frame.Position(m.focusKey)
	if m.focusKey == "" || pos < 0 {
		return nil
	}
	return &m.frame.Tiles[pos]
}

func (m *Model) focusedAlbum() *model.Album {
	if t := m.focusedTile(); t != nil && t.Kind == grid.TileContent {
		return t.Record
	}
	return nil
}

func (m *Model) addLog(message string, level queue.ProgressLevel) {
	if level == queue.LevelError {
		log.Print(message)
	}
	m.logs = append(m.logs, LogEntry{Message: message, Level: level})
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

func nextListType(current string) string {
	types := grid.ListTypes()
	for i, t := range types {
		if t == current {
			return types[(i+1)%len(types)]
		}
	}
	return types[0]
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewGrid())
	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return b.String()
}

func (m Model) viewHeader() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ albumgrid"))
	b.WriteString(" ")
	b.WriteString(dimStyle.Render(m.src.Name()))
	b.WriteString("\n")

	info := fmt.Sprintf("%s · %s · %s/%d cols · queue %d",
		m.list.ListType, m.mode(), m.class, m.columns(), m.queue.Len())
	if m.list.IsArtistView() {
		info += " · artist " + m.list.FilterValues.ArtistID
	}
	b.WriteString(infoStyle.Render(info))

	return b.String()
}

func (m Model) viewGrid() string {
	var body string
	switch {
	case m.frame.Hidden:
		body = m.spinner.View() + " " + subtitleStyle.Render("Loading albums...")
	case len(m.frame.Tiles) == 0:
		body = dimStyle.Render("No albums")
	case m.mode() == grid.Incremental:
		body = m.viewWindow()
	default:
		body = m.viewport.View()
	}
	return lipgloss.NewStyle().
		PaddingLeft(m.settings.MarginCells).
		Height(max(m.gridRows, 1)).
		Render(body)
}

// viewWindow crops the incremental frame, which includes overscan rows, to
// the rows inside the viewport.
func (m Model) viewWindow() string {
	painted := m.painter().Paint(m.frame)
	h := max(m.cells.TotalHeight, 1)
	cols := max(m.frame.Columns, 1)
	firstRow := int(m.win.ScrollTop() / m.frame.RowHeight)
	frameRow := m.frame.Tiles[0].Index / cols
	return crop(painted, (firstRow-frameRow)*h, m.gridRows)
}

func (m Model) viewFooter() string {
	var b strings.Builder

	switch m.state {
	case StateFilter:
		b.WriteString(subtitleStyle.Render("Artist: "))
		b.WriteString(m.filter.View())
	case StateMenu:
		b.WriteString(m.viewMenu())
	default:
		if len(m.logs) > 0 {
			b.WriteString(renderLog(m.logs[len(m.logs)-1]))
		}
	}
	b.WriteString("\n")

	if m.mode() == grid.Incremental {
		var percent float64
		if extent := m.win.Extent(); extent > 0 {
			percent = float64(m.win.Loaded()) / float64(extent)
		}
		total := "?"
		if m.win.Total() >= 0 {
			total = fmt.Sprint(m.win.Total())
		}
		b.WriteString(m.progress.ViewAs(percent))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %d/%s loaded", m.win.Loaded(), total)))
	} else {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d albums", len(m.list.IDs))))
	}
	b.WriteString("\n")

	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder
	if m.menuAlbum != nil {
		b.WriteString(subtitleStyle.Render(m.menuAlbum.Name))
		b.WriteString(" ")
	}
	for i, action := range menuActions {
		if i == m.menuCursor {
			b.WriteString(menuSelectedStyle.Render(action.String()))
		} else {
			b.WriteString(menuItemStyle.Render(action.String()))
		}
	}
	return b.String()
}

func renderLog(entry LogEntry) string {
	var style lipgloss.Style
	prefix := "•"
	switch entry.Level {
	case queue.LevelError:
		style = errorStyle
		prefix = "✗"
	case queue.LevelWarning:
		style = warningStyle
		prefix = "!"
	case queue.LevelSuccess:
		style = successStyle
		prefix = "✓"
	case queue.LevelInfo:
		style = infoStyle
		prefix = "›"
	default:
		style = dimStyle
	}
	return style.Render(prefix + " " + entry.Message)
}

// Run starts the TUI application.
//
// configPath, when not empty, is watched so edits apply while running.
func Run(settings *config.Settings, configPath string) error {
	if settings.LogPath != "" {
		f, err := tea.LogToFile(settings.LogPath, "albumgrid")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := source.Open(ctx, settings)
	if err != nil {
		return err
	}
	log.Printf("Opened %s", src.Name())

	var watcher *Watcher
	if configPath != "" {
		if watcher, err = NewWatcher(configPath); err != nil {
			log.Printf("Config watch disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	m, err := NewModel(Options{Settings: settings, Source: src, Watcher: watcher})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
