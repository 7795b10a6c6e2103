package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/huffmanks/movie-picker/internal/domain"
	"github.com/huffmanks/movie-picker/internal/pipeline"
	"github.com/huffmanks/movie-picker/internal/selection"
	"github.com/huffmanks/movie-picker/internal/tui/components"
	"github.com/huffmanks/movie-picker/internal/tui/styles"
)

// Model is the root bubbletea model. It owns the control state (query,
// genre, sort, content type) and drives the pipeline on every change; the
// pipelines and services are injected rather than reached for globally.
type Model struct {
	pipelines    map[domain.ContentType]*pipeline.Pipeline
	genres       map[domain.ContentType][]string
	selectionSvc *selection.Service
	keys         KeyMap
	logger       *slog.Logger

	// Control state
	contentType domain.ContentType
	searchInput textinput.Model
	genreIdx    int // 0 = all genres, 1..n = genres[contentType][genreIdx-1]
	sortKey     domain.SortKey

	// Debounce: every edit bumps inputSeq; timer messages carrying an
	// older seq are stale and dropped (last writer wins).
	inputSeq  int
	debounce  time.Duration
	idleAfter time.Duration

	// Result state
	results  []*domain.MediaItem
	cursor   int
	selected map[string]bool // refID -> membership, mirrors the store

	// Panels
	sortModal     components.SortModal
	shortlist     components.Shortlist
	showShortlist bool

	// Transient status line
	status    string
	statusSeq int

	width  int
	height int
}

// Options carries the timing knobs from config
type Options struct {
	Debounce  time.Duration
	IdleAfter time.Duration
}

// NewModel creates the root model. pipelines and genres must hold an entry
// per content type.
func NewModel(
	pipelines map[domain.ContentType]*pipeline.Pipeline,
	genres map[domain.ContentType][]string,
	selectionSvc *selection.Service,
	opts Options,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	if opts.IdleAfter <= 0 {
		opts.IdleAfter = 3 * time.Second
	}

	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.PromptStyle = styles.AccentStyle
	ti.PlaceholderStyle = styles.DimStyle

	m := Model{
		pipelines:    pipelines,
		genres:       genres,
		selectionSvc: selectionSvc,
		keys:         DefaultKeyMap(),
		logger:       logger,
		contentType:  domain.ContentTypeMovies,
		searchInput:  ti,
		debounce:     opts.Debounce,
		idleAfter:    opts.IdleAfter,
		sortModal:    components.NewSortModal(),
		shortlist:    components.NewShortlist(),
		selected:     make(map[string]bool),
	}

	m.refreshSelections()
	m.evaluate(false)
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.shortlist.SetSize(min(60, msg.Width-4), msg.Height-6)
		m.searchInput.Width = min(48, msg.Width-10)
		return m, nil

	case debounceMsg:
		if msg.Seq != m.inputSeq {
			return m, nil // superseded by later input
		}
		m.evaluate(true)
		return m, nil

	case idleMsg:
		if msg.Seq == m.inputSeq && m.searchInput.Focused() {
			m.searchInput.Blur()
		}
		return m, nil

	case copiedMsg:
		if msg.Err != nil {
			return m.setStatus(styles.ErrorStyle.Render("copy failed: " + msg.Err.Error()))
		}
		return m.setStatus("copied picks to clipboard")

	case statusClearMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal gets first refusal
	if m.sortModal.IsVisible() {
		if handled, chosen := m.sortModal.HandleKey(msg.String()); handled {
			if chosen != nil {
				m.sortKey = *chosen
				m.evaluate(false)
			}
			return m, nil
		}
	}

	if m.showShortlist {
		return m.handleShortlistKey(msg)
	}

	if m.searchInput.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PageUp):
		m.cursor = max(0, m.cursor-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.cursor = min(len(m.results)-1, m.cursor+m.pageSize())
		if m.cursor < 0 {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = max(0, len(m.results)-1)

	case key.Matches(msg, m.keys.Toggle):
		return m.toggleCurrent()

	case key.Matches(msg, m.keys.Search):
		m.inputSeq++
		return m, tea.Batch(m.searchInput.Focus(), m.idleTick())

	case key.Matches(msg, m.keys.Genre):
		m.cycleGenre(1)
		m.evaluate(false)
	case key.Matches(msg, m.keys.GenreBack):
		m.cycleGenre(-1)
		m.evaluate(false)

	case key.Matches(msg, m.keys.Sort):
		m.sortModal.Show(m.sortKey)

	case key.Matches(msg, m.keys.ContentType):
		m.switchContentType()

	case key.Matches(msg, m.keys.Shortlist):
		m.showShortlist = true
		m.shortlist.SetSelections(m.selectionSvc.List())

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyPicks()

	case key.Matches(msg, m.keys.Reset):
		return m.reset()

	case key.Matches(msg, m.keys.Escape):
		// Clear the query first, then the genre filter
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.evaluate(false)
		} else if m.genreIdx != 0 {
			m.genreIdx = 0
			m.evaluate(false)
		}
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Invalidate any pending debounce tick so it cannot re-enter
		// relevance ordering after the field blurs
		m.inputSeq++
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.inputSeq++
		m.searchInput.Blur()
		m.evaluate(false)
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if m.searchInput.Value() != before {
		m.inputSeq++
		return m, tea.Batch(cmd, m.debounceTick(), m.idleTick())
	}
	return m, cmd
}

func (m Model) handleShortlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.shortlist.Filtering() {
		switch msg.String() {
		case "esc":
			m.shortlist.StopFilter()
			return m, nil
		case "enter":
			m.shortlist.StopFilter()
			return m, nil
		}
		return m, m.shortlist.UpdateFilter(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Shortlist):
		m.showShortlist = false
	case key.Matches(msg, m.keys.Up):
		m.shortlist.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.shortlist.MoveDown()
	case key.Matches(msg, m.keys.Search):
		return m, m.shortlist.StartFilter()
	case key.Matches(msg, m.keys.Toggle):
		if sel := m.shortlist.Current(); sel != nil {
			_, list := m.selectionSvc.Toggle(sel.RefID, sel.Title, sel.Year)
			m.refreshSelectionsFrom(list)
			m.shortlist.SetSelections(list)
		}
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyPicks()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

// === Actions ===

func (m Model) toggleCurrent() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return m, nil
	}
	item := m.results[m.cursor]
	selected, list := m.selectionSvc.Toggle(item.ID, item.Title, item.Year)
	m.refreshSelectionsFrom(list)
	if selected {
		return m.setStatus("added " + item.Label())
	}
	return m.setStatus("removed " + item.Label())
}

func (m Model) copyPicks() tea.Cmd {
	text := m.selectionSvc.ExportText()
	return func() tea.Msg {
		if text == "" {
			return copiedMsg{Err: fmt.Errorf("no picks to copy")}
		}
		return copiedMsg{Err: clipboard.WriteAll(text)}
	}
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.selectionSvc.Clear()
	m.refreshSelections()
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.genreIdx = 0
	m.sortKey = domain.SortNone
	m.evaluate(false)
	return m.setStatus("reset")
}

func (m *Model) switchContentType() {
	if m.contentType == domain.ContentTypeMovies {
		m.contentType = domain.ContentTypeShows
	} else {
		m.contentType = domain.ContentTypeMovies
	}
	// Genre options belong to a catalog; the filter does not carry over.
	m.genreIdx = 0
	m.evaluate(false)
}

func (m *Model) cycleGenre(dir int) {
	options := m.genres[m.contentType]
	n := len(options) + 1 // slot 0 = all
	m.genreIdx = (m.genreIdx + dir + n) % n
}

// currentGenre returns the active genre filter, empty for "all"
func (m *Model) currentGenre() string {
	if m.genreIdx == 0 {
		return ""
	}
	options := m.genres[m.contentType]
	if m.genreIdx-1 >= len(options) {
		return ""
	}
	return options[m.genreIdx-1]
}

// evaluate re-runs the active pipeline with the current control state
func (m *Model) evaluate(liveInput bool) {
	p := m.pipelines[m.contentType]
	if p == nil {
		m.results = nil
		return
	}
	m.results = p.Evaluate(m.searchInput.Value(), m.currentGenre(), m.sortKey, liveInput)
	if m.cursor >= len(m.results) {
		m.cursor = max(0, len(m.results)-1)
	}
}

func (m *Model) refreshSelections() {
	m.refreshSelectionsFrom(m.selectionSvc.List())
}

func (m *Model) refreshSelectionsFrom(list []*domain.Selection) {
	m.selected = make(map[string]bool, len(list))
	for _, sel := range list {
		m.selected[sel.RefID] = true
	}
}

func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{Seq: seq}
	})
}

func (m Model) debounceTick() tea.Cmd {
	seq := m.inputSeq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{Seq: seq}
	})
}

func (m Model) idleTick() tea.Cmd {
	seq := m.inputSeq
	return tea.Tick(m.idleAfter, func(time.Time) tea.Msg {
		return idleMsg{Seq: seq}
	})
}

// === View ===

func (m Model) pageSize() int {
	rows := m.height - 7
	if rows < 1 {
		return 10
	}
	return rows
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder

	// Header: content type, genre, sort
	genre := m.currentGenre()
	if genre == "" {
		genre = "All"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.TitleStyle.Render(m.contentType.String()),
		styles.DimStyle.Render("  ·  "),
		styles.StatusStyle.Render("genre: ")+styles.StatusAccent.Render(genre),
		styles.DimStyle.Render("  ·  "),
		styles.StatusStyle.Render("sort: ")+styles.StatusAccent.Render(m.sortKey.String()),
		styles.DimStyle.Render("  ·  "),
		styles.StatusStyle.Render(fmt.Sprintf("%d results", len(m.results))),
	)
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if m.showShortlist {
		b.WriteString(m.shortlist.View())
		b.WriteString("\n")
		b.WriteString(m.helpLine())
		return b.String()
	}

	if m.sortModal.IsVisible() {
		b.WriteString(m.sortModal.View())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.listView())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(styles.AccentStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.helpLine())
	return b.String()
}

func (m Model) listView() string {
	if len(m.results) == 0 {
		return styles.DimStyle.Render("  no matches")
	}

	rows := m.pageSize()
	offset := 0
	if m.cursor >= rows {
		offset = m.cursor - rows + 1
	}

	var b strings.Builder
	for i := offset; i < len(m.results) && i < offset+rows; i++ {
		item := m.results[i]

		marker := styles.UnselectedChar
		if m.selected[item.ID] {
			marker = styles.SelectedStyle.Render(styles.SelectedChar)
		}

		line := fmt.Sprintf("%s %s", marker, item.Label())
		meta := fmt.Sprintf("  %.1f  %s", item.Rating, strings.Join(item.Genre, ", "))

		if i == m.cursor {
			b.WriteString(styles.CursorStyle.Render(styles.Pad(line, m.width-2)))
		} else {
			b.WriteString(styles.SubtitleStyle.Render(line) + styles.DimStyle.Render(meta))
		}
		b.WriteString("\n")
	}

	if remaining := len(m.results) - offset - rows; remaining > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  ↓ %d more", remaining)))
	}
	return b.String()
}

func (m Model) helpLine() string {
	help := "/ search · g genre · s sort · tab movies/shows · space pick · b picks · c copy · r reset · q quit"
	return styles.DimStyle.Render(help)
}
