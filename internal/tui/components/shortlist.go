package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/huffmanks/movie-picker/internal/domain"
	"github.com/huffmanks/movie-picker/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Shortlist is the panel showing the current picks. It supports narrowing
// with a fuzzy filter and removing entries in place.
type Shortlist struct {
	selections []*domain.Selection

	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into selections

	cursor int
	width  int
	height int
}

// NewShortlist creates the shortlist panel
func NewShortlist() Shortlist {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.CharLimit = 60
	ti.PromptStyle = styles.AccentStyle
	ti.PlaceholderStyle = styles.DimStyle

	return Shortlist{filterInput: ti}
}

// SetSelections replaces the panel contents, clamping the cursor
func (s *Shortlist) SetSelections(selections []*domain.Selection) {
	s.selections = selections
	s.applyFilter()
	if s.cursor >= len(s.visible()) {
		s.cursor = max(0, len(s.visible())-1)
	}
}

// SetSize updates the panel dimensions
func (s *Shortlist) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.filterInput.Width = width - 6
}

// StartFilter focuses the fuzzy filter input
func (s *Shortlist) StartFilter() tea.Cmd {
	s.filterActive = true
	s.filterInput.SetValue("")
	s.applyFilter()
	return s.filterInput.Focus()
}

// StopFilter clears and blurs the filter
func (s *Shortlist) StopFilter() {
	s.filterActive = false
	s.filterInput.Blur()
	s.filterInput.SetValue("")
	s.applyFilter()
	s.cursor = 0
}

// Filtering reports whether the filter input has focus
func (s Shortlist) Filtering() bool {
	return s.filterActive
}

// UpdateFilter forwards a message to the filter input and re-applies it
func (s *Shortlist) UpdateFilter(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.filterInput, cmd = s.filterInput.Update(msg)
	s.applyFilter()
	if s.cursor >= len(s.visible()) {
		s.cursor = max(0, len(s.visible())-1)
	}
	return cmd
}

// applyFilter recomputes filteredIdx with sahilm/fuzzy over the labels
func (s *Shortlist) applyFilter() {
	query := strings.TrimSpace(s.filterInput.Value())
	if query == "" {
		s.filteredIdx = nil
		return
	}

	labels := make([]string, len(s.selections))
	for i, sel := range s.selections {
		labels[i] = strings.ToLower(sel.Label())
	}

	matches := fuzzy.Find(strings.ToLower(query), labels)
	s.filteredIdx = make([]int, len(matches))
	for i, m := range matches {
		s.filteredIdx[i] = m.Index
	}
}

// visible returns the selections currently shown
func (s *Shortlist) visible() []*domain.Selection {
	if s.filteredIdx == nil {
		return s.selections
	}
	out := make([]*domain.Selection, len(s.filteredIdx))
	for i, idx := range s.filteredIdx {
		out[i] = s.selections[idx]
	}
	return out
}

// MoveUp moves the cursor up
func (s *Shortlist) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// MoveDown moves the cursor down
func (s *Shortlist) MoveDown() {
	if s.cursor < len(s.visible())-1 {
		s.cursor++
	}
}

// Current returns the selection under the cursor, or nil
func (s *Shortlist) Current() *domain.Selection {
	visible := s.visible()
	if s.cursor < 0 || s.cursor >= len(visible) {
		return nil
	}
	return visible[s.cursor]
}

// View renders the panel
func (s Shortlist) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Picks (%d)", len(s.selections))
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")

	if s.filterActive {
		b.WriteString(s.filterInput.View())
		b.WriteString("\n")
	}

	visible := s.visible()
	if len(visible) == 0 {
		b.WriteString(styles.DimStyle.Render("  nothing here yet"))
		return b.String()
	}

	maxRows := s.height - 3
	if maxRows < 1 {
		maxRows = len(visible)
	}
	for i, sel := range visible {
		if i >= maxRows {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  … %d more", len(visible)-maxRows)))
			break
		}
		line := "  " + sel.Label()
		if i == s.cursor {
			line = styles.CursorStyle.Render(styles.Pad(line, s.width-2))
		} else {
			line = styles.SubtitleStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
