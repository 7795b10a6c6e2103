package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/huffmanks/movie-picker/internal/domain"
	"github.com/huffmanks/movie-picker/internal/tui/styles"
)

// SortModal is a small popup for choosing the sort order. Directions are
// fixed per key (title A-Z, year and rating best-first), so there is no
// direction toggle.
type SortModal struct {
	visible   bool
	options   []domain.SortKey
	cursor    int
	activeKey domain.SortKey
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{options: domain.SortOptions()}
}

// Show displays the modal with the cursor on the active key
func (m *SortModal) Show(activeKey domain.SortKey) {
	m.visible = true
	m.activeKey = activeKey
	m.cursor = 0
	for i, opt := range m.options {
		if opt == activeKey {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *domain.SortKey) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case "esc", "s":
		m.visible = false
		return true, nil
	}

	return true, nil // consume all keys when visible
}

func sortSuffix(key domain.SortKey) string {
	switch key {
	case domain.SortTitle:
		return " A-Z"
	case domain.SortYear, domain.SortRating:
		return " ↓"
	default:
		return ""
	}
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		prefix := "  "
		if opt == m.activeKey {
			prefix = "✓ "
		}
		text := prefix + opt.String() + sortSuffix(opt)

		switch {
		case i == m.cursor:
			lines = append(lines, styles.CursorStyle.Render(styles.Pad(text, 18)))
		case opt == m.activeKey:
			lines = append(lines, styles.AccentStyle.Render(styles.Pad(text, 18)))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(styles.LightGray).Render(styles.Pad(text, 18)))
		}
	}

	content := styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n")
	return styles.ModalStyle.Render(content)
}
