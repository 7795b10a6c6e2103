package selection

import (
	"log/slog"
	"strings"

	"github.com/huffmanks/movie-picker/internal/domain"
)

// Service manages the persisted shortlist. It is the sole writer of the
// selections collection: every mutation goes through Toggle or Clear.
type Service struct {
	store  domain.Store
	logger *slog.Logger
}

// NewService creates a selection service.
func NewService(store domain.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Toggle flips membership for refID: present -> removed, absent -> added
// with a title/year snapshot. Returns the new membership state and the
// updated shortlist. Store failures are logged and leave state unchanged.
func (s *Service) Toggle(refID, title string, year int) (bool, []*domain.Selection) {
	_, exists, err := s.store.FindSelectionByRef(refID)
	if err != nil {
		s.logger.Error("failed to check selection", "error", err, "refID", refID)
		return false, s.List()
	}

	if exists {
		if _, err := s.store.DeleteSelectionByRef(refID); err != nil {
			s.logger.Error("failed to remove selection", "error", err, "refID", refID)
			return true, s.List()
		}
		s.logger.Debug("removed selection", "refID", refID, "title", title)
		return false, s.List()
	}

	sel := &domain.Selection{RefID: refID, Title: title, Year: year}
	if err := s.store.AddSelection(sel); err != nil {
		s.logger.Error("failed to add selection", "error", err, "refID", refID)
		return false, s.List()
	}
	s.logger.Debug("added selection", "refID", refID, "title", title, "id", sel.ID)
	return true, s.List()
}

// List returns the shortlist in insertion order. Read failures are logged
// and yield an empty list.
func (s *Service) List() []*domain.Selection {
	selections, err := s.store.GetSelections()
	if err != nil {
		s.logger.Error("failed to read selections", "error", err)
		return nil
	}
	return selections
}

// Clear removes every selection.
func (s *Service) Clear() {
	if err := s.store.DeleteAllSelections(); err != nil {
		s.logger.Error("failed to clear selections", "error", err)
		return
	}
	s.logger.Info("cleared selections")
}

// IsSelected reports shortlist membership for refID.
func (s *Service) IsSelected(refID string) bool {
	_, exists, err := s.store.FindSelectionByRef(refID)
	if err != nil {
		s.logger.Error("failed to check selection", "error", err, "refID", refID)
		return false
	}
	return exists
}

// ExportText serializes the shortlist as newline-joined "Title (Year)"
// lines, ready for the clipboard.
func (s *Service) ExportText() string {
	selections := s.List()
	lines := make([]string, 0, len(selections))
	for _, sel := range selections {
		lines = append(lines, sel.Label())
	}
	return strings.Join(lines, "\n")
}
