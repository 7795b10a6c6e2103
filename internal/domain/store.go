package domain

// Store handles the local persisted state (BoltDB).
//
// Catalog collections are write-once: they are bulk-inserted by seeding and
// only read afterwards. The selections collection is mutated exclusively
// through the selection service, which is the single writer.
type Store interface {
	// === Catalogs ===
	CountItems(ct ContentType) (int, error)
	BulkInsertItems(ct ContentType, items []*MediaItem) error
	GetItems(ct ContentType) ([]*MediaItem, error)

	// === Selections ===

	// AddSelection persists sel and assigns its surrogate ID.
	AddSelection(sel *Selection) error

	// FindSelectionByRef returns the selection referencing refID, if any.
	FindSelectionByRef(refID string) (*Selection, bool, error)

	// DeleteSelectionByRef removes every selection referencing refID and
	// reports whether anything was removed.
	DeleteSelectionByRef(refID string) (bool, error)

	// GetSelections returns all selections in insertion order.
	GetSelections() ([]*Selection, error)

	DeleteAllSelections() error

	Close() error
}
