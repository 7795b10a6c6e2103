package tui

// Message types for the TUI

// debounceMsg fires after the keystroke collapse window. Seq is compared
// against the latest input sequence; stale messages are dropped so only the
// final evaluation of a typing burst renders.
type debounceMsg struct {
	Seq int
}

// idleMsg fires after the inactivity window and blurs the search field.
// Same staleness rule as debounceMsg.
type idleMsg struct {
	Seq int
}

// copiedMsg signals that the shortlist export hit the clipboard
type copiedMsg struct {
	Err error
}

// statusClearMsg clears the transient status line
type statusClearMsg struct {
	Seq int
}
