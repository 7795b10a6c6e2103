package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/huffmanks/movie-picker/internal/domain"
)

func TestSortModalNavigateAndConfirm(t *testing.T) {
	require := require.New(t)

	m := NewSortModal()
	require.False(m.IsVisible())

	handled, _ := m.HandleKey("j")
	require.False(handled)

	m.Show(domain.SortNone)
	require.True(m.IsVisible())

	handled, sel := m.HandleKey("j")
	require.True(handled)
	require.Nil(sel)

	_, sel = m.HandleKey("enter")
	require.NotNil(sel)
	require.Equal(domain.SortTitle, *sel)
	require.False(m.IsVisible())
}

func TestSortModalOpensOnActiveKey(t *testing.T) {
	require := require.New(t)

	m := NewSortModal()
	m.Show(domain.SortRating)

	_, sel := m.HandleKey("enter")
	require.NotNil(sel)
	require.Equal(domain.SortRating, *sel)
}

func TestSortModalDismiss(t *testing.T) {
	require := require.New(t)

	m := NewSortModal()
	m.Show(domain.SortNone)

	handled, sel := m.HandleKey("esc")
	require.True(handled)
	require.Nil(sel)
	require.False(m.IsVisible())
}

func TestSortModalCursorClamped(t *testing.T) {
	require := require.New(t)

	m := NewSortModal()
	m.Show(domain.SortNone)

	for range 10 {
		m.HandleKey("j")
	}
	_, sel := m.HandleKey("enter")
	require.NotNil(sel)
	require.Equal(domain.SortRating, *sel)

	m.Show(domain.SortNone)
	for range 10 {
		m.HandleKey("k")
	}
	_, sel = m.HandleKey("enter")
	require.NotNil(sel)
	require.Equal(domain.SortNone, *sel)
}

func testSelections() []*domain.Selection {
	return []*domain.Selection{
		{ID: 1, RefID: "tt1160419", Title: "Dune", Year: 2021},
		{ID: 2, RefID: "tt2543164", Title: "Arrival", Year: 2016},
		{ID: 3, RefID: "tt0113277", Title: "Heat", Year: 1995},
	}
}

func TestShortlistCursorAndCurrent(t *testing.T) {
	require := require.New(t)

	s := NewShortlist()
	require.Nil(s.Current())

	s.SetSelections(testSelections())
	require.Equal("Dune", s.Current().Title)

	s.MoveDown()
	require.Equal("Arrival", s.Current().Title)

	s.MoveDown()
	s.MoveDown() // clamped at the end
	require.Equal("Heat", s.Current().Title)

	s.MoveUp()
	require.Equal("Arrival", s.Current().Title)
}

func TestShortlistCursorClampsOnShrink(t *testing.T) {
	require := require.New(t)

	s := NewShortlist()
	s.SetSelections(testSelections())
	s.MoveDown()
	s.MoveDown()

	s.SetSelections(testSelections()[:1])
	require.Equal("Dune", s.Current().Title)

	s.SetSelections(nil)
	require.Nil(s.Current())
}

func TestShortlistFilter(t *testing.T) {
	require := require.New(t)

	s := NewShortlist()
	s.SetSelections(testSelections())

	s.StartFilter()
	require.True(s.Filtering())

	s.UpdateFilter(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("arr")})
	require.Equal("Arrival", s.Current().Title)

	s.StopFilter()
	require.False(s.Filtering())
	require.Equal("Dune", s.Current().Title)
}
