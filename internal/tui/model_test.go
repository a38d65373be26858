package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/spending"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRefresher struct {
	snap  spending.Snapshot
	err   error
	calls int
}

func (s *stubRefresher) RefreshSpending(_ context.Context) (spending.Snapshot, error) {
	s.calls++
	return s.snap, s.err
}

func TestModelRefreshUpdatesSnapshot(t *testing.T) {
	stub := &stubRefresher{snap: spending.Snapshot{Daily: 10, Weekly: 30, Monthly: 60}}
	m := NewModel(stub, spending.Snapshot{})

	updated, _ := m.Update(refreshDoneMsg{
		snap: stub.snap,
		at:   time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
	})
	model, ok := updated.(Model)
	require.True(t, ok)

	assert.False(t, model.loading)
	assert.Equal(t, stub.snap, model.snapshot)

	view := model.View()
	assert.Contains(t, view, "£10.00")
	assert.Contains(t, view, "£30.00")
	assert.Contains(t, view, "£60.00")
}

func TestModelRefreshError(t *testing.T) {
	m := NewModel(&stubRefresher{}, spending.Snapshot{Daily: 5, Weekly: 5, Monthly: 5})

	updated, _ := m.Update(refreshDoneMsg{err: errors.New("bank is down")})
	model := updated.(Model)

	assert.False(t, model.loading)
	// The last good snapshot stays on screen alongside the error.
	assert.Contains(t, model.View(), "£5.00")
	assert.Contains(t, model.View(), "bank is down")
}

func TestModelRefreshKeyTriggersCommand(t *testing.T) {
	m := NewModel(&stubRefresher{}, spending.Snapshot{})
	m.loading = false

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	model := updated.(Model)

	assert.True(t, model.loading)
	assert.NotNil(t, cmd)
}

func TestModelRefreshKeyIgnoredWhileLoading(t *testing.T) {
	m := NewModel(&stubRefresher{}, spending.Snapshot{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Nil(t, cmd)
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubRefresher{}, spending.Snapshot{})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	model := updated.(Model)

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, "", model.View())
}

func TestModelViewShowsAllWindows(t *testing.T) {
	m := NewModel(&stubRefresher{}, spending.Snapshot{Daily: 45.67, Weekly: 234.89, Monthly: 1247.23})
	m.loading = false

	view := m.View()
	for _, want := range []string{"Daily", "Weekly", "Monthly", "£45.67", "£234.89", "£1247.23"} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
}
