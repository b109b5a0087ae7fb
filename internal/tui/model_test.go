package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestModelLoadsContactsOnInit(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		contacts: []Contact{
			{Name: "Alice Johnson", Email: "alice@example.com", Phone: "+1-415-555-0101"},
			{Name: "Bob Smith", Email: "bob@example.com", Phone: "+1-212-555-0102"},
		},
	}
	model := NewModel(Options{Client: client})

	cmd := model.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, loadedMsg{}, msg)

	next, _ := model.Update(msg)
	state := next.(Model)
	require.Equal(t, ScreenContacts, state.screen)
	require.Len(t, state.contactsList.Items(), 2)
	require.Contains(t, state.View(), "Alice Johnson")
}

func TestModelShowsDetailOnEnterAndReturnsOnEsc(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		contacts: []Contact{
			{Name: "Alice Johnson", Email: "alice@example.com", Phone: "+1-415-555-0101"},
		},
	}
	model := NewModel(Options{Client: client})

	next, _ := model.Update(model.Init()())
	detail, _ := next.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	state := detail.(Model)
	require.Equal(t, ScreenDetail, state.screen)
	require.Contains(t, state.View(), "alice@example.com")
	require.Contains(t, state.View(), "+1-415-555-0101")

	back, _ := state.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ScreenContacts, back.(Model).screen)
}

func TestModelShowsEmptyStateAndLoadError(t *testing.T) {
	t.Parallel()

	model := NewModel(Options{Client: &fakeClient{}})
	next, _ := model.Update(model.Init()())
	require.Contains(t, next.(Model).View(), "No contacts yet.")

	failing := NewModel(Options{Client: &fakeClient{err: errors.New("connection refused")}})
	next, _ = failing.Update(failing.Init()())
	require.Contains(t, next.(Model).View(), "connection refused")
}

func TestRunRefusesWithoutTTY(t *testing.T) {
	t.Parallel()

	err := Run(Options{Client: &fakeClient{}, IsTTY: func() bool { return false }})
	require.Error(t, err)
}

type fakeClient struct {
	contacts []Contact
	err      error
}

func (f *fakeClient) ListContacts(context.Context) ([]Contact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]Contact(nil), f.contacts...), nil
}
