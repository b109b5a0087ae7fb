// Package tui implements the full-screen contact browser behind the
// `rolodex browse` command.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type Screen string

const (
	ScreenContacts Screen = "contacts"
	ScreenDetail   Screen = "detail"
)

type Contact struct {
	Name  string
	Email string
	Phone string
}

// Client is the data source the browser reads from. The CLI adapts the
// contact service to it; tests supply a fake.
type Client interface {
	ListContacts(ctx context.Context) ([]Contact, error)
}

type Options struct {
	Client Client
	IsTTY  func() bool
}

type Model struct {
	client Client

	screen Screen
	err    string

	contactsList    list.Model
	contactsByEmail map[string]Contact
	selectedEmail   string
}

type loadedMsg struct {
	contacts []Contact
	err      error
}

func Run(opts Options) error {
	if opts.IsTTY != nil && !opts.IsTTY() {
		return fmt.Errorf("tui: requires a tty")
	}
	_, err := tea.NewProgram(NewModel(opts)).Run()
	return err
}

func NewModel(opts Options) Model {
	delegate := list.NewDefaultDelegate()

	contactsList := list.New([]list.Item{}, delegate, 0, 0)
	contactsList.Title = "Contacts"
	contactsList.SetShowStatusBar(false)
	contactsList.SetFilteringEnabled(true)
	contactsList.SetShowHelp(false)
	contactsList.SetSize(80, 20)

	return Model{
		client:          opts.Client,
		screen:          ScreenContacts,
		contactsList:    contactsList,
		contactsByEmail: map[string]Contact{},
	}
}

func (m Model) Init() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return m.loadContactsCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		switch typed.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if m.screen == ScreenContacts {
				return m, m.loadContactsCmd()
			}
		case "enter":
			if m.screen == ScreenContacts {
				item, ok := m.contactsList.SelectedItem().(contactItem)
				if !ok {
					return m, nil
				}
				m.selectedEmail = item.email
				m.screen = ScreenDetail
				return m, nil
			}
		case "esc":
			m.screen = ScreenContacts
			return m, nil
		}
	case tea.WindowSizeMsg:
		height := typed.Height - 4
		if height < 1 {
			height = 1
		}
		m.contactsList.SetSize(typed.Width, height)
	case loadedMsg:
		if typed.err != nil {
			m.err = typed.err.Error()
			return m, nil
		}
		m.err = ""
		m.populateList(typed.contacts)
		return m, nil
	}

	if m.screen == ScreenDetail {
		return m, nil
	}
	var cmd tea.Cmd
	m.contactsList, cmd = m.contactsList.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := "[enter] Detail  [r] Reload  [/] Filter  [q] Quit\n"
	if m.err != "" {
		header += "Error: " + m.err + "\n"
	}

	if m.screen == ScreenDetail {
		return header + "\n" + m.renderDetailView()
	}
	if len(m.contactsList.Items()) == 0 {
		return header + "\nNo contacts yet.\nAdd one with `rolodex add --name ... --email ...`"
	}
	return header + "\n" + m.contactsList.View()
}

func (m Model) loadContactsCmd() tea.Cmd {
	return func() tea.Msg {
		contacts, err := m.client.ListContacts(context.Background())
		return loadedMsg{contacts: contacts, err: err}
	}
}

func (m *Model) populateList(contacts []Contact) {
	items := make([]list.Item, 0, len(contacts))
	byEmail := make(map[string]Contact, len(contacts))
	for _, c := range contacts {
		items = append(items, contactItem{
			name:        c.Name,
			email:       c.Email,
			description: fmt.Sprintf("%s %s", c.Email, c.Phone),
		})
		byEmail[c.Email] = c
	}
	m.contactsByEmail = byEmail
	m.contactsList.SetItems(items)
	m.contactsList.NewStatusMessage("Contacts loaded")
}

func (m Model) renderDetailView() string {
	c, ok := m.contactsByEmail[m.selectedEmail]
	if !ok {
		return "Contact detail unavailable"
	}
	return fmt.Sprintf(
		"Contact Detail\n\nName: %s\nEmail: %s\nPhone: %s\n\nPress ESC to go back.",
		c.Name,
		c.Email,
		c.Phone,
	)
}

type contactItem struct {
	name        string
	email       string
	description string
}

func (i contactItem) Title() string       { return i.name }
func (i contactItem) Description() string { return i.description }
func (i contactItem) FilterValue() string { return i.name + " " + i.email }
