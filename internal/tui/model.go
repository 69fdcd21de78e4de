// Package tui is a live terminal view of the portfolio sections. Each
// section is watched independently and redrawn on every transition.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/portfolio/internal/sections"
)

// sectionMsg carries a section transition into the program.
type sectionMsg struct {
	index int
	view  sections.View
}

type reloadMsg struct{}

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "down", "j"), key.WithHelp("tab/j", "next section")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up", "k"), key.WithHelp("shift+tab/k", "previous section")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type model struct {
	title   string
	tagline string

	views   []sections.View
	cursor  int
	spinner spinner.Model
	width   int

	// reload restarts every section watch; nil disables the key.
	reload func()
}

func newModel(title, tagline string, placeholders []sections.View, reload func()) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = CountStyle

	return model{
		title:   title,
		tagline: tagline,
		views:   placeholders,
		spinner: sp,
		reload:  reload,
	}
}

// Init starts the spinner and the first round of section loads. Loads run
// from a command because Program.Send blocks until the event loop is up.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.reloadCmd())
}

func (m model) reloadCmd() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	reload := m.reload
	return func() tea.Msg {
		reload()
		return reloadMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			if len(m.views) > 0 {
				m.cursor = (m.cursor + 1) % len(m.views)
			}
		case key.Matches(msg, keys.Prev):
			if len(m.views) > 0 {
				m.cursor = (m.cursor - 1 + len(m.views)) % len(m.views)
			}
		case key.Matches(msg, keys.Reload):
			return m, m.reloadCmd()
		}
		return m, nil

	case sectionMsg:
		if msg.index >= 0 && msg.index < len(m.views) {
			views := append([]sections.View(nil), m.views...)
			views[msg.index] = msg.view
			m.views = views
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// loading reports whether any section is still waiting on its fetch.
func (m model) loading() bool {
	for _, v := range m.views {
		if v.Loading() {
			return true
		}
	}
	return false
}
