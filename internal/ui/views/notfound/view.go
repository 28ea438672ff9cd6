package notfound

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skillsetu/internal/ui/components"
	"skillsetu/internal/ui/router"
	"skillsetu/internal/ui/theme"
)

type Model struct {
	path   string
	width  int
	height int
}

func New(path string) Model {
	return Model{path: path}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Capturing() bool { return false }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "enter" || msg.String() == "esc" {
			return m, components.Navigate(router.PathHome)
		}
	}
	return m, nil
}

func (m Model) View() string {
	body := theme.Hot.Render("404") + "\n\n" +
		theme.Title.Render("Page not found") + "\n" +
		theme.Muted.Render(m.path) + "\n\n" +
		theme.Muted.Render("enter: go home")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
