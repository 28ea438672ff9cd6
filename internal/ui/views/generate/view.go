package generate

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plandto "skillsetu/internal/modules/plan/dto"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/platform/validate"
	"skillsetu/internal/ui/components"
	"skillsetu/internal/ui/router"
	"skillsetu/internal/ui/theme"
)

const (
	defaultGoal   = "Become a Machine Learning Engineer"
	defaultSkills = "python, sql"
	defaultWeeks  = "12"

	exampleGoal   = "Become a Data Scientist"
	exampleSkills = "python, statistics, sql"
	exampleWeeks  = "12"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Generate(ctx context.Context, goal string, skills []string, weeks int) (plandto.GenerateOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type GeneratedMsg struct {
	Out plandto.GenerateOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	notifier components.Notifier
	form     components.Form
	spinner  spinner.Model
	pending  bool
	width    int
	height   int
}

func New(port Port, notifier components.Notifier) Model {
	form := components.NewForm(
		components.NewField("goal", "Goal", "e.g. Become a Backend Engineer", false),
		components.NewField("skills", "Current skills (comma separated)", "go, sql", false),
		components.NewField("weeks", "Duration in weeks (2-24)", "12", false),
	)
	form.SetValue("goal", defaultGoal)
	form.SetValue("skills", defaultSkills)
	form.SetValue("weeks", defaultWeeks)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, notifier: notifier, form: form, spinner: sp}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Capturing() bool { return true }

// Pending reports whether a generation request is in flight.
func (m Model) Pending() bool { return m.pending }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case GeneratedMsg:
		m.pending = false
		if msg.Err != nil {
			var fields apperrors.FieldErrors
			if errors.As(msg.Err, &fields) {
				m.form.SetErrors(fields)
				return m, nil
			}
			if text := apperrors.UserMessage(msg.Err, "Failed to create plan"); text != "" {
				m.notifier.Error(text)
			}
			return m, nil
		}
		m.notifier.Success("Plan created successfully")
		return m, components.Navigate(router.PlanPath(msg.Out.PlanID))

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			cmd := m.form.Next()
			return m, cmd
		case "shift+tab", "up":
			cmd := m.form.Prev()
			return m, cmd
		case "esc":
			if !m.pending {
				return m, components.Navigate(router.PathPlans)
			}
			return m, nil
		case "ctrl+e":
			if !m.pending {
				m.form.SetValue("goal", exampleGoal)
				m.form.SetValue("skills", exampleSkills)
				m.form.SetValue("weeks", exampleWeeks)
				m.form.SetErrors(nil)
			}
			return m, nil
		case "ctrl+s":
			return m.submit()
		case "enter":
			if !m.form.OnLast() {
				cmd := m.form.Next()
				return m, cmd
			}
			return m.submit()
		}
	}

	if m.pending {
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	goal := strings.TrimSpace(m.form.Value("goal"))
	skills := validate.SplitSkills(m.form.Value("skills"))
	weeks, convErr := strconv.Atoi(strings.TrimSpace(m.form.Value("weeks")))
	if convErr != nil {
		weeks = 0
	}
	if err := validate.PlanRequest(goal, skills, weeks); err != nil {
		var fields apperrors.FieldErrors
		if errors.As(err, &fields) {
			m.form.SetErrors(fields)
		}
		return m, nil
	}
	m.form.SetErrors(nil)
	m.pending = true
	return m, tea.Batch(m.generateCmd(goal, skills, weeks), m.spinner.Tick)
}

func (m Model) generateCmd(goal string, skills []string, weeks int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Generate(context.Background(), goal, skills, weeks)
		return GeneratedMsg{Out: out, Err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Generate a learning plan") + "\n\n")
	sb.WriteString(m.form.View())
	if m.pending {
		sb.WriteString(m.spinner.View() + " Generating your plan, this can take up to two minutes…\n")
	} else {
		sb.WriteString(theme.Muted.Render("ctrl+s: generate   ctrl+e: use example   esc: back to plans") + "\n")
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		theme.PaneActive.Width(64).Render(sb.String()))
}
