package login

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "skillsetu/internal/modules/auth/dto"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/platform/validate"
	"skillsetu/internal/ui/components"
	"skillsetu/internal/ui/router"
	"skillsetu/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Login(ctx context.Context, email, password, returnTo string) (authdto.LoginOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoggedInMsg struct {
	Out authdto.LoginOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	notifier components.Notifier
	returnTo string
	form     components.Form
	spinner  spinner.Model
	pending  bool
	width    int
	height   int
}

// New builds the login screen. returnTo is the guarded path the user was
// bounced from; empty lands on the plans list.
func New(port Port, notifier components.Notifier, returnTo string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		port:     port,
		notifier: notifier,
		returnTo: returnTo,
		form: components.NewForm(
			components.NewField("email", "Email", "you@example.com", false),
			components.NewField("password", "Password", "at least 6 characters", true),
		),
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Capturing reports that key presses belong to the form.
func (m Model) Capturing() bool { return true }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case LoggedInMsg:
		m.pending = false
		if msg.Err != nil {
			var fields apperrors.FieldErrors
			if errors.As(msg.Err, &fields) {
				m.form.SetErrors(fields)
				return m, nil
			}
			if text := apperrors.UserMessage(msg.Err, "Login failed"); text != "" {
				m.notifier.Error(text)
			}
			return m, nil
		}
		m.notifier.Success("Logged in successfully")
		return m, components.Navigate(msg.Out.Redirect)

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
		case "ctrl+r":
			return m, components.Navigate(router.PathRegister)
		case "enter":
			if !m.form.OnLast() {
				cmd := m.form.Next()
				return m, cmd
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	email := strings.TrimSpace(m.form.Value("email"))
	password := m.form.Value("password")
	if err := validate.Credentials(email, password); err != nil {
		var fields apperrors.FieldErrors
		if errors.As(err, &fields) {
			m.form.SetErrors(fields)
		}
		return m, nil
	}
	m.form.SetErrors(nil)
	m.pending = true
	return m, tea.Batch(m.loginCmd(email, password), m.spinner.Tick)
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	returnTo := m.returnTo
	return func() tea.Msg {
		out, err := m.port.Login(context.Background(), email, password, returnTo)
		return LoggedInMsg{Out: out, Err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Sign in") + "\n\n")
	sb.WriteString(m.form.View())
	if m.pending {
		sb.WriteString(m.spinner.View() + " Signing in…\n")
	} else {
		sb.WriteString(theme.Muted.Render("enter: sign in   tab: next field   ctrl+r: create an account") + "\n")
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		theme.PaneActive.Width(56).Render(sb.String()))
}
