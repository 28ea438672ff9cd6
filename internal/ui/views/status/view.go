package status

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "skillsetu/internal/modules/auth/dto"
	statusdto "skillsetu/internal/modules/status/dto"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/ui/components"
	"skillsetu/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Status(ctx context.Context) (authdto.StatusOutput, error)
	Token(ctx context.Context) (string, bool, error)
	CheckAuthorization(ctx context.Context, tokenOverride string) (statusdto.CheckOutput, error)
	CheckGenerator(ctx context.Context, tokenOverride string) (statusdto.CheckOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type TokenLoadedMsg struct {
	Status authdto.StatusOutput
	Err    error
}

type AuthCheckedMsg struct {
	Out statusdto.CheckOutput
	Err error
}

type GeneratorCheckedMsg struct {
	Out statusdto.CheckOutput
	Err error
}

type copiedMsg struct{ err error }

// ─── model ───────────────────────────────────────────────────────────────────

type check struct {
	state   string
	message string
}

type Model struct {
	port     Port
	notifier components.Notifier
	token    authdto.StatusOutput
	paste    textinput.Model
	auth     check
	gen      check
	spinner  spinner.Model
	width    int
	height   int
}

func New(port Port, notifier components.Notifier) Model {
	ti := textinput.New()
	ti.Placeholder = "paste a token to check it instead of the stored one"
	ti.Prompt = "token> "
	ti.CharLimit = 4096
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		notifier: notifier,
		paste:    ti,
		auth:     check{state: "unknown"},
		gen:      check{state: "unknown"},
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadTokenCmd()
}

func (m Model) Capturing() bool { return m.paste.Focused() }

func (m Model) checking() bool {
	return m.auth.state == "checking" || m.gen.state == "checking"
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.paste.Width = max(min(msg.Width-16, 72), 10)
		return m, nil

	// Focus returns after the token may have changed in another process.
	case tea.FocusMsg:
		return m, m.loadTokenCmd()

	case TokenLoadedMsg:
		if msg.Err == nil {
			m.token = msg.Status
		}
		return m, nil

	case AuthCheckedMsg:
		m.auth = m.settle(msg.Out, msg.Err, "failed")
		return m, m.loadTokenCmd()

	case GeneratorCheckedMsg:
		m.gen = m.settle(msg.Out, msg.Err, "unavailable")
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.notifier.Error(apperrors.UserMessage(msg.err, "Could not copy token"))
		} else {
			m.notifier.Success("Token copied to clipboard")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.checking() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.paste.Focused() {
			switch msg.String() {
			case "esc", "enter":
				m.paste.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.paste, cmd = m.paste.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "p":
			cmd := m.paste.Focus()
			return m, cmd
		case "x":
			m.paste.SetValue("")
			return m, nil
		case "a":
			if m.auth.state == "checking" {
				return m, nil
			}
			m.auth = check{state: "checking"}
			return m, tea.Batch(m.authCmd(), m.spinner.Tick)
		case "g":
			if m.gen.state == "checking" {
				return m, nil
			}
			m.gen = check{state: "checking"}
			return m, tea.Batch(m.generatorCmd(), m.spinner.Tick)
		case "c":
			return m, m.copyCmd()
		}
	}
	return m, nil
}

// settle turns a check reply into display state and toasts its message.
func (m Model) settle(out statusdto.CheckOutput, err error, failState string) check {
	if err != nil {
		text := apperrors.UserMessage(err, "Check failed")
		if text == "" {
			return check{state: failState}
		}
		m.notifier.Error(text)
		return check{state: failState, message: text}
	}
	if out.OK {
		m.notifier.Success(out.Message)
	} else {
		m.notifier.Error(out.Message)
	}
	return check{state: out.State, message: out.Message}
}

func (m Model) override() string {
	return strings.TrimSpace(m.paste.Value())
}

func (m Model) loadTokenCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.port.Status(context.Background())
		return TokenLoadedMsg{Status: st, Err: err}
	}
}

func (m Model) authCmd() tea.Cmd {
	token := m.override()
	return func() tea.Msg {
		out, err := m.port.CheckAuthorization(context.Background(), token)
		return AuthCheckedMsg{Out: out, Err: err}
	}
}

func (m Model) generatorCmd() tea.Cmd {
	token := m.override()
	return func() tea.Msg {
		out, err := m.port.CheckGenerator(context.Background(), token)
		return GeneratorCheckedMsg{Out: out, Err: err}
	}
}

func (m Model) copyCmd() tea.Cmd {
	return func() tea.Msg {
		token, ok, err := m.port.Token(context.Background())
		if err != nil {
			return copiedMsg{err: err}
		}
		if !ok {
			return copiedMsg{err: apperrors.ErrNoCredential}
		}
		return copiedMsg{err: clipboard.WriteAll(token)}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("System status") + "\n\n")

	sb.WriteString(theme.Muted.Render("Stored token") + "\n")
	if m.token.Present {
		sb.WriteString("  " + m.token.Masked + "\n")
		if m.token.Subject != "" {
			sb.WriteString(theme.Muted.Render("  subject "+m.token.Subject) + "\n")
		}
		if !m.token.ExpiresAt.IsZero() {
			sb.WriteString(theme.Muted.Render("  expires "+m.token.ExpiresAt.Local().Format("2006-01-02 15:04")) + "\n")
		}
	} else {
		sb.WriteString(theme.Bad.Render("  No token found.") + "\n")
	}
	sb.WriteString("\n" + m.paste.View() + "\n\n")

	sb.WriteString(m.renderCheck("Authorization", m.auth))
	sb.WriteString(m.renderCheck("AI generator", m.gen))

	sb.WriteString("\n" + theme.Muted.Render("a: check authorization   g: check generator   c: copy token   p: paste token   x: clear pasted"))
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Padding(0, 1).Render(sb.String())
}

func (m Model) renderCheck(label string, c check) string {
	pill := theme.StatePill(c.state)
	if c.state == "checking" {
		pill = m.spinner.View() + " " + pill
	}
	line := lipgloss.NewStyle().Width(16).Render(label) + pill + "\n"
	if c.message != "" {
		line += theme.Muted.Render("  "+c.message) + "\n"
	}
	return line
}
