package plandetail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	plandomain "skillsetu/internal/modules/plan/domain"
	plandto "skillsetu/internal/modules/plan/dto"
	progressdto "skillsetu/internal/modules/progress/dto"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/ui/components"
	"skillsetu/internal/ui/router"
	"skillsetu/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Detail(ctx context.Context, id string) (plandto.DetailOutput, error)
	Toggle(ctx context.Context, planID, itemID string) (progressdto.ToggleOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// DetailLoadedMsg carries the plan it answers so a late reply for another
// plan is ignored.
type DetailLoadedMsg struct {
	PlanID string
	Detail plandto.DetailOutput
	Err    error
}

type ToggledMsg struct {
	PlanID string
	Out    progressdto.ToggleOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	notifier components.Notifier
	planID   string
	linkBase string

	detail   plandto.DetailOutput
	board    *plandomain.Board
	done     map[string]bool
	cursor   int
	summary  string
	loading  bool
	notFound bool
	failed   string

	body    viewport.Model
	bar     progress.Model
	spinner spinner.Model
	width   int
	height  int
}

// New builds the detail screen for planID. linkBase prefixes the copied
// plan link.
func New(port Port, notifier components.Notifier, planID, linkBase string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text)

	return Model{
		port:     port,
		notifier: notifier,
		planID:   planID,
		linkBase: strings.TrimRight(linkBase, "/"),
		done:     map[string]bool{},
		body:     vp,
		bar:      progress.New(progress.WithSolidFill(string(theme.Green)), progress.WithoutPercentage()),
		spinner:  sp,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Capturing() bool { return false }

func (m Model) PlanID() string { return m.planID }

func (m Model) Loading() bool { return m.loading }

// Progress reports completed and total items as currently shown.
func (m Model) Progress() (done, total int) { return m.completed(), m.detail.Total }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(min(msg.Width-30, 60), 10)
		if m.board != nil {
			m.summary = m.renderSummary()
		}
		m.layout()
		return m, nil

	case DetailLoadedMsg:
		if msg.PlanID != m.planID {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, apperrors.ErrNotFound) {
				m.notFound = true
				return m, nil
			}
			m.failed = apperrors.UserMessage(msg.Err, "Failed to load plan")
			if m.failed != "" {
				m.notifier.Error(m.failed)
			}
			return m, nil
		}
		m.failed = ""
		m.detail = msg.Detail
		groups := make([]plandomain.WeekGroup, len(msg.Detail.Weeks))
		for i, w := range msg.Detail.Weeks {
			groups[i] = plandomain.WeekGroup{Week: w.Week}
		}
		m.board = plandomain.NewBoard(groups)
		m.done = map[string]bool{}
		for _, w := range msg.Detail.Weeks {
			for _, item := range w.Items {
				if item.Completed {
					m.done[item.ID] = true
				}
			}
		}
		m.cursor = 0
		m.summary = m.renderSummary()
		m.layout()
		return m, nil

	case ToggledMsg:
		if msg.PlanID != m.planID {
			return m, nil
		}
		if msg.Err != nil {
			if text := apperrors.UserMessage(msg.Err, "Could not save progress"); text != "" {
				m.notifier.Error(text)
			}
			return m, nil
		}
		if msg.Out.Completed {
			m.done[msg.Out.ItemID] = true
		} else {
			delete(m.done, msg.Out.ItemID)
		}
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, components.Navigate(router.PathPlans)
		case "r":
			if !m.loading {
				m.loading = true
				m.notFound = false
				return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
			}
			return m, nil
		}
		if m.board == nil {
			return m, nil
		}
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.board.SelectOffset(-1)
			m.cursor = 0
		case "right", "l", "tab":
			m.board.SelectOffset(1)
			m.cursor = 0
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.activeItems())-1 {
				m.cursor++
			}
		case "e":
			m.board.ToggleWeek(m.board.Active())
		case "E":
			m.board.ToggleAll()
		case " ", "x", "enter":
			items := m.activeItems()
			if m.board.Expanded(m.board.Active()) && m.cursor < len(items) {
				return m, m.toggleCmd(items[m.cursor].ID)
			}
			return m, nil
		case "y":
			link := m.linkBase + router.PlanPath(m.planID)
			if err := clipboard.WriteAll(link); err != nil {
				m.notifier.Error("Could not copy plan link")
			} else {
				m.notifier.Success("Plan link copied")
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
		m.layout()
		return m, nil
	}
	return m, nil
}

func (m Model) activeItems() []plandto.ItemOutput {
	if m.board == nil {
		return nil
	}
	for _, w := range m.detail.Weeks {
		if w.Week == m.board.Active() {
			return w.Items
		}
	}
	return nil
}

func (m Model) weekCompleted(w plandto.WeekOutput) int {
	n := 0
	for _, item := range w.Items {
		if m.done[item.ID] {
			n++
		}
	}
	return n
}

func (m Model) completed() int {
	n := 0
	for _, w := range m.detail.Weeks {
		n += m.weekCompleted(w)
	}
	return n
}

func (m *Model) layout() {
	header := m.renderHeader()
	m.body.Width = m.width
	m.body.Height = max(m.height-lipgloss.Height(header)-1, 3)
	if m.board != nil {
		m.body.SetContent(m.renderBody())
	}
}

func (m Model) loadCmd() tea.Cmd {
	id := m.planID
	return func() tea.Msg {
		detail, err := m.port.Detail(context.Background(), id)
		return DetailLoadedMsg{PlanID: id, Detail: detail, Err: err}
	}
}

func (m Model) toggleCmd(itemID string) tea.Cmd {
	planID := m.planID
	return func() tea.Msg {
		out, err := m.port.Toggle(context.Background(), planID, itemID)
		return ToggledMsg{PlanID: planID, Out: out, Err: err}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	switch {
	case m.loading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading plan…")
	case m.notFound:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Title.Render("Plan not found.")+"\n\n"+theme.Muted.Render("esc: back to plans"))
	case m.failed != "" || m.board == nil:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Bad.Render(m.failed)+"\n\n"+theme.Muted.Render("r: retry   esc: back to plans"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.body.View())
}

func (m Model) renderHeader() string {
	if m.board == nil {
		return ""
	}
	p := m.detail.Plan
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.TargetRole))
	meta := fmt.Sprintf("  %d weeks", p.DurationWeeks)
	if p.Status != "" {
		meta += "  ·  " + p.Status
	}
	if p.CreatedAgo != "" {
		meta += "  ·  Created " + p.CreatedAgo
	}
	sb.WriteString(theme.Muted.Render(meta) + "\n")

	done, total := m.completed(), m.detail.Total
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	sb.WriteString(fmt.Sprintf("Progress: %d/%d completed  ", done, total) + m.bar.ViewAs(pct) + "\n")

	if m.summary != "" {
		sb.WriteString(m.summary)
	}

	tabs := make([]string, 0, len(m.board.Groups()))
	for _, w := range m.detail.Weeks {
		label := fmt.Sprintf("Week %d (%d/%d)", w.Week, m.weekCompleted(w), len(w.Items))
		if w.Week == m.board.Active() {
			tabs = append(tabs, theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, theme.Tab.Render(label))
		}
	}
	sb.WriteString(lipgloss.NewStyle().Width(m.width).Render(strings.Join(tabs, " ")))
	return sb.String()
}

func (m Model) renderSummary() string {
	text := strings.TrimSpace(m.detail.Plan.Summary)
	if text == "" {
		return ""
	}
	width := max(m.width-4, 20)
	r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(width))
	if err != nil {
		return text + "\n"
	}
	out, err := r.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

func (m Model) renderBody() string {
	var sb strings.Builder
	for _, w := range m.detail.Weeks {
		active := w.Week == m.board.Active()
		marker := "▸"
		if m.board.Expanded(w.Week) {
			marker = "▾"
		}
		heading := fmt.Sprintf("%s Week %d  %d/%d", marker, w.Week, m.weekCompleted(w), len(w.Items))
		if active {
			sb.WriteString(theme.Hot.Render(heading) + "\n")
		} else {
			sb.WriteString(theme.Muted.Render(heading) + "\n")
		}
		if !m.board.Expanded(w.Week) {
			continue
		}
		if len(w.Items) == 0 {
			sb.WriteString(theme.Muted.Render("    nothing scheduled") + "\n")
		}
		for i, item := range w.Items {
			box := "[ ]"
			if m.done[item.ID] {
				box = theme.Good.Render("[x]")
			}
			pointer := "  "
			if active && i == m.cursor {
				pointer = theme.Hot.Render("› ")
			}
			line := fmt.Sprintf("%s%s Day %d  %s", pointer, box, item.DayNo, item.Title)
			sb.WriteString("  " + line + "\n")
			if meta := itemMeta(item); meta != "" {
				sb.WriteString(theme.Muted.Render("         "+meta) + "\n")
			}
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("←/→: week   ↑/↓: item   space: toggle done   e: expand week   E: expand all   y: copy link   esc: back"))
	return sb.String()
}

func itemMeta(item plandto.ItemOutput) string {
	var parts []string
	if item.Type != "" {
		parts = append(parts, item.Type)
	}
	if item.EstMinutes > 0 {
		parts = append(parts, fmt.Sprintf("%d min", item.EstMinutes))
	}
	if item.RequiredSkill != "" {
		parts = append(parts, item.RequiredSkill)
	}
	if item.URL != "" {
		parts = append(parts, item.URL)
	}
	return strings.Join(parts, "  ·  ")
}
