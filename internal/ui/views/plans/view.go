package plans

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plandomain "skillsetu/internal/modules/plan/domain"
	plandto "skillsetu/internal/modules/plan/dto"
	"skillsetu/internal/platform/clock"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/platform/timeago"
	"skillsetu/internal/ui/components"
	"skillsetu/internal/ui/router"
	"skillsetu/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context) ([]plandto.PlanOutput, error)
	Delete(ctx context.Context, id string) error
}

// ─── messages ────────────────────────────────────────────────────────────────

// PlansLoadedMsg answers the fetch numbered Seq.
type PlansLoadedMsg struct {
	Seq   int
	Plans []plandto.PlanOutput
	Err   error
}

type DeletedMsg struct {
	PlanID string
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type planItem struct {
	plan plandomain.Plan
	ago  string
}

func (i planItem) Title() string { return i.plan.TargetRole }
func (i planItem) Description() string {
	parts := []string{fmt.Sprintf("%d weeks", i.plan.DurationWeeks)}
	if i.plan.Status != "" {
		parts = append(parts, i.plan.Status)
	}
	if i.ago != "" {
		parts = append(parts, "created "+i.ago)
	}
	return strings.Join(parts, "  ·  ")
}
func (i planItem) FilterValue() string { return i.plan.TargetRole }

// ─── model ───────────────────────────────────────────────────────────────────

// Model fetches the collection once per mount or reload. Search, filter and
// delete work on the fetched slice.
type Model struct {
	port     Port
	notifier components.Notifier
	clock    clock.Clock
	list     list.Model
	search   textinput.Model
	spinner  spinner.Model
	all      []plandomain.Plan
	filter   plandomain.FilterKind
	stats    plandomain.Stats
	seq      int
	loading  bool
	failed   string
	// confirm holds the plan awaiting delete confirmation.
	confirm  *plandomain.Plan
	deleting string
	width    int
	height   int
}

func New(port Port, notifier components.Notifier, clk clock.Clock) Model {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "My plans"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "search by role or summary"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		notifier: notifier,
		clock:    clk,
		list:     l,
		search:   ti,
		spinner:  sp,
		filter:   plandomain.FilterAll,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(m.seq), m.spinner.Tick)
}

// Plans returns what the list currently shows.
func (m Model) Plans() []plandomain.Plan {
	out := make([]plandomain.Plan, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if p, ok := it.(planItem); ok {
			out = append(out, p.plan)
		}
	}
	return out
}

func (m Model) Stats() plandomain.Stats { return m.stats }

// Capturing reports whether the search box or a confirmation owns the keyboard.
func (m Model) Capturing() bool {
	return m.search.Focused() || m.confirm != nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(msg.Width-8, 10)
		m.list.SetSize(msg.Width, max(msg.Height-6, 3))
		return m, nil

	case PlansLoadedMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.failed = apperrors.UserMessage(msg.Err, "Failed to load plans")
			if m.failed != "" {
				m.notifier.Error(m.failed)
			}
			return m, nil
		}
		m.failed = ""
		m.all = toDomain(msg.Plans)
		cmd := m.refresh()
		return m, cmd

	case DeletedMsg:
		m.deleting = ""
		if msg.Err != nil {
			if text := apperrors.UserMessage(msg.Err, "Delete failed"); text != "" {
				m.notifier.Error(text)
			}
			return m, nil
		}
		m.notifier.Success("Plan deleted")
		m.all = plandomain.RemoveByID(m.all, msg.PlanID)
		cmd := m.refresh()
		return m, cmd

	case spinner.TickMsg:
		if !m.loading && m.deleting == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			cmd := m.search.Focus()
			return m, cmd
		case "f":
			m.filter = m.filter.Next()
			cmd := m.refresh()
			return m, cmd
		case "r":
			m.seq++
			m.loading = true
			return m, tea.Batch(m.fetchCmd(m.seq), m.spinner.Tick)
		case "n":
			return m, components.Navigate(router.PathGenerate)
		case "enter":
			if p, ok := m.selected(); ok {
				return m, components.Navigate(router.PlanPath(p.ID))
			}
			return m, nil
		case "d", "delete":
			if p, ok := m.selected(); ok && m.deleting == "" {
				m.confirm = &p
			}
			return m, nil
		}
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		id := m.confirm.ID
		m.confirm = nil
		m.deleting = id
		return m, tea.Batch(m.deleteCmd(id), m.spinner.Tick)
	case "n", "N", "esc":
		m.confirm = nil
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	refreshCmd := m.refresh()
	return m, tea.Batch(cmd, refreshCmd)
}

// refresh re-derives the visible rows and the stats from the fetched plans.
// Stats always cover the whole collection.
func (m *Model) refresh() tea.Cmd {
	now := m.clock.Now()
	m.stats = plandomain.ComputeStats(m.all, now)
	visible := plandomain.Filter(m.all, m.search.Value(), m.filter)
	items := make([]list.Item, len(visible))
	for i, p := range visible {
		item := planItem{plan: p}
		if !p.CreatedAt.IsZero() {
			item.ago = timeago.Format(p.CreatedAt, now)
		}
		items[i] = item
	}
	return m.list.SetItems(items)
}

func (m Model) selected() (plandomain.Plan, bool) {
	if item, ok := m.list.SelectedItem().(planItem); ok {
		return item.plan, true
	}
	return plandomain.Plan{}, false
}

func (m Model) fetchCmd(seq int) tea.Cmd {
	return func() tea.Msg {
		plans, err := m.port.List(context.Background())
		return PlansLoadedMsg{Seq: seq, Plans: plans, Err: err}
	}
}

func toDomain(plans []plandto.PlanOutput) []plandomain.Plan {
	out := make([]plandomain.Plan, len(plans))
	for i, p := range plans {
		out[i] = plandomain.Plan{
			ID:            p.ID,
			TargetRole:    p.TargetRole,
			DurationWeeks: p.DurationWeeks,
			Status:        p.Status,
			Summary:       p.Summary,
			CreatedAt:     p.CreatedAt,
		}
	}
	return out
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return DeletedMsg{PlanID: id, Err: m.port.Delete(context.Background(), id)}
	}
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading plans…")
	}

	var sb strings.Builder
	sb.WriteString(m.search.View() + "\n")
	sb.WriteString(m.renderStats() + "\n\n")

	switch {
	case m.failed != "":
		sb.WriteString(theme.Bad.Render(m.failed) + "\n" + theme.Muted.Render("r: retry"))
	case len(m.all) == 0:
		sb.WriteString(theme.Muted.Render("No plans yet. Press n to generate your first plan."))
	case len(m.list.Items()) == 0:
		sb.WriteString(theme.Muted.Render("No plans match your search."))
	default:
		sb.WriteString(m.list.View())
	}

	if m.confirm != nil {
		prompt := fmt.Sprintf("Delete plan %q? This cannot be undone. (y/n)", m.confirm.TargetRole)
		sb.WriteString("\n" + theme.Hot.Render(prompt))
	} else if m.deleting != "" {
		sb.WriteString("\n" + m.spinner.View() + " Deleting…")
	}
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(sb.String())
}

func (m Model) renderStats() string {
	filter := theme.TabActive.Render(m.filter.Label())
	stats := fmt.Sprintf("%d plans  ·  avg %.1f weeks  ·  last created %s",
		m.stats.Count, m.stats.AvgDurationWeeks, m.stats.LastCreated)
	return filter + "  " + theme.Muted.Render(stats) + "  " + theme.Muted.Render("(f: filter)")
}
