package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "skillsetu/internal/modules/auth/dto"
	plandto "skillsetu/internal/modules/plan/dto"
	progressdto "skillsetu/internal/modules/progress/dto"
	statusdto "skillsetu/internal/modules/status/dto"
	"skillsetu/internal/platform/clock"
	"skillsetu/internal/ui/components"
	"skillsetu/internal/ui/notify"
	"skillsetu/internal/ui/router"
	"skillsetu/internal/ui/theme"
	generateview "skillsetu/internal/ui/views/generate"
	loginview "skillsetu/internal/ui/views/login"
	notfoundview "skillsetu/internal/ui/views/notfound"
	plandetailview "skillsetu/internal/ui/views/plandetail"
	plansview "skillsetu/internal/ui/views/plans"
	registerview "skillsetu/internal/ui/views/register"
	statusview "skillsetu/internal/ui/views/status"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type authPort interface {
	Login(ctx context.Context, email, password, returnTo string) (authdto.LoginOutput, error)
	Register(ctx context.Context, email, password string) (authdto.RegisterOutput, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (authdto.StatusOutput, error)
}

type tokenPort interface {
	Token(ctx context.Context) (string, bool, error)
}

type planPort interface {
	List(ctx context.Context) ([]plandto.PlanOutput, error)
	Detail(ctx context.Context, id string) (plandto.DetailOutput, error)
	Delete(ctx context.Context, id string) error
	Generate(ctx context.Context, goal string, skills []string, weeks int) (plandto.GenerateOutput, error)
}

type progressPort interface {
	Toggle(ctx context.Context, planID, itemID string) (progressdto.ToggleOutput, error)
	ReloadAll(ctx context.Context) error
}

// revisionPort reports a counter bumped on every local store write, by any
// process.
type revisionPort interface {
	Revision(ctx context.Context) (int64, error)
}

type statusPort interface {
	CheckAuthorization(ctx context.Context, tokenOverride string) (statusdto.CheckOutput, error)
	CheckGenerator(ctx context.Context, tokenOverride string) (statusdto.CheckOutput, error)
}

// Options carries everything the root model is wired with.
type Options struct {
	Auth      authPort
	Tokens    tokenPort
	Plans     planPort
	Progress  progressPort
	Status    statusPort
	Revisions revisionPort
	Navigator *router.Navigator
	Notifier  components.Notifier
	// Toasts is a Broker subscription; the model drains it for its tray.
	Toasts   <-chan notify.Toast
	Clock    clock.Clock
	LinkBase string
	// Start is the first path to open, "/" when empty.
	Start string
}

// ─── async messages ───────────────────────────────────────────────────────────

type toastMsg struct{ toast notify.Toast }

type toastExpiryMsg struct{ at time.Time }

type loggedOutMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Plans    key.Binding
	Generate key.Binding
	Status   key.Binding
	Back     key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Plans:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "plans")),
		Generate: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "new plan")),
		Status:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "status")),
		Back:     key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "back")),
		Dismiss:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "dismiss toast")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Palette, k.Back, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Plans, k.Generate, k.Status},
		{k.Back, k.Dismiss},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns navigation through the route
// guard, the toast tray, the help overlay and the command palette. Exactly
// one screen is mounted at a time; it is rebuilt on every navigation.
type Model struct {
	auth     authPort
	tokens   tokenPort
	plans    planPort
	progress progressPort
	status   statusPort
	revs     revisionPort
	nav      *router.Navigator
	notifier components.Notifier
	toasts   <-chan notify.Toast
	clock    clock.Clock
	linkBase string

	res      router.Resolution
	signedIn bool
	seenRev  int64
	tray     notify.Tray

	// mounted screen; only the field for res.Route.Name is live
	loginView    loginview.Model
	registerView registerview.Model
	plansView    plansview.Model
	generateView generateview.Model
	detailView   plandetailview.Model
	statusView   statusview.Model
	missingView  notfoundview.Model

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	line     string
	width    int
	height   int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(opts Options) Model {
	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = discardNotifier{}
	}
	m := Model{
		auth:     opts.Auth,
		tokens:   opts.Tokens,
		plans:    opts.Plans,
		progress: opts.Progress,
		status:   opts.Status,
		revs:     opts.Revisions,
		nav:      opts.Navigator,
		notifier: notifier,
		toasts:   opts.Toasts,
		clock:    clk,
		linkBase: opts.LinkBase,
		keys:     defaultKeys(),
		help:     help.New(),
		palette:  components.NewPalette(),
	}
	start := opts.Start
	if start == "" {
		start = router.PathHome
	}
	m.res = m.nav.Navigate(context.Background(), start)
	m.signedIn = m.nav.State(context.Background()) == router.Authenticated
	m.seenRev, _ = m.revision()
	m.build()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initView(), m.waitForToast())
}

// Route reports the mounted screen and where it lives.
func (m Model) Route() router.Resolution { return m.res }

// Toasts returns the toasts currently shown.
func (m Model) Toasts() []notify.Toast { return m.tray.Items() }

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		return m.updateView(m.viewSize())

	case components.NavigateMsg:
		return m.navigate(msg.Path)

	case components.SessionExpiredMsg:
		m.line = "session expired"
		res := m.nav.Refresh(context.Background())
		if res.Route.Name != router.RouteLogin {
			res = m.nav.Navigate(context.Background(), router.PathLogin)
		}
		return m.mount(res)

	// The token or plan progress may have been changed by another
	// skillsetu process while the terminal was in the background.
	case tea.FocusMsg:
		rev, changed := m.revision()
		if changed && m.progress != nil {
			if err := m.progress.ReloadAll(context.Background()); err != nil {
				m.line = "reload progress: " + err.Error()
			}
		}
		res := m.nav.Refresh(context.Background())
		if changed || res.Path != m.res.Path {
			m.seenRev = rev
			return m.mount(res)
		}

	case toastMsg:
		m.tray.Add(msg.toast)
		return m, tea.Batch(m.waitForToast(), m.scheduleExpiry())

	case toastExpiryMsg:
		m.tray.Expire(msg.at)
		return m, m.scheduleExpiry()

	case loggedOutMsg:
		if msg.err != nil {
			m.notifier.Error("Logout failed: " + msg.err.Error())
			return m, nil
		}
		return m.navigate(router.PathLogin)

	case components.PaletteSubmitMsg:
		return m.runCommand(msg.Input)

	case components.PaletteCancelMsg:
		m.line = ""
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+b":
			return m.back()
		case "ctrl+d":
			if items := m.tray.Items(); len(items) > 0 {
				m.tray.Dismiss(items[len(items)-1].ID)
			}
			return m, nil
		}

		// Yield to the screen while it is collecting text.
		if m.capturing() {
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "1":
			return m.navigate(router.PathPlans)
		case "2":
			return m.navigate(router.PathGenerate)
		case "3":
			return m.navigate(router.PathStatus)
		}
	}

	return m.updateView(msg)
}

func (m Model) navigate(path string) (tea.Model, tea.Cmd) {
	m.line = ""
	return m.mount(m.nav.Navigate(context.Background(), path))
}

func (m Model) back() (tea.Model, tea.Cmd) {
	res, ok := m.nav.Back(context.Background())
	if !ok {
		m.line = "nothing to go back to"
		return m, nil
	}
	return m.mount(res)
}

// mount replaces the current screen with a fresh one for res.
func (m Model) mount(res router.Resolution) (tea.Model, tea.Cmd) {
	m.res = res
	m.signedIn = m.nav.State(context.Background()) == router.Authenticated
	m.build()
	next, sizeCmd := m.updateView(m.viewSize())
	return next, tea.Batch(sizeCmd, next.(Model).initView())
}

func (m *Model) build() {
	switch m.res.Route.Name {
	case router.RouteLogin:
		m.loginView = loginview.New(m.auth, m.notifier, m.nav.LoginRedirectTarget())
	case router.RouteRegister:
		m.registerView = registerview.New(m.auth, m.notifier)
	case router.RoutePlans:
		m.plansView = plansview.New(m.plans, m.notifier, m.clock)
	case router.RouteGenerate:
		m.generateView = generateview.New(m.plans, m.notifier)
	case router.RoutePlanDetail:
		port := detailPortBridge{plans: m.plans, progress: m.progress}
		m.detailView = plandetailview.New(port, m.notifier, m.res.Params["id"], m.linkBase)
	case router.RouteStatus:
		port := statusPortBridge{auth: m.auth, tokens: m.tokens, status: m.status}
		m.statusView = statusview.New(port, m.notifier)
	default:
		m.missingView = notfoundview.New(m.res.Path)
	}
}

func (m Model) initView() tea.Cmd {
	switch m.res.Route.Name {
	case router.RouteLogin:
		return m.loginView.Init()
	case router.RouteRegister:
		return m.registerView.Init()
	case router.RoutePlans:
		return m.plansView.Init()
	case router.RouteGenerate:
		return m.generateView.Init()
	case router.RoutePlanDetail:
		return m.detailView.Init()
	case router.RouteStatus:
		return m.statusView.Init()
	}
	return m.missingView.Init()
}

func (m Model) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.res.Route.Name {
	case router.RouteLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case router.RouteRegister:
		m.registerView, cmd = m.registerView.Update(msg)
	case router.RoutePlans:
		m.plansView, cmd = m.plansView.Update(msg)
	case router.RouteGenerate:
		m.generateView, cmd = m.generateView.Update(msg)
	case router.RoutePlanDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case router.RouteStatus:
		m.statusView, cmd = m.statusView.Update(msg)
	default:
		m.missingView, cmd = m.missingView.Update(msg)
	}
	return m, cmd
}

func (m Model) capturing() bool {
	switch m.res.Route.Name {
	case router.RouteLogin:
		return m.loginView.Capturing()
	case router.RouteRegister:
		return m.registerView.Capturing()
	case router.RoutePlans:
		return m.plansView.Capturing()
	case router.RouteGenerate:
		return m.generateView.Capturing()
	case router.RoutePlanDetail:
		return m.detailView.Capturing()
	case router.RouteStatus:
		return m.statusView.Capturing()
	}
	return m.missingView.Capturing()
}

// revision reads the store counter and reports whether it moved since the
// last look.
func (m Model) revision() (int64, bool) {
	if m.revs == nil {
		return m.seenRev, false
	}
	rev, err := m.revs.Revision(context.Background())
	if err != nil {
		return m.seenRev, false
	}
	return rev, rev != m.seenRev
}

func (m Model) viewSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: max(m.height-3, 1)}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	tray := m.renderTray()

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if tray != "" {
		contentH -= lipgloss.Height(tray)
	}
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().MaxHeight(contentH).Render(m.activeView())
	}

	parts := []string{header, content}
	if tray != "" {
		parts = append(parts, tray)
	}
	parts = append(parts, statusBar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) activeView() string {
	switch m.res.Route.Name {
	case router.RouteLogin:
		return m.loginView.View()
	case router.RouteRegister:
		return m.registerView.View()
	case router.RoutePlans:
		return m.plansView.View()
	case router.RouteGenerate:
		return m.generateView.View()
	case router.RoutePlanDetail:
		return m.detailView.View()
	case router.RouteStatus:
		return m.statusView.View()
	}
	return m.missingView.View()
}

type navLink struct {
	label string
	route router.RouteName
}

var (
	signedInLinks  = []navLink{{"1 Plans", router.RoutePlans}, {"2 New plan", router.RouteGenerate}, {"3 Status", router.RouteStatus}}
	signedOutLinks = []navLink{{"Login", router.RouteLogin}, {"Register", router.RouteRegister}}
)

func (m Model) renderHeader() string {
	links := signedOutLinks
	if m.signedIn {
		links = signedInLinks
	}
	parts := make([]string, len(links))
	for i, l := range links {
		active := l.route == m.res.Route.Name ||
			(l.route == router.RoutePlans && m.res.Route.Name == router.RoutePlanDetail)
		if active {
			parts[i] = theme.Hot.Render(" " + l.label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + l.label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := theme.Title.Render("skillsetu") + "  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderStatusBar() string {
	left := theme.Hot.Render(m.res.Path)
	if m.line != "" {
		left += "  " + m.line
	}
	right := theme.Muted.Render("?:help  :::palette  ctrl+b:back  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderTray() string {
	items := m.tray.Items()
	if len(items) == 0 {
		return ""
	}
	rendered := make([]string, len(items))
	for i, t := range items {
		rendered[i] = theme.ToastStyle(string(t.Severity)).Render(t.Message)
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, stack)
}

// ─── palette commands ────────────────────────────────────────────────────────

func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	m.line = ""

	switch parts[0] {
	case "plans":
		return m.navigate(router.PathPlans)
	case "new":
		return m.navigate(router.PathGenerate)
	case "open":
		if len(parts) < 2 {
			m.line = "usage: open <plan-id>"
			return m, nil
		}
		return m.navigate(router.PlanPath(parts[1]))
	case "status":
		return m.navigate(router.PathStatus)
	case "login":
		return m.navigate(router.PathLogin)
	case "register":
		return m.navigate(router.PathRegister)
	case "logout":
		return m, m.logoutCmd()
	case "back":
		return m.back()
	case "go":
		if len(parts) < 2 {
			m.line = "usage: go <path>"
			return m, nil
		}
		return m.navigate(parts[1])
	case "dismiss":
		for _, t := range m.tray.Items() {
			m.tray.Dismiss(t.ID)
		}
		return m, nil
	case "quit":
		return m, tea.Quit
	}
	m.line = "unknown command: " + parts[0]
	return m, nil
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) waitForToast() tea.Cmd {
	ch := m.toasts
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return toastMsg{toast: t}
	}
}

func (m Model) scheduleExpiry() tea.Cmd {
	next, ok := m.tray.NextExpiry()
	if !ok {
		return nil
	}
	wait := next.Sub(m.clock.Now())
	if wait < 0 {
		wait = 0
	}
	return tea.Tick(wait, func(t time.Time) tea.Msg {
		return toastExpiryMsg{at: next}
	})
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.auth.Logout(context.Background())}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows or joins root ports into the interface a single screen
// needs, keeping view packages free of knowledge about the wider port surface.

type detailPortBridge struct {
	plans    planPort
	progress progressPort
}

func (b detailPortBridge) Detail(ctx context.Context, id string) (plandto.DetailOutput, error) {
	return b.plans.Detail(ctx, id)
}
func (b detailPortBridge) Toggle(ctx context.Context, planID, itemID string) (progressdto.ToggleOutput, error) {
	return b.progress.Toggle(ctx, planID, itemID)
}

type statusPortBridge struct {
	auth   authPort
	tokens tokenPort
	status statusPort
}

func (b statusPortBridge) Status(ctx context.Context) (authdto.StatusOutput, error) {
	return b.auth.Status(ctx)
}
func (b statusPortBridge) Token(ctx context.Context) (string, bool, error) {
	return b.tokens.Token(ctx)
}
func (b statusPortBridge) CheckAuthorization(ctx context.Context, token string) (statusdto.CheckOutput, error) {
	return b.status.CheckAuthorization(ctx, token)
}
func (b statusPortBridge) CheckGenerator(ctx context.Context, token string) (statusdto.CheckOutput, error) {
	return b.status.CheckGenerator(ctx, token)
}

type discardNotifier struct{}

func (discardNotifier) Success(string) {}
func (discardNotifier) Error(string)   {}
func (discardNotifier) Info(string)    {}

// BrokerNotifier adapts a notify.Broker to the views' Notifier.
type BrokerNotifier struct{ Broker *notify.Broker }

func (n BrokerNotifier) Success(message string) { n.Broker.Success(message) }
func (n BrokerNotifier) Error(message string)   { n.Broker.Error(message) }
func (n BrokerNotifier) Info(message string)    { n.Broker.Info(message) }
