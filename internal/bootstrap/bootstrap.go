package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	authinadapter "skillsetu/internal/modules/auth/adapter/in"
	authoutadapter "skillsetu/internal/modules/auth/adapter/out"
	authservice "skillsetu/internal/modules/auth/service"
	authusecase "skillsetu/internal/modules/auth/usecase"
	planinadapter "skillsetu/internal/modules/plan/adapter/in"
	planoutadapter "skillsetu/internal/modules/plan/adapter/out"
	planservice "skillsetu/internal/modules/plan/service"
	planusecase "skillsetu/internal/modules/plan/usecase"
	progressinadapter "skillsetu/internal/modules/progress/adapter/in"
	progressoutadapter "skillsetu/internal/modules/progress/adapter/out"
	progressservice "skillsetu/internal/modules/progress/service"
	progressusecase "skillsetu/internal/modules/progress/usecase"
	statusinadapter "skillsetu/internal/modules/status/adapter/in"
	statusoutadapter "skillsetu/internal/modules/status/adapter/out"
	statusservice "skillsetu/internal/modules/status/service"
	statususecase "skillsetu/internal/modules/status/usecase"
	"skillsetu/internal/platform/clock"
	"skillsetu/internal/platform/config"
	"skillsetu/internal/platform/httpsession"
	"skillsetu/internal/platform/id"
	"skillsetu/internal/platform/kv"
	"skillsetu/internal/platform/logging"
	uiapp "skillsetu/internal/ui/app"
	"skillsetu/internal/ui/components"
	"skillsetu/internal/ui/notify"
	"skillsetu/internal/ui/router"
)

type App struct {
	AuthCLI     authinadapter.CLIHandler
	PlanCLI     planinadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler
	StatusCLI   statusinadapter.CLIHandler
	Tokens      *authoutadapter.KVTokenStore
	Logger      hclog.Logger
	Clock       clock.Clock
	APIBase     string

	store *kv.Store
	hooks *expiryHooks
}

// Options configures New. LogOutput defaults to stderr. Session may carry a
// custom HTTP client; its other fields are filled from Config.
type Options struct {
	Config    config.Config
	LogOutput io.Writer
	Clock     clock.Clock
	Session   httpsession.Options
}

// expiryHooks lets the front end decide what a rejected token means after
// the HTTP session has already been built.
type expiryHooks struct {
	mu sync.Mutex
	fn func()
}

func (h *expiryHooks) set(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fn = fn
}

func (h *expiryHooks) fire(context.Context) {
	h.mu.Lock()
	fn := h.fn
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func New(opts Options) (*App, error) {
	cfg := opts.Config
	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Output: out})

	store, err := kv.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	tokens := authoutadapter.NewKVTokenStore(store, logger.Named("tokens"))
	hooks := &expiryHooks{}

	sessionOpts := opts.Session
	sessionOpts.BaseURL = cfg.APIBase
	sessionOpts.Tokens = tokens
	sessionOpts.Logger = logger.Named("http")
	sessionOpts.DefaultTimeout = cfg.RequestTimeout
	sessionOpts.OnUnauthorized = hooks.fire
	session, err := httpsession.New(sessionOpts)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("new http session: %w", err)
	}

	authUC := authusecase.NewInteractor(authservice.NewAuthService(
		tokens,
		authoutadapter.NewHTTPAuthAPI(session),
		logger.Named("auth"),
	))

	progressUC := progressusecase.NewInteractor(progressservice.NewTracker(
		progressoutadapter.NewKVProgressStore(store),
		logger.Named("progress"),
	))

	planUC := planusecase.NewInteractor(planservice.NewPlanService(
		clk,
		planoutadapter.NewHTTPPlanAPI(session),
		planoutadapter.NewProgressAdapter(progressUC),
		logger.Named("plans"),
	))

	statusUC := statususecase.NewInteractor(statusservice.NewStatusService(
		tokens,
		statusoutadapter.NewHTTPProbeAPI(session),
		logger.Named("status"),
	))

	return &App{
		AuthCLI:     authinadapter.NewCLIHandler(authUC),
		PlanCLI:     planinadapter.NewCLIHandler(planUC),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		StatusCLI:   statusinadapter.NewCLIHandler(statusUC),
		Tokens:      tokens,
		Logger:      logger,
		Clock:       clk,
		APIBase:     cfg.APIBase,
		store:       store,
		hooks:       hooks,
	}, nil
}

// OnSessionExpired registers what happens after a 401 cleared the token.
// It runs once per rejected response.
func (a *App) OnSessionExpired(fn func()) {
	a.hooks.set(fn)
}

// Revision moves whenever the local store is written, including by another
// skillsetu process.
func (a *App) Revision(ctx context.Context) (int64, error) {
	return a.store.Revision(ctx)
}

func (a *App) Close() error {
	return a.store.Close()
}

// RunTUI takes over the terminal until the user quits. Logs go to
// cfg.LogPath so they do not tear the alt screen.
func RunTUI(cfg config.Config, start string) error {
	logFile, err := logging.OpenFile(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	app, err := New(Options{Config: cfg, LogOutput: logFile})
	if err != nil {
		return err
	}
	defer app.Close()

	broker := notify.NewBroker(app.Clock, id.RandomHex{}, app.Logger.Named("notify"))
	toasts, unsubscribe := broker.Subscribe()
	defer unsubscribe()

	model := uiapp.NewModel(uiapp.Options{
		Auth:      app.AuthCLI,
		Tokens:    app.Tokens,
		Plans:     app.PlanCLI,
		Progress:  app.ProgressCLI,
		Status:    app.StatusCLI,
		Revisions: app,
		Navigator: router.NewNavigator(router.NewGuard(app.AuthCLI)),
		Notifier:  uiapp.BrokerNotifier{Broker: broker},
		Toasts:    toasts,
		Clock:     app.Clock,
		LinkBase:  app.APIBase,
		Start:     start,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	app.OnSessionExpired(func() {
		program.Send(components.SessionExpiredMsg{})
	})
	_, err = program.Run()
	return err
}
