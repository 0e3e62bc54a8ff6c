package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sweet-catch/internal/config"
	"github.com/vovakirdan/sweet-catch/internal/core"
	"github.com/vovakirdan/sweet-catch/internal/history"
	"github.com/vovakirdan/sweet-catch/internal/router"
	"github.com/vovakirdan/sweet-catch/internal/share"
	"github.com/vovakirdan/sweet-catch/internal/storage"
)

// Deps are the collaborators one player's screen flow runs against.
type Deps struct {
	Config  config.Config
	History *history.Store
	Sharer  share.Sharer
	Logger  *log.Logger
	Theme   Theme
	Keys    KeyMap
	Runtime core.RuntimeConfig
	// Tick arms animation frames and scheduled tasks. Defaults to tea.Tick.
	Tick TickFunc
}

func (d Deps) withDefaults() Deps {
	if d.Config.Round.LevelDurationSec == 0 {
		d.Config = config.DefaultConfig()
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.History == nil {
		d.History = history.New(storage.Nop{},
			history.WithKinds(d.Config.CatchKinds()),
			history.WithTiers(d.Config.AwardTiers()),
			history.WithLogger(d.Logger),
		)
	}
	if d.Sharer == nil {
		d.Sharer = share.Nop{}
	}
	if d.Theme.Kinds == nil {
		d.Theme = DefaultTheme()
	}
	if len(d.Keys.Quit.Keys()) == 0 {
		d.Keys = DefaultKeyMap()
	}
	if d.Runtime.TickRate <= 0 {
		d.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if d.Tick == nil {
		d.Tick = tea.Tick
	}
	return d
}

// env is what every screen shares: the player's deps and the program's
// scheduler.
type env struct {
	Deps
	sched *Scheduler
	help  help.Model
}

// sharedMsg reports the outcome of a share request.
type sharedMsg struct{ ok bool }

// shareCmd shares msg off the event loop. Failures are swallowed.
func (e *env) shareCmd(msg share.Message) tea.Cmd {
	sharer, logger := e.Sharer, e.Logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return sharedMsg{ok: share.Send(ctx, sharer, msg, logger)}
	}
}

// helpView renders the short help for the given bindings.
func (e *env) helpView(bs ...key.Binding) string {
	return e.help.View(bindings(bs))
}

// App is the top-level Bubble Tea model: a router over the game's screens.
type App struct {
	env      *env
	router   *router.Router
	start    router.Route
	width    int
	height   int
	quitting bool
}

// NewApp creates the screen flow starting at the given route.
func NewApp(deps Deps, start router.Route) *App {
	deps = deps.withDefaults()
	e := &env{Deps: deps, sched: newScheduler(deps.Tick), help: help.New()}

	r := router.New(deps.Logger)
	r.Register(router.Loader, func() router.Screen { return newLoaderScreen(e) })
	r.Register(router.Onboarding, func() router.Screen { return newOnboardingScreen(e) })
	r.Register(router.Home, func() router.Screen { return newHomeScreen(e) })
	r.Register(router.GamePlay, func() router.Screen { return newGameScreen(e) })
	r.Register(router.GameRules, func() router.Screen { return newRulesScreen(e) })
	r.Register(router.CloseAwards, func() router.Screen { return newAwardsScreen(e) })
	r.Register(router.About, func() router.Screen { return newAboutScreen(e) })

	if start == "" {
		start = router.Loader
	}
	return &App{
		env:    e,
		router: r,
		start:  start,
		width:  deps.Runtime.ScreenW,
		height: deps.Runtime.ScreenH,
	}
}

// Init starts the first screen.
func (a *App) Init() tea.Cmd {
	cmd, err := a.router.Start(a.start)
	if err != nil {
		a.env.Logger.Error("cannot start", "route", a.start, "err", err)
		return tea.Quit
	}
	return tea.Batch(cmd, a.env.sched.Flush())
}

// Update handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global quit key
		if msg.String() == "ctrl+c" {
			return a.quit()
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.env.Runtime = a.env.Runtime.WithSize(msg.Width, msg.Height)
		a.env.help.Width = msg.Width

	case schedFireMsg:
		return a, a.env.sched.handle(msg)

	case quitMsg:
		return a.quit()
	}

	cmd := a.router.Update(msg)
	return a, tea.Batch(cmd, a.env.sched.Flush())
}

// quitMsg asks the app to tear down and exit.
type quitMsg struct{}

func requestQuit() tea.Msg { return quitMsg{} }

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	a.Close()
	return a, tea.Quit
}

// Close removes every screen so running rounds stop.
func (a *App) Close() {
	a.router.Close()
}

// ActiveRoute returns the route currently on screen.
func (a *App) ActiveRoute() router.Route {
	return a.router.ActiveRoute()
}

// View renders the active screen.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	return a.router.View(a.width, a.height)
}

// Run starts the Bubble Tea program in the current terminal.
func Run(deps Deps, start router.Route, opts ...tea.ProgramOption) error {
	app := NewApp(deps, start)
	defer app.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(app, opts...)

	_, err := p.Run()
	return err
}
