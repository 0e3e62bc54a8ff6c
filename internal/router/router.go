// Package router provides named-route navigation between Bubble Tea
// screens. Each route is registered with a factory; the router keeps a
// stack of live screens and notifies them when they gain focus or are
// removed.
package router

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Route names a screen.
type Route string

const (
	Loader      Route = "Loader"
	Onboarding  Route = "Onboarding"
	Home        Route = "Home"
	GamePlay    Route = "GamePlay"
	GameRules   Route = "GameRules"
	CloseAwards Route = "CloseAwards"
	About       Route = "About"
)

// Screen is one full-window view.
type Screen interface {
	// Init returns an initial command when the screen is created.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content for the given window size.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// Focuser is implemented by screens that react to becoming active, both
// when first shown and when revealed again by Back or Navigate.
type Focuser interface {
	Focus() tea.Cmd
}

// Leaver is implemented by screens that must release resources when they
// are removed from the stack.
type Leaver interface {
	Leave()
}

// Factory creates a fresh screen instance.
type Factory func() Screen

// NavigateMsg asks the router to show a route, popping back to it if it is
// already on the stack.
type NavigateMsg struct{ Route Route }

// ReplaceMsg asks the router to swap the active screen for a route.
type ReplaceMsg struct{ Route Route }

// BackMsg asks the router to pop the active screen.
type BackMsg struct{}

// Navigate returns a command that emits NavigateMsg.
func Navigate(r Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: r} }
}

// Replace returns a command that emits ReplaceMsg.
func Replace(r Route) tea.Cmd {
	return func() tea.Msg { return ReplaceMsg{Route: r} }
}

// Back returns a command that emits BackMsg.
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

type entry struct {
	route  Route
	screen Screen
}

// Router manages named routes and a stack of screens.
type Router struct {
	factories map[Route]Factory
	stack     []entry
	logger    *log.Logger
}

// New creates an empty router.
func New(logger *log.Logger) *Router {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Router{
		factories: make(map[Route]Factory),
		logger:    logger,
	}
}

// Register adds a route factory.
// Panics if the route is already registered.
func (r *Router) Register(route Route, f Factory) {
	if _, exists := r.factories[route]; exists {
		panic(fmt.Sprintf("router: route %q already registered", route))
	}
	r.factories[route] = f
}

func (r *Router) create(route Route) (Screen, error) {
	f, ok := r.factories[route]
	if !ok {
		return nil, fmt.Errorf("router: unknown route %q", route)
	}
	return f(), nil
}

// Start resets the stack to a single screen for route.
func (r *Router) Start(route Route) (tea.Cmd, error) {
	s, err := r.create(route)
	if err != nil {
		return nil, err
	}
	r.leaveFrom(0)
	r.stack = []entry{{route: route, screen: s}}
	return tea.Batch(s.Init(), focus(s)), nil
}

// Navigate shows route. If it is already on the stack, the screens above it
// are removed and it regains focus; otherwise a new instance is pushed.
func (r *Router) Navigate(route Route) (tea.Cmd, error) {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i].route != route {
			continue
		}
		if i == len(r.stack)-1 {
			return nil, nil
		}
		r.leaveFrom(i + 1)
		r.stack = r.stack[:i+1]
		return focus(r.stack[i].screen), nil
	}

	s, err := r.create(route)
	if err != nil {
		return nil, err
	}
	r.stack = append(r.stack, entry{route: route, screen: s})
	return tea.Batch(s.Init(), focus(s)), nil
}

// Replace swaps the active screen for a new instance of route.
func (r *Router) Replace(route Route) (tea.Cmd, error) {
	if len(r.stack) == 0 {
		return r.Start(route)
	}
	s, err := r.create(route)
	if err != nil {
		return nil, err
	}
	top := len(r.stack) - 1
	r.leaveFrom(top)
	r.stack[top] = entry{route: route, screen: s}
	return tea.Batch(s.Init(), focus(s)), nil
}

// Back pops the active screen. No-op if the stack depth would become 0.
func (r *Router) Back() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.leaveFrom(len(r.stack) - 1)
	r.stack = r.stack[:len(r.stack)-1]
	return focus(r.Active())
}

// leaveFrom notifies every screen at index i and above, top first.
func (r *Router) leaveFrom(i int) {
	for j := len(r.stack) - 1; j >= i; j-- {
		if l, ok := r.stack[j].screen.(Leaver); ok {
			l.Leave()
		}
	}
}

// Close removes every screen, notifying them as they leave.
func (r *Router) Close() {
	r.leaveFrom(0)
	r.stack = nil
}

func focus(s Screen) tea.Cmd {
	if f, ok := s.(Focuser); ok {
		return f.Focus()
	}
	return nil
}

// Active returns the top screen on the stack.
func (r *Router) Active() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1].screen
}

// ActiveRoute returns the route of the top screen, or "" if empty.
func (r *Router) ActiveRoute() Route {
	if len(r.stack) == 0 {
		return ""
	}
	return r.stack[len(r.stack)-1].route
}

// Stack returns the routes on the stack, bottom first.
func (r *Router) Stack() []Route {
	out := make([]Route, len(r.stack))
	for i, e := range r.stack {
		out[i] = e.route
	}
	return out
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	var (
		cmd tea.Cmd
		err error
	)
	switch msg := msg.(type) {
	case NavigateMsg:
		cmd, err = r.Navigate(msg.Route)
	case ReplaceMsg:
		cmd, err = r.Replace(msg.Route)
	case BackMsg:
		cmd = r.Back()
	default:
		if len(r.stack) == 0 {
			return nil
		}
		top := len(r.stack) - 1
		updated, c := r.stack[top].screen.Update(msg)
		r.stack[top].screen = updated
		return c
	}
	if err != nil {
		r.logger.Warn("navigation failed", "err", err)
		return nil
	}
	r.logger.Debug("navigated", "stack", r.Stack())
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
