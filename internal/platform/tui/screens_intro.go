package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sweet-catch/internal/router"
	"github.com/vovakirdan/sweet-catch/internal/sched"
)

// loaderScreen shows the splash, then replaces itself with onboarding.
type loaderScreen struct {
	env     *env
	spinner spinner.Model
	task    sched.Task
}

func newLoaderScreen(e *env) *loaderScreen {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(e.Theme.Title))
	return &loaderScreen{env: e, spinner: sp}
}

func (s *loaderScreen) Init() tea.Cmd { return s.spinner.Tick }

// Focus arms the single-shot delay.
func (s *loaderScreen) Focus() tea.Cmd {
	s.stop()
	s.task = sched.After(s.env.sched, s.env.Config.LoaderDelay(), func() {
		s.task = nil
		s.env.sched.Emit(router.Replace(router.Onboarding))
	})
	return nil
}

func (s *loaderScreen) Leave() { s.stop() }

func (s *loaderScreen) stop() {
	if s.task != nil {
		s.task.Stop()
		s.task = nil
	}
}

func (s *loaderScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, s.env.Keys.Quit) {
			return s, requestQuit
		}
		// Any other key skips the splash
		s.stop()
		return s, router.Replace(router.Onboarding)
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *loaderScreen) View(width, height int) string {
	t := s.env.Theme
	return layout(width, height,
		t.Title.Render("S W E E T   C A T C H"),
		"",
		s.spinner.View()+t.Dim.Render(" loading sweets..."),
	)
}

func (s *loaderScreen) Title() string { return "Loading" }

// onboardingScreen walks through the intro pages.
type onboardingScreen struct {
	env  *env
	page int
}

func newOnboardingScreen(e *env) *onboardingScreen {
	return &onboardingScreen{env: e}
}

func (s *onboardingScreen) Init() tea.Cmd { return nil }

func (s *onboardingScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	keys := s.env.Keys
	switch {
	case key.Matches(km, keys.Quit):
		return s, requestQuit
	case key.Matches(km, keys.Select), key.Matches(km, keys.Right):
		if s.page >= len(s.env.Config.Flow.Onboarding)-1 {
			return s, router.Replace(router.Home)
		}
		s.page++
	case key.Matches(km, keys.Left), key.Matches(km, keys.Back):
		if s.page > 0 {
			s.page--
		}
	}
	return s, nil
}

// Page returns the index of the visible page.
func (s *onboardingScreen) Page() int { return s.page }

func (s *onboardingScreen) View(width, height int) string {
	t := s.env.Theme
	pages := s.env.Config.Flow.Onboarding
	if len(pages) == 0 {
		return layout(width, height, t.Dim.Render("press enter"))
	}
	p := pages[s.page]

	dots := make([]string, len(pages))
	for i := range pages {
		if i == s.page {
			dots[i] = t.MenuItemActive.Render("●")
		} else {
			dots[i] = t.Dim.Render("○")
		}
	}

	button := p.Button
	if button == "" {
		button = "Next"
	}

	return layout(width, height,
		t.Title.Render(p.Title),
		"",
		paragraphs(t.Text, width-8, []string{p.Text}),
		"",
		strings.Join(dots, " "),
		"",
		t.Badge.Render(fmt.Sprintf("[ %s ]", button)),
		"",
		s.env.helpView(s.env.Keys.Select, s.env.Keys.Left),
	)
}

func (s *onboardingScreen) Title() string { return "Welcome" }
