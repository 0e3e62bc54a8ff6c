package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sweet-catch/internal/router"
)

// MenuItem is one entry of the home menu.
type MenuItem struct {
	Title string
	Route router.Route // empty for Quit
}

// homeItems returns the home menu entries in display order.
func homeItems() []MenuItem {
	return []MenuItem{
		{Title: "Play", Route: router.GamePlay},
		{Title: "Rules", Route: router.GameRules},
		{Title: "Profile", Route: router.CloseAwards},
		{Title: "About", Route: router.About},
		{Title: "Quit"},
	}
}

// homeScreen is the main menu.
type homeScreen struct {
	env    *env
	items  []MenuItem
	cursor int
	name   string
}

func newHomeScreen(e *env) *homeScreen {
	return &homeScreen{env: e, items: homeItems()}
}

func (s *homeScreen) Init() tea.Cmd { return nil }

// Focus refreshes the greeting, which the profile screen may have changed.
func (s *homeScreen) Focus() tea.Cmd {
	s.name = s.env.History.DisplayName()
	return nil
}

func (s *homeScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	keys := s.env.Keys
	switch {
	case key.Matches(km, keys.Quit):
		return s, requestQuit
	case key.Matches(km, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(km, keys.Down):
		if s.cursor < len(s.items)-1 {
			s.cursor++
		}
	case key.Matches(km, keys.Select):
		item := s.items[s.cursor]
		if item.Route == "" {
			return s, requestQuit
		}
		return s, router.Navigate(item.Route)
	}
	return s, nil
}

// Selected returns the highlighted entry.
func (s *homeScreen) Selected() MenuItem { return s.items[s.cursor] }

func (s *homeScreen) View(width, height int) string {
	t := s.env.Theme

	greeting := "Hello, sweet catcher!"
	if s.name != "" {
		greeting = fmt.Sprintf("Hello, %s!", s.name)
	}

	var b strings.Builder
	for i, item := range s.items {
		if i == s.cursor {
			b.WriteString(t.MenuItemActive.Render("> " + item.Title + " "))
		} else {
			b.WriteString(t.MenuItemNormal.Render("  " + item.Title + " "))
		}
		if i < len(s.items)-1 {
			b.WriteString("\n")
		}
	}

	return layout(width, height,
		t.Title.Render("S W E E T   C A T C H"),
		t.Subtitle.Render(greeting),
		"",
		b.String(),
		"",
		s.env.helpView(s.env.Keys.Up, s.env.Keys.Down, s.env.Keys.Select, s.env.Keys.Quit),
	)
}

func (s *homeScreen) Title() string { return "Home" }
