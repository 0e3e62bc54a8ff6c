package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sweet-catch/internal/config"
	"github.com/vovakirdan/sweet-catch/internal/router"
	"github.com/vovakirdan/sweet-catch/internal/share"
)

// textScreen shows a titled block of paragraphs. The about screen can also
// share the app.
type textScreen struct {
	env   *env
	title string
	text  config.TextConfig
	extra func(width int) string
	share *share.Message
	hint  string
}

func newRulesScreen(e *env) *textScreen {
	s := &textScreen{env: e, title: "Rules", text: e.Config.Rules}
	s.extra = s.pointsTable
	return s
}

func newAboutScreen(e *env) *textScreen {
	msg := appMessage(e)
	return &textScreen{env: e, title: "About", text: e.Config.About, share: &msg}
}

func (s *textScreen) Init() tea.Cmd { return nil }

func (s *textScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		keys := s.env.Keys
		switch {
		case key.Matches(msg, keys.Quit):
			return s, requestQuit
		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Select):
			return s, router.Back()
		case key.Matches(msg, keys.Share) && s.share != nil:
			return s, s.env.shareCmd(*s.share)
		}
	case sharedMsg:
		s.hint = shareHint(msg.ok)
	}
	return s, nil
}

// pointsTable lists every kind with its glyph and value.
func (s *textScreen) pointsTable(int) string {
	t := s.env.Theme
	lines := make([]string, 0, len(s.env.Config.Kinds))
	for _, k := range s.env.Config.CatchKinds() {
		lines = append(lines, fmt.Sprintf("%s  %-14s %3d pts", t.Sweet(k), k.Name, k.Points))
	}
	return t.Card.Render(strings.Join(lines, "\n"))
}

func (s *textScreen) View(width, height int) string {
	t := s.env.Theme
	extra := ""
	if s.extra != nil {
		extra = s.extra(width)
	}
	helpKeys := []key.Binding{s.env.Keys.Back}
	if s.share != nil {
		helpKeys = append(helpKeys, s.env.Keys.Share)
	}
	return layout(width, height,
		t.Title.Render(s.text.Title),
		"",
		paragraphs(t.Text, width-8, s.text.Paragraphs),
		"",
		extra,
		t.Success.Render(s.hint),
		s.env.helpView(helpKeys...),
	)
}

func (s *textScreen) Title() string { return s.title }

func shareHint(ok bool) string {
	if ok {
		return "Shared!"
	}
	return "Sharing is not available here."
}

func appMessage(e *env) share.Message {
	return share.AppMessage(e.Config.Share.AppTitle, e.Config.Share.AppMessage, e.Config.Share.AppURL)
}

func awardMessage(e *env, round, points int, tierTitle string) share.Message {
	return share.AwardMessage(e.Config.Share.AwardTitle, round, points, tierTitle)
}
