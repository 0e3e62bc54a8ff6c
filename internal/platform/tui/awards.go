package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sweet-catch/internal/history"
	"github.com/vovakirdan/sweet-catch/internal/router"
)

const nameMaxLen = 24

// awardsScreen shows the latest session: a chip per finished round, the
// selected round's catches and award, and the player's editable name.
type awardsScreen struct {
	env      *env
	profile  history.Profile
	selected int
	name     textinput.Model
	editing  bool
	tiers    table.Model
	hint     string
}

func newAwardsScreen(e *env) *awardsScreen {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = nameMaxLen
	ti.Width = nameMaxLen
	ti.Prompt = ""
	// No blink: an idle SSH session gets no redraws.
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &awardsScreen{env: e, name: ti, tiers: newTierTable(e)}
}

func newTierTable(e *env) table.Model {
	columns := []table.Column{
		{Title: "Award", Width: 22},
		{Title: "From", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	tiers := e.History.Tiers()
	rows := make([]table.Row, len(tiers))
	for i, tier := range tiers {
		rows[i] = table.Row{tier.Title, fmt.Sprintf("%d+", tier.Min)}
	}
	t.SetRows(rows)
	t.SetHeight(len(rows) + 1)
	return t
}

func (s *awardsScreen) Init() tea.Cmd { return nil }

// Focus reloads the profile and selects the most recent round.
func (s *awardsScreen) Focus() tea.Cmd {
	s.profile = s.env.History.Profile()
	s.selected = 0
	if n := len(s.profile.Rounds); n > 0 {
		s.selected = s.profile.Rounds[n-1].Level
	}
	s.name.SetValue(s.profile.Name)
	s.editing = false
	s.name.Blur()
	s.hint = ""
	s.syncTierCursor()
	return nil
}

func (s *awardsScreen) syncTierCursor() {
	award := s.profile.Award(s.selected)
	for i, tier := range s.profile.Tiers() {
		if tier.Key == award.Tier.Key {
			s.tiers.SetCursor(i)
			return
		}
	}
}

func (s *awardsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.editing {
			return s.updateEditing(msg)
		}
		return s.handleKey(msg)
	case sharedMsg:
		s.hint = shareHint(msg.ok)
	}
	return s, nil
}

func (s *awardsScreen) updateEditing(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter, tea.KeyTab:
		s.editing = false
		s.name.Blur()
		return s, nil
	}

	before := s.name.Value()
	var cmd tea.Cmd
	s.name, cmd = s.name.Update(msg)
	if v := s.name.Value(); v != before {
		s.env.History.SetDisplayName(v)
		s.profile.Name = v
	}
	return s, cmd
}

func (s *awardsScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	keys := s.env.Keys
	switch {
	case key.Matches(msg, keys.Quit):
		return s, requestQuit
	case key.Matches(msg, keys.Back):
		return s, router.Back()
	case key.Matches(msg, keys.Edit):
		s.editing = true
		return s, s.name.Focus()
	case key.Matches(msg, keys.Left):
		s.step(-1)
	case key.Matches(msg, keys.Right):
		s.step(1)
	case key.Matches(msg, keys.Share):
		award := s.profile.Award(s.selected)
		if award.Round.Level == 0 {
			return s, nil
		}
		return s, s.env.shareCmd(awardMessage(s.env, award.Round.Level, award.Round.Points, award.Tier.Title))
	}
	return s, nil
}

// step moves the selection to the neighbouring finished round.
func (s *awardsScreen) step(delta int) {
	rounds := s.profile.Rounds
	for i, r := range rounds {
		if r.Level != s.selected {
			continue
		}
		j := i + delta
		if j >= 0 && j < len(rounds) {
			s.selected = rounds[j].Level
			s.syncTierCursor()
		}
		return
	}
}

// Selected returns the selected level.
func (s *awardsScreen) Selected() int { return s.selected }

func (s *awardsScreen) View(width, height int) string {
	t := s.env.Theme
	keys := s.env.Keys

	nameLine := t.HUDLabel.Render("Name: ") + s.name.View()
	if !s.editing && s.name.Value() == "" {
		nameLine = t.HUDLabel.Render("Name: ") + t.Dim.Render("(press e to set)")
	}

	if len(s.profile.Rounds) == 0 {
		return layout(width, height,
			t.Title.Render("Your awards"),
			nameLine,
			"",
			t.Dim.Render("No rounds played yet."),
			"",
			s.env.helpView(keys.Edit, keys.Back),
		)
	}

	award := s.profile.Award(s.selected)

	return layout(width, height,
		t.Title.Render("Your awards"),
		nameLine,
		"",
		s.chips(),
		"",
		s.caughtLine(award),
		"",
		t.Card.Render(strings.Join([]string{
			t.PopupTitle.Render(award.Tier.Title),
			t.Dim.Render(award.Tier.Description),
			t.Badge.Render(award.Badge),
		}, "\n")),
		"",
		s.tiers.View(),
		t.Success.Render(s.hint),
		s.env.helpView(keys.Left, keys.Right, keys.Edit, keys.Share, keys.Back),
	)
}

// chips renders one chip per finished round of the session.
func (s *awardsScreen) chips() string {
	t := s.env.Theme
	parts := make([]string, 0, len(s.profile.Rounds))
	for _, r := range s.profile.Rounds {
		label := fmt.Sprintf("%d", r.Level)
		if r.Level == s.selected {
			parts = append(parts, t.ChipSelected.Render(label))
		} else {
			parts = append(parts, t.ChipDone.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (s *awardsScreen) caughtLine(award history.Award) string {
	t := s.env.Theme
	parts := make([]string, 0, len(s.profile.Kinds()))
	for _, k := range s.profile.Kinds() {
		parts = append(parts, fmt.Sprintf("%s %d", t.Sweet(k), award.Counts[k.Kind]))
	}
	return t.HUDLabel.Render(fmt.Sprintf("Round %d  ", award.Round.Level)) + strings.Join(parts, "   ")
}

func (s *awardsScreen) Title() string { return "Awards" }
