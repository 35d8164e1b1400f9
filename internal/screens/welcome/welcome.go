package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexirank/internal/ranking"
	"github.com/abhisek/lexirank/internal/router"
	"github.com/abhisek/lexirank/internal/screen"
	"github.com/abhisek/lexirank/internal/ui/theme"
)

const tickInterval = 120 * time.Millisecond

type tickMsg time.Time

// WelcomeScreen reveals the tier ladder one rank per tick, then shows the
// banner. Any key skips ahead to the next screen.
type WelcomeScreen struct {
	next         func() screen.Screen
	revealed     int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that hands off to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// done reports whether every tier has been revealed.
func (w *WelcomeScreen) done() bool {
	return w.revealed >= ranking.MaxRank
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done() {
			return w, nil
		}
		w.revealed++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	tiers := ranking.AllTiers()

	// Highest tier on top, like a ladder.
	var ladder []string
	for i := len(tiers) - 1; i >= 0; i-- {
		t := tiers[i]
		if i >= w.revealed {
			ladder = append(ladder, "")
			continue
		}
		ladder = append(ladder, lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Visual.Accent)).
			Render(t.Label()))
	}

	sections := []string{strings.Join(ladder, "\n")}

	if w.done() {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Find your level"),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
