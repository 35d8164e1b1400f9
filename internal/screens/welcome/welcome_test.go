package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexirank/internal/ranking"
	"github.com/abhisek/lexirank/internal/router"
	"github.com/abhisek/lexirank/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "quiz" }
func (s *stubScreen) Title() string                          { return "Quiz" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestRevealLadder(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), "Rookie") {
		t.Error("no tier should be visible before the first tick")
	}

	sendTicks(w, 1)
	view := w.View(100, 30)
	if !strings.Contains(view, "Rookie") {
		t.Error("Rookie should appear after one tick")
	}
	if strings.Contains(view, "Legend") {
		t.Error("Legend should not appear yet")
	}
	if strings.Contains(view, "Find your level") {
		t.Error("tagline should wait for the full ladder")
	}

	if cmd := sendTicks(w, ranking.MaxRank-1); cmd == nil {
		t.Error("ticks should continue until the ladder is complete")
	}
	view = w.View(100, 30)
	if !strings.Contains(view, "Legend") || !strings.Contains(view, "Find your level") {
		t.Error("full ladder and tagline should be visible")
	}

	if cmd := sendTicks(w, 1); cmd != nil {
		t.Error("ticking should stop once the ladder is complete")
	}
}

func TestKeypressTransitions(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if msg.Screen.Title() != "Quiz" {
		t.Errorf("next screen = %q", msg.Screen.Title())
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 50)
	if *calls != 0 {
		t.Errorf("factory should not run without a keypress, got %d calls", *calls)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, calls := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestBannerCompact(t *testing.T) {
	if !strings.Contains(RenderBanner(40), "L E X I R A N K") {
		t.Error("narrow terminals should get the compact banner")
	}
}
