package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexirank/internal/router"
	"github.com/abhisek/lexirank/internal/screen"
	"github.com/abhisek/lexirank/internal/ui/layout"
)

type stubScreen struct {
	title  string
	status string
}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "body:" + s.title }
func (s *stubScreen) Title() string                          { return s.title }
func (s *stubScreen) Status() string                         { return s.status }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Go"}}
}

func TestAppModel_ViewComposesFrame(t *testing.T) {
	m := newAppModel(&stubScreen{title: "Placement", status: "ana · Rookie"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	content := updated.(AppModel).render()
	for _, want := range []string{"Lexirank", "Placement", "ana · Rookie", "body:Placement", "Go"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(&stubScreen{title: "x"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small") {
		t.Error("expected the min-size message")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(&stubScreen{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppModel_EscPopsOnlyAboveRoot(t *testing.T) {
	m := newAppModel(&stubScreen{title: "root"})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc at root should do nothing")
	}

	m.router.Push(&stubScreen{title: "child"})
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
