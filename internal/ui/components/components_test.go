package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/abhisek/lexirank/internal/leveling"
)

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice("Pick", []string{"a", "b", "c"}, 1)

	mc = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if mc.Selected != 2 {
		t.Fatalf("Selected = %d, want 2 (clamped)", mc.Selected)
	}
	mc = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	mc = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !mc.Submitted || mc.ChosenIndex != 1 {
		t.Fatalf("Submitted=%v ChosenIndex=%d, want true/1", mc.Submitted, mc.ChosenIndex)
	}
	if !mc.IsCorrect() {
		t.Error("expected correct answer")
	}

	// Input is ignored after submission.
	mc = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if mc.Selected != 1 {
		t.Errorf("Selected changed after submit: %d", mc.Selected)
	}
}

func TestMultiChoice_Shortcuts(t *testing.T) {
	tests := []struct {
		key  rune
		want int
	}{
		{'1', 0}, {'3', 2}, {'b', 1}, {'d', 3},
	}
	for _, tt := range tests {
		mc := NewMultiChoice("Pick", []string{"w", "x", "y", "z"}, 0)
		mc = mc.Update(keyRune(tt.key))
		if !mc.Submitted || mc.ChosenIndex != tt.want {
			t.Errorf("key %q: ChosenIndex = %d, want %d", tt.key, mc.ChosenIndex, tt.want)
		}
	}

	mc := NewMultiChoice("Pick", []string{"x", "y"}, 0)
	mc = mc.Update(keyRune('4'))
	if mc.Submitted {
		t.Error("shortcut beyond the option count should be ignored")
	}
}

func TestMultiChoice_View(t *testing.T) {
	mc := NewMultiChoice("Which is a colour?", []string{"red", "run"}, 0)
	view := mc.View()
	if !strings.Contains(view, "Which is a colour?") || !strings.Contains(view, "B)  run") {
		t.Errorf("unexpected view: %q", view)
	}
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar(3, 4, 40)
	if p.Percent() != 0.75 {
		t.Errorf("Percent = %f, want 0.75", p.Percent())
	}
	if !strings.Contains(p.View(), "3/4") {
		t.Error("view should show the count")
	}
	if NewProgressBar(1, 0, 40).Percent() != 0 {
		t.Error("zero total should be 0%")
	}
	if NewProgressBar(5, 4, 40).Percent() != 1 {
		t.Error("percent should clamp at 1")
	}
}

func TestTextInput_Value(t *testing.T) {
	ti := NewTextInput("name", 10)
	ti.Err = "required"
	for _, r := range "  ana " {
		ti, _ = ti.Update(keyRune(r))
	}
	if ti.Err != "" {
		t.Error("typing should clear the error")
	}
	if ti.Value() != "ana" {
		t.Errorf("Value = %q, want %q", ti.Value(), "ana")
	}
}

func TestGradient(t *testing.T) {
	stops := Gradient("#000000", "#ffffff", 3)
	if len(stops) != 3 {
		t.Fatalf("len = %d, want 3", len(stops))
	}
	first, _ := colorful.MakeColor(stops[0])
	last, _ := colorful.MakeColor(stops[2])
	if first.Hex() != "#000000" || last.Hex() != "#ffffff" {
		t.Errorf("endpoints = %s..%s", first.Hex(), last.Hex())
	}

	if got := Gradient("nope", "#ffffff", 2); len(got) != 2 {
		t.Errorf("invalid color should still yield %d stops", 2)
	}
	if Gradient("#000000", "#ffffff", 0) != nil {
		t.Error("n=0 should yield nil")
	}
}

func TestRankBadge(t *testing.T) {
	badge := RankBadge(leveling.Result{Rank: 3, Sublevel: 4}, 30)
	if !strings.Contains(badge, "Sublevel 4") {
		t.Error("badge should show the sublevel")
	}

	mastered := RankBadge(leveling.Result{Rank: 10, Sublevel: leveling.MasteryMarker}, 30)
	if !strings.Contains(mastered, "Mastered") {
		t.Error("mastery badge should say Mastered")
	}

	if chip := RankChip(leveling.Result{Rank: 2, Sublevel: 1}); !strings.Contains(chip, "Apprentice 2.1") {
		t.Errorf("chip = %q", chip)
	}
}
