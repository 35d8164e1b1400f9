package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/abhisek/lexirank/internal/leveling"
	"github.com/abhisek/lexirank/internal/ui/theme"
)

// RankChip renders a compact one-line rank label, e.g. "🧭 Explorer 3.4".
func RankChip(r leveling.Result) string {
	tier := r.Tier()
	sub := fmt.Sprintf("%d", r.Sublevel)
	if r.IsMastery() {
		sub = "★"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(tier.Visual.Accent)).
		Bold(true).
		Render(fmt.Sprintf("%s %d.%s", tier.Label(), r.Rank, sub))
}

// RankBadge renders the large result badge: the tier name on a band shaded
// with the tier's gradient, and the sublevel underneath.
func RankBadge(r leveling.Result, width int) string {
	tier := r.Tier()
	if width < 20 {
		width = 20
	}

	name := strings.ToUpper(tier.Name)
	pad := (width - len(name)) / 2
	label := strings.Repeat(" ", pad) + name + strings.Repeat(" ", width-pad-len(name))

	band := GradientText(label, tier.Visual.GradientFrom, tier.Visual.GradientTo)

	sub := fmt.Sprintf("Rank %d · Sublevel %d", r.Rank, r.Sublevel)
	if r.IsMastery() {
		sub = fmt.Sprintf("Rank %d · Mastered", r.Rank)
	}
	caption := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(sub)

	icon := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(tier.Visual.Icon)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(tier.Visual.Accent)).
		Render(icon + "\n" + band + "\n" + caption)
}

// GradientText renders s with a background blended from one hex color to
// another across its runes. Invalid colors fall back to the theme border.
func GradientText(s, from, to string) string {
	runes := []rune(s)
	stops := Gradient(from, to, len(runes))

	var b strings.Builder
	for i, r := range runes {
		b.WriteString(lipgloss.NewStyle().
			Background(stops[i]).
			Foreground(theme.BgDark).
			Bold(true).
			Render(string(r)))
	}
	return b.String()
}

// Gradient returns n colors blended in Lab space from one hex color to
// another.
func Gradient(from, to string, n int) []color.Color {
	if n <= 0 {
		return nil
	}
	c1, err1 := colorful.Hex(from)
	c2, err2 := colorful.Hex(to)
	out := make([]color.Color, n)
	if err1 != nil || err2 != nil {
		for i := range out {
			out[i] = theme.Border
		}
		return out
	}
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = c1.BlendLab(c2, t).Clamped()
	}
	return out
}
