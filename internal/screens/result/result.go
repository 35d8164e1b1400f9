package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexirank/internal/leveling"
	"github.com/abhisek/lexirank/internal/quiz"
	"github.com/abhisek/lexirank/internal/ranking"
	"github.com/abhisek/lexirank/internal/scoring"
	"github.com/abhisek/lexirank/internal/screen"
	"github.com/abhisek/lexirank/internal/ui/components"
	"github.com/abhisek/lexirank/internal/ui/layout"
	"github.com/abhisek/lexirank/internal/ui/theme"
)

// ResultScreen shows the final level after a test.
type ResultScreen struct {
	summary quiz.Summary
	outcome *scoring.Outcome
	err     error
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a result screen. outcome is nil when the sheet was not
// scored by the service; the local estimate is shown instead.
func New(summary quiz.Summary, outcome *scoring.Outcome, err error) *ResultScreen {
	return &ResultScreen{summary: summary, outcome: outcome, err: err}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Your Level"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

// Final returns the level shown on the badge: the server's result when
// there is one, otherwise the local estimate.
func (s *ResultScreen) Final() leveling.Result {
	if s.outcome != nil {
		return s.outcome.Result
	}
	return s.summary.Estimate
}

func (s *ResultScreen) breakdown() []leveling.RankStats {
	if s.outcome != nil {
		return s.outcome.Report.Ranks
	}
	return s.summary.Report.Ranks
}

func (s *ResultScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString(center(components.RankBadge(s.Final(), min(width-10, 40))))
	b.WriteString("\n\n")

	sum := s.summary
	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	stats := fmt.Sprintf("Questions: %d      Correct: %d      Accuracy: %.0f%%      Time: %d:%02d",
		sum.Questions, sum.Correct, sum.Accuracy*100, mins, secs)
	b.WriteString(center(theme.Body.Render(stats)))
	b.WriteString("\n\n")

	b.WriteString(center(s.renderBreakdown()))
	b.WriteString("\n\n")
	if review := s.renderReview(); review != "" {
		b.WriteString(center(review))
		b.WriteString("\n\n")
	}
	b.WriteString(center(s.renderStatus()))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *ResultScreen) renderBreakdown() string {
	ranks := s.breakdown()
	if len(ranks) == 0 {
		return theme.Hint.Render("No answers recorded.")
	}

	var lines []string
	for _, rs := range ranks {
		tier := ranking.Info(rs.Rank)
		mark, style := "✗", theme.Incorrect
		switch {
		case !rs.Examined:
			mark, style = "·", theme.Pending
		case rs.Passed():
			mark, style = "✓", theme.Correct
		}

		passed := 0
		for _, l := range rs.Lessons {
			if l.State.Passed() {
				passed++
			}
		}

		lines = append(lines, style.Render(fmt.Sprintf("%s %2d %-12s %2d/%-2d correct   %d/%d lessons",
			mark, rs.Rank, tier.Name, rs.Correct, rs.Total, passed, len(rs.Lessons))))
	}
	return strings.Join(lines, "\n")
}

// maxReview caps how many missed questions are listed.
const maxReview = 5

// renderReview lists the questions answered wrongly with their answers.
func (s *ResultScreen) renderReview() string {
	var missed []quiz.Response
	for _, r := range s.summary.Responses {
		if !r.Correct {
			missed = append(missed, r)
		}
	}
	if len(missed) == 0 {
		return ""
	}

	lines := []string{theme.Subtitle.Render("Review")}
	for i, r := range missed {
		if i == maxReview {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("...and %d more", len(missed)-maxReview)))
			break
		}
		q := r.Question
		line := q.Prompt
		if q.Answer >= 0 && q.Answer < len(q.Options) {
			line += "  " + theme.Correct.Render("→ "+q.Options[q.Answer])
		}
		lines = append(lines, theme.Body.Render(line))
	}
	return strings.Join(lines, "\n")
}

func (s *ResultScreen) renderStatus() string {
	switch {
	case s.err != nil:
		return lipgloss.NewStyle().Foreground(theme.Warning).Render(s.err.Error())
	case s.outcome == nil:
		return theme.Hint.Render("Result not saved.")
	case s.outcome.Mismatch():
		return lipgloss.NewStyle().Foreground(theme.Warning).Render(
			fmt.Sprintf("Adjusted from your estimate of %s.", s.outcome.Client.String()))
	}
	msg := "Saved."
	if s.outcome.Record != nil {
		msg = fmt.Sprintf("Saved as %s.", s.outcome.Record.ID)
	}
	return theme.Correct.Render(msg)
}
