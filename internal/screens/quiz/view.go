package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexirank/internal/ui/components"
	"github.com/abhisek/lexirank/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	var content string
	switch s.phase {
	case phaseName:
		content = s.renderName()
	case phaseQuestion:
		content = s.renderQuestion(width)
	case phaseFeedback:
		content = s.renderQuestion(width) + "\n" + s.renderFeedback()
	case phaseSubmitting:
		content = theme.Hint.Render("Scoring your answers...")
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *QuizScreen) renderName() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Vocabulary & Grammar Placement"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d questions. Answer as many as you can.", len(s.questions))))
	b.WriteString("\n\n")
	b.WriteString(s.name.View())
	return theme.Card.Render(b.String())
}

func (s *QuizScreen) renderQuestion(width int) string {
	cw := min(width-8, 70)

	// During feedback the answered question is still on screen.
	num := s.session.Index() + 1
	if s.phase == phaseFeedback {
		num--
	}

	var b strings.Builder
	b.WriteString(components.NewProgressBar(s.session.Index(), s.session.Total(), cw).View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Render(fmt.Sprintf("Question %d · %s", num, s.current.Kind)))
	b.WriteString("\n\n")
	b.WriteString(s.mc.View())
	return lipgloss.NewStyle().Width(cw).Render(b.String())
}

func (s *QuizScreen) renderFeedback() string {
	var line string
	if s.lastCorrect {
		line = theme.Correct.Render("✓ Correct!")
	} else {
		line = theme.Incorrect.Render("✗ Not quite.")
	}

	now := s.session.Estimate()
	if now != s.before {
		line += "  " + theme.Hint.Render("Level now ") + components.RankChip(now)
	}
	return line
}
