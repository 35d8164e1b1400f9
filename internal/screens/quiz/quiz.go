package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexirank/internal/leveling"
	qz "github.com/abhisek/lexirank/internal/quiz"
	"github.com/abhisek/lexirank/internal/scoring"
	"github.com/abhisek/lexirank/internal/router"
	"github.com/abhisek/lexirank/internal/screen"
	"github.com/abhisek/lexirank/internal/screens/result"
	"github.com/abhisek/lexirank/internal/ui/components"
	"github.com/abhisek/lexirank/internal/ui/layout"
)

const scoreTimeout = 10 * time.Second

type phase int

const (
	phaseName phase = iota
	phaseQuestion
	phaseFeedback
	phaseSubmitting
)

// QuizScreen runs a placement test: it asks for the student's name, walks
// through the questions with a live rank estimate, then submits the answer
// sheet and hands off to the result screen.
type QuizScreen struct {
	questions []qz.Question
	testID    string
	scorer    qz.Scorer

	phase       phase
	name        components.TextInput
	session     *qz.Session
	current     qz.Question
	mc          components.MultiChoice
	lastCorrect bool
	before      leveling.Result
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a quiz screen. When studentID is empty the screen asks for a
// name first. scorer may be nil, in which case only the local estimate is
// shown at the end.
func New(questions []qz.Question, testID, studentID string, scorer qz.Scorer) *QuizScreen {
	s := &QuizScreen{
		questions: questions,
		testID:    testID,
		scorer:    scorer,
		name:      components.NewTextInput("Your name", 40),
	}
	if studentID != "" {
		s.start(studentID)
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.phase == phaseName {
		return s.name.Init()
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return "Placement Test"
}

// Status shows the student and the live estimate in the header.
func (s *QuizScreen) Status() string {
	if s.session == nil {
		return ""
	}
	return s.session.StudentID + "  " + components.RankChip(s.session.Estimate())
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseName:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case phaseSubmitting:
		return nil
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter/1-4", Description: "Answer"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *QuizScreen) start(studentID string) {
	s.session = qz.NewSession(studentID, s.testID, s.questions)
	s.phase = phaseQuestion
	s.loadQuestion()
}

func (s *QuizScreen) loadQuestion() {
	q := s.session.Current()
	if q == nil {
		return
	}
	s.current = *q
	s.mc = components.NewMultiChoice(q.Prompt, q.Options, q.Answer)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoredMsg:
		return s, s.finish(msg.Outcome, msg.Err)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseName {
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseName:
		if msg.String() != "enter" {
			var cmd tea.Cmd
			s.name, cmd = s.name.Update(msg)
			return s, cmd
		}
		if s.name.Value() == "" {
			s.name.Err = "please enter your name"
			return s, nil
		}
		s.start(s.name.Value())
		if s.session.Done() {
			return s, s.submit()
		}
		return s, nil

	case phaseQuestion:
		s.mc = s.mc.Update(msg)
		if !s.mc.Submitted {
			return s, nil
		}
		s.before = s.session.Estimate()
		correct, err := s.session.Answer(s.mc.ChosenIndex)
		if err != nil {
			return s, nil
		}
		s.lastCorrect = correct
		s.phase = phaseFeedback
		return s, nil

	case phaseFeedback:
		if s.session.Done() {
			return s, s.submit()
		}
		s.phase = phaseQuestion
		s.loadQuestion()
		return s, nil
	}

	return s, nil
}

// submit scores the finished sheet in the background.
func (s *QuizScreen) submit() tea.Cmd {
	s.phase = phaseSubmitting
	if s.scorer == nil {
		return func() tea.Msg { return scoredMsg{} }
	}

	sheet, err := s.session.Sheet()
	if err != nil {
		return func() tea.Msg { return scoredMsg{Err: err} }
	}
	scorer := s.scorer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), scoreTimeout)
		defer cancel()
		out, err := scorer.Score(ctx, sheet)
		return scoredMsg{Outcome: out, Err: err}
	}
}

func (s *QuizScreen) finish(out *scoring.Outcome, err error) tea.Cmd {
	if s.phase != phaseSubmitting {
		return nil
	}
	if err != nil {
		err = fmt.Errorf("could not save result: %w", err)
	} else if out == nil && s.scorer != nil {
		err = errors.New("scorer returned no result")
	}
	next := result.New(s.session.Summary(), out, err)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}
