package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/lexirank/internal/answers"
	"github.com/abhisek/lexirank/internal/leveling"
	"github.com/abhisek/lexirank/internal/scoring"
)

// ErrSessionDone is returned when answering after the last question.
var ErrSessionDone = errors.New("session is complete")

// Scorer scores a finished answer sheet. *scoring.Service implements it.
type Scorer interface {
	Score(ctx context.Context, sheet *answers.Sheet) (*scoring.Outcome, error)
}

// Response is a student's answer to one question.
type Response struct {
	Question Question
	Choice   int
	Correct  bool
	Elapsed  time.Duration
}

// Session runs one student through a fixed list of questions and keeps a
// live level estimate.
type Session struct {
	StudentID string
	TestID    string

	questions []Question
	responses []Response
	started   time.Time
	asked     time.Time
	now       func() time.Time
}

// NewSession starts a session over questions.
func NewSession(studentID, testID string, questions []Question) *Session {
	return newSessionWithClock(studentID, testID, questions, time.Now)
}

func newSessionWithClock(studentID, testID string, questions []Question, now func() time.Time) *Session {
	t := now()
	return &Session{
		StudentID: studentID,
		TestID:    testID,
		questions: questions,
		started:   t,
		asked:     t,
		now:       now,
	}
}

// Current returns the question being asked, or nil when the session is done.
func (s *Session) Current() *Question {
	if s.Done() {
		return nil
	}
	return &s.questions[len(s.responses)]
}

// Index returns the 0-based position of the current question.
func (s *Session) Index() int {
	return len(s.responses)
}

// Total returns the number of questions in the session.
func (s *Session) Total() int {
	return len(s.questions)
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return len(s.responses) >= len(s.questions)
}

// Answer records the chosen option for the current question.
func (s *Session) Answer(choice int) (bool, error) {
	q := s.Current()
	if q == nil {
		return false, ErrSessionDone
	}
	if choice < 0 || choice >= len(q.Options) {
		return false, fmt.Errorf("choice %d out of range for question %s", choice, q.ID)
	}

	now := s.now()
	correct := choice == q.Answer
	s.responses = append(s.responses, Response{
		Question: *q,
		Choice:   choice,
		Correct:  correct,
		Elapsed:  now.Sub(s.asked),
	})
	s.asked = now
	return correct, nil
}

// Responses returns the responses so far, in answer order.
func (s *Session) Responses() []Response {
	out := make([]Response, len(s.responses))
	copy(out, s.responses)
	return out
}

// Answers converts the responses to leveling input, in answer order.
func (s *Session) Answers() []leveling.Answer {
	out := make([]leveling.Answer, len(s.responses))
	for i, r := range s.responses {
		out[i] = leveling.Answer{
			DifficultyLevel: r.Question.Level,
			LessonID:        r.Question.Lesson,
			Correct:         r.Correct,
		}
	}
	return out
}

// Estimate returns the live level estimate for the answers so far.
func (s *Session) Estimate() leveling.Result {
	return leveling.Determine(s.Answers())
}

// Sheet builds an answer sheet carrying the client's estimate.
func (s *Session) Sheet() (*answers.Sheet, error) {
	est := s.Estimate()
	return answers.New(s.StudentID, s.TestID, s.Answers(), &est)
}

// Summary holds the end-of-test numbers shown to the student.
type Summary struct {
	Questions int
	Correct   int
	Accuracy  float64
	Duration  time.Duration
	Estimate  leveling.Result
	Report    leveling.Report
	Responses []Response
}

// Summary computes the summary for the answers so far.
func (s *Session) Summary() Summary {
	correct := 0
	for _, r := range s.responses {
		if r.Correct {
			correct++
		}
	}
	var acc float64
	if len(s.responses) > 0 {
		acc = float64(correct) / float64(len(s.responses))
	}
	report := leveling.Evaluate(s.Answers())
	return Summary{
		Questions: len(s.responses),
		Correct:   correct,
		Accuracy:  acc,
		Duration:  s.now().Sub(s.started),
		Estimate:  report.Result,
		Report:    report,
		Responses: s.Responses(),
	}
}
