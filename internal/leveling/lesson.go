package leveling

import "fmt"

// LessonState tracks whether a lesson has been passed within a rank.
//
// The only transitions are Unseen -> Failed, Unseen -> Passed and
// Failed -> Passed. Once a lesson is Passed it stays Passed, so a student
// who answered any item of a lesson correctly keeps credit for it.
type LessonState int

const (
	LessonUnseen LessonState = iota
	LessonFailed
	LessonPassed
)

// Record returns the state after observing one more answer for the lesson.
func (s LessonState) Record(correct bool) LessonState {
	if correct {
		return LessonPassed
	}
	if s == LessonUnseen {
		return LessonFailed
	}
	return s
}

// Passed reports whether the lesson has at least one correct answer.
func (s LessonState) Passed() bool {
	return s == LessonPassed
}

func (s LessonState) String() string {
	switch s {
	case LessonUnseen:
		return "unseen"
	case LessonFailed:
		return "failed"
	case LessonPassed:
		return "passed"
	default:
		return fmt.Sprintf("LessonState(%d)", int(s))
	}
}

// MarshalText encodes the state as its lowercase name.
func (s LessonState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name produced by MarshalText.
func (s *LessonState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "unseen":
		*s = LessonUnseen
	case "failed":
		*s = LessonFailed
	case "passed":
		*s = LessonPassed
	default:
		return fmt.Errorf("unknown lesson state %q", string(b))
	}
	return nil
}

// Lesson is a lesson id paired with its state, used in sorted breakdowns.
type Lesson struct {
	ID    string      `json:"id"`
	State LessonState `json:"state"`
}
