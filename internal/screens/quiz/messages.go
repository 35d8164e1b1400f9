package quiz

import "github.com/abhisek/lexirank/internal/scoring"

// scoredMsg is sent when the finished sheet has been scored.
type scoredMsg struct {
	Outcome *scoring.Outcome
	Err     error
}
