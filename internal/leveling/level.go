package leveling

import (
	"fmt"
	"sort"

	"github.com/abhisek/lexirank/internal/ranking"
)

const (
	// MasteryMarker is the sublevel reported when every attempt at the
	// determined rank was correct and there were at least two attempts.
	MasteryMarker = 25

	// maxConsecutiveFails stops the rank walk.
	maxConsecutiveFails = 2
)

// Answer is a single answered question as seen by the leveler.
type Answer struct {
	DifficultyLevel int    `json:"difficulty_level"`
	LessonID        string `json:"lesson_id"`
	Correct         bool   `json:"is_correct"`
}

// Result is the determined rank and the sublevel within it.
type Result struct {
	Rank     int `json:"rank"`
	Sublevel int `json:"sublevel"`
}

// DefaultResult is returned when there is nothing to grade.
func DefaultResult() Result {
	return Result{Rank: 1, Sublevel: 1}
}

// Tier returns the display tier for the result's rank.
func (r Result) Tier() ranking.Tier {
	return ranking.Info(r.Rank)
}

// IsMastery reports whether the sublevel is the mastery marker.
func (r Result) IsMastery() bool {
	return r.Sublevel == MasteryMarker
}

func (r Result) String() string {
	if r.IsMastery() {
		return fmt.Sprintf("%s (rank %d, mastered)", r.Tier().Name, r.Rank)
	}
	return fmt.Sprintf("%s (rank %d, sublevel %d)", r.Tier().Name, r.Rank, r.Sublevel)
}

// RankStats is the grouped view of all answers that mapped to one rank.
type RankStats struct {
	Rank    int      `json:"rank"`
	Correct int      `json:"correct"`
	Total   int      `json:"total"`
	Lessons []Lesson `json:"lessons"` // sorted by ID
	// Examined is false for ranks skipped by early termination.
	Examined bool `json:"examined"`
}

// Passed reports whether the rank counts as passed: at least one correct
// answer and correct >= total/2 (real-valued, so 1 of 3 fails and 2 of 3
// passes). 2*correct >= total is the same comparison without rounding.
func (s RankStats) Passed() bool {
	return s.Correct > 0 && 2*s.Correct >= s.Total
}

// Mastered reports whether every attempt at the rank was correct and there
// were at least two attempts.
func (s RankStats) Mastered() bool {
	return s.Correct == s.Total && s.Total >= 2
}

// Sublevel returns the 1-based position, among all lessons of the rank in
// lexicographic order, of the last passed lesson. It is 1 when no lesson
// was passed and MasteryMarker when the rank is mastered.
func (s RankStats) Sublevel() int {
	if s.Mastered() {
		return MasteryMarker
	}
	sub := 1
	for i, l := range s.Lessons {
		if l.State.Passed() {
			sub = i + 1
		}
	}
	return sub
}

// Report is the determined result together with the per-rank breakdown it
// was computed from.
type Report struct {
	Result Result      `json:"result"`
	Ranks  []RankStats `json:"ranks"` // ascending by rank
}

// Determine computes the rank and sublevel for a set of answers. It never
// fails; empty input yields DefaultResult.
func Determine(answers []Answer) Result {
	return Evaluate(answers).Result
}

// Evaluate groups answers by rank, walks the ranks in ascending order and
// returns the result with the breakdown.
//
// The walk stops after two consecutive failing ranks, so a passing rank
// above them is never examined.
func Evaluate(answers []Answer) Report {
	ranks := group(answers)

	determined := 1
	fails := 0
	for i := range ranks {
		ranks[i].Examined = true
		if ranks[i].Passed() {
			determined = ranks[i].Rank
			fails = 0
			continue
		}
		fails++
		if fails >= maxConsecutiveFails {
			break
		}
	}

	result := DefaultResult()
	result.Rank = determined
	for _, s := range ranks {
		if s.Rank == determined {
			result.Sublevel = s.Sublevel()
			break
		}
	}

	return Report{Result: result, Ranks: ranks}
}

type bucket struct {
	correct int
	total   int
	lessons map[string]LessonState
}

// group accumulates answers per rank. Output is sorted by rank and each
// rank's lessons are sorted by ID, so nothing depends on map order.
func group(answers []Answer) []RankStats {
	buckets := make(map[int]*bucket)
	for _, a := range answers {
		rank := ranking.LevelToRank(a.DifficultyLevel)
		b, ok := buckets[rank]
		if !ok {
			b = &bucket{lessons: make(map[string]LessonState)}
			buckets[rank] = b
		}
		b.total++
		if a.Correct {
			b.correct++
		}
		b.lessons[a.LessonID] = b.lessons[a.LessonID].Record(a.Correct)
	}

	keys := make([]int, 0, len(buckets))
	for r := range buckets {
		keys = append(keys, r)
	}
	sort.Ints(keys)

	out := make([]RankStats, 0, len(keys))
	for _, r := range keys {
		b := buckets[r]
		ids := make([]string, 0, len(b.lessons))
		for id := range b.lessons {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		lessons := make([]Lesson, len(ids))
		for i, id := range ids {
			lessons[i] = Lesson{ID: id, State: b.lessons[id]}
		}
		out = append(out, RankStats{
			Rank:    r,
			Correct: b.correct,
			Total:   b.total,
			Lessons: lessons,
		})
	}
	return out
}
