package answers

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexirank/internal/leveling"
)

func TestParse_Valid(t *testing.T) {
	data := []byte(`{
		"student_id": "stu-1",
		"test_id": "vocab-week-3",
		"answers": [
			{"difficulty_level": 1, "lesson_id": "A", "is_correct": true},
			{"difficulty_level": 3, "lesson_id": "L2", "is_correct": false}
		],
		"client_result": {"rank": 1, "sublevel": 1}
	}`)

	sheet, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "stu-1", sheet.StudentID)
	assert.Equal(t, "vocab-week-3", sheet.TestID)
	assert.Equal(t, []leveling.Answer{
		{DifficultyLevel: 1, LessonID: "A", Correct: true},
		{DifficultyLevel: 3, LessonID: "L2", Correct: false},
	}, sheet.Answers)
	require.NotNil(t, sheet.ClientResult)
	assert.Equal(t, leveling.Result{Rank: 1, Sublevel: 1}, *sheet.ClientResult)
}

func TestParse_RawPreservedVerbatim(t *testing.T) {
	rawAnswers := `[ {"lesson_id":"B","is_correct":false,"difficulty_level":2},
    {"difficulty_level": 1,   "lesson_id": "A", "is_correct": true} ]`
	data := []byte(`{"student_id":"s","answers":` + rawAnswers + `}`)

	sheet, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, rawAnswers, string(sheet.Raw))
	assert.Nil(t, sheet.ClientResult)
}

func TestParse_EmptyAnswers(t *testing.T) {
	sheet, err := Parse([]byte(`{"student_id":"s","answers":[]}`))
	require.NoError(t, err)
	assert.Empty(t, sheet.Answers)
	assert.Equal(t, leveling.DefaultResult(), leveling.Determine(sheet.Answers))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing student", `{"answers":[]}`},
		{"empty student", `{"student_id":"","answers":[]}`},
		{"missing answers", `{"student_id":"s"}`},
		{"answers not array", `{"student_id":"s","answers":{}}`},
		{"level zero", `{"student_id":"s","answers":[{"difficulty_level":0,"lesson_id":"A","is_correct":true}]}`},
		{"level too high", `{"student_id":"s","answers":[{"difficulty_level":16,"lesson_id":"A","is_correct":true}]}`},
		{"level fractional", `{"student_id":"s","answers":[{"difficulty_level":1.5,"lesson_id":"A","is_correct":true}]}`},
		{"empty lesson", `{"student_id":"s","answers":[{"difficulty_level":1,"lesson_id":"","is_correct":true}]}`},
		{"missing correct", `{"student_id":"s","answers":[{"difficulty_level":1,"lesson_id":"A"}]}`},
		{"correct as string", `{"student_id":"s","answers":[{"difficulty_level":1,"lesson_id":"A","is_correct":"yes"}]}`},
		{"client sublevel too high", `{"student_id":"s","answers":[],"client_result":{"rank":1,"sublevel":26}}`},
		{"client rank zero", `{"student_id":"s","answers":[],"client_result":{"rank":0,"sublevel":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			var invalid *ErrInvalidSheet
			assert.True(t, errors.As(err, &invalid), "want *ErrInvalidSheet, got %T", err)
		})
	}
}

func TestRead(t *testing.T) {
	sheet, err := Read(strings.NewReader(`{"student_id":"s","answers":[{"difficulty_level":15,"lesson_id":"Z","is_correct":true}]}`))
	require.NoError(t, err)
	require.Len(t, sheet.Answers, 1)
	assert.Equal(t, 15, sheet.Answers[0].DifficultyLevel)
}

func TestNew_EncodesInOrder(t *testing.T) {
	list := []leveling.Answer{
		{DifficultyLevel: 2, LessonID: "B", Correct: true},
		{DifficultyLevel: 1, LessonID: "A", Correct: false},
	}
	sheet, err := New("s", "t", list, nil)
	require.NoError(t, err)

	var decoded []leveling.Answer
	require.NoError(t, json.Unmarshal(sheet.Raw, &decoded))
	assert.Equal(t, list, decoded)
}
