package answers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/abhisek/lexirank/internal/leveling"
)

// Sheet is a student's submitted answers for one test.
type Sheet struct {
	StudentID string
	TestID    string
	Answers   []leveling.Answer
	// Raw is the answers array exactly as submitted, kept for audit echo.
	Raw json.RawMessage
	// ClientResult is the level the client computed, if it sent one.
	ClientResult *leveling.Result
}

// wireSheet is the JSON shape of a sheet.
type wireSheet struct {
	StudentID    string           `json:"student_id"`
	TestID       string           `json:"test_id,omitempty"`
	Answers      json.RawMessage  `json:"answers"`
	ClientResult *leveling.Result `json:"client_result,omitempty"`
}

// Parse validates and decodes an answer sheet.
func Parse(data []byte) (*Sheet, error) {
	if err := validate(data); err != nil {
		return nil, &ErrInvalidSheet{Err: err}
	}

	var w wireSheet
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &ErrInvalidSheet{Err: fmt.Errorf("decode sheet: %w", err)}
	}

	var list []leveling.Answer
	if err := json.Unmarshal(w.Answers, &list); err != nil {
		return nil, &ErrInvalidSheet{Err: fmt.Errorf("decode answers: %w", err)}
	}

	return &Sheet{
		StudentID:    w.StudentID,
		TestID:       w.TestID,
		Answers:      list,
		Raw:          w.Answers,
		ClientResult: w.ClientResult,
	}, nil
}

// Read reads all of r and parses it as a sheet.
func Read(r io.Reader) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return Parse(data)
}

// New builds a sheet from answers collected in-process. Raw is produced by
// encoding the answers in the order given.
func New(studentID, testID string, list []leveling.Answer, client *leveling.Result) (*Sheet, error) {
	if list == nil {
		list = []leveling.Answer{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}
	return &Sheet{
		StudentID:    studentID,
		TestID:       testID,
		Answers:      list,
		Raw:          raw,
		ClientResult: client,
	}, nil
}
