package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Result sources.
const (
	SourceServer = "server"
	SourceClient = "client"
)

// QueryOpts configures result queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ResultRecord is one persisted level determination.
type ResultRecord struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	StudentID string
	TestID    string
	Rank      int
	Sublevel  int
	// Answers holds the submitted answers array byte-for-byte.
	Answers     json.RawMessage
	AnswerCount int
	// ClientRank and ClientSublevel are set when the client sent its own
	// estimate alongside the answers.
	ClientRank     *int
	ClientSublevel *int
	Reconciled     bool
	Source         string
}

// ResultRepo stores and retrieves level results.
type ResultRepo interface {
	// Save assigns ID (if empty), Sequence and Timestamp (if zero) and
	// stores the record.
	Save(ctx context.Context, rec *ResultRecord) error

	// Get returns the record with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*ResultRecord, error)

	// ListByStudent returns a student's records, newest first.
	ListByStudent(ctx context.Context, studentID string, opts QueryOpts) ([]ResultRecord, error)

	// List returns all records, newest first.
	List(ctx context.Context, opts QueryOpts) ([]ResultRecord, error)

	// Latest returns the newest record for a student, or nil if none exist.
	Latest(ctx context.Context, studentID string) (*ResultRecord, error)
}
