package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/lexirank/internal/answers"
	"github.com/abhisek/lexirank/internal/leveling"
	"github.com/abhisek/lexirank/internal/ranking"
	"github.com/abhisek/lexirank/internal/store"
)

// Outcome is the authoritative result of scoring one answer sheet.
type Outcome struct {
	Result leveling.Result
	Tier   ranking.Tier
	Report leveling.Report
	// Client is the client's own estimate, if one was submitted.
	Client *leveling.Result
	// Reconciled is true when there was no client estimate or it matched.
	Reconciled bool
	// Record is the stored row; nil when the service has no repo.
	Record *store.ResultRecord
}

// Mismatch reports whether the client's estimate disagreed with the server.
func (o *Outcome) Mismatch() bool {
	return !o.Reconciled
}

// Service scores answer sheets and stores the results.
type Service struct {
	repo   store.ResultRepo
	logger *slog.Logger
	source string
}

// NewService creates a scoring service. repo may be nil, in which case
// results are computed but not stored.
func NewService(repo store.ResultRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, source: store.SourceServer}
}

// WithSource returns a copy of the service that tags stored results with
// source. Sheets scored in-process by the terminal client use
// store.SourceClient.
func (s *Service) WithSource(source string) *Service {
	c := *s
	c.source = source
	return &c
}

// Estimate computes a level without storing anything.
func (s *Service) Estimate(list []leveling.Answer) leveling.Report {
	return leveling.Evaluate(list)
}

// Score determines the level for a sheet, reconciles it with the client's
// estimate and stores the result. The server's result always wins.
func (s *Service) Score(ctx context.Context, sheet *answers.Sheet) (*Outcome, error) {
	if sheet == nil {
		return nil, fmt.Errorf("score: nil sheet")
	}

	report := leveling.Evaluate(sheet.Answers)
	out := &Outcome{
		Result:     report.Result,
		Tier:       report.Result.Tier(),
		Report:     report,
		Client:     sheet.ClientResult,
		Reconciled: sheet.ClientResult == nil || *sheet.ClientResult == report.Result,
	}

	if out.Mismatch() {
		s.logger.Warn("client level estimate disagrees with server",
			"student_id", sheet.StudentID,
			"test_id", sheet.TestID,
			"client_rank", sheet.ClientResult.Rank,
			"client_sublevel", sheet.ClientResult.Sublevel,
			"server_rank", report.Result.Rank,
			"server_sublevel", report.Result.Sublevel,
		)
	}

	if s.repo == nil {
		return out, nil
	}

	rec := &store.ResultRecord{
		StudentID:   sheet.StudentID,
		TestID:      sheet.TestID,
		Rank:        report.Result.Rank,
		Sublevel:    report.Result.Sublevel,
		Answers:     sheet.Raw,
		AnswerCount: len(sheet.Answers),
		Reconciled:  out.Reconciled,
		Source:      s.source,
	}
	if sheet.ClientResult != nil {
		rank, sub := sheet.ClientResult.Rank, sheet.ClientResult.Sublevel
		rec.ClientRank = &rank
		rec.ClientSublevel = &sub
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("store result: %w", err)
	}
	out.Record = rec

	s.logger.Info("scored answer sheet",
		"result_id", rec.ID,
		"student_id", rec.StudentID,
		"answers", rec.AnswerCount,
		"rank", rec.Rank,
		"sublevel", rec.Sublevel,
		"reconciled", rec.Reconciled,
		"source", rec.Source,
	)
	return out, nil
}

// Get returns a stored result.
func (s *Service) Get(ctx context.Context, id string) (*store.ResultRecord, error) {
	if s.repo == nil {
		return nil, store.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// History returns a student's stored results, newest first.
func (s *Service) History(ctx context.Context, studentID string, limit int) ([]store.ResultRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListByStudent(ctx, studentID, store.QueryOpts{Limit: limit})
}

// Latest returns a student's newest stored result, or store.ErrNotFound.
func (s *Service) Latest(ctx context.Context, studentID string) (*store.ResultRecord, error) {
	if s.repo == nil {
		return nil, store.ErrNotFound
	}
	rec, err := s.repo.Latest(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, store.ErrNotFound
	}
	return rec, nil
}
