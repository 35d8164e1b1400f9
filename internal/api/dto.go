package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/abhisek/lexirank/internal/leveling"
	"github.com/abhisek/lexirank/internal/ranking"
	"github.com/abhisek/lexirank/internal/scoring"
	"github.com/abhisek/lexirank/internal/store"
)

type levelResponse struct {
	Rank     int                  `json:"rank"`
	Sublevel int                  `json:"sublevel"`
	Mastered bool                 `json:"mastered"`
	Tier     ranking.Tier         `json:"tier"`
	Ranks    []leveling.RankStats `json:"ranks"`
}

func toLevelResponse(report leveling.Report) levelResponse {
	return levelResponse{
		Rank:     report.Result.Rank,
		Sublevel: report.Result.Sublevel,
		Mastered: report.Result.IsMastery(),
		Tier:     report.Result.Tier(),
		Ranks:    report.Ranks,
	}
}

type scoreResponse struct {
	levelResponse
	Client     *leveling.Result `json:"client_result,omitempty"`
	Reconciled bool             `json:"reconciled"`
	Result     *resultResponse  `json:"stored,omitempty"`
}

// encode marshals the response with the stored answers copied verbatim.
func (r scoreResponse) encode() ([]byte, error) {
	stored := r.Result
	r.Result = nil
	obj, err := marshalJSON(r)
	if err != nil || stored == nil {
		return obj, err
	}
	inner, err := stored.encode()
	if err != nil {
		return nil, err
	}
	return withRawField(obj, "stored", inner), nil
}

func toScoreResponse(o *scoring.Outcome) scoreResponse {
	resp := scoreResponse{
		levelResponse: toLevelResponse(o.Report),
		Client:        o.Client,
		Reconciled:    o.Reconciled,
	}
	if o.Record != nil {
		r := toResultResponse(o.Record)
		resp.Result = &r
	}
	return resp
}

type resultResponse struct {
	ID          string           `json:"id"`
	Sequence    int64            `json:"sequence"`
	Timestamp   time.Time        `json:"timestamp"`
	StudentID   string           `json:"student_id"`
	TestID      string           `json:"test_id,omitempty"`
	Rank        int              `json:"rank"`
	Sublevel    int              `json:"sublevel"`
	TierName    string           `json:"tier_name"`
	Answers     json.RawMessage  `json:"answers,omitempty"`
	AnswerCount int              `json:"answer_count"`
	Client      *leveling.Result `json:"client_result,omitempty"`
	Reconciled  bool             `json:"reconciled"`
	Source      string           `json:"source"`
}

func toResultResponse(rec *store.ResultRecord) resultResponse {
	resp := resultResponse{
		ID:          rec.ID,
		Sequence:    rec.Sequence,
		Timestamp:   rec.Timestamp.UTC(),
		StudentID:   rec.StudentID,
		TestID:      rec.TestID,
		Rank:        rec.Rank,
		Sublevel:    rec.Sublevel,
		TierName:    ranking.Info(rec.Rank).Name,
		Answers:     rec.Answers,
		AnswerCount: rec.AnswerCount,
		Reconciled:  rec.Reconciled,
		Source:      rec.Source,
	}
	if rec.ClientRank != nil && rec.ClientSublevel != nil {
		resp.Client = &leveling.Result{Rank: *rec.ClientRank, Sublevel: *rec.ClientSublevel}
	}
	return resp
}

// encode marshals the record with the answers array exactly as submitted.
// Going through encoding/json would compact and HTML-escape it.
func (r resultResponse) encode() ([]byte, error) {
	answers := r.Answers
	r.Answers = nil
	obj, err := marshalJSON(r)
	if err != nil {
		return nil, err
	}
	return withRawField(obj, "answers", answers), nil
}

func encodeResults(recs []store.ResultRecord) ([]byte, error) {
	parts := make([][]byte, len(recs))
	for i := range recs {
		b, err := toResultResponse(&recs[i]).encode()
		if err != nil {
			return nil, err
		}
		parts[i] = b
	}
	out := append([]byte{'['}, bytes.Join(parts, []byte{','})...)
	return append(out, ']'), nil
}
