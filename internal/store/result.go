package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// resultRepo implements ResultRepo with ent's SQL builders.
type resultRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *resultRepo) Save(ctx context.Context, rec *ResultRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	if rec.Source == "" {
		rec.Source = SourceServer
	}
	rec.Sequence = seqNum

	answers := string(rec.Answers)
	if answers == "" {
		answers = "[]"
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableResults).
		Columns(resultColumns...).
		Values(
			rec.ID,
			rec.Sequence,
			rec.Timestamp.UnixNano(),
			rec.StudentID,
			rec.TestID,
			rec.Rank,
			rec.Sublevel,
			answers,
			rec.AnswerCount,
			nullableInt(rec.ClientRank),
			nullableInt(rec.ClientSublevel),
			rec.Reconciled,
			rec.Source,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (r *resultRepo) Get(ctx context.Context, id string) (*ResultRecord, error) {
	sel := r.selectResults().Where(entsql.EQ(colID, id)).Limit(1)
	recs, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query result %s: %w", id, err)
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return &recs[0], nil
}

func (r *resultRepo) ListByStudent(ctx context.Context, studentID string, opts QueryOpts) ([]ResultRecord, error) {
	sel := r.selectResults().Where(entsql.EQ(colStudentID, studentID))
	applyOpts(sel, opts)
	recs, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query results for %s: %w", studentID, err)
	}
	return recs, nil
}

func (r *resultRepo) List(ctx context.Context, opts QueryOpts) ([]ResultRecord, error) {
	sel := r.selectResults()
	applyOpts(sel, opts)
	recs, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return recs, nil
}

func (r *resultRepo) Latest(ctx context.Context, studentID string) (*ResultRecord, error) {
	recs, err := r.ListByStudent(ctx, studentID, QueryOpts{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (r *resultRepo) selectResults() *entsql.Selector {
	return entsql.Dialect(dialect.SQLite).
		Select(resultColumns...).
		From(entsql.Table(tableResults)).
		OrderBy(entsql.Desc(colSequence))
}

// applyOpts adds the filters and limit from opts to sel.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(colSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(colTimestamp, opts.From.UnixNano()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(colTimestamp, opts.To.UnixNano()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

func (r *resultRepo) query(ctx context.Context, sel *entsql.Selector) ([]ResultRecord, error) {
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanResult(rows entsql.Rows) (ResultRecord, error) {
	var (
		rec            ResultRecord
		ts             int64
		answers        string
		clientRank     sql.NullInt64
		clientSublevel sql.NullInt64
	)
	err := rows.Scan(
		&rec.ID,
		&rec.Sequence,
		&ts,
		&rec.StudentID,
		&rec.TestID,
		&rec.Rank,
		&rec.Sublevel,
		&answers,
		&rec.AnswerCount,
		&clientRank,
		&clientSublevel,
		&rec.Reconciled,
		&rec.Source,
	)
	if err != nil {
		return ResultRecord{}, fmt.Errorf("scan result: %w", err)
	}

	rec.Timestamp = time.Unix(0, ts).UTC()
	rec.Answers = []byte(answers)
	if clientRank.Valid {
		v := int(clientRank.Int64)
		rec.ClientRank = &v
	}
	if clientSublevel.Valid {
		v := int(clientSublevel.Int64)
		rec.ClientSublevel = &v
	}
	return rec, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
