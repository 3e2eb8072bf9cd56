package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// DefaultHistorySize is how many documents Prune keeps by default.
const DefaultHistorySize = 20

// documentRepo implements DocumentRepo.
type documentRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var documentColumns = []string{
	colID, colSequence, colTimestamp, colSource, colDifficulty,
	colConcepts, colQuestions, colData,
}

func (r *documentRepo) Save(ctx context.Context, doc *SavedDocument) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	ts := time.Now().UTC()

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableDocuments).
		Columns(documentColumns[1:]...).
		Values(seqNum, ts, doc.Source, doc.Difficulty, doc.Concepts, doc.Questions, string(doc.Data)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("document id: %w", err)
	}

	doc.ID = int(id)
	doc.Sequence = seqNum
	doc.Timestamp = ts
	return nil
}

func (r *documentRepo) Latest(ctx context.Context) (*SavedDocument, error) {
	docs, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

func (r *documentRepo) List(ctx context.Context, limit int) ([]SavedDocument, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(documentColumns...).
		From(entsql.Table(tableDocuments)).
		OrderBy(entsql.Desc(colSequence))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []SavedDocument
	for rows.Next() {
		var d SavedDocument
		var data string
		if err := rows.Scan(&d.ID, &d.Sequence, &d.Timestamp, &d.Source, &d.Difficulty,
			&d.Concepts, &d.Questions, &data); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.Data = []byte(data)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *documentRepo) Prune(ctx context.Context, keep int) error {
	// Find the sequence of the newest document that falls outside the window.
	query, args := entsql.Dialect(dialect.SQLite).
		Select(colSequence).
		From(entsql.Table(tableDocuments)).
		OrderBy(entsql.Desc(colSequence)).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if err == sql.ErrNoRows {
		return nil // fewer than keep documents exist
	}
	if err != nil {
		return fmt.Errorf("query documents for prune: %w", err)
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(tableDocuments).
		Where(entsql.LTE(colSequence, threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune documents: %w", err)
	}
	return nil
}
