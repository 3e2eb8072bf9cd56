package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const sequenceRowID = 1

// sequenceCounter issues the sequence numbers shared by audit events and
// saved documents, so rows from both tables can be put in one order.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSequence).
		Columns(colID, colNextVal).
		Values(sequenceRowID, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next returns the current value and advances the counter. The increment
// and read share a transaction, so values are unique across processes.
func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin sequence tx: %w", err)
	}
	defer tx.Rollback()

	b := entsql.Dialect(dialect.SQLite)
	update, args := b.Update(tableSequence).
		Add(colNextVal, 1).
		Where(entsql.EQ(colID, sequenceRowID)).
		Query()
	if _, err := tx.ExecContext(ctx, update, args...); err != nil {
		return 0, fmt.Errorf("advance sequence: %w", err)
	}

	sel, args := b.Select(colNextVal).
		From(entsql.Table(tableSequence)).
		Where(entsql.EQ(colID, sequenceRowID)).
		Query()
	var next int64
	if err := tx.QueryRowContext(ctx, sel, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sequence: %w", err)
	}
	return next - 1, nil
}
