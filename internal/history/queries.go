package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded query.
type Entry struct {
	ID        string
	Query     string
	CreatedAt time.Time
}

// AddQuery records a query as the most recent entry.
//
// Re-adding an existing query moves it to the front of recency rather than
// duplicating it. Retention is capped at maxQueries; the oldest entries are
// evicted once the cap is exceeded.
func (s *Store) AddQuery(ctx context.Context, query string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Delete-then-insert so the row gets a fresh rowid and sorts newest.
	if _, err := tx.ExecContext(ctx, `DELETE FROM queries WHERE query = ?`, query); err != nil {
		return fmt.Errorf("dedup query: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO queries (id, query) VALUES (?, ?)`,
		uuid.NewString(), query,
	); err != nil {
		return fmt.Errorf("insert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM queries WHERE rowid NOT IN (
			SELECT rowid FROM queries ORDER BY rowid DESC LIMIT ?
		)`, maxQueries,
	); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, most recent first. limit <= 0 returns
// everything retained.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = maxQueries
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, created_at FROM queries
		ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Search returns entries whose query contains the pattern as a substring,
// most recent first.
func (s *Store) Search(ctx context.Context, pattern string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, created_at FROM queries
		WHERE instr(query, ?) > 0
		ORDER BY rowid DESC`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search queries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Clear removes all recorded queries. Bookmarks are untouched.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM queries`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Query, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan query row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate query rows: %w", err)
	}
	return entries, nil
}
