package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrBookmarkNotFound is returned when removing or resolving a label that
// does not exist.
var ErrBookmarkNotFound = errors.New("bookmark not found")

// Bookmark is a named saved query.
type Bookmark struct {
	ID        string
	Label     string
	Query     string
	CreatedAt time.Time
}

// AddBookmark saves a query under a label. Re-using a label replaces the
// existing bookmark and moves it to the end of the listing order.
func (s *Store) AddBookmark(ctx context.Context, label, query string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookmarks WHERE label = ?`, label); err != nil {
		return fmt.Errorf("replace bookmark: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO bookmarks (id, label, query) VALUES (?, ?, ?)`,
		uuid.NewString(), label, query,
	); err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Bookmarks lists all bookmarks in creation order.
func (s *Store) Bookmarks(ctx context.Context) ([]Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, query, created_at FROM bookmarks
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.Label, &b.Query, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark row: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmark rows: %w", err)
	}
	return bookmarks, nil
}

// Resolve returns the query saved under a label.
func (s *Store) Resolve(ctx context.Context, label string) (string, error) {
	var query string
	err := s.db.QueryRowContext(ctx,
		`SELECT query FROM bookmarks WHERE label = ?`, label,
	).Scan(&query)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrBookmarkNotFound, label)
	}
	if err != nil {
		return "", fmt.Errorf("resolve bookmark: %w", err)
	}
	return query, nil
}

// RemoveBookmark deletes a bookmark by label.
func (s *Store) RemoveBookmark(ctx context.Context, label string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE label = ?`, label)
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrBookmarkNotFound, label)
	}
	return nil
}
