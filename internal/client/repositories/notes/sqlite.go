package notes

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/apetrov/notewise/internal/client/api"
	"github.com/apetrov/notewise/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// InitDatabase opens (creating if needed) the cache database and
// ensures the schema exists.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS notes (
  id         TEXT PRIMARY KEY,
  title      TEXT NOT NULL,
  content    TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init notes cache schema: %w", err)
	}
	return db, nil
}

// ReplaceAll clears the cache and inserts the given list. Callers that
// need atomicity construct the repository over a dbx.WithTx handle.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, notes []api.Note) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("failed to clear notes cache: %w", err)
	}
	for _, n := range notes {
		if err := upsert(ctx, r.db, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]api.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, content, created_at, updated_at
FROM notes ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached notes: %w", err)
	}
	defer rows.Close()

	result := make([]api.Note, 0)
	for rows.Next() {
		var n api.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cached note: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached notes: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*api.Note, error) {
	var n api.Note
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, content, created_at, updated_at
FROM notes WHERE id = ?`, id).Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached note[%s]: %w", id, err)
	}
	return &n, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, note api.Note) error {
	return upsert(ctx, r.db, note)
}

func upsert(ctx context.Context, db dbx.DBTX, n api.Note) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO notes (id, title, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title      = excluded.title,
  content    = excluded.content,
  created_at = excluded.created_at,
  updated_at = excluded.updated_at
`, n.ID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert cached note[%s]: %w", n.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete cached note[%s]: %w", id, err)
	}
	return nil
}
