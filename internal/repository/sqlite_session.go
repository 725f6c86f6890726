package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/editor"
)

// SQLiteSessionRepo stores each day's editor state as JSON.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Save(ctx context.Context, s *editor.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding editor state: %w", err)
	}
	now := nowUTC()
	query := `INSERT INTO editor_sessions (date, mode, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			mode = excluded.mode,
			state = excluded.state,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, s.Date, string(s.Mode), string(data), now, now); err != nil {
		return fmt.Errorf("saving session for %s: %w", s.Date, err)
	}
	return nil
}

func (r *SQLiteSessionRepo) Get(ctx context.Context, date string) (*editor.State, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT state FROM editor_sessions WHERE date = ?`, date).Scan(&data)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("session for %s: %w", date, ErrNotFound)
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	var s editor.State
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("decoding session for %s: %w", date, err)
	}
	return &s, nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, date string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM editor_sessions WHERE date = ?`, date); err != nil {
		return fmt.Errorf("deleting session for %s: %w", date, err)
	}
	return nil
}
