package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/snapshot"
)

// SQLiteScheduleRepo stores official schedules as compact snapshots.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

func NewSQLiteScheduleRepo(conn db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn}
}

func (r *SQLiteScheduleRepo) Save(ctx context.Context, date string, schedule domain.Schedule, source string) error {
	data, err := snapshot.Encode(snapshot.FromSchedule(date, schedule))
	if err != nil {
		return err
	}
	query := `INSERT INTO official_schedules (date, snapshot, source, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			snapshot = excluded.snapshot,
			source = excluded.source,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, date, string(data), source, nowUTC()); err != nil {
		return fmt.Errorf("saving schedule for %s: %w", date, err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) Get(ctx context.Context, date string) (domain.Schedule, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT snapshot FROM official_schedules WHERE date = ?`, date).Scan(&data)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("schedule for %s: %w", date, ErrNotFound)
		}
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	snap, err := snapshot.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("schedule for %s: %w", date, err)
	}
	return snapshot.ToSchedule(snap), nil
}

func (r *SQLiteScheduleRepo) ListDates(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date FROM official_schedules ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("listing schedule dates: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning schedule date: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule dates: %w", err)
	}
	return out, nil
}
