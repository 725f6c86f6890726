package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// SQLiteChangeLogRepo implements ChangeLogRepo using a SQLite database.
type SQLiteChangeLogRepo struct {
	db db.DBTX
}

func NewSQLiteChangeLogRepo(conn db.DBTX) *SQLiteChangeLogRepo {
	return &SQLiteChangeLogRepo{db: conn}
}

func (r *SQLiteChangeLogRepo) Append(ctx context.Context, date string, e domain.ChangeLogEntry) error {
	entities, err := json.Marshal(e.Entities)
	if err != nil {
		return fmt.Errorf("encoding entities: %w", err)
	}
	var start, end *int
	if e.TimeWindow != nil {
		start, end = &e.TimeWindow.Start, &e.TimeWindow.End
	}
	var warningType string
	if e.WarningType != nil {
		warningType = string(*e.WarningType)
	}

	query := `INSERT INTO change_log (id, date, edit_type, description, entities, window_start, window_end,
		triggered_advisor, has_warnings, warning_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		date,
		string(e.EditType),
		e.Description,
		string(entities),
		nullableIntToValue(start),
		nullableIntToValue(end),
		boolToInt(e.TriggeredAdvisor),
		boolToInt(e.HasWarnings),
		nullableString(warningType),
		e.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("appending change log entry: %w", err)
	}
	return nil
}

// ListByDate returns a day's entries in the order they were appended.
func (r *SQLiteChangeLogRepo) ListByDate(ctx context.Context, date string) ([]domain.ChangeLogEntry, error) {
	query := `SELECT id, edit_type, description, entities, window_start, window_end,
		triggered_advisor, has_warnings, warning_type, created_at
		FROM change_log WHERE date = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("listing change log: %w", err)
	}
	defer rows.Close()

	var out []domain.ChangeLogEntry
	for rows.Next() {
		var e domain.ChangeLogEntry
		var editType, entities, createdAt string
		var start, end sql.NullInt64
		var triggered, hasWarnings int
		var warningType sql.NullString
		if err := rows.Scan(&e.ID, &editType, &e.Description, &entities, &start, &end,
			&triggered, &hasWarnings, &warningType, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning change log row: %w", err)
		}

		e.EditType = domain.EditKind(editType)
		if err := json.Unmarshal([]byte(entities), &e.Entities); err != nil {
			return nil, fmt.Errorf("decoding entities of %s: %w", e.ID, err)
		}
		if start.Valid && end.Valid {
			e.TimeWindow = &domain.TimeWindow{Start: int(start.Int64), End: int(end.Int64)}
		}
		e.TriggeredAdvisor = intToBool(triggered)
		e.HasWarnings = intToBool(hasWarnings)
		if warningType.Valid {
			wt := domain.WarningType(warningType.String)
			e.WarningType = &wt
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating change log: %w", err)
	}
	return out, nil
}
