package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"visit-planner-service/internal/domain"
)

// SQLite-backed implementation of the ShiftRepository port.
type SqliteShiftRepository struct{ DB *sql.DB }

func NewSqliteShiftRepository(db *sql.DB) *SqliteShiftRepository {
	return &SqliteShiftRepository{DB: db}
}

// Return all shift records stored in the database, in insertion order.
func (s *SqliteShiftRepository) ListShifts(ctx context.Context) ([]domain.ShiftRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite shift repository: DB is nil")
	}

	query := `
	SELECT first_name, last_name, address, postcode,
	       date, time_of_day, area1, area2, area3, area4
	FROM shifts
	ORDER BY shift_id;
	`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list shifts: query shifts table: %w", err)
	}
	defer rows.Close()

	var out []domain.ShiftRecord
	for rows.Next() {
		var rec domain.ShiftRecord
		if err := rows.Scan(
			&rec.FirstName, &rec.LastName, &rec.Address, &rec.Postcode,
			&rec.Date, &rec.TimeOfDay, &rec.Area1, &rec.Area2, &rec.Area3, &rec.Area4,
		); err != nil {
			return nil, fmt.Errorf("list shifts: scan row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shifts: row iteration: %w", err)
	}

	return out, nil
}
