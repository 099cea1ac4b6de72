package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"visit-planner-service/internal/domain"
)

// SQLite-backed implementation of the HotelRepository port.
type SqliteHotelRepository struct{ DB *sql.DB }

func NewSqliteHotelRepository(db *sql.DB) *SqliteHotelRepository {
	return &SqliteHotelRepository{DB: db}
}

// Return all hotels in stored order; the first row is the depot.
// Hotels seeded with coordinates come back with Point already resolved.
func (s *SqliteHotelRepository) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite hotel repository: DB is nil")
	}

	query := `
	SELECT name, address, postcode, capacity, lon, lat
	FROM hotels
	ORDER BY position;
	`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list hotels: query hotels table: %w", err)
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		var name sql.NullString
		var postcode sql.NullString
		var lon, lat sql.NullFloat64
		if err := rows.Scan(&name, &h.Address, &postcode, &h.Capacity, &lon, &lat); err != nil {
			return nil, fmt.Errorf("list hotels: scan row: %w", err)
		}
		h.Name = name.String
		h.Postcode = postcode.String
		if lon.Valid && lat.Valid {
			h.Point = &domain.Coordinates{Lon: lon.Float64, Lat: lat.Float64}
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hotels: row iteration: %w", err)
	}

	return out, nil
}
