package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createShiftsQuery := `
	CREATE TABLE IF NOT EXISTS shifts (
		shift_id INTEGER PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		address TEXT,
		postcode TEXT,
		date TEXT NOT NULL,
		time_of_day TEXT NOT NULL,
		area1 INTEGER NOT NULL DEFAULT 0,
		area2 INTEGER NOT NULL DEFAULT 0,
		area3 INTEGER NOT NULL DEFAULT 0,
		area4 INTEGER NOT NULL DEFAULT 0
	);
	`

	createHotelsQuery := `
	CREATE TABLE IF NOT EXISTS hotels (
		position INTEGER PRIMARY KEY,
		name TEXT,
		address TEXT NOT NULL,
		postcode TEXT,
		capacity INTEGER NOT NULL DEFAULT 0,
		lon REAL,
		lat REAL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	statements := []string{
		createShiftsQuery,
		createHotelsQuery,
		createGeocodeCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ShiftSeed struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Postcode  string `json:"postcode"`
	Date      string `json:"date"`
	TimeOfDay string `json:"time_of_day"`
	Area1     bool   `json:"area1"`
	Area2     bool   `json:"area2"`
	Area3     bool   `json:"area3"`
	Area4     bool   `json:"area4"`
}

type HotelSeed struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Postcode string   `json:"postcode"`
	Capacity int      `json:"capacity"`
	Lon      *float64 `json:"lon"`
	Lat      *float64 `json:"lat"`
}

type Seed struct {
	Shifts []ShiftSeed `json:"shifts"`
	Hotels []HotelSeed `json:"hotels"`
}

// Populate the database from a JSON seed file. Hotel order is preserved:
// the first hotel is the depot by convention.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed planner: read %q: %w", jsonPath, err)
	}

	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed planner: parse json: %w", err)
	}

	for i, s := range seed.Shifts {
		if strings.TrimSpace(s.FirstName+s.LastName) == "" {
			return fmt.Errorf("seed planner: shift at index %d has no name", i)
		}
		if strings.TrimSpace(s.Date) == "" {
			return fmt.Errorf("seed planner: shift at index %d has no date", i)
		}
	}
	for i, h := range seed.Hotels {
		if strings.TrimSpace(h.Address) == "" {
			return fmt.Errorf("seed planner: hotel at index %d has no address", i)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed planner: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	shiftStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO shifts (
		shift_id, first_name, last_name, address, postcode,
		date, time_of_day, area1, area2, area3, area4
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed planner: prepare shift insert: %w", err)
	}
	defer shiftStmt.Close()

	for i, s := range seed.Shifts {
		if _, err := shiftStmt.Exec(i+1, s.FirstName, s.LastName, s.Address, s.Postcode,
			s.Date, s.TimeOfDay, s.Area1, s.Area2, s.Area3, s.Area4); err != nil {
			return fmt.Errorf("seed planner: insert shift #%d: %w", i+1, err)
		}
	}

	hotelStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO hotels (position, name, address, postcode, capacity, lon, lat)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed planner: prepare hotel insert: %w", err)
	}
	defer hotelStmt.Close()

	for i, h := range seed.Hotels {
		if _, err := hotelStmt.Exec(i+1, h.Name, h.Address, h.Postcode, h.Capacity, h.Lon, h.Lat); err != nil {
			return fmt.Errorf("seed planner: insert hotel #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed planner: commit tx: %w", err)
	}

	return nil
}
