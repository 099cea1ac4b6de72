package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"visit-planner-service/internal/adapters/cache"
	"visit-planner-service/internal/adapters/geo"
	"visit-planner-service/internal/adapters/repositories"
	"visit-planner-service/internal/api"
	"visit-planner-service/internal/config"
	"visit-planner-service/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, BAN) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/planning.json")
	port := config.Get("PORT", "8080")

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	// Geocoded points persist across runs so repeated planning calls skip
	// the external lookup. DATABASE_URL moves the cache to Postgres for
	// deployments where several instances share it.
	var geocodeCache geo.GeocodeCache
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		geocodeCache = cache.NewSQLGeocodeCache(pg)
	} else {
		geocodeCache = cache.NewSqliteGeocodeCache(sqliteDB)
	}

	geocoder := geo.NewBANGeocoder(geocodeCache)
	shifts := repositories.NewSqliteShiftRepository(sqliteDB)
	hotels := repositories.NewSqliteHotelRepository(sqliteDB)

	logger := log.Default()
	router := api.NewRouter(shifts, hotels, geocoder, geo.HaversineKm, logger)

	// Timeouts are tuned for cold-cache planning runs (external geocoding
	// latency plus solver time).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
