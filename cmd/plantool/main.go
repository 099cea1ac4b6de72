package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"visit-planner-service/internal/adapters/cache"
	"visit-planner-service/internal/adapters/geo"
	"visit-planner-service/internal/adapters/repositories"
	"visit-planner-service/internal/config"
	"visit-planner-service/internal/platform/db"
	"visit-planner-service/internal/services"
)

// plantool initializes the local database and runs the planning stages
// from the command line, without the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	stage := flag.String("stage", "all", "which stage to run: pair, plan, or all")
	workers := flag.Int("workers", config.GetInt("WORKER_COUNT", 1), "number of workers for the routing stage")
	maxVisits := flag.Int("max-visits", config.GetInt("MAX_VISITS_PER_DAY", 0), "per-worker daily visit cap (0 = default)")
	limit := flag.Int("limit", config.GetInt("SOLUTION_LIMIT", 0), "pairing solution cap (0 = default, negative = uncapped)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	flag.Parse()

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/planning.json")

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatalf("open sqlite database %q: %v", dbPath, err)
	}
	defer sqliteDB.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(sqliteDB, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Database ready.")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	logger := log.Default()

	switch *stage {
	case "pair":
		runPairing(ctx, sqliteDB, *limit, logger)
	case "plan":
		runPlanning(ctx, sqliteDB, *workers, *maxVisits, logger)
	case "all":
		runPairing(ctx, sqliteDB, *limit, logger)
		runPlanning(ctx, sqliteDB, *workers, *maxVisits, logger)
	default:
		log.Fatalf("unknown stage %q (want pair, plan, or all)", *stage)
	}
}

func runPairing(ctx context.Context, sqliteDB *sql.DB, limit int, logger *log.Logger) {
	repo := repositories.NewSqliteShiftRepository(sqliteDB)

	result, err := services.PairVolunteers(ctx, services.PairVolunteersRequest{SolutionLimit: limit}, repo, logger)
	if err != nil {
		log.Fatalf("pairing failed: %v", err)
	}

	fmt.Printf("exploration=%s satisfaction=%s objective=%d solutions=%d\n",
		result.ExplorationStatus, result.SatisfactionStatus, result.Objective, len(result.Assignments))

	for i, a := range result.Assignments {
		lines := make([]string, 0, len(a))
		for c, share := range a {
			lines = append(lines, fmt.Sprintf("  %s + %s (slots=%d sector=%#x)", c.First, c.Second, len(share.Slots), share.Sector))
		}
		sort.Strings(lines)
		fmt.Printf("solution %d:\n%s\n", i+1, strings.Join(lines, "\n"))
	}
}

func runPlanning(ctx context.Context, sqliteDB *sql.DB, workers, maxVisits int, logger *log.Logger) {
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

	repo := repositories.NewSqliteHotelRepository(sqliteDB)
	geocoder := geo.NewBANGeocoder(geocodeCache)

	req := services.PlanVisitsRequest{WorkerCount: workers, MaxVisitsPerDay: maxVisits}
	itineraries, err := services.PlanVisits(ctx, req, repo, geocoder, geo.HaversineKm, logger)
	if err != nil {
		log.Fatalf("planning failed: %v", err)
	}

	for _, it := range itineraries {
		fmt.Printf("worker %d: %s (%.1f km)\n", it.WorkerID, strings.Join(it.Stops, " -> "), float64(it.TotalDistanceMeters)/1000)
	}
}
