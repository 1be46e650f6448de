package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/tasklist/api/internal/adapters/repository/postgres"
	"github.com/tasklist/api/internal/config"
)

// One-shot job meant to run on a schedule: clears refresh credentials whose
// expiry has passed, so stale sessions do not linger on user rows.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()

	var dbHost, dbPort string
	flag.StringVar(&dbHost, "db-host", cfg.DBHost, "Database host")
	flag.StringVar(&dbPort, "db-port", cfg.DBPort, "Database port")
	flag.Parse()
	cfg.DBHost = dbHost
	cfg.DBPort = dbPort

	db, err := sql.Open("postgres", cfg.DBConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	userRepo := postgres.NewUserRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger.Info("starting session sweep")

	cleared, err := userRepo.ClearExpiredRefreshTokens(ctx)
	if err != nil {
		log.Fatalf("Error clearing expired refresh tokens: %v", err)
	}

	logger.Info("session sweep completed", "cleared", cleared)
}
