package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/tasklist/api/internal/adapters/handler/http"
	"github.com/tasklist/api/internal/adapters/hash"
	"github.com/tasklist/api/internal/adapters/repository/postgres"
	"github.com/tasklist/api/internal/adapters/token"
	"github.com/tasklist/api/internal/config"
	"github.com/tasklist/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := sql.Open("postgres", cfg.DBConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	taskRepo := postgres.NewTaskRepository(db)
	userRepo := postgres.NewUserRepository(db)

	hasher := hash.NewBcryptHasher()
	issuer := token.NewJWTIssuer([]byte(cfg.JWTSecret))

	taskService := services.NewTaskService(taskRepo)
	authService := services.NewAuthService(userRepo, hasher, issuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(userRepo)

	authHandler := http.NewAuthHandler(authService, logger)
	taskHandler := http.NewTaskHandler(taskService, logger)
	userHandler := http.NewUserHandler(userService, logger)

	handler := http.NewHandler(authHandler, taskHandler, userHandler, issuer)
	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
