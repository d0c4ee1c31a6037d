package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/delve/internal/config"
	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/handler"
	"github.com/forgo/delve/internal/jobs"
	"github.com/forgo/delve/internal/middleware"
	"github.com/forgo/delve/internal/repository"
	"github.com/forgo/delve/internal/service"
	"github.com/forgo/delve/migrations"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("namespace", cfg.Database.Namespace),
		slog.String("database", cfg.Database.Database),
	)

	if err := database.Migrate(ctx, db, migrations.FS); err != nil {
		slog.Error("failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	roomRepo := repository.NewRoomRepository(db)
	monsterRepo := repository.NewMonsterRepository(db)
	lootRepo := repository.NewLootRepository(db)
	userRepo := repository.NewUserRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	graphRepo := repository.NewGraphRepository(db)

	queryService := service.NewQueryService(service.QueryServiceConfig{
		RoomRepo:    roomRepo,
		MonsterRepo: monsterRepo,
		LootRepo:    lootRepo,
		UserRepo:    userRepo,
	})

	mutationService := service.NewMutationService(service.MutationServiceConfig{
		RoomRepo:    roomRepo,
		MonsterRepo: monsterRepo,
		LootRepo:    lootRepo,
		UserRepo:    userRepo,
		IDs:         counterRepo,
		Graph:       graphRepo,
	})

	integrityService := service.NewIntegrityService(service.IntegrityServiceConfig{
		Graph: graphRepo,
	})

	var auditor *jobs.IntegrityAuditor
	if cfg.Integrity.AuditInterval > 0 {
		auditor = jobs.NewIntegrityAuditor(jobs.IntegrityAuditorConfig{
			Auditor:  integrityService,
			Interval: cfg.Integrity.AuditInterval,
			Repair:   cfg.Integrity.Repair,
		})
		if err := auditor.Start(); err != nil {
			slog.Error("failed to start integrity auditor", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Burst:  cfg.RateLimit.Burst,
		Window: cfg.RateLimit.Window,
	})
	defer rateLimiter.Stop()

	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     cfg.Idempotency.TTL,
		Cleanup: cfg.Idempotency.Cleanup,
	})
	defer idempotencyStore.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		Query:          queryService,
		Mutation:       mutationService,
		Integrity:      integrityService,
		DB:             db,
		AdminToken:     cfg.Integrity.AdminToken,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimiter:    rateLimiter,
		Idempotency:    idempotencyStore,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}
	if auditor != nil {
		if err := auditor.Stop(); err != nil {
			slog.Error("integrity auditor shutdown", slog.String("error", err.Error()))
		}
	}

	slog.Info("server exited")
}
