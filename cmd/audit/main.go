// Command audit runs one integrity audit of the catalog and prints the report.
//
//	go run ./cmd/audit           # report only
//	go run ./cmd/audit -repair   # apply the repair plan
//
// The exit status is 1 on failure and 2 when broken references were found
// and left unrepaired.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/forgo/delve/internal/config"
	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/jobs"
	"github.com/forgo/delve/internal/repository"
	"github.com/forgo/delve/internal/service"
)

func main() {
	repair := flag.Bool("repair", false, "apply the repair plan")
	timeout := flag.Duration("timeout", 5*time.Minute, "audit timeout")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	os.Exit(run(*repair, *timeout))
}

func run(repair bool, timeout time.Duration) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		return 1
	}
	defer func() { _ = db.Close() }()

	job := jobs.NewIntegrityAuditor(jobs.IntegrityAuditorConfig{
		Auditor: service.NewIntegrityService(service.IntegrityServiceConfig{
			Graph: repository.NewGraphRepository(db),
		}),
		Repair: repair,
	})

	result, err := job.RunOnce(ctx)
	if err != nil {
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)

	if len(result.Findings) > 0 && !result.Repaired {
		return 2
	}
	return 0
}
