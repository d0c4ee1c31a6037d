package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/forgo/delve/internal/integrity"
)

// AuditResult is the outcome of an integrity audit
type AuditResult struct {
	CheckedAt time.Time           `json:"checked_at"`
	Rooms     int                 `json:"rooms"`
	Monsters  int                 `json:"monsters"`
	Loot      int                 `json:"loot"`
	Users     int                 `json:"users"`
	Findings  []integrity.Finding `json:"findings"`
	Repairs   []string            `json:"repairs"`
	Repaired  bool                `json:"repaired"`
}

// IntegrityService audits the denormalized references of the catalog
type IntegrityService struct {
	graph GraphRepository
	now   func() time.Time
}

// IntegrityServiceConfig holds configuration for the integrity service
type IntegrityServiceConfig struct {
	Graph GraphRepository
	Now   func() time.Time
}

// NewIntegrityService creates a new integrity service
func NewIntegrityService(cfg IntegrityServiceConfig) *IntegrityService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &IntegrityService{graph: cfg.Graph, now: now}
}

// Audit checks the whole catalog. With repair set, the repair plan is applied
// in one transaction.
func (s *IntegrityService) Audit(ctx context.Context, repair bool) (*AuditResult, error) {
	snap, err := s.graph.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := integrity.Audit(*snap)
	result := &AuditResult{
		CheckedAt: s.now().UTC(),
		Rooms:     len(snap.Rooms),
		Monsters:  len(snap.Monsters),
		Loot:      len(snap.Loot),
		Users:     len(snap.Users),
		Findings:  report.Findings,
		Repairs:   report.Repairs.Describe(),
	}
	if result.Findings == nil {
		result.Findings = []integrity.Finding{}
	}

	if report.Clean() {
		slog.Debug("integrity audit clean", slog.Int("rooms", result.Rooms))
		return result, nil
	}

	slog.Warn("integrity audit found broken references",
		slog.Int("findings", len(report.Findings)),
		slog.Int("repairs", len(report.Repairs)),
	)
	for _, f := range report.Findings {
		slog.Info("integrity finding",
			slog.String("kind", string(f.Kind)),
			slog.String("collection", string(f.Collection)),
			slog.String("key", f.Key),
			slog.String("detail", f.Detail),
		)
	}

	if repair {
		if err := s.graph.Apply(ctx, report.Repairs); err != nil {
			return nil, err
		}
		result.Repaired = true
		slog.Info("integrity repairs applied", slog.Int("changes", len(report.Repairs)))
	}
	return result, nil
}
