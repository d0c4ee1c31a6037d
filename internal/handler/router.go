package handler

import (
	"net/http"

	"github.com/forgo/delve/internal/middleware"
	"github.com/forgo/delve/internal/service"
)

// RouterConfig holds everything the HTTP surface is built from
type RouterConfig struct {
	Query     *service.QueryService
	Mutation  *service.MutationService
	Integrity *service.IntegrityService
	DB        Pinger

	// AdminToken guards /v1/admin; empty rejects every admin request
	AdminToken     string
	AllowedOrigins []string
	// Nil limiter or idempotency store leaves that middleware out
	RateLimiter *middleware.RateLimiter
	Idempotency *middleware.IdempotencyStore
}

// NewRouter registers every route and wraps the mux in the middleware chain
func NewRouter(cfg RouterConfig) http.Handler {
	catalog := NewCatalogHandler(cfg.Query)
	mutation := NewMutationHandler(cfg.Mutation)
	admin := NewAdminHandler(cfg.Integrity)
	health := NewHealthHandler(cfg.DB)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)

	// Query
	mux.HandleFunc("GET /v1/loot", catalog.ListLoot)
	mux.HandleFunc("GET /v1/loot/{id}", catalog.GetLoot)
	mux.HandleFunc("GET /v1/monsters", catalog.ListMonsters)
	mux.HandleFunc("GET /v1/monsters/{id}", catalog.GetMonster)
	mux.HandleFunc("GET /v1/users", catalog.ListUsers)
	mux.HandleFunc("GET /v1/users/{email}", catalog.GetUser)
	mux.HandleFunc("GET /v1/dungeons", catalog.ListDungeons)
	mux.HandleFunc("GET /v1/dungeons/{id}", catalog.GetDungeon)
	mux.HandleFunc("GET /v1/rooms/{id}", catalog.GetRoom)

	// Mutation
	mux.HandleFunc("POST /v1/monsters", mutation.CreateMonster)
	mux.HandleFunc("POST /v1/loot", mutation.CreateLoot)
	mux.HandleFunc("POST /v1/users", mutation.CreateUser)
	mux.HandleFunc("POST /v1/rooms", mutation.CreateRoom)
	mux.HandleFunc("POST /v1/rooms/{id}/comments", mutation.PostComment)
	mux.HandleFunc("PUT /v1/rooms/{id}/monsters", mutation.UpdateRoomMonsters)
	mux.HandleFunc("PUT /v1/rooms/{id}/loot", mutation.UpdateRoomLoot)
	mux.HandleFunc("PUT /v1/rooms/{id}/connections", mutation.UpdateRoomConnections)
	mux.HandleFunc("DELETE /v1/rooms/{id}", mutation.DeleteRoom)
	mux.HandleFunc("DELETE /v1/monsters/{id}", mutation.DeleteMonster)
	mux.HandleFunc("DELETE /v1/loot/{id}", mutation.DeleteLoot)

	// Admin
	guard := middleware.AdminToken(cfg.AdminToken)
	mux.Handle("GET /v1/admin/integrity", guard(http.HandlerFunc(admin.Integrity)))

	chain := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.AllowedOrigins),
	}
	if cfg.RateLimiter != nil {
		chain = append(chain, middleware.RateLimit(cfg.RateLimiter))
	}
	if cfg.Idempotency != nil {
		chain = append(chain, middleware.Idempotency(cfg.Idempotency))
	}
	chain = append(chain, middleware.Compress)

	return middleware.Chain(mux, chain...)
}
