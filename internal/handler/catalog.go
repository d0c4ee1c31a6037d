package handler

import (
	"net/http"

	"github.com/forgo/delve/internal/model"
	"github.com/forgo/delve/internal/service"
)

// CatalogHandler serves the read side of the catalog
type CatalogHandler struct {
	queryService *service.QueryService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(queryService *service.QueryService) *CatalogHandler {
	return &CatalogHandler{queryService: queryService}
}

// ListLoot handles GET /v1/loot
func (h *CatalogHandler) ListLoot(w http.ResponseWriter, r *http.Request) {
	items, err := h.queryService.ListLoot(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// GetLoot handles GET /v1/loot/{id}
func (h *CatalogHandler) GetLoot(w http.ResponseWriter, r *http.Request) {
	id, problem := pathInt(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	loot, err := h.queryService.GetLoot(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, loot)
}

// ListMonsters handles GET /v1/monsters
func (h *CatalogHandler) ListMonsters(w http.ResponseWriter, r *http.Request) {
	monsters, err := h.queryService.ListMonsters(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, monsters)
}

// GetMonster handles GET /v1/monsters/{id}
func (h *CatalogHandler) GetMonster(w http.ResponseWriter, r *http.Request) {
	id, problem := pathInt(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	monster, err := h.queryService.GetMonster(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, monster)
}

// ListUsers handles GET /v1/users
func (h *CatalogHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queryService.ListUsers(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// GetUser handles GET /v1/users/{email}
func (h *CatalogHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		WriteError(w, model.NewBadRequestError("email required"))
		return
	}

	user, err := h.queryService.GetUser(r.Context(), email)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// ListDungeons handles GET /v1/dungeons
func (h *CatalogHandler) ListDungeons(w http.ResponseWriter, r *http.Request) {
	dungeons, err := h.queryService.ListDungeons(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, dungeons)
}

// GetDungeon handles GET /v1/dungeons/{id}
func (h *CatalogHandler) GetDungeon(w http.ResponseWriter, r *http.Request) {
	id, problem := pathInt(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	dungeon, err := h.queryService.GetDungeon(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, dungeon)
}

// GetRoom handles GET /v1/rooms/{id}
func (h *CatalogHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, problem := pathInt(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	room, err := h.queryService.GetRoom(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, room)
}
