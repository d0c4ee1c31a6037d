package handler

import (
	"context"
	"net/http"

	"github.com/forgo/delve/internal/model"
	"github.com/forgo/delve/internal/service"
)

// MutationHandler serves the write side of the catalog. Every endpoint
// answers with a status envelope.
type MutationHandler struct {
	mutationService *service.MutationService
}

// NewMutationHandler creates a new mutation handler
func NewMutationHandler(mutationService *service.MutationService) *MutationHandler {
	return &MutationHandler{mutationService: mutationService}
}

// CreateMonster handles POST /v1/monsters
func (h *MutationHandler) CreateMonster(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMonsterRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	status, err := h.mutationService.CreateMonster(r.Context(), &req)
	h.respond(w, status, err, http.StatusCreated)
}

// CreateLoot handles POST /v1/loot
func (h *MutationHandler) CreateLoot(w http.ResponseWriter, r *http.Request) {
	var req model.CreateLootRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	status, err := h.mutationService.CreateLoot(r.Context(), &req)
	h.respond(w, status, err, http.StatusCreated)
}

// CreateUser handles POST /v1/users
func (h *MutationHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	status, err := h.mutationService.CreateUser(r.Context(), &req)
	h.respond(w, status, err, http.StatusCreated)
}

// CreateRoom handles POST /v1/rooms
func (h *MutationHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRoomRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	status, err := h.mutationService.CreateRoom(r.Context(), &req)
	h.respond(w, status, err, http.StatusCreated)
}

// PostComment handles POST /v1/rooms/{id}/comments
func (h *MutationHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	roomID, problem := pathInt(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	var req model.PostCommentRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	status, err := h.mutationService.PostComment(r.Context(), roomID, &req)
	h.respond(w, status, err, http.StatusCreated)
}

// UpdateRoomMonsters handles PUT /v1/rooms/{id}/monsters
func (h *MutationHandler) UpdateRoomMonsters(w http.ResponseWriter, r *http.Request) {
	h.replace(w, r, h.mutationService.UpdateRoomMonsters)
}

// UpdateRoomLoot handles PUT /v1/rooms/{id}/loot
func (h *MutationHandler) UpdateRoomLoot(w http.ResponseWriter, r *http.Request) {
	h.replace(w, r, h.mutationService.UpdateRoomLoot)
}

// UpdateRoomConnections handles PUT /v1/rooms/{id}/connections
func (h *MutationHandler) UpdateRoomConnections(w http.ResponseWriter, r *http.Request) {
	h.replace(w, r, h.mutationService.UpdateRoomConnections)
}

// DeleteRoom handles DELETE /v1/rooms/{id}
func (h *MutationHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.mutationService.DeleteRoom)
}

// DeleteMonster handles DELETE /v1/monsters/{id}
func (h *MutationHandler) DeleteMonster(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.mutationService.DeleteMonster)
}

// DeleteLoot handles DELETE /v1/loot/{id}
func (h *MutationHandler) DeleteLoot(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.mutationService.DeleteLoot)
}

type replaceFunc func(ctx context.Context, roomID int, ids []int) (model.Status, error)

func (h *MutationHandler) replace(w http.ResponseWriter, r *http.Request, fn replaceFunc) {
	roomID, problem := pathInt(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	var req model.ReplaceIDsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	status, err := fn(r.Context(), roomID, req.IDs)
	h.respond(w, status, err, http.StatusOK)
}

func (h *MutationHandler) remove(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int) (model.Status, error)) {
	id, problem := pathInt(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	status, err := fn(r.Context(), id)
	h.respond(w, status, err, http.StatusOK)
}

func (h *MutationHandler) respond(w http.ResponseWriter, status model.Status, err error, successCode int) {
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteStatus(w, status, successCode)
}
