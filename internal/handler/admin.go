package handler

import (
	"net/http"
	"strconv"

	"github.com/forgo/delve/internal/model"
	"github.com/forgo/delve/internal/service"
)

// AdminHandler exposes the integrity audit
type AdminHandler struct {
	integrityService *service.IntegrityService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(integrityService *service.IntegrityService) *AdminHandler {
	return &AdminHandler{integrityService: integrityService}
}

// Integrity handles GET /v1/admin/integrity - audit report, ?repair=true
// applies the repair plan
func (h *AdminHandler) Integrity(w http.ResponseWriter, r *http.Request) {
	repair := false
	if raw := r.URL.Query().Get("repair"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			WriteError(w, model.NewBadRequestError("repair must be a boolean"))
			return
		}
		repair = parsed
	}

	result, err := h.integrityService.Audit(r.Context(), repair)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
