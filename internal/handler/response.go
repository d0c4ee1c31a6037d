package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/forgo/delve/internal/model"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// WriteStatus writes a mutation envelope. Success envelopes use successCode;
// error envelopes take the HTTP status of their cause.
func WriteStatus(w http.ResponseWriter, status model.Status, successCode int) {
	if status.OK() {
		WriteJSON(w, successCode, status)
		return
	}
	code := http.StatusUnprocessableEntity
	if status.Cause != nil {
		code = MapServiceError(status.Cause).Status
	}
	WriteJSON(w, code, status)
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// pathInt parses a numeric path segment
func pathInt(r *http.Request, name string) (int, *model.ProblemDetails) {
	raw := r.PathValue(name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewBadRequestError(name + " must be an integer")
	}
	return id, nil
}
