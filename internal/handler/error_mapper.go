package handler

import (
	"errors"
	"log/slog"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/model"
	"github.com/forgo/delve/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var mismatch *service.MismatchError
	var invalid *service.ValidationError

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrRoomNotFound):
		return model.NewNotFoundError("room")
	case errors.Is(err, service.ErrMonsterNotFound):
		return model.NewNotFoundError("monster")
	case errors.Is(err, service.ErrLootNotFound):
		return model.NewNotFoundError("loot")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrDungeonNotFound):
		return model.NewNotFoundError("dungeon")

	// ===== Validation Errors → 422 =====
	case errors.As(err, &mismatch):
		return model.NewMismatchError(mismatch.Error(), mismatch.Requested, mismatch.Found)
	case errors.As(err, &invalid):
		return model.NewValidationError(invalid.Fields)
	case errors.Is(err, service.ErrInvalidCategory):
		return model.NewValidationError([]model.FieldError{{Field: "category", Message: err.Error()}})
	case errors.Is(err, service.ErrTextRequired):
		return model.NewValidationError([]model.FieldError{{Field: "text", Message: err.Error()}})
	case errors.Is(err, service.ErrNameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})
	case errors.Is(err, service.ErrEmailRequired):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})
	case errors.Is(err, service.ErrSelfConnection):
		return model.NewValidationError([]model.FieldError{{Field: "ids", Message: err.Error()}})
	case service.IsValidation(err):
		return model.NewValidationError(nil)

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrUserExists):
		return model.NewConflictError(err.Error())

	// ===== Store Errors → 503 / 500 =====
	case errors.Is(err, database.ErrConnection):
		slog.Error("catalog store unavailable", slog.String("error", err.Error()))
		return model.NewDatabaseError()
	}

	slog.Error("unhandled service error", slog.String("error", err.Error()))
	return model.NewInternalError("")
}
