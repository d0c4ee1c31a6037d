package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/forgo/delve/internal/model"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Not Found Errors =====
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrMonsterNotFound = errors.New("monster not found")
	ErrLootNotFound    = errors.New("loot not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrDungeonNotFound = errors.New("dungeon not found")
)

// ===== Validation Errors =====
var (
	ErrValidationMismatch = errors.New("one or more ids do not exist")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCategory    = errors.New("category must be one of bug, hint, lore, suggestion")
	ErrTextRequired       = errors.New("text is required")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrSelfConnection     = errors.New("a room cannot be connected to itself")
)

// ===== Conflict Errors =====
var (
	ErrUserExists = errors.New("user already exists")
)

// MismatchError reports a reference list containing ids that do not resolve.
// It matches ErrValidationMismatch with errors.Is.
type MismatchError struct {
	Collection string
	Requested  int
	Found      int
	Missing    []int
}

func (e *MismatchError) Error() string {
	missing := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		missing[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%d %s requested, %d found (missing: %s)",
		e.Requested, e.Collection, e.Found, strings.Join(missing, ", "))
}

// Is reports whether target is ErrValidationMismatch
func (e *MismatchError) Is(target error) bool {
	return target == ErrValidationMismatch
}

// newMismatch compares the distinct requested ids with the ids found
func newMismatch(collection string, requested []int, found map[int]bool) *MismatchError {
	distinct := make(map[int]bool, len(requested))
	var missing []int
	for _, id := range requested {
		if distinct[id] {
			continue
		}
		distinct[id] = true
		if !found[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Ints(missing)
	return &MismatchError{
		Collection: collection,
		Requested:  len(distinct),
		Found:      len(distinct) - len(missing),
		Missing:    missing,
	}
}

// ValidationError carries field level problems of a request.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	return fmt.Sprintf("%s: %s", e.Fields[0].Field, e.Fields[0].Message)
}

// Is reports whether target is ErrInvalidInput
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func validationError(fields []model.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// IsNotFound reports whether err is one of the not found errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrMonsterNotFound) ||
		errors.Is(err, ErrLootNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrDungeonNotFound)
}

// IsValidation reports whether err rejects the caller's input
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationMismatch) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrTextRequired) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrSelfConnection)
}

// StatusFromError converts not found, validation and conflict errors into an
// error envelope. Any other error is a store failure and is returned as is.
func StatusFromError(err error) (model.Status, error) {
	if err == nil {
		return model.Success("ok"), nil
	}
	if IsNotFound(err) || IsValidation(err) || errors.Is(err, ErrUserExists) {
		status := model.Failure(err.Error())
		status.Cause = err
		return status, nil
	}
	return model.Status{}, err
}
