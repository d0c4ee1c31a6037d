package model

import "time"

// MaxHintTextLength bounds the text of a single hint
const MaxHintTextLength = 2000

// HintCategory classifies a hint
type HintCategory string

const (
	HintCategoryBug        HintCategory = "bug"
	HintCategoryHint       HintCategory = "hint"
	HintCategoryLore       HintCategory = "lore"
	HintCategorySuggestion HintCategory = "suggestion"
)

// HintCategories returns every valid category
func HintCategories() []HintCategory {
	return []HintCategory{
		HintCategoryBug,
		HintCategoryHint,
		HintCategoryLore,
		HintCategorySuggestion,
	}
}

// IsValid reports whether c is a known category
func (c HintCategory) IsValid() bool {
	switch c {
	case HintCategoryBug, HintCategoryHint, HintCategoryLore, HintCategorySuggestion:
		return true
	}
	return false
}

// UserHint is the copy of a hint stored on the posting user.
// The referemces_room key matches the documents already in the store.
type UserHint struct {
	HintID         string       `json:"hint_id"`
	Text           string       `json:"text"`
	Category       HintCategory `json:"category"`
	CreationDate   time.Time    `json:"creation_date"`
	ReferencesRoom RoomLocation `json:"referemces_room"`
}

// RoomHint is the copy of a hint stored on the room it talks about
type RoomHint struct {
	HintID       string       `json:"hint_id"`
	Text         string       `json:"text"`
	Category     HintCategory `json:"category"`
	CreationDate time.Time    `json:"creation_date"`
	PublishedBy  UserRef      `json:"published_by"`
}

// PostCommentRequest represents a hint posted by a user on a room
type PostCommentRequest struct {
	UserEmail string       `json:"user_email"`
	Text      string       `json:"text"`
	Category  HintCategory `json:"category"`
}

// Validate checks if the comment request is valid
func (r *PostCommentRequest) Validate() []FieldError {
	var errors []FieldError

	if r.UserEmail == "" {
		errors = append(errors, FieldError{Field: "user_email", Message: "user_email is required"})
	}
	if r.Text == "" {
		errors = append(errors, FieldError{Field: "text", Message: "text is required"})
	} else if len(r.Text) > MaxHintTextLength {
		errors = append(errors, FieldError{Field: "text", Message: "text must be 2000 characters or less"})
	}
	if !r.Category.IsValid() {
		errors = append(errors, FieldError{Field: "category", Message: "category must be one of bug, hint, lore, suggestion"})
	}

	return errors
}
