package model

import "strings"

// User is a player who can post hints on rooms
type User struct {
	Email    string     `json:"email"`
	UserName string     `json:"user_name"`
	Country  string     `json:"country"`
	Hints    []UserHint `json:"hints,omitempty"`
}

// UserRef is the poster identity embedded in a room hint, and the list projection of a user
type UserRef struct {
	Email    string `json:"email"`
	UserName string `json:"user_name"`
	Country  string `json:"country"`
}

// Ref returns the identity copied into room hints
func (u *User) Ref() UserRef {
	return UserRef{Email: u.Email, UserName: u.UserName, Country: u.Country}
}

// CreateUserRequest represents a request to register a user
type CreateUserRequest struct {
	Email    string `json:"email"`
	UserName string `json:"user_name"`
	Country  string `json:"country"`
}

// Validate checks if the create request is valid
func (r *CreateUserRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	} else if !strings.Contains(r.Email, "@") {
		errors = append(errors, FieldError{Field: "email", Message: "email is not valid"})
	}
	if r.UserName == "" {
		errors = append(errors, FieldError{Field: "user_name", Message: "user_name is required"})
	}

	return errors
}
