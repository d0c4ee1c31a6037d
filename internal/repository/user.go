package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/model"
)

// UserRepository handles user data access. Users are keyed by email.
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a user under users:<email>.
// Returns database.ErrDuplicate when the email is taken.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	doc, err := toDocument(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if _, ok := doc["hints"]; !ok {
		doc["hints"] = []interface{}{}
	}

	query := `CREATE type::record('users', $email) CONTENT $doc`
	vars := map[string]interface{}{
		"email": user.Email,
		"doc":   doc,
	}

	return r.db.Execute(ctx, query, vars)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM type::record('users', $email)`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var user model.User
	if err := decodeRecord(result, &user); err != nil {
		return nil, fmt.Errorf("user %s: %w", email, err)
	}
	return &user, nil
}

// List retrieves every user without hints, ordered by email
func (r *UserRepository) List(ctx context.Context) ([]model.UserRef, error) {
	query := `SELECT email, user_name, country FROM users ORDER BY email`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords[model.UserRef](statementRows(results, 0))
}
