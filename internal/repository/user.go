package repository

import (
	"context"

	"paperhub/internal/database"
	"paperhub/internal/model"
)

// UserRepository defines data access for user accounts and their paper
// reference lists.
type UserRepository interface {
	// WithQuerier returns a copy of the repository bound to q, typically an
	// open transaction. The receiver is left untouched.
	WithQuerier(q database.Querier) UserRepository

	// Create inserts a new user row and returns the stored record.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by ID, without the reference list.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by email, without the reference list.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// ListByRole returns all users carrying the given role.
	ListByRole(ctx context.Context, role string) ([]model.User, error)

	// AppendPaper appends paperID to the user's reference list. Appending the
	// same paper twice violates the list's primary key and returns an error.
	AppendPaper(ctx context.Context, userID, paperID string) error

	// PaperIDs returns the user's reference list in append order.
	PaperIDs(ctx context.Context, userID string) ([]string, error)
}
