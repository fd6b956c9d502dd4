package repository

import (
	"context"

	"paperhub/internal/database"
	"paperhub/internal/model"
)

// PaperRepository defines data access for paper metadata records using SQL queries only.
// No business logic here — strictly persistence operations.
type PaperRepository interface {
	// WithQuerier returns a copy of the repository bound to q, typically an
	// open transaction. The receiver is left untouched.
	WithQuerier(q database.Querier) PaperRepository

	// Create inserts a new paper record.
	// Returns the stored paper (may include values set by the DB).
	Create(ctx context.Context, p *model.Paper) (*model.Paper, error)

	// FindByID returns a paper by its ID.
	FindByID(ctx context.Context, id string) (*model.Paper, error)

	// ListByUser returns a page of papers the given user uploaded or was
	// assigned, newest first, plus the total count for the filter.
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Paper], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
