package mocks

import (
	"context"

	"paperhub/internal/database"
	"paperhub/internal/model"
	"paperhub/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockPaperRepository struct {
	mock.Mock
}

// WithQuerier returns the mock itself so transactional flows can be asserted
// on a single instance.
func (m *MockPaperRepository) WithQuerier(q database.Querier) repository.PaperRepository {
	return m
}

func (m *MockPaperRepository) Create(ctx context.Context, p *model.Paper) (*model.Paper, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Paper), args.Error(1)
}

func (m *MockPaperRepository) FindByID(ctx context.Context, id string) (*model.Paper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Paper), args.Error(1)
}

func (m *MockPaperRepository) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Paper], error) {
	args := m.Called(ctx, userID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Paper]), args.Error(1)
}
