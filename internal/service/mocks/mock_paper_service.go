package mocks

import (
	"context"
	"io"
	"time"

	"paperhub/internal/model"
	"paperhub/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockPaperService struct {
	mock.Mock
}

func (m *MockPaperService) Submit(ctx context.Context, req service.SubmitRequest) (*service.SubmitResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

func (m *MockPaperService) Get(ctx context.Context, id string) (*model.Paper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Paper), args.Error(1)
}

func (m *MockPaperService) ListForUser(ctx context.Context, userID string, limit, offset int) (*service.PaperListResult, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PaperListResult), args.Error(1)
}

func (m *MockPaperService) PresignDownload(ctx context.Context, id string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockPaperService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Paper, error) {
	args := m.Called(ctx, id)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var p *model.Paper
	if args.Get(1) != nil {
		p = args.Get(1).(*model.Paper)
	}
	return rc, p, args.Error(2)
}
