package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/store"
	"github.com/claimlens/claimlens/pkg/factcheck"
)

// --- Gateway Mock ---

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) ClassifyText(ctx context.Context, text, lang string) (*model.RawVerdict, error) {
	args := m.Called(ctx, text, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RawVerdict), args.Error(1)
}

func (m *mockGateway) ClassifyImage(ctx context.Context, imagePath, lang string) (*model.RawVerdict, string, error) {
	args := m.Called(ctx, imagePath, lang)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.RawVerdict), args.String(1), args.Error(2)
}

// --- FactCheck Mock ---

type mockFactCheck struct {
	mock.Mock
}

func (m *mockFactCheck) Search(ctx context.Context, query string, pageSize int) (*factcheck.SearchResponse, error) {
	args := m.Called(ctx, query, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*factcheck.SearchResponse), args.Error(1)
}

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Append(ctx context.Context, analysis *model.Analysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *mockStore) ListRecent(ctx context.Context, filter store.Filter) ([]model.Analysis, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Analysis), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
