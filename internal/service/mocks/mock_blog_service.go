package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cmsapi/internal/model"
	"cmsapi/internal/query"
)

type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) Create(ctx context.Context, doc map[string]any) (*model.Blog, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogService) CreateMany(ctx context.Context, docs []map[string]any) (int, error) {
	args := m.Called(ctx, docs)
	return args.Int(0), args.Error(1)
}

func (m *MockBlogService) List(ctx context.Context, opts query.Options) (*query.Result[model.Blog], error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.Result[model.Blog]), args.Error(1)
}

func (m *MockBlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogService) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogService) Update(ctx context.Context, id string, patch map[string]any) (*model.Blog, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}
