package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cmsapi/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	args := m.Called(ctx, userID, current, next)
	return args.Error(0)
}
