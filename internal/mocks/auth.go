package mocks

import (
	"context"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockAccountService is a mock implementation of the IAccountService interface
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAccountService) Register(ctx context.Context, name, email, password string) (*models.Account, string, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.Account), args.String(1), args.Error(2)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (*models.Account, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.Account), args.String(1), args.Error(2)
}

func (m *MockAccountService) Logout(ctx context.Context, userID, sessionID string) {
	m.Called(ctx, userID, sessionID)
}

func (m *MockAccountService) CurrentUser(ctx context.Context, userID string) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}
