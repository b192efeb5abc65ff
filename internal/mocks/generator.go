package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/nutriai/backend/internal/models"
)

// MockGenerator is a mock implementation of the service.Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt, schema string) (string, error) {
	args := m.Called(ctx, prompt, schema)
	return args.String(0), args.Error(1)
}

// MockChatModel is a mock implementation of the service.ChatModel interface
type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Chat(ctx context.Context, instruction string, history []models.ChatMessage, message string) (string, error) {
	args := m.Called(ctx, instruction, history, message)
	return args.String(0), args.Error(1)
}
