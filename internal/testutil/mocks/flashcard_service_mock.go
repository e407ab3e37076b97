package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hanziflash/hanziflash/internal/models"
	"github.com/hanziflash/hanziflash/internal/services"
)

// MockFlashcardService is a mock implementation of services.FlashcardService
type MockFlashcardService struct {
	mock.Mock
}

var _ services.FlashcardService = (*MockFlashcardService)(nil)

func (m *MockFlashcardService) FetchFlashcards(ctx context.Context, params services.FlashcardListParams) (*models.FlashcardPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlashcardPage), args.Error(1)
}

func (m *MockFlashcardService) FetchTopics(ctx context.Context) ([]models.TopicOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TopicOption), args.Error(1)
}

func (m *MockFlashcardService) FetchLevels(ctx context.Context) ([]models.LevelOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LevelOption), args.Error(1)
}
