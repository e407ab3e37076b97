package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hanziflash/hanziflash/internal/models"
	"github.com/hanziflash/hanziflash/internal/services"
)

// MockUserService is a mock implementation of services.UserService
type MockUserService struct {
	mock.Mock
}

var _ services.UserService = (*MockUserService)(nil)

func (m *MockUserService) FetchUser(ctx context.Context) (*services.UserPayload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UserPayload), args.Error(1)
}

func (m *MockUserService) FetchBookmarks(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserService) FetchStreak(ctx context.Context) (*models.Streak, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Streak), args.Error(1)
}

func (m *MockUserService) FetchBadges(ctx context.Context) ([]models.Badge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Badge), args.Error(1)
}

func (m *MockUserService) UpdateBookmarks(ctx context.Context, bookmarks []string) ([]string, error) {
	args := m.Called(ctx, bookmarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
