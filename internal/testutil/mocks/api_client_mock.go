package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/hanziflash/hanziflash/internal/api"
)

// MockAPIClient is a mock implementation of api.ClientInterface
type MockAPIClient struct {
	mock.Mock
}

var _ api.ClientInterface = (*MockAPIClient)(nil)

func (m *MockAPIClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	args := m.Called(ctx, path, query, out)
	return args.Error(0)
}

func (m *MockAPIClient) Post(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body, out)
	return args.Error(0)
}

func (m *MockAPIClient) Put(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body, out)
	return args.Error(0)
}
