package api

import (
	"context"
	"net/url"
)

// ClientInterface defines the HTTP verbs the domain services use.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
