package services

import (
	"context"

	"github.com/hanziflash/hanziflash/internal/api"
	"github.com/hanziflash/hanziflash/internal/logger"
	"github.com/hanziflash/hanziflash/internal/models"
)

// LoginResult is the credential pair returned by a successful login. Role
// is optional; servers that omit it leave the cached role untouched.
type LoginResult struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
	Role  models.Role        `json:"role,omitempty"`
}

// AuthService translates authentication calls into API requests.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client api.ClientInterface
}

// NewAuthService creates a new AuthService
func NewAuthService(client api.ClientInterface) AuthService {
	return &authService{client: client}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContext(ctx).WithPrefix("auth_svc")

	body := map[string]string{"email": email, "password": password}
	var res LoginResult
	if err := s.client.Post(ctx, "/auth/login", body, &res); err != nil {
		log.Error("login failed: %v", err)
		return nil, err
	}

	log.Info("logged in as %s", res.User.Email)
	return &res, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.client.Post(ctx, "/auth/logout", map[string]string{}, nil)
}
