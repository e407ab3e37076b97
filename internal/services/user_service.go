package services

import (
	"context"

	"github.com/hanziflash/hanziflash/internal/api"
	"github.com/hanziflash/hanziflash/internal/models"
)

// UserPayload is the full profile response, including the optional
// session metadata some deployments inline into /user.
type UserPayload struct {
	models.UserProfile
	Streak    *models.Streak `json:"streak,omitempty"`
	Bookmarks []string       `json:"bookmarks,omitempty"`
	Badges    []models.Badge `json:"badges,omitempty"`
}

// UserService translates user and bookmark calls into API requests.
type UserService interface {
	FetchUser(ctx context.Context) (*UserPayload, error)
	FetchBookmarks(ctx context.Context) ([]string, error)
	FetchStreak(ctx context.Context) (*models.Streak, error)
	FetchBadges(ctx context.Context) ([]models.Badge, error)
	UpdateBookmarks(ctx context.Context, bookmarks []string) ([]string, error)
}

type userService struct {
	client api.ClientInterface
}

// NewUserService creates a new UserService
func NewUserService(client api.ClientInterface) UserService {
	return &userService{client: client}
}

func (s *userService) FetchUser(ctx context.Context) (*UserPayload, error) {
	var payload UserPayload
	if err := s.client.Get(ctx, "/user", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

type bookmarksEnvelope struct {
	Data struct {
		Bookmarks []string `json:"bookmarks"`
	} `json:"data"`
}

func (s *userService) FetchBookmarks(ctx context.Context) ([]string, error) {
	var payload bookmarksEnvelope
	if err := s.client.Get(ctx, "/bookmarks", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data.Bookmarks, nil
}

func (s *userService) FetchStreak(ctx context.Context) (*models.Streak, error) {
	var streak models.Streak
	if err := s.client.Get(ctx, "/streak", nil, &streak); err != nil {
		return nil, err
	}
	return &streak, nil
}

func (s *userService) FetchBadges(ctx context.Context) ([]models.Badge, error) {
	var payload struct {
		Data []models.Badge `json:"data"`
	}
	if err := s.client.Get(ctx, "/badges", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (s *userService) UpdateBookmarks(ctx context.Context, bookmarks []string) ([]string, error) {
	if bookmarks == nil {
		bookmarks = []string{}
	}
	body := map[string][]string{"bookmarks": bookmarks}

	var payload bookmarksEnvelope
	if err := s.client.Put(ctx, "/bookmarks", body, &payload); err != nil {
		return nil, err
	}
	return payload.Data.Bookmarks, nil
}
