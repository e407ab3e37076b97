package stores

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hanziflash/hanziflash/internal/logger"
	"github.com/hanziflash/hanziflash/internal/models"
	"github.com/hanziflash/hanziflash/internal/services"
	"github.com/hanziflash/hanziflash/internal/session"
)

// UserStore owns the in-memory session entity: profile, bookmarks, streak
// and badges. The auth token itself lives in the session repository, which
// is the single owner of all persisted keys. Network calls run outside the
// state lock; overlapping calls are serialized only at the apply step.
type UserStore struct {
	mu      sync.Mutex
	auth    services.AuthService
	users   services.UserService
	session *session.Repository
	log     *logger.Logger

	user      *models.UserProfile
	bookmarks []string
	streak    *models.Streak
	badges    []models.Badge
	loading   bool
	errMsg    string
}

// NewUserStore creates a UserStore over the given services and repository.
func NewUserStore(auth services.AuthService, users services.UserService, repo *session.Repository) *UserStore {
	return &UserStore{
		auth:    auth,
		users:   users,
		session: repo,
		log:     logger.Default().WithPrefix("user_store"),
	}
}

// LoadSession rehydrates the in-memory state from persisted storage.
// Called once at startup.
func (s *UserStore) LoadSession() {
	user := s.session.User()
	bookmarks := s.session.Bookmarks()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.bookmarks = bookmarks
	if user != nil {
		s.log.Debug("session rehydrated for %s", user.Email)
	}
}

// Login authenticates, stores the token and user, then fetches the full
// profile and persists the session. On failure the error message is
// recorded and the error re-raised; partially-applied state is kept.
func (s *UserStore) Login(ctx context.Context, email, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.setErr("Login failed: " + err.Error())
		return err
	}

	// The token must be persisted before the profile fetch: the request
	// interceptor reads it from the session repository.
	if err := s.session.SetToken(res.Token); err != nil {
		s.setErr("Login failed: " + err.Error())
		return err
	}
	if res.Role != "" {
		if err := s.session.SetRole(res.Role); err != nil {
			s.log.Warn("failed to persist role: %v", err)
		}
	}

	s.mu.Lock()
	s.user = &res.User
	s.mu.Unlock()

	s.FetchProfile(ctx)
	s.persist()
	return nil
}

// Logout always clears local and persisted session state, even when the
// remote logout call fails.
func (s *UserStore) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn("remote logout failed, clearing session anyway: %v", err)
	}

	s.mu.Lock()
	s.user = nil
	s.bookmarks = nil
	s.streak = nil
	s.badges = nil
	s.errMsg = ""
	s.mu.Unlock()

	s.session.Clear()
}

// FetchProfile replaces the cached profile wholesale with server data.
// Failures are swallowed; the previous profile stays.
func (s *UserStore) FetchProfile(ctx context.Context) {
	u, err := s.users.FetchUser(ctx)
	if err != nil {
		s.log.Debug("profile fetch failed, keeping cached profile: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &models.UserProfile{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
	if u.Streak != nil {
		s.streak = u.Streak
	}
	if u.Bookmarks != nil {
		s.bookmarks = u.Bookmarks
	}
	if u.Badges != nil {
		s.badges = u.Badges
	}
}

// RefreshMeta fetches bookmarks, streak and badges concurrently. The batch
// is all-or-nothing: if any fetch fails, no result is applied and previous
// cached values stay.
func (s *UserStore) RefreshMeta(ctx context.Context) {
	var (
		bookmarks []string
		streak    *models.Streak
		badges    []models.Badge
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookmarks, err = s.users.FetchBookmarks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		streak, err = s.users.FetchStreak(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		badges, err = s.users.FetchBadges(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Warn("meta refresh aborted: %v", err)
		return
	}

	s.mu.Lock()
	s.bookmarks = bookmarks
	s.streak = streak
	s.badges = badges
	s.mu.Unlock()

	s.persist()
}

// ToggleBookmark optimistically adds or removes the card locally, then
// confirms with the server. On failure the optimistic change is reverted
// and the error propagated.
func (s *UserStore) ToggleBookmark(ctx context.Context, cardID string) error {
	s.mu.Lock()
	previous := s.bookmarks
	s.bookmarks = toggled(previous, cardID)
	proposed := s.bookmarks
	s.mu.Unlock()

	confirmed, err := s.users.UpdateBookmarks(ctx, proposed)
	if err != nil {
		s.log.Warn("bookmark update rejected, reverting: %v", err)
		s.mu.Lock()
		s.bookmarks = previous
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.bookmarks = confirmed
	s.mu.Unlock()

	s.persist()
	return nil
}

// toggled returns a new list with cardID appended if absent, or removed
// if present. Order of the remaining entries is preserved.
func toggled(ids []string, cardID string) []string {
	out := make([]string, 0, len(ids)+1)
	found := false
	for _, id := range ids {
		if id == cardID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, cardID)
	}
	return out
}

func (s *UserStore) persist() {
	s.mu.Lock()
	user := s.user
	bookmarks := s.bookmarks
	s.mu.Unlock()

	if err := s.session.SetUser(user); err != nil {
		s.log.Error("failed to persist profile: %v", err)
	}
	if err := s.session.SetBookmarks(bookmarks); err != nil {
		s.log.Error("failed to persist bookmarks: %v", err)
	}
}

func (s *UserStore) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
	if v {
		s.errMsg = ""
	}
}

func (s *UserStore) setErr(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

// LoggedIn reports whether a token is present.
func (s *UserStore) LoggedIn() bool {
	return s.session.Token() != ""
}

// User returns the cached profile, or nil.
func (s *UserStore) User() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Bookmarks returns a copy of the cached bookmark list.
func (s *UserStore) Bookmarks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// IsBookmarked reports whether cardID is in the cached bookmark list.
func (s *UserStore) IsBookmarked(cardID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.bookmarks {
		if id == cardID {
			return true
		}
	}
	return false
}

// Streak returns the cached streak, or nil.
func (s *UserStore) Streak() *models.Streak {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streak == nil {
		return nil
	}
	st := *s.streak
	return &st
}

// Badges returns the cached badge list.
func (s *UserStore) Badges() []models.Badge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Badge, len(s.badges))
	copy(out, s.badges)
	return out
}

// Loading reports whether a login is in flight.
func (s *UserStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded error message, overwritten on each
// failure rather than accumulated.
func (s *UserStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
