package session

import (
	"encoding/json"
	"sync"

	"github.com/hanziflash/hanziflash/internal/logger"
	"github.com/hanziflash/hanziflash/internal/models"
	"github.com/hanziflash/hanziflash/internal/storage"
)

// Persisted keys. The repository is the only code that touches them;
// stores go through the typed accessors below.
const (
	keyToken       = "token"
	keyUser        = "user"
	keyBookmarks   = "bookmarks"
	keyGlobalLevel = "globalLevel"
	keyUserRole    = "user_role"
)

// Repository owns all reads and writes of the persisted session keys.
// A token is present if and only if the user is logged in; Invalidate and
// Clear remove the relevant keys atomically with respect to other readers.
type Repository struct {
	mu    sync.Mutex
	store storage.Store
	log   *logger.Logger
}

// NewRepository creates a session repository over the given store.
func NewRepository(store storage.Store) *Repository {
	return &Repository{
		store: store,
		log:   logger.Default().WithPrefix("session"),
	}
}

// Token returns the persisted auth token, or "" when logged out.
func (r *Repository) Token() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(keyToken)
}

// SetToken persists the auth token. An empty token removes the key.
func (r *Repository) SetToken(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token == "" {
		return r.store.Delete(keyToken)
	}
	return r.store.Set(keyToken, token)
}

// User returns the persisted profile, or nil when none is cached.
func (r *Repository) User() *models.UserProfile {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw := r.get(keyUser)
	if raw == "" {
		return nil
	}
	var u models.UserProfile
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		r.log.Warn("corrupt persisted profile, discarding: %v", err)
		return nil
	}
	return &u
}

// SetUser persists the profile. A nil profile removes the key.
func (r *Repository) SetUser(u *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u == nil {
		return r.store.Delete(keyUser)
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return r.store.Set(keyUser, string(raw))
}

// Bookmarks returns the persisted bookmark IDs in their saved order.
func (r *Repository) Bookmarks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw := r.get(keyBookmarks)
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		r.log.Warn("corrupt persisted bookmarks, discarding: %v", err)
		return nil
	}
	return ids
}

// SetBookmarks persists the bookmark list, preserving order.
func (r *Repository) SetBookmarks(ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return r.store.Set(keyBookmarks, string(raw))
}

// GlobalLevel returns the persisted level filter, or "" when unset.
func (r *Repository) GlobalLevel() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(keyGlobalLevel)
}

// SetGlobalLevel persists the level filter. An empty level removes the key.
func (r *Repository) SetGlobalLevel(level string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if level == "" {
		return r.store.Delete(keyGlobalLevel)
	}
	return r.store.Set(keyGlobalLevel, level)
}

// Role returns the cached access role, defaulting to guest.
func (r *Repository) Role() models.Role {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch role := models.Role(r.get(keyUserRole)); role {
	case models.RoleFreeUser, models.RolePaidUser:
		return role
	default:
		return models.RoleGuest
	}
}

// SetRole persists the access role.
func (r *Repository) SetRole(role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Set(keyUserRole, string(role))
}

// Invalidate removes the persisted token and user. The API client calls
// this when a protected endpoint answers 401.
func (r *Repository) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Warn("invalidating session")
	if err := r.store.Delete(keyToken); err != nil {
		r.log.Error("failed to clear token: %v", err)
	}
	if err := r.store.Delete(keyUser); err != nil {
		r.log.Error("failed to clear user: %v", err)
	}
}

// Clear removes the account-bound keys on logout. The global level is a
// device preference and survives.
func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range []string{keyToken, keyUser, keyBookmarks, keyUserRole} {
		if err := r.store.Delete(key); err != nil {
			r.log.Error("failed to clear %s: %v", key, err)
		}
	}
}

// get reads a key, logging and returning "" on storage failure so callers
// see the same behavior as an absent key.
func (r *Repository) get(key string) string {
	v, ok, err := r.store.Get(key)
	if err != nil {
		r.log.Error("failed to read %s: %v", key, err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}
