package stores

import (
	"sync"

	"github.com/hanziflash/hanziflash/internal/logger"
	"github.com/hanziflash/hanziflash/internal/session"
)

// SettingsStore caches the global level filter, mirroring every change
// into persisted storage. Audio preference is in-memory only.
type SettingsStore struct {
	mu      sync.Mutex
	session *session.Repository
	log     *logger.Logger

	globalLevel  string
	audioEnabled bool
}

// NewSettingsStore creates a SettingsStore over the given repository.
func NewSettingsStore(repo *session.Repository) *SettingsStore {
	return &SettingsStore{
		session:      repo,
		log:          logger.Default().WithPrefix("settings"),
		audioEnabled: true,
	}
}

// Load reads persisted settings. Called once at startup.
func (s *SettingsStore) Load() {
	level := s.session.GlobalLevel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalLevel = level
}

// SetGlobalLevel updates the level filter and mirrors it to storage;
// an empty level clears the persisted key.
func (s *SettingsStore) SetGlobalLevel(level string) {
	s.mu.Lock()
	s.globalLevel = level
	s.mu.Unlock()

	if err := s.session.SetGlobalLevel(level); err != nil {
		s.log.Error("failed to persist global level: %v", err)
	}
}

// GlobalLevel returns the current level filter, or "" when unset.
func (s *SettingsStore) GlobalLevel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.globalLevel
}

// HasGlobalLevel reports whether a level filter is set.
func (s *SettingsStore) HasGlobalLevel() bool {
	return s.GlobalLevel() != ""
}

// AudioEnabled reports whether card audio playback is on.
func (s *SettingsStore) AudioEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audioEnabled
}

// SetAudioEnabled toggles card audio playback.
func (s *SettingsStore) SetAudioEnabled(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioEnabled = v
}
