package stores

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hanziflash/hanziflash/internal/logger"
	"github.com/hanziflash/hanziflash/internal/models"
	"github.com/hanziflash/hanziflash/internal/services"
)

// FlashcardStore holds the current page of flashcards plus the cached
// topic and level catalogs. Pages are replaced wholesale on every fetch.
type FlashcardStore struct {
	mu  sync.Mutex
	svc services.FlashcardService
	log *logger.Logger

	items   []models.Flashcard
	meta    models.ListMeta
	topics  []models.TopicOption
	levels  []models.LevelOption
	loading bool
	errMsg  string

	// generation tags each FetchAll so a stale in-flight response can be
	// discarded instead of overwriting a newer one.
	generation uint64
}

// NewFlashcardStore creates a FlashcardStore over the given service.
func NewFlashcardStore(svc services.FlashcardService) *FlashcardStore {
	return &FlashcardStore{
		svc: svc,
		log: logger.Default().WithPrefix("flashcard_store"),
		meta: models.ListMeta{
			Page:       1,
			PageSize:   20,
			TotalPages: 1,
		},
	}
}

// FetchAll loads one page of flashcards and replaces items and meta.
// When calls overlap, only the most recent call's result is applied.
func (s *FlashcardStore) FetchAll(ctx context.Context, params services.FlashcardListParams) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	page, err := s.svc.FetchFlashcards(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.log.Debug("discarding stale flashcard response: gen=%d, current=%d", gen, s.generation)
		return err
	}
	s.loading = false

	if err != nil {
		s.errMsg = "Failed to load flashcards: " + err.Error()
		return err
	}

	s.items = page.Items
	s.meta = page.Meta
	return nil
}

// FetchTopicsAndLevels fills the topic and level catalogs, skipping the
// network entirely when both are already cached and fetching only the
// missing one otherwise. On failure prior cached values stay.
func (s *FlashcardStore) FetchTopicsAndLevels(ctx context.Context) {
	s.mu.Lock()
	needTopics := len(s.topics) == 0
	needLevels := len(s.levels) == 0
	s.mu.Unlock()

	if !needTopics && !needLevels {
		return
	}

	var (
		topics []models.TopicOption
		levels []models.LevelOption
	)

	g, gctx := errgroup.WithContext(ctx)
	if needTopics {
		g.Go(func() error {
			var err error
			topics, err = s.svc.FetchTopics(gctx)
			return err
		})
	}
	if needLevels {
		g.Go(func() error {
			var err error
			levels, err = s.svc.FetchLevels(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Warn("failed to load topics/levels: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if needTopics {
		s.topics = topics
	}
	if needLevels {
		s.levels = levels
	}
}

// GetByTopic returns the cached cards matching the given topic.
func (s *FlashcardStore) GetByTopic(topic string) []models.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Flashcard
	for _, card := range s.items {
		if card.Topic == topic {
			out = append(out, card)
		}
	}
	return out
}

// GetByID returns the cached card with the given ID, or nil.
func (s *FlashcardStore) GetByID(id string) *models.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, card := range s.items {
		if card.ID == id {
			c := card
			return &c
		}
	}
	return nil
}

// Items returns a copy of the current page.
func (s *FlashcardStore) Items() []models.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Flashcard, len(s.items))
	copy(out, s.items)
	return out
}

// Meta returns the current pagination metadata.
func (s *FlashcardStore) Meta() models.ListMeta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// Topics returns the cached topic catalog.
func (s *FlashcardStore) Topics() []models.TopicOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TopicOption, len(s.topics))
	copy(out, s.topics)
	return out
}

// Levels returns the cached level catalog.
func (s *FlashcardStore) Levels() []models.LevelOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LevelOption, len(s.levels))
	copy(out, s.levels)
	return out
}

// Loading reports whether a page fetch is in flight.
func (s *FlashcardStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last fetch error message, overwritten on each failure.
func (s *FlashcardStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
