package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/hanziflash/hanziflash/internal/api"
	"github.com/hanziflash/hanziflash/internal/logger"
	"github.com/hanziflash/hanziflash/internal/models"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// FlashcardListParams filters a flashcard listing. Zero values mean
// "unspecified" and fall back to the defaults above.
type FlashcardListParams struct {
	Topic    string
	Level    string
	Page     int
	PageSize int
}

// FlashcardService translates flashcard domain calls into API requests.
// It is stateless: no retries, no caching, errors propagate unchanged.
type FlashcardService interface {
	FetchFlashcards(ctx context.Context, params FlashcardListParams) (*models.FlashcardPage, error)
	FetchTopics(ctx context.Context) ([]models.TopicOption, error)
	FetchLevels(ctx context.Context) ([]models.LevelOption, error)
}

type flashcardService struct {
	client api.ClientInterface
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(client api.ClientInterface) FlashcardService {
	return &flashcardService{client: client}
}

// listMetaPayload mirrors the wire shape of listing metadata. Pointer
// fields distinguish "absent" from zero so defaults can be applied.
type listMetaPayload struct {
	Page       *int                 `json:"page"`
	PageSize   *int                 `json:"pageSize"`
	Total      *int                 `json:"total"`
	TotalPages *int                 `json:"totalPages"`
	Topics     []models.TopicOption `json:"topics"`
	Levels     []models.LevelOption `json:"levels"`
}

func (s *flashcardService) FetchFlashcards(ctx context.Context, params FlashcardListParams) (*models.FlashcardPage, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_svc")

	page := params.Page
	if page <= 0 {
		page = defaultPage
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))
	if params.Topic != "" {
		query.Set("topic", params.Topic)
	}
	if params.Level != "" {
		query.Set("level", params.Level)
	}

	var payload struct {
		Data []models.Flashcard `json:"data"`
		Meta *listMetaPayload   `json:"meta"`
	}
	if err := s.client.Get(ctx, "/flashcards", query, &payload); err != nil {
		return nil, err
	}

	items := payload.Data
	if items == nil {
		items = []models.Flashcard{}
	}

	meta := normalizeListMeta(payload.Meta, page, pageSize, len(items))
	log.Debug("fetched %d flashcards: page=%d/%d", len(items), meta.Page, meta.TotalPages)

	return &models.FlashcardPage{Items: items, Meta: meta}, nil
}

// normalizeListMeta fills in metadata the server omitted: total defaults
// to the returned item count, totalPages to ceil(total/pageSize) with a
// floor of 1.
func normalizeListMeta(p *listMetaPayload, page, pageSize, itemCount int) models.ListMeta {
	if p == nil {
		p = &listMetaPayload{}
	}

	meta := models.ListMeta{
		Page:     page,
		PageSize: pageSize,
		Topics:   p.Topics,
		Levels:   p.Levels,
	}
	if p.Page != nil {
		meta.Page = *p.Page
	}
	if p.PageSize != nil {
		meta.PageSize = *p.PageSize
	}

	meta.Total = itemCount
	if p.Total != nil {
		meta.Total = *p.Total
	}

	if p.TotalPages != nil {
		meta.TotalPages = *p.TotalPages
	} else {
		meta.TotalPages = (meta.Total + pageSize - 1) / pageSize
		if meta.TotalPages < 1 {
			meta.TotalPages = 1
		}
	}
	return meta
}

func (s *flashcardService) FetchTopics(ctx context.Context) ([]models.TopicOption, error) {
	var payload struct {
		Data []models.TopicOption `json:"data"`
	}
	if err := s.client.Get(ctx, "/topics", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (s *flashcardService) FetchLevels(ctx context.Context) ([]models.LevelOption, error) {
	var payload struct {
		Data []models.LevelOption `json:"data"`
	}
	if err := s.client.Get(ctx, "/levels", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}
