package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/hanziflash/hanziflash/internal/logger"
	"github.com/hanziflash/hanziflash/internal/models"
)

// Server is an in-memory implementation of the flashcard API, used for
// local development and end-to-end exercising of the client. It issues
// opaque tokens on login and enforces bearer auth on protected routes.
type Server struct {
	log     *logger.Logger
	limiter *rate.Limiter

	mu        sync.Mutex
	tokens    map[string]string // token -> user ID
	bookmarks map[string][]string

	users   map[string]fixtureUser
	cards   []models.Flashcard
	topics  []models.TopicOption
	levels  []models.LevelOption
	streak  models.Streak
	badges  []models.Badge
}

type fixtureUser struct {
	profile  models.UserProfile
	password string
	role     models.Role
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit makes the server answer 429 with a Retry-After header
// once the given request rate is exceeded. Zero disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// New creates a Server preloaded with the fixture catalog.
func New(opts ...Option) *Server {
	s := &Server{
		log:       logger.Default().WithPrefix("mockapi"),
		tokens:    make(map[string]string),
		bookmarks: make(map[string][]string),
		users:     fixtureUsers(),
		cards:     fixtureCards(),
		topics:    fixtureTopics(),
		levels:    fixtureLevels(),
		streak:    models.Streak{Current: 4, Best: 12, LastUpdated: "2026-08-29"},
		badges:    fixtureBadges(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.loggingMiddleware)
	r.Use(s.rateLimitMiddleware)

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)
	r.Get("/flashcards", s.handleFlashcards)
	r.Get("/topics", s.handleTopics)
	r.Get("/levels", s.handleLevels)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/user", s.handleUser)
		r.Get("/bookmarks", s.handleGetBookmarks)
		r.Put("/bookmarks", s.handlePutBookmarks)
		r.Get("/streak", s.handleStreak)
		r.Get("/badges", s.handleBadges)
	})

	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limited"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
			return
		}

		s.mu.Lock()
		userID, valid := s.tokens[token]
		s.mu.Unlock()
		if !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		r.Header.Set("X-User-ID", userID)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	u, ok := s.users[creds.Email]
	if !ok || u.password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = u.profile.ID
	s.mu.Unlock()

	s.log.Info("issued token for %s", creds.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  u.profile,
		"role":  u.role,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, map[string]string{})
}

func (s *Server) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topic := q.Get("topic")
	level := q.Get("level")
	page := intParam(q.Get("page"), 1)
	pageSize := intParam(q.Get("pageSize"), 20)

	var filtered []models.Flashcard
	for _, card := range s.cards {
		if topic != "" && card.Topic != topic {
			continue
		}
		if level != "" && card.Level != level {
			continue
		}
		filtered = append(filtered, card)
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	items := filtered[start:end]
	if items == nil {
		items = []models.Flashcard{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":       page,
			"pageSize":   pageSize,
			"total":      total,
			"totalPages": totalPages,
			"topics":     s.topics,
			"levels":     s.levels,
		},
	})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": s.topics})
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": s.levels})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	for _, u := range s.users {
		if u.profile.ID == userID {
			s.mu.Lock()
			bookmarks := s.bookmarks[userID]
			s.mu.Unlock()

			writeJSON(w, http.StatusOK, map[string]any{
				"id":        u.profile.ID,
				"name":      u.profile.Name,
				"email":     u.profile.Email,
				"avatar":    u.profile.Avatar,
				"streak":    s.streak,
				"bookmarks": bookmarksOrEmpty(bookmarks),
				"badges":    s.badges,
			})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
}

func (s *Server) handleGetBookmarks(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	s.mu.Lock()
	bookmarks := bookmarksOrEmpty(s.bookmarks[userID])
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{"bookmarks": bookmarks},
	})
}

func (s *Server) handlePutBookmarks(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Bookmarks []string `json:"bookmarks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	userID := r.Header.Get("X-User-ID")
	s.mu.Lock()
	s.bookmarks[userID] = body.Bookmarks
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{"bookmarks": bookmarksOrEmpty(body.Bookmarks)},
	})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.streak)
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": s.badges})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func bookmarksOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
