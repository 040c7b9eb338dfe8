package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"math-roulette/internal/domain"

	"go.uber.org/zap"
)

const gistDescription = "math roulette game state"

// GistOptions - настройки хранилища на GitHub Gist.
type GistOptions struct {
	BaseURL  string
	Token    string
	GistID   string
	Filename string
	Public   bool
	Timeout  time.Duration
}

type gistFile struct {
	Content string `json:"content"`
}

type gistPayload struct {
	Description string              `json:"description,omitempty"`
	Public      *bool               `json:"public,omitempty"`
	Files       map[string]gistFile `json:"files"`
}

type gistResponse struct {
	ID    string               `json:"id"`
	Files map[string]*gistFile `json:"files"`
}

// GistStore хранит документ файлом внутри gist. Запись - PATCH по идентификатору,
// токен ревизии не нужен.
type GistStore struct {
	client   *githubClient
	filename string
	public   bool
	logger   *zap.Logger

	mu     sync.RWMutex
	gistID string
}

// NewGistStore создает GistStore. Пустой GistID допустим.
func NewGistStore(opts GistOptions, logger *zap.Logger) *GistStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Filename == "" {
		opts.Filename = "gamestate.json"
	}
	named := logger.Named("GistStore")
	return &GistStore{
		client:   newGitHubClient(opts.BaseURL, opts.Token, opts.Timeout, named),
		filename: opts.Filename,
		public:   opts.Public,
		logger:   named,
		gistID:   opts.GistID,
	}
}

func (s *GistStore) Backend() string { return "gist" }

func (s *GistStore) id() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gistID
}

func (s *GistStore) Configured() bool { return s.id() != "" }

// EnsureExists создает gist с начальным документом, если GIST_ID не задан.
func (s *GistStore) EnsureExists(ctx context.Context) (id string, err error) {
	if id := s.id(); id != "" {
		return id, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gistID != "" {
		return s.gistID, nil
	}

	defer observe(s.Backend(), "provision", time.Now(), &err)

	content, err := domain.DefaultDocument().Encode()
	if err != nil {
		return "", err
	}
	public := s.public
	payload := gistPayload{
		Description: gistDescription,
		Public:      &public,
		Files:       map[string]gistFile{s.filename: {Content: string(content)}},
	}
	var created gistResponse
	if err := s.client.do(ctx, http.MethodPost, "/gists", payload, &created); err != nil {
		return "", fmt.Errorf("failed to create gist: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("failed to create gist: empty id in response")
	}

	s.gistID = created.ID
	// Другого способа сообщить идентификатор оператору нет.
	s.logger.Warn("Provisioned a new gist for the game state, set GIST_ID to keep using it",
		zap.String("gistID", created.ID),
		zap.String("filename", s.filename),
	)
	return created.ID, nil
}

// Load читает файл состояния из gist.
func (s *GistStore) Load(ctx context.Context) (doc *domain.Document, err error) {
	defer observe(s.Backend(), "load", time.Now(), &err)

	id := s.id()
	if id == "" {
		return nil, domain.ErrStoreNotConfigured
	}

	var gist gistResponse
	if err := s.client.do(ctx, http.MethodGet, "/gists/"+url.PathEscape(id), nil, &gist); err != nil {
		return nil, fmt.Errorf("failed to fetch gist: %w", err)
	}

	file, ok := gist.Files[s.filename]
	if !ok || file == nil || file.Content == "" {
		return nil, fmt.Errorf("%w: file %s not found in gist", domain.ErrDocumentNotFound, s.filename)
	}
	return domain.DecodeDocument([]byte(file.Content))
}

// Revision всегда пустая: gist перезаписывается по идентификатору.
func (s *GistStore) Revision(context.Context) (string, error) { return "", nil }

// Save перезаписывает файл состояния целиком.
func (s *GistStore) Save(ctx context.Context, doc *domain.Document, _ string) (err error) {
	defer observe(s.Backend(), "save", time.Now(), &err)

	id := s.id()
	if id == "" {
		return domain.ErrStoreNotConfigured
	}
	content, err := doc.Encode()
	if err != nil {
		return err
	}
	payload := gistPayload{Files: map[string]gistFile{s.filename: {Content: string(content)}}}
	if err := s.client.do(ctx, http.MethodPatch, "/gists/"+url.PathEscape(id), payload, nil); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			s.logger.Error("Gist update rejected", zap.String("gistID", id), zap.Int("status", statusErr.StatusCode))
		}
		return fmt.Errorf("failed to update gist: %w", err)
	}
	s.logger.Info("Game state saved", zap.String("gistID", id))
	return nil
}
