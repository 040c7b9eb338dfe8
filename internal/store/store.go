package store

import (
	"context"
	"fmt"

	"math-roulette/internal/config"
	"math-roulette/internal/domain"

	"go.uber.org/zap"
)

// DocumentStore - удалённое хранилище единственного документа состояния.
type DocumentStore interface {
	// Backend returns the backend name for logs and metrics.
	Backend() string
	// Configured reports whether a store identifier is known.
	Configured() bool
	// EnsureExists resolves the store identifier, provisioning the document when the
	// backend supports it. Repeated calls return the same identifier.
	EnsureExists(ctx context.Context) (string, error)
	// Load reads and decodes the current document.
	Load(ctx context.Context) (*domain.Document, error)
	// Revision returns the optimistic-concurrency token required by Save,
	// or "" when the backend overwrites by identifier.
	Revision(ctx context.Context) (string, error)
	// Save replaces the whole document.
	Save(ctx context.Context, doc *domain.Document, revision string) error
}

// New создает хранилище по STORE_BACKEND.
func New(cfg *config.Config, logger *zap.Logger) (DocumentStore, error) {
	switch cfg.StoreBackend {
	case config.BackendGist, "":
		return NewGistStore(GistOptions{
			BaseURL:  cfg.GitHubAPIURL,
			Token:    cfg.GitHubToken,
			GistID:   cfg.GistID,
			Filename: cfg.GistFilename,
			Public:   cfg.GistPublic,
			Timeout:  cfg.StoreTimeout,
		}, logger), nil
	case config.BackendRepo:
		return NewRepoContentsStore(RepoContentsOptions{
			BaseURL: cfg.GitHubAPIURL,
			Token:   cfg.GitHubToken,
			Repo:    cfg.GitHubRepo,
			Path:    cfg.GitHubFilePath,
			Branch:  cfg.GitHubBranch,
			Timeout: cfg.StoreTimeout,
		}, logger), nil
	case config.BackendRedis:
		return NewRedisStore(RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisKey,
			Timeout:  cfg.StoreTimeout,
		}, logger), nil
	default:
		return nil, fmt.Errorf("%w: '%s'", domain.ErrUnknownBackend, cfg.StoreBackend)
	}
}
