package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"math-roulette/internal/domain"

	"go.uber.org/zap"
)

// RepoContentsOptions - настройки хранилища в файле репозитория GitHub.
type RepoContentsOptions struct {
	BaseURL string
	Token   string
	Repo    string // owner/name
	Path    string
	Branch  string
	Timeout time.Duration
}

type contentsResponse struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type contentsUpdate struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

// RepoContentsStore хранит документ файлом репозитория. Обновление требует SHA
// текущей версии файла (optimistic concurrency).
type RepoContentsStore struct {
	client *githubClient
	repo   string
	path   string
	branch string
	logger *zap.Logger
	now    func() time.Time
}

func NewRepoContentsStore(opts RepoContentsOptions, logger *zap.Logger) *RepoContentsStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Path == "" {
		opts.Path = "public/gamestate.json"
	}
	named := logger.Named("RepoContentsStore")
	return &RepoContentsStore{
		client: newGitHubClient(opts.BaseURL, opts.Token, opts.Timeout, named),
		repo:   strings.Trim(opts.Repo, "/"),
		path:   strings.TrimPrefix(opts.Path, "/"),
		branch: opts.Branch,
		logger: named,
		now:    time.Now,
	}
}

func (s *RepoContentsStore) Backend() string { return "repo" }

func (s *RepoContentsStore) Configured() bool { return s.repo != "" }

// EnsureExists не умеет создавать репозиторий; отсутствующий файл создаст первый Save.
func (s *RepoContentsStore) EnsureExists(context.Context) (string, error) {
	if s.repo == "" {
		return "", fmt.Errorf("%w: GITHUB_REPO is empty", domain.ErrStoreNotConfigured)
	}
	return s.repo, nil
}

func (s *RepoContentsStore) contentsPath() string {
	var escaped []string
	for _, seg := range strings.Split(s.path, "/") {
		escaped = append(escaped, url.PathEscape(seg))
	}
	return fmt.Sprintf("/repos/%s/contents/%s", s.repo, strings.Join(escaped, "/"))
}

func (s *RepoContentsStore) fetch(ctx context.Context) (*contentsResponse, error) {
	path := s.contentsPath()
	if s.branch != "" {
		path += "?ref=" + url.QueryEscape(s.branch)
	}
	var file contentsResponse
	if err := s.client.do(ctx, http.MethodGet, path, nil, &file); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s in %s", domain.ErrDocumentNotFound, s.path, s.repo)
		}
		return nil, fmt.Errorf("failed to fetch repository file: %w", err)
	}
	return &file, nil
}

// Load читает и декодирует base64-содержимое файла.
func (s *RepoContentsStore) Load(ctx context.Context) (doc *domain.Document, err error) {
	defer observe(s.Backend(), "load", time.Now(), &err)

	if s.repo == "" {
		return nil, domain.ErrStoreNotConfigured
	}
	file, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	// GitHub переносит base64 по 60 символов.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(file.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to decode repository file content: %w", err)
	}
	return domain.DecodeDocument(raw)
}

// Revision возвращает SHA текущего файла; "" если файла еще нет.
func (s *RepoContentsStore) Revision(ctx context.Context) (sha string, err error) {
	defer observe(s.Backend(), "revision", time.Now(), &err)

	if s.repo == "" {
		return "", domain.ErrStoreNotConfigured
	}
	file, err := s.fetch(ctx)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return file.SHA, nil
}

// Save коммитит новый документ. Устаревший SHA отклоняется GitHub (409).
func (s *RepoContentsStore) Save(ctx context.Context, doc *domain.Document, revision string) (err error) {
	defer observe(s.Backend(), "save", time.Now(), &err)

	if s.repo == "" {
		return domain.ErrStoreNotConfigured
	}
	content, err := doc.Encode()
	if err != nil {
		return err
	}
	update := contentsUpdate{
		Message: fmt.Sprintf("[BOT] Update game state: %s", s.now().UTC().Format(time.RFC3339)),
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     revision,
		Branch:  s.branch,
	}
	if err := s.client.do(ctx, http.MethodPut, s.contentsPath(), update, nil); err != nil {
		return fmt.Errorf("failed to commit game state: %w", err)
	}
	s.logger.Info("Game state committed", zap.String("repo", s.repo), zap.String("path", s.path))
	return nil
}
