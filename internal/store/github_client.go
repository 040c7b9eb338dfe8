package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"math-roulette/internal/domain"

	"go.uber.org/zap"
)

// StatusError - неуспешный ответ GitHub API. errors.Is(err, domain.ErrUpstream) == true.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GitHub API error: %s %s: %s", e.Method, e.URL, e.Status)
}

func (e *StatusError) Unwrap() error { return domain.ErrUpstream }

// githubClient - минимальный JSON-клиент GitHub REST API.
type githubClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func newGitHubClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *githubClient {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &githubClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// do sends body (if any) as JSON and decodes a 2xx response into out (if any).
func (c *githubClient) do(ctx context.Context, method, path string, body, out any) error {
	url := c.baseURL + path
	log := c.logger.With(zap.String("method", method), zap.String("url", url))

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("internal error marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("internal error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "math-roulette")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	log.Debug("Sending GitHub API request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to communicate with GitHub API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read GitHub API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("Received non-OK status from GitHub API", zap.Int("status", resp.StatusCode), zap.ByteString("body", respBody))
		return &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("invalid GitHub API response format: %w", err)
	}
	return nil
}
