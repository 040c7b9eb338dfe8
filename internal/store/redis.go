package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"math-roulette/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisOptions - настройки хранилища в Redis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
	Timeout  time.Duration
}

// RedisStore хранит документ строкой под одним ключом. Ключ - идентификатор хранилища.
type RedisStore struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

func NewRedisStore(opts RedisOptions, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})
	return NewRedisStoreWithClient(client, opts.Key, logger)
}

// NewRedisStoreWithClient uses an existing client.
func NewRedisStoreWithClient(client *redis.Client, key string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, key: key, logger: logger.Named("RedisStore")}
}

func (s *RedisStore) Backend() string { return "redis" }

func (s *RedisStore) Configured() bool { return s.key != "" }

// EnsureExists кладет начальный документ, если ключа еще нет (SETNX).
func (s *RedisStore) EnsureExists(ctx context.Context) (key string, err error) {
	if s.key == "" {
		return "", fmt.Errorf("%w: REDIS_KEY is empty", domain.ErrStoreNotConfigured)
	}
	defer observe(s.Backend(), "provision", time.Now(), &err)

	content, err := domain.DefaultDocument().Encode()
	if err != nil {
		return "", err
	}
	created, err := s.client.SetNX(ctx, s.key, content, 0).Result()
	if err != nil {
		return "", fmt.Errorf("failed to provision redis key %s: %w", s.key, err)
	}
	if created {
		s.logger.Info("Provisioned game state key", zap.String("key", s.key))
	}
	return s.key, nil
}

func (s *RedisStore) Load(ctx context.Context) (doc *domain.Document, err error) {
	defer observe(s.Backend(), "load", time.Now(), &err)

	if s.key == "" {
		return nil, domain.ErrStoreNotConfigured
	}
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: redis key %s", domain.ErrDocumentNotFound, s.key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read redis key %s: %w", s.key, err)
	}
	return domain.DecodeDocument(data)
}

// Revision всегда пустая: SET перезаписывает ключ.
func (s *RedisStore) Revision(context.Context) (string, error) { return "", nil }

func (s *RedisStore) Save(ctx context.Context, doc *domain.Document, _ string) (err error) {
	defer observe(s.Backend(), "save", time.Now(), &err)

	if s.key == "" {
		return domain.ErrStoreNotConfigured
	}
	content, err := doc.Encode()
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, content, 0).Err(); err != nil {
		return fmt.Errorf("failed to write redis key %s: %w", s.key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error { return s.client.Close() }
