package domain

import "errors"

var (
	// ErrStoreNotConfigured - хранилище не настроено и не может быть создано автоматически.
	ErrStoreNotConfigured = errors.New("document store is not configured")
	// ErrDocumentNotFound - в хранилище нет файла состояния.
	ErrDocumentNotFound = errors.New("game state document not found")
	// ErrUpstream - внешний API вернул неуспешный статус.
	ErrUpstream = errors.New("upstream request failed")
	// ErrInvalidRequest - тело запроса не является документом состояния.
	ErrInvalidRequest = errors.New("invalid request body")
	// ErrUnknownBackend - STORE_BACKEND не совпадает ни с одним хранилищем.
	ErrUnknownBackend = errors.New("unknown store backend")
)
