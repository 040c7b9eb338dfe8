package service

import (
	"context"
	"fmt"
	"strings"

	"math-roulette/internal/domain"
	"math-roulette/internal/store"

	"go.uber.org/zap"
)

// GameService - чтение и переходы документа состояния игры.
type GameService interface {
	// GetState returns the current document, or the default one when no store is configured.
	GetState(ctx context.Context) (*domain.Document, error)
	// ApplyTransition applies the request's action and persists the resulting document.
	ApplyTransition(ctx context.Context, req *domain.UpdateRequest) error
}

type gameServiceImpl struct {
	store  store.DocumentStore
	ai     AIClient
	params GenerationParams
	logger *zap.Logger
}

// NewGameService создает GameService.
func NewGameService(documentStore store.DocumentStore, aiClient AIClient, params GenerationParams, logger *zap.Logger) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		store:  documentStore,
		ai:     aiClient,
		params: params,
		logger: logger.Named("GameService"),
	}
}

func (s *gameServiceImpl) GetState(ctx context.Context) (*domain.Document, error) {
	if !s.store.Configured() {
		s.logger.Debug("Store is not configured, returning default game state")
		return domain.DefaultDocument(), nil
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching game state from %s: %w", s.store.Backend(), err)
	}
	return doc, nil
}

func (s *gameServiceImpl) ApplyTransition(ctx context.Context, req *domain.UpdateRequest) (err error) {
	log := s.logger.With(zap.String("action", string(req.Action)))
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		transitionsTotal.WithLabelValues(actionLabel(string(req.Action)), status).Inc()
	}()

	storeID, err := s.store.EnsureExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve %s store: %w", s.store.Backend(), err)
	}
	log = log.With(zap.String("storeID", storeID))

	revision, err := s.store.Revision(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current revision: %w", err)
	}

	doc := req.Document()
	switch req.Action {
	case domain.ActionStartGame:
		err = s.startGame(ctx, doc)
	case domain.ActionGenerateQuestion:
		err = s.generateQuestion(ctx, doc, req.Category)
	default:
		// endGame, reset, updateParticipants и неизвестные действия сохраняются как есть.
	}
	if err != nil {
		return err
	}

	if err := s.store.Save(ctx, doc, revision); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}
	log.Info("Game state updated", zap.String("status", string(doc.GameState.Status)))
	return nil
}

func (s *gameServiceImpl) startGame(ctx context.Context, doc *domain.Document) error {
	if len(doc.RouletteCategories) == 0 {
		text, _, err := s.ai.GenerateText(ctx, buildCategoriesPrompt(doc.Topic), s.params)
		if err != nil {
			return fmt.Errorf("failed to generate categories: %w", err)
		}
		categories, err := ParseCategories(text)
		if err != nil {
			s.logger.Warn("Unparsable categories response", zap.String("response", text))
			return err
		}
		doc.RouletteCategories = categories
	}
	doc.Colors = append([]string(nil), domain.Palette...)
	return nil
}

// generateQuestion: selection - выбранный текст вопроса (поле category запроса).
func (s *gameServiceImpl) generateQuestion(ctx context.Context, doc *domain.Document, selection string) error {
	if len(doc.ManualEntries) > 0 {
		if entry, ok := doc.LookupManualEntry(selection); ok {
			doc.CurrentQuestion = formatManualQuestion(entry.Question, entry.Answer)
		} else {
			doc.CurrentQuestion = selection
		}
		return nil
	}

	text, _, err := s.ai.GenerateText(ctx, buildQuestionPrompt(selection), s.params)
	if err != nil {
		return fmt.Errorf("failed to generate question: %w", err)
	}
	doc.CurrentQuestion = strings.TrimSpace(text)
	return nil
}
