package handler

import (
	"errors"
	"io"
	"net/http"

	"math-roulette/internal/domain"
	"math-roulette/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// StatusResponse - ответ эндпоинта updateState.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// APIError - ответ об ошибке эндпоинта getGameState.
type APIError struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// GameHandler обрабатывает HTTP запросы рулетки.
type GameHandler struct {
	service service.GameService
	logger  *zap.Logger
}

// NewGameHandler создает новый GameHandler.
func NewGameHandler(s service.GameService, logger *zap.Logger) *GameHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameHandler{service: s, logger: logger.Named("GameHandler")}
}

// RegisterRoutes регистрирует маршруты. Пути совпадают с serverless-функциями фронтенда.
func (h *GameHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/api/getGameState", h.GetGameState)
	router.HEAD("/api/getGameState", h.GetGameState)
	router.Any("/api/updateState", h.UpdateState)
}

// GetGameState отдает текущий документ состояния.
func (h *GameHandler) GetGameState(c *gin.Context) {
	doc, err := h.service.GetState(c.Request.Context())
	if err != nil {
		h.logger.Error("Error fetching game state", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIError{Message: "Error fetching game state", Error: err.Error()})
		return
	}

	// Клиенты опрашивают состояние, кэш браузера отключаем.
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.JSON(http.StatusOK, doc)
}

// UpdateState применяет действие администратора и сохраняет документ.
func (h *GameHandler) UpdateState(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, APIError{Message: "Method Not Allowed"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req, err := domain.DecodeUpdateRequest(body)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.service.ApplyTransition(c.Request.Context(), req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Success: true, Message: "Game state updated"})
}

// handleServiceError: все ошибки сервиса, кроме невалидного ввода, - 500.
func (h *GameHandler) handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidRequest) {
		h.respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.respondError(c, http.StatusInternalServerError, "Internal Server Error", err)
}

func (h *GameHandler) respondError(c *gin.Context, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
	} else {
		h.logger.Warn(message, zap.Error(err))
	}
	c.JSON(status, StatusResponse{Success: false, Message: message, Error: err.Error()})
}
