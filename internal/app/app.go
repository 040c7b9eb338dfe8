package app

import (
	"fmt"
	"net/http"
	"time"

	"math-roulette/internal/config"
	"math-roulette/internal/handler"
	"math-roulette/internal/middleware"
	"math-roulette/internal/service"
	"math-roulette/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// App - собранное приложение: роутер и ресурсы, которые нужно закрыть.
type App struct {
	Router *gin.Engine
	Store  store.DocumentStore
}

// New собирает зависимости и роутер из конфигурации.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	documentStore, err := store.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}
	aiClient, err := service.NewAIClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	gameService := service.NewGameService(documentStore, aiClient, service.GenerationParams{
		Temperature: cfg.AITemperature,
		MaxTokens:   cfg.AIMaxTokens,
	}, logger)

	return &App{
		Router: NewRouter(cfg, handler.NewGameHandler(gameService, logger), logger),
		Store:  documentStore,
	}, nil
}

// NewRouter настраивает gin с middleware и маршрутами.
func NewRouter(cfg *config.Config, gameHandler *handler.GameHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapLogger(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	origins := cfg.GetAllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// Регистрирует /metrics; middleware должен стоять до маршрутов игры.
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	gameHandler.RegisterRoutes(router)

	return router
}

// Close освобождает ресурсы хранилища, если они есть.
func (a *App) Close() error {
	if closer, ok := a.Store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
