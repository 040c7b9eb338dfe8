package app

import (
	"log"
	"net/http"
	"sync"

	"math-roulette/internal/config"
	"math-roulette/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// lazyHandler собирает роутер при первом запросе и переиспользует его.
type lazyHandler struct {
	once    sync.Once
	build   func() (http.Handler, error)
	handler http.Handler
	err     error
}

func (l *lazyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l.once.Do(func() { l.handler, l.err = l.build() })
	if l.err != nil {
		log.Printf("Ошибка инициализации функции: %v", l.err) // zap может быть еще не создан
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Internal Server Error"}`))
		return
	}
	l.handler.ServeHTTP(w, r)
}

var serverless = &lazyHandler{build: buildFromEnv}

// ServeOnce обслуживает запрос serverless-функции. Приложение собирается один раз на экземпляр.
func ServeOnce(w http.ResponseWriter, r *http.Request) {
	serverless.ServeHTTP(w, r)
}

func buildFromEnv() (http.Handler, error) {
	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	zapLogger, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, OutputPath: cfg.LogOutput})
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(zapLogger)
	application, err := New(cfg, zapLogger)
	if err != nil {
		return nil, err
	}
	return application.Router, nil
}
