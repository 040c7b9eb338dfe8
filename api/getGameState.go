package handler

import (
	"net/http"

	"math-roulette/internal/app"
)

// GetGameState serves /api/getGameState.
func GetGameState(w http.ResponseWriter, r *http.Request) {
	r.URL.Path = "/api/getGameState"
	app.ServeOnce(w, r)
}
