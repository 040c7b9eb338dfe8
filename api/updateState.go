// Package handler exposes the roulette endpoints as serverless functions,
// one exported http.HandlerFunc per file.
package handler

import (
	"net/http"

	"math-roulette/internal/app"
)

// UpdateState serves /api/updateState.
func UpdateState(w http.ResponseWriter, r *http.Request) {
	r.URL.Path = "/api/updateState"
	app.ServeOnce(w, r)
}
