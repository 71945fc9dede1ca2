package handlers

import (
	"net/http"

	"github.com/tarotdaily/tarotdaily/internal/database"
	"github.com/tarotdaily/tarotdaily/internal/models"
	"github.com/tarotdaily/tarotdaily/internal/services"
)

type HealthHandler struct {
	redis  *database.RedisDB
	loader services.DeckLoader
}

func NewHealthHandler(redis *database.RedisDB, loader services.DeckLoader) *HealthHandler {
	return &HealthHandler{redis: redis, loader: loader}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	components := map[string]string{}

	if _, err := h.loader.Load(models.LangEN); err != nil {
		components["deck"] = "error"
		status = http.StatusServiceUnavailable
	} else {
		components["deck"] = "ok"
	}

	switch {
	case h.redis == nil:
		components["redis"] = "disabled"
	case h.redis.Health(r.Context()) != nil:
		// Redis only backs rate limiting; its loss degrades, not fails.
		components["redis"] = "unavailable"
	default:
		components["redis"] = "ok"
	}

	body := map[string]interface{}{"status": "ok", "components": components}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	writeJSON(w, status, body)
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := h.loader.Load(models.LangEN); err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, "deck unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
