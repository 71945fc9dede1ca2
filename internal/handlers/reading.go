package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tarotdaily/tarotdaily/internal/models"
	"github.com/tarotdaily/tarotdaily/internal/services"
	"github.com/tarotdaily/tarotdaily/internal/share"
)

// ReadingHandler serves the draw and share JSON API.
type ReadingHandler struct {
	service services.ReadingServiceInterface
	baseURL string // Overrides request-derived base URL when set
}

func NewReadingHandler(service services.ReadingServiceInterface, baseURL string) *ReadingHandler {
	return &ReadingHandler{service: service, baseURL: strings.TrimRight(baseURL, "/")}
}

type drawRequest struct {
	ReadingType string `json:"readingType"`
	Count       int    `json:"count"`
	Lang        string `json:"lang"`
}

func (h *ReadingHandler) Draw(w http.ResponseWriter, r *http.Request) {
	var req drawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.ReadingType) == "" {
		writeJSONError(w, http.StatusBadRequest, "readingType is required")
		return
	}

	result, err := h.service.Draw(r.Context(), models.ParseLang(req.Lang), req.ReadingType, req.Count)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDrawCount) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to draw cards")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type aspectsRequest struct {
	Aspects []string `json:"aspects"`
	Lang    string   `json:"lang"`
}

func (h *ReadingHandler) Aspects(w http.ResponseWriter, r *http.Request) {
	var req aspectsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.DrawAspects(r.Context(), models.ParseLang(req.Lang), req.Aspects)
	if err != nil {
		if errors.Is(err, services.ErrNoAspects) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to draw cards")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ReadingHandler) Share(w http.ResponseWriter, r *http.Request) {
	var reading models.Reading
	if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(reading.Cards) == 0 {
		writeJSONError(w, http.StatusBadRequest, "A reading needs at least one card")
		return
	}

	baseURL := h.baseURL
	if baseURL == "" {
		baseURL = resolveBaseURL(r)
	}

	link, err := h.service.CreateShareLink(r.Context(), reading, baseURL)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create share link")
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// GetShared resolves a share token to its enriched reading. Every
// decode or lookup failure collapses to the same not-found answer.
func (h *ReadingHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.PathValue("token"))
	if token == "" {
		writeJSONError(w, http.StatusNotFound, "Reading not found")
		return
	}

	reading, err := h.service.ResolveShare(r.Context(), token)
	if err != nil {
		if isNotFound(err) {
			writeJSONError(w, http.StatusNotFound, "Reading not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to load reading")
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

func (h *ReadingHandler) History(w http.ResponseWriter, r *http.Request) {
	records := h.service.History(r.Context())
	if records == nil {
		records = []models.ReadingRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": records})
}

func isNotFound(err error) bool {
	return errors.Is(err, share.ErrInvalidToken) ||
		errors.Is(err, share.ErrMalformedToken) ||
		errors.Is(err, share.ErrCardNotFound)
}
