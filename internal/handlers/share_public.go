package handlers

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tarotdaily/tarotdaily/internal/models"
	"github.com/tarotdaily/tarotdaily/internal/services"
)

// SharePublicHandler renders the public share page for a reading
// token. A token that fails to decode, or references an unknown card,
// renders the not-found state; there are no retries.
type SharePublicHandler struct {
	templates *template.Template
	service   services.ReadingServiceInterface
}

type SharePageData struct {
	Found        bool
	PageTitle    string
	ErrorMessage string
	Reading      *models.SharedReading

	OGTitle       string
	OGDescription string
	OGURL         string
}

func NewSharePublicHandler(templatesDir string, service services.ReadingServiceInterface) (*SharePublicHandler, error) {
	templates, err := template.ParseFiles(filepath.Join(templatesDir, "share.html"))
	if err != nil {
		return nil, err
	}
	return &SharePublicHandler{
		templates: templates,
		service:   service,
	}, nil
}

func (h *SharePublicHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.PathValue("token"))
	if token == "" {
		h.renderNotFound(w, "This share link is missing or malformed.")
		return
	}

	reading, err := h.service.ResolveShare(r.Context(), token)
	if err != nil {
		if isNotFound(err) {
			h.renderNotFound(w, "This reading could not be found. The link may be incomplete or from an unsupported version.")
			return
		}
		h.render(w, http.StatusInternalServerError, SharePageData{
			Found:        false,
			PageTitle:    "Error - Tarot Daily",
			ErrorMessage: "An unexpected error occurred.",
		})
		return
	}

	names := make([]string, len(reading.Cards))
	for i, c := range reading.Cards {
		names[i] = c.Name
	}

	title := reading.ReadingType
	if title == "" {
		title = "Tarot Reading"
	}

	h.render(w, http.StatusOK, SharePageData{
		Found:         true,
		PageTitle:     title + " - Tarot Daily",
		Reading:       reading,
		OGTitle:       title,
		OGDescription: strings.Join(names, ", ") + " · " + reading.Date,
		OGURL:         resolveBaseURL(r) + "/share/" + token,
	})
}

func (h *SharePublicHandler) renderNotFound(w http.ResponseWriter, message string) {
	h.render(w, http.StatusNotFound, SharePageData{
		Found:        false,
		PageTitle:    "Reading Not Found - Tarot Daily",
		ErrorMessage: message,
	})
}

func (h *SharePublicHandler) render(w http.ResponseWriter, status int, data SharePageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = h.templates.ExecuteTemplate(w, "share.html", data)
}
