package handlers

import (
	"html/template"
	"net"
	"net/http"
	"path/filepath"
	"strings"
)

type PageHandler struct {
	templates *template.Template
}

func NewPageHandler(templatesDir string) (*PageHandler, error) {
	templates, err := template.ParseGlob(filepath.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &PageHandler{templates: templates}, nil
}

type PageData struct {
	Title   string
	BaseURL string
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:   "Tarot Daily",
		BaseURL: resolveBaseURL(r),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// resolveBaseURL derives the externally visible base URL, trusting
// X-Forwarded-* headers only when they carry sane values.
func resolveBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if v := sanitizeProto(firstForwardedValue(r.Header.Get("X-Forwarded-Proto"))); v != "" {
		scheme = v
	}

	host := sanitizeHost(r.Host)
	if v := sanitizeHost(firstForwardedValue(r.Header.Get("X-Forwarded-Host"))); v != "" {
		host = v
	}
	if host == "" {
		host = "localhost"
	}
	return scheme + "://" + host
}

func firstForwardedValue(v string) string {
	if v == "" {
		return ""
	}
	parts := strings.Split(v, ",")
	return strings.TrimSpace(parts[0])
}

func sanitizeProto(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "http":
		return "http"
	case "https":
		return "https"
	default:
		return ""
	}
}

func sanitizeHost(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.Contains(raw, "://") || strings.Contains(raw, "@") {
		return ""
	}
	if strings.ContainsAny(raw, " \t\r\n/\\?#") {
		return ""
	}

	host, port := raw, ""
	if h, p, err := net.SplitHostPort(raw); err == nil {
		host, port = h, p
	} else if strings.Contains(raw, ":") {
		// Bare IPv6 literals are the only valid unbracketed colon form.
		if net.ParseIP(raw) == nil {
			return ""
		}
		return strings.ToLower(raw)
	}

	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return ""
	}
	if net.ParseIP(strings.Trim(host, "[]")) == nil && !isValidHostname(host) {
		return ""
	}
	if port == "" {
		return host
	}
	return net.JoinHostPort(host, port)
}

func isValidHostname(host string) bool {
	if host == "localhost" {
		return true
	}
	if len(host) > 253 || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if !isAlphaNum(label[0]) || !isAlphaNum(label[len(label)-1]) {
			return false
		}
		for i := 0; i < len(label); i++ {
			if !isAlphaNum(label[i]) && label[i] != '-' {
				return false
			}
		}
	}
	return true
}

func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
