package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tarotdaily/tarotdaily/internal/models"
	"github.com/tarotdaily/tarotdaily/internal/services"
	"github.com/tarotdaily/tarotdaily/internal/share"
)

type mockReadingService struct {
	services.ReadingServiceInterface
	DrawFunc            func(ctx context.Context, lang models.Lang, readingType string, count int) (*services.DrawResult, error)
	DrawAspectsFunc     func(ctx context.Context, lang models.Lang, aspects []string) (*services.AspectResult, error)
	CreateShareLinkFunc func(ctx context.Context, reading models.Reading, baseURL string) (*services.ShareLink, error)
	ResolveShareFunc    func(ctx context.Context, token string) (*models.SharedReading, error)
	HistoryFunc         func(ctx context.Context) []models.ReadingRecord
}

func (m *mockReadingService) Draw(ctx context.Context, lang models.Lang, readingType string, count int) (*services.DrawResult, error) {
	return m.DrawFunc(ctx, lang, readingType, count)
}

func (m *mockReadingService) DrawAspects(ctx context.Context, lang models.Lang, aspects []string) (*services.AspectResult, error) {
	return m.DrawAspectsFunc(ctx, lang, aspects)
}

func (m *mockReadingService) CreateShareLink(ctx context.Context, reading models.Reading, baseURL string) (*services.ShareLink, error) {
	return m.CreateShareLinkFunc(ctx, reading, baseURL)
}

func (m *mockReadingService) ResolveShare(ctx context.Context, token string) (*models.SharedReading, error) {
	return m.ResolveShareFunc(ctx, token)
}

func (m *mockReadingService) History(ctx context.Context) []models.ReadingRecord {
	return m.HistoryFunc(ctx)
}

func TestSharePublicHandler_Serve_Found(t *testing.T) {
	token := "TG92ZXxKYW51YXJ5IDEsIDIwMjV8RlU"
	handler, err := NewSharePublicHandler("../../web/templates", &mockReadingService{
		ResolveShareFunc: func(ctx context.Context, got string) (*models.SharedReading, error) {
			if got != token {
				t.Fatalf("expected token %q, got %q", token, got)
			}
			return &models.SharedReading{
				ReadingType: "Love Reading",
				Date:        "January 1, 2025",
				Cards: []models.DrawnCard{
					{
						Card:     models.Card{ID: "major_00_the_fool", Name: "The Fool", Upright: "New beginnings", Reversed: "Recklessness"},
						Position: models.PositionUpright,
					},
					{
						Card:     models.Card{ID: "major_19_the_sun", Name: "The Sun", Upright: "Joy", Reversed: "Clouded joy"},
						Position: models.PositionReversed,
					},
				},
			}, nil
		},
	})
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/share/"+token, nil)
	req.Host = "example.com"
	req.SetPathValue("token", token)
	rr := httptest.NewRecorder()

	handler.Serve(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !containsAll(body, []string{
		`property="og:title"`,
		`content="Love Reading"`,
		`content="The Fool, The Sun · January 1, 2025"`,
		`http://example.com/share/` + token,
		`The Fool`,
		`Reversed`,
	}) {
		t.Fatalf("expected og tags and card content to be present, got:\n%s", body)
	}
}

func TestSharePublicHandler_Serve_NotFound(t *testing.T) {
	handler, err := NewSharePublicHandler("../../web/templates", &mockReadingService{
		ResolveShareFunc: func(ctx context.Context, got string) (*models.SharedReading, error) {
			return nil, share.ErrMalformedToken
		},
	})
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/share/zzzz", nil)
	req.Host = "example.com"
	req.SetPathValue("token", "zzzz")
	rr := httptest.NewRecorder()

	handler.Serve(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	if !containsAll(rr.Body.String(), []string{`Reading Not Found`}) {
		t.Fatalf("expected not found content to be present")
	}
}

func TestSharePublicHandler_Serve_EmptyToken(t *testing.T) {
	handler, err := NewSharePublicHandler("../../web/templates", &mockReadingService{
		ResolveShareFunc: func(ctx context.Context, got string) (*models.SharedReading, error) {
			t.Fatal("service should not be called for an empty token")
			return nil, nil
		},
	})
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/share/", nil)
	req.SetPathValue("token", "  ")
	rr := httptest.NewRecorder()

	handler.Serve(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestSharePublicHandler_Serve_InternalError(t *testing.T) {
	handler, err := NewSharePublicHandler("../../web/templates", &mockReadingService{
		ResolveShareFunc: func(ctx context.Context, got string) (*models.SharedReading, error) {
			return nil, errors.New("deck exploded")
		},
	})
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/share/RlU", nil)
	req.SetPathValue("token", "RlU")
	rr := httptest.NewRecorder()

	handler.Serve(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}
