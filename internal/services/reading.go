package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tarotdaily/tarotdaily/internal/logging"
	"github.com/tarotdaily/tarotdaily/internal/models"
	"github.com/tarotdaily/tarotdaily/internal/share"
)

// MaxShareURLLength is the point past which share links stop being
// reliably portable across browsers and chat clients.
const MaxShareURLLength = 2000

var (
	ErrInvalidDrawCount = errors.New("draw count must be 1 or 3")
	ErrNoAspects        = errors.New("at least one aspect is required")
)

// DeckLoader resolves the full deck for a language.
type DeckLoader interface {
	Load(lang models.Lang) ([]models.Card, error)
}

// DrawResult is a completed draw as returned to clients.
type DrawResult struct {
	Cards       []models.DrawnCard `json:"cards"`
	ReadingType string             `json:"readingType"`
	Date        string             `json:"date"`
	Lang        models.Lang        `json:"lang"`
}

// AspectCard pairs an aspect label with its upright card.
type AspectCard struct {
	Aspect string           `json:"aspect"`
	Card   models.DrawnCard `json:"card"`
}

// AspectResult is a set of single-card aspect readings.
type AspectResult struct {
	Cards []AspectCard `json:"cards"`
	Date  string       `json:"date"`
	Lang  models.Lang  `json:"lang"`
}

// ShareLink is a created share token plus its absolute URL.
type ShareLink struct {
	Token      string `json:"token"`
	URL        string `json:"url"`
	URLTooLong bool   `json:"urlTooLong,omitempty"`
}

// ReadingServiceInterface is what handlers depend on; tests substitute
// mocks for it.
type ReadingServiceInterface interface {
	Draw(ctx context.Context, lang models.Lang, readingType string, count int) (*DrawResult, error)
	DrawAspects(ctx context.Context, lang models.Lang, aspects []string) (*AspectResult, error)
	CreateShareLink(ctx context.Context, reading models.Reading, baseURL string) (*ShareLink, error)
	ResolveShare(ctx context.Context, token string) (*models.SharedReading, error)
	History(ctx context.Context) []models.ReadingRecord
}

// ReadingService wires the deck, the draw engine, the share codec,
// history, and analytics together.
type ReadingService struct {
	loader    DeckLoader
	draws     *DrawService
	history   HistoryStore
	analytics AnalyticsSink
	logger    *logging.Logger
	now       func() time.Time
}

func NewReadingService(loader DeckLoader, draws *DrawService, history HistoryStore, analytics AnalyticsSink, logger *logging.Logger) *ReadingService {
	if logger == nil {
		logger = logging.Default
	}
	if analytics == nil {
		analytics = NopSink{}
	}
	return &ReadingService{
		loader:    loader,
		draws:     draws,
		history:   history,
		analytics: analytics,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ReadingService) Draw(ctx context.Context, lang models.Lang, readingType string, count int) (*DrawResult, error) {
	if count != 1 && count != 3 {
		return nil, ErrInvalidDrawCount
	}

	cards, err := s.loader.Load(lang)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	drawn := s.draws.Draw(cards, count)
	date := models.FormatDate(s.now(), lang)

	if s.history != nil {
		s.history.Add(models.NewReadingRecord(readingType, date, drawn))
	}
	s.analytics.Track("reading_drawn", map[string]string{
		"type":  readingType,
		"cards": strconv.Itoa(len(drawn)),
		"lang":  string(lang),
	})

	return &DrawResult{
		Cards:       drawn,
		ReadingType: readingType,
		Date:        date,
		Lang:        lang,
	}, nil
}

func (s *ReadingService) DrawAspects(ctx context.Context, lang models.Lang, aspects []string) (*AspectResult, error) {
	if len(aspects) == 0 {
		return nil, ErrNoAspects
	}

	cards, err := s.loader.Load(lang)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	result := &AspectResult{
		Cards: make([]AspectCard, 0, len(aspects)),
		Date:  models.FormatDate(s.now(), lang),
		Lang:  lang,
	}
	for _, aspect := range aspects {
		card, ok := s.draws.DrawAspect(cards)
		if !ok {
			break
		}
		result.Cards = append(result.Cards, AspectCard{Aspect: aspect, Card: card})
	}

	s.analytics.Track("aspects_drawn", map[string]string{
		"aspects": strconv.Itoa(len(result.Cards)),
		"lang":    string(lang),
	})
	return result, nil
}

func (s *ReadingService) CreateShareLink(ctx context.Context, reading models.Reading, baseURL string) (*ShareLink, error) {
	token := share.Encode(reading)
	url := baseURL + "/share/" + token

	link := &ShareLink{Token: token, URL: url}
	if len(url) > MaxShareURLLength {
		link.URLTooLong = true
		s.logger.Warn("Share URL exceeds portable length", map[string]interface{}{
			"length": len(url),
			"cards":  len(reading.Cards),
		})
	}

	s.analytics.Track("reading_shared", map[string]string{
		"cards": strconv.Itoa(len(reading.Cards)),
	})
	return link, nil
}

func (s *ReadingService) ResolveShare(ctx context.Context, token string) (*models.SharedReading, error) {
	reading, err := share.Decode(token)
	if err != nil {
		return nil, err
	}

	enriched, err := share.Enrich(s.loader, reading, share.DetectLang(reading))
	if err != nil {
		return nil, err
	}
	return &enriched, nil
}

func (s *ReadingService) History(ctx context.Context) []models.ReadingRecord {
	if s.history == nil {
		return nil
	}
	return s.history.Recent()
}
