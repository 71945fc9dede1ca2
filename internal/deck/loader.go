package deck

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tarotdaily/tarotdaily/internal/logging"
	"github.com/tarotdaily/tarotdaily/internal/models"
)

//go:embed data
var deckFS embed.FS

// Loader loads and caches per-language decks. The base (English) deck
// is authoritative; other languages are partial overlays merged over
// it field by field. Loaded decks are immutable; callers must copy
// before reordering.
type Loader struct {
	fsys     fs.FS
	validate *validator.Validate

	mu    sync.RWMutex
	cache map[models.Lang][]models.Card
}

// NewLoader returns a Loader backed by the embedded deck data.
func NewLoader() *Loader {
	return NewLoaderFS(deckFS)
}

// NewLoaderFS returns a Loader reading deck JSON from the given
// filesystem. Used by tests to inject broken or partial data.
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{
		fsys:     fsys,
		validate: validator.New(),
		cache:    make(map[models.Lang][]models.Card),
	}
}

// Load returns the full deck for the given language. A missing or
// malformed overlay degrades to the base deck without error; a broken
// base deck is a hard error.
func (l *Loader) Load(lang models.Lang) ([]models.Card, error) {
	l.mu.RLock()
	if cards, ok := l.cache[lang]; ok {
		l.mu.RUnlock()
		return cards, nil
	}
	l.mu.RUnlock()

	base, err := l.loadBase()
	if err != nil {
		return nil, err
	}

	cards := base
	if lang != models.LangEN {
		overlay, err := l.loadOverlay(lang)
		if err != nil {
			logging.Warn("Deck overlay unavailable; using base language", map[string]interface{}{
				"lang":  string(lang),
				"error": err.Error(),
			})
		} else {
			cards = merge(base, overlay)
		}
	}

	l.mu.Lock()
	l.cache[lang] = cards
	l.mu.Unlock()

	return cards, nil
}

func (l *Loader) loadBase() ([]models.Card, error) {
	data, err := fs.ReadFile(l.fsys, "data/classic.json")
	if err != nil {
		return nil, fmt.Errorf("reading base deck: %w", err)
	}

	var cards []models.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parsing base deck: %w", err)
	}
	if err := l.validateDeck(cards); err != nil {
		return nil, fmt.Errorf("validating base deck: %w", err)
	}
	return cards, nil
}

func (l *Loader) loadOverlay(lang models.Lang) ([]models.CardOverlay, error) {
	path := fmt.Sprintf("data/classic.%s.json", lang)
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading overlay: %w", err)
	}

	var overlay []models.CardOverlay
	if err := json.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing overlay: %w", err)
	}
	return overlay, nil
}

func (l *Loader) validateDeck(cards []models.Card) error {
	if len(cards) != models.DeckSize {
		return fmt.Errorf("expected %d cards, got %d", models.DeckSize, len(cards))
	}

	seen := make(map[string]bool, len(cards))
	majors := 0
	suitCounts := make(map[string]int, len(models.Suits))
	for _, c := range cards {
		if err := l.validate.Struct(c); err != nil {
			return fmt.Errorf("card %q: %w", c.ID, err)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate card id %q", c.ID)
		}
		seen[c.ID] = true
		if c.IsMajor() {
			majors++
		} else {
			suitCounts[c.Suit()]++
		}
	}

	if majors != models.MajorCount {
		return fmt.Errorf("expected %d major arcana, got %d", models.MajorCount, majors)
	}
	for _, suit := range models.Suits {
		if suitCounts[suit] != models.CardsPerSuit {
			return fmt.Errorf("expected %d %s cards, got %d", models.CardsPerSuit, suit, suitCounts[suit])
		}
	}
	return nil
}

// merge applies a partial translation overlay over the base deck.
// Fallback is field-level: an empty overlay field keeps the base text,
// so partial translations never blank out existing content.
func merge(base []models.Card, overlay []models.CardOverlay) []models.Card {
	byID := make(map[string]models.CardOverlay, len(overlay))
	for _, o := range overlay {
		byID[o.ID] = o
	}

	out := make([]models.Card, len(base))
	for i, card := range base {
		o, ok := byID[card.ID]
		if !ok {
			out[i] = card
			continue
		}
		if o.Name != "" {
			card.Name = o.Name
		}
		if o.Upright != "" {
			card.Upright = o.Upright
		}
		if o.Reversed != "" {
			card.Reversed = o.Reversed
		}
		if o.Description != nil {
			merged := models.CardDescription{}
			if card.Description != nil {
				merged = *card.Description
			}
			if o.Description.Upright != "" {
				merged.Upright = o.Description.Upright
			}
			if o.Description.Reversed != "" {
				merged.Reversed = o.Description.Reversed
			}
			card.Description = &merged
		}
		out[i] = card
	}
	return out
}

// Find looks a card up by id.
func Find(cards []models.Card, id string) (models.Card, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return models.Card{}, false
}

// Rehydrate re-resolves drawn cards against a newly loaded deck, so a
// language switch updates card text while identity and orientation
// survive. Cards missing from the new deck are kept as-is.
func Rehydrate(drawn []models.DrawnCard, cards []models.Card) []models.DrawnCard {
	out := make([]models.DrawnCard, len(drawn))
	for i, d := range drawn {
		if card, ok := Find(cards, d.ID); ok {
			d.Card = card
		}
		out[i] = d
	}
	return out
}
