package share

import (
	"errors"
	"fmt"

	"github.com/tarotdaily/tarotdaily/internal/deck"
	"github.com/tarotdaily/tarotdaily/internal/models"
)

// ErrCardNotFound marks a decoded card id absent from the resolved
// deck. Terminal for the whole share view.
var ErrCardNotFound = errors.New("card not found")

const meaningFallback = "Card meaning not available"

// DeckLoader resolves a full deck for a language.
type DeckLoader interface {
	Load(lang models.Lang) ([]models.Card, error)
}

// Enrich joins a decoded reading against the full deck for the given
// language, recovering names and meaning text. Missing optional
// description fields fall back to the short-form meanings; a missing
// card id is a hard error.
func Enrich(loader DeckLoader, reading models.Reading, lang models.Lang) (models.SharedReading, error) {
	cards, err := loader.Load(lang)
	if err != nil {
		return models.SharedReading{}, fmt.Errorf("loading deck: %w", err)
	}

	enriched := make([]models.DrawnCard, len(reading.Cards))
	for i, ref := range reading.Cards {
		if ref.ID == "" {
			return models.SharedReading{}, fmt.Errorf("%w: empty card id", ErrCardNotFound)
		}
		card, ok := deck.Find(cards, ref.ID)
		if !ok {
			return models.SharedReading{}, fmt.Errorf("%w: %s", ErrCardNotFound, ref.ID)
		}

		if card.Upright == "" {
			card.Upright = meaningFallback
		}
		if card.Reversed == "" {
			card.Reversed = meaningFallback
		}
		if card.Description != nil {
			desc := *card.Description
			if desc.Upright == "" {
				desc.Upright = card.Upright
			}
			if desc.Reversed == "" {
				desc.Reversed = card.Reversed
			}
			card.Description = &desc
		}

		enriched[i] = models.DrawnCard{Card: card, Position: ref.Position}
	}

	return models.SharedReading{
		Cards:       enriched,
		ReadingType: reading.ReadingType,
		Date:        reading.Date,
	}, nil
}
