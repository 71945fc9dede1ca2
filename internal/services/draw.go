package services

import (
	"github.com/tarotdaily/tarotdaily/internal/models"
)

// DrawService selects randomized cards from a loaded deck.
type DrawService struct {
	rng RNG
}

func NewDrawService(rng RNG) *DrawService {
	if rng == nil {
		rng = NewRNG()
	}
	return &DrawService{rng: rng}
}

// Draw shuffles the deck and takes the first n cards, then assigns
// each an independent 50/50 orientation. Three-card draws are
// guaranteed to contain at least one Major Arcana card. A deck smaller
// than n yields a shorter result rather than an error.
func (s *DrawService) Draw(cards []models.Card, n int) []models.DrawnCard {
	shuffled := make([]models.Card, len(cards))
	copy(shuffled, cards)
	s.shuffle(shuffled)

	if n > len(shuffled) {
		n = len(shuffled)
	}
	if n < 0 {
		n = 0
	}
	selected := make([]models.Card, n)
	copy(selected, shuffled[:n])

	if n == 3 {
		selected = s.guaranteeMajor(selected, cards)
	}

	// Orientation is assigned strictly after selection so it can never
	// influence which cards are chosen.
	drawn := make([]models.DrawnCard, len(selected))
	for i, card := range selected {
		drawn[i] = models.DrawnCard{Card: card, Position: s.randomPosition()}
	}
	return drawn
}

// DrawAspect draws a single card for an aspect reading. Aspect cards
// are always upright; only the general draw path randomizes
// orientation for singles.
func (s *DrawService) DrawAspect(cards []models.Card) (models.DrawnCard, bool) {
	if len(cards) == 0 {
		return models.DrawnCard{}, false
	}
	card := cards[s.rng.Intn(len(cards))]
	return models.DrawnCard{Card: card, Position: models.PositionUpright}, true
}

// shuffle performs a Fisher-Yates pass, giving every permutation equal
// probability.
func (s *DrawService) shuffle(cards []models.Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// guaranteeMajor substitutes a random Major Arcana card at a random
// index when a three-card selection has none. If no eligible major
// exists the selection is returned unchanged.
func (s *DrawService) guaranteeMajor(selected []models.Card, deck []models.Card) []models.Card {
	for _, c := range selected {
		if c.IsMajor() {
			return selected
		}
	}

	inSelection := make(map[string]bool, len(selected))
	for _, c := range selected {
		inSelection[c.ID] = true
	}

	var candidates []models.Card
	for _, c := range deck {
		if c.IsMajor() && !inSelection[c.ID] {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return selected
	}

	replacement := candidates[s.rng.Intn(len(candidates))]
	selected[s.rng.Intn(len(selected))] = replacement
	return selected
}

func (s *DrawService) randomPosition() models.Position {
	if s.rng.Intn(2) == 0 {
		return models.PositionReversed
	}
	return models.PositionUpright
}
