package services

import (
	"fmt"
	"sync"

	"github.com/tarotdaily/tarotdaily/internal/deck"
	"github.com/tarotdaily/tarotdaily/internal/models"
)

// ReadingSession holds a set of drawn cards and the language they are
// rendered in. Switching language reloads the deck and rehydrates the
// drawn cards by id, so identity and orientation survive while text
// updates. A generation counter keeps the ordering guarantee when
// switches race: the last requested language wins, not the last load
// to finish.
type ReadingSession struct {
	loader DeckLoader

	mu         sync.Mutex
	generation uint64
	lang       models.Lang
	drawn      []models.DrawnCard
}

func NewReadingSession(loader DeckLoader, lang models.Lang) *ReadingSession {
	return &ReadingSession{loader: loader, lang: lang}
}

func (s *ReadingSession) Lang() models.Lang {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

func (s *ReadingSession) SetDrawn(cards []models.DrawnCard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawn = cards
}

func (s *ReadingSession) Drawn() []models.DrawnCard {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.DrawnCard, len(s.drawn))
	copy(out, s.drawn)
	return out
}

// SwitchLanguage reloads the deck in the given language and rehydrates
// the session's drawn cards. A load that was superseded by a newer
// switch is discarded without touching session state.
func (s *ReadingSession) SwitchLanguage(lang models.Lang) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.lang = lang
	s.mu.Unlock()

	cards, err := s.loader.Load(lang)
	if err != nil {
		return fmt.Errorf("loading %s deck: %w", lang, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		// A newer switch already owns the session.
		return nil
	}
	s.drawn = deck.Rehydrate(s.drawn, cards)
	return nil
}
