package models

import "strings"

const (
	DeckSize      = 78
	MajorCount    = 22
	CardsPerSuit  = 14
	MajorIDPrefix = "major_"
)

// Suits in canonical deck order.
var Suits = []string{"wands", "cups", "swords", "pentacles"}

// CardDescription holds the long-form meaning text. Optional per card;
// consumers fall back to the short-form Upright/Reversed strings.
type CardDescription struct {
	Upright  string `json:"upright"`
	Reversed string `json:"reversed"`
}

// Card is a single immutable card definition. IDs follow
// major_{NN}_{slug} for the Major Arcana and {suit}_{NN}_{slug} for
// the minors, and are stable across languages.
type Card struct {
	ID          string           `json:"id" validate:"required"`
	Name        string           `json:"name" validate:"required"`
	Upright     string           `json:"upright" validate:"required"`
	Reversed    string           `json:"reversed" validate:"required"`
	Description *CardDescription `json:"description,omitempty"`
}

// CardOverlay is a partial translation entry keyed by card ID. Any
// empty field falls back to the base-language card at merge time.
type CardOverlay struct {
	ID          string           `json:"id"`
	Name        string           `json:"name,omitempty"`
	Upright     string           `json:"upright,omitempty"`
	Reversed    string           `json:"reversed,omitempty"`
	Description *CardDescription `json:"description,omitempty"`
}

func (c Card) IsMajor() bool {
	return strings.HasPrefix(c.ID, MajorIDPrefix)
}

// Suit returns the suit segment of a minor card ID, or "" for majors
// and malformed IDs.
func (c Card) Suit() string {
	if c.IsMajor() {
		return ""
	}
	idx := strings.Index(c.ID, "_")
	if idx <= 0 {
		return ""
	}
	return c.ID[:idx]
}
