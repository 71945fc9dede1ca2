package models

import (
	"time"

	"github.com/google/uuid"
)

// Position is the orientation of a drawn card.
type Position string

const (
	PositionUpright  Position = "upright"
	PositionReversed Position = "reversed"
)

// DrawnCard is a Card plus the orientation assigned at draw time.
// Immutable once created.
type DrawnCard struct {
	Card
	Position Position `json:"position"`
}

func (d DrawnCard) IsReversed() bool {
	return d.Position == PositionReversed
}

// MeaningText returns the short-form meaning for the drawn
// orientation.
func (d DrawnCard) MeaningText() string {
	if d.IsReversed() {
		return d.Card.Reversed
	}
	return d.Upright
}

// DescriptionText returns the long-form meaning for the drawn
// orientation, falling back to the short form.
func (d DrawnCard) DescriptionText() string {
	if d.Description == nil {
		return d.MeaningText()
	}
	if d.IsReversed() {
		return d.Description.Reversed
	}
	return d.Description.Upright
}

// CardRef is the minimal card reference carried inside a share token.
type CardRef struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
}

// Reading is the unit of sharing. The encoded token is its only
// identity; nothing is stored server-side.
type Reading struct {
	Cards       []CardRef `json:"cards"`
	ReadingType string    `json:"readingType"`
	Date        string    `json:"date"`
}

// SharedReading is a decoded Reading joined back against a full deck.
type SharedReading struct {
	Cards       []DrawnCard `json:"cards"`
	ReadingType string      `json:"readingType"`
	Date        string      `json:"date"`
}

// RecordCard is the per-card shape of the history record contract.
type RecordCard struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Reversed bool   `json:"reversed"`
	Position int    `json:"position"`
}

// ReadingRecord mirrors the record shape consumed by reading-history
// collaborators. ID and CreatedAt are assigned by the store.
type ReadingRecord struct {
	ID         uuid.UUID    `json:"id"`
	Type       string       `json:"type"`
	Date       string       `json:"date"`
	Cards      []RecordCard `json:"cards"`
	Question   *string      `json:"question,omitempty"`
	ResultText *string      `json:"resultText,omitempty"`
	IsPaid     bool         `json:"isPaid"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// NewReadingRecord builds a history record from a completed draw.
func NewReadingRecord(readingType, date string, cards []DrawnCard) ReadingRecord {
	recordCards := make([]RecordCard, len(cards))
	for i, c := range cards {
		recordCards[i] = RecordCard{
			ID:       c.ID,
			Name:     c.Name,
			Reversed: c.Position == PositionReversed,
			Position: i,
		}
	}
	return ReadingRecord{
		Type:  readingType,
		Date:  date,
		Cards: recordCards,
	}
}

// Refs projects drawn cards down to the shareable reference list.
func Refs(cards []DrawnCard) []CardRef {
	refs := make([]CardRef, len(cards))
	for i, c := range cards {
		refs[i] = CardRef{ID: c.ID, Position: c.Position}
	}
	return refs
}
