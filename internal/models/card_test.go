package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCardIsMajor(t *testing.T) {
	major := Card{ID: "major_00_the_fool"}
	if !major.IsMajor() {
		t.Fatal("expected major arcana card")
	}
	minor := Card{ID: "wands_02_two_of_wands"}
	if minor.IsMajor() {
		t.Fatal("expected minor arcana card")
	}
}

func TestCardSuit(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"wands_02_two_of_wands", "wands"},
		{"cups_01_ace_of_cups", "cups"},
		{"major_13_death", ""},
		{"", ""},
	}
	for _, tc := range cases {
		got := Card{ID: tc.id}.Suit()
		if got != tc.want {
			t.Errorf("Suit(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestNewReadingRecordShape(t *testing.T) {
	cards := []DrawnCard{
		{Card: Card{ID: "major_00_the_fool", Name: "The Fool"}, Position: PositionUpright},
		{Card: Card{ID: "wands_02_two_of_wands", Name: "Two of Wands"}, Position: PositionReversed},
	}
	record := NewReadingRecord("Love Reading", "January 1, 2025", cards)

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("failed to marshal record: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal record: %v", err)
	}
	if decoded["type"] != "Love Reading" || decoded["date"] != "January 1, 2025" {
		t.Fatalf("unexpected record header: %v", decoded)
	}
	if decoded["isPaid"] != false {
		t.Fatal("expected isPaid to serialize as false")
	}
	if _, ok := decoded["question"]; ok {
		t.Fatal("expected empty question to be omitted")
	}

	recordCards := decoded["cards"].([]interface{})
	if len(recordCards) != 2 {
		t.Fatalf("expected 2 record cards, got %d", len(recordCards))
	}
	second := recordCards[1].(map[string]interface{})
	if second["reversed"] != true || second["position"] != float64(1) {
		t.Fatalf("unexpected second card record: %v", second)
	}
}

func TestRefs(t *testing.T) {
	cards := []DrawnCard{
		{Card: Card{ID: "major_13_death"}, Position: PositionReversed},
	}
	refs := Refs(cards)
	if len(refs) != 1 || refs[0].ID != "major_13_death" || refs[0].Position != PositionReversed {
		t.Fatalf("unexpected refs: %v", refs)
	}
}

func TestFormatDate(t *testing.T) {
	day := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(day, LangEN); got != "January 1, 2025" {
		t.Fatalf("unexpected en date: %q", got)
	}
	if got := FormatDate(day, LangUK); got != "1 січня 2025 р." {
		t.Fatalf("unexpected uk date: %q", got)
	}
}

func TestParseLang(t *testing.T) {
	if ParseLang("uk") != LangUK {
		t.Fatal("expected uk")
	}
	if ParseLang("fr") != LangEN {
		t.Fatal("expected fallback to en")
	}
}
