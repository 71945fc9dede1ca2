package services

import (
	"sync"
	"testing"

	"github.com/tarotdaily/tarotdaily/internal/deck"
	"github.com/tarotdaily/tarotdaily/internal/models"
)

// gateLoader lets tests hold a specific language load open to force
// switch ordering.
type gateLoader struct {
	inner   DeckLoader
	started chan models.Lang
	gates   map[models.Lang]chan struct{}
}

func (g *gateLoader) Load(lang models.Lang) ([]models.Card, error) {
	if g.started != nil {
		g.started <- lang
	}
	if gate, ok := g.gates[lang]; ok {
		<-gate
	}
	return g.inner.Load(lang)
}

func drawnFool(t *testing.T) []models.DrawnCard {
	t.Helper()
	cards, err := deck.NewLoader().Load(models.LangEN)
	if err != nil {
		t.Fatalf("failed to load deck: %v", err)
	}
	fool, ok := deck.Find(cards, "major_00_the_fool")
	if !ok {
		t.Fatal("expected the fool")
	}
	return []models.DrawnCard{{Card: fool, Position: models.PositionReversed}}
}

func TestSessionSwitchLanguageRehydrates(t *testing.T) {
	session := NewReadingSession(deck.NewLoader(), models.LangEN)
	session.SetDrawn(drawnFool(t))

	if err := session.SwitchLanguage(models.LangUK); err != nil {
		t.Fatalf("failed to switch language: %v", err)
	}
	if session.Lang() != models.LangUK {
		t.Fatalf("unexpected session lang: %s", session.Lang())
	}

	drawn := session.Drawn()
	if drawn[0].Name != "Блазень" {
		t.Fatalf("expected translated card, got %q", drawn[0].Name)
	}
	if drawn[0].ID != "major_00_the_fool" || drawn[0].Position != models.PositionReversed {
		t.Fatal("expected identity and orientation to survive the switch")
	}
}

// A slow load for an older switch must not overwrite the state set by
// a newer one: last requested language wins, not last load to finish.
func TestSessionStaleLoadIsDiscarded(t *testing.T) {
	ukGate := make(chan struct{})
	loader := &gateLoader{
		inner:   deck.NewLoader(),
		started: make(chan models.Lang, 4),
		gates:   map[models.Lang]chan struct{}{models.LangUK: ukGate},
	}

	session := NewReadingSession(loader, models.LangEN)
	session.SetDrawn(drawnFool(t))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := session.SwitchLanguage(models.LangUK); err != nil {
			t.Errorf("uk switch failed: %v", err)
		}
	}()

	// Wait for the uk load to be in flight, then win the race with a
	// newer switch back to English.
	if lang := <-loader.started; lang != models.LangUK {
		t.Fatalf("expected uk load first, got %s", lang)
	}
	if err := session.SwitchLanguage(models.LangEN); err != nil {
		t.Fatalf("en switch failed: %v", err)
	}

	close(ukGate)
	wg.Wait()

	if session.Lang() != models.LangEN {
		t.Fatalf("expected en to win, got %s", session.Lang())
	}
	if got := session.Drawn()[0].Name; got != "The Fool" {
		t.Fatalf("stale uk load overwrote session state: %q", got)
	}
}
