package services

import (
	"context"
	"testing"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
)

func TestStudyStartEmptyDeck(t *testing.T) {
	env := newTestEnv()
	env.seedDeck(t, "Empty")
	svc := NewStudyService(env.repo)

	resp, err := svc.Start(context.Background(), StartStudyRequest{Deck: "Empty"})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("expected 0 cards, got %d", resp.Total)
	}
	if resp.Session != nil {
		t.Error("no session should be created for an empty deck")
	}
}

func TestStudyStartMissingDeck(t *testing.T) {
	env := newTestEnv()
	svc := NewStudyService(env.repo)

	_, err := svc.Start(context.Background(), StartStudyRequest{Deck: "ghost"})
	if err == nil {
		t.Fatal("expected an error for a missing deck")
	}
}

func TestStudyStartAllDecks(t *testing.T) {
	env := newTestEnv()
	env.seedDeck(t, "Spanish", mustCard(t, "q1", "a1"))
	env.seedDeck(t, "French", mustCard(t, "q2", "a2"))
	svc := NewStudyService(env.repo)

	resp, err := svc.Start(context.Background(), StartStudyRequest{Order: domain.OrderSequential})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("expected 2 cards across decks, got %d", resp.Total)
	}
	if resp.Session.Session.State() != domain.SessionActive {
		t.Errorf("session should be active, got %v", resp.Session.Session.State())
	}
}

func TestStudyFinishPersistsOutcome(t *testing.T) {
	env := newTestEnv()
	card1 := mustCard(t, "hello", "hola")
	card2 := mustCard(t, "goodbye", "adiós")
	env.seedDeck(t, "Spanish", card1, card2)
	svc := NewStudyService(env.repo)

	resp, err := svc.Start(context.Background(), StartStudyRequest{Deck: "Spanish", Order: domain.OrderSequential})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	session := resp.Session.Session
	if err := session.Record(domain.OutcomeKnew); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := session.Record(domain.OutcomeMissed); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	finish, err := svc.Finish(context.Background(), FinishStudyRequest{Session: resp.Session})
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	if finish.Record.CardsStudied != 2 || finish.Record.CardsKnown != 1 {
		t.Errorf("unexpected record: %+v", finish.Record)
	}
	if finish.Record.Accuracy != 0.5 {
		t.Errorf("expected accuracy 0.5, got %v", finish.Record.Accuracy)
	}

	store := env.repo.Current()
	if len(store.Sessions) != 1 {
		t.Fatalf("expected 1 session record, got %d", len(store.Sessions))
	}
	if store.Sessions[0].Deck != "Spanish" {
		t.Errorf("record has wrong deck %q", store.Sessions[0].Deck)
	}

	deck, _ := store.Deck("Spanish")
	if deck.Stats.TotalStudies != 1 {
		t.Errorf("deck study count not bumped: %d", deck.Stats.TotalStudies)
	}
	if deck.LastStudied == nil {
		t.Error("deck last-studied not set")
	}
	for _, c := range deck.Cards {
		if c.ReviewCount != 1 {
			t.Errorf("card %s review count = %d, want 1", c.ID, c.ReviewCount)
		}
	}
	if store.Settings.LastUsedDeck != "Spanish" {
		t.Errorf("last-used deck not recorded, got %q", store.Settings.LastUsedDeck)
	}
}

func TestStudyFinishPartialSession(t *testing.T) {
	env := newTestEnv()
	env.seedDeck(t, "Spanish", mustCard(t, "q1", "a1"), mustCard(t, "q2", "a2"))
	svc := NewStudyService(env.repo)

	resp, err := svc.Start(context.Background(), StartStudyRequest{Deck: "Spanish"})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Quit after one card: only the recorded outcome counts.
	if err := resp.Session.Session.Record(domain.OutcomeKnew); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	finish, err := svc.Finish(context.Background(), FinishStudyRequest{Session: resp.Session})
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if finish.Record.CardsStudied != 1 {
		t.Errorf("expected 1 card studied, got %d", finish.Record.CardsStudied)
	}
}

func TestStudyFinishAllDecksRecord(t *testing.T) {
	env := newTestEnv()
	env.seedDeck(t, "Spanish", mustCard(t, "q1", "a1"))
	env.seedDeck(t, "French", mustCard(t, "q2", "a2"))
	svc := NewStudyService(env.repo)

	resp, err := svc.Start(context.Background(), StartStudyRequest{})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	finish, err := svc.Finish(context.Background(), FinishStudyRequest{Session: resp.Session})
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	if finish.Record.Deck != domain.AllDecks {
		t.Errorf("expected the all-decks label, got %q", finish.Record.Deck)
	}

	// Cross-deck sessions do not claim a last-used deck.
	if got := env.repo.Current().Settings.LastUsedDeck; got != "" {
		t.Errorf("last-used deck should stay empty, got %q", got)
	}
}
