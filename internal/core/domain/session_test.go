package domain

import (
	"errors"
	"testing"
)

func makeStudyCards(t *testing.T, n int) []StudyCard {
	t.Helper()
	cards := make([]StudyCard, 0, n)
	for i := 0; i < n; i++ {
		c, err := NewCard("question", "answer", nil)
		if err != nil {
			t.Fatalf("failed to create card: %v", err)
		}
		cards = append(cards, StudyCard{Deck: "test", Card: c})
	}
	return cards
}

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession("test", OrderSequential, makeStudyCards(t, 2))

	if s.State() != SessionNotStarted {
		t.Fatalf("expected not-started, got %s", s.State())
	}

	// Recording before start is invalid
	if err := s.Record(OutcomeKnew); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if s.State() != SessionActive {
		t.Fatalf("expected active, got %s", s.State())
	}

	// Double start is invalid
	if err := s.Start(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState on double start, got %v", err)
	}

	if err := s.Record(OutcomeKnew); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := s.Record(OutcomeMissed); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// Queue exhausted: no current card, but session stays active
	if _, ok := s.Current(); ok {
		t.Error("expected no current card at end of queue")
	}
	if s.State() != SessionActive {
		t.Error("session must not auto-end at end of queue")
	}
	if err := s.Record(OutcomeKnew); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState past end of queue, got %v", err)
	}

	rec, err := s.End()
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if s.State() != SessionEnded {
		t.Fatalf("expected ended, got %s", s.State())
	}

	if rec.CardsStudied != 2 || rec.CardsKnown != 1 {
		t.Errorf("unexpected record: studied=%d known=%d", rec.CardsStudied, rec.CardsKnown)
	}
	if rec.Accuracy != 0.5 {
		t.Errorf("expected accuracy 0.5, got %f", rec.Accuracy)
	}
	if rec.Deck != "test" {
		t.Errorf("expected deck name, got %q", rec.Deck)
	}

	// Ended sessions are immutable
	if err := s.Record(OutcomeKnew); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState after end, got %v", err)
	}
	if _, err := s.End(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState on double end, got %v", err)
	}
}

func TestSession_AccuracyZeroWhenEmpty(t *testing.T) {
	s := NewSession("test", OrderSequential, makeStudyCards(t, 3))
	s.Start()

	if s.Accuracy() != 0 {
		t.Errorf("expected accuracy 0 with no events, got %f", s.Accuracy())
	}

	rec, err := s.End()
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if rec.Accuracy != 0 || rec.CardsStudied != 0 {
		t.Errorf("expected empty record, got %+v", rec)
	}
}

func TestSession_RandomOrderIsStableWithinSession(t *testing.T) {
	cards := makeStudyCards(t, 50)
	s := NewSession("test", OrderRandom, cards)
	s.Start()

	// Walking the queue twice via Current must yield the same card:
	// the shuffle happens once at session start, not per call.
	first, _ := s.Current()
	second, _ := s.Current()
	if first.Card.ID != second.Card.ID {
		t.Error("repeated Current() calls must be deterministic")
	}

	// The shuffled queue is a permutation of the input.
	seen := make(map[string]bool)
	for {
		sc, ok := s.Current()
		if !ok {
			break
		}
		seen[sc.Card.ID] = true
		s.Record(OutcomeKnew)
	}
	if len(seen) != len(cards) {
		t.Errorf("expected %d distinct cards, saw %d", len(cards), len(seen))
	}
	for _, c := range cards {
		if !seen[c.Card.ID] {
			t.Errorf("card %s missing from shuffled queue", c.Card.ID)
		}
	}
}

func TestSession_AllDecksLabel(t *testing.T) {
	s := NewSession("", OrderSequential, makeStudyCards(t, 1))
	s.Start()
	s.Record(OutcomeKnew)

	rec, err := s.End()
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if rec.Deck != AllDecks {
		t.Errorf("expected %q, got %q", AllDecks, rec.Deck)
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    Order
		wantErr bool
	}{
		{"sequential", OrderSequential, false},
		{"random", OrderRandom, false},
		{"", OrderSequential, false},
		{"chaotic", "", true},
	}

	for _, tt := range tests {
		got, err := ParseOrder(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrder(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseOrder(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
