package domain

import (
	"errors"
	"testing"
)

func TestNewCard(t *testing.T) {
	card, err := NewCard("hola", "hello", []string{"greeting"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if card.ID == "" {
		t.Error("expected a generated card id")
	}
	if card.Question != "hola" || card.Answer != "hello" {
		t.Errorf("unexpected content: %q / %q", card.Question, card.Answer)
	}
	if card.Created.IsZero() || card.Modified.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestNewCard_EmptyQuestion(t *testing.T) {
	_, err := NewCard("   ", "answer", nil)
	if err == nil {
		t.Fatal("expected error for empty question")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestNewCard_NilTags(t *testing.T) {
	card, err := NewCard("q", "a", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Tags == nil {
		t.Error("expected tags to be initialized to an empty slice")
	}
}

func TestNewCardID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewCardID()
		if seen[id] {
			t.Fatalf("duplicate card id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestCard_HasTag(t *testing.T) {
	card, _ := NewCard("q", "a", []string{"Math", "calculus"})

	if !card.HasTag("math") {
		t.Error("expected case-insensitive tag match")
	}
	if card.HasTag("physics") {
		t.Error("unexpected tag match")
	}
}

func TestCard_Matches(t *testing.T) {
	card, _ := NewCard("What is the capital of France?", "Paris", []string{"geography"})

	tests := []struct {
		query string
		want  bool
	}{
		{"capital", true},
		{"paris", true},
		{"geo", true},
		{"berlin", false},
	}

	for _, tt := range tests {
		if got := card.Matches(tt.query); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestCard_ImageRefs(t *testing.T) {
	card, _ := NewCard("q", "a", nil)
	if len(card.ImageRefs()) != 0 {
		t.Error("expected no refs for a text-only card")
	}

	card.QuestionImage = "img_20250101_010101_0001.png"
	card.AnswerImage = "img_20250101_010101_0002.png"
	if got := len(card.ImageRefs()); got != 2 {
		t.Errorf("expected 2 refs, got %d", got)
	}
}

func TestCard_Preview(t *testing.T) {
	card, _ := NewCard("a very long question that needs trimming for list views", "a", nil)
	got := card.Preview(20)
	if len(got) != 20 {
		t.Errorf("expected preview of length 20, got %d (%q)", len(got), got)
	}

	short, _ := NewCard("short", "a", nil)
	if short.Preview(20) != "short" {
		t.Errorf("short question should be untouched, got %q", short.Preview(20))
	}
}
