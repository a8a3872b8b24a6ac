package domain

import (
	"errors"
	"testing"
	"time"
)

func TestStore_AddDeck_Duplicate(t *testing.T) {
	store := NewStore()

	deck, _ := NewDeck("Spanish", "")
	if err := store.AddDeck(deck); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup, _ := NewDeck("Spanish", "")
	err := store.AddDeck(dup)
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestStore_RemoveDeck_ClearsLastUsed(t *testing.T) {
	store := NewStore()
	deck, _ := NewDeck("Spanish", "")
	store.AddDeck(deck)
	store.Settings.LastUsedDeck = "Spanish"

	if _, ok := store.RemoveDeck("Spanish"); !ok {
		t.Fatal("expected deck to be removed")
	}
	if store.Settings.LastUsedDeck != "" {
		t.Error("expected last-used deck to be cleared")
	}

	if _, ok := store.RemoveDeck("Spanish"); ok {
		t.Error("removing a missing deck should report false")
	}
}

func TestStore_TagIndex(t *testing.T) {
	store := NewStore()

	spanish, _ := NewDeck("Spanish", "")
	c1, _ := NewCard("hola", "hello", []string{"greeting"})
	c2, _ := NewCard("adios", "goodbye", []string{"greeting", "farewell"})
	spanish.AddCard(c1)
	spanish.AddCard(c2)
	store.AddDeck(spanish)

	french, _ := NewDeck("French", "")
	c3, _ := NewCard("bonjour", "hello", []string{"greeting"})
	french.AddCard(c3)
	store.AddDeck(french)

	index := store.TagIndex()
	if len(index["greeting"]) != 3 {
		t.Errorf("expected 3 cards tagged greeting, got %d", len(index["greeting"]))
	}
	if len(index["farewell"]) != 1 {
		t.Errorf("expected 1 card tagged farewell, got %d", len(index["farewell"]))
	}
}

func TestStore_ImageRefCounts(t *testing.T) {
	store := NewStore()
	deck, _ := NewDeck("Art", "")

	shared := "img_20250101_010101_0001.png"
	c1, _ := NewCard("q1", "a1", nil)
	c1.QuestionImage = shared
	c2, _ := NewCard("q2", "a2", nil)
	c2.AnswerImage = shared
	c3, _ := NewCard("q3", "a3", nil)
	c3.QuestionImage = "img_20250101_010101_0002.png"

	deck.AddCard(c1)
	deck.AddCard(c2)
	deck.AddCard(c3)
	store.AddDeck(deck)

	counts := store.ImageRefCounts()
	if counts[shared] != 2 {
		t.Errorf("expected refcount 2 for shared image, got %d", counts[shared])
	}
	if counts["img_20250101_010101_0002.png"] != 1 {
		t.Errorf("expected refcount 1, got %d", counts["img_20250101_010101_0002.png"])
	}

	// Deleting the last referencing card makes the image unreachable.
	deck.RemoveCard(c3.ID)
	if store.ReferencesImage("img_20250101_010101_0002.png") {
		t.Error("image should be unreachable after removing its only referrer")
	}
	if !store.ReferencesImage(shared) {
		t.Error("shared image should still be reachable")
	}
}

func TestStore_Normalize(t *testing.T) {
	store := &Store{
		Decks: map[string]*Deck{
			"Spanish": {
				Cards: []*Card{
					{Question: "hola", Answer: "hello", Created: time.Now()},
				},
			},
		},
	}

	store.Normalize()

	deck := store.Decks["Spanish"]
	if deck.Name != "Spanish" {
		t.Errorf("expected deck name restored from map key, got %q", deck.Name)
	}
	if deck.Cards[0].ID == "" {
		t.Error("expected a generated id for a legacy card")
	}
	if deck.Cards[0].Tags == nil {
		t.Error("expected tags normalized to an empty slice")
	}
	if store.Sessions == nil {
		t.Error("expected sessions normalized to an empty slice")
	}
	if store.Settings.Theme != "auto" || store.Settings.StudyMode != string(OrderSequential) {
		t.Errorf("expected default settings, got %+v", store.Settings)
	}
}

func TestDeck_CardIDUniqueness(t *testing.T) {
	deck, _ := NewDeck("Spanish", "")
	c, _ := NewCard("hola", "hello", nil)
	if err := deck.AddCard(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := deck.AddCard(c); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for duplicate card id, got %v", err)
	}
}

func TestValidateDeckName(t *testing.T) {
	if err := ValidateDeckName("Spanish"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateDeckName("  "); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for blank name, got %v", err)
	}
}

func TestGenerateImageName(t *testing.T) {
	name := GenerateImageName(".PNG")
	if !IsImageName(name) {
		t.Errorf("generated name %q does not match the image name pattern", name)
	}

	if IsImageName("vacation.png") {
		t.Error("foreign filenames must not match the image name pattern")
	}
	if IsImageName("img_20250101_010101_0001") {
		t.Error("names without extension must not match")
	}
}

func TestNormalizeImageExt(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{".PNG", ".png"},
		{"jpg", ".jpg"},
		{"", ".png"},
		{"../../etc", ".png"},
	}
	for _, tt := range tests {
		if got := NormalizeImageExt(tt.in); got != tt.want {
			t.Errorf("NormalizeImageExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
