package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
)

func TestDeckServiceCreate(t *testing.T) {
	env := newTestEnv()
	svc := NewDeckService(env.repo, env.attachments)

	resp, err := svc.Create(context.Background(), CreateDeckRequest{Name: "Spanish", Description: "vocab"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.Deck.Name != "Spanish" {
		t.Errorf("expected deck name Spanish, got %q", resp.Deck.Name)
	}

	if _, ok := env.repo.Current().Deck("Spanish"); !ok {
		t.Error("deck was not persisted")
	}
}

func TestDeckServiceCreateDuplicate(t *testing.T) {
	env := newTestEnv()
	env.seedDeck(t, "Spanish")
	svc := NewDeckService(env.repo, env.attachments)

	_, err := svc.Create(context.Background(), CreateDeckRequest{Name: "Spanish"})
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if env.repo.Saves != 0 {
		t.Errorf("expected no save on duplicate, got %d saves", env.repo.Saves)
	}
}

func TestDeckServiceCreateInvalidName(t *testing.T) {
	env := newTestEnv()
	svc := NewDeckService(env.repo, env.attachments)

	for _, name := range []string{"", "   "} {
		_, err := svc.Create(context.Background(), CreateDeckRequest{Name: name})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Create(%q): expected ErrValidation, got %v", name, err)
		}
	}
}

func TestDeckServiceRename(t *testing.T) {
	env := newTestEnv()
	env.seedDeck(t, "Spanish")
	env.repo.Current().Settings.LastUsedDeck = "Spanish"
	svc := NewDeckService(env.repo, env.attachments)

	if err := svc.Rename(context.Background(), RenameDeckRequest{OldName: "Spanish", NewName: "Español"}); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	store := env.repo.Current()
	if _, ok := store.Deck("Spanish"); ok {
		t.Error("old deck name still present")
	}
	deck, ok := store.Deck("Español")
	if !ok {
		t.Fatal("renamed deck not found")
	}
	if deck.Name != "Español" {
		t.Errorf("deck.Name not updated, got %q", deck.Name)
	}
	if store.Settings.LastUsedDeck != "Español" {
		t.Errorf("last-used deck not followed, got %q", store.Settings.LastUsedDeck)
	}
}

func TestDeckServiceRenameConflicts(t *testing.T) {
	env := newTestEnv()
	env.seedDeck(t, "Spanish")
	env.seedDeck(t, "French")
	svc := NewDeckService(env.repo, env.attachments)

	tests := []struct {
		name    string
		old     string
		new     string
		wantErr error
	}{
		{"missing source", "German", "Dutch", domain.ErrNotFound},
		{"taken target", "Spanish", "French", domain.ErrDuplicateName},
		{"empty target", "Spanish", "  ", domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Rename(context.Background(), RenameDeckRequest{OldName: tt.old, NewName: tt.new})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDeckServiceDeleteCascadesAttachments(t *testing.T) {
	env := newTestEnv()

	owned := domain.GenerateImageName(".png")
	shared := domain.GenerateImageName(".png")
	env.images.Put(owned, []byte("a"))
	env.images.Put(shared, []byte("b"))

	card1 := mustCard(t, "q1", "a1")
	card1.QuestionImage = owned
	card2 := mustCard(t, "q2", "a2")
	card2.AnswerImage = shared
	env.seedDeck(t, "Spanish", card1, card2)

	keeper := mustCard(t, "q3", "a3")
	keeper.QuestionImage = shared
	env.seedDeck(t, "French", keeper)

	svc := NewDeckService(env.repo, env.attachments)
	resp, err := svc.Delete(context.Background(), DeleteDeckRequest{Name: "Spanish"})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if resp.CardsDeleted != 2 {
		t.Errorf("expected 2 cards deleted, got %d", resp.CardsDeleted)
	}
	if resp.ImagesDropped != 1 {
		t.Errorf("expected 1 image dropped, got %d", resp.ImagesDropped)
	}
	if env.images.Exists(owned) {
		t.Error("solely-owned image should be deleted")
	}
	if !env.images.Exists(shared) {
		t.Error("shared image must survive: another deck still references it")
	}
}

func TestDeckServiceDeleteSaveFailureKeepsAttachments(t *testing.T) {
	env := newTestEnv()

	image := domain.GenerateImageName(".png")
	env.images.Put(image, []byte("a"))
	card := mustCard(t, "q", "a")
	card.QuestionImage = image
	env.seedDeck(t, "Spanish", card)

	env.repo.SaveErr = errors.New("disk full")

	svc := NewDeckService(env.repo, env.attachments)
	if _, err := svc.Delete(context.Background(), DeleteDeckRequest{Name: "Spanish"}); err == nil {
		t.Fatal("expected delete to fail")
	}

	// Commit failed, so the release phase must not have run.
	if !env.images.Exists(image) {
		t.Error("attachment deleted despite failed commit")
	}
	if _, ok := env.repo.Current().Deck("Spanish"); !ok {
		t.Error("deck should still exist after failed commit")
	}
}

func TestDeckServiceList(t *testing.T) {
	env := newTestEnv()
	env.seedDeck(t, "beta", mustCard(t, "q1", "a1"), mustCard(t, "q2", "a2"))
	env.seedDeck(t, "Alpha", mustCard(t, "q3", "a3"))
	svc := NewDeckService(env.repo, env.attachments)

	resp, err := svc.List(context.Background(), ListDecksRequest{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 decks, got %d", resp.Total)
	}
	if resp.Decks[0].Name != "Alpha" {
		t.Errorf("expected case-insensitive name sort, got %q first", resp.Decks[0].Name)
	}

	byCards, err := svc.List(context.Background(), ListDecksRequest{SortBy: "cards", Reverse: true})
	if err != nil {
		t.Fatalf("List by cards failed: %v", err)
	}
	if byCards.Decks[0].Name != "beta" {
		t.Errorf("expected beta first by card count desc, got %q", byCards.Decks[0].Name)
	}
}
