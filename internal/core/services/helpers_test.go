package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/ports/mocks"
)

// testEnv bundles the mocks most service tests need.
type testEnv struct {
	repo        *mocks.MockStoreRepository
	images      *mocks.MockImageStore
	attachments *AttachmentService
}

func newTestEnv() *testEnv {
	repo := mocks.NewMockStoreRepository()
	images := mocks.NewMockImageStore()
	return &testEnv{
		repo:        repo,
		images:      images,
		attachments: NewAttachmentService(images),
	}
}

// seedDeck adds a deck with the given cards to the backing store.
func (e *testEnv) seedDeck(t *testing.T, name string, cards ...*domain.Card) {
	t.Helper()

	store := e.repo.Current()
	deck, err := domain.NewDeck(name, "")
	if err != nil {
		t.Fatalf("NewDeck(%q) failed: %v", name, err)
	}
	for _, c := range cards {
		if err := deck.AddCard(c); err != nil {
			t.Fatalf("AddCard failed: %v", err)
		}
	}
	if err := store.AddDeck(deck); err != nil {
		t.Fatalf("AddDeck(%q) failed: %v", name, err)
	}
}

func mustCard(t *testing.T, question, answer string, tags ...string) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(question, answer, tags)
	if err != nil {
		t.Fatalf("NewCard(%q) failed: %v", question, err)
	}
	return card
}

// writeTempImage creates a small source file for attachment tests.
func writeTempImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fake image bytes"), 0644); err != nil {
		t.Fatalf("failed to write temp image: %v", err)
	}
	return path
}
