package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
)

func TestExportImportRoundTrip(t *testing.T) {
	env := newTestEnv()
	card := mustCard(t, "hello", "hola", "greetings")
	env.seedDeck(t, "Spanish", card)
	svc := NewExportService(env.repo, env.images)

	out := filepath.Join(t.TempDir(), "spanish.json")
	exported, err := svc.Export(context.Background(), ExportRequest{Deck: "Spanish", OutPath: out})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if exported.Cards != 1 {
		t.Errorf("expected 1 exported card, got %d", exported.Cards)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export file: %v", err)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("export file is not valid JSON: %v", err)
	}
	for _, key := range []string{"deck_name", "exported_date", "deck_data"} {
		if _, ok := envelope[key]; !ok {
			t.Errorf("export file missing key %q", key)
		}
	}

	// Import into a fresh vault under a new name.
	other := newTestEnv()
	importSvc := NewExportService(other.repo, other.images)
	imported, err := importSvc.Import(context.Background(), ImportRequest{Path: out, Name: "Castellano"})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if imported.Deck != "Castellano" {
		t.Errorf("expected renamed deck, got %q", imported.Deck)
	}
	if imported.Cards != 1 {
		t.Errorf("expected 1 imported card, got %d", imported.Cards)
	}

	deck, ok := other.repo.Current().Deck("Castellano")
	if !ok {
		t.Fatal("imported deck not persisted")
	}
	got, ok := deck.FindCard(card.ID)
	if !ok {
		t.Fatal("imported card not found")
	}
	if got.Answer != "hola" || !got.HasTag("greetings") {
		t.Errorf("card content lost on import: %+v", got)
	}
}

func TestExportMissingDeck(t *testing.T) {
	env := newTestEnv()
	svc := NewExportService(env.repo, env.images)

	_, err := svc.Export(context.Background(), ExportRequest{Deck: "ghost", OutPath: filepath.Join(t.TempDir(), "x.json")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestImportDuplicateDeck(t *testing.T) {
	env := newTestEnv()
	env.seedDeck(t, "Spanish", mustCard(t, "q", "a"))
	svc := NewExportService(env.repo, env.images)

	out := filepath.Join(t.TempDir(), "spanish.json")
	if _, err := svc.Export(context.Background(), ExportRequest{Deck: "Spanish", OutPath: out}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	_, err := svc.Import(context.Background(), ImportRequest{Path: out})
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestImportDropsUnknownImages(t *testing.T) {
	env := newTestEnv()
	card := mustCard(t, "q", "a")
	card.QuestionImage = domain.GenerateImageName(".png")
	env.seedDeck(t, "Spanish", card)
	svc := NewExportService(env.repo, env.images)

	out := filepath.Join(t.TempDir(), "spanish.json")
	if _, err := svc.Export(context.Background(), ExportRequest{Deck: "Spanish", OutPath: out}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// The importing vault has no attachment files at all.
	other := newTestEnv()
	importSvc := NewExportService(other.repo, other.images)
	resp, err := importSvc.Import(context.Background(), ImportRequest{Path: out})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if resp.DroppedImages != 1 {
		t.Errorf("expected 1 dropped image reference, got %d", resp.DroppedImages)
	}

	deck, _ := other.repo.Current().Deck("Spanish")
	if deck.Cards[0].QuestionImage != "" {
		t.Error("dangling image reference survived import")
	}
}

func TestImportBadFiles(t *testing.T) {
	env := newTestEnv()
	svc := NewExportService(env.repo, env.images)

	garbage := filepath.Join(t.TempDir(), "garbage.json")
	if err := os.WriteFile(garbage, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing file", "/nope/missing.json", domain.ErrNotFound},
		{"unparseable", garbage, domain.ErrValidation},
		{"no deck data", empty, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Import(context.Background(), ImportRequest{Path: tt.path})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
