package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/ports"
)

// deckEnvelope is the single-deck interchange document. Attachment
// files are not part of the envelope; image references pointing at
// files the importing side does not have are dropped on import.
type deckEnvelope struct {
	DeckName     string       `json:"deck_name"`
	ExportedDate time.Time    `json:"exported_date"`
	DeckData     *domain.Deck `json:"deck_data"`
}

// ExportService writes and reads single decks as standalone JSON
// documents for sharing between vaults.
type ExportService struct {
	repo   ports.StoreRepository
	images ports.ImageStore
}

// NewExportService creates a new export service.
func NewExportService(repo ports.StoreRepository, images ports.ImageStore) *ExportService {
	return &ExportService{
		repo:   repo,
		images: images,
	}
}

// ExportRequest represents a request to export a deck
type ExportRequest struct {
	Deck    string
	OutPath string
}

// ExportResponse represents the response from exporting a deck
type ExportResponse struct {
	Path  string
	Cards int
}

// Export writes the deck to the given path.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResponse, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	deck, ok := store.Deck(req.Deck)
	if !ok {
		return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, req.Deck)
	}

	envelope := deckEnvelope{
		DeckName:     deck.Name,
		ExportedDate: time.Now(),
		DeckData:     deck,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deck export: %w", err)
	}
	if err := os.WriteFile(req.OutPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	return &ExportResponse{Path: req.OutPath, Cards: deck.CardCount()}, nil
}

// ImportRequest represents a request to import a deck. Name overrides
// the deck name stored in the file.
type ImportRequest struct {
	Path string
	Name string
}

// ImportResponse represents the response from importing a deck
type ImportResponse struct {
	Deck          string
	Cards         int
	DroppedImages int
}

// Import reads an exported deck file and adds it to the store. The
// deck name must not collide with an existing deck. Image references
// whose files are not present in this vault are cleared: the envelope
// carries no attachment data.
func (s *ExportService) Import(ctx context.Context, req ImportRequest) (*ImportResponse, error) {
	data, err := os.ReadFile(req.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: import file %s", domain.ErrNotFound, req.Path)
		}
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var envelope deckEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: cannot parse import file: %v", domain.ErrValidation, err)
	}
	if envelope.DeckData == nil {
		return nil, fmt.Errorf("%w: import file has no deck data", domain.ErrValidation)
	}

	name := req.Name
	if name == "" {
		name = envelope.DeckName
	}
	if err := domain.ValidateDeckName(name); err != nil {
		return nil, err
	}

	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	deck := envelope.DeckData
	deck.Name = name
	if deck.Created.IsZero() {
		deck.Created = time.Now()
	}
	if deck.Cards == nil {
		deck.Cards = []*domain.Card{}
	}

	resp := &ImportResponse{Deck: name}
	for _, card := range deck.Cards {
		if card.ID == "" {
			card.ID = domain.NewCardID()
		}
		if card.Tags == nil {
			card.Tags = []string{}
		}
		if card.QuestionImage != "" && !s.images.Exists(card.QuestionImage) {
			card.QuestionImage = ""
			resp.DroppedImages++
		}
		if card.AnswerImage != "" && !s.images.Exists(card.AnswerImage) {
			card.AnswerImage = ""
			resp.DroppedImages++
		}
	}

	if err := store.AddDeck(deck); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, store); err != nil {
		return nil, err
	}

	resp.Cards = deck.CardCount()
	return resp, nil
}
