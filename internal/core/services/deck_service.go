package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/ports"
)

// DeckService handles deck lifecycle operations.
type DeckService struct {
	repo        ports.StoreRepository
	attachments *AttachmentService
}

// NewDeckService creates a new deck service.
func NewDeckService(repo ports.StoreRepository, attachments *AttachmentService) *DeckService {
	return &DeckService{
		repo:        repo,
		attachments: attachments,
	}
}

// CreateDeckRequest represents a request to create a deck
type CreateDeckRequest struct {
	Name        string
	Description string
}

// CreateDeckResponse represents the response from creating a deck
type CreateDeckResponse struct {
	Deck *domain.Deck
}

// Create creates a new empty deck. Fails with ErrDuplicateName if a
// deck of that name already exists.
func (s *DeckService) Create(ctx context.Context, req CreateDeckRequest) (*CreateDeckResponse, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	deck, err := domain.NewDeck(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := store.AddDeck(deck); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, store); err != nil {
		return nil, err
	}

	return &CreateDeckResponse{Deck: deck}, nil
}

// RenameDeckRequest represents a request to rename a deck
type RenameDeckRequest struct {
	OldName string
	NewName string
}

// Rename moves a deck to a new unique name.
func (s *DeckService) Rename(ctx context.Context, req RenameDeckRequest) error {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	if err := domain.ValidateDeckName(req.NewName); err != nil {
		return err
	}

	deck, ok := store.Deck(req.OldName)
	if !ok {
		return fmt.Errorf("%w: deck %q", domain.ErrNotFound, req.OldName)
	}
	if _, exists := store.Deck(req.NewName); exists {
		return fmt.Errorf("%w: deck %q", domain.ErrDuplicateName, req.NewName)
	}

	delete(store.Decks, req.OldName)
	deck.Name = req.NewName
	store.Decks[req.NewName] = deck
	if store.Settings.LastUsedDeck == req.OldName {
		store.Settings.LastUsedDeck = req.NewName
	}

	return s.repo.Save(ctx, store)
}

// DeleteDeckRequest represents a request to delete a deck
type DeleteDeckRequest struct {
	Name string
}

// DeleteDeckResponse reports what the cascade removed.
type DeleteDeckResponse struct {
	CardsDeleted  int
	ImagesDropped int
}

// Delete removes a deck and all its cards. Attachments owned solely
// by the deck's cards are released after the store is durably saved
// (commit-then-release).
func (s *DeckService) Delete(ctx context.Context, req DeleteDeckRequest) (*DeleteDeckResponse, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	deck, ok := store.RemoveDeck(req.Name)
	if !ok {
		return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, req.Name)
	}

	var refs []string
	for _, c := range deck.Cards {
		refs = append(refs, c.ImageRefs()...)
	}

	if err := s.repo.Save(ctx, store); err != nil {
		return nil, err
	}

	// Commit succeeded; now drop attachments nothing references.
	dropped := 0
	for _, ref := range refs {
		if !store.ReferencesImage(ref) && s.attachments.Exists(ref) {
			if err := s.attachments.Release(ctx, store, ref); err == nil {
				dropped++
			}
		}
	}

	return &DeleteDeckResponse{
		CardsDeleted:  len(deck.Cards),
		ImagesDropped: dropped,
	}, nil
}

// DeckSummary is a lightweight deck listing row.
type DeckSummary struct {
	Name         string
	Description  string
	CardCount    int
	Created      time.Time
	LastStudied  *time.Time
	TotalStudies int
}

// ListDecksRequest represents a request to list decks
type ListDecksRequest struct {
	SortBy  string // "name", "cards", "studied" (default: name)
	Reverse bool
}

// ListDecksResponse represents the response from listing decks
type ListDecksResponse struct {
	Decks []DeckSummary
	Total int
}

// List returns summaries of all decks with optional sorting.
func (s *DeckService) List(ctx context.Context, req ListDecksRequest) (*ListDecksResponse, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]DeckSummary, 0, len(store.Decks))
	for _, name := range store.DeckNames() {
		d := store.Decks[name]
		summaries = append(summaries, DeckSummary{
			Name:         d.Name,
			Description:  d.Description,
			CardCount:    d.CardCount(),
			Created:      d.Created,
			LastStudied:  d.LastStudied,
			TotalStudies: d.Stats.TotalStudies,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		var less bool
		switch req.SortBy {
		case "cards":
			less = summaries[i].CardCount < summaries[j].CardCount
		case "studied":
			less = summaries[i].TotalStudies < summaries[j].TotalStudies
		default: // "name"
			less = strings.ToLower(summaries[i].Name) < strings.ToLower(summaries[j].Name)
		}
		if req.Reverse {
			return !less
		}
		return less
	})

	return &ListDecksResponse{Decks: summaries, Total: len(summaries)}, nil
}

// Get returns a single deck by name.
func (s *DeckService) Get(ctx context.Context, name string) (*domain.Deck, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	deck, ok := store.Deck(name)
	if !ok {
		return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, name)
	}
	return deck, nil
}
