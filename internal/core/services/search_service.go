package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/ports"
)

// SearchService finds cards across all decks.
type SearchService struct {
	repo ports.StoreRepository
}

// NewSearchService creates a new search service.
func NewSearchService(repo ports.StoreRepository) *SearchService {
	return &SearchService{repo: repo}
}

// SearchRequest represents a card search
type SearchRequest struct {
	Query string
	Deck  string // restrict to one deck (optional)
	Tag   string // restrict to one tag (optional)
	Limit int    // 0 means unlimited
}

// SearchResult is one matching card with its owning deck.
type SearchResult struct {
	Deck string
	Card *domain.Card
}

// SearchResponse represents the response from a search
type SearchResponse struct {
	Results   []SearchResult
	Total     int
	Truncated bool
}

// Execute performs a case-insensitive substring search over question,
// answer and tags of every card, deck by deck in name order so
// results are stable.
func (s *SearchService) Execute(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	query := strings.ToLower(strings.TrimSpace(req.Query))
	if query == "" && req.Tag == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrValidation)
	}

	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	deckNames := store.DeckNames()
	if req.Deck != "" {
		if _, ok := store.Deck(req.Deck); !ok {
			return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, req.Deck)
		}
		deckNames = []string{req.Deck}
	}

	resp := &SearchResponse{}
	for _, name := range deckNames {
		for _, card := range store.Decks[name].Cards {
			if req.Tag != "" && !card.HasTag(req.Tag) {
				continue
			}
			if query != "" && !card.Matches(query) {
				continue
			}

			resp.Total++
			if req.Limit > 0 && len(resp.Results) >= req.Limit {
				resp.Truncated = true
				continue
			}
			resp.Results = append(resp.Results, SearchResult{Deck: name, Card: card})
		}
	}

	return resp, nil
}
