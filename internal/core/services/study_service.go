package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/ports"
)

// StudyService creates study sessions and persists their results.
// The session itself is a pure domain state machine; this service
// feeds it cards and writes the outcome back to the store.
type StudyService struct {
	repo ports.StoreRepository
}

// NewStudyService creates a new study service.
func NewStudyService(repo ports.StoreRepository) *StudyService {
	return &StudyService{repo: repo}
}

// StartStudyRequest represents a request to start a session. An empty
// Deck studies all decks.
type StartStudyRequest struct {
	Deck  string
	Order domain.Order
}

// StartStudyResponse represents the response from starting a session
type StartStudyResponse struct {
	Session *StudySessionHandle
	Total   int
}

// StudySessionHandle pairs the running session with the cards it was
// built from so Finish can update review counts.
type StudySessionHandle struct {
	Session *domain.Session
}

// Start builds and activates a session over the requested cards.
// Random order shuffles once here; sequential keeps deck order.
func (s *StudyService) Start(ctx context.Context, req StartStudyRequest) (*StartStudyResponse, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	var cards []domain.StudyCard
	if req.Deck != "" {
		deck, ok := store.Deck(req.Deck)
		if !ok {
			return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, req.Deck)
		}
		for _, c := range deck.Cards {
			cards = append(cards, domain.StudyCard{Deck: deck.Name, Card: c})
		}
	} else {
		for _, name := range store.DeckNames() {
			for _, c := range store.Decks[name].Cards {
				cards = append(cards, domain.StudyCard{Deck: name, Card: c})
			}
		}
	}

	if len(cards) == 0 {
		return &StartStudyResponse{Total: 0}, nil
	}

	session := domain.NewSession(req.Deck, req.Order, cards)
	if err := session.Start(); err != nil {
		return nil, err
	}

	return &StartStudyResponse{
		Session: &StudySessionHandle{Session: session},
		Total:   len(cards),
	}, nil
}

// FinishStudyRequest represents a request to finish a session
type FinishStudyRequest struct {
	Session *StudySessionHandle
}

// FinishStudyResponse represents the persisted session outcome
type FinishStudyResponse struct {
	Record domain.SessionRecord
}

// Finish ends the session, appends the record to the store's
// append-only session log, folds the result into deck statistics and
// per-card review counts, and saves the store.
func (s *StudyService) Finish(ctx context.Context, req FinishStudyRequest) (*FinishStudyResponse, error) {
	session := req.Session.Session

	record, err := session.End()
	if err != nil {
		return nil, err
	}

	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	store.AppendSession(record)

	// Bump review counts on the cards that were actually recorded.
	for _, event := range session.Events() {
		deck, ok := store.Deck(event.Deck)
		if !ok {
			continue
		}
		if card, ok := deck.FindCard(event.CardID); ok {
			card.ReviewCount++
		}
	}

	if session.DeckName != "" {
		if deck, ok := store.Deck(session.DeckName); ok {
			deck.RecordStudy(record.Date, record.Duration)
		}
		store.Settings.LastUsedDeck = session.DeckName
	}

	if err := s.repo.Save(ctx, store); err != nil {
		return nil, err
	}

	return &FinishStudyResponse{Record: record}, nil
}
