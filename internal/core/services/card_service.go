package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/ports"
)

// CardService handles card operations within decks. Image handling
// follows commit-then-release ordering throughout: new attachment
// files are staged before the store mutation, old references are
// released only after the mutated store is durably saved. A crash in
// between can at worst leave an orphan file, which the sweep repairs;
// it can never leave a card pointing at a deleted file.
type CardService struct {
	repo        ports.StoreRepository
	attachments *AttachmentService
}

// NewCardService creates a new card service.
func NewCardService(repo ports.StoreRepository, attachments *AttachmentService) *CardService {
	return &CardService{
		repo:        repo,
		attachments: attachments,
	}
}

// AddCardRequest represents a request to add a card to a deck
type AddCardRequest struct {
	Deck     string
	Question string
	Answer   string
	Tags     []string

	// Optional source paths of images to attach.
	QuestionImagePath string
	AnswerImagePath   string
}

// AddCardResponse represents the response from adding a card
type AddCardResponse struct {
	Card *domain.Card
}

// Add creates a card with a fresh identifier in the given deck.
func (s *CardService) Add(ctx context.Context, req AddCardRequest) (*AddCardResponse, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	deck, ok := store.Deck(req.Deck)
	if !ok {
		return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, req.Deck)
	}

	card, err := domain.NewCard(req.Question, req.Answer, req.Tags)
	if err != nil {
		return nil, err
	}

	// Stage attachment files before touching the store.
	if req.QuestionImagePath != "" {
		name, err := s.attachments.Attach(ctx, req.QuestionImagePath)
		if err != nil {
			return nil, err
		}
		card.QuestionImage = name
	}
	if req.AnswerImagePath != "" {
		name, err := s.attachments.Attach(ctx, req.AnswerImagePath)
		if err != nil {
			return nil, err
		}
		card.AnswerImage = name
	}

	if err := deck.AddCard(card); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, store); err != nil {
		return nil, err
	}

	return &AddCardResponse{Card: card}, nil
}

// UpdateCardRequest carries the optional field changes of an edit.
// Nil pointers leave the field untouched.
type UpdateCardRequest struct {
	Deck string
	ID   string

	Question *string
	Answer   *string
	Tags     *[]string

	// Image changes: a source path replaces the side's image, the
	// Remove flags clear it. Path wins if both are set.
	QuestionImagePath   string
	RemoveQuestionImage bool
	AnswerImagePath     string
	RemoveAnswerImage   bool
}

// UpdateCardResponse represents the response from updating a card
type UpdateCardResponse struct {
	Card *domain.Card
}

// Update edits a card in place. Old image files are released only
// after the new state is durably committed.
func (s *CardService) Update(ctx context.Context, req UpdateCardRequest) (*UpdateCardResponse, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	deck, ok := store.Deck(req.Deck)
	if !ok {
		return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, req.Deck)
	}
	card, ok := deck.FindCard(req.ID)
	if !ok {
		return nil, fmt.Errorf("%w: card %s in deck %q", domain.ErrNotFound, req.ID, req.Deck)
	}

	if req.Question != nil {
		if err := domain.ValidateCardText(*req.Question); err != nil {
			return nil, err
		}
		card.Question = *req.Question
	}
	if req.Answer != nil {
		card.Answer = *req.Answer
	}
	if req.Tags != nil {
		card.Tags = *req.Tags
		if card.Tags == nil {
			card.Tags = []string{}
		}
	}

	// Stage replacement images first, remember what to release later.
	var releases []string

	switch {
	case req.QuestionImagePath != "":
		name, err := s.attachments.Attach(ctx, req.QuestionImagePath)
		if err != nil {
			return nil, err
		}
		if card.QuestionImage != "" {
			releases = append(releases, card.QuestionImage)
		}
		card.QuestionImage = name
	case req.RemoveQuestionImage && card.QuestionImage != "":
		releases = append(releases, card.QuestionImage)
		card.QuestionImage = ""
	}

	switch {
	case req.AnswerImagePath != "":
		name, err := s.attachments.Attach(ctx, req.AnswerImagePath)
		if err != nil {
			return nil, err
		}
		if card.AnswerImage != "" {
			releases = append(releases, card.AnswerImage)
		}
		card.AnswerImage = name
	case req.RemoveAnswerImage && card.AnswerImage != "":
		releases = append(releases, card.AnswerImage)
		card.AnswerImage = ""
	}

	card.Touch()

	if err := s.repo.Save(ctx, store); err != nil {
		// Keep the old files: the commit failed, so the previous
		// state (which still references them) remains on disk.
		return nil, err
	}

	if err := s.attachments.ReleaseAll(ctx, store, releases); err != nil {
		// The store is consistent; a leftover file is sweepable.
		return &UpdateCardResponse{Card: card}, nil
	}

	return &UpdateCardResponse{Card: card}, nil
}

// DeleteCardRequest represents a request to delete a card
type DeleteCardRequest struct {
	Deck string
	ID   string
}

// Delete removes a card and releases its attachments after commit.
func (s *CardService) Delete(ctx context.Context, req DeleteCardRequest) error {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	deck, ok := store.Deck(req.Deck)
	if !ok {
		return fmt.Errorf("%w: deck %q", domain.ErrNotFound, req.Deck)
	}
	card, ok := deck.RemoveCard(req.ID)
	if !ok {
		return fmt.Errorf("%w: card %s in deck %q", domain.ErrNotFound, req.ID, req.Deck)
	}

	if err := s.repo.Save(ctx, store); err != nil {
		return err
	}

	return s.attachments.ReleaseAll(ctx, store, card.ImageRefs())
}

// Get returns a card by deck name and identifier.
func (s *CardService) Get(ctx context.Context, deckName, id string) (*domain.Card, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	deck, ok := store.Deck(deckName)
	if !ok {
		return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, deckName)
	}
	card, ok := deck.FindCard(id)
	if !ok {
		return nil, fmt.Errorf("%w: card %s in deck %q", domain.ErrNotFound, id, deckName)
	}
	return card, nil
}
