package domain

import (
	"fmt"
	"strings"
	"time"
)

// DeckStats accumulates study activity for a deck.
type DeckStats struct {
	TotalStudies int     `json:"total_studies"`
	TotalTime    float64 `json:"total_time"` // seconds
}

// Deck is a named collection of cards. The name is the key in the
// store's deck map, so it is excluded from the serialized deck body
// and restored after load.
type Deck struct {
	Name        string     `json:"-"`
	Description string     `json:"description,omitempty"`
	Cards       []*Card    `json:"cards"`
	Created     time.Time  `json:"created"`
	LastStudied *time.Time `json:"last_studied,omitempty"`
	Stats       DeckStats  `json:"stats"`
}

// ValidateDeckName checks if a deck name is valid.
func ValidateDeckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: deck name cannot be empty", ErrValidation)
	}
	if len(name) > 100 {
		return fmt.Errorf("%w: deck name too long (max 100 characters)", ErrValidation)
	}
	return nil
}

// NewDeck creates an empty deck.
func NewDeck(name, description string) (*Deck, error) {
	if err := ValidateDeckName(name); err != nil {
		return nil, err
	}

	return &Deck{
		Name:        name,
		Description: description,
		Cards:       []*Card{},
		Created:     time.Now(),
	}, nil
}

// FindCard returns the card with the given identifier.
func (d *Deck) FindCard(id string) (*Card, bool) {
	for _, c := range d.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// AddCard appends a card, enforcing identifier uniqueness within the deck.
func (d *Deck) AddCard(card *Card) error {
	if _, exists := d.FindCard(card.ID); exists {
		return fmt.Errorf("%w: card id %s already exists in deck %q", ErrValidation, card.ID, d.Name)
	}
	d.Cards = append(d.Cards, card)
	return nil
}

// RemoveCard removes and returns the card with the given identifier.
func (d *Deck) RemoveCard(id string) (*Card, bool) {
	for i, c := range d.Cards {
		if c.ID == id {
			d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
			return c, true
		}
	}
	return nil, false
}

// CardCount returns the number of cards in the deck.
func (d *Deck) CardCount() int {
	return len(d.Cards)
}

// RecordStudy folds a finished session into the deck statistics.
func (d *Deck) RecordStudy(at time.Time, duration float64) {
	t := at
	d.LastStudied = &t
	d.Stats.TotalStudies++
	d.Stats.TotalTime += duration
}
