package domain

import (
	"fmt"
	"sort"
)

// CurrentSchemaVersion is the on-disk schema written by this build.
// Version 1 is the legacy layout (cards without identifiers, a global
// tag list and a separate study_history key); version 2 is the current
// layout. Loads of older versions are upgraded in place.
const CurrentSchemaVersion = 2

// Settings holds process-wide preferences persisted with the store,
// loaded on startup and flushed on exit.
type Settings struct {
	LastUsedDeck string `json:"last_used_deck,omitempty"`
	Theme        string `json:"theme"`
	StudyMode    string `json:"study_mode"`
}

// Store is the full persisted document: every deck, the settings block
// and the append-only study session log. The store is the single owner
// of deck and card records.
type Store struct {
	SchemaVersion int              `json:"schema_version"`
	Decks         map[string]*Deck `json:"decks"`
	Settings      Settings         `json:"settings"`
	Sessions      []SessionRecord  `json:"sessions"`
}

// NewStore creates an empty store with default settings.
func NewStore() *Store {
	return &Store{
		SchemaVersion: CurrentSchemaVersion,
		Decks:         make(map[string]*Deck),
		Settings: Settings{
			Theme:     "auto",
			StudyMode: string(OrderSequential),
		},
		Sessions: []SessionRecord{},
	}
}

// Deck returns the deck with the given name.
func (s *Store) Deck(name string) (*Deck, bool) {
	d, ok := s.Decks[name]
	return d, ok
}

// AddDeck inserts a deck, enforcing name uniqueness.
func (s *Store) AddDeck(deck *Deck) error {
	if _, exists := s.Decks[deck.Name]; exists {
		return fmt.Errorf("%w: deck %q", ErrDuplicateName, deck.Name)
	}
	s.Decks[deck.Name] = deck
	return nil
}

// RemoveDeck deletes and returns the deck with the given name. The
// last-used-deck setting is cleared if it pointed at the removed deck.
func (s *Store) RemoveDeck(name string) (*Deck, bool) {
	d, ok := s.Decks[name]
	if !ok {
		return nil, false
	}
	delete(s.Decks, name)
	if s.Settings.LastUsedDeck == name {
		s.Settings.LastUsedDeck = ""
	}
	return d, true
}

// DeckNames returns all deck names, sorted.
func (s *Store) DeckNames() []string {
	names := make([]string, 0, len(s.Decks))
	for name := range s.Decks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TotalCards counts cards across all decks.
func (s *Store) TotalCards() int {
	total := 0
	for _, d := range s.Decks {
		total += len(d.Cards)
	}
	return total
}

// CardRef locates a card across decks.
type CardRef struct {
	Deck   string
	CardID string
}

// TagIndex computes the derived tag index: tag -> referencing cards.
// Tags are not a standalone entity; the index is recomputed from card
// state whenever it is needed.
func (s *Store) TagIndex() map[string][]CardRef {
	index := make(map[string][]CardRef)
	for _, name := range s.DeckNames() {
		for _, c := range s.Decks[name].Cards {
			for _, t := range c.Tags {
				index[t] = append(index[t], CardRef{Deck: name, CardID: c.ID})
			}
		}
	}
	return index
}

// ImageRefCounts computes the derived reference count of every image
// mentioned by any card. Attachment lifetime is driven entirely by
// these counts; nothing is stored.
func (s *Store) ImageRefCounts() map[string]int {
	counts := make(map[string]int)
	for _, d := range s.Decks {
		for _, c := range d.Cards {
			for _, ref := range c.ImageRefs() {
				counts[ref]++
			}
		}
	}
	return counts
}

// ReferencesImage reports whether any card still points at the image.
func (s *Store) ReferencesImage(name string) bool {
	if name == "" {
		return false
	}
	for _, d := range s.Decks {
		for _, c := range d.Cards {
			if c.QuestionImage == name || c.AnswerImage == name {
				return true
			}
		}
	}
	return false
}

// AppendSession appends a finished session record. The log is
// append-only; records are never modified after this point.
func (s *Store) AppendSession(rec SessionRecord) {
	s.Sessions = append(s.Sessions, rec)
}

// Normalize restores invariants that serialization cannot express:
// deck names live in the map key, card tag slices must not be nil.
// Called after every load.
func (s *Store) Normalize() {
	if s.Decks == nil {
		s.Decks = make(map[string]*Deck)
	}
	if s.Sessions == nil {
		s.Sessions = []SessionRecord{}
	}
	if s.Settings.Theme == "" {
		s.Settings.Theme = "auto"
	}
	if s.Settings.StudyMode == "" {
		s.Settings.StudyMode = string(OrderSequential)
	}
	for name, d := range s.Decks {
		d.Name = name
		if d.Cards == nil {
			d.Cards = []*Card{}
		}
		for _, c := range d.Cards {
			if c.Tags == nil {
				c.Tags = []string{}
			}
			if c.ID == "" {
				c.ID = NewCardID()
			}
		}
	}
}
