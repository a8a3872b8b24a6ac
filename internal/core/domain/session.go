package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Order controls card presentation during a study session.
type Order string

const (
	OrderSequential Order = "sequential"
	OrderRandom     Order = "random"
)

// ParseOrder validates a study order string.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case OrderSequential, OrderRandom:
		return Order(s), nil
	case "":
		return OrderSequential, nil
	}
	return "", fmt.Errorf("%w: unknown study order %q", ErrValidation, s)
}

// Outcome is the recorded result for a single card.
type Outcome string

const (
	OutcomeKnew   Outcome = "knew_it"
	OutcomeMissed Outcome = "did_not_know"
)

// SessionState is the session lifecycle: NotStarted -> Active -> Ended.
type SessionState int

const (
	SessionNotStarted SessionState = iota
	SessionActive
	SessionEnded
)

func (s SessionState) String() string {
	switch s {
	case SessionNotStarted:
		return "not-started"
	case SessionActive:
		return "active"
	case SessionEnded:
		return "ended"
	}
	return "unknown"
}

// ReviewEvent is one recorded outcome within a session.
type ReviewEvent struct {
	CardID  string
	Deck    string
	Outcome Outcome
	At      time.Time
}

// StudyCard pairs a card with its owning deck so that all-deck
// sessions know where each card came from.
type StudyCard struct {
	Deck string
	Card *Card
}

// AllDecks is the deck label used for sessions spanning every deck.
const AllDecks = "All Decks"

// Session drives one run through a queue of cards. Random order is a
// single shuffle performed at session start, so the queue is stable
// for the whole session. Reaching the end of the queue does not end
// the session; the caller must call End explicitly.
type Session struct {
	ID       string
	DeckName string // "" means all decks
	Order    Order

	state     SessionState
	queue     []StudyCard
	cursor    int
	events    []ReviewEvent
	startedAt time.Time
	endedAt   time.Time
}

// NewSession builds a session over the given cards. The queue is
// shuffled once here when the order is random.
func NewSession(deckName string, order Order, cards []StudyCard) *Session {
	queue := make([]StudyCard, len(cards))
	copy(queue, cards)

	if order == OrderRandom {
		rand.Shuffle(len(queue), func(i, j int) {
			queue[i], queue[j] = queue[j], queue[i]
		})
	}

	return &Session{
		ID:       uuid.NewString(),
		DeckName: deckName,
		Order:    order,
		state:    SessionNotStarted,
		queue:    queue,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Start transitions NotStarted -> Active.
func (s *Session) Start() error {
	if s.state != SessionNotStarted {
		return fmt.Errorf("%w: cannot start a %s session", ErrInvalidState, s.state)
	}
	s.state = SessionActive
	s.startedAt = time.Now()
	return nil
}

// Current returns the card at the cursor. The second return value is
// false once the queue is exhausted; the session stays Active so the
// caller can show a summary before calling End.
func (s *Session) Current() (StudyCard, bool) {
	if s.state != SessionActive || s.cursor >= len(s.queue) {
		return StudyCard{}, false
	}
	return s.queue[s.cursor], true
}

// Record stores the outcome for the current card and advances the
// cursor. Only valid while the session is Active with a current card.
func (s *Session) Record(outcome Outcome) error {
	if s.state != SessionActive {
		return fmt.Errorf("%w: cannot record in a %s session", ErrInvalidState, s.state)
	}
	current, ok := s.Current()
	if !ok {
		return fmt.Errorf("%w: no card left to record", ErrInvalidState)
	}

	s.events = append(s.events, ReviewEvent{
		CardID:  current.Card.ID,
		Deck:    current.Deck,
		Outcome: outcome,
		At:      time.Now(),
	})
	s.cursor++
	return nil
}

// End transitions Active -> Ended and computes the final record. The
// session is immutable afterwards.
func (s *Session) End() (SessionRecord, error) {
	if s.state != SessionActive {
		return SessionRecord{}, fmt.Errorf("%w: cannot end a %s session", ErrInvalidState, s.state)
	}
	s.state = SessionEnded
	s.endedAt = time.Now()

	deck := s.DeckName
	if deck == "" {
		deck = AllDecks
	}

	return SessionRecord{
		ID:           s.ID,
		Date:         s.endedAt,
		Deck:         deck,
		CardsStudied: len(s.events),
		CardsKnown:   s.knownCount(),
		Duration:     s.endedAt.Sub(s.startedAt).Seconds(),
		Accuracy:     s.Accuracy(),
	}, nil
}

// Events returns the recorded outcomes so far.
func (s *Session) Events() []ReviewEvent {
	return s.events
}

// Progress returns recorded and total card counts.
func (s *Session) Progress() (done, total int) {
	return s.cursor, len(s.queue)
}

// Accuracy is knew_it count over total recorded, exactly 0 when
// nothing was recorded.
func (s *Session) Accuracy() float64 {
	if len(s.events) == 0 {
		return 0
	}
	return float64(s.knownCount()) / float64(len(s.events))
}

// StartedAt returns the session start time (zero before Start).
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

func (s *Session) knownCount() int {
	known := 0
	for _, e := range s.events {
		if e.Outcome == OutcomeKnew {
			known++
		}
	}
	return known
}

// SessionRecord is the persisted summary of a finished session,
// appended to the store's session log.
type SessionRecord struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Deck         string    `json:"deck"`
	CardsStudied int       `json:"cards_studied"`
	CardsKnown   int       `json:"cards_known"`
	Duration     float64   `json:"duration"` // seconds
	Accuracy     float64   `json:"accuracy"`
}
