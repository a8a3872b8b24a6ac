package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/ports"
	"github.com/kamal-hamza/fc-cli/pkg/vault"
)

// FileStoreRepository persists the deck store as a single JSON
// document in the vault. Loads are schema-tolerant: documents written
// by older versions (cards without identifiers, a study_history key
// instead of sessions) are upgraded in place, and unknown or missing
// fields default instead of failing the load. Saves are atomic:
// the document is written to a temporary sibling and renamed over the
// data file, so a crash mid-write never corrupts existing data.
type FileStoreRepository struct {
	vault *vault.Vault
	mu    sync.RWMutex
}

// NewFileStoreRepository creates a file-backed store repository.
func NewFileStoreRepository(v *vault.Vault) *FileStoreRepository {
	return &FileStoreRepository{vault: v}
}

// Ensure it implements the interface
var _ ports.StoreRepository = (*FileStoreRepository)(nil)

// Load reads and upgrades the persisted store. A missing data file
// yields an empty store. Dangling image references (cards pointing at
// files that no longer exist) are cleared rather than failing the
// load: availability of the user's data wins over strict validation.
func (r *FileStoreRepository) Load(ctx context.Context) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.vault.DataFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewStore(), nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	store, err := DecodeStore(data)
	if err != nil {
		return nil, err
	}

	r.repairDanglingRefs(store)
	return store, nil
}

// Save persists the full store atomically.
func (r *FileStoreRepository) Save(ctx context.Context, store *domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	store.SchemaVersion = domain.CurrentSchemaVersion

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	target := r.vault.DataFilePath()
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary data file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	return nil
}

// Exists checks if a persisted store is present.
func (r *FileStoreRepository) Exists() bool {
	_, err := os.Stat(r.vault.DataFilePath())
	return err == nil
}

// DataPath returns the absolute path of the data file.
func (r *FileStoreRepository) DataPath() string {
	return r.vault.DataFilePath()
}

// repairDanglingRefs clears image references whose files are gone.
func (r *FileStoreRepository) repairDanglingRefs(store *domain.Store) {
	for _, deck := range store.Decks {
		for _, card := range deck.Cards {
			if card.QuestionImage != "" {
				if _, err := os.Stat(r.vault.GetImagePath(card.QuestionImage)); err != nil {
					card.QuestionImage = ""
				}
			}
			if card.AnswerImage != "" {
				if _, err := os.Stat(r.vault.GetImagePath(card.AnswerImage)); err != nil {
					card.AnswerImage = ""
				}
			}
		}
	}
}

// Decoder adapts DecodeStore to the ports.StoreDecoder interface.
type Decoder struct{}

var _ ports.StoreDecoder = Decoder{}

// Decode parses a raw store document.
func (Decoder) Decode(data []byte) (*domain.Store, error) {
	return DecodeStore(data)
}

// -----------------------------------------------------------------------------
// Schema-tolerant decoding
// -----------------------------------------------------------------------------

// Raw mirror types accept every schema version ever written: v1 came
// from the original app (no card ids, ISO timestamps without zone,
// study_history and a global tags list), v2 is the current layout.

type rawStore struct {
	SchemaVersion int                `json:"schema_version"`
	Decks         map[string]rawDeck `json:"decks"`
	Settings      domain.Settings    `json:"settings"`
	Sessions      []rawSession       `json:"sessions"`
	StudyHistory  []rawSession       `json:"study_history"` // v1
}

type rawDeck struct {
	Description string           `json:"description"`
	Cards       []rawCard        `json:"cards"`
	Created     string           `json:"created"`
	LastStudied *string          `json:"last_studied"`
	Stats       domain.DeckStats `json:"stats"`
}

type rawCard struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Answer        string   `json:"answer"`
	QuestionImage string   `json:"question_image"`
	AnswerImage   string   `json:"answer_image"`
	Tags          []string `json:"tags"`
	Created       string   `json:"created"`
	Modified      string   `json:"modified"`
	ReviewCount   int      `json:"review_count"`
}

type rawSession struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	Deck         string   `json:"deck"`
	CardsStudied int      `json:"cards_studied"`
	CardsKnown   int      `json:"cards_known"`
	Duration     float64  `json:"duration"`
	Accuracy     *float64 `json:"accuracy"`
}

// DecodeStore parses a persisted document of any known schema version
// into the current in-memory representation. Shared by Load and by
// backup restore (which validates archives before swapping them in).
func DecodeStore(data []byte) (*domain.Store, error) {
	var raw rawStore
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: cannot parse data file: %v", domain.ErrValidation, err)
	}

	store := domain.NewStore()
	store.Settings = raw.Settings

	for name, rd := range raw.Decks {
		deck := &domain.Deck{
			Name:        name,
			Description: rd.Description,
			Created:     parseWhen(rd.Created),
			Stats:       rd.Stats,
			Cards:       make([]*domain.Card, 0, len(rd.Cards)),
		}
		if rd.LastStudied != nil && *rd.LastStudied != "" {
			t := parseWhen(*rd.LastStudied)
			deck.LastStudied = &t
		}

		for _, rc := range rd.Cards {
			card := &domain.Card{
				ID:            rc.ID,
				Question:      rc.Question,
				Answer:        rc.Answer,
				QuestionImage: rc.QuestionImage,
				AnswerImage:   rc.AnswerImage,
				Tags:          rc.Tags,
				Created:       parseWhen(rc.Created),
				Modified:      parseWhen(rc.Modified),
				ReviewCount:   rc.ReviewCount,
			}
			if card.Modified.IsZero() {
				card.Modified = card.Created
			}
			deck.Cards = append(deck.Cards, card)
		}
		store.Decks[name] = deck
	}

	// v1 kept session records under study_history; merge both keys.
	sessions := append([]rawSession{}, raw.Sessions...)
	sessions = append(sessions, raw.StudyHistory...)
	for _, rs := range sessions {
		rec := domain.SessionRecord{
			ID:           rs.ID,
			Date:         parseWhen(rs.Date),
			Deck:         rs.Deck,
			CardsStudied: rs.CardsStudied,
			CardsKnown:   rs.CardsKnown,
			Duration:     rs.Duration,
		}
		if rs.Accuracy != nil {
			rec.Accuracy = *rs.Accuracy
		} else if rs.CardsStudied > 0 {
			rec.Accuracy = float64(rs.CardsKnown) / float64(rs.CardsStudied)
		}
		store.Sessions = append(store.Sessions, rec)
	}

	// Normalize assigns ids to legacy cards and restores deck names.
	store.Normalize()
	return store, nil
}

// timeLayouts covers current RFC3339 output and the zone-less ISO
// strings the original app wrote.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseWhen(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
