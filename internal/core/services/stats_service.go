package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/ports"
)

// StatsService aggregates the append-only session log into study
// statistics. Everything here is derived; the log itself is never
// modified.
type StatsService struct {
	repo ports.StoreRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(repo ports.StoreRepository) *StatsService {
	return &StatsService{repo: repo}
}

// DayActivity is one cell of the recent-activity heatmap.
type DayActivity struct {
	Date     time.Time
	Sessions int
	Cards    int
}

// DeckStatsRow is the per-deck slice of the statistics.
type DeckStatsRow struct {
	Deck        string
	Cards       int
	Studies     int
	TotalTime   float64 // seconds
	LastStudied *time.Time
}

// StatsRequest represents a request for study statistics. An empty
// Deck aggregates across all decks.
type StatsRequest struct {
	Deck string
}

// StatsResponse represents the aggregated statistics
type StatsResponse struct {
	TotalSessions   int
	CardsStudied    int
	CardsKnown      int
	TotalTime       float64 // seconds
	AverageAccuracy float64
	Streak          int // consecutive days with at least one session
	Heatmap         []DayActivity
	Decks           []DeckStatsRow
}

// Execute computes statistics from the session log and deck state.
func (s *StatsService) Execute(ctx context.Context, req StatsRequest) (*StatsResponse, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	sessions := store.Sessions
	if req.Deck != "" {
		if _, ok := store.Deck(req.Deck); !ok {
			return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, req.Deck)
		}
		filtered := make([]domain.SessionRecord, 0, len(sessions))
		for _, rec := range sessions {
			if rec.Deck == req.Deck {
				filtered = append(filtered, rec)
			}
		}
		sessions = filtered
	}

	resp := &StatsResponse{TotalSessions: len(sessions)}
	for _, rec := range sessions {
		resp.CardsStudied += rec.CardsStudied
		resp.CardsKnown += rec.CardsKnown
		resp.TotalTime += rec.Duration
	}
	if resp.CardsStudied > 0 {
		resp.AverageAccuracy = float64(resp.CardsKnown) / float64(resp.CardsStudied)
	}

	resp.Streak = computeStreak(sessions, time.Now())
	resp.Heatmap = computeHeatmap(sessions, time.Now())

	deckNames := store.DeckNames()
	if req.Deck != "" {
		deckNames = []string{req.Deck}
	}
	for _, name := range deckNames {
		deck := store.Decks[name]
		resp.Decks = append(resp.Decks, DeckStatsRow{
			Deck:        name,
			Cards:       deck.CardCount(),
			Studies:     deck.Stats.TotalStudies,
			TotalTime:   deck.Stats.TotalTime,
			LastStudied: deck.LastStudied,
		})
	}

	return resp, nil
}

// HistoryRequest represents a request for recent session records.
type HistoryRequest struct {
	Deck  string
	Limit int // 0 means all
}

// HistoryResponse represents the response from a history query
type HistoryResponse struct {
	Records []domain.SessionRecord
	Total   int
}

// History returns session records, most recent first.
func (s *StatsService) History(ctx context.Context, req HistoryRequest) (*HistoryResponse, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]domain.SessionRecord, 0, len(store.Sessions))
	for _, rec := range store.Sessions {
		if req.Deck != "" && rec.Deck != req.Deck {
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	total := len(records)
	if req.Limit > 0 && len(records) > req.Limit {
		records = records[:req.Limit]
	}

	return &HistoryResponse{Records: records, Total: total}, nil
}

// dayKey truncates a timestamp to its local calendar day.
func dayKey(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// computeStreak counts consecutive days with at least one session,
// walking backwards from today. A streak that ended yesterday still
// counts: today's session simply has not happened yet.
func computeStreak(sessions []domain.SessionRecord, now time.Time) int {
	days := make(map[time.Time]bool)
	for _, rec := range sessions {
		days[dayKey(rec.Date)] = true
	}

	day := dayKey(now)
	if !days[day] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for days[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// computeHeatmap aggregates the last seven days, oldest first.
func computeHeatmap(sessions []domain.SessionRecord, now time.Time) []DayActivity {
	today := dayKey(now)
	cells := make([]DayActivity, 7)
	index := make(map[time.Time]int, 7)
	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i-6)
		cells[i] = DayActivity{Date: date}
		index[date] = i
	}

	for _, rec := range sessions {
		if i, ok := index[dayKey(rec.Date)]; ok {
			cells[i].Sessions++
			cells[i].Cards += rec.CardsStudied
		}
	}
	return cells
}
