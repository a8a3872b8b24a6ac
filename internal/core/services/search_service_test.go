package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
)

func searchFixture(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv()
	env.seedDeck(t, "Spanish",
		mustCard(t, "How do you say Hello?", "hola", "greetings"),
		mustCard(t, "goodbye", "adiós", "greetings"),
	)
	env.seedDeck(t, "Go",
		mustCard(t, "what does defer do", "runs at function exit", "language"),
	)
	return env
}

func TestSearchMatchesAllFields(t *testing.T) {
	env := searchFixture(t)
	svc := NewSearchService(env.repo)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"question match case-insensitive", "HELLO", 1},
		{"answer match", "adiós", 1},
		{"tag match", "greet", 2},
		{"cross-deck match", "o", 3},
		{"no match", "zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Execute(context.Background(), SearchRequest{Query: tt.query})
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if resp.Total != tt.want {
				t.Errorf("query %q: expected %d matches, got %d", tt.query, tt.want, resp.Total)
			}
		})
	}
}

func TestSearchDeckFilter(t *testing.T) {
	env := searchFixture(t)
	svc := NewSearchService(env.repo)

	resp, err := svc.Execute(context.Background(), SearchRequest{Query: "o", Deck: "Go"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected 1 match within deck, got %d", resp.Total)
	}

	_, err = svc.Execute(context.Background(), SearchRequest{Query: "o", Deck: "ghost"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown deck, got %v", err)
	}
}

func TestSearchTagFilter(t *testing.T) {
	env := searchFixture(t)
	svc := NewSearchService(env.repo)

	resp, err := svc.Execute(context.Background(), SearchRequest{Tag: "greetings"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("expected 2 tagged cards, got %d", resp.Total)
	}
}

func TestSearchLimitTruncates(t *testing.T) {
	env := searchFixture(t)
	svc := NewSearchService(env.repo)

	resp, err := svc.Execute(context.Background(), SearchRequest{Query: "o", Limit: 2})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("expected 2 returned results, got %d", len(resp.Results))
	}
	if resp.Total != 3 {
		t.Errorf("total should count past the limit, got %d", resp.Total)
	}
	if !resp.Truncated {
		t.Error("expected the response to be marked truncated")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	env := searchFixture(t)
	svc := NewSearchService(env.repo)

	_, err := svc.Execute(context.Background(), SearchRequest{Query: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestTagServiceList(t *testing.T) {
	env := searchFixture(t)
	svc := NewTagService(env.repo)

	resp, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 tags, got %d", resp.Total)
	}
	if resp.Tags[0].Tag != "greetings" || resp.Tags[0].Count != 2 {
		t.Errorf("expected greetings(2) first, got %+v", resp.Tags[0])
	}
	if resp.Tags[1].Tag != "language" || resp.Tags[1].Count != 1 {
		t.Errorf("expected language(1) second, got %+v", resp.Tags[1])
	}
}
