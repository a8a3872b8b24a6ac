package services

import (
	"context"
	"testing"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
)

func TestSweepDeletesOrphans(t *testing.T) {
	env := newTestEnv()

	referenced := domain.GenerateImageName(".png")
	orphan := domain.GenerateImageName(".jpg")
	env.images.Put(referenced, []byte("keep"))
	env.images.Put(orphan, []byte("drop"))

	card := mustCard(t, "q", "a")
	card.QuestionImage = referenced
	env.seedDeck(t, "Spanish", card)

	svc := NewSweepService(env.repo, env.images)
	resp, err := svc.Execute(context.Background(), SweepRequest{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if resp.Scanned != 2 {
		t.Errorf("expected 2 files scanned, got %d", resp.Scanned)
	}
	if resp.Deleted != 1 {
		t.Errorf("expected 1 file deleted, got %d", resp.Deleted)
	}
	if env.images.Exists(orphan) {
		t.Error("orphan should be gone")
	}
	if !env.images.Exists(referenced) {
		t.Error("referenced file must survive a sweep")
	}
}

func TestSweepDryRun(t *testing.T) {
	env := newTestEnv()

	orphan := domain.GenerateImageName(".png")
	env.images.Put(orphan, []byte("drop"))

	svc := NewSweepService(env.repo, env.images)
	resp, err := svc.Execute(context.Background(), SweepRequest{DryRun: true})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(resp.Orphans) != 1 {
		t.Errorf("expected 1 orphan reported, got %d", len(resp.Orphans))
	}
	if resp.Deleted != 0 {
		t.Errorf("dry run must not delete, got %d deletions", resp.Deleted)
	}
	if !env.images.Exists(orphan) {
		t.Error("dry run deleted a file")
	}
}

func TestSweepCancelledContext(t *testing.T) {
	env := newTestEnv()

	for i := 0; i < 3; i++ {
		env.images.Put(domain.GenerateImageName(".png"), []byte("x"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewSweepService(env.repo, env.images)
	resp, err := svc.Execute(ctx, SweepRequest{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !resp.Cancelled {
		t.Error("expected the sweep to report cancellation")
	}
	if resp.Deleted != 0 {
		t.Errorf("cancelled sweep deleted %d files", resp.Deleted)
	}
	if len(env.images.Deletes) != 0 {
		t.Errorf("cancelled sweep issued deletes: %v", env.images.Deletes)
	}
}
