package services

import (
	"context"

	"github.com/kamal-hamza/fc-cli/internal/core/ports"
)

// SweepService deletes orphaned attachment files: files in the images
// directory that no card references. Orphans appear when a crash
// lands between a store commit and the following release; the sweep
// is the defensive repair for that window.
type SweepService struct {
	repo   ports.StoreRepository
	images ports.ImageStore
}

// NewSweepService creates a new sweep service.
func NewSweepService(repo ports.StoreRepository, images ports.ImageStore) *SweepService {
	return &SweepService{
		repo:   repo,
		images: images,
	}
}

// SweepRequest represents a request to sweep orphaned attachments
type SweepRequest struct {
	DryRun bool
}

// SweepResponse represents the result of a sweep
type SweepResponse struct {
	Scanned   int
	Reachable int
	Orphans   []string
	Deleted   int
	Cancelled bool
}

// Execute runs the sweep in two phases. Phase one is read-only: list
// every managed file and compute the reachable set from card
// references. Phase two deletes the orphans one by one, each deletion
// independently committed, checking for cancellation between files —
// a cancelled sweep simply stops and leaves nothing inconsistent.
func (s *SweepService) Execute(ctx context.Context, req SweepRequest) (*SweepResponse, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	files, err := s.images.List(ctx)
	if err != nil {
		return nil, err
	}

	reachable := store.ImageRefCounts()

	resp := &SweepResponse{
		Scanned:   len(files),
		Reachable: len(reachable),
	}

	for _, name := range files {
		if reachable[name] == 0 {
			resp.Orphans = append(resp.Orphans, name)
		}
	}

	if req.DryRun {
		return resp, nil
	}

	for _, name := range resp.Orphans {
		select {
		case <-ctx.Done():
			resp.Cancelled = true
			return resp, nil
		default:
		}

		if err := s.images.Delete(ctx, name); err != nil {
			// Skip stubborn files; the next sweep retries them.
			continue
		}
		resp.Deleted++
	}

	return resp, nil
}
