package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/ports"
)

// AttachmentService manages image files on behalf of the deck store.
// It is the only component that creates or deletes attachment files;
// reference counts are always derived from card state, never stored.
type AttachmentService struct {
	images ports.ImageStore
}

// NewAttachmentService creates a new attachment service.
func NewAttachmentService(images ports.ImageStore) *AttachmentService {
	return &AttachmentService{images: images}
}

// Attach copies a source file into the images directory and returns
// the generated attachment filename.
func (s *AttachmentService) Attach(ctx context.Context, srcPath string) (string, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: source file %s", domain.ErrNotFound, srcPath)
		}
		return "", fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	name, err := s.images.Store(ctx, f, filepath.Ext(srcPath))
	if err != nil {
		return "", err
	}
	return name, nil
}

// Resolve reads an attachment's bytes.
func (s *AttachmentService) Resolve(ctx context.Context, name string) ([]byte, error) {
	return s.images.Resolve(ctx, name)
}

// Release deletes an attachment file if the (already saved) store no
// longer references it. Callers must save the store BEFORE releasing:
// commit-then-release ordering ensures a failed commit never loses
// the only copy of an image.
func (s *AttachmentService) Release(ctx context.Context, store *domain.Store, name string) error {
	if name == "" {
		return nil
	}
	if store.ReferencesImage(name) {
		// Another card still points here; nothing to do.
		return nil
	}
	return s.images.Delete(ctx, name)
}

// ReleaseAll releases a batch of references, continuing past
// individual failures so one stubborn file does not orphan the rest.
func (s *AttachmentService) ReleaseAll(ctx context.Context, store *domain.Store, names []string) error {
	var firstErr error
	for _, name := range names {
		if err := s.Release(ctx, store, name); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the absolute path of an attachment file.
func (s *AttachmentService) Path(name string) string {
	return s.images.Path(name)
}

// Exists checks if an attachment file is present.
func (s *AttachmentService) Exists(name string) bool {
	return s.images.Exists(name)
}
