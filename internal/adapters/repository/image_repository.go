package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/ports"
	"github.com/kamal-hamza/fc-cli/pkg/vault"
)

// FileImageStore keeps attachments as individual files in the vault's
// flat images directory, named img_<timestamp>_<random>.<ext>. Files
// are created with O_EXCL so an existing attachment is never
// overwritten; on a name clash a fresh name is generated.
type FileImageStore struct {
	vault *vault.Vault
	mu    sync.Mutex
}

// NewFileImageStore creates a file-backed image store.
func NewFileImageStore(v *vault.Vault) *FileImageStore {
	return &FileImageStore{vault: v}
}

var _ ports.ImageStore = (*FileImageStore)(nil)

// maxNameAttempts bounds collision retries; with a 4-digit random
// suffix per second this is never reached in practice.
const maxNameAttempts = 100

// Store writes a new attachment and returns its generated filename.
func (s *FileImageStore) Store(ctx context.Context, src io.Reader, ext string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := domain.GenerateImageName(ext)
		path := s.vault.GetImagePath(name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", fmt.Errorf("failed to create attachment: %w", err)
		}

		if _, err := io.Copy(f, src); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("failed to write attachment: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("failed to close attachment: %w", err)
		}
		return name, nil
	}

	return "", fmt.Errorf("failed to find a free attachment name after %d attempts", maxNameAttempts)
}

// Resolve reads an attachment's bytes.
func (s *FileImageStore) Resolve(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.vault.GetImagePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: attachment %s", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}
	return data, nil
}

// Delete removes an attachment file. A missing file is not an error,
// so repeated sweeps stay idempotent.
func (s *FileImageStore) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.vault.GetImagePath(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

// List returns the managed attachment filenames. Files that do not
// match the generated naming scheme are ignored: the sweep must never
// touch foreign files a user dropped into the directory.
func (s *FileImageStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.vault.ImagesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read images directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !domain.IsImageName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Path returns the absolute path of an attachment.
func (s *FileImageStore) Path(name string) string {
	return s.vault.GetImagePath(name)
}

// Exists checks if an attachment file is present.
func (s *FileImageStore) Exists(name string) bool {
	info, err := os.Stat(s.vault.GetImagePath(name))
	return err == nil && !info.IsDir()
}
