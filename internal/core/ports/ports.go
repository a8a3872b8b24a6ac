package ports

import (
	"context"
	"io"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
)

// StoreRepository defines the port for deck store persistence. The
// store is loaded and saved as a whole document; Save must be atomic
// at the file level so a crash mid-write never corrupts existing data.
type StoreRepository interface {
	// Load reads the persisted store, upgrading older schema versions
	// and repairing integrity problems (dangling image references)
	// in place. A missing data file yields an empty store.
	Load(ctx context.Context) (*domain.Store, error)

	// Save persists the full store atomically (write-temp-then-rename).
	Save(ctx context.Context, store *domain.Store) error

	// Exists checks if a persisted store is present.
	Exists() bool

	// DataPath returns the absolute path of the data file.
	DataPath() string
}

// ImageStore defines the port for attachment file storage. Files are
// created once and never overwritten; deletion is driven by the
// derived reference counts of the deck store.
type ImageStore interface {
	// Store writes a new attachment and returns its generated
	// filename. Collisions are resolved by regenerating the name.
	Store(ctx context.Context, src io.Reader, ext string) (string, error)

	// Resolve reads an attachment's bytes. Returns ErrNotFound if the
	// file is missing.
	Resolve(ctx context.Context, name string) ([]byte, error)

	// Delete removes an attachment file. Deleting a missing file is
	// not an error so that sweeps are idempotent.
	Delete(ctx context.Context, name string) error

	// List returns the managed attachment filenames (files matching
	// the generated naming scheme only).
	List(ctx context.Context) ([]string, error)

	// Path returns the absolute path of an attachment.
	Path(name string) string

	// Exists checks if an attachment file is present.
	Exists(name string) bool
}

// StoreDecoder parses a raw store document without touching the live
// data file. Backup restores use it to validate an archive before any
// state is replaced.
type StoreDecoder interface {
	Decode(data []byte) (*domain.Store, error)
}

// ImageInfo describes a decoded image header.
type ImageInfo struct {
	Width  int
	Height int
	Format string
}

// ImageDecoder is the optional imaging capability. Decode failures
// degrade display to filename-only; they never fail an operation.
type ImageDecoder interface {
	Probe(data []byte) (ImageInfo, error)
}
