package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
)

// MockStoreRepository is an in-memory StoreRepository for testing.
// Load returns a deep copy so tests exercise the same
// mutate-then-save flow the file repository requires.
type MockStoreRepository struct {
	mu       sync.Mutex
	store    *domain.Store
	SaveErr  error // injected failure for the next Save
	Saves    int
	LoadErr  error
}

// NewMockStoreRepository creates a mock backed by an empty store.
func NewMockStoreRepository() *MockStoreRepository {
	return &MockStoreRepository{store: domain.NewStore()}
}

// Seed replaces the backing store directly.
func (m *MockStoreRepository) Seed(store *domain.Store) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = store
}

// Load returns a deep copy of the backing store.
func (m *MockStoreRepository) Load(ctx context.Context) (*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return deepCopy(m.store)
}

// Save replaces the backing store with a deep copy of the argument.
func (m *MockStoreRepository) Save(ctx context.Context, store *domain.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		err := m.SaveErr
		m.SaveErr = nil
		return err
	}

	copied, err := deepCopy(store)
	if err != nil {
		return err
	}
	m.store = copied
	m.Saves++
	return nil
}

// Exists always reports true for the mock.
func (m *MockStoreRepository) Exists() bool { return true }

// DataPath returns a placeholder path.
func (m *MockStoreRepository) DataPath() string { return "/mock/flashcards.json" }

// Current returns the backing store for assertions (no copy).
func (m *MockStoreRepository) Current() *domain.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store
}

func deepCopy(store *domain.Store) (*domain.Store, error) {
	data, err := json.Marshal(store)
	if err != nil {
		return nil, err
	}
	var copied domain.Store
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, err
	}
	copied.Normalize()
	return &copied, nil
}

// MockImageStore is an in-memory ImageStore for testing.
type MockImageStore struct {
	mu       sync.Mutex
	files    map[string][]byte
	StoreErr error
	Deletes  []string
}

// NewMockImageStore creates an empty mock image store.
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{files: make(map[string][]byte)}
}

// Store reads src fully and registers it under a generated name.
func (m *MockImageStore) Store(ctx context.Context, src io.Reader, ext string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.StoreErr != nil {
		return "", m.StoreErr
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	name := domain.GenerateImageName(ext)
	for {
		if _, taken := m.files[name]; !taken {
			break
		}
		name = domain.GenerateImageName(ext)
	}
	m.files[name] = data
	return name, nil
}

// Put registers a file under an explicit name.
func (m *MockImageStore) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
}

// Resolve returns the stored bytes.
func (m *MockImageStore) Resolve(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: attachment %s", domain.ErrNotFound, name)
	}
	return data, nil
}

// Delete removes the file and records the deletion.
func (m *MockImageStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.files, name)
	m.Deletes = append(m.Deletes, name)
	return nil
}

// List returns all registered filenames, sorted.
func (m *MockImageStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Path returns a placeholder path.
func (m *MockImageStore) Path(name string) string { return "/mock/images/" + name }

// Exists checks if the file is registered.
func (m *MockImageStore) Exists(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok
}
