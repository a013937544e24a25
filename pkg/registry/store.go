package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
)

const (
	inventoryFile = "inventory.json"
	lockFile      = "inventory.lock"

	// DefaultLockTimeout bounds how long lock acquisition may wait before
	// failing. The registry never blocks a run indefinitely.
	DefaultLockTimeout = 5 * time.Second

	lockRetryInterval = 50 * time.Millisecond
)

// ErrLockTimeout is returned when the registry lock cannot be acquired
// within the bounded wait. Callers may apply their own retry policy; the
// store itself never retries silently.
var ErrLockTimeout = errors.New("registry lock acquisition timed out")

// FileStore is a registry backed by a JSON inventory on disk, shared across
// processes and guarded by a file lock.
type FileStore struct {
	dir         string
	lockTimeout time.Duration
}

// NewFileStore opens (or lazily creates) a registry rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, lockTimeout: DefaultLockTimeout}
}

// NewFileStoreWithTimeout opens a registry with a custom lock wait bound.
func NewFileStoreWithTimeout(dir string, timeout time.Duration) *FileStore {
	return &FileStore{dir: dir, lockTimeout: timeout}
}

// Dir returns the registry's root directory.
func (s *FileStore) Dir() string { return s.dir }

// Acquire takes the cross-process registry lock with a bounded wait,
// returning a release function. Release is safe to call exactly once and
// must be called on every exit path, typically via defer.
func (s *FileStore) Acquire(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	fl := flock.New(filepath.Join(s.dir, lockFile))

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	ok, err := fl.TryLockContext(lockCtx, lockRetryInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("failed to acquire registry lock: %w", err)
	}
	if !ok {
		return nil, ErrLockTimeout
	}
	return func() { _ = fl.Unlock() }, nil
}

// QueryByTags returns entries whose tag sets are supersets of required, in
// stable registry order (by name). The caller is expected to hold the lock;
// the query itself only reads.
func (s *FileStore) QueryByTags(required []string) ([]*AssetEntry, error) {
	inv, err := s.load()
	if err != nil {
		return nil, err
	}

	var out []*AssetEntry
	for _, entry := range inv.Assets {
		if entry.HasTags(required) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Register adds or replaces an entry under its own lock scope.
func (s *FileStore) Register(ctx context.Context, entry *AssetEntry) error {
	if entry.Name == "" {
		return fmt.Errorf("asset entry requires a name")
	}

	release, err := s.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	inv, err := s.load()
	if err != nil {
		return err
	}
	inv.Assets[entry.Name] = entry
	return s.save(inv)
}

// List returns all entries in registry order under its own lock scope.
func (s *FileStore) List(ctx context.Context) ([]*AssetEntry, error) {
	release, err := s.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	return s.QueryByTags(nil)
}

func (s *FileStore) load() (*inventory, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, inventoryFile))
	if os.IsNotExist(err) {
		return &inventory{Assets: make(map[string]*AssetEntry)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	var inv inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse inventory: %w", err)
	}
	if inv.Assets == nil {
		inv.Assets = make(map[string]*AssetEntry)
	}
	return &inv, nil
}

func (s *FileStore) save(inv *inventory) error {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	path := filepath.Join(s.dir, inventoryFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace inventory: %w", err)
	}
	return nil
}
