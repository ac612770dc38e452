// Package memstore provides an in-memory store.Store used by tests and by
// the "memory" provider for smoke runs without remote credentials.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crimson-sun/winnow/internal/model"
	"github.com/crimson-sun/winnow/internal/store"
)

// FolderMimeType marks folder items, mirroring the Drive provider.
const FolderMimeType = "application/vnd.google-apps.folder"

func init() {
	store.Register("memory", func(_ context.Context, _ store.Config) (store.Store, error) {
		return New(), nil
	})
}

type item struct {
	model.Item
	parentID string
	data     []byte
}

// Store keeps all items in memory. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	items map[string]*item

	// Now supplies modification timestamps for writes. Tests may replace it.
	Now func() time.Time

	// FailUploads makes Create and Update fail for the named titles.
	FailUploads map[string]error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		items: map[string]*item{},
		Now:   time.Now,
	}
}

func (s *Store) stamp() string {
	return s.Now().UTC().Format(time.RFC3339)
}

// AddFile seeds a file item and returns its ID. Intended for tests.
func (s *Store) AddFile(containerID, title, modified string, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.items[id] = &item{
		Item:     model.Item{ID: id, Title: title, ModifiedTime: modified, MimeType: "text/csv"},
		parentID: containerID,
		data:     data,
	}
	return id
}

// Content returns a copy of the item's current content, or nil if absent.
func (s *Store) Content(itemID string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[itemID]
	if !ok {
		return nil
	}
	out := make([]byte, len(it.data))
	copy(out, it.data)
	return out
}

// SetModified rewrites an item's modification timestamp. Intended for tests.
func (s *Store) SetModified(itemID, modified string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it, ok := s.items[itemID]; ok {
		it.ModifiedTime = modified
	}
}

func (s *Store) List(_ context.Context, containerID string, filter store.ListFilter) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Item
	for _, it := range s.items {
		if it.parentID != containerID {
			continue
		}
		if filter.Title != "" && it.Title != filter.Title {
			continue
		}
		if filter.MimeType != "" && it.MimeType != filter.MimeType {
			continue
		}
		out = append(out, it.Item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *Store) FindByName(ctx context.Context, containerID, title string) (model.Item, error) {
	items, err := s.List(ctx, containerID, store.ListFilter{Title: title})
	if err != nil {
		return model.Item{}, err
	}
	if len(items) == 0 {
		return model.Item{}, store.ErrNotFound
	}
	return items[0], nil
}

func (s *Store) EnsureFolder(ctx context.Context, containerID, name string) (string, error) {
	if it, err := s.FindByName(ctx, containerID, name); err == nil && it.MimeType == FolderMimeType {
		return it.ID, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.items[id] = &item{
		Item:     model.Item{ID: id, Title: name, ModifiedTime: s.stamp(), MimeType: FolderMimeType},
		parentID: containerID,
	}
	return id, nil
}

func (s *Store) Download(_ context.Context, itemID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[itemID]
	if !ok {
		return nil, &store.DownloadError{ItemID: itemID, Err: store.ErrNotFound}
	}
	out := make([]byte, len(it.data))
	copy(out, it.data)
	return out, nil
}

func (s *Store) Create(_ context.Context, containerID, title string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.FailUploads[title]; ok {
		return "", &store.UploadError{Title: title, Err: err}
	}
	id := uuid.NewString()
	s.items[id] = &item{
		Item:     model.Item{ID: id, Title: title, ModifiedTime: s.stamp(), MimeType: "text/csv"},
		parentID: containerID,
		data:     append([]byte(nil), data...),
	}
	return id, nil
}

func (s *Store) Update(_ context.Context, itemID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[itemID]
	if !ok {
		return &store.UploadError{Title: itemID, Err: store.ErrNotFound}
	}
	if err, ok := s.FailUploads[it.Title]; ok {
		return &store.UploadError{Title: it.Title, Err: err}
	}
	it.data = append([]byte(nil), data...)
	it.ModifiedTime = s.stamp()
	return nil
}
