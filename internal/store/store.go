package store

import (
	"context"

	"github.com/crimson-sun/winnow/internal/model"
)

// Store is the remote hierarchical file store the sync runs against. All
// calls are synchronous; blocking network I/O honors the context.
type Store interface {
	// List returns the direct children of the container, optionally narrowed
	// by filter. Non-recursive.
	List(ctx context.Context, containerID string, filter ListFilter) ([]model.Item, error)

	// FindByName returns the child of the container with the exact title.
	// Returns ErrNotFound when no such child exists.
	FindByName(ctx context.Context, containerID, title string) (model.Item, error)

	// EnsureFolder returns the ID of the named subfolder, creating it when
	// absent. Idempotent.
	EnsureFolder(ctx context.Context, containerID, name string) (string, error)

	// Download fetches an item's content.
	Download(ctx context.Context, itemID string) ([]byte, error)

	// Create adds a new file under the container and returns its ID.
	Create(ctx context.Context, containerID, title string, data []byte) (string, error)

	// Update overwrites an existing file's content in place; the ID is unchanged.
	Update(ctx context.Context, itemID string, data []byte) error
}

// ListFilter narrows a List call. The zero value matches everything.
// Providers push these down to the remote query where the backend allows it.
type ListFilter struct {
	Title    string // exact title match
	MimeType string // exact MIME type match
}

// Config holds provider-independent construction settings.
type Config struct {
	// CredentialsPath points at the provider's credentials material
	// (for Drive, a service account JSON file).
	CredentialsPath string
}
