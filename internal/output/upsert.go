// Package output writes cleaned payloads into the destination container with
// create-or-overwrite semantics.
package output

import (
	"context"
	"errors"

	"github.com/crimson-sun/winnow/internal/store"
)

// Writer upserts named items into one destination container. Re-running with
// identical content against an existing name keeps the same item ID.
type Writer struct {
	store       store.Store
	containerID string
}

// New returns a Writer bound to the destination container.
func New(s store.Store, containerID string) *Writer {
	return &Writer{store: s, containerID: containerID}
}

// Write stores data under title: an existing item of that name is overwritten
// in place, otherwise a new item is created. Returns the destination item ID.
func (w *Writer) Write(ctx context.Context, title string, data []byte) (string, error) {
	existing, err := w.store.FindByName(ctx, w.containerID, title)
	switch {
	case err == nil:
		if err := w.store.Update(ctx, existing.ID, data); err != nil {
			return "", err
		}
		return existing.ID, nil
	case errors.Is(err, store.ErrNotFound):
		return w.store.Create(ctx, w.containerID, title, data)
	default:
		return "", err
	}
}
