package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by FindByName when the container has no child with
// the requested title. Callers treat it as an absent item, not a failure.
var ErrNotFound = errors.New("store: item not found")

// AuthError means credentials could not be established with the store.
// It is fatal: the run aborts before any file is touched.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("store: auth: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// ListError means a container could not be enumerated. Fatal during setup.
type ListError struct {
	ContainerID string
	Err         error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("store: list %s: %v", e.ContainerID, e.Err)
}
func (e *ListError) Unwrap() error { return e.Err }

// DownloadError means a source item's content could not be fetched.
// Recovered per file: logged as a failed attempt, the run continues.
type DownloadError struct {
	ItemID string
	Err    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("store: download %s: %v", e.ItemID, e.Err)
}
func (e *DownloadError) Unwrap() error { return e.Err }

// UploadError means a destination item could not be written.
// Recovered per file, same as DownloadError.
type UploadError struct {
	Title string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("store: upload %q: %v", e.Title, e.Err)
}
func (e *UploadError) Unwrap() error { return e.Err }
