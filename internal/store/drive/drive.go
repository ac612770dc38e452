package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/crimson-sun/winnow/internal/model"
	"github.com/crimson-sun/winnow/internal/store"
)

// FolderMimeType is Drive's MIME type for folders.
const FolderMimeType = "application/vnd.google-apps.folder"

const itemFields = "nextPageToken, files(id, name, mimeType, modifiedTime)"

func init() {
	store.Register("drive", New)
}

// Store implements store.Store on the Google Drive v3 API using a service
// account credential.
type Store struct {
	svc *driveapi.Service
}

// New authenticates with the service account JSON at cfg.CredentialsPath and
// returns a Drive-backed store. Credential problems surface as *store.AuthError.
func New(ctx context.Context, cfg store.Config) (store.Store, error) {
	data, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, &store.AuthError{Err: fmt.Errorf("read credentials: %w", err)}
	}
	conf, err := google.JWTConfigFromJSON(data, driveapi.DriveScope)
	if err != nil {
		return nil, &store.AuthError{Err: fmt.Errorf("parse credentials: %w", err)}
	}
	svc, err := driveapi.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, &store.AuthError{Err: err}
	}
	return &Store{svc: svc}, nil
}

func toItem(f *driveapi.File) model.Item {
	return model.Item{
		ID:           f.Id,
		Title:        f.Name,
		ModifiedTime: f.ModifiedTime,
		MimeType:     f.MimeType,
	}
}

// buildQuery renders a Drive search expression for the container's direct,
// non-trashed children, narrowed by the filter.
func buildQuery(containerID string, filter store.ListFilter) string {
	terms := []string{
		fmt.Sprintf("'%s' in parents", escapeQuery(containerID)),
		"trashed = false",
	}
	if filter.Title != "" {
		terms = append(terms, fmt.Sprintf("name = '%s'", escapeQuery(filter.Title)))
	}
	if filter.MimeType != "" {
		terms = append(terms, fmt.Sprintf("mimeType = '%s'", escapeQuery(filter.MimeType)))
	}
	return strings.Join(terms, " and ")
}

// escapeQuery escapes a literal for embedding in a Drive query string.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func (s *Store) List(ctx context.Context, containerID string, filter store.ListFilter) ([]model.Item, error) {
	var items []model.Item
	pageToken := ""
	for {
		call := s.svc.Files.List().
			Q(buildQuery(containerID, filter)).
			Fields(itemFields).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		r, err := call.Do()
		if err != nil {
			return nil, &store.ListError{ContainerID: containerID, Err: err}
		}
		for _, f := range r.Files {
			items = append(items, toItem(f))
		}
		pageToken = r.NextPageToken
		if pageToken == "" {
			return items, nil
		}
	}
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
	items, err := s.List(ctx, containerID, store.ListFilter{Title: name, MimeType: FolderMimeType})
	if err != nil {
		return "", err
	}
	if len(items) > 0 {
		return items[0].ID, nil
	}
	f, err := s.svc.Files.Create(&driveapi.File{
		Name:     name,
		MimeType: FolderMimeType,
		Parents:  []string{containerID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", &store.UploadError{Title: name, Err: err}
	}
	return f.Id, nil
}

func (s *Store) Download(ctx context.Context, itemID string) ([]byte, error) {
	resp, err := s.svc.Files.Get(itemID).Context(ctx).Download()
	if err != nil {
		return nil, &store.DownloadError{ItemID: itemID, Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &store.DownloadError{ItemID: itemID, Err: err}
	}
	return data, nil
}

func (s *Store) Create(ctx context.Context, containerID, title string, data []byte) (string, error) {
	f, err := s.svc.Files.Create(&driveapi.File{
		Name:    title,
		Parents: []string{containerID},
	}).Media(bytes.NewReader(data)).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", &store.UploadError{Title: title, Err: err}
	}
	return f.Id, nil
}

func (s *Store) Update(ctx context.Context, itemID string, data []byte) error {
	_, err := s.svc.Files.Update(itemID, &driveapi.File{}).
		Media(bytes.NewReader(data)).
		Context(ctx).Do()
	if err != nil {
		return &store.UploadError{Title: itemID, Err: err}
	}
	return nil
}
