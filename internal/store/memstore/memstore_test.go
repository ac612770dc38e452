package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/crimson-sun/winnow/internal/store"
)

func TestListFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	st := New()
	st.AddFile("root", "b.csv", "", nil)
	st.AddFile("root", "a.csv", "", nil)
	st.AddFile("other", "c.csv", "", nil)

	items, err := st.List(ctx, "root", store.ListFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "a.csv" || items[1].Title != "b.csv" {
		t.Fatalf("expected title order, got %v", items)
	}

	items, err = st.List(ctx, "root", store.ListFilter{Title: "a.csv"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "a.csv" {
		t.Fatalf("expected only a.csv, got %v", items)
	}
}

func TestFindByNameNotFound(t *testing.T) {
	st := New()
	_, err := st.FindByName(context.Background(), "root", "ghost.csv")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEnsureFolderIdempotent(t *testing.T) {
	ctx := context.Background()
	st := New()
	id1, err := st.EnsureFolder(ctx, "root", "data_cleaned")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id2, err := st.EnsureFolder(ctx, "root", "data_cleaned")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected the same folder ID, got %s then %s", id1, id2)
	}
}

func TestDownloadMissingItem(t *testing.T) {
	st := New()
	_, err := st.Download(context.Background(), "nope")
	var dlErr *store.DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected *store.DownloadError, got %v", err)
	}
}
