package drive

import (
	"testing"

	"github.com/crimson-sun/winnow/internal/store"
)

func TestBuildQuery(t *testing.T) {
	got := buildQuery("folder123", store.ListFilter{})
	want := "'folder123' in parents and trashed = false"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildQueryWithFilter(t *testing.T) {
	got := buildQuery("folder123", store.ListFilter{Title: "report.csv", MimeType: FolderMimeType})
	want := "'folder123' in parents and trashed = false" +
		" and name = 'report.csv'" +
		" and mimeType = 'application/vnd.google-apps.folder'"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestEscapeQuery(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"o'brien.csv", `o\'brien.csv`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeQuery(tt.in); got != tt.want {
			t.Fatalf("escapeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
