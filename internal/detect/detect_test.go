package detect

import (
	"testing"
	"time"

	"github.com/crimson-sun/winnow/internal/model"
)

var now = time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)

func detector(todayOnly bool, zone *time.Location) *Detector {
	d := New(todayOnly, zone)
	d.Now = func() time.Time { return now }
	return d
}

func item(modified string) model.Item {
	return model.Item{ID: "x", Title: "x.csv", ModifiedTime: modified}
}

func TestDecideNoDestination(t *testing.T) {
	d := detector(false, time.UTC)
	if got := d.Decide(item("2026-08-20T10:00:00Z"), model.Item{}, false); got != Process {
		t.Fatalf("expected Process, got %v", got)
	}
}

func TestDecideFreshness(t *testing.T) {
	d := detector(false, time.UTC)
	tests := []struct {
		name     string
		src, dst string
		want     Decision
	}{
		{"destination newer", "2026-08-20T10:00:00Z", "2026-08-21T10:00:00Z", SkipFresh},
		{"destination equal", "2026-08-20T10:00:00Z", "2026-08-20T10:00:00Z", SkipFresh},
		{"source newer", "2026-08-22T10:00:00Z", "2026-08-21T10:00:00Z", Process},
		{"source time missing", "", "2026-08-21T10:00:00Z", Process},
		{"destination time missing", "2026-08-20T10:00:00Z", "", Process},
		{"source time garbage", "not-a-time", "2026-08-21T10:00:00Z", Process},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Decide(item(tt.src), item(tt.dst), true); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDecideTodayOnly(t *testing.T) {
	d := detector(true, time.UTC)
	if got := d.Decide(item("2026-08-26T01:00:00Z"), model.Item{}, false); got != Process {
		t.Fatalf("expected Process for today's file, got %v", got)
	}
	if got := d.Decide(item("2026-08-25T23:59:59Z"), model.Item{}, false); got != SkipDate {
		t.Fatalf("expected SkipDate for yesterday's file, got %v", got)
	}
	// Missing or garbage timestamps are never eligible under the flag.
	if got := d.Decide(item(""), model.Item{}, false); got != SkipDate {
		t.Fatalf("expected SkipDate for missing time, got %v", got)
	}
	if got := d.Decide(item("yesterday-ish"), model.Item{}, false); got != SkipDate {
		t.Fatalf("expected SkipDate for garbage time, got %v", got)
	}
}

func TestTodayOnlyRespectsZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("zone data unavailable: %v", err)
	}
	// 02:00 UTC on the 26th is still the evening of the 25th in New York.
	src := item("2026-08-26T02:00:00Z")
	d := detector(true, ny)
	d.Now = func() time.Time { return time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC) }
	if got := d.Decide(src, model.Item{}, false); got != SkipDate {
		t.Fatalf("expected SkipDate in New York, got %v", got)
	}
	d = detector(true, time.UTC)
	d.Now = func() time.Time { return time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC) }
	if got := d.Decide(src, model.Item{}, false); got != Process {
		t.Fatalf("expected Process in UTC, got %v", got)
	}
}

func TestParseTime(t *testing.T) {
	if got := ParseTime("2026-08-26T02:00:00.123Z"); got.IsZero() {
		t.Fatal("expected fractional seconds to parse")
	}
	if got := ParseTime(""); !got.IsZero() {
		t.Fatalf("expected zero time for empty input, got %v", got)
	}
	if got := ParseTime("26/08/2026"); !got.IsZero() {
		t.Fatalf("expected zero time for unsupported layout, got %v", got)
	}
}

func TestLocationFallback(t *testing.T) {
	if got := Location("Not/AZone"); got != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", got)
	}
}
