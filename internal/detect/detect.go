// Package detect decides, per source file, whether a sync run needs to
// (re)process it.
package detect

import (
	"time"

	"github.com/crimson-sun/winnow/internal/model"
)

// Decision is the outcome for one source item.
type Decision int

const (
	// Process means the source must be downloaded, transformed and upserted.
	Process Decision = iota
	// SkipDate means the source falls outside the today-only window. Not
	// counted and not logged.
	SkipDate
	// SkipFresh means the destination is at least as fresh as the source.
	// Counted as skipped, not logged.
	SkipFresh
)

// ParseTime parses a store-reported RFC 3339 timestamp. Empty or unparsable
// values return the zero time; absence biases toward processing rather than
// silently skipping.
func ParseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Location resolves an IANA zone name, falling back to UTC for unknown names.
func Location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Detector holds the run-wide freshness settings.
type Detector struct {
	TodayOnly bool
	Zone      *time.Location

	// Now supplies the current time. Tests may replace it.
	Now func() time.Time
}

// New returns a Detector for one run.
func New(todayOnly bool, zone *time.Location) *Detector {
	return &Detector{TodayOnly: todayOnly, Zone: zone, Now: time.Now}
}

// Decide classifies a source against its optional existing destination.
// hasDst reports whether dst is meaningful.
func (d *Detector) Decide(src, dst model.Item, hasDst bool) Decision {
	if !d.OnDate(src) {
		return SkipDate
	}
	if hasDst && d.UpToDate(src, dst) {
		return SkipFresh
	}
	return Process
}

// OnDate reports whether the source passes the today-only filter. Without
// the flag every source passes; with it, only sources whose modification
// time falls on today's date in the detector's zone do. Absent or unparsable
// times never pass.
func (d *Detector) OnDate(src model.Item) bool {
	if !d.TodayOnly {
		return true
	}
	return d.onCurrentDate(ParseTime(src.ModifiedTime))
}

// UpToDate reports whether the destination is at least as fresh as the
// source. Either timestamp missing or unparsable means not up to date, which
// biases toward reprocessing.
func (d *Detector) UpToDate(src, dst model.Item) bool {
	srcMod := ParseTime(src.ModifiedTime)
	dstMod := ParseTime(dst.ModifiedTime)
	return !srcMod.IsZero() && !dstMod.IsZero() && !dstMod.Before(srcMod)
}

// onCurrentDate reports whether t falls on today's calendar date in the
// detector's zone. The zero time never qualifies.
func (d *Detector) onCurrentDate(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	now := d.Now().In(d.Zone)
	t = t.In(d.Zone)
	ny, nm, nd := now.Date()
	ty, tm, td := t.Date()
	return ny == ty && nm == tm && nd == td
}
