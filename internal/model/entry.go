package model

import "fmt"

// Audit entry statuses.
const (
	StatusOK   = "ok"
	StatusFail = "fail"
)

// Entry is one row of the audit log: a single processing attempt.
// Row counts are strings because failed attempts leave them empty.
type Entry struct {
	Timestamp   string // UTC, RFC 3339, second precision
	SrcID       string
	SrcTitle    string
	SrcModified string
	DstID       string // empty when the destination write never happened
	DstTitle    string
	RowsIn      string
	RowsOut     string
	Status      string // StatusOK or StatusFail
	Message     string // error text for failures, empty otherwise
}

// Summary holds the per-run counters reported to the caller.
type Summary struct {
	Processed int
	Skipped   int
	Failed    int
}

func (s Summary) String() string {
	return fmt.Sprintf("processed: %d, skipped: %d, failed: %d", s.Processed, s.Skipped, s.Failed)
}
