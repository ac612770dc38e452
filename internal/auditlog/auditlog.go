// Package auditlog keeps the append-only ledger of processing attempts,
// persisted as a single CSV item per destination container.
package auditlog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/crimson-sun/winnow/internal/model"
	"github.com/crimson-sun/winnow/internal/store"
)

// LogName is the ledger's item title within the destination container.
const LogName = "_pipeline_log.csv"

// columns is the fixed positional schema of the persisted log.
var columns = []string{
	"timestamp", "src_id", "src_title", "src_modified",
	"dst_id", "dst_title", "rows_in", "rows_out", "status", "message",
}

// Log accumulates entries in memory for one run. Durability happens only on
// Flush. At most one run may hold a container's log at a time; nothing here
// enforces that precondition.
type Log struct {
	entries []model.Entry
	itemID  string // remote log item ID, empty until first persisted
}

// Load pulls the container's prior ledger. A missing log item is an empty
// log, never an error.
func Load(ctx context.Context, s store.Store, containerID string) (*Log, error) {
	it, err := s.FindByName(ctx, containerID, LogName)
	if errors.Is(err, store.ErrNotFound) {
		return &Log{}, nil
	}
	if err != nil {
		return nil, err
	}
	data, err := s.Download(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	entries, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("auditlog: parse %s: %w", LogName, err)
	}
	return &Log{entries: entries, itemID: it.ID}, nil
}

// Append records an attempt in memory.
func (l *Log) Append(e model.Entry) {
	l.entries = append(l.entries, e)
}

// Entries returns the full in-memory sequence in append order.
func (l *Log) Entries() []model.Entry {
	return l.entries
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Flush persists the full sequence to the container, overwriting any prior
// persisted log. Called once per run, after every file has been attempted.
func (l *Log) Flush(ctx context.Context, s store.Store, containerID string) error {
	data, err := l.render()
	if err != nil {
		return err
	}
	if l.itemID != "" {
		return s.Update(ctx, l.itemID, data)
	}
	id, err := s.Create(ctx, containerID, LogName, data)
	if err != nil {
		return err
	}
	l.itemID = id
	return nil
}

func (l *Log) render() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("auditlog: render: %w", err)
	}
	for _, e := range l.entries {
		rec := []string{
			e.Timestamp, e.SrcID, e.SrcTitle, e.SrcModified,
			e.DstID, e.DstTitle, e.RowsIn, e.RowsOut, e.Status, e.Message,
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("auditlog: render: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("auditlog: render: %w", err)
	}
	return buf.Bytes(), nil
}

func parse(data []byte) ([]model.Entry, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	var entries []model.Entry
	for _, rec := range records[1:] {
		if len(rec) != len(columns) {
			return nil, fmt.Errorf("row has %d fields, want %d", len(rec), len(columns))
		}
		entries = append(entries, model.Entry{
			Timestamp:   rec[0],
			SrcID:       rec[1],
			SrcTitle:    rec[2],
			SrcModified: rec[3],
			DstID:       rec[4],
			DstTitle:    rec[5],
			RowsIn:      rec[6],
			RowsOut:     rec[7],
			Status:      rec[8],
			Message:     rec[9],
		})
	}
	return entries, nil
}
