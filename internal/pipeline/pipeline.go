// Package pipeline composes the store, change detection, transform, upsert
// and audit log into one synchronization run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/crimson-sun/winnow/internal/auditlog"
	"github.com/crimson-sun/winnow/internal/detect"
	"github.com/crimson-sun/winnow/internal/model"
	"github.com/crimson-sun/winnow/internal/output"
	"github.com/crimson-sun/winnow/internal/store"
	"github.com/crimson-sun/winnow/internal/transform"
)

// CleanedFolder is the destination subfolder created under the root container.
const CleanedFolder = "data_cleaned"

// CleanedName derives the deterministic destination title for a source title.
func CleanedName(title string) string {
	return strings.TrimSuffix(title, filepath.Ext(title)) + "_cleaned.csv"
}

// Pipeline runs one synchronization pass over a root container.
type Pipeline struct {
	store    store.Store
	detector *detect.Detector
	rootID   string

	// Now supplies audit log timestamps. Tests may replace it.
	Now func() time.Time
}

// New creates a Pipeline from the given components.
func New(s store.Store, det *detect.Detector, rootID string) *Pipeline {
	return &Pipeline{
		store:    s,
		detector: det,
		rootID:   rootID,
		Now:      time.Now,
	}
}

// Run executes one pass: discover candidate CSVs under the root container,
// skip the up-to-date ones, transform and upsert the rest, and flush the
// audit log exactly once at the end. Setup failures (destination folder,
// prior log, root listing) abort the run; per-file failures are recorded in
// the log and never stop subsequent files.
func (p *Pipeline) Run(ctx context.Context) (model.Summary, error) {
	var sum model.Summary

	cleanID, err := p.store.EnsureFolder(ctx, p.rootID, CleanedFolder)
	if err != nil {
		return sum, fmt.Errorf("pipeline: destination folder: %w", err)
	}
	log, err := auditlog.Load(ctx, p.store, cleanID)
	if err != nil {
		return sum, fmt.Errorf("pipeline: load audit log: %w", err)
	}
	sources, err := p.store.List(ctx, p.rootID, store.ListFilter{})
	if err != nil {
		return sum, fmt.Errorf("pipeline: list sources: %w", err)
	}

	writer := output.New(p.store, cleanID)

	for _, src := range sources {
		if !strings.HasSuffix(strings.ToLower(src.Title), ".csv") {
			continue
		}
		if !p.detector.OnDate(src) {
			slog.Debug("outside date window", "src", src.Title)
			continue
		}

		dstTitle := CleanedName(src.Title)
		entry := model.Entry{
			Timestamp:   p.Now().UTC().Format(time.RFC3339),
			SrcID:       src.ID,
			SrcTitle:    src.Title,
			SrcModified: src.ModifiedTime,
			DstTitle:    dstTitle,
		}

		dst, err := p.store.FindByName(ctx, cleanID, dstTitle)
		switch {
		case err == nil && p.detector.UpToDate(src, dst):
			slog.Debug("destination up to date", "src", src.Title, "dst", dstTitle)
			sum.Skipped++
			continue
		case err != nil && !errors.Is(err, store.ErrNotFound):
			entry.Status = model.StatusFail
			entry.Message = err.Error()
			log.Append(entry)
			sum.Failed++
			slog.Warn("fail", "src", src.Title, "err", err)
			continue
		}

		rowsIn, rowsOut, dstID, err := p.process(ctx, writer, src, dstTitle)
		if err != nil {
			entry.Status = model.StatusFail
			entry.Message = err.Error()
			sum.Failed++
			slog.Warn("fail", "src", src.Title, "err", err)
		} else {
			entry.Status = model.StatusOK
			entry.DstID = dstID
			entry.RowsIn = strconv.Itoa(rowsIn)
			entry.RowsOut = strconv.Itoa(rowsOut)
			sum.Processed++
			slog.Info("ok", "src", src.Title, "dst", dstTitle, "rows_in", rowsIn, "rows_out", rowsOut)
		}
		log.Append(entry)
	}

	if err := log.Flush(ctx, p.store, cleanID); err != nil {
		return sum, fmt.Errorf("pipeline: flush audit log: %w", err)
	}
	return sum, nil
}

// process executes the per-file chain for one source: download, decode,
// clean, encode, upsert.
func (p *Pipeline) process(ctx context.Context, w *output.Writer, src model.Item, dstTitle string) (rowsIn, rowsOut int, dstID string, err error) {
	raw, err := p.store.Download(ctx, src.ID)
	if err != nil {
		return 0, 0, "", err
	}
	table, err := transform.Decode(raw)
	if err != nil {
		return 0, 0, "", err
	}
	cleaned, err := transform.Clean(table)
	if err != nil {
		return 0, 0, "", err
	}
	data, err := transform.Encode(cleaned)
	if err != nil {
		return 0, 0, "", err
	}
	dstID, err = w.Write(ctx, dstTitle, data)
	if err != nil {
		return 0, 0, "", err
	}
	return table.Len(), cleaned.Len(), dstID, nil
}
