// Package backup makes descriptor writes non-destructive. A pre-existing file
// at the destination is renamed to a numbered backup before the new content is
// written, so no prior content is ever overwritten in place.
package backup

import (
	"context"
	"fmt"

	"github.com/indaco/rustws/internal/core"
	"github.com/tidwall/gjson"
)

// Suffix is the base suffix appended to the destination name for backups.
// Collisions probe Suffix.1, Suffix.2, ... until an unused name is found.
const Suffix = ".backup"

// Report describes what a Write did besides writing.
type Report struct {
	// BackupPath is the rotated backup location, empty when nothing existed.
	BackupPath string

	// PriorMalformed is set when the pre-existing file was not valid JSON.
	// The file is preserved all the same; this only drives reporting.
	PriorMalformed bool

	// PriorName is the top-level name of the replaced descriptor, when readable.
	PriorName string
}

// Writer performs safe write-with-backup-rotation of descriptor documents.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a Writer over the given filesystem.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Write stores data at path, first rotating any existing file to a backup.
//
// The existing file is moved, not copied, so the destination is vacated before
// the new write. The rename-then-write sequence is not atomic: a crash between
// the two steps leaves the backup in place and no new file written, which is a
// data-preserving failure mode.
func (w *Writer) Write(ctx context.Context, path string, data []byte) (*Report, error) {
	report := &Report{}

	if _, err := w.fs.Stat(ctx, path); err == nil {
		w.inspectExisting(ctx, path, report)

		backupPath := w.nextBackupPath(ctx, path)
		if err := w.fs.Rename(ctx, path, backupPath); err != nil {
			return nil, fmt.Errorf("failed to back up existing file %q: %w", path, err)
		}
		report.BackupPath = backupPath
	}

	if err := w.fs.WriteFile(ctx, path, data, core.PermOwnerRW); err != nil {
		return nil, fmt.Errorf("failed to write %q: %w", path, err)
	}

	return report, nil
}

// nextBackupPath probes <path>.backup, then <path>.backup.1, .2, ... and
// returns the first unused name, leaving every prior backup untouched.
func (w *Writer) nextBackupPath(ctx context.Context, path string) string {
	candidate := path + Suffix
	if _, err := w.fs.Stat(ctx, candidate); err != nil {
		return candidate
	}

	for counter := 1; ; counter++ {
		candidate = fmt.Sprintf("%s%s.%d", path, Suffix, counter)
		if _, err := w.fs.Stat(ctx, candidate); err != nil {
			return candidate
		}
	}
}

// inspectExisting records whether the file being replaced was a readable
// descriptor. An unreadable or malformed file is never fatal; it is preserved
// through the same rotation and a fresh descriptor is written.
func (w *Writer) inspectExisting(ctx context.Context, path string, report *Report) {
	data, err := w.fs.ReadFile(ctx, path)
	if err != nil {
		report.PriorMalformed = true
		return
	}

	if !gjson.ValidBytes(data) {
		report.PriorMalformed = true
		return
	}

	report.PriorName = gjson.GetBytes(data, "name").String()
}
