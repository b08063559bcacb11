// Package tsv persists per-session date ranges as tab-separated values.
//
// The format is a header row (session, start_date, end_date) followed by
// one row per session with ISO formatted dates. Save replaces the target
// file atomically via a temp file rename.
package tsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/fwojciec/kokkai"
)

// DefaultFilename is the conventional output filename for a session list.
const DefaultFilename = "kokkai_session_list.tsv"

var header = []string{"session", "start_date", "end_date"}

// Marshal serializes session ranges to TSV, one row per session in
// the order given, preceded by the header row.
func Marshal(ranges []kokkai.SessionRange) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, r := range ranges {
		row := []string{
			strconv.Itoa(r.Session),
			r.Start.Format(time.DateOnly),
			r.End.Format(time.DateOnly),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes session ranges from TSV.
func Unmarshal(data []byte) ([]kokkai.SessionRange, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = '\t'

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse tsv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	if !slices.Equal(rows[0], header) {
		return nil, fmt.Errorf("unexpected header: %v", rows[0])
	}

	ranges := make([]kokkai.SessionRange, 0, len(rows)-1)
	for i, row := range rows[1:] {
		session, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid session %q", i+1, row[0])
		}
		start, err := time.Parse(time.DateOnly, row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid start_date %q", i+1, row[1])
		}
		end, err := time.Parse(time.DateOnly, row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid end_date %q", i+1, row[2])
		}
		ranges = append(ranges, kokkai.SessionRange{Session: session, Start: start, End: end})
	}
	return ranges, nil
}

// Save writes session ranges to a TSV file, creating parent directories as
// needed. The file appears complete or not at all: data is written to a
// temp file first and renamed into place.
func Save(path string, ranges []kokkai.SessionRange) error {
	data, err := Marshal(ranges)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directories: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads session ranges from a TSV file.
func Load(path string) ([]kokkai.SessionRange, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Unmarshal(data)
}
