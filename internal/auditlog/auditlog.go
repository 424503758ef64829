// Package auditlog keeps an append-only CSV trail of published reporting
// events (statements generated, subsidiaries registered, consolidations
// completed).
package auditlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/finrep-dev/finrep/internal/events"
	"github.com/finrep-dev/finrep/internal/model"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp time.Time
	Topic     string
	ObjectID  string
	Details   string
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,topic,object_id,details"

const (
	numFields    = 4
	logDir       = "logs"
	logFile      = "logs/audit-log.csv"
	colTimestamp = 0
	colTopic     = 1
	colObjectID  = 2
	colDetails   = 3
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colTopic] = e.Topic
	row[colObjectID] = e.ObjectID
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp: ts,
		Topic:     record[colTopic],
		ObjectID:  record[colObjectID],
		Details:   record[colDetails],
	}, nil
}

// Append writes entries to <root>/logs/audit-log.csv, creating the file and
// header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/audit-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Subscriber returns an event handler that appends one audit entry per
// published event. Append failures are reported through onErr.
func Subscriber(root string, onErr func(error)) events.Handler {
	return func(e events.Event) {
		entry := Entry{
			Timestamp: time.Now().UTC(),
			Topic:     string(e.Topic),
		}
		entry.ObjectID, entry.Details = describe(e.Payload)

		if err := Append(root, []Entry{entry}); err != nil && onErr != nil {
			onErr(fmt.Errorf("appending audit entry: %w", err))
		}
	}
}

// describe extracts the object ID and a short detail string from an event
// payload.
func describe(payload any) (objectID, details string) {
	switch v := payload.(type) {
	case model.Statement:
		return v.ID, fmt.Sprintf("type=%s currency=%s", v.Type, v.Currency)
	case model.Subsidiary:
		return v.ID, fmt.Sprintf("name=%s ownership=%s method=%s", v.Name, v.Ownership, v.Method)
	case model.Consolidation:
		return v.ID, fmt.Sprintf("parent=%s subsidiaries=%d", v.ParentID, len(v.Methods))
	default:
		return "", fmt.Sprintf("%T", payload)
	}
}
