// Package history keeps a journal of finished intervals and daily summaries.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"focusclock/internal/atomicfile"
	"focusclock/internal/clock"
	"focusclock/internal/core/model"
)

const journalFileName = "history.yaml"

// ErrNothingElapsed is returned when an entry has no elapsed time worth recording.
var ErrNothingElapsed = errors.New("nothing elapsed")

// Entry is the input for a new journal record.
type Entry struct {
	Mode    model.Mode
	Planned time.Duration
	Elapsed time.Duration
	Skipped bool
	Note    string
	At      time.Time
}

// Record is a persisted journal line.
type Record struct {
	ID             string     `yaml:"id"`
	Mode           model.Mode `yaml:"mode"`
	PlannedSeconds int        `yaml:"planned_seconds"`
	ElapsedSeconds int        `yaml:"elapsed_seconds"`
	Skipped        bool       `yaml:"skipped,omitempty"`
	Note           string     `yaml:"note,omitempty"`
	At             time.Time  `yaml:"at"`
}

// Planned returns the planned interval length.
func (record Record) Planned() time.Duration {
	return time.Duration(record.PlannedSeconds) * time.Second
}

// Elapsed returns how long the interval actually ran.
func (record Record) Elapsed() time.Duration {
	return time.Duration(record.ElapsedSeconds) * time.Second
}

// Summary aggregates the records of one day.
type Summary struct {
	Count     int
	Pomodoros int
	Breaks    int
	Focus     time.Duration
	Total     time.Duration
	Average   time.Duration
}

type journalFile struct {
	Records []Record `yaml:"records"`
}

// Journal is an append-only list of records backed by a YAML file.
type Journal struct {
	mu      sync.Mutex
	path    string
	clock   clock.Clock
	records []Record
}

// JournalPath returns the journal file location under the user config dir.
func JournalPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, journalFileName), nil
}

// Open reads the journal at path. A missing file yields an empty journal.
func Open(path string, clk clock.Clock) (*Journal, error) {
	if clk == nil {
		clk = clock.Real{}
	}
	journal := &Journal{path: path, clock: clk}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return journal, nil
		}
		return nil, fmt.Errorf("read journal file: %w", err)
	}

	var fileData journalFile
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return nil, fmt.Errorf("parse journal yaml: %w", err)
	}
	journal.records = fileData.Records
	return journal, nil
}

// Add appends entry and persists the journal.
func (journal *Journal) Add(entry Entry) (Record, error) {
	if entry.Elapsed <= 0 {
		return Record{}, ErrNothingElapsed
	}
	at := entry.At
	if at.IsZero() {
		at = journal.clock.Now()
	}

	record := Record{
		ID:             uuid.NewString(),
		Mode:           entry.Mode,
		PlannedSeconds: int(entry.Planned / time.Second),
		ElapsedSeconds: int(entry.Elapsed / time.Second),
		Skipped:        entry.Skipped,
		Note:           entry.Note,
		At:             at,
	}

	journal.mu.Lock()
	defer journal.mu.Unlock()
	journal.records = append(journal.records, record)
	if err := journal.saveLocked(); err != nil {
		journal.records = journal.records[:len(journal.records)-1]
		return Record{}, err
	}
	return record, nil
}

// Records returns every record in insertion order.
func (journal *Journal) Records() []Record {
	journal.mu.Lock()
	defer journal.mu.Unlock()
	return append([]Record(nil), journal.records...)
}

// Recent returns up to limit records, newest first.
func (journal *Journal) Recent(limit int) []Record {
	records := journal.Records()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].At.After(records[j].At)
	})
	if limit >= 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

// ForDay returns the records whose timestamp falls on day's calendar date in day's location.
func (journal *Journal) ForDay(day time.Time) []Record {
	year, month, date := day.Date()
	var matched []Record
	for _, record := range journal.Records() {
		recordYear, recordMonth, recordDate := record.At.In(day.Location()).Date()
		if recordYear == year && recordMonth == month && recordDate == date {
			matched = append(matched, record)
		}
	}
	return matched
}

// Today returns the records for the current day.
func (journal *Journal) Today() []Record {
	return journal.ForDay(journal.clock.Now())
}

// Summary aggregates the records of day.
func (journal *Journal) Summary(day time.Time) Summary {
	var summary Summary
	for _, record := range journal.ForDay(day) {
		summary.Count++
		summary.Total += record.Elapsed()
		if record.Mode == model.ModeWork {
			summary.Pomodoros++
			summary.Focus += record.Elapsed()
		} else {
			summary.Breaks++
		}
	}
	if summary.Count > 0 {
		summary.Average = summary.Total / time.Duration(summary.Count)
	}
	return summary
}

func (journal *Journal) saveLocked() error {
	serialized, err := yaml.Marshal(journalFile{Records: journal.records})
	if err != nil {
		return fmt.Errorf("marshal journal yaml: %w", err)
	}
	if err := atomicfile.Write(journal.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write journal file: %w", err)
	}
	return nil
}
