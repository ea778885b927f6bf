package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/suderio/eels-and-escalators/internal/sim"
)

// RunConfig is the part of a run's configuration worth keeping.
type RunConfig struct {
	Board      string `json:"board"`
	Games      int    `json:"games"`
	Players    int    `json:"players"`
	Workers    int    `json:"workers"`
	LegacyDice bool   `json:"legacy_dice"`
}

// RunRecord is one finished simulation run.
type RunRecord struct {
	ID        uuid.UUID     `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
	Config    RunConfig     `json:"config"`
	Summary   sim.Summary   `json:"summary"`
}

// NewRunRecord stamps a record with a fresh id.
func NewRunRecord(started time.Time, elapsed time.Duration, cfg RunConfig, summary sim.Summary) RunRecord {
	return RunRecord{
		ID:        uuid.New(),
		StartedAt: started.UTC(),
		Elapsed:   elapsed,
		Config:    cfg,
		Summary:   summary,
	}
}

// Store handles append-only storing of run records as JSONL.
type Store struct {
	file *os.File
}

// Open creates the parent directory of path if needed and opens the store.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return NewStore(path)
}

// NewStore opens or creates the file at path for appending lines
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	return &Store{file: file}, nil
}

// Append marshals a record and appends it as one line.
func (s *Store) Append(rec RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}
	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return err
	}
	return s.file.Sync()
}

// Load replays every record in the file, oldest first.
func (s *Store) Load() ([]RunRecord, error) {
	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}

	var records []RunRecord
	scanner := bufio.NewScanner(s.file)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec RunRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode run record on line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}

// Close handles safe shutdown.
func (s *Store) Close() error {
	return s.file.Close()
}
