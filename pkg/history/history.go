package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	DefaultStorageFileName = ".stargate-bridge-history.json"
)

// Outcome of a recorded bridge attempt.
const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"  // Feasibility check declined the attempt
	OutcomeNotFound = "not_found" // Confirmation polling window expired
)

// Record is one bridge attempt.
type Record struct {
	Timestamp     time.Time `json:"timestamp"`
	SourceNetwork string    `json:"source_network"`
	DestNetwork   string    `json:"dest_network"`
	Token         string    `json:"token"`
	Amount        string    `json:"amount"` // Smallest unit
	Slippage      float64   `json:"slippage"`
	Outcome       string    `json:"outcome"`
	ErrorMessage  string    `json:"error_message,omitempty"`
}

// Storage persists bridge attempts to a JSON file.
type Storage struct {
	filePath string
	mu       sync.Mutex
	records  []Record
}

type recordFile struct {
	Records []Record `json:"records"`
}

// NewStorage creates a new storage instance
func NewStorage(filePath string) (*Storage, error) {
	if filePath == "" {
		// Default to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		filePath = filepath.Join(home, DefaultStorageFileName)
	}

	storage := &Storage{filePath: filePath}

	// Load existing records if file exists
	if err := storage.load(); err != nil {
		// If file doesn't exist, that's okay - we'll create it on first save
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
	}

	return storage, nil
}

// load reads records from the storage file
func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var file recordFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal history: %w", err)
	}

	s.records = file.Records
	return nil
}

// save writes records to the storage file
func (s *Storage) save() error {
	data, err := json.MarshalIndent(recordFile{Records: s.records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write to temporary file first, then rename for atomic write
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Append records a bridge attempt.
func (s *Storage) Append(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	s.records = append(s.records, record)

	return s.save()
}

// List returns all recorded attempts, oldest first.
func (s *Storage) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]Record, len(s.records))
	copy(records, s.records)
	return records
}

// Count returns the total number of recorded attempts.
func (s *Storage) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// GetFilePath returns the storage file path
func (s *Storage) GetFilePath() string {
	return s.filePath
}
