// file: repository/token_store.go

package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rajalakshmi-growphil/zoho-crm-integration/logger"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/model"
)

// ErrStorage marks a token file that exists but cannot be read or parsed.
// A missing file is not an error; it simply means no tokens were saved yet.
var ErrStorage = errors.New("token store unreadable")

// ITokenStore defines the contract for persisting the Zoho token record.
type ITokenStore interface {
	Load() (*model.TokenRecord, error)
	Save(record *model.TokenRecord) error
	Update(fn func(record *model.TokenRecord) error) (*model.TokenRecord, error)
}

// FileTokenStore implements ITokenStore on top of a single JSON file.
// The file is always read and rewritten in full; every mutation runs under a
// process-wide mutex so concurrent refreshes cannot lose updates.
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

// NewFileTokenStore creates a FileTokenStore backed by the given path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load returns the last saved record, or an empty record if none exists yet.
func (s *FileTokenStore) Load() (*model.TokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save overwrites the stored record with the given one.
func (s *FileTokenStore) Save(record *model.TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(record)
}

// Update runs a full read-modify-write cycle under the store lock and returns
// the record as persisted.
func (s *FileTokenStore) Update(fn func(record *model.TokenRecord) error) (*model.TokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := fn(record); err != nil {
		return nil, err
	}
	if err := s.save(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *FileTokenStore) load() (*model.TokenRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &model.TokenRecord{}, nil
		}
		logger.Log.WithError(err).WithField("path", s.path).Error("Failed to read token file")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	record := &model.TokenRecord{}
	if err := json.Unmarshal(data, record); err != nil {
		logger.Log.WithError(err).WithField("path", s.path).Error("Failed to parse token file")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return record, nil
}

func (s *FileTokenStore) save(record *model.TokenRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not encode token record: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		logger.Log.WithError(err).WithField("path", s.path).Error("Failed to write token file")
		return fmt.Errorf("could not write token file: %w", err)
	}
	return nil
}
