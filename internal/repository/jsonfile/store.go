package jsonfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"snowrent-backend/internal/domain"
	"snowrent-backend/internal/logger"
	"snowrent-backend/internal/repository"
)

const (
	memberFile = "members.json"
	itemFile   = "items.json"
	rentalFile = "rentals.json"
)

// Store keeps each collection in its own JSON file under a data directory.
type Store struct {
	dir string
}

// NewStore creates the data directory if needed and returns a file-backed
// store for it.
func NewStore(dir string) (repository.Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// LoadMembers reads the member collection. Missing file: empty collection.
// Corrupt file: logged, empty collection; the registry must be able to come
// up blank rather than crash at startup.
func (s *Store) LoadMembers() []*domain.Member {
	data, ok := s.readFile(memberFile)
	if !ok {
		return nil
	}
	members, err := UnmarshalMembers(data)
	if err != nil {
		logger.Error("Failed to decode member file, starting with empty collection", "file", memberFile, "error", err)
		return nil
	}
	return members
}

func (s *Store) SaveMembers(members []*domain.Member) error {
	data, err := MarshalMembers(members)
	if err != nil {
		return fmt.Errorf("encode members: %w", err)
	}
	return s.writeFile(memberFile, data)
}

func (s *Store) LoadItems() []domain.Item {
	data, ok := s.readFile(itemFile)
	if !ok {
		return nil
	}
	items, err := UnmarshalItems(data)
	if err != nil {
		logger.Error("Failed to decode item file, starting with empty collection", "file", itemFile, "error", err)
		return nil
	}
	return items
}

func (s *Store) SaveItems(items []domain.Item) error {
	data, err := MarshalItems(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return s.writeFile(itemFile, data)
}

func (s *Store) LoadRentals() []*domain.Rental {
	data, ok := s.readFile(rentalFile)
	if !ok {
		return nil
	}
	rentals, err := UnmarshalRentals(data)
	if err != nil {
		logger.Error("Failed to decode rental file, starting with empty collection", "file", rentalFile, "error", err)
		return nil
	}
	return rentals
}

func (s *Store) SaveRentals(rentals []*domain.Rental) error {
	data, err := MarshalRentals(rentals)
	if err != nil {
		return fmt.Errorf("encode rentals: %w", err)
	}
	return s.writeFile(rentalFile, data)
}

func (s *Store) readFile(name string) ([]byte, bool) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("Data file not found, starting with empty collection", "file", name)
			return nil, false
		}
		logger.Error("Failed to read data file, starting with empty collection", "file", name, "error", err)
		return nil, false
	}
	return data, true
}

// writeFile replaces the collection file atomically: write to a uniquely
// named temp file in the same directory, then rename over the target.
// Readers never observe a partially written file.
func (s *Store) writeFile(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	tmp := path + "." + uuid.NewString() + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
