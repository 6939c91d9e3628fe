// Package storage persists every table as a flat CSV file with a header row,
// one file per store. Each mutating call performs a full read-modify-write of
// its backing file; the mutex serializes callers within this process only.
// Concurrent writers from separate processes race last-writer-wins.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// Errors returned by the stores.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateTaxID = errors.New("tax id already registered")
	ErrDuplicatePhone = errors.New("phone already registered")
)

const (
	usersFile     = "users.csv"
	productsFile  = "products.csv"
	customersFile = "customers.csv"
	ordersFile    = "orders.csv"
	expensesFile  = "expenses.csv"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Store reads and writes the CSV tables under a single data directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates the data directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// readTable loads all rows of a table. A missing or empty file is an empty
// table, not an error.
func readTable[T any](s *Store, name string) ([]T, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	var rows []T
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return rows, nil
}

// writeTable rewrites a table in full, header row included.
func writeTable[T any](s *Store, name string, rows []T) error {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// nextID returns max(existing)+1, or 1 for an empty table. IDs are never
// reused after deletion.
func nextID[T any](rows []T, id func(T) int64) int64 {
	next := int64(1)
	for _, row := range rows {
		if v := id(row); v >= next {
			next = v + 1
		}
	}
	return next
}
