// Package principaltest provides an in-memory PrincipalStore for tests,
// examples, and load tooling. It is safe for concurrent use and is not
// intended for production.
package principaltest

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/obafemio/goalkeeper"
)

// Store is an in-memory implementation of goalkeeper.PrincipalStore keyed
// by lowercased identifier.
type Store struct {
	mu      sync.RWMutex
	records map[string]goalkeeper.PrincipalRecord
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{records: make(map[string]goalkeeper.PrincipalRecord)}
}

// Put inserts or replaces a record. The record's ID is assigned when empty.
// Returns the stored record.
func (s *Store) Put(rec goalkeeper.PrincipalRecord) goalkeeper.PrincipalRecord {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.Identifier = strings.ToLower(strings.TrimSpace(rec.Identifier))

	s.mu.Lock()
	s.records[rec.Identifier] = rec
	s.mu.Unlock()
	return rec
}

// GetByIdentifier implements goalkeeper.PrincipalStore.
func (s *Store) GetByIdentifier(_ context.Context, identifier string) (goalkeeper.PrincipalRecord, error) {
	s.mu.RLock()
	rec, ok := s.records[strings.ToLower(strings.TrimSpace(identifier))]
	s.mu.RUnlock()
	if !ok {
		return goalkeeper.PrincipalRecord{}, goalkeeper.ErrPrincipalNotFound
	}
	return rec, nil
}

// Create implements goalkeeper.PrincipalStore.
func (s *Store) Create(_ context.Context, in goalkeeper.CreatePrincipalInput) (goalkeeper.PrincipalRecord, error) {
	key := strings.ToLower(strings.TrimSpace(in.Identifier))

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; ok {
		return goalkeeper.PrincipalRecord{}, goalkeeper.ErrPrincipalExists
	}
	rec := goalkeeper.PrincipalRecord{
		ID:           uuid.NewString(),
		Identifier:   key,
		PasswordHash: in.PasswordHash,
		Admin:        in.Admin,
	}
	s.records[key] = rec
	return rec, nil
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
