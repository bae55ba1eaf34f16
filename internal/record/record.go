// Package record holds the in-memory user directory: the ordered collection
// of user records and the identifier generators that key it.
package record

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNotFound indicates no record carries the requested ID.
var ErrNotFound = errors.New("record: not found")

// Fields are the editable values of a user record.
type Fields struct {
	FirstName string
	LastName  string
	Phone     string
}

// User is a stored user record. ID is assigned by the Store and never changes.
type User struct {
	ID string
	Fields
}

// Store is the ordered collection of user records.
// It is not safe for concurrent use; confine access to a single goroutine
// (e.g., the Bubble Tea update loop).
type Store struct {
	users  []User
	nextID IDGenerator
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the default UUID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.nextID = g }
}

// WithLogger sets the logger used for mutation events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		nextID: UUIDs(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new record with a fresh ID and returns the stored copy.
// Fields are stored as given; validation is the caller's job.
func (s *Store) Add(f Fields) User {
	u := User{ID: s.freshID(), Fields: f}
	s.users = append(s.users, u)
	s.logger.Debug("user added", zap.String("id", u.ID), zap.Int("count", len(s.users)))
	return u
}

// freshID draws from the generator until it yields an ID not already held.
func (s *Store) freshID() string {
	for {
		id := s.nextID()
		if s.index(id) < 0 {
			return id
		}
	}
}

// Update replaces the record with u.ID in place, keeping its position.
func (s *Store) Update(u User) error {
	i := s.index(u.ID)
	if i < 0 {
		return fmt.Errorf("update %q: %w", u.ID, ErrNotFound)
	}
	s.users[i] = u
	s.logger.Debug("user updated", zap.String("id", u.ID), zap.Int("position", i))
	return nil
}

// Delete removes the record with the given ID.
func (s *Store) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	s.logger.Debug("user deleted", zap.String("id", id), zap.Int("count", len(s.users)))
	return nil
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (User, bool) {
	i := s.index(id)
	if i < 0 {
		return User{}, false
	}
	return s.users[i], true
}

// List returns a snapshot of all records in order.
func (s *Store) List() []User {
	return append([]User(nil), s.users...)
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.users)
}

func (s *Store) index(id string) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
