// Package session binds one record store to one form controller and exposes
// the directory's UI events (field edits, submit, cancel, row edit and
// delete) as a single dispatcher shared by every front end.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/smileynet/roster/internal/editor"
	"github.com/smileynet/roster/internal/record"
)

// ErrNoSuchRow indicates a row number outside the current list.
var ErrNoSuchRow = errors.New("session: no such row")

// Kind identifies a session event.
type Kind string

const (
	KindSet    Kind = "set"
	KindSubmit Kind = "submit"
	KindCancel Kind = "cancel"
	KindEdit   Kind = "edit"
	KindDelete Kind = "delete"
)

// Event is a single UI event. Field and Value apply to KindSet; Row (1-based)
// applies to KindEdit and KindDelete.
type Event struct {
	Kind  Kind
	Field editor.Field
	Value string
	Row   int
}

// Outcome describes what an event did, for front ends that print feedback.
type Outcome struct {
	Kind      Kind
	Accepted  bool        // submit passed validation
	Added     bool        // submit created a record
	User      record.User // record written, loaded, or deleted
	Abandoned bool        // cancel left edit mode
	Cleared   bool        // cancel wiped a non-empty draft
}

// Session is one store plus the controller that writes to it.
// It is not safe for concurrent use.
type Session struct {
	store  *record.Store
	editor *editor.Controller
	logger *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger passed to the controller and used for
// row events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a Session over store.
func New(store *record.Store, opts ...Option) *Session {
	s := &Session{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.editor = editor.New(store, editor.WithLogger(s.logger))
	return s
}

// Editor returns the session's form controller.
func (s *Session) Editor() *editor.Controller { return s.editor }

// Rows returns the current records in order.
func (s *Session) Rows() []record.User { return s.store.List() }

// Set stores a raw draft value.
func (s *Session) Set(f editor.Field, value string) error {
	return s.editor.SetField(f, value)
}

// Submit validates and writes the draft.
func (s *Session) Submit() Outcome {
	adding := s.editor.Mode() == editor.ModeAdd
	u, ok := s.editor.Submit()
	return Outcome{Kind: KindSubmit, Accepted: ok, Added: ok && adding, User: u}
}

// Cancel applies the editor's two-tier cancel.
func (s *Session) Cancel() Outcome {
	editing := s.editor.Mode() == editor.ModeEdit
	filled := !s.editor.Draft().Empty()
	abandoned := s.editor.Cancel()
	return Outcome{Kind: KindCancel, Abandoned: abandoned && editing, Cleared: filled}
}

// Edit loads the record at row into the form.
func (s *Session) Edit(row int) (Outcome, error) {
	u, err := s.at(row)
	if err != nil {
		return Outcome{}, err
	}
	s.editor.LoadForEdit(u)
	return Outcome{Kind: KindEdit, User: u}, nil
}

// Delete removes the record at row. The form is left as it is, so a
// record being edited can be deleted from under the draft.
func (s *Session) Delete(row int) (Outcome, error) {
	u, err := s.at(row)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.store.Delete(u.ID); err != nil {
		return Outcome{}, fmt.Errorf("session: %w", err)
	}
	return Outcome{Kind: KindDelete, User: u}, nil
}

// Apply dispatches ev.
func (s *Session) Apply(ev Event) (Outcome, error) {
	switch ev.Kind {
	case KindSet:
		if err := s.Set(ev.Field, ev.Value); err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: KindSet}, nil
	case KindSubmit:
		return s.Submit(), nil
	case KindCancel:
		return s.Cancel(), nil
	case KindEdit:
		return s.Edit(ev.Row)
	case KindDelete:
		return s.Delete(ev.Row)
	default:
		return Outcome{}, fmt.Errorf("session: unknown event kind %q", ev.Kind)
	}
}

func (s *Session) at(row int) (record.User, error) {
	list := s.store.List()
	if row < 1 || row > len(list) {
		return record.User{}, fmt.Errorf("%w: %d (have %d)", ErrNoSuchRow, row, len(list))
	}
	return list[row-1], nil
}
