// Package editor implements the add/edit form controller: it owns the draft
// field values, validates them on submit, and writes accepted drafts to the
// record store.
package editor

import (
	"errors"

	"go.uber.org/zap"

	"github.com/smileynet/roster/internal/record"
)

// Mode is the editor's current mode.
type Mode int

const (
	ModeAdd  Mode = iota // No target record; submit creates a record.
	ModeEdit             // Bound to a record ID; submit overwrites it.
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "add"
}

// Submit labels for each mode.
const (
	LabelAdd  = "Add User"
	LabelEdit = "Edit User"
)

// Draft is the in-progress, unvalidated form content.
type Draft struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Phone     string `validate:"required,mobile"`
}

// Empty reports whether every field is blank.
func (d Draft) Empty() bool {
	return d.FirstName == "" && d.LastName == "" && d.Phone == ""
}

// Get returns the value of f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldFirstName:
		return d.FirstName
	case FieldLastName:
		return d.LastName
	case FieldPhone:
		return d.Phone
	}
	return ""
}

func (d Draft) fields() record.Fields {
	return record.Fields{FirstName: d.FirstName, LastName: d.LastName, Phone: d.Phone}
}

// Store is the subset of record.Store the controller writes to.
type Store interface {
	Add(f record.Fields) record.User
	Update(u record.User) error
}

// Controller manages the form draft, validation, and add/edit dispatch.
// It is not safe for concurrent use.
type Controller struct {
	store    Store
	draft    Draft
	target   string // record ID in edit mode, "" in add mode
	failed   bool
	problems []Field
	logger   *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for submit and cancel events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a Controller in add mode with an empty draft.
func New(store Store, opts ...Option) *Controller {
	c := &Controller{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns ModeEdit while a target record is set.
func (c *Controller) Mode() Mode {
	if c.target != "" {
		return ModeEdit
	}
	return ModeAdd
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft { return c.draft }

// TargetID returns the ID being edited, or "" in add mode.
func (c *Controller) TargetID() string { return c.target }

// Failed reports whether the validation alert is showing.
func (c *Controller) Failed() bool { return c.failed }

// Problems returns the fields that failed the last rejected submit.
// It is empty whenever Failed is false.
func (c *Controller) Problems() []Field {
	return append([]Field(nil), c.problems...)
}

// SubmitLabel returns the submit control's label for the current mode.
func (c *Controller) SubmitLabel() string {
	if c.Mode() == ModeEdit {
		return LabelEdit
	}
	return LabelAdd
}

// SetField stores a raw value. It does not validate and leaves the
// failure flag as it is until the next submit.
func (c *Controller) SetField(f Field, value string) error {
	switch f {
	case FieldFirstName:
		c.draft.FirstName = value
	case FieldLastName:
		c.draft.LastName = value
	case FieldPhone:
		c.draft.Phone = value
	default:
		return ErrUnknownField
	}
	return nil
}

// LoadForEdit enters edit mode for u, copying its values into the draft.
func (c *Controller) LoadForEdit(u record.User) {
	c.draft = Draft{FirstName: u.FirstName, LastName: u.LastName, Phone: u.Phone}
	c.target = u.ID
	c.clearFailure()
}

// Cancel clears a non-empty draft while staying in the current mode.
// When the draft is already empty it leaves edit mode instead and returns
// true to signal that editing was abandoned. Leaving edit mode also drops
// the alert; an empty cancel in add mode leaves it showing.
func (c *Controller) Cancel() (abandoned bool) {
	if !c.draft.Empty() {
		c.draft = Draft{}
		c.clearFailure()
		return false
	}
	if c.target != "" {
		c.logger.Debug("edit abandoned", zap.String("id", c.target))
		c.target = ""
		c.clearFailure()
	}
	return true
}

// Submit validates the draft. On failure it raises the alert and writes
// nothing. On success it adds or updates the record, then resets to an empty
// draft in add mode. ok reports whether the draft was accepted.
func (c *Controller) Submit() (u record.User, ok bool) {
	if problems := Validate(c.draft); len(problems) > 0 {
		c.failed = true
		c.problems = problems
		c.logger.Info("validation failed",
			zap.String("mode", c.Mode().String()),
			zap.Stringers("fields", problems))
		return record.User{}, false
	}

	if c.target == "" {
		u = c.store.Add(c.draft.fields())
	} else {
		u = record.User{ID: c.target, Fields: c.draft.fields()}
		if err := c.store.Update(u); err != nil {
			// Target deleted while editing: the edit is dropped.
			if !errors.Is(err, record.ErrNotFound) {
				c.logger.Error("update failed", zap.String("id", u.ID), zap.Error(err))
			} else {
				c.logger.Warn("edit target no longer exists", zap.String("id", u.ID))
			}
		}
	}

	c.draft = Draft{}
	c.target = ""
	c.clearFailure()
	return u, true
}

func (c *Controller) clearFailure() {
	c.failed = false
	c.problems = nil
}
