// Package directory implements the two-pane user directory TUI: the user
// table on the left and the add/edit form on the right.
package directory

import "github.com/smileynet/roster/internal/editor"

// Focus identifies which control receives key input.
type Focus int

const (
	FocusList      Focus = iota // User table.
	FocusFirstName              // First name input.
	FocusLastName               // Last name input.
	FocusPhone                  // Phone number input.
)

// focusOrder is the tab cycle.
var focusOrder = []Focus{FocusFirstName, FocusLastName, FocusPhone, FocusList}

// Field returns the form field for an input focus. ok is false for FocusList.
func (f Focus) Field() (editor.Field, bool) {
	switch f {
	case FocusFirstName:
		return editor.FieldFirstName, true
	case FocusLastName:
		return editor.FieldLastName, true
	case FocusPhone:
		return editor.FieldPhone, true
	}
	return 0, false
}

// InForm reports whether f is one of the form inputs.
func (f Focus) InForm() bool {
	_, ok := f.Field()
	return ok
}

func (f Focus) next() Focus { return f.step(1) }

func (f Focus) prev() Focus { return f.step(len(focusOrder) - 1) }

func (f Focus) step(n int) Focus {
	for i, o := range focusOrder {
		if o == f {
			return focusOrder[(i+n)%len(focusOrder)]
		}
	}
	return FocusFirstName
}
