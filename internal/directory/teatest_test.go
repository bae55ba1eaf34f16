package directory

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// TestModel_Teatest_AddEditDelete drives the full program: add a user,
// edit it, then delete it from the list.
func TestModel_Teatest_AddEditDelete(t *testing.T) {
	s := newSession()
	tm := teatest.NewTestModel(t, NewModel(s), teatest.WithInitialTermSize(100, 30))

	tm.Type("Jane")
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("Doe")
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("9999999999")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Added Jane Doe"))
	}, teatest.WithDuration(2*time.Second))

	// Tab to the list, edit the row, replace the phone.
	for i := 0; i < 3; i++ {
		tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	}
	tm.Type("e")
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	for i := 0; i < 10; i++ {
		tm.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	tm.Type("9999999998")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Updated Jane Doe"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	rows := final.session.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Phone != "9999999998" {
		t.Errorf("phone = %q, want %q", rows[0].Phone, "9999999998")
	}
	if rows[0].ID != "u1" {
		t.Errorf("id = %q, want u1 (edit keeps the identifier)", rows[0].ID)
	}
}
