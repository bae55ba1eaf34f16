package directory

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/roster/internal/record"
	"github.com/smileynet/roster/internal/session"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

func newSession() *session.Session {
	return session.New(record.NewStore(record.WithIDGenerator(record.Sequence("u"))))
}

func newSizedModel(t *testing.T, w, h int) Model {
	t.Helper()
	m := NewModel(newSession())
	return update(t, m, tea.WindowSizeMsg{Width: w, Height: h})
}

// update applies msg and returns the resulting Model.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// typeText sends s one rune at a time.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// fillForm types the three values, tabbing between inputs, starting from
// the first name input. Focus ends on the phone input.
func fillForm(t *testing.T, m Model, first, last, phone string) Model {
	t.Helper()
	if m.focus != FocusFirstName {
		t.Fatalf("fillForm: focus = %d, want FocusFirstName", m.focus)
	}
	m = typeText(t, m, first)
	m = update(t, m, keyTab)
	m = typeText(t, m, last)
	m = update(t, m, keyTab)
	return typeText(t, m, phone)
}

// focusList tabs until the user table has focus.
func focusList(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < len(focusOrder) && m.focus != FocusList; i++ {
		m = update(t, m, keyTab)
	}
	if m.focus != FocusList {
		t.Fatal("could not focus list")
	}
	return m
}
