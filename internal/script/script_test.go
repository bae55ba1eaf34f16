package script

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/smileynet/roster"
	"github.com/smileynet/roster/internal/editor"
	"github.com/smileynet/roster/internal/record"
	"github.com/smileynet/roster/internal/session"
)

func newSession() *session.Session {
	return session.New(record.NewStore(record.WithIDGenerator(record.Sequence("u"))))
}

func TestParse_Valid(t *testing.T) {
	s, err := Parse([]byte(`
name: basic
steps:
  - {action: set, field: first, value: Jane}
  - {action: submit, expect: rejected}
  - {action: edit, row: 1}
  - {action: cancel}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Name != "basic" {
		t.Errorf("name = %q, want %q", s.Name, "basic")
	}
	if len(s.Steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(s.Steps))
	}
	if s.Steps[0].Event.Field != editor.FieldFirstName || s.Steps[0].Event.Value != "Jane" {
		t.Errorf("step 0 = %+v", s.Steps[0])
	}
	if s.Steps[1].Expect != ExpectRejected {
		t.Errorf("step 1 expect = %q, want rejected", s.Steps[1].Expect)
	}
	if s.Steps[2].Event.Row != 1 {
		t.Errorf("step 2 row = %d, want 1", s.Steps[2].Event.Row)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"no steps", "name: x\n", "no steps"},
		{"unknown key", "steps:\n  - {action: submit, colour: red}\n", "colour"},
		{"unknown action", "steps:\n  - {action: rename}\n", "unknown action"},
		{"unknown field", "steps:\n  - {action: set, field: email, value: x}\n", "unknown field"},
		{"missing row", "steps:\n  - {action: delete}\n", "row must be at least 1"},
		{"expect on cancel", "steps:\n  - {action: cancel, expect: accepted}\n", "expect only applies to submit"},
		{"bad expect", "steps:\n  - {action: submit, expect: maybe}\n", "invalid expect"},
		{"bad yaml", "steps: [", "parsing YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_UnknownActionSentinel(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - {action: rename}\n"))
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
}

func TestLoad_AddsYAMLSuffix(t *testing.T) {
	fsys := fstest.MapFS{
		"seed.yaml": &fstest.MapFile{Data: []byte("steps:\n  - {action: cancel}\n")},
	}

	s, err := Load(fsys, "seed")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Name != "seed" {
		t.Errorf("name = %q, want name derived from file", s.Name)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(fstest.MapFS{}, "nope"); err == nil {
		t.Fatal("Load() should fail for a missing script")
	}
}

func TestLoad_ParseErrorNamesFile(t *testing.T) {
	fsys := fstest.MapFS{"bad.yaml": &fstest.MapFile{Data: []byte("steps: [")}}

	_, err := Load(fsys, "bad.yaml")
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("error = %v, want it to name bad.yaml", err)
	}
}

func TestReplay_EmbeddedDemo(t *testing.T) {
	s, err := Load(roster.Scripts, "demo")
	if err != nil {
		t.Fatalf("Load(demo) error = %v", err)
	}
	sess := newSession()

	var seen int
	if err := s.Replay(sess, func(int, Step, session.Outcome) { seen++ }); err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if seen != len(s.Steps) {
		t.Errorf("callback ran %d times, want %d", seen, len(s.Steps))
	}

	rows := sess.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	want := record.User{ID: "u1", Fields: record.Fields{FirstName: "Jane", LastName: "Doe", Phone: "9999999998"}}
	if rows[0] != want {
		t.Errorf("row = %+v, want %+v", rows[0], want)
	}
	if sess.Editor().Mode() != editor.ModeAdd {
		t.Error("demo should end in add mode")
	}
}

func TestReplay_StopsAtFailingStep(t *testing.T) {
	s, err := Parse([]byte(`
name: broken
steps:
  - {action: cancel}
  - {action: delete, row: 4}
  - {action: cancel}
`))
	if err != nil {
		t.Fatal(err)
	}

	var seen int
	err = s.Replay(newSession(), func(int, Step, session.Outcome) { seen++ })

	if !errors.Is(err, session.ErrNoSuchRow) {
		t.Fatalf("err = %v, want ErrNoSuchRow", err)
	}
	if !strings.Contains(err.Error(), "broken: step 2 (delete)") {
		t.Errorf("error = %q, want step index", err)
	}
	if seen != 1 {
		t.Errorf("callback ran %d times, want 1", seen)
	}
}

func TestReplay_ExpectationFailure(t *testing.T) {
	s, err := Parse([]byte(`
name: strict
steps:
  - {action: set, field: phone, value: "9999999999"}
  - {action: submit, expect: accepted}
`))
	if err != nil {
		t.Fatal(err)
	}

	err = s.Replay(newSession(), nil)

	if !errors.Is(err, ErrExpectation) {
		t.Fatalf("err = %v, want ErrExpectation", err)
	}
	var se *StepError
	if !errors.As(err, &se) {
		t.Fatalf("err = %T, want *StepError", err)
	}
	if se.Step != 2 || se.Kind != session.KindSubmit {
		t.Errorf("StepError = %+v, want step 2 submit", se)
	}
}
