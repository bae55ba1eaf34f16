// Package script loads YAML event scripts and replays them against a session.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/roster/internal/editor"
	"github.com/smileynet/roster/internal/session"
)

var (
	// ErrUnknownAction indicates a step action that is not a session event.
	ErrUnknownAction = errors.New("script: unknown action")
	// ErrExpectation indicates a submit whose result differs from its expect value.
	ErrExpectation = errors.New("script: expectation failed")
)

// stepYAML is the YAML representation of a session event.
type stepYAML struct {
	Action string `yaml:"action"`           // set | submit | cancel | edit | delete
	Field  string `yaml:"field,omitempty"`  // set only
	Value  string `yaml:"value,omitempty"`  // set only
	Row    int    `yaml:"row,omitempty"`    // edit and delete, 1-based
	Expect string `yaml:"expect,omitempty"` // submit only: accepted | rejected
}

// scriptFile is the top-level YAML structure for a script file.
type scriptFile struct {
	Name  string     `yaml:"name"`
	Steps []stepYAML `yaml:"steps"`
}

// Expectation is the result a submit step is expected to have.
type Expectation string

const (
	ExpectAny      Expectation = ""
	ExpectAccepted Expectation = "accepted"
	ExpectRejected Expectation = "rejected"
)

// Step is one parsed script step.
type Step struct {
	Event  session.Event
	Expect Expectation
}

// Script is a named, ordered list of steps.
type Script struct {
	Name  string
	Steps []Step
}

// Load reads the script called name from fsys, trying name and then
// name + ".yaml".
func Load(fsys fs.FS, name string) (*Script, error) {
	candidates := []string{name}
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		candidates = append(candidates, name+".yaml")
	}
	var firstErr error
	for _, c := range candidates {
		data, err := fs.ReadFile(fsys, c)
		if err == nil {
			s, err := Parse(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c, err)
			}
			if s.Name == "" {
				s.Name = strings.TrimSuffix(c, ".yaml")
			}
			return s, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("script: reading %s: %w", name, firstErr)
}

// Parse parses a script from YAML bytes. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	var file scriptFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("script: parsing YAML: %w", err)
	}

	if len(file.Steps) == 0 {
		return nil, errors.New("script: no steps defined")
	}

	s := &Script{Name: file.Name, Steps: make([]Step, len(file.Steps))}
	for i, sy := range file.Steps {
		step, err := convertStep(sy)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		s.Steps[i] = step
	}
	return s, nil
}

// convertStep converts a stepYAML to a Step.
func convertStep(sy stepYAML) (Step, error) {
	var step Step
	switch session.Kind(sy.Action) {
	case session.KindSet:
		f, err := editor.ParseField(sy.Field)
		if err != nil {
			return Step{}, err
		}
		step.Event = session.Event{Kind: session.KindSet, Field: f, Value: sy.Value}
	case session.KindSubmit, session.KindCancel:
		step.Event = session.Event{Kind: session.Kind(sy.Action)}
	case session.KindEdit, session.KindDelete:
		if sy.Row < 1 {
			return Step{}, fmt.Errorf("%s: row must be at least 1, got %d", sy.Action, sy.Row)
		}
		step.Event = session.Event{Kind: session.Kind(sy.Action), Row: sy.Row}
	default:
		return Step{}, fmt.Errorf("%w %q (must be set, submit, cancel, edit, or delete)", ErrUnknownAction, sy.Action)
	}

	switch Expectation(sy.Expect) {
	case ExpectAny:
	case ExpectAccepted, ExpectRejected:
		if step.Event.Kind != session.KindSubmit {
			return Step{}, fmt.Errorf("expect only applies to submit, not %s", sy.Action)
		}
		step.Expect = Expectation(sy.Expect)
	default:
		return Step{}, fmt.Errorf("invalid expect %q (must be accepted or rejected)", sy.Expect)
	}
	return step, nil
}

// StepError indicates a replay failure with step context.
type StepError struct {
	Script string       // Script name.
	Step   int          // 1-based step number.
	Kind   session.Kind // Event kind of the failing step.
	Err    error        // Underlying error.
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %d (%s): %s", e.Script, e.Step, e.Kind, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// StepFunc observes each replayed step and its outcome.
type StepFunc func(i int, step Step, out session.Outcome)

// Replay applies every step to sess in order, calling fn (if non-nil) after
// each one. It stops at the first failing step and returns a *StepError.
func (s *Script) Replay(sess *session.Session, fn StepFunc) error {
	for i, step := range s.Steps {
		out, err := sess.Apply(step.Event)
		if err != nil {
			return &StepError{Script: s.Name, Step: i + 1, Kind: step.Event.Kind, Err: err}
		}
		if fn != nil {
			fn(i, step, out)
		}
		if err := check(step.Expect, out); err != nil {
			return &StepError{Script: s.Name, Step: i + 1, Kind: step.Event.Kind, Err: err}
		}
	}
	return nil
}

func check(want Expectation, out session.Outcome) error {
	switch {
	case want == ExpectAccepted && !out.Accepted:
		return fmt.Errorf("%w: submit rejected, want accepted", ErrExpectation)
	case want == ExpectRejected && out.Accepted:
		return fmt.Errorf("%w: submit accepted, want rejected", ErrExpectation)
	}
	return nil
}
