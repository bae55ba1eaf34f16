package record

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSequence_Monotonic(t *testing.T) {
	next := Sequence("u")
	for i, want := range []string{"u1", "u2", "u3"} {
		if got := next(); got != want {
			t.Errorf("call %d = %q, want %q", i, got, want)
		}
	}
}

func TestSequence_IndependentCounters(t *testing.T) {
	a := Sequence("a")
	b := Sequence("b")
	a()
	if got := b(); got != "b1" {
		t.Errorf("second generator = %q, want %q", got, "b1")
	}
}

func TestUUIDs_Valid(t *testing.T) {
	next := UUIDs()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := next()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("id %q is not a UUID: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewIDGenerator(t *testing.T) {
	tests := []struct {
		strategy string
		wantErr  bool
	}{
		{StrategyUUID, false},
		{StrategySequence, false},
		{"timestamp", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			g, err := NewIDGenerator(tt.strategy, "id-")
			if tt.wantErr {
				var ue *UnknownStrategyError
				if !errors.As(err, &ue) {
					t.Fatalf("err = %v, want *UnknownStrategyError", err)
				}
				if !strings.Contains(ue.Error(), "sequence, uuid") {
					t.Errorf("error %q should list available strategies", ue.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("NewIDGenerator(%q) error = %v", tt.strategy, err)
			}
			if g() == "" {
				t.Error("generator returned empty id")
			}
		})
	}
}

func TestNewIDGenerator_SequencePrefix(t *testing.T) {
	g, err := NewIDGenerator(StrategySequence, "id-")
	if err != nil {
		t.Fatal(err)
	}
	if got := g(); got != "id-1" {
		t.Errorf("first id = %q, want %q", got, "id-1")
	}
}
