package record

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDGenerator returns a new record identifier on each call.
type IDGenerator func() string

// UUIDs returns a generator of random (version 4) UUID strings.
func UUIDs() IDGenerator {
	return uuid.NewString
}

// Sequence returns a generator of prefix1, prefix2, ... in order.
func Sequence(prefix string) IDGenerator {
	var n int
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

// Strategy names accepted by NewIDGenerator.
const (
	StrategyUUID     = "uuid"
	StrategySequence = "sequence"
)

var strategies = map[string]func(prefix string) IDGenerator{
	StrategyUUID:     func(string) IDGenerator { return UUIDs() },
	StrategySequence: Sequence,
}

// NewIDGenerator builds a generator by strategy name.
// The prefix only applies to the sequence strategy.
func NewIDGenerator(strategy, prefix string) (IDGenerator, error) {
	f, ok := strategies[strategy]
	if !ok {
		return nil, &UnknownStrategyError{Name: strategy, Available: Strategies()}
	}
	return f(prefix), nil
}

// Strategies returns the known strategy names in sorted order.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownStrategyError indicates an ID strategy name is not known.
type UnknownStrategyError struct {
	Name      string
	Available []string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown id strategy %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
