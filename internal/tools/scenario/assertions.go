package scenario

import (
	"fmt"
	"log"
	"strings"
)

// AssertionMode controls how failed expectations are handled.
type AssertionMode int

const (
	// AssertionStrict stops the scenario at the first failed expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs failed expectations and keeps going.
	AssertionLogOnly
)

// String returns the flag spelling of the mode.
func (m AssertionMode) String() string {
	if m == AssertionLogOnly {
		return "log"
	}
	return "strict"
}

// ParseAssertionMode parses "strict" or "log".
func ParseAssertionMode(value string) (AssertionMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "strict":
		return AssertionStrict, nil
	case "log", "log-only", "logonly":
		return AssertionLogOnly, nil
	default:
		return AssertionStrict, fmt.Errorf("unknown assertion mode %q", value)
	}
}

// Assertions reports scenario failures according to Mode.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
	// Failures counts expectations that failed in log-only mode.
	Failures int
}

// Failf reports a failure that always stops the scenario, such as a
// malformed step.
func (a *Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Assertf reports a failed expectation. In log-only mode it is logged and
// counted instead of returned.
func (a *Assertions) Assertf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	if a.Mode != AssertionLogOnly {
		return err
	}
	a.Failures++
	if a.Logger != nil {
		a.Logger.Printf("assertion failed: %v", err)
	}
	return nil
}
