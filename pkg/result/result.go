// Package result defines test step and test run results and the precedence
// rules that reduce many results to one verdict.
package result

import (
	"errors"
	"fmt"
	"strings"
)

// Result is the outcome classification of a single test step or test run.
type Result int

const (
	// Unknown is the zero value. It is never produced by this package and is
	// treated conservatively (as pending) when it shows up in a collection.
	Unknown Result = iota
	Success
	Failure
	Ignored
	Skipped
	Pending
	Error
)

// ErrUnknownResult is returned by Parse for names outside the enumeration.
var ErrUnknownResult = errors.New("unknown result")

var names = map[Result]string{
	Success: "SUCCESS",
	Failure: "FAILURE",
	Ignored: "IGNORED",
	Skipped: "SKIPPED",
	Pending: "PENDING",
	Error:   "ERROR",
}

// All returns every valid result in declaration order.
func All() []Result {
	return []Result{Success, Failure, Ignored, Skipped, Pending, Error}
}

// String returns the canonical upper-case name.
func (r Result) String() string {
	if n, ok := names[r]; ok {
		return n
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Valid reports whether r is one of the enumerated results.
func (r Result) Valid() bool {
	_, ok := names[r]
	return ok
}

// Parse converts a case-insensitive name into a Result.
// The go test verbs pass, fail and skip are accepted as aliases.
func Parse(s string) (Result, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUCCESS", "PASS":
		return Success, nil
	case "FAILURE", "FAIL":
		return Failure, nil
	case "IGNORED":
		return Ignored, nil
	case "SKIPPED", "SKIP":
		return Skipped, nil
	case "PENDING":
		return Pending, nil
	case "ERROR":
		return Error, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownResult, s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Result) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownResult, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Result) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
