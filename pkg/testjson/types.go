// Package testjson parses go test -json NDJSON streams into per-test results.
package testjson

import (
	"time"

	"github.com/dkoosis/tally/pkg/result"
)

// Actions emitted by go test -json (see go doc test2json).
const (
	ActionStart  = "start"
	ActionRun    = "run"
	ActionPause  = "pause"
	ActionCont   = "cont"
	ActionPass   = "pass"
	ActionBench  = "bench"
	ActionFail   = "fail"
	ActionOutput = "output"
	ActionSkip   = "skip"
)

// TestEvent represents a single event from go test -json output.
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// ProcessFunc receives each decoded event from Stream.
type ProcessFunc func(TestEvent)

// ActionResult maps a terminal test action to a Result. ok is false for
// actions that do not end a test.
func ActionResult(action string) (r result.Result, ok bool) {
	switch action {
	case ActionPass:
		return result.Success, true
	case ActionFail:
		return result.Failure, true
	case ActionSkip:
		return result.Skipped, true
	}
	return result.Unknown, false
}

// TestResult is one test (or subtest) with its status. A test that started
// but never reported pass, fail or skip is Pending.
type TestResult struct {
	Name     string
	Status   result.Result
	Duration time.Duration
	Output   []string // output lines, kept for failures only
}

// TestPackageResult represents aggregated results for one package.
type TestPackageResult struct {
	Name           string
	Passed         int
	Failed         int
	Skipped        int
	Pending        int
	Duration       time.Duration
	Coverage       float64
	AllTests       []TestResult
	BuildError     string // non-empty if package failed to build
	PackageFailure string // non-empty if package failed though none of its tests did
	Panicked       bool
	PanicOutput    []string
}

// TotalTests returns the total number of tests in this package.
func (r *TestPackageResult) TotalTests() int {
	return r.Passed + r.Failed + r.Skipped + r.Pending
}

// Broken reports whether the package failed outside of any single test.
func (r *TestPackageResult) Broken() bool {
	return r.BuildError != "" || r.PackageFailure != "" || r.Panicked
}

// Result reduces the package's test statuses. A build failure or panic
// is an Error regardless of individual tests.
func (r *TestPackageResult) Result() result.Result {
	if r.Broken() {
		return result.Error
	}
	statuses := make([]result.Result, 0, len(r.AllTests))
	for _, t := range r.AllTests {
		statuses = append(statuses, t.Status)
	}
	return result.Reduce(statuses)
}

// FailedTests returns the tests whose status is a failure.
func (r *TestPackageResult) FailedTests() []TestResult {
	var out []TestResult
	for _, t := range r.AllTests {
		if result.IsFailure(t.Status) {
			out = append(out, t)
		}
	}
	return out
}
