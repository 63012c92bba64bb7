package testjson

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dkoosis/tally/pkg/result"
)

const (
	initialLineBuf = 64 * 1024
	maxLineBuf     = 1024 * 1024
)

// ParseStream parses go test -json NDJSON from a reader, line by line.
// Returns the parsed results, the number of malformed lines skipped, and any error.
func ParseStream(r io.Reader) ([]TestPackageResult, int, error) {
	agg := newAggregator()
	scanner := bufio.NewScanner(r)
	// Allow large lines for verbose test output
	scanner.Buffer(make([]byte, 0, initialLineBuf), maxLineBuf)

	var malformed int
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var event TestEvent
		if err := json.Unmarshal(line, &event); err != nil {
			malformed++
			continue
		}
		agg.processEvent(event)
	}
	if err := scanner.Err(); err != nil {
		return nil, malformed, fmt.Errorf("scanning test output: %w", err)
	}
	return agg.results(), malformed, nil
}

// ParseBytes is a convenience for parsing from a byte slice.
func ParseBytes(data []byte) ([]TestPackageResult, int, error) {
	return ParseStream(bytes.NewReader(data))
}

// scanResult carries a scanned line or terminal error from the scanner goroutine.
type scanResult struct {
	line []byte
	err  error
}

// Stream parses go test -json events line by line and calls fn for each one.
// Stops on EOF or when ctx is cancelled. Returns the number of malformed lines
// skipped and any error.
//
// On cancel, Stream closes r if it implements io.Closer to unblock the
// scanner goroutine. Otherwise the caller must close the underlying reader.
func Stream(ctx context.Context, r io.Reader, fn ProcessFunc) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialLineBuf), maxLineBuf)

	lines := make(chan scanResult)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			// scanner reuses its buffer
			cp := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- scanResult{line: cp}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- scanResult{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	var malformed int
	for {
		select {
		case <-ctx.Done():
			if c, ok := r.(io.Closer); ok {
				_ = c.Close()
			}
			return malformed, ctx.Err()
		case res, ok := <-lines:
			if !ok {
				return malformed, nil
			}
			if res.err != nil {
				return malformed, fmt.Errorf("scanning test output: %w", res.err)
			}
			if len(bytes.TrimSpace(res.line)) == 0 {
				continue
			}
			var event TestEvent
			if err := json.Unmarshal(res.line, &event); err != nil {
				malformed++
				continue
			}
			fn(event)
		}
	}
}

type aggregator struct {
	packages map[string]*pkgState
	order    []string
}

type pkgState struct {
	name           string
	duration       time.Duration
	coverage       float64
	tests          map[string]*TestResult
	testOrder      []string
	buildError     string
	packageFailure string
	panicked       bool
	panicOutput    []string
	outputBuf      map[string][]string // per test; "" holds package-level output
}

func newAggregator() *aggregator {
	return &aggregator{packages: make(map[string]*pkgState)}
}

func (a *aggregator) getOrCreate(name string) *pkgState {
	if pkg, ok := a.packages[name]; ok {
		return pkg
	}
	pkg := &pkgState{
		name:      name,
		tests:     make(map[string]*TestResult),
		outputBuf: make(map[string][]string),
	}
	a.packages[name] = pkg
	a.order = append(a.order, name)
	return pkg
}

func (a *aggregator) processEvent(e TestEvent) {
	pkg := a.getOrCreate(e.Package)
	elapsed := time.Duration(e.Elapsed * float64(time.Second))

	switch e.Action {
	case ActionRun:
		if e.Test != "" {
			pkg.getOrCreateTest(e.Test)
		}

	case ActionPass, ActionFail, ActionSkip:
		status, _ := ActionResult(e.Action)
		if e.Test != "" {
			ts := pkg.getOrCreateTest(e.Test)
			ts.Status = status
			ts.Duration = elapsed
			if status == result.Failure {
				ts.Output = pkg.outputBuf[e.Test]
			}
			delete(pkg.outputBuf, e.Test)
			return
		}
		pkg.duration = elapsed
		if status != result.Failure {
			return
		}
		// A package that fails before any test ran did not build. One that
		// fails with no failing test failed in TestMain or teardown.
		switch {
		case len(pkg.tests) == 0:
			pkg.buildError = strings.Join(pkg.outputBuf[""], "\n")
			if pkg.buildError == "" {
				pkg.buildError = "package failed without running tests"
			}
		case !pkg.anyTestFailed():
			pkg.packageFailure = strings.Join(pkg.outputBuf[""], "\n")
			if pkg.packageFailure == "" {
				pkg.packageFailure = "package failed after its tests finished"
			}
		}

	case ActionOutput:
		pkg.recordOutput(e)
	}
}

func (pkg *pkgState) recordOutput(e TestEvent) {
	output := strings.TrimRight(e.Output, "\n")
	if output == "" {
		return
	}
	pkg.outputBuf[e.Test] = append(pkg.outputBuf[e.Test], output)

	if strings.Contains(output, "panic:") || strings.HasPrefix(output, "goroutine ") {
		pkg.panicked = true
		pkg.panicOutput = append(pkg.panicOutput, output)
	}

	if strings.Contains(output, "coverage:") && strings.Contains(output, "% of statements") {
		var cov float64
		_, _ = fmt.Sscanf(strings.TrimSpace(output), "coverage: %f%% of statements", &cov)
		if cov > 0 {
			pkg.coverage = cov
		}
	}
}

func (pkg *pkgState) anyTestFailed() bool {
	for _, ts := range pkg.tests {
		if result.IsFailure(ts.Status) {
			return true
		}
	}
	return false
}

func (pkg *pkgState) getOrCreateTest(name string) *TestResult {
	if ts, ok := pkg.tests[name]; ok {
		return ts
	}
	ts := &TestResult{Name: name, Status: result.Pending}
	pkg.tests[name] = ts
	pkg.testOrder = append(pkg.testOrder, name)
	return ts
}

func (a *aggregator) results() []TestPackageResult {
	results := make([]TestPackageResult, 0, len(a.order))
	for _, name := range a.order {
		pkg := a.packages[name]
		// no tests, no build error, no panic: nothing to report
		if len(pkg.tests) == 0 && pkg.buildError == "" && !pkg.panicked {
			continue
		}

		r := TestPackageResult{
			Name:           pkg.name,
			Duration:       pkg.duration,
			Coverage:       pkg.coverage,
			BuildError:     pkg.buildError,
			PackageFailure: pkg.packageFailure,
			Panicked:       pkg.panicked,
		}
		if pkg.panicked {
			r.PanicOutput = pkg.panicOutput
		}

		for _, testName := range pkg.testOrder {
			ts := *pkg.tests[testName]
			switch ts.Status {
			case result.Success:
				r.Passed++
			case result.Failure:
				r.Failed++
			case result.Skipped:
				r.Skipped++
			default:
				r.Pending++
			}
			r.AllTests = append(r.AllTests, ts)
		}

		results = append(results, r)
	}
	return results
}
