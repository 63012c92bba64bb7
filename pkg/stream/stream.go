package stream

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dkoosis/tally/pkg/naming"
	"github.com/dkoosis/tally/pkg/outcome"
	"github.com/dkoosis/tally/pkg/params"
	"github.com/dkoosis/tally/pkg/result"
	"github.com/dkoosis/tally/pkg/testjson"
)

// LineKind identifies the type of output line for styling.
type LineKind int

const (
	KindPass LineKind = iota
	KindFail
	KindSkip
	KindPending
	KindPkgPass
	KindPkgFail
	KindOutput
	KindSeparator
)

// StyleFunc formats a line with colors/symbols.
// If nil, no styling is applied.
type StyleFunc func(kind LineKind, text string) string

// Options control how finished tests are named.
type Options struct {
	Format    naming.Format
	Qualifier string
}

// pkgProgress tracks state for one active package.
type pkgProgress struct {
	name        string // full package path
	short       string // last segment
	story       naming.Story
	startTime   time.Time
	finished    int    // top-level tests completed
	currentTest string // most recently run test name
	running     map[string]*outcome.TestOutcome
	verdicts    []result.Result
}

// streamer is the core state machine for streaming go test -json output.
type streamer struct {
	tw    *termWriter
	style StyleFunc
	opts  Options

	active map[string]*pkgProgress // active packages by full name
	order  []string                // package order for footer rendering

	outputBuf map[string][]string // per-test output buffer, keyed by "pkg\x00test"

	tests       []result.Result // verdict of every finished top-level test
	pkgRuns     []result.Result // verdict of every finished package
	totalPkgs   int
	maxDuration float64
}

func newStreamer(tw *termWriter, style StyleFunc, opts Options) *streamer {
	return &streamer{
		tw:        tw,
		style:     style,
		opts:      opts,
		active:    make(map[string]*pkgProgress),
		outputBuf: make(map[string][]string),
	}
}

// shortPkg returns the last path segment of a package name.
func shortPkg(pkg string) string {
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}

// bufKey returns the output buffer key for a package/test pair.
func bufKey(pkg, test string) string {
	return pkg + "\x00" + test
}

// styleLine applies the style function if set, otherwise returns text unchanged.
func (s *streamer) styleLine(kind LineKind, text string) string {
	if s.style != nil {
		return s.style(kind, text)
	}
	return text
}

// handleEvent processes a single test event according to the event matrix.
func (s *streamer) handleEvent(e testjson.TestEvent) {
	switch e.Action {
	case testjson.ActionStart:
		s.handleStart(e)
	case testjson.ActionRun:
		s.handleRun(e)
	case testjson.ActionPass, testjson.ActionFail, testjson.ActionSkip:
		if e.Test != "" {
			s.handleTestDone(e)
		} else {
			s.handlePkgDone(e)
		}
	case testjson.ActionOutput:
		s.handleOutput(e)
	case testjson.ActionPause, testjson.ActionCont:
		// ignored
	}

	s.redrawFooter()
}

// pkgFor returns the progress for a package, starting it if the stream
// omitted the start event.
func (s *streamer) pkgFor(e testjson.TestEvent) *pkgProgress {
	if pkg, ok := s.active[e.Package]; ok {
		return pkg
	}
	pkg := &pkgProgress{
		name:      e.Package,
		short:     shortPkg(e.Package),
		story:     naming.StoryFrom(e.Package),
		startTime: e.Time,
		running:   make(map[string]*outcome.TestOutcome),
	}
	if pkg.startTime.IsZero() {
		pkg.startTime = time.Now()
	}
	s.active[e.Package] = pkg
	s.order = append(s.order, e.Package)
	return pkg
}

func (s *streamer) handleStart(e testjson.TestEvent) {
	s.pkgFor(e)
}

func (s *streamer) handleRun(e testjson.TestEvent) {
	pkg := s.pkgFor(e)
	pkg.currentTest = e.Test
	method, _ := params.Split(e.Test)
	if _, ok := pkg.running[method]; ok {
		return
	}
	o, err := outcome.ForTest(method, &pkg.story)
	if err != nil {
		log.Debug("cannot track test", "package", e.Package, "test", e.Test, "err", err)
		return
	}
	pkg.running[method] = o
}

// handleTestDone records a terminal test event. Subtests become steps of
// their top-level test; the top-level event adds the test's own result and
// prints its verdict with the report name.
func (s *streamer) handleTestDone(e testjson.TestEvent) {
	status, _ := testjson.ActionResult(e.Action)
	pkg := s.pkgFor(e)
	method, qualifier := params.Split(e.Test)
	o := pkg.running[method]

	if qualifier != "" {
		if o != nil {
			o.RecordResult(status)
		}
		s.printTest(e, status, "", "  ")
		return
	}

	verdict := status
	var reportName string
	if o != nil {
		o.RecordResult(status)
		verdict = o.Result()
		if name, err := o.ReportName(s.opts.Format, s.opts.Qualifier); err == nil {
			reportName = name
		}
		delete(pkg.running, method)
	}
	pkg.finished++
	pkg.verdicts = append(pkg.verdicts, verdict)
	s.tests = append(s.tests, verdict)
	s.printTest(e, verdict, reportName, "")
}

func (s *streamer) printTest(e testjson.TestEvent, verdict result.Result, reportName, indent string) {
	var kind LineKind
	var line string
	name := indent + e.Test
	switch {
	case result.IsFailure(verdict):
		kind = KindFail
		line = fmt.Sprintf("  %-10s ✗ %-40s %5.2fs", shortPkg(e.Package), name, e.Elapsed)
	case verdict == result.Skipped || verdict == result.Ignored:
		kind = KindSkip
		line = fmt.Sprintf("  %-10s ○ %-40s", shortPkg(e.Package), name)
	default:
		kind = KindPass
		line = fmt.Sprintf("  %-10s · %-40s %5.2fs", shortPkg(e.Package), name, e.Elapsed)
	}
	if reportName != "" {
		line += "  " + reportName
	}
	s.tw.Emit(s.styleLine(kind, line))

	key := bufKey(e.Package, e.Test)
	if kind == KindFail {
		s.flushOutput(key)
	}
	// passing and skipped output is discarded
	delete(s.outputBuf, key)
}

func (s *streamer) flushOutput(key string) {
	for _, l := range s.outputBuf[key] {
		if isBoilerplate(l) {
			continue
		}
		s.tw.Emit(s.styleLine(KindOutput, "             "+l))
	}
	delete(s.outputBuf, key)
}

// handlePkgDone closes a package. Tests still running when the package
// finishes never reported a result and count as pending.
func (s *streamer) handlePkgDone(e testjson.TestEvent) {
	pkg, ok := s.active[e.Package]
	if !ok {
		return
	}
	for range pkg.running {
		pkg.verdicts = append(pkg.verdicts, result.Pending)
		s.tests = append(s.tests, result.Pending)
	}

	var verdict result.Result
	switch {
	case e.Action == testjson.ActionFail && !result.IsFailure(result.Reduce(pkg.verdicts)):
		// build errors and panics fail the package without a failing test
		verdict = result.Error
	case len(pkg.verdicts) == 0:
		// no test files, or no tests matched
		verdict = result.Ignored
	default:
		verdict = result.Reduce(pkg.verdicts)
	}
	s.pkgRuns = append(s.pkgRuns, verdict)

	passed := result.Tally(pkg.verdicts).Success
	kind, mark := KindPkgPass, "✓"
	if result.IsFailure(verdict) {
		kind, mark = KindPkgFail, "✗"
	}
	line := fmt.Sprintf("  %s %-28s %d/%d  %.1fs", mark, pkg.short, passed, len(pkg.verdicts), e.Elapsed)
	s.tw.Emit(s.styleLine(kind, line))
	if kind == KindPkgFail {
		s.flushOutput(bufKey(e.Package, ""))
	}
	delete(s.outputBuf, bufKey(e.Package, ""))

	s.totalPkgs++
	if e.Elapsed > s.maxDuration {
		s.maxDuration = e.Elapsed
	}
	delete(s.active, e.Package)
}

func (s *streamer) handleOutput(e testjson.TestEvent) {
	output := strings.TrimRight(e.Output, "\n")
	if output == "" {
		return
	}

	key := bufKey(e.Package, e.Test)
	s.outputBuf[key] = append(s.outputBuf[key], output)

	// Package-level output: flush panic/goroutine lines immediately
	if e.Test == "" {
		if strings.Contains(output, "panic:") || strings.HasPrefix(output, "goroutine ") {
			s.tw.Emit(s.styleLine(KindOutput, "  "+output))
		}
	}
}

// isBoilerplate returns true for go test output lines that should be filtered.
func isBoilerplate(s string) bool {
	trimmed := strings.TrimSpace(s)
	return strings.HasPrefix(trimmed, "=== RUN") ||
		strings.HasPrefix(trimmed, "--- FAIL") ||
		strings.HasPrefix(trimmed, "--- PASS")
}

// redrawFooter rebuilds the active-packages footer.
func (s *streamer) redrawFooter() {
	if len(s.active) == 0 {
		return
	}

	lines := []string{"  ─── active " + strings.Repeat("─", 37)}

	now := time.Now()
	for _, name := range s.order {
		pkg, ok := s.active[name]
		if !ok {
			continue
		}
		elapsed := now.Sub(pkg.startTime).Seconds()
		lines = append(lines, fmt.Sprintf("  %-7s [%d] %-25s %5.1fs",
			pkg.short, pkg.finished, truncateToWidth(pkg.currentTest, 25), elapsed))
	}

	s.tw.Live(lines)
}

// verdict aggregates every finished package and counts every test. Packages
// and tests still running when the stream ends are pending.
func (s *streamer) verdict() (result.Result, result.Counts) {
	runs := append([]result.Result(nil), s.pkgRuns...)
	tests := append([]result.Result(nil), s.tests...)
	for _, pkg := range s.active {
		runs = append(runs, result.Pending)
		for range pkg.running {
			tests = append(tests, result.Pending)
		}
	}
	return result.Aggregate(runs), result.Tally(tests)
}

// finish erases the footer and prints the final summary line.
func (s *streamer) finish() result.Result {
	s.tw.Emit(s.styleLine(KindSeparator, "  "+strings.Repeat("─", 45)))

	verdict, c := s.verdict()
	var summary string
	kind := KindPass
	switch {
	case result.IsFailure(verdict):
		kind = KindFail
		summary = fmt.Sprintf("  %s (%.1fs) %d/%d tests, %d packages",
			verdict, s.maxDuration, c.Failure, c.Total, s.totalPkgs)
	case result.IsPending(verdict):
		kind = KindPending
		summary = fmt.Sprintf("  %s (%.1fs) %d/%d tests pending, %d packages",
			verdict, s.maxDuration, c.Pending, c.Total, s.totalPkgs)
	default:
		summary = fmt.Sprintf("  %s (%.1fs) %d tests, %d packages",
			verdict, s.maxDuration, c.Total, s.totalPkgs)
	}
	s.tw.Emit(s.styleLine(kind, summary))
	return verdict
}

// Run reads go test -json events from r and renders them to out.
// Returns exit code: 0=success, 1=failures, 2=error, 130=cancelled.
func Run(ctx context.Context, r io.Reader, out io.Writer, width, height int, style StyleFunc, opts Options) int {
	tw := newTermWriter(out, width, height)
	s := newStreamer(tw, style, opts)

	malformed, err := testjson.Stream(ctx, r, func(e testjson.TestEvent) {
		s.handleEvent(e)
	})
	if malformed > 0 {
		log.Warn("skipped malformed lines", "count", malformed)
	}
	verdict := s.finish()
	if err != nil {
		if ctx.Err() != nil {
			return 130
		}
		log.Error("reading test stream", "err", err)
		return 2
	}
	if result.IsFailure(verdict) {
		return 1
	}
	return 0
}
