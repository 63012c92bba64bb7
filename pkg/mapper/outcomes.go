// Package mapper turns parsed go test results into stories of test outcomes
// and the visualization patterns that present them.
package mapper

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dkoosis/tally/pkg/naming"
	"github.com/dkoosis/tally/pkg/outcome"
	"github.com/dkoosis/tally/pkg/params"
	"github.com/dkoosis/tally/pkg/result"
	"github.com/dkoosis/tally/pkg/testjson"
)

// Options control how report names are derived.
type Options struct {
	Format    naming.Format
	Qualifier string
}

// Run is one top-level go test and the outcome built from it.
type Run struct {
	Outcome    *outcome.TestOutcome
	Test       string // go test name
	ReportName string
	Duration   time.Duration
	Output     []string // output of failing subtests and of the test itself
}

// Story is one package viewed as a user story.
type Story struct {
	Package        string
	Suite          *outcome.Suite
	Runs           []Run
	ReportName     string
	BuildError     string
	PackageFailure string // package failed but none of its tests did
	Panic          []string
	Duration       time.Duration
	Coverage       float64
}

// Result is Error when the package did not build, panicked, or failed with
// no failing test; otherwise the suite verdict.
func (s *Story) Result() result.Result {
	if s.BuildError != "" || s.PackageFailure != "" || len(s.Panic) > 0 {
		return result.Error
	}
	return s.Suite.Result()
}

// Report is the outcome of a whole go test invocation.
type Report struct {
	Stories    []*Story
	Collisions []*naming.CollisionError
	Stats      testjson.Stats
}

// Result aggregates every story's verdict.
func (r *Report) Result() result.Result {
	runs := make([]result.Result, 0, len(r.Stories))
	for _, s := range r.Stories {
		runs = append(runs, s.Result())
	}
	return result.Aggregate(runs)
}

// Counts classifies every test outcome across stories.
func (r *Report) Counts() result.Counts {
	var all []result.Result
	for _, s := range r.Stories {
		for _, run := range s.Runs {
			all = append(all, run.Outcome.Result())
		}
	}
	return result.Tally(all)
}

// Build turns parsed package results into stories. Each top-level test
// becomes a TestOutcome in its package's story; subtest results are recorded
// as its steps, followed by the test's own result. Report names that collide
// are collected rather than treated as fatal.
func Build(results []testjson.TestPackageResult, opts Options) (*Report, error) {
	report := &Report{Stats: testjson.ComputeStats(results)}
	index := naming.NewIndex()

	for _, pkg := range results {
		story, err := buildStory(pkg, opts)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", pkg.Name, err)
		}
		report.claim(index, story.ReportName, pkg.Name)
		for _, run := range story.Runs {
			report.claim(index, run.ReportName, pkg.Name+"."+run.Test)
		}
		report.Stories = append(report.Stories, story)
	}
	return report, nil
}

// claim records name for owner, collecting a collision instead of failing.
func (r *Report) claim(index *naming.Index, name, owner string) {
	var collision *naming.CollisionError
	if errors.As(index.Claim(name, owner), &collision) {
		r.Collisions = append(r.Collisions, collision)
	}
}

func buildStory(pkg testjson.TestPackageResult, opts Options) (*Story, error) {
	nstory := naming.StoryFrom(pkg.Name)
	story := &Story{
		Package:        pkg.Name,
		Suite:          outcome.NewSuite(nstory.DisplayTitle()),
		BuildError:     pkg.BuildError,
		PackageFailure: pkg.PackageFailure,
		Panic:          pkg.PanicOutput,
		Duration:       pkg.Duration,
		Coverage:       pkg.Coverage,
	}
	name, err := nstory.ReportName(opts.Format, opts.Qualifier)
	if err != nil {
		return nil, err
	}
	story.ReportName = name

	byMethod := make(map[string]*Run)
	var order []string
	own := make(map[string]testjson.TestResult)

	runFor := func(method string) (*Run, error) {
		if r, ok := byMethod[method]; ok {
			return r, nil
		}
		o, err := outcome.ForTest(method, &nstory)
		if err != nil {
			return nil, err
		}
		r := &Run{Outcome: o, Test: method}
		byMethod[method] = r
		order = append(order, method)
		return r, nil
	}

	for _, t := range pkg.AllTests {
		method, qualifier := params.Split(t.Name)
		run, err := runFor(method)
		if err != nil {
			return nil, fmt.Errorf("test %q: %w", t.Name, err)
		}
		if qualifier == "" {
			own[method] = t
			continue
		}
		run.Outcome.RecordResult(t.Status)
		if result.IsFailure(t.Status) {
			run.Output = append(run.Output, t.Output...)
		}
	}

	for _, method := range order {
		run := byMethod[method]
		if t, ok := own[method]; ok {
			run.Outcome.RecordResult(t.Status)
			run.Duration = t.Duration
			run.Output = append(run.Output, t.Output...)
		}
		name, err := run.Outcome.ReportName(opts.Format, opts.Qualifier)
		if err != nil {
			return nil, fmt.Errorf("test %q: %w", method, err)
		}
		run.ReportName = name
		story.Suite.RecordTestRun(run.Outcome)
		story.Runs = append(story.Runs, *run)
	}
	return story, nil
}

// sortStories orders broken stories first, then failing, pending and passing
// ones, alphabetically within each group.
func sortStories(stories []*Story) []*Story {
	sorted := make([]*Story, len(stories))
	copy(sorted, stories)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := storyPriority(sorted[i]), storyPriority(sorted[j])
		if pi != pj {
			return pi < pj
		}
		return sorted[i].Package < sorted[j].Package
	})
	return sorted
}

func storyPriority(s *Story) int {
	switch {
	case len(s.Panic) > 0:
		return 0
	case s.BuildError != "", s.PackageFailure != "":
		return 1
	case result.IsFailure(s.Result()):
		return 2
	case result.IsPending(s.Result()):
		return 3
	}
	return 4
}

// shortPkgName strips the module prefix to show a relative package path.
func shortPkgName(name string) string {
	for _, prefix := range []string{"/internal/", "/cmd/", "/pkg/", "/examples/"} {
		if idx := strings.Index(name, prefix); idx != -1 {
			return name[idx+1:]
		}
	}
	parts := strings.Split(name, "/")
	if len(parts) > 2 {
		return strings.Join(parts[len(parts)-2:], "/")
	}
	return name
}
