package outcome

import (
	"github.com/dkoosis/tally/pkg/naming"
	"github.com/dkoosis/tally/pkg/result"
)

// Suite aggregates the outcomes of several test runs, for example every
// scenario of one user story.
type Suite struct {
	title string
	runs  []*TestOutcome
}

// NewSuite creates an empty suite.
func NewSuite(title string) *Suite {
	return &Suite{title: title}
}

// Title returns the suite title.
func (s *Suite) Title() string { return s.title }

// RecordTestRun adds a test run to the suite. Nil runs are ignored.
func (s *Suite) RecordTestRun(run *TestOutcome) {
	if run == nil {
		return
	}
	s.runs = append(s.runs, run)
}

// TestRuns returns the recorded runs in recording order.
func (s *Suite) TestRuns() []*TestOutcome {
	out := make([]*TestOutcome, len(s.runs))
	copy(out, s.runs)
	return out
}

// Total is the number of recorded runs.
func (s *Suite) Total() int { return len(s.runs) }

func (s *Suite) runResults() []result.Result {
	out := make([]result.Result, len(s.runs))
	for i, r := range s.runs {
		out[i] = r.Result()
	}
	return out
}

// Counts classifies every run by its current overall result.
func (s *Suite) Counts() result.Counts {
	return result.Tally(s.runResults())
}

// FailureCount is the number of runs whose result is a failure.
func (s *Suite) FailureCount() int { return s.Counts().Failure }

// SuccessCount is the number of runs whose result is a success.
func (s *Suite) SuccessCount() int { return s.Counts().Success }

// PendingCount is the number of runs whose result is pending.
func (s *Suite) PendingCount() int { return s.Counts().Pending }

// Result aggregates the run results into the suite verdict.
func (s *Suite) Result() result.Result {
	return result.Aggregate(s.runResults())
}

// ReportName names the suite report using its title as a story title.
func (s *Suite) ReportName(format naming.Format, qualifier string) (string, error) {
	return naming.Story{Title: s.title}.ReportName(format, qualifier)
}
