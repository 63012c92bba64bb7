package testjson

import (
	"time"

	"github.com/dkoosis/tally/pkg/result"
)

// Stats holds aggregate statistics across all packages.
type Stats struct {
	TotalTests  int
	Passed      int
	Failed      int
	Skipped     int
	Pending     int
	Packages    int
	FailedPkgs  int
	Duration    time.Duration
	BuildErrors int
	PkgFailures int // failed outside any test, e.g. in TestMain
	Panics      int
}

// ComputeStats aggregates statistics from package results.
func ComputeStats(results []TestPackageResult) Stats {
	var s Stats
	s.Packages = len(results)
	for _, r := range results {
		s.Passed += r.Passed
		s.Failed += r.Failed
		s.Skipped += r.Skipped
		s.Pending += r.Pending
		s.TotalTests += r.TotalTests()
		if r.Duration > s.Duration {
			s.Duration = r.Duration
		}
		if result.IsFailure(r.Result()) {
			s.FailedPkgs++
		}
		if r.BuildError != "" {
			s.BuildErrors++
		}
		if r.PackageFailure != "" {
			s.PkgFailures++
		}
		if r.Panicked {
			s.Panics++
		}
	}
	return s
}
