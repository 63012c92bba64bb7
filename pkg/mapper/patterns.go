package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/dkoosis/tally/pkg/pattern"
	"github.com/dkoosis/tally/pkg/result"
)

// Patterns converts a report into visualization patterns:
// Summary, then a TestTable per story that did not pass, then one collapsed
// TestTable listing the passing stories.
func Patterns(report *Report) []pattern.Pattern {
	var patterns []pattern.Pattern
	patterns = append(patterns, summary(report))

	var passing []pattern.TestTableItem
	for _, s := range sortStories(report.Stories) {
		verdict := s.Result()
		switch {
		case len(s.Panic) > 0:
			patterns = append(patterns, brokenTable(s, "PANIC", truncateLines(s.Panic, 5)))
		case s.BuildError != "":
			patterns = append(patterns, brokenTable(s, "BUILD ERROR", truncateString(s.BuildError, 300)))
		case s.PackageFailure != "":
			lines := filterBoilerplate(strings.Split(s.PackageFailure, "\n"))
			patterns = append(patterns, brokenTable(s, "PACKAGE FAILED", truncateLines(lines, 5)))
		case result.IsSuccess(verdict) || result.IsIgnored(verdict):
			passing = append(passing, pattern.TestTableItem{
				Name:       shortPkgName(s.Package),
				Status:     verdict,
				ReportName: s.ReportName,
				Duration:   formatDuration(s.Duration),
				Steps:      s.Suite.Total(),
			})
		default:
			patterns = append(patterns, storyTable(s))
		}
	}

	if len(passing) > 0 {
		patterns = append(patterns, &pattern.TestTable{
			Label:   fmt.Sprintf("Passing Stories (%d)", len(passing)),
			Verdict: result.Success,
			Results: passing,
		})
	}
	return patterns
}

func summary(r *Report) *pattern.Summary {
	c := r.Counts()
	verdict := r.Result()
	var metrics []pattern.SummaryItem

	if broken := r.Stats.BuildErrors + r.Stats.PkgFailures + r.Stats.Panics; broken > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Broken", Value: fmt.Sprintf("%d stories", broken), Kind: "error",
		})
	}
	if c.Failure > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Failed", Value: fmt.Sprintf("%d/%d tests", c.Failure, c.Total), Kind: "error",
		})
	}
	if c.Pending > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Pending", Value: fmt.Sprintf("%d/%d tests", c.Pending, c.Total), Kind: "warning",
		})
	}
	if c.Success > 0 {
		kind := "success"
		if c.Failure > 0 || c.Pending > 0 {
			kind = "info"
		}
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Passed", Value: fmt.Sprintf("%d/%d tests", c.Success, c.Total), Kind: kind,
		})
	}
	if c.Skipped+c.Ignored > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Skipped", Value: fmt.Sprintf("%d", c.Skipped+c.Ignored), Kind: "warning",
		})
	}
	metrics = append(metrics, pattern.SummaryItem{
		Label: "Stories", Value: fmt.Sprintf("%d", len(r.Stories)), Kind: "info",
	})
	if len(r.Collisions) > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Name collisions", Value: fmt.Sprintf("%d", len(r.Collisions)), Kind: "warning",
		})
	}

	return &pattern.Summary{
		Label:   fmt.Sprintf("%s %d tests, %d stories (%s)", verdict, c.Total, len(r.Stories), formatDuration(r.Stats.Duration)),
		Verdict: verdict,
		Metrics: metrics,
	}
}

func brokenTable(s *Story, name, details string) *pattern.TestTable {
	return &pattern.TestTable{
		Label:   name + " " + shortPkgName(s.Package),
		Verdict: result.Error,
		Results: []pattern.TestTableItem{{
			Name:       name,
			Status:     result.Error,
			ReportName: s.ReportName,
			Details:    details,
		}},
	}
}

// storyTable lists the tests of a failing or pending story. Passing tests are
// left out; their count appears in the label.
func storyTable(s *Story) *pattern.TestTable {
	items := make([]pattern.TestTableItem, 0, len(s.Runs))
	for _, run := range s.Runs {
		verdict := run.Outcome.Result()
		if result.IsSuccess(verdict) {
			continue
		}
		items = append(items, pattern.TestTableItem{
			Name:       run.Test,
			Status:     verdict,
			ReportName: run.ReportName,
			Duration:   formatDuration(run.Duration),
			Steps:      run.Outcome.StepCount(),
			Details:    truncateLines(filterBoilerplate(run.Output), 3),
		})
	}
	verdict := s.Result()
	return &pattern.TestTable{
		Label: fmt.Sprintf("%s %s (%d/%d failed, %d pending)",
			verdict, shortPkgName(s.Package), s.Suite.FailureCount(), s.Suite.Total(), s.Suite.PendingCount()),
		Verdict: verdict,
		Results: items,
	}
}

func filterBoilerplate(lines []string) []string {
	var out []string
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if strings.HasPrefix(trimmed, "=== RUN") || strings.HasPrefix(trimmed, "--- FAIL") {
			continue
		}
		out = append(out, l)
	}
	return out
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func truncateLines(lines []string, max int) string {
	if len(lines) <= max {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:max], "\n") + fmt.Sprintf("\n... (%d more lines)", len(lines)-max)
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
