package pattern

import "github.com/dkoosis/tally/pkg/result"

// Summary is the headline verdict with its supporting counts.
type Summary struct {
	Label   string        `json:"label"`
	Verdict result.Result `json:"verdict"`
	Metrics []SummaryItem `json:"metrics"`
}

// SummaryItem is a single metric in a summary.
type SummaryItem struct {
	Label string `json:"label"` // e.g. "Failed", "Pending", "Stories"
	Value string `json:"value"`
	Kind  string `json:"kind"` // "success", "error", "warning", "info"; drives coloring
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
