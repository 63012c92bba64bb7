package pattern

import "github.com/dkoosis/tally/pkg/result"

// TestTable lists the test outcomes of one story, or one line per story when
// stories are collapsed.
type TestTable struct {
	Label   string          `json:"label"`
	Verdict result.Result   `json:"verdict"`
	Results []TestTableItem `json:"results"`
}

// TestTableItem is a single test outcome or story.
type TestTableItem struct {
	Name       string        `json:"name"`
	Status     result.Result `json:"status"`
	ReportName string        `json:"report_name,omitempty"`
	Duration   string        `json:"duration,omitempty"`
	Steps      int           `json:"steps,omitempty"` // recorded step results
	Details    string        `json:"details,omitempty"`
}

func (t *TestTable) Type() PatternType { return PatternTypeTestTable }
