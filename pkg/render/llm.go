package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/tally/pkg/pattern"
)

const maxDetailLines = 3

// LLM renders patterns as terse plain text optimized for AI consumption.
// Zero ANSI codes, a SCOPE line, then each table in the order given.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats all patterns for LLM consumption.
func (l *LLM) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			l.renderSummary(&sb, v)
		case *pattern.TestTable:
			l.renderTable(&sb, v)
		}
	}
	return sb.String()
}

func (l *LLM) renderSummary(sb *strings.Builder, s *pattern.Summary) {
	sb.WriteString("SCOPE: " + s.Label + "\n")
	for _, m := range s.Metrics {
		sb.WriteString("  " + m.Label + ": " + m.Value + "\n")
	}
}

func (l *LLM) renderTable(sb *strings.Builder, t *pattern.TestTable) {
	if len(t.Results) == 0 {
		return
	}
	sb.WriteString("\n" + t.Label + "\n")
	for _, item := range t.Results {
		sb.WriteString(fmt.Sprintf("  %s %s", item.Status, item.Name))
		if item.Duration != "" {
			sb.WriteString(" (" + item.Duration + ")")
		}
		if item.ReportName != "" {
			sb.WriteString(" -> " + item.ReportName)
		}
		sb.WriteString("\n")

		if item.Details == "" {
			continue
		}
		lines := strings.Split(item.Details, "\n")
		for _, line := range lines[:min(len(lines), maxDetailLines)] {
			sb.WriteString("    " + line + "\n")
		}
		if len(lines) > maxDetailLines {
			sb.WriteString(fmt.Sprintf("    ... (%d more lines)\n", len(lines)-maxDetailLines))
		}
	}
}
