package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/tally/pkg/pattern"
	"github.com/dkoosis/tally/pkg/result"
)

const maxNameWidth = 60

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		s := t.renderOne(p)
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.TestTable:
		return t.renderTestTable(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		_, style := t.theme.ForResult(s.Verdict)
		sb.WriteString(style.Inherit(t.theme.Bold).Render(s.Label))
		sb.WriteString("\n")
	}
	for _, m := range s.Metrics {
		sb.WriteString("  ")
		icon, style := t.iconStyle(m.Kind)
		sb.WriteString(style.Render(icon + " " + m.Label + ": " + m.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderTestTable(tt *pattern.TestTable) string {
	if len(tt.Results) == 0 {
		return ""
	}
	var sb strings.Builder
	if tt.Label != "" {
		sb.WriteString(t.theme.Bold.Render(tt.Label))
		sb.WriteString("\n")
	}

	maxName, maxDur := 0, 0
	for _, r := range tt.Results {
		maxName = max(maxName, runewidth.StringWidth(r.Name))
		maxDur = max(maxDur, runewidth.StringWidth(r.Duration))
	}
	maxName = min(maxName, maxNameWidth)

	for _, r := range tt.Results {
		sb.WriteString("  ")
		icon, style := t.theme.ForResult(r.Status)
		sb.WriteString(style.Render(icon + " "))
		sb.WriteString(runewidth.FillRight(runewidth.Truncate(r.Name, maxName, "..."), maxName))

		if r.Duration != "" {
			sb.WriteString("  ")
			sb.WriteString(t.theme.Muted.Render(runewidth.FillLeft(r.Duration, maxDur)))
		}
		if r.Steps > 0 {
			sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("  %d steps", r.Steps)))
		}
		if r.ReportName != "" {
			sb.WriteString("  ")
			sb.WriteString(t.theme.Primary.Render(t.fitReportName(r.ReportName, maxName+maxDur+20)))
		}

		if r.Details != "" {
			for _, line := range strings.Split(r.Details, "\n") {
				sb.WriteString("\n    ")
				sb.WriteString(t.theme.Muted.Render(runewidth.Truncate(line, t.width-4, "...")))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// fitReportName truncates name to the space left on the line after used columns.
func (t *Terminal) fitReportName(name string, used int) string {
	room := t.width - used
	if room < 12 {
		return name
	}
	return runewidth.Truncate(name, room, "...")
}

func (t *Terminal) iconStyle(kind string) (string, lipgloss.Style) {
	switch kind {
	case "success":
		return t.theme.ForResult(result.Success)
	case "error":
		return t.theme.ForResult(result.Failure)
	case "warning":
		return t.theme.ForResult(result.Skipped)
	default:
		return t.theme.Icons.Other, t.theme.Primary
	}
}
