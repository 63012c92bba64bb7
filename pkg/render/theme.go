package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/tally/pkg/result"
)

// Theme defines colors and verdict icons for terminal rendering.
type Theme struct {
	Name    string
	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Icons   VerdictIcons
}

// VerdictIcons holds one icon per displayed verdict class.
type VerdictIcons struct {
	Success string
	Failure string
	Skipped string // skipped and ignored
	Pending string
	Other   string
}

// ForResult returns the icon and style a verdict is drawn with. Error shares
// the failure look; ignored shares the skipped look.
func (t Theme) ForResult(r result.Result) (string, lipgloss.Style) {
	switch r {
	case result.Success:
		return t.Icons.Success, t.Success
	case result.Failure, result.Error:
		return t.Icons.Failure, t.Error
	case result.Skipped, result.Ignored:
		return t.Icons.Skipped, t.Warning
	case result.Pending:
		return t.Icons.Pending, t.Muted
	default:
		return t.Icons.Other, t.Muted
	}
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons:   VerdictIcons{Success: "✓", Failure: "✗", Skipped: "⚠", Pending: "○", Other: "●"},
	}
}

// OrcaTheme returns a muted theme.
func OrcaTheme() Theme {
	return Theme{
		Name:    "orca",
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),  // pale blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("108")), // sage green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("179")), // muted gold
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")), // muted red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // lighter gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons:   VerdictIcons{Success: "✓", Failure: "✗", Skipped: "!", Pending: "○", Other: "·"},
	}
}

// MonoTheme returns a theme without colors, used for NO_COLOR and non-TTY output.
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Primary: lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons:   VerdictIcons{Success: "+", Failure: "x", Skipped: "!", Pending: "-", Other: "*"},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
