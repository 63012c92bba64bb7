// Package config handles configuration loading and merging for tally.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--format, --theme, --report-format, --qualifier, --no-color, --debug)
//  2. Environment variables (TALLY_FORMAT, TALLY_THEME, TALLY_REPORT_FORMAT,
//     TALLY_QUALIFIER, TALLY_NO_COLOR, NO_COLOR, TALLY_DEBUG)
//  3. YAML config file (.tally.yaml in local directory or ~/.config/tally/.tally.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Key Configuration Options
//
//   - Format: output mode (auto, terminal, llm, json)
//   - Theme: terminal theme (default, orca, mono)
//   - ReportFormat: extension of derived report names (html, xml, json, none)
//   - Qualifier: suffix appended to every report name, e.g. a browser or build id
//   - RestartFrequency: restart the driver every N parameter sets (0 disables)
package config
