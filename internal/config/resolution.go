package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dkoosis/tally/pkg/naming"
	"github.com/dkoosis/tally/pkg/params"
)

// CliFlags holds the values of command-line flags. Empty strings and unset
// booleans leave the value to lower-priority sources.
type CliFlags struct {
	Format       string
	ThemeName    string
	ReportFormat string
	Qualifier    string
	NoColor      bool
	Debug        bool

	// Flags to track if they were explicitly set by the user
	QualifierSet bool
	NoColorSet   bool
	DebugSet     bool
}

// ResolvedConfig holds the final resolved configuration after applying all priority rules.
type ResolvedConfig struct {
	Format           string
	Theme            string
	ReportFormat     naming.Format
	Qualifier        string
	NoColor          bool
	Debug            bool
	RestartFrequency int

	// Resolution metadata (for debugging)
	FormatSource  string // "cli", "env", "file", "default"
	ThemeSource   string
	NoColorSource string
}

var (
	validFormats = map[string]bool{"auto": true, "terminal": true, "llm": true, "json": true}
	validThemes  = map[string]bool{"default": true, "orca": true, "mono": true}
)

// ResolveConfig resolves configuration from all sources with explicit priority order.
//
// Resolution order:
//  1. Load base config from .tally.yaml (or defaults)
//  2. Apply environment variables
//  3. Apply CLI flags (highest priority)
func ResolveConfig(cliFlags CliFlags) (*ResolvedConfig, error) {
	appCfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return Resolve(appCfg, cliFlags)
}

// Resolve applies environment variables and CLI flags over appCfg. A nil
// appCfg means no file was read.
func Resolve(appCfg *AppConfig, cliFlags CliFlags) (*ResolvedConfig, error) {
	if appCfg == nil {
		appCfg = &AppConfig{}
	}
	resolved := &ResolvedConfig{
		Qualifier:        appCfg.Qualifier,
		NoColor:          appCfg.NoColor,
		Debug:            appCfg.Debug,
		RestartFrequency: params.DefaultRestartFrequency,
	}
	if appCfg.RestartFrequency != nil {
		resolved.RestartFrequency = *appCfg.RestartFrequency
	}

	resolved.Format, resolved.FormatSource = resolveString(cliFlags.Format, "TALLY_FORMAT", appCfg.Format, DefaultFormat)
	resolved.Theme, resolved.ThemeSource = resolveString(cliFlags.ThemeName, "TALLY_THEME", appCfg.Theme, DefaultTheme)
	reportFormat, _ := resolveString(cliFlags.ReportFormat, "TALLY_REPORT_FORMAT", appCfg.ReportFormat, DefaultReportFormat)

	// An empty qualifier is meaningful, so presence decides.
	if cliFlags.QualifierSet {
		resolved.Qualifier = cliFlags.Qualifier
	} else if v, ok := os.LookupEnv("TALLY_QUALIFIER"); ok {
		resolved.Qualifier = v
	}

	resolved.NoColorSource = "default"
	if appCfg.NoColor {
		resolved.NoColorSource = "file"
	}
	if cliFlags.NoColorSet {
		resolved.NoColor = cliFlags.NoColor
		resolved.NoColorSource = "cli"
	} else if envNoColor := getEnvBool("TALLY_NO_COLOR", "NO_COLOR"); envNoColor != nil {
		resolved.NoColor = *envNoColor
		resolved.NoColorSource = "env"
	}

	if cliFlags.DebugSet {
		resolved.Debug = cliFlags.Debug
	} else if os.Getenv("TALLY_DEBUG") != "" {
		resolved.Debug = true
	}

	if !validFormats[resolved.Format] {
		return nil, fmt.Errorf("invalid format %q (must be: auto, terminal, llm, json)", resolved.Format)
	}
	if !validThemes[resolved.Theme] {
		return nil, fmt.Errorf("invalid theme %q (must be: default, orca, mono)", resolved.Theme)
	}
	rf, err := naming.ParseFormat(reportFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid report_format: %w", err)
	}
	resolved.ReportFormat = rf

	return resolved, nil
}

// resolveString picks the first non-empty value of flag, env var, file value
// and default, reporting which source won. A file value equal to the default
// is reported as the default, since LoadConfig fills unset keys with defaults.
func resolveString(flag, envKey, file, def string) (string, string) {
	if flag != "" {
		return flag, "cli"
	}
	if v := os.Getenv(envKey); v != "" {
		return v, "env"
	}
	if file != "" && file != def {
		return file, "file"
	}
	return def, "default"
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}
