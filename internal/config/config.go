package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/tally/pkg/params"
)

// AppConfig represents the application's overall configuration from .tally.yaml.
type AppConfig struct {
	Format           string `yaml:"format"`
	Theme            string `yaml:"theme"`
	ReportFormat     string `yaml:"report_format"`
	Qualifier        string `yaml:"qualifier,omitempty"`
	NoColor          bool   `yaml:"no_color"`
	Debug            bool   `yaml:"debug"`
	RestartFrequency *int   `yaml:"restart_frequency,omitempty"`
}

// Constants for default values.
const (
	DefaultFormat       = "auto"
	DefaultTheme        = "default"
	DefaultReportFormat = "html"

	configFileName = ".tally.yaml"
)

// Defaults returns the hardcoded configuration.
func Defaults() *AppConfig {
	freq := params.DefaultRestartFrequency
	return &AppConfig{
		Format:           DefaultFormat,
		Theme:            DefaultTheme,
		ReportFormat:     DefaultReportFormat,
		RestartFrequency: &freq,
	}
}

// LoadConfig loads .tally.yaml from the first location getConfigPath finds,
// merged over the defaults. A missing file is not an error.
func LoadConfig() (*AppConfig, error) {
	configPath := getConfigPath()
	if configPath == "" {
		log.Debug("no config file found, using defaults")
		return Defaults(), nil
	}
	return loadFile(configPath)
}

// loadFile merges the YAML file at path over the defaults.
func loadFile(path string) (*AppConfig, error) {
	appCfg := Defaults()

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return appCfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fileCfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fileCfg.Format != "" {
		appCfg.Format = fileCfg.Format
	}
	if fileCfg.Theme != "" {
		appCfg.Theme = fileCfg.Theme
	}
	if fileCfg.ReportFormat != "" {
		appCfg.ReportFormat = fileCfg.ReportFormat
	}
	if fileCfg.Qualifier != "" {
		appCfg.Qualifier = fileCfg.Qualifier
	}
	appCfg.NoColor = fileCfg.NoColor
	appCfg.Debug = fileCfg.Debug
	if fileCfg.RestartFrequency != nil {
		appCfg.RestartFrequency = fileCfg.RestartFrequency
	}

	log.Debug("loaded config", "path", path, "format", appCfg.Format, "theme", appCfg.Theme)
	return appCfg, nil
}

// getConfigPath tries to find the .tally.yaml configuration file.
// It checks local directory first, then XDG UserConfigDir (if valid).
func getConfigPath() string {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}

	configHome, err := os.UserConfigDir()
	// an empty path or "/" is not suitable for XDG path construction
	if err != nil || configHome == "" || configHome == "/" {
		log.Debug("user config dir unavailable", "path", configHome, "err", err)
		return ""
	}

	xdgPath := filepath.Join(configHome, "tally", configFileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
