package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

const configDirName = ".loadplanner"

// DefaultConfigDir returns ~/.loadplanner, or ./.loadplanner when the home
// directory cannot be determined.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, configDirName)
}

// DefaultConfigPath returns the config file inside DefaultConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig writes config as indented JSON, creating parent
// directories as needed.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads the config at path on top of DefaultAppConfig.
// A missing file yields the defaults. Unknown container ids in
// default_containers are an error; an empty selection, output dir or
// log level falls back to the default value.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return model.AppConfig{}, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	defaults := model.DefaultAppConfig()
	if len(config.DefaultContainers) == 0 {
		config.DefaultContainers = defaults.DefaultContainers
	}
	if _, err := model.LookupContainers(config.DefaultContainers); err != nil {
		return model.AppConfig{}, fmt.Errorf("%s: default_containers: %w", path, err)
	}
	if config.OutputDir == "" {
		config.OutputDir = defaults.OutputDir
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// EnsureOutputDir creates config.OutputDir if it does not exist yet.
func EnsureOutputDir(config model.AppConfig) error {
	if config.OutputDir == "" || config.OutputDir == "." {
		return nil
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", config.OutputDir, err)
	}
	return nil
}
