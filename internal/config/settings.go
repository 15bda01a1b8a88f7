// Package config resolves where atlas keeps its artifacts and how a rebuild
// and study plan are parameterized.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Settings are read from the YAML settings file and then overridden by
// environment variables.
type Settings struct {
	PrimaryRoot    string `yaml:"primary_root"`
	SecondaryRoot  string `yaml:"secondary_root"`
	PrimaryExt     string `yaml:"primary_ext"`
	SecondaryExt   string `yaml:"secondary_ext"`
	PrimaryLabel   string `yaml:"primary_label"`
	SecondaryLabel string `yaml:"secondary_label"`
	OrphanPrefix   string `yaml:"orphan_prefix"`
	CatalogPath    string `yaml:"catalog"`
	Subsections    *bool  `yaml:"subsections"`

	PlanDays           int `yaml:"plan_days"`
	DailyBudgetMinutes int `yaml:"daily_budget_minutes"`

	HTTPAddr string `yaml:"http_addr"`
	LogMode  string `yaml:"log_mode"`
	LogLevel string `yaml:"log_level"`
}

// DefaultSettings matches the Python/C++ layout of the A2Z solution repos.
func DefaultSettings() Settings {
	return Settings{
		PrimaryRoot:        "striver-a2z-dsa",
		SecondaryRoot:      "Strivers-A2Z-DSA-Sheet",
		PrimaryExt:         ".py",
		SecondaryExt:       ".cpp",
		PrimaryLabel:       "Python",
		SecondaryLabel:     "C++",
		OrphanPrefix:       "cpp",
		PlanDays:           14,
		DailyBudgetMinutes: 120,
		HTTPAddr:           "127.0.0.1:8000",
		LogMode:            "production",
		LogLevel:           "info",
	}
}

// IncludeSubsections reports whether subsection placeholder rows are built.
func (s Settings) IncludeSubsections() bool {
	return s.Subsections == nil || *s.Subsections
}

// LoadSettings reads path (if it exists) over the defaults and applies
// environment overrides. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &settings); err != nil {
				return Settings{}, fmt.Errorf("failed to parse settings %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Settings{}, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	if err := settings.applyEnv(); err != nil {
		return Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *Settings) applyEnv() error {
	stringVars := map[string]*string{
		"ATLAS_PRIMARY_ROOT":   &s.PrimaryRoot,
		"ATLAS_SECONDARY_ROOT": &s.SecondaryRoot,
		"ATLAS_CATALOG":        &s.CatalogPath,
		"ATLAS_HTTP_ADDR":      &s.HTTPAddr,
		"ATLAS_LOG_MODE":       &s.LogMode,
		"ATLAS_LOG_LEVEL":      &s.LogLevel,
	}
	for name, target := range stringVars {
		if v := os.Getenv(name); v != "" {
			*target = v
		}
	}

	intVars := map[string]*int{
		"ATLAS_PLAN_DAYS":    &s.PlanDays,
		"ATLAS_DAILY_BUDGET": &s.DailyBudgetMinutes,
	}
	for name, target := range intVars {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*target = n
	}
	return nil
}

// Validate rejects settings the scheduler cannot work with.
func (s Settings) Validate() error {
	if s.PlanDays <= 0 {
		return fmt.Errorf("plan_days must be positive, got %d", s.PlanDays)
	}
	if s.DailyBudgetMinutes <= 0 {
		return fmt.Errorf("daily_budget_minutes must be positive, got %d", s.DailyBudgetMinutes)
	}
	return nil
}
