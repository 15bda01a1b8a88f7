package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "atlas"

// Artifact file names inside the data directory.
const (
	IndexFileName   = "index.jsonl"
	MappingFileName = "mapping.jsonl"
	PlanFileName    = "study_plan_14day.json"
	DBFileName      = "atlas.db"
)

// GetDataDir resolves the base directory for generated artifacts. It checks
// ATLAS_DIR first, then XDG paths, and finally falls back to the user's home
// directory.
func GetDataDir() string {
	if explicit := os.Getenv("ATLAS_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), appName)
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, appName)
}

// GetDBPath returns the absolute path to the SQLite database file.
func GetDBPath() string {
	return filepath.Join(GetDataDir(), DBFileName)
}

// GetIndexPath returns the path of the topic index JSONL file.
func GetIndexPath() string {
	return filepath.Join(GetDataDir(), IndexFileName)
}

// GetMappingPath returns the path of the problem mapping JSONL file.
func GetMappingPath() string {
	return filepath.Join(GetDataDir(), MappingFileName)
}

// GetPlanPath returns the path of the study plan document.
func GetPlanPath() string {
	return filepath.Join(GetDataDir(), PlanFileName)
}

// GetConfigPath resolves the optional settings file: ATLAS_CONFIG, then
// $XDG_CONFIG_HOME/atlas/config.yaml.
func GetConfigPath() string {
	if explicit := os.Getenv("ATLAS_CONFIG"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	configHome := xdg.ConfigHome
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName, "config.yaml")
}
