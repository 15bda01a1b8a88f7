package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/a2zdsa/atlas/internal/application"
	"github.com/a2zdsa/atlas/internal/config"
	"github.com/a2zdsa/atlas/internal/logger"
)

var (
	configPath    string
	primaryRoot   string
	secondaryRoot string
)

var rootCmd = &cobra.Command{
	Use:           "atlas",
	Short:         "atlas - cross-reference the A2Z DSA sheet against your solutions",
	Long:          "atlas matches a primary and a secondary solution collection against the A2Z sheet, reports coverage gaps and schedules study sessions.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default: $ATLAS_CONFIG or the XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&primaryRoot, "primary", "", "Primary collection root, overrides settings")
	rootCmd.PersistentFlags().StringVar(&secondaryRoot, "secondary", "", "Secondary collection root, overrides settings")

	rootCmd.AddCommand(newRebuildCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newMappingsCmd())
	rootCmd.AddCommand(newGapsCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newDoneCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMCPCmd())
}

// exitError ends the process with code after the command has already
// reported why.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func exitCode(err error) int {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return 1
}

// loadSettings reads .env (if present), the settings file and the root
// flag overrides.
func loadSettings() (config.Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Settings{}, fmt.Errorf("failed to load .env: %w", err)
	}

	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return config.Settings{}, err
	}

	if primaryRoot != "" {
		settings.PrimaryRoot = primaryRoot
	}
	if secondaryRoot != "" {
		settings.SecondaryRoot = secondaryRoot
	}
	return settings, nil
}

// openApp opens the application for one command. Callers defer closeApp.
func openApp() (*application.App, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(settings.LogMode, settings.LogLevel)
	if err != nil {
		return nil, err
	}

	app, err := application.Open(settings, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return app, nil
}

func closeApp(app *application.App) {
	app.Log.Sync()
	_ = app.Close()
}
