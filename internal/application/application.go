// Package application assembles the use cases from configuration: it opens
// the database, loads the catalog and points the store at the data directory.
package application

import (
	"fmt"

	"github.com/a2zdsa/atlas/internal/catalog"
	"github.com/a2zdsa/atlas/internal/config"
	"github.com/a2zdsa/atlas/internal/database"
	"github.com/a2zdsa/atlas/internal/logger"
	"github.com/a2zdsa/atlas/internal/store"
	"github.com/a2zdsa/atlas/internal/usecase"
)

// App owns the resources behind a usecase.Atlas.
type App struct {
	Atlas    *usecase.Atlas
	Settings config.Settings
	Log      *logger.Logger

	db *database.Context
}

// Open builds an App from settings. Callers must Close it.
func Open(settings config.Settings, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}

	cat, err := catalog.Load(settings.CatalogPath)
	if err != nil {
		return nil, err
	}

	dbCtx, err := database.CreateDatabase("")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a, err := usecase.New(usecase.Deps{
		Store:    store.NewDefaultFileStore(),
		DB:       dbCtx,
		Catalog:  cat,
		Settings: settings,
		Logger:   log,
	})
	if err != nil {
		_ = database.CloseDatabase(dbCtx)
		return nil, err
	}

	log.Debug("application opened", "data_dir", config.GetDataDir(), "sections", len(cat.Sections))
	return &App{Atlas: a, Settings: settings, Log: log, db: dbCtx}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return database.CloseDatabase(a.db)
}
