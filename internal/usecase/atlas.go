// Package usecase wires the scanner, matcher, index builder, coverage
// evaluator and scheduler to the artifact store and the progress database.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/catalog"
	"github.com/a2zdsa/atlas/internal/config"
	"github.com/a2zdsa/atlas/internal/database"
	"github.com/a2zdsa/atlas/internal/logger"
	"github.com/a2zdsa/atlas/internal/services"
	"github.com/a2zdsa/atlas/internal/store"
)

var (
	// ErrNotFound is returned when a topic, mapping, task or plan day does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMissingInput is returned when an operation needs an artifact that
	// has not been generated yet.
	ErrMissingInput = errors.New("missing input: run a rebuild first")
	// ErrInvalidInput is returned for malformed filters and arguments.
	ErrInvalidInput = errors.New("invalid input")
)

// Deps are the collaborators of Atlas. Catalog, Logger and Now default to the
// embedded catalog, a no-op logger and time.Now. Rand, when set, drives the
// review jitter of plans generated without an explicit seed.
type Deps struct {
	Store    store.Store
	DB       *database.Context
	Catalog  *catalog.Catalog
	Settings config.Settings
	Logger   *logger.Logger
	Now      func() time.Time
	Rand     *rand.Rand
}

// Atlas implements every operation exposed by the CLI, HTTP API and MCP server.
type Atlas struct {
	store    store.Store
	catalog  *catalog.Catalog
	settings config.Settings
	log      *logger.Logger
	now      func() time.Time
	rand     *rand.Rand

	history  *services.HistoryService
	progress *services.ProgressService

	// mu serializes rebuilds and plan generation.
	mu sync.Mutex
}

// New validates deps and returns a ready Atlas.
func New(deps Deps) (*Atlas, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("usecase: store is required")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("usecase: database is required")
	}

	cat := deps.Catalog
	if cat == nil {
		var err error
		cat, err = catalog.Default()
		if err != nil {
			return nil, err
		}
	}

	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Atlas{
		store:    deps.Store,
		catalog:  cat,
		settings: deps.Settings,
		log:      log,
		now:      now,
		rand:     deps.Rand,
		history:  services.NewHistoryService(deps.DB),
		progress: services.NewProgressService(deps.DB),
	}, nil
}

// Settings returns the settings the use cases were built with.
func (a *Atlas) Settings() config.Settings {
	return a.settings
}

func (a *Atlas) readIndex(ctx context.Context, required bool) ([]atlas.TopicIndexEntry, error) {
	entries, err := a.store.ReadIndex(ctx)
	return orEmpty(entries, err, required, "topic index")
}

func (a *Atlas) readMappings(ctx context.Context, required bool) ([]atlas.MatchRecord, error) {
	records, err := a.store.ReadMappings(ctx)
	return orEmpty(records, err, required, "mapping file")
}

// orEmpty turns a missing artifact into an empty slice, or into
// ErrMissingInput when the caller cannot proceed without it.
func orEmpty[T any](values []T, err error, required bool, name string) ([]T, error) {
	if errors.Is(err, store.ErrMissing) {
		if required {
			return nil, fmt.Errorf("%s: %w", name, ErrMissingInput)
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	return values, nil
}
