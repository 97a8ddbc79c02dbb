// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, record store) that
// domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/config"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/database"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/lifecycle"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/memstore"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, blob storage, and the profile record store.
type Infrastructure struct {
	Agent     gaconfig.AgentConfig
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Memstore  memstore.Store
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	records, err := newMemstore(cfg, db)
	if err != nil {
		return nil, fmt.Errorf("memstore init failed: %w", err)
	}

	return &Infrastructure{
		Agent:     cfg.Agent,
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Memstore:  records,
	}, nil
}

// newMemstore selects the record store backend. The memory backend
// exists for local development and tests; durable profiles require
// postgres.
func newMemstore(cfg *config.Config, db database.System) (memstore.Store, error) {
	switch cfg.Memstore.Backend {
	case "memory":
		return memstore.NewMemoryStore(), nil
	case "postgres":
		return memstore.NewPostgresStore(db.Connection()), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Memstore.Backend)
	}
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database and storage hooks are registered for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
