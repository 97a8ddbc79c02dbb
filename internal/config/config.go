package config

import (
	"fmt"
	"os"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/pelletier/go-toml/v2"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/database"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/memstore"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvOwnyouEnv             = "OWNYOU_ENV"
	EnvOwnyouShutdownTimeout = "OWNYOU_SHUTDOWN_TIMEOUT"
	EnvOwnyouVersion         = "OWNYOU_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "OWNYOU_DB_HOST",
	Port:            "OWNYOU_DB_PORT",
	Name:            "OWNYOU_DB_NAME",
	User:            "OWNYOU_DB_USER",
	Password:        "OWNYOU_DB_PASSWORD",
	SSLMode:         "OWNYOU_DB_SSL_MODE",
	MaxOpenConns:    "OWNYOU_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "OWNYOU_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "OWNYOU_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "OWNYOU_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "OWNYOU_STORAGE_CONTAINER_NAME",
	ConnectionString: "OWNYOU_STORAGE_CONNECTION_STRING",
}

var memstoreEnv = &memstore.ConfigEnv{
	Backend: "OWNYOU_MEMSTORE_BACKEND",
}

// Config is the root configuration for the profiling service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	Memstore        memstore.Config      `toml:"memstore"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Profiler        ProfilerConfig       `toml:"profiler"`
	API             APIConfig            `toml:"api"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the OWNYOU_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvOwnyouEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Memstore.Merge(&overlay.Memstore)
	c.Agent.Merge(&overlay.Agent)
	c.Profiler.Merge(&overlay.Profiler)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Memstore.Finalize(memstoreEnv); err != nil {
		return fmt.Errorf("memstore: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Profiler.Finalize(); err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}
func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvOwnyouShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvOwnyouVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvOwnyouEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
