package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STATUSFX_"

// Simulation holds all configuration for the effect simulation process.
type Simulation struct {
	Runtime  Runtime        `yaml:"runtime"`
	Database DatabaseConfig `yaml:"database"`
	Scenario Scenario       `yaml:"scenario"`
}

// Runtime controls logging, stepping and registry behaviour.
type Runtime struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Steps per second.
	TickRate int `yaml:"tick_rate" env:"TICK_RATE"`
	// Goroutines advancing target shards each step; 1 = sequential.
	Workers int `yaml:"workers" env:"WORKERS"`

	// Duplicate effect registration replaces instead of failing.
	AllowOverride bool `yaml:"allow_override" env:"ALLOW_OVERRIDE"`

	SnapshotInterval time.Duration `yaml:"snapshot_interval" env:"SNAPSHOT_INTERVAL"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Scenario lists targets to spawn and already-resolved effect applications
// to run at startup.
type Scenario struct {
	Targets      []TargetSpec  `yaml:"targets"`
	Applications []Application `yaml:"applications"`
}

// TargetSpec describes one actor to spawn.
type TargetSpec struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"` // "player" or "npc"
	MaxHP    int32  `yaml:"max_hp"`
	Attack   int32  `yaml:"attack"`
	Defense  int32  `yaml:"defense"`
	Accuracy int32  `yaml:"accuracy"`
}

// Application is one (effect, value, duration, tick) tuple aimed at a target by name.
type Application struct {
	Target       string        `yaml:"target"`
	Effect       int32         `yaml:"effect"`
	Value        float64       `yaml:"value"`
	Duration     time.Duration `yaml:"duration"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		Runtime: Runtime{
			LogLevel:         "info",
			TickRate:         20,
			Workers:          1,
			SnapshotInterval: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "statusfx",
			Password: "statusfx",
			DBName:   "statusfx",
			SSLMode:  "disable",
		},
	}
}

// StepInterval returns the simulated time covered by one step.
func (r Runtime) StepInterval() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(r.TickRate)
}

// Validate checks values that would stall or break the step loop.
func (c Simulation) Validate() error {
	var errs []error
	if c.Runtime.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.Runtime.TickRate))
	}
	if c.Runtime.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Runtime.Workers))
	}
	if c.Database.Enabled && c.Runtime.SnapshotInterval <= 0 {
		errs = append(errs, errors.New("snapshot_interval must be positive when database is enabled"))
	}

	names := make(map[string]struct{}, len(c.Scenario.Targets))
	for i, t := range c.Scenario.Targets {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("target #%d has no name", i))
			continue
		}
		if _, dup := names[t.Name]; dup {
			errs = append(errs, fmt.Errorf("target %q declared twice", t.Name))
		}
		names[t.Name] = struct{}{}
		if t.Kind != "player" && t.Kind != "npc" {
			errs = append(errs, fmt.Errorf("target %q: unknown kind %q", t.Name, t.Kind))
		}
	}
	for i, a := range c.Scenario.Applications {
		if _, ok := names[a.Target]; !ok {
			errs = append(errs, fmt.Errorf("application #%d: unknown target %q", i, a.Target))
		}
	}

	return errors.Join(errs...)
}

// LoadSimulation loads config from a YAML file, then applies STATUSFX_*
// environment overrides. If the file doesn't exist, defaults are used.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg.Runtime, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parsing runtime env: %w", err)
	}
	if err := env.ParseWithOptions(&cfg.Database, env.Options{Prefix: EnvPrefix + "DB_"}); err != nil {
		return cfg, fmt.Errorf("parsing database env: %w", err)
	}

	return cfg, nil
}
