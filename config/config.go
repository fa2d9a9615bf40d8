package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"club-leaderboard-api/packages/core/utils"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultConfigPath = "config.json"
)

// Config is read once at startup and handed to the components that need it.
type Config struct {
	AdminUsername  string
	AdminPassword  string
	Port           int
	StaticDir      string
	DatabaseDriver string
	DatabasePath   string
	DatabaseURL    string
	SeedSampleData bool
	LogLevel       string
	RankPoints     map[int]int64
	AuditSchedule  string
}

// AdminAuthEnabled reports whether admin routes require credentials. An
// empty password opens them up.
func (c *Config) AdminAuthEnabled() bool {
	return c.AdminPassword != ""
}

type envConfig struct {
	AdminUsername  string           `env:"ADMIN_USERNAME" envDefault:"admin"`
	Port           int              `env:"PORT" envDefault:"8000"`
	StaticDir      string           `env:"STATIC_DIR" envDefault:"frontend"`
	DatabaseDriver string           `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabasePath   string           `env:"DATABASE_PATH" envDefault:"club.db"`
	DatabaseURL    string           `env:"DATABASE_URL"`
	SeedSampleData bool             `env:"SEED_SAMPLE_DATA" envDefault:"true"`
	LogLevel       string           `env:"LOG_LEVEL" envDefault:"info"`
	RankPoints     map[string]int64 `env:"RANK_POINTS"`
	AuditSchedule  string           `env:"AUDIT_SCHEDULE" envDefault:"0 0 * * * *"`
}

type fileConfig struct {
	AdminUsername  string           `json:"admin_username" yaml:"admin_username"`
	AdminPassword  *string          `json:"admin_password" yaml:"admin_password"`
	Port           int              `json:"port" yaml:"port"`
	StaticDir      string           `json:"static_dir" yaml:"static_dir"`
	DatabaseDriver string           `json:"database_driver" yaml:"database_driver"`
	DatabasePath   string           `json:"database_path" yaml:"database_path"`
	DatabaseURL    string           `json:"database_url" yaml:"database_url"`
	SeedSampleData *bool            `json:"seed_sample_data" yaml:"seed_sample_data"`
	LogLevel       string           `json:"log_level" yaml:"log_level"`
	RankPoints     map[string]int64 `json:"rank_points" yaml:"rank_points"`
	AuditSchedule  *string          `json:"audit_schedule" yaml:"audit_schedule"`
}

// Load builds the configuration from the file at path (missing is fine),
// falling back to environment variables and then defaults.
func Load(path string) (*Config, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg := &Config{
		AdminUsername:  ec.AdminUsername,
		AdminPassword:  "clubsecret",
		Port:           ec.Port,
		StaticDir:      ec.StaticDir,
		DatabaseDriver: ec.DatabaseDriver,
		DatabasePath:   ec.DatabasePath,
		DatabaseURL:    ec.DatabaseURL,
		SeedSampleData: ec.SeedSampleData,
		LogLevel:       ec.LogLevel,
		AuditSchedule:  ec.AuditSchedule,
	}
	// An empty ADMIN_PASSWORD is meaningful, so look it up directly.
	if v, ok := os.LookupEnv("ADMIN_PASSWORD"); ok {
		cfg.AdminPassword = v
	}
	rankPoints := ec.RankPoints

	fc, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if fc != nil {
		if fc.AdminUsername != "" {
			cfg.AdminUsername = fc.AdminUsername
		}
		if fc.AdminPassword != nil {
			cfg.AdminPassword = *fc.AdminPassword
		}
		if fc.Port != 0 {
			cfg.Port = fc.Port
		}
		if fc.StaticDir != "" {
			cfg.StaticDir = fc.StaticDir
		}
		if fc.DatabaseDriver != "" {
			cfg.DatabaseDriver = fc.DatabaseDriver
		}
		if fc.DatabasePath != "" {
			cfg.DatabasePath = fc.DatabasePath
		}
		if fc.DatabaseURL != "" {
			cfg.DatabaseURL = fc.DatabaseURL
		}
		if fc.SeedSampleData != nil {
			cfg.SeedSampleData = *fc.SeedSampleData
		}
		if fc.LogLevel != "" {
			cfg.LogLevel = fc.LogLevel
		}
		if len(fc.RankPoints) > 0 {
			rankPoints = fc.RankPoints
		}
		if fc.AuditSchedule != nil {
			cfg.AuditSchedule = *fc.AuditSchedule
		}
	}

	cfg.RankPoints, err = utils.ParseRankTable(rankPoints)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (*fileConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
		}
	}
	return &fc, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return errors.New("database_path is required for sqlite")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}
