// Package config loads tool configuration from a TOML file with
// environment and flag overrides layered on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultDBHost   = "localhost"
	defaultDBPort   = 3306
	defaultDBUser   = "root"
	defaultDBName   = "contact_database"
	defaultLogLevel = "info"
	defaultLogMaxMB = 10
	defaultLogFiles = 5
)

var ErrInvalidConfig = errors.New("invalid config")

// databaseNamePattern limits the schema identifier so it can be spliced
// into CREATE DATABASE without quoting surprises.
var databaseNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
}

type DatabaseConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
}

type LoggingConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
	MaxFiles  int    `toml:"max_files"`
}

type LoadOptions struct {
	ConfigPath string
	Env        map[string]string
	Flags      FlagOverrides
}

type FlagOverrides struct {
	LogLevel *string
}

func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: "",
			Name:     defaultDBName,
		},
		Logging: LoggingConfig{
			Level:     defaultLogLevel,
			File:      "",
			MaxSizeMB: defaultLogMaxMB,
			MaxFiles:  defaultLogFiles,
		},
	}
}

func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	path, err := resolveConfigPath(opts)
	if err != nil {
		return Config{}, fmt.Errorf("resolve config path: %w", err)
	}
	if err := loadAndApplyFile(path, &cfg); err != nil {
		return Config{}, err
	}

	if err := applyEnvOverrides(&cfg, opts); err != nil {
		return Config{}, err
	}
	applyFlagOverrides(&cfg, opts.Flags)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// rawConfig mirrors Config with pointer fields so that absent TOML keys
// leave defaults untouched.
type rawConfig struct {
	Database *rawDatabase `toml:"database"`
	Logging  *rawLogging  `toml:"logging"`
}

type rawDatabase struct {
	Host     *string `toml:"host"`
	Port     *int    `toml:"port"`
	User     *string `toml:"user"`
	Password *string `toml:"password"`
	Name     *string `toml:"name"`
}

type rawLogging struct {
	Level     *string `toml:"level"`
	File      *string `toml:"file"`
	MaxSizeMB *int    `toml:"max_size_mb"`
	MaxFiles  *int    `toml:"max_files"`
}

func resolveConfigPath(opts LoadOptions) (string, error) {
	if opts.ConfigPath != "" {
		return opts.ConfigPath, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		// No user config dir means defaults only.
		return "", nil
	}
	return filepath.Join(base, "rolodex", "config.toml"), nil
}

func loadAndApplyFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parse TOML file %q: %v", ErrInvalidConfig, path, err)
	}

	applyRawConfig(cfg, raw)
	return nil
}

func applyRawConfig(cfg *Config, raw rawConfig) {
	if raw.Database != nil {
		setString(raw.Database.Host, &cfg.Database.Host)
		setInt(raw.Database.Port, &cfg.Database.Port)
		setString(raw.Database.User, &cfg.Database.User)
		setString(raw.Database.Password, &cfg.Database.Password)
		setString(raw.Database.Name, &cfg.Database.Name)
	}
	if raw.Logging != nil {
		setString(raw.Logging.Level, &cfg.Logging.Level)
		setString(raw.Logging.File, &cfg.Logging.File)
		setInt(raw.Logging.MaxSizeMB, &cfg.Logging.MaxSizeMB)
		setInt(raw.Logging.MaxFiles, &cfg.Logging.MaxFiles)
	}
}

func applyEnvOverrides(cfg *Config, opts LoadOptions) error {
	if value, ok := lookupEnv(opts, "ROLODEX_DB_HOST"); ok {
		cfg.Database.Host = value
	}
	if value, ok := lookupEnv(opts, "ROLODEX_DB_PORT"); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: parse ROLODEX_DB_PORT: %v", ErrInvalidConfig, err)
		}
		cfg.Database.Port = port
	}
	if value, ok := lookupEnv(opts, "ROLODEX_DB_USER"); ok {
		cfg.Database.User = value
	}
	if value, ok := lookupEnv(opts, "ROLODEX_DB_PASSWORD"); ok {
		cfg.Database.Password = value
	}
	if value, ok := lookupEnv(opts, "ROLODEX_DB_NAME"); ok {
		cfg.Database.Name = value
	}
	if value, ok := lookupEnv(opts, "ROLODEX_LOG_LEVEL"); ok {
		cfg.Logging.Level = value
	}
	if value, ok := lookupEnv(opts, "ROLODEX_LOG_FILE"); ok {
		cfg.Logging.File = value
	}
	return nil
}

func applyFlagOverrides(cfg *Config, flags FlagOverrides) {
	if flags.LogLevel != nil {
		cfg.Logging.Level = *flags.LogLevel
	}
}

func validate(cfg Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("%w: database.host must not be empty", ErrInvalidConfig)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port %d out of range", ErrInvalidConfig, cfg.Database.Port)
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("%w: database.user must not be empty", ErrInvalidConfig)
	}
	if !databaseNamePattern.MatchString(cfg.Database.Name) {
		return fmt.Errorf("%w: database.name %q must be 1-64 word characters", ErrInvalidConfig, cfg.Database.Name)
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q (want debug, info, warn, or error)", ErrInvalidConfig, cfg.Logging.Level)
	}
	if cfg.Logging.MaxSizeMB <= 0 {
		return fmt.Errorf("%w: logging.max_size_mb must be positive", ErrInvalidConfig)
	}
	if cfg.Logging.MaxFiles <= 0 {
		return fmt.Errorf("%w: logging.max_files must be positive", ErrInvalidConfig)
	}
	return nil
}

func lookupEnv(opts LoadOptions, key string) (string, bool) {
	if opts.Env != nil {
		value, ok := opts.Env[key]
		return value, ok
	}
	return os.LookupEnv(key)
}

func setString(src *string, dst *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(src *int, dst *int) {
	if src != nil {
		*dst = *src
	}
}
