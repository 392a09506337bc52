package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// Debug mounts the /debug/ pages, including the SQL console.
	Debug bool

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration

	Driver          string
	DSN             string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogSQL          bool

	// CutoffDate is the lower bound (YYYY-MM-DD) of the "last year of data"
	// used by the precipitation and tobs routes.
	CutoffDate string
	// TobsStation is the station reported by the tobs routes.
	TobsStation string
}

// fileConfig mirrors the env variables; values act as defaults that the
// environment overrides.
type fileConfig struct {
	AppEnv           string `yaml:"app_env"`
	LogLevel         string `yaml:"log_level"`
	HTTPAddr         string `yaml:"http_addr"`
	Debug            *bool  `yaml:"debug"`
	HTTPReadTimeout  string `yaml:"http_read_timeout"`
	HTTPWriteTimeout string `yaml:"http_write_timeout"`
	Driver           string `yaml:"db_driver"`
	DSN              string `yaml:"db_dsn"`
	Path             string `yaml:"sqlite_path"`
	MaxOpenConns     *int   `yaml:"db_max_open_conns"`
	MaxIdleConns     *int   `yaml:"db_max_idle_conns"`
	ConnMaxLifetime  string `yaml:"db_conn_max_lifetime"`
	LogSQL           *bool  `yaml:"db_log_sql"`
	CutoffDate       string `yaml:"cutoff_date"`
	TobsStation      string `yaml:"tobs_station"`
}

func LoadFromEnv() (Config, error) {
	file, err := loadFile(strings.TrimSpace(os.Getenv("CONFIG_FILE")))
	if err != nil {
		return Config{}, err
	}
	get := func(env, fromFile, def string) string {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
		if v := strings.TrimSpace(fromFile); v != "" {
			return v
		}
		return def
	}

	appEnv := get("APP_ENV", file.AppEnv, "dev")
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(get("LOG_LEVEL", file.LogLevel, "info"))
	if err != nil {
		return Config{}, err
	}

	debug, err := parseBool("DEBUG", get("DEBUG", boolString(file.Debug), "false"))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := parseDuration("HTTP_READ_TIMEOUT", get("HTTP_READ_TIMEOUT", file.HTTPReadTimeout, "10s"))
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := parseDuration("HTTP_WRITE_TIMEOUT", get("HTTP_WRITE_TIMEOUT", file.HTTPWriteTimeout, "30s"))
	if err != nil {
		return Config{}, err
	}

	maxOpenConns, err := parseInt("DB_MAX_OPEN_CONNS", get("DB_MAX_OPEN_CONNS", intString(file.MaxOpenConns), "4"))
	if err != nil {
		return Config{}, err
	}
	maxIdleConns, err := parseInt("DB_MAX_IDLE_CONNS", get("DB_MAX_IDLE_CONNS", intString(file.MaxIdleConns), "4"))
	if err != nil {
		return Config{}, err
	}
	connMaxLifetime, err := parseDuration("DB_CONN_MAX_LIFETIME", get("DB_CONN_MAX_LIFETIME", file.ConnMaxLifetime, "0s"))
	if err != nil {
		return Config{}, err
	}
	logSQL, err := parseBool("DB_LOG_SQL", get("DB_LOG_SQL", boolString(file.LogSQL), "false"))
	if err != nil {
		return Config{}, err
	}

	cutoff := get("CUTOFF_DATE", file.CutoffDate, "2016-08-23")
	if _, err := time.Parse(dateLayout, cutoff); err != nil {
		return Config{}, fmt.Errorf("invalid CUTOFF_DATE %q (expected YYYY-MM-DD): %w", cutoff, err)
	}

	return Config{
		AppEnv:           appEnv,
		LogLevel:         level,
		HTTPAddr:         get("HTTP_ADDR", file.HTTPAddr, ":8080"),
		Debug:            debug,
		HTTPReadTimeout:  readTimeout,
		HTTPWriteTimeout: writeTimeout,
		Driver:           get("DB_DRIVER", file.Driver, "sqlite3"),
		DSN:              get("DB_DSN", file.DSN, ""),
		Path:             get("SQLITE_PATH", file.Path, "Resources/hawaii.sqlite"),
		MaxOpenConns:     maxOpenConns,
		MaxIdleConns:     maxIdleConns,
		ConnMaxLifetime:  connMaxLifetime,
		LogSQL:           logSQL,
		CutoffDate:       cutoff,
		TobsStation:      get("TOBS_STATION", file.TobsStation, "USC00519281"),
	}, nil
}

func loadFile(path string) (fileConfig, error) {
	if path == "" {
		return fileConfig{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read CONFIG_FILE %q: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse CONFIG_FILE %q: %w", path, err)
	}
	return fc, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func parseBool(name, s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return b, nil
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return n, nil
}

func parseDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return d, nil
}

func boolString(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func intString(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
