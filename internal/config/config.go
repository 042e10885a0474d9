// Package config собирает конфигурацию сервера из значений по умолчанию,
// YAML-файла, .env файла и переменных окружения (в порядке возрастания приоритета).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/socialhub/internal/server/storage/sqlstore"
)

const (
	// DefaultAccessSecret и DefaultRefreshSecret годятся только для разработки
	DefaultAccessSecret  = "change-me-access-secret"
	DefaultRefreshSecret = "change-me-refresh-secret"

	// DefaultSQLiteDSN хранит время в формате, пригодном для сравнения в SQL
	DefaultSQLiteDSN = "file:socialhub.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
)

// Duration is a time.Duration that also accepts a day suffix ("7d") in YAML
type Duration time.Duration

// UnmarshalYAML parses the scalar with ParseDuration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDuration(value.Value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	CORSOrigins     []string `yaml:"cors_origins"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	// TrustProxy включает разбор X-Forwarded-For / X-Real-IP; по умолчанию выключен
	TrustProxy bool `yaml:"trust_proxy"`
}

// DatabaseConfig настройки хранилища
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite | postgres
	DSN    string `yaml:"dsn"`
}

// AuthConfig настройки выдачи токенов и сессий
type AuthConfig struct {
	AccessSecret  string   `yaml:"access_secret"`
	RefreshSecret string   `yaml:"refresh_secret"`
	SigningMethod string   `yaml:"signing_method"`
	Issuer        string   `yaml:"issuer"`
	AccessTTL     Duration `yaml:"access_token_ttl"`
	RefreshTTL    Duration `yaml:"refresh_token_ttl"`
	MaxSessions   int      `yaml:"max_sessions"` // 0 = без ограничений
	BcryptCost    int      `yaml:"bcrypt_cost"`
}

// LogConfig настройки логирования
type LogConfig struct {
	Level        string   `yaml:"level"`
	File         string   `yaml:"file"`
	MaxAge       Duration `yaml:"max_age"`
	RotationTime Duration `yaml:"rotation_time"`
	Dev          bool     `yaml:"dev"`
}

// SweeperConfig настройки очистки истекших refresh токенов
type SweeperConfig struct {
	Schedule string `yaml:"schedule"`
	Enabled  bool   `yaml:"enabled"`
}

// RateLimitConfig ограничение запросов к /auth/*
type RateLimitConfig struct {
	Requests int      `yaml:"requests"`
	Window   Duration `yaml:"window"`
}

// IDsConfig настройки генератора идентификаторов
type IDsConfig struct {
	Node int64 `yaml:"snowflake_node"`
}

// Config полная конфигурация сервера
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Sweeper   SweeperConfig   `yaml:"sweeper"`
	Auth      AuthConfig      `yaml:"auth"`
	Server    ServerConfig    `yaml:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	IDs       IDsConfig       `yaml:"ids"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			CORSOrigins:     []string{"*"},
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(15 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Database: DatabaseConfig{
			Driver: sqlstore.DriverSQLite,
			DSN:    DefaultSQLiteDSN,
		},
		Auth: AuthConfig{
			AccessSecret:  DefaultAccessSecret,
			RefreshSecret: DefaultRefreshSecret,
			SigningMethod: "HS256",
			Issuer:        "socialhub",
			AccessTTL:     Duration(15 * time.Minute),
			RefreshTTL:    Duration(7 * 24 * time.Hour),
			BcryptCost:    10,
		},
		Log: LogConfig{
			Level:        "info",
			MaxAge:       Duration(7 * 24 * time.Hour),
			RotationTime: Duration(24 * time.Hour),
		},
		Sweeper: SweeperConfig{
			Enabled:  true,
			Schedule: "@every 1h",
		},
		RateLimit: RateLimitConfig{
			Requests: 20,
			Window:   Duration(time.Minute),
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (skipped
// when path is empty), then .env, then environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// .env не обязателен; уже выставленные переменные окружения он не перезаписывает
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}

	return nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("ACCESS_SECRET", &c.Auth.AccessSecret)
	str("REFRESH_SECRET", &c.Auth.RefreshSecret)
	str("TOKEN_SIGNING_METHOD", &c.Auth.SigningMethod)
	str("SERVER_ADDR", &c.Server.Addr)
	str("DATABASE_DRIVER", &c.Database.Driver)
	str("DATABASE_DSN", &c.Database.DSN)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FILE", &c.Log.File)
	str("SWEEP_SCHEDULE", &c.Sweeper.Schedule)

	durations := []struct {
		dst *Duration
		key string
	}{
		{&c.Auth.AccessTTL, "ACCESS_TOKEN_TTL"},
		{&c.Auth.RefreshTTL, "REFRESH_TOKEN_TTL"},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = Duration(parsed)
	}

	bools := []struct {
		dst *bool
		key string
	}{
		{&c.Log.Dev, "LOG_DEV"},
		{&c.Server.TrustProxy, "TRUST_PROXY"},
	}
	for _, b := range bools {
		v, ok := lookup(b.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", b.key, err)
		}
		*b.dst = parsed
	}

	if v, ok := lookup("AUTH_MAX_SESSIONS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid AUTH_MAX_SESSIONS: %w", err)
		}
		c.Auth.MaxSessions = n
	}

	if v, ok := lookup("SNOWFLAKE_NODE"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SNOWFLAKE_NODE: %w", err)
		}
		c.IDs.Node = n
	}

	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}

	switch c.Database.Driver {
	case sqlstore.DriverSQLite, sqlstore.DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported database.driver %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}

	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		errs = append(errs, errors.New("access and refresh secrets are required"))
	} else if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		errs = append(errs, errors.New("access and refresh secrets must differ"))
	}
	switch c.Auth.SigningMethod {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("unsupported signing method %q", c.Auth.SigningMethod))
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		errs = append(errs, errors.New("token TTLs must be positive"))
	}
	if c.Auth.MaxSessions < 0 {
		errs = append(errs, errors.New("auth.max_sessions must not be negative"))
	}

	if c.Sweeper.Enabled && c.Sweeper.Schedule == "" {
		errs = append(errs, errors.New("sweeper.schedule is required when the sweeper is enabled"))
	}
	if c.RateLimit.Requests < 0 || c.RateLimit.Window < 0 {
		errs = append(errs, errors.New("rate_limit values must not be negative"))
	}
	if c.IDs.Node < 0 || c.IDs.Node > 1023 {
		errs = append(errs, fmt.Errorf("ids.snowflake_node must be in [0, 1023], got %d", c.IDs.Node))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// UsesDefaultSecrets reports whether either token secret is still a development placeholder
func (c *Config) UsesDefaultSecrets() bool {
	return c.Auth.AccessSecret == DefaultAccessSecret || c.Auth.RefreshSecret == DefaultRefreshSecret
}

// ParseDuration extends time.ParseDuration with a whole-day suffix, e.g. "7d"
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}
