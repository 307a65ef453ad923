package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config application-wide configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Academic AcademicConfig `mapstructure:"academic"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	MaxBodyBytes int64      `mapstructure:"max_body_bytes"`
	CORS         CORSConfig `mapstructure:"cors"`
}

// CORSConfig cross-origin settings. A single "*" allows every origin.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AllowAll reports whether the origin list is the wildcard.
func (c CORSConfig) AllowAll() bool {
	for _, o := range c.AllowOrigins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return len(c.AllowOrigins) == 0
}

// DatabaseConfig relational database settings
type DatabaseConfig struct {
	URL             string `mapstructure:"url"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Driver picks the database engine: an explicit URL or a complete set of
// host/name/user/password selects postgres, anything else falls back to an
// in-memory sqlite database.
func (c *DatabaseConfig) Driver() string {
	if c.URL != "" {
		if strings.HasPrefix(c.URL, "sqlite:") || strings.HasPrefix(c.URL, "file:") {
			return DriverSQLite
		}
		return DriverPostgres
	}
	if c.Host != "" && c.Name != "" && c.User != "" && c.Password != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

// DSN builds the connection string for the selected driver.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver() {
	case DriverPostgres:
		if c.URL != "" {
			return c.URL
		}
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
		)
	default:
		if c.URL != "" {
			return sqliteDSN(c.URL)
		}
		return memoryDSN
	}
}

const memoryDSN = "file::memory:?cache=shared"

// sqliteDSN accepts both plain sqlite URLs and the SQLAlchemy forms
// sqlite:///relative.db, sqlite:////abs/path.db and sqlite:///:memory:.
func sqliteDSN(url string) string {
	if !strings.HasPrefix(url, "sqlite:") {
		return url
	}
	path := strings.TrimPrefix(url, "sqlite:")
	switch {
	case strings.HasPrefix(path, "///"):
		path = path[3:]
	case strings.HasPrefix(path, "//"):
		path = path[2:]
	}
	if path == "" || path == ":memory:" {
		return memoryDSN
	}
	return path
}

// RedisConfig optional redis settings. Empty Addr disables redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig token signing settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// AcademicConfig term labels and calendar anchors
type AcademicConfig struct {
	CurrentTerm string `mapstructure:"current_term"`
	NextTerm    string `mapstructure:"next_term"`
	TermStart   string `mapstructure:"term_start"` // YYYY-MM-DD
	TermWeeks   int    `mapstructure:"term_weeks"`
}

// TermStartDate parses TermStart; zero time when unset or malformed.
func (c AcademicConfig) TermStartDate() time.Time {
	t, err := time.Parse("2006-01-02", c.TermStart)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SeedConfig bootstrap settings
type SeedConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DataDir string `mapstructure:"data_dir"` // empty: embedded fixtures
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envBindings maps config keys to the environment variable names the
// deployment already uses.
var envBindings = map[string][]string{
	"server.port":               {"PORT"},
	"server.cors.allow_origins": {"CORS_ALLOWED_ORIGINS"},
	"db.url":                    {"DATABASE_URL"},
	"db.host":                   {"DB_HOST"},
	"db.port":                   {"DB_PORT"},
	"db.name":                   {"DB_NAME"},
	"db.user":                   {"DB_USER"},
	"db.password":               {"DB_PASSWORD"},
	"db.sslmode":                {"DB_SSLMODE"},
	"redis.addr":                {"REDIS_ADDR"},
	"redis.password":            {"REDIS_PASSWORD"},
	"auth.jwt_secret":           {"JWT_SECRET_KEY"},
	"auth.token_ttl":            {"JWT_TOKEN_TTL"},
	"academic.current_term":     {"ACADEMIC_CURRENT_TERM"},
	"academic.next_term":        {"ACADEMIC_NEXT_TERM"},
	"academic.term_start":       {"ACADEMIC_TERM_START"},
	"seed.enabled":              {"SEED_ENABLED"},
	"seed.data_dir":             {"SEED_DATA_DIR"},
	"log.level":                 {"LOG_LEVEL"},
	"log.format":                {"LOG_FORMAT"},
}

// Load reads configuration from defaults, an optional config file, an
// optional .env file and the environment.
// Precedence: environment > config file > defaults
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"*"})

	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "please-change-me")
	v.SetDefault("auth.token_ttl", "12h")

	v.SetDefault("academic.current_term", "II-2024")
	v.SetDefault("academic.next_term", "I-2025")
	v.SetDefault("academic.term_start", "2024-07-22")
	v.SetDefault("academic.term_weeks", 18)

	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.data_dir", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Server.CORS.AllowOrigins = splitOrigins(cfg.Server.CORS.AllowOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// splitOrigins flattens comma-separated entries coming from the environment.
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			o = strings.TrimRight(strings.TrimSpace(o), "/")
			if o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}

// Validate checks the settings the process cannot run without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("invalid config: auth.jwt_secret must not be empty")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("invalid config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid config: auth.token_ttl must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be between 1 and 65535")
	}
	if c.Academic.CurrentTerm == "" {
		return fmt.Errorf("invalid config: academic.current_term must not be empty")
	}
	return nil
}
