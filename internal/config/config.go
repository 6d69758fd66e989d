package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var (
	cfg     *APIConfig
	loadErr error
	once    sync.Once
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName        xml.Name             `xml:"API"`
	RequestDump    bool                 `xml:"REQUEST_DUMP,attr"`
	Context        ContextConfig        `xml:"CONTEXT"`
	Authentication AuthenticationConfig `xml:"AUTHENTICATION"`
	Pagination     PaginationConfig     `xml:"PAGINATION"`
	DB             DBConfig             `xml:"DB"`
	Quiz           QuizConfig           `xml:"QUIZ"`
	Cache          CacheConfig          `xml:"CACHE"`
	RateLimit      RateLimitConfig      `xml:"RATE_LIMIT"`
	Logging        LoggingConfig        `xml:"LOGGING"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port           int    `xml:"PORT"`
	Host           string `xml:"HOST"`
	Path           string `xml:"PATH"`
	TimeZone       string `xml:"TIME_ZONE"`
	MaxConnections int    `xml:"MAX_CONNECTIONS"`
}

// AuthenticationConfig holds token settings. TTLs are in minutes.
type AuthenticationConfig struct {
	AccessSecret    string `xml:"ACCESS_SECRET"`
	RefreshSecret   string `xml:"REFRESH_SECRET"`
	AccessTokenTTL  int    `xml:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL int    `xml:"REFRESH_TOKEN_TTL"`
}

// PaginationConfig holds pagination settings.
type PaginationConfig struct {
	PageSize int `xml:"PAGE_SIZE"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Initialize bool         `xml:"INITIALIZE"`
	Host       string       `xml:"HOST"`
	Port       int          `xml:"PORT"`
	Driver     string       `xml:"DRIVER"`
	SSLMode    string       `xml:"SSL_MODE"`
	Names      DBNames      `xml:"NAMES"`
	Username   string       `xml:"USERNAME"`
	Password   DBPassword   `xml:"PASSWORD"`
	Pool       DBPoolConfig `xml:"POOL"`
}

// DBNames holds the names defined in the DB section.
type DBNames struct {
	TRIPIFY string `xml:"TRIPIFY,attr"`
}

// DBPassword holds password details.
type DBPassword struct {
	Type  string `xml:"TYPE,attr"`
	Value string `xml:",chardata"`
}

// DBPoolConfig holds database connection pooling settings.
type DBPoolConfig struct {
	MaxOpenConns    int `xml:"MAX_OPEN_CONNS"`
	MaxIdleConns    int `xml:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int `xml:"CONN_MAX_LIFETIME"`
}

// QuizConfig points at an alternative quiz definition. Empty means built-in.
type QuizConfig struct {
	File string `xml:"FILE"`
}

// CacheConfig configures the Redis cache. An empty Addr disables it.
type CacheConfig struct {
	Addr       string `xml:"ADDR"`
	Password   string `xml:"PASSWORD"`
	DB         int    `xml:"DB"`
	TTLSeconds int    `xml:"TTL_SECONDS"`
}

// RateLimitConfig throttles mood calculations per client IP.
type RateLimitConfig struct {
	RequestsPerMinute int `xml:"REQUESTS_PER_MINUTE"`
	Burst             int `xml:"BURST"`
}

// LoggingConfig controls the rotated log files.
type LoggingConfig struct {
	Dir        string `xml:"DIR"`
	Level      string `xml:"LEVEL"`
	MaxSizeMB  int    `xml:"MAX_SIZE_MB"`
	MaxBackups int    `xml:"MAX_BACKUPS"`
	MaxAgeDays int    `xml:"MAX_AGE_DAYS"`
}

// Environment variables that take precedence over the XML file.
const (
	EnvDBPassword    = "TRIPIFY_DB_PASSWORD"
	EnvAccessSecret  = "TRIPIFY_ACCESS_SECRET"
	EnvRefreshSecret = "TRIPIFY_REFRESH_SECRET"
	EnvRedisAddr     = "TRIPIFY_REDIS_ADDR"
	EnvPort          = "TRIPIFY_PORT"
)

// LoadConfig loads .env (when present) and parses the XML configuration from
// the given file. The first call wins; later calls return the same result.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			loadErr = fmt.Errorf("load .env: %w", err)
			return
		}

		data, err := os.ReadFile(xmlPath)
		if err != nil {
			loadErr = fmt.Errorf("read config: %w", err)
			return
		}

		cfg, loadErr = Parse(data)
	})
	return cfg, loadErr
}

// Parse decodes an XML document, applies environment overrides and fills in
// defaults.
func Parse(data []byte) (*APIConfig, error) {
	var newCfg APIConfig
	if err := xml.Unmarshal(data, &newCfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := newCfg.applyEnv(); err != nil {
		return nil, err
	}
	newCfg.applyDefaults()
	if err := newCfg.validate(); err != nil {
		return nil, err
	}
	return &newCfg, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}

func (c *APIConfig) applyEnv() error {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.DB.Password.Value = v
	}
	if v := os.Getenv(EnvAccessSecret); v != "" {
		c.Authentication.AccessSecret = v
	}
	if v := os.Getenv(EnvRefreshSecret); v != "" {
		c.Authentication.RefreshSecret = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.Addr = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Context.Port = port
	}
	return nil
}

func (c *APIConfig) applyDefaults() {
	if c.Context.Port == 0 {
		c.Context.Port = 8000
	}
	if c.Context.Path == "" {
		c.Context.Path = "/api"
	}
	if c.Context.TimeZone == "" {
		c.Context.TimeZone = "UTC"
	}
	if c.Context.MaxConnections == 0 {
		c.Context.MaxConnections = 1024
	}
	if c.Authentication.AccessTokenTTL == 0 {
		c.Authentication.AccessTokenTTL = 15
	}
	if c.Authentication.RefreshTokenTTL == 0 {
		c.Authentication.RefreshTokenTTL = 7 * 24 * 60
	}
	if c.Pagination.PageSize == 0 {
		c.Pagination.PageSize = 100
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "postgres"
	}
	if c.DB.SSLMode == "" {
		c.DB.SSLMode = "disable"
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 24 * 60 * 60
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 30
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "INFO"
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = 50
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = 5
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = 30
	}
}

func (c *APIConfig) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB driver %q", c.DB.Driver)
	}
	if c.Authentication.AccessSecret == "" || c.Authentication.RefreshSecret == "" {
		return errors.New("access and refresh token secrets must be set")
	}
	if _, err := time.LoadLocation(c.Context.TimeZone); err != nil {
		return fmt.Errorf("time zone: %w", err)
	}
	return nil
}

// AccessTokenExpiry returns the configured access token lifetime.
func (a AuthenticationConfig) AccessTokenExpiry() time.Duration {
	return time.Duration(a.AccessTokenTTL) * time.Minute
}

// RefreshTokenExpiry returns the configured refresh token lifetime.
func (a AuthenticationConfig) RefreshTokenExpiry() time.Duration {
	return time.Duration(a.RefreshTokenTTL) * time.Minute
}

// CacheTTL returns the lifetime of cached mood results.
func (c CacheConfig) CacheTTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// DSN builds the driver-specific connection string.
func (d DBConfig) DSN(timeZone string) string {
	if d.Driver == "sqlite" {
		return d.Names.TRIPIFY
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		d.Host, d.Username, d.Password.Value, d.Names.TRIPIFY, d.Port, d.SSLMode, timeZone)
}
