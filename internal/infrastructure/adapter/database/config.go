package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/config"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents database configuration
type Config struct {
	Driver          string
	Path            string // sqlite file, or a sqlite DSN such as file::memory:
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration
	LogLevel        string
	RetryAttempts   int
	RetryDelay      time.Duration
}

// DefaultConfig returns a local sqlite configuration
func DefaultConfig() *Config {
	return &Config{
		Driver:          DriverSQLite,
		Path:            "balance.db",
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 15 * time.Minute,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "warn",
		RetryAttempts:   3,
		RetryDelay:      time.Second,
	}
}

// FromAppConfig adapts the application configuration to database configuration
func FromAppConfig(conf config.DatabaseConfig, logLevel string) *Config {
	dbConf := DefaultConfig()

	if conf.Driver != "" {
		dbConf.Driver = strings.ToLower(conf.Driver)
	}
	if conf.Path != "" {
		dbConf.Path = conf.Path
	}
	dbConf.Host = conf.Host
	if port := ParsePort(conf.Port); port > 0 {
		dbConf.Port = port
	}
	dbConf.Username = conf.Username
	dbConf.Password = conf.Password
	dbConf.Database = conf.Database
	if conf.SSLMode != "" {
		dbConf.SSLMode = conf.SSLMode
	}
	if conf.MaxOpenConns > 0 {
		dbConf.MaxOpenConns = conf.MaxOpenConns
	}
	if conf.MaxIdleConns > 0 {
		dbConf.MaxIdleConns = conf.MaxIdleConns
	}
	if conf.ConnMaxLifetime > 0 {
		dbConf.ConnMaxLifetime = conf.ConnMaxLifetime
	}
	if conf.ConnMaxIdleTime > 0 {
		dbConf.ConnMaxIdleTime = conf.ConnMaxIdleTime
	}
	if conf.QueryTimeout > 0 {
		dbConf.QueryTimeout = conf.QueryTimeout
	}
	if conf.RetryAttempts > 0 {
		dbConf.RetryAttempts = conf.RetryAttempts
	}
	if conf.RetryDelay > 0 {
		dbConf.RetryDelay = conf.RetryDelay
	}
	if logLevel != "" {
		dbConf.LogLevel = logLevel
	}

	return dbConf
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.Path == "" {
			return errors.New("sqlite database path is required")
		}
	case DriverPostgres:
		if c.Host == "" {
			return errors.New("database host is required")
		}
		if c.Port <= 0 || c.Port > 65535 {
			return fmt.Errorf("invalid port number: %d", c.Port)
		}
		if c.Username == "" {
			return errors.New("database username is required")
		}
		if c.Database == "" {
			return errors.New("database name is required")
		}
		validSSLModes := map[string]bool{
			"disable":     true,
			"require":     true,
			"verify-ca":   true,
			"verify-full": true,
			"prefer":      true,
		}
		if !validSSLModes[c.SSLMode] {
			return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got: %d", c.RetryAttempts)
	}
	return nil
}

// DSN returns the connection string of the configured driver
func (c *Config) DSN() string {
	if c.Driver == DriverSQLite {
		return sqliteDSN(c.Path)
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// sqliteDSN enables foreign keys and a busy timeout on top of path
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// ParsePort converts a port string to an int, 0 when unset or invalid
func ParsePort(port string) int {
	var p int
	_, err := fmt.Sscanf(port, "%d", &p)
	if err != nil || p <= 0 || p > 65535 {
		return 0
	}
	return p
}
