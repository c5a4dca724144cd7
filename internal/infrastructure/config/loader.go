package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "BA"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// defaults and env are enough for a local run
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	return decode(v, env)
}

// LoadFromViper decodes an already populated viper instance, defaults included
func LoadFromViper(v *viper.Viper, env string) (*Config, error) {
	setDefaults(v)
	return decode(v, env)
}

func decode(v *viper.Viper, env string) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)
	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 45)      // seconds, covers a full sync
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "balance.db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 1)
	v.SetDefault("database.maxIdleConns", 1)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds
	v.SetDefault("database.logLevel", "warn")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("backup.provider", "gist")
	v.SetDefault("backup.baseURL", "https://api.github.com")
	v.SetDefault("backup.requestTimeout", 15) // seconds
	v.SetDefault("backup.syncTimeout", 30)    // seconds
	v.SetDefault("backup.snapshotVersion", "1.0.0")

	v.SetDefault("auth.demoUsername", "user")
	v.SetDefault("auth.demoPassword", "pass")
	v.SetDefault("auth.federatedIssuer", "https://accounts.google.com")

	v.SetDefault("sync.schedulerEnabled", true)
	v.SetDefault("sync.recentLimit", 5)
}

// getEnvironment determines the environment from BA_ENV, development by default
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides makes environment variables win over config file values
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"BA_DB_DRIVER":             "database.driver",
		"BA_DB_PATH":               "database.path",
		"BA_DB_HOST":               "database.host",
		"BA_DB_PORT":               "database.port",
		"BA_DB_USERNAME":           "database.username",
		"BA_DB_PASSWORD":           "database.password",
		"BA_DB_NAME":               "database.database",
		"BA_DB_SSL_MODE":           "database.sslMode",
		"BA_SERVER_HOST":           "server.host",
		"BA_LOGGER_LEVEL":          "logger.level",
		"BA_LOGGER_FORMAT":         "logger.format",
		"BA_BACKUP_PROVIDER":       "backup.provider",
		"BA_BACKUP_BASE_URL":       "backup.baseURL",
		"BA_AUTH_DEMO_USERNAME":    "auth.demoUsername",
		"BA_AUTH_DEMO_PASSWORD":    "auth.demoPassword",
		"BA_AUTH_FEDERATED_CLIENT": "auth.federatedClientId",
	}
	for env, key := range stringOverrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	intOverrides := map[string]string{
		"BA_SERVER_PORT":                 "server.port",
		"BA_DB_MAX_OPEN_CONNS":           "database.maxOpenConns",
		"BA_DB_MAX_IDLE_CONNS":           "database.maxIdleConns",
		"BA_DB_QUERY_TIMEOUT_SECONDS":    "database.queryTimeout",
		"BA_DB_RETRY_ATTEMPTS":           "database.retryAttempts",
		"BA_BACKUP_REQUEST_TIMEOUT_SECS": "backup.requestTimeout",
		"BA_BACKUP_SYNC_TIMEOUT_SECS":    "backup.syncTimeout",
	}
	for env, key := range intOverrides {
		if value := getEnvInt(env, 0); value > 0 {
			v.Set(key, value)
		}
	}

	if enabled, ok := getEnvBool("BA_SYNC_SCHEDULER_ENABLED"); ok {
		v.Set("sync.schedulerEnabled", enabled)
	}
}

// Helper function to get environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvBool(name string) (bool, bool) {
	valStr := os.Getenv(name)
	if valStr == "" {
		return false, false
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, false
	}
	return val, true
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = config.Server.ReadTimeout * time.Second
	config.Server.WriteTimeout = config.Server.WriteTimeout * time.Second
	config.Server.IdleTimeout = config.Server.IdleTimeout * time.Second
	config.Server.ReadHeaderTimeout = config.Server.ReadHeaderTimeout * time.Second
	config.Server.ShutdownTimeout = config.Server.ShutdownTimeout * time.Second

	config.Database.ConnMaxLifetime = config.Database.ConnMaxLifetime * time.Minute
	config.Database.ConnMaxIdleTime = config.Database.ConnMaxIdleTime * time.Minute
	config.Database.QueryTimeout = config.Database.QueryTimeout * time.Second
	config.Database.RetryDelay = config.Database.RetryDelay * time.Second

	config.Backup.RequestTimeout = config.Backup.RequestTimeout * time.Second
	config.Backup.SyncTimeout = config.Backup.SyncTimeout * time.Second
}
