package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Backup      BackupConfig   `mapstructure:"backup"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Sync        SyncConfig     `mapstructure:"sync"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains local store settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
	LogLevel        string        `mapstructure:"logLevel"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// BackupConfig contains remote backup settings
type BackupConfig struct {
	Provider        string        `mapstructure:"provider"` // gist | memory
	BaseURL         string        `mapstructure:"baseURL"`
	RequestTimeout  time.Duration `mapstructure:"requestTimeout"` // seconds
	SyncTimeout     time.Duration `mapstructure:"syncTimeout"`    // seconds
	SnapshotVersion string        `mapstructure:"snapshotVersion"`
}

// AuthConfig contains sign-in settings
type AuthConfig struct {
	DemoUsername    string `mapstructure:"demoUsername"`
	DemoPassword    string `mapstructure:"demoPassword"`
	FederatedClient string `mapstructure:"federatedClientId"`
	FederatedIssuer string `mapstructure:"federatedIssuer"`
}

// SyncConfig contains background sync settings
type SyncConfig struct {
	SchedulerEnabled bool `mapstructure:"schedulerEnabled"`
	RecentLimit      int  `mapstructure:"recentLimit"`
}
