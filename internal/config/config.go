package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Events   EventsConfig   `mapstructure:"events"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Supported values for DatabaseConfig.Backend.
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// DatabaseConfig selects the task store backend and configures the
// PostgreSQL connection pool.
type DatabaseConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=postgres redis memory"`
	URL     string `mapstructure:"url"     validate:"required_if=Backend postgres,omitempty,url"`

	MaxOpenConns          int  `mapstructure:"max_open_conns"          validate:"gt=0"`
	MaxIdleConns          int  `mapstructure:"max_idle_conns"          validate:"gte=0"`
	AcquireTimeoutSeconds int  `mapstructure:"acquire_timeout_seconds" validate:"gt=0"`
	AutoMigrate           bool `mapstructure:"auto_migrate"`
}

// RedisConfig configures the Redis task store. URL is required when the
// database backend is "redis"; that cross-section rule is checked in Load.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// EventsConfig configures where task lifecycle events are published.
// With no brokers, events are dispatched in-process and logged.
type EventsConfig struct {
	KafkaBrokers []string `mapstructure:"kafka_brokers" validate:"omitempty,dive,hostname_port"`
	KafkaTopic   string   `mapstructure:"kafka_topic"   validate:"required_with=KafkaBrokers"`
}
