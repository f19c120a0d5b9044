package configs

import "time"

// Config holds all configuration for the application.
type Config struct {
	Server            ServerConfig      `mapstructure:"server" validate:"required"`
	Log               LogConfig         `mapstructure:"log" validate:"required"`
	Storage           StorageConfig     `mapstructure:"storage" validate:"required"`
	Collector         CollectorConfig   `mapstructure:"collector"`
	Aggregation       AggregationConfig `mapstructure:"aggregation" validate:"required"`
	MonitoredEntities []EntityConfig    `mapstructure:"monitored_entities" validate:"dive"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (manual collection runs clear it)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// StorageConfig selects and configures the measurement store.
type StorageConfig struct {
	Driver   string                `mapstructure:"driver" validate:"required,oneof=file postgres"`
	File     FileStorageConfig     `mapstructure:"file"`
	Postgres PostgresStorageConfig `mapstructure:"postgres"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir"`
}

// PostgresStorageConfig holds the Postgres connection settings.
// The DSN usually comes from TRAFFIC_STORAGE_POSTGRES_DSN.
type PostgresStorageConfig struct {
	DSN           string `mapstructure:"dsn"`
	MaxOpenConns  int    `mapstructure:"max_open_conns" validate:"min=0,max=200"`
	RunMigrations bool   `mapstructure:"run_migrations"`
}

// CollectorConfig holds the upstream polling configuration.
type CollectorConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BaseURL        string        `mapstructure:"base_url" validate:"omitempty,url"`
	Interval       time.Duration `mapstructure:"interval" validate:"min=0"`
	RequestDelay   time.Duration `mapstructure:"request_delay" validate:"min=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"min=0"`
	RunOnStart     bool          `mapstructure:"run_on_start"`
	// Secret protects manual runs. Usually set with TRAFFIC_COLLECTOR_SECRET.
	Secret string `mapstructure:"secret"`
}

// AggregationConfig holds aggregation configuration.
type AggregationConfig struct {
	Timezone           string `mapstructure:"timezone" validate:"required,timezone"`
	DefaultGranularity string `mapstructure:"default_granularity" validate:"required,granularity"`
	Collation          string `mapstructure:"collation" validate:"required,bcp47_language_tag"`
	MaxRecords         int    `mapstructure:"max_records" validate:"required,min=1,max=1000000"`
}

// EntityConfig is one monitored entity. Uniqueness of (device, detector)
// pairs is checked when the entity catalog is built.
type EntityConfig struct {
	DeviceID    string   `mapstructure:"device_id" validate:"required"`
	Detectors   []string `mapstructure:"detectors" validate:"required,min=1,dive,required"`
	Direction   string   `mapstructure:"direction" validate:"required,direction"`
	Description string   `mapstructure:"description"`
	Keywords    []string `mapstructure:"keywords" validate:"dive,required"`
}
