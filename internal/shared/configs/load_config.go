package configs

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // aggregation.timezone must resolve without system zoneinfo

	"traffic-analytics/internal/models"
	"traffic-analytics/internal/shared/validators"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TRAFFIC_STORAGE_POSTGRES_DSN.
const EnvPrefix = "TRAFFIC"

// LoadConfig reads configuration from file, applies environment overrides and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate, err := newValidator()
	if err != nil {
		return nil, err
	}
	var validationErrors []string
	if err := validate.Struct(&cfg); err != nil {
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		} else {
			validationErrors = append(validationErrors, err.Error())
		}
	}
	validationErrors = append(validationErrors, crossFieldErrors(&cfg)...)
	if len(validationErrors) > 0 {
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// newValidator registers the domain tags used by Config.
func newValidator() (*validators.Validate, error) {
	validate := validators.New()
	parsers := map[string]validators.ParseFunc{
		"timezone": func(value string) error {
			_, err := time.LoadLocation(value)
			return err
		},
		"granularity": func(value string) error {
			_, err := models.ParseGranularity(value)
			return err
		},
		"direction": func(value string) error {
			if !models.Direction(value).IsValid() {
				return fmt.Errorf("invalid direction %q", value)
			}
			return nil
		},
	}
	for tag, parse := range parsers {
		if err := validators.RegisterParser(validate, tag, parse); err != nil {
			return nil, fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return validate, nil
}

// setDefaults registers defaults for every key that may be omitted from the file.
// Registering a key also lets AutomaticEnv pick up its override during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.file.root_dir", "./data")
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.postgres.max_open_conns", 10)
	v.SetDefault("storage.postgres.run_migrations", true)

	v.SetDefault("collector.enabled", false)
	v.SetDefault("collector.base_url", "")
	v.SetDefault("collector.interval", 5*time.Minute)
	v.SetDefault("collector.request_delay", 100*time.Millisecond)
	v.SetDefault("collector.request_timeout", 10*time.Second)
	v.SetDefault("collector.run_on_start", false)
	v.SetDefault("collector.secret", "")

	v.SetDefault("aggregation.timezone", "Europe/Helsinki")
	v.SetDefault("aggregation.default_granularity", "hour")
	v.SetDefault("aggregation.collation", "fi")
	v.SetDefault("aggregation.max_records", 50000)
}

// crossFieldErrors checks constraints that span several fields.
func crossFieldErrors(cfg *Config) []string {
	var errs []string
	switch cfg.Storage.Driver {
	case "file":
		if cfg.Storage.File.RootDir == "" {
			errs = append(errs, "storage.file.root_dir (required when driver=file)")
		}
	case "postgres":
		if cfg.Storage.Postgres.DSN == "" {
			errs = append(errs, "storage.postgres.dsn (required when driver=postgres)")
		}
	}
	if cfg.Collector.Enabled {
		if cfg.Collector.BaseURL == "" {
			errs = append(errs, "collector.base_url (required when enabled)")
		}
		if cfg.Collector.Interval <= 0 {
			errs = append(errs, "collector.interval (must be positive when enabled)")
		}
	}
	return errs
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "server.port")
	if e.StructNamespace() != "" {
		// Extract nested field path (e.g., "Config.Server.Port" -> "server.port")
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix, convert to lowercase with dots
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	case "bcp47_language_tag":
		msg = fmt.Sprintf("%s (not a BCP 47 language tag)", field)
	case "timezone":
		msg = fmt.Sprintf("%s (unknown location %q)", field, e.Value())
	case "granularity":
		msg = fmt.Sprintf("%s (one of %s)", field, granularityList())
	case "direction":
		msg = fmt.Sprintf("%s (one of IN OUT ALL)", field)
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}

func granularityList() string {
	names := make([]string, 0, len(models.Granularities))
	for _, g := range models.Granularities {
		names = append(names, string(g))
	}
	return strings.Join(names, " ")
}
