package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/custodia-labs/taskd/internal/core/domain"
	"github.com/custodia-labs/taskd/internal/core/ports/driven"
	"github.com/custodia-labs/taskd/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir        = "storage.data_dir"
	keyServerAddr     = "server.addr"
	keyRequestTimeout = "server.request_timeout_seconds"
	keyRateLimit      = "server.rate_limit"
	keyRateBurst      = "server.rate_burst"
	keyLogLevel       = "log.level"
	keyLogFormat      = "log.format"
	keyLogFile        = "log.file"
	keyLogMaxSize     = "log.max_size_mb"
	keyLogMaxFiles    = "log.max_files"
)

// settingField binds one config key to its AppSettings field.
type settingField struct {
	key string
	// env overrides the stored value when set. Empty means no override.
	env string
	// load copies the stored value into s. Called only when the key exists.
	load func(store driven.ConfigStore, s *domain.AppSettings)
	// parse sets the field from its text form.
	parse func(s *domain.AppSettings, raw string) error
	// value returns the field in its stored form.
	value func(s *domain.AppSettings) any
}

var settingFields = []settingField{
	{
		key: keyDataDir, env: "TASKD_DATA_DIR",
		load: func(c driven.ConfigStore, s *domain.AppSettings) {
			if v := c.GetString(keyDataDir); v != "" {
				s.Storage.DataDir = v
			}
		},
		parse: func(s *domain.AppSettings, raw string) error { s.Storage.DataDir = raw; return nil },
		value: func(s *domain.AppSettings) any { return s.Storage.DataDir },
	},
	{
		key: keyServerAddr, env: "TASKD_ADDR",
		load: func(c driven.ConfigStore, s *domain.AppSettings) {
			if v := c.GetString(keyServerAddr); v != "" {
				s.Server.Addr = v
			}
		},
		parse: func(s *domain.AppSettings, raw string) error { s.Server.Addr = raw; return nil },
		value: func(s *domain.AppSettings) any { return s.Server.Addr },
	},
	{
		key: keyRequestTimeout, env: "TASKD_REQUEST_TIMEOUT",
		load: func(c driven.ConfigStore, s *domain.AppSettings) {
			s.Server.RequestTimeout = time.Duration(c.GetInt(keyRequestTimeout)) * time.Second
		},
		parse: func(s *domain.AppSettings, raw string) error {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			s.Server.RequestTimeout = time.Duration(n) * time.Second
			return nil
		},
		value: func(s *domain.AppSettings) any { return int(s.Server.RequestTimeout / time.Second) },
	},
	{
		key: keyRateLimit, env: "TASKD_RATE_LIMIT",
		load: func(c driven.ConfigStore, s *domain.AppSettings) {
			s.Server.RateLimit = c.GetFloat(keyRateLimit)
		},
		parse: func(s *domain.AppSettings, raw string) error {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return err
			}
			s.Server.RateLimit = f
			return nil
		},
		value: func(s *domain.AppSettings) any { return s.Server.RateLimit },
	},
	{
		key: keyRateBurst, env: "TASKD_RATE_BURST",
		load: func(c driven.ConfigStore, s *domain.AppSettings) {
			s.Server.RateBurst = c.GetInt(keyRateBurst)
		},
		parse: func(s *domain.AppSettings, raw string) error {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			s.Server.RateBurst = n
			return nil
		},
		value: func(s *domain.AppSettings) any { return s.Server.RateBurst },
	},
	{
		key: keyLogLevel, env: "TASKD_LOG_LEVEL",
		load: func(c driven.ConfigStore, s *domain.AppSettings) {
			if level := domain.LogLevel(c.GetString(keyLogLevel)); level.IsValid() {
				s.Log.Level = level
			}
		},
		parse: func(s *domain.AppSettings, raw string) error { s.Log.Level = domain.LogLevel(raw); return nil },
		value: func(s *domain.AppSettings) any { return s.Log.Level.String() },
	},
	{
		key: keyLogFormat, env: "TASKD_LOG_FORMAT",
		load: func(c driven.ConfigStore, s *domain.AppSettings) {
			if format := domain.LogFormat(c.GetString(keyLogFormat)); format.IsValid() {
				s.Log.Format = format
			}
		},
		parse: func(s *domain.AppSettings, raw string) error { s.Log.Format = domain.LogFormat(raw); return nil },
		value: func(s *domain.AppSettings) any { return s.Log.Format.String() },
	},
	{
		key: keyLogFile, env: "TASKD_LOG_FILE",
		load: func(c driven.ConfigStore, s *domain.AppSettings) {
			s.Log.File = c.GetString(keyLogFile)
		},
		parse: func(s *domain.AppSettings, raw string) error { s.Log.File = raw; return nil },
		value: func(s *domain.AppSettings) any { return s.Log.File },
	},
	{
		key: keyLogMaxSize,
		load: func(c driven.ConfigStore, s *domain.AppSettings) {
			if v := c.GetInt(keyLogMaxSize); v > 0 {
				s.Log.MaxSizeMB = v
			}
		},
		parse: func(s *domain.AppSettings, raw string) error {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			s.Log.MaxSizeMB = n
			return nil
		},
		value: func(s *domain.AppSettings) any { return s.Log.MaxSizeMB },
	},
	{
		key: keyLogMaxFiles,
		load: func(c driven.ConfigStore, s *domain.AppSettings) {
			if v := c.GetInt(keyLogMaxFiles); v > 0 {
				s.Log.MaxFiles = v
			}
		},
		parse: func(s *domain.AppSettings, raw string) error {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			s.Log.MaxFiles = n
			return nil
		},
		value: func(s *domain.AppSettings) any { return s.Log.MaxFiles },
	},
}

// SettingsService manages application settings.
// Precedence is environment over config file over defaults.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service reading overrides from
// the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// WithLookupEnv replaces the environment lookup. Intended for tests.
func (s *SettingsService) WithLookupEnv(lookup func(string) (string, bool)) *SettingsService {
	s.lookupEnv = lookup
	return s
}

// Get retrieves current application settings with environment overrides
// applied. Unparsable overrides are reported as domain.ErrInvalidInput.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()

	for _, field := range settingFields {
		if field.env == "" {
			continue
		}
		raw, ok := s.lookupEnv(field.env)
		if !ok || raw == "" {
			continue
		}
		if err := field.parse(&settings, raw); err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %v", domain.ErrInvalidInput, field.env, raw, err)
		}
	}

	return &settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	for _, field := range settingFields {
		if err := s.configStore.Set(field.key, field.value(settings)); err != nil {
			return fmt.Errorf("save %s: %w", field.key, err)
		}
	}
	return s.configStore.Save()
}

// Set validates and persists a single key.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	field, ok := lookupField(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	settings := s.stored()
	if err := field.parse(&settings, value); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(key, field.value(&settings)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return s.configStore.Save()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys returns the settable keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingFields))
	for _, field := range settingFields {
		keys = append(keys, field.key)
	}
	return keys
}

// stored returns defaults overlaid with the config store, without
// environment overrides.
func (s *SettingsService) stored() domain.AppSettings {
	settings := domain.DefaultAppSettings()
	if s.configStore == nil {
		return settings
	}
	for _, field := range settingFields {
		if _, exists := s.configStore.Get(field.key); exists {
			field.load(s.configStore, &settings)
		}
	}
	return settings
}

func lookupField(key string) (settingField, bool) {
	for _, field := range settingFields {
		if field.key == key {
			return field, true
		}
	}
	return settingField{}, false
}
