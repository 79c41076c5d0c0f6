package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings of the API server
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Database DBConfig     `yaml:"database"`
	ML       MLConfig     `yaml:"ml"`
	Auth     AuthConfig   `yaml:"auth"`
	Log      LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

// MLConfig describes the external scoring command
type MLConfig struct {
	Command string        `yaml:"command"`
	Script  string        `yaml:"script"`
	Timeout time.Duration `yaml:"timeout"` // 0 waits for the script indefinitely
}

// AuthConfig enables token mode when JWTSecret is set
type AuthConfig struct {
	JWTSecret          string `yaml:"jwt_secret"`
	JWTExpirationHours int64  `yaml:"jwt_expiration_hours"`
}

// TokenMode reports whether login issues tokens and routes require them
func (a AuthConfig) TokenMode() bool {
	return a.JWTSecret != ""
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when neither a file nor the environment says otherwise
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "5000"},
		Database: DBConfig{
			Port:          "5432",
			TLSSkipVerify: true,
			AutoMigrate:   true,
		},
		ML: MLConfig{
			Command: "python",
			Script:  "../ML/hitung_skor_nasabah.py",
		},
		Auth: AuthConfig{JWTExpirationHours: 24},
		Log:  LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and finally environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
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
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
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

	str("PORT", &c.Server.Port)
	str("SERVER_PORT", &c.Server.Port)
	str("GIN_MODE", &c.Server.GinMode)

	str("DB_HOST", &c.Database.Host)
	str("DB_PORT", &c.Database.Port)
	str("DB_USER", &c.Database.User)
	str("DB_PASSWORD", &c.Database.Password)
	str("DB_NAME", &c.Database.Name)
	str("DB_SSLMODE", &c.Database.SSLMode)

	str("ML_COMMAND", &c.ML.Command)
	str("ML_SCRIPT", &c.ML.Script)

	str("JWT_SECRET_KEY", &c.Auth.JWTSecret)

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("DB_TLS_SKIP_VERIFY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DB_TLS_SKIP_VERIFY %q: %w", v, err)
		}
		c.Database.TLSSkipVerify = b
	}
	if v, ok := lookup("DB_AUTO_MIGRATE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DB_AUTO_MIGRATE %q: %w", v, err)
		}
		c.Database.AutoMigrate = b
	}
	if v, ok := lookup("DB_MAX_CONNS"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid DB_MAX_CONNS %q: %w", v, err)
		}
		c.Database.MaxConns = int32(n)
	}
	if v, ok := lookup("ML_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ML_TIMEOUT %q: %w", v, err)
		}
		c.ML.Timeout = d
	}
	if v, ok := lookup("JWT_EXPIRATION_HOURS"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q: %w", v, err)
		}
		c.Auth.JWTExpirationHours = n
	}
	return nil
}

// Validate checks that the settings required to start are present
func (c *Config) Validate() error {
	var missing []string
	if c.Database.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.Database.User == "" {
		missing = append(missing, "DB_USER")
	}
	if c.Database.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("database settings not set (%s)", strings.Join(missing, ", "))
	}
	if c.ML.Command == "" {
		return fmt.Errorf("ML_COMMAND must not be empty")
	}
	if c.ML.Timeout < 0 {
		return fmt.Errorf("ML_TIMEOUT must not be negative")
	}
	if c.Auth.TokenMode() && c.Auth.JWTExpirationHours <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be positive when JWT_SECRET_KEY is set")
	}
	return nil
}
