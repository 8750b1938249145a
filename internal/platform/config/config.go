package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config agrupa todo lo configurable del servicio. Se carga desde TOML
// y algunos campos se pueden pisar por env (ver ApplyEnv).
type Config struct {
	Server struct {
		Addr         string `toml:"addr"`
		ReadTimeout  string `toml:"read_timeout"`
		WriteTimeout string `toml:"write_timeout"`
	} `toml:"server"`

	Database struct {
		DSN string `toml:"dsn"`
	} `toml:"database"`

	Auth struct {
		// Si no hay base_url, corre en modo dev (headers X-Debug-*).
		SSOBaseURL string `toml:"sso_base_url"`
		Timeout    string `toml:"timeout"`
	} `toml:"auth"`

	Logging struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"logging"`

	Pagination struct {
		// Tope de ?limit por entidad; el resto usa DefaultMaxLimit.
		DefaultMaxLimit int `toml:"default_max_limit"`
		BreedsMaxLimit  int `toml:"breeds_max_limit"`
	} `toml:"pagination"`
}

func Default() *Config {
	var c Config
	c.Server.Addr = ":8080"
	c.Server.ReadTimeout = "5s"
	c.Server.WriteTimeout = "10s"
	c.Auth.Timeout = "10s"
	c.Logging.Level = "info"
	c.Logging.Format = "text"
	c.Pagination.DefaultMaxLimit = 100
	c.Pagination.BreedsMaxLimit = 200
	return &c
}

// Load lee el TOML indicado sobre los defaults. path vacío => solo defaults+env.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := toml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	c.ApplyEnv()

	if c.Server.Addr == "" {
		return nil, fmt.Errorf("server.addr is required, use a value like :8080")
	}
	return c, nil
}

// ApplyEnv pisa valores con las envs clásicas de despliegue.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("SSO_BASE_URL"); v != "" {
		c.Auth.SSOBaseURL = v
	}
}

func (c *Config) ReadTimeout() time.Duration  { return parseDuration(c.Server.ReadTimeout, 5*time.Second) }
func (c *Config) WriteTimeout() time.Duration { return parseDuration(c.Server.WriteTimeout, 10*time.Second) }
func (c *Config) AuthTimeout() time.Duration  { return parseDuration(c.Auth.Timeout, 10*time.Second) }

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
