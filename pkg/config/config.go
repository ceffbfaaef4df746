package config

import (
	"fmt"
	"os"
	"time"

	"InflationPanel/pkg/util"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// SourceConfig locates one raw document. Label is the column prefix of
// "<Label> Monthly (%)" documents and is ignored for the İTO document.
type SourceConfig struct {
	URL   string `yaml:"url"`
	Label string `yaml:"label"`
}

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Sources struct {
		Timeout        time.Duration `yaml:"timeout" default:"30s"`
		ReloadInterval time.Duration `yaml:"reload_interval"`
		ITO            SourceConfig  `yaml:"ito"`
		TUIK           SourceConfig  `yaml:"tuik"`
		ENAG           SourceConfig  `yaml:"enag"`
	} `yaml:"sources"`
	Alignment struct {
		Strategy  string `yaml:"strategy" default:"keyed"`
		GapPolicy string `yaml:"gap_policy" default:"fill"`
	} `yaml:"alignment"`
	Cache struct {
		TTL           time.Duration `yaml:"ttl" default:"10m"`
		MemoryMaxSize int           `yaml:"memory_max_size" default:"1000"`
		MemoryCleanup time.Duration `yaml:"memory_cleanup" default:"1m"`
		Redis         struct {
			Enabled      bool          `yaml:"enabled"`
			Addr         string        `yaml:"addr" default:"localhost:6379"`
			Password     string        `yaml:"password"`
			DB           int           `yaml:"db"`
			Prefix       string        `yaml:"prefix" default:"inflation"`
			PoolSize     int           `yaml:"pool_size" default:"10"`
			MinIdleConns int           `yaml:"min_idle_conns" default:"2"`
			PoolTimeout  time.Duration `yaml:"pool_timeout" default:"4s"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	RateLimit struct {
		Enabled   bool    `yaml:"enabled" default:"true"`
		Burst     float64 `yaml:"burst" default:"30"`
		PerSecond float64 `yaml:"per_second" default:"10"`
	} `yaml:"rate_limit"`
}

// Default returns a config with every default applied and no sources.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}

// Parse applies defaults, then the YAML document, then validates.
func Parse(b []byte) (*Config, error) {
	c, err := decode(b)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// Validation runs after the overrides so sources may come from the environment alone.
func LoadWithEnv(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := decode(b)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func decode(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("APP_ENV"); v != "" {
		c.Environment = v
	}
	if v := getenv("SOURCE_ITO_URL"); v != "" {
		c.Sources.ITO.URL = v
	}
	if v := getenv("SOURCE_TUIK_URL"); v != "" {
		c.Sources.TUIK.URL = v
	}
	if v := getenv("SOURCE_ENAG_URL"); v != "" {
		c.Sources.ENAG.URL = v
	}
	if v := getenv("ALIGN_STRATEGY"); v != "" {
		c.Alignment.Strategy = v
	}
	c.Server.Port = util.ParseIntDefault(getenv("HTTP_PORT"), c.Server.Port)
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	c.Cache.Redis.Enabled = util.ParseBoolDefault(getenv("REDIS_ENABLED"), c.Cache.Redis.Enabled)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	for name, src := range map[string]SourceConfig{"ito": c.Sources.ITO, "tuik": c.Sources.TUIK, "enag": c.Sources.ENAG} {
		if src.URL == "" {
			return fmt.Errorf("sources.%s.url is required", name)
		}
	}
	if c.Alignment.Strategy != "keyed" && c.Alignment.Strategy != "positional" {
		return fmt.Errorf("alignment.strategy must be 'keyed' or 'positional', got '%s'", c.Alignment.Strategy)
	}
	if c.Alignment.GapPolicy != "fill" && c.Alignment.GapPolicy != "drop" {
		return fmt.Errorf("alignment.gap_policy must be 'fill' or 'drop', got '%s'", c.Alignment.GapPolicy)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Burst < 1 || c.RateLimit.PerSecond <= 0) {
		return fmt.Errorf("rate_limit needs burst >= 1 and per_second > 0")
	}
	return nil
}
