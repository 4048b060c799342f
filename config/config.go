// Package config loads client settings from an optional file and WAAPI_*
// environment variables.
//
//	url: ws://127.0.0.1:8080/waapi
//	realm: realm1
//	service: wwise-authoring
//	etcd:
//	  endpoints: [10.0.0.2:2379]
//	balancer: hash
//	pool_size: 2
//	timeout: 30s
//	rate_limit: 0
//	rate_burst: 1
//	log_level: info
//
// Environment variables override the file: WAAPI_URL, WAAPI_ETCD_ENDPOINTS
// (comma separated), WAAPI_POOL_SIZE and so on. WAAPI_CONFIG names the file
// when none is passed to Load.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultURL      = "ws://127.0.0.1:8080/waapi"
	DefaultHTTPURL  = "http://127.0.0.1:8090/waapi"
	DefaultBalancer = "hash"
	DefaultPoolSize = 2
)

type Config struct {
	URL       string        `mapstructure:"url"`
	Realm     string        `mapstructure:"realm"`
	Service   string        `mapstructure:"service"`
	Etcd      Etcd          `mapstructure:"etcd"`
	Balancer  string        `mapstructure:"balancer"`
	PoolSize  int           `mapstructure:"pool_size"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"` // calls per second, 0 disables
	RateBurst int           `mapstructure:"rate_burst"`
	LogLevel  string        `mapstructure:"log_level"`
}

// Etcd enables discovery of authoring instances through etcd. With no
// endpoints the client talks to URL only.
type Etcd struct {
	Endpoints []string `mapstructure:"endpoints"`
}

// New returns the default settings.
func New() *Config {
	return &Config{
		URL:       DefaultURL,
		Realm:     "realm1",
		Service:   "wwise-authoring",
		Balancer:  DefaultBalancer,
		PoolSize:  DefaultPoolSize,
		RateBurst: 1,
		LogLevel:  "info",
	}
}

// Load reads path (or $WAAPI_CONFIG when path is empty) on top of the
// defaults, then applies WAAPI_* environment variables. A missing path is
// not an error; an unreadable file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, New())

	v.SetEnvPrefix("WAAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("WAAPI_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Etcd.Endpoints = splitEndpoints(cfg.Etcd.Endpoints)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("url", d.URL)
	v.SetDefault("realm", d.Realm)
	v.SetDefault("service", d.Service)
	v.SetDefault("etcd.endpoints", []string{})
	v.SetDefault("balancer", d.Balancer)
	v.SetDefault("pool_size", d.PoolSize)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("rate_burst", d.RateBurst)
	v.SetDefault("log_level", d.LogLevel)
}

// splitEndpoints accepts both list entries and comma separated strings.
func splitEndpoints(in []string) []string {
	var out []string
	for _, e := range in {
		for _, part := range strings.Split(e, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate reports settings the client cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.URL == "" && len(c.Etcd.Endpoints) == 0 {
		errs = append(errs, errors.New("either url or etcd.endpoints must be set"))
	}
	if c.PoolSize < 1 {
		errs = append(errs, fmt.Errorf("pool_size must be at least 1, got %d", c.PoolSize))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate_limit must not be negative, got %v", c.RateLimit))
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("rate_burst must be at least 1 when rate_limit is set, got %d", c.RateBurst))
	}
	return errors.Join(errs...)
}
