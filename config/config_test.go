package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WAAPI_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.URL != DefaultURL || cfg.Realm != "realm1" || cfg.Service != "wwise-authoring" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Balancer != "hash" || cfg.PoolSize != 2 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if len(cfg.Etcd.Endpoints) != 0 {
		t.Fatalf("expect no etcd endpoints, got %v", cfg.Etcd.Endpoints)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waapi.yaml")
	body := `
url: http://10.0.0.5:8090/waapi
balancer: roundrobin
pool_size: 4
timeout: 3s
etcd:
  endpoints: [10.0.0.2:2379]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WAAPI_POOL_SIZE", "8")
	t.Setenv("WAAPI_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.URL != "http://10.0.0.5:8090/waapi" || cfg.Balancer != "roundrobin" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("expect 3s timeout, got %s", cfg.Timeout)
	}
	if cfg.PoolSize != 8 || cfg.LogLevel != "debug" {
		t.Fatalf("env must override file: %+v", cfg)
	}
	if len(cfg.Etcd.Endpoints) != 1 || cfg.Etcd.Endpoints[0] != "10.0.0.2:2379" {
		t.Fatalf("unexpected endpoints %v", cfg.Etcd.Endpoints)
	}
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waapi.yaml")
	if err := os.WriteFile(path, []byte("realm: studio\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WAAPI_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Realm != "studio" {
		t.Fatalf("expect realm from WAAPI_CONFIG file, got %s", cfg.Realm)
	}
}

func TestLoadEtcdEndpointsFromEnv(t *testing.T) {
	t.Setenv("WAAPI_CONFIG", "")
	t.Setenv("WAAPI_ETCD_ENDPOINTS", "10.0.0.2:2379, 10.0.0.3:2379")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"10.0.0.2:2379", "10.0.0.3:2379"}
	if strings.Join(cfg.Etcd.Endpoints, "|") != strings.Join(want, "|") {
		t.Fatalf("expect %v, got %v", want, cfg.Etcd.Endpoints)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expect error for unreadable config file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"ok", func(*Config) {}, ""},
		{"no target", func(c *Config) { c.URL = "" }, "url or etcd.endpoints"},
		{"etcd only", func(c *Config) { c.URL = ""; c.Etcd.Endpoints = []string{"e:2379"} }, ""},
		{"pool", func(c *Config) { c.PoolSize = 0 }, "pool_size"},
		{"timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"burst", func(c *Config) { c.RateLimit = 5; c.RateBurst = 0 }, "rate_burst"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expect error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}
