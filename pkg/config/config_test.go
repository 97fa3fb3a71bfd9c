package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) error {
	t.Helper()
	return os.WriteFile(path, []byte(content), 0644)
}

func validConfig() Config {
	cfg := DefaultConfig
	cfg.Network.Adapter = "eth0"
	cfg.Network.CIDR = "192.168.1.0/24"
	cfg.Network.Gateway = "192.168.1.1"
	cfg.Network.DNS = "192.168.1.53"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig

	if cfg.Rotation.Interval != 15*time.Minute {
		t.Errorf("expected 15m rotation interval, got %v", cfg.Rotation.Interval)
	}
	if cfg.Browsing.Users != 3 {
		t.Errorf("expected 3 users, got %d", cfg.Browsing.Users)
	}
	if cfg.Browsing.MaxDepth != 5 {
		t.Errorf("expected max depth 5, got %d", cfg.Browsing.MaxDepth)
	}
	if cfg.Browsing.RequestDelay != 2*time.Minute {
		t.Errorf("expected 2m request delay, got %v", cfg.Browsing.RequestDelay)
	}
	if cfg.Browsing.SiteSwitchInterval != 30*time.Minute {
		t.Errorf("expected 30m site switch interval, got %v", cfg.Browsing.SiteSwitchInterval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing cidr", func(c *Config) { c.Network.CIDR = "" }, "network.cidr"},
		{"bad cidr", func(c *Config) { c.Network.CIDR = "300.1.2.0/24" }, "network.cidr"},
		{"cidr too broad", func(c *Config) { c.Network.CIDR = "0.0.0.0/0" }, "prefix length"},
		{"slash eight ok", func(c *Config) { c.Network.CIDR = "10.0.0.0/8"; c.Network.Gateway = "10.0.0.1"; c.Network.DNS = "10.0.0.53" }, ""},
		{"missing gateway", func(c *Config) { c.Network.Gateway = "" }, "network.gateway"},
		{"bad gateway", func(c *Config) { c.Network.Gateway = "not-an-ip" }, "network.gateway"},
		{"missing dns", func(c *Config) { c.Network.DNS = "" }, "network.dns"},
		{"bad dns", func(c *Config) { c.Network.DNS = "999.9.9.9" }, "network.dns"},
		{"short rotation interval", func(c *Config) { c.Rotation.Interval = 30 * time.Second }, "rotation.interval"},
		{"zero users", func(c *Config) { c.Browsing.Users = 0 }, "browsing.users"},
		{"too many users", func(c *Config) { c.Browsing.Users = 51 }, "browsing.users"},
		{"max users ok", func(c *Config) { c.Browsing.Users = 50 }, ""},
		{"zero depth", func(c *Config) { c.Browsing.MaxDepth = 0 }, "browsing.max_depth"},
		{"negative delay", func(c *Config) { c.Browsing.RequestDelay = -time.Second }, "browsing.request_delay"},
		{"zero site switch", func(c *Config) { c.Browsing.SiteSwitchInterval = 0 }, "browsing.site_switch_interval"},
		{"zero status interval", func(c *Config) { c.Browsing.StatusInterval = 0 }, "browsing.status_interval"},
		{"negative status interval", func(c *Config) { c.Browsing.StatusInterval = -time.Second }, "browsing.status_interval"},
		{"bad log level", func(c *Config) { c.Logging.Level = "LOUD" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestGatewayInsideCIDR(t *testing.T) {
	cfg := validConfig()
	if !cfg.GatewayInsideCIDR() {
		t.Error("192.168.1.1 should be inside 192.168.1.0/24")
	}

	cfg.Network.Gateway = "10.0.0.1"
	if cfg.GatewayInsideCIDR() {
		t.Error("10.0.0.1 should be outside 192.168.1.0/24")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	yml := `
network:
  adapter: ens18
  cidr: 10.20.0.0/24
  gateway: 10.20.0.1
  dns: 10.20.0.53
rotation:
  interval: 5m
browsing:
  users: 7
`
	path := t.TempDir() + "/trafficgen-config.yml"
	if err := writeFile(t, path, yml); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRAFFICGEN_CONFIG_PATH", path)

	cfg, source, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if source != path {
		t.Errorf("expected config source %s, got %s", path, source)
	}
	if cfg.Network.Adapter != "ens18" {
		t.Errorf("adapter not loaded: %s", cfg.Network.Adapter)
	}
	if cfg.Rotation.Interval != 5*time.Minute {
		t.Errorf("interval not loaded: %v", cfg.Rotation.Interval)
	}
	if cfg.Browsing.Users != 7 {
		t.Errorf("users not loaded: %d", cfg.Browsing.Users)
	}
	// untouched sections keep defaults
	if cfg.Browsing.MaxDepth != 5 {
		t.Errorf("default max depth lost: %d", cfg.Browsing.MaxDepth)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	yml := `
network:
  cidr: 10.20.0.0/24
  gateway: 10.20.0.1
  dns: 10.20.0.53
`
	path := t.TempDir() + "/trafficgen-config.yml"
	if err := writeFile(t, path, yml); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRAFFICGEN_CONFIG_PATH", path)
	t.Setenv("TRAFFICGEN_LOG_LEVEL", "DEBUG")

	cfg, _, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("env override not applied: %s", cfg.Logging.Level)
	}
}

func TestLoadConfigInvalidRejected(t *testing.T) {
	yml := `
network:
  cidr: 10.20.0.0/24
  gateway: 10.20.0.1
  dns: 10.20.0.53
browsing:
  users: 500
`
	path := t.TempDir() + "/trafficgen-config.yml"
	if err := writeFile(t, path, yml); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRAFFICGEN_CONFIG_PATH", path)

	if _, _, err := LoadConfig(); err == nil {
		t.Error("expected validation failure for 500 users")
	}
}
