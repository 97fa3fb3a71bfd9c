package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"trafficgen/pkg/errors"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Network  NetworkConfig  `yaml:"network" json:"network"`
	Rotation RotationConfig `yaml:"rotation" json:"rotation"`
	Browsing BrowsingConfig `yaml:"browsing" json:"browsing"`
	Browser  BrowserConfig  `yaml:"browser" json:"browser"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// NetworkConfig holds the target adapter and the identity address space
type NetworkConfig struct {
	Adapter string `yaml:"adapter" json:"adapter"`
	CIDR    string `yaml:"cidr" json:"cidr"`
	Gateway string `yaml:"gateway" json:"gateway"`
	DNS     string `yaml:"dns" json:"dns"`
}

// RotationConfig holds identity rotation timing
type RotationConfig struct {
	Interval    time.Duration `yaml:"interval" json:"interval"`
	PauseSettle time.Duration `yaml:"pause_settle" json:"pause_settle"`
	LinkSettle  time.Duration `yaml:"link_settle" json:"link_settle"`
}

// BrowsingConfig holds the virtual user behavior settings
type BrowsingConfig struct {
	SitesFile          string        `yaml:"sites_file" json:"sites_file"`
	Users              int           `yaml:"users" json:"users"`
	MaxDepth           int           `yaml:"max_depth" json:"max_depth"`
	RequestDelay       time.Duration `yaml:"request_delay" json:"request_delay"`
	SiteSwitchInterval time.Duration `yaml:"site_switch_interval" json:"site_switch_interval"`
	StatusInterval     time.Duration `yaml:"status_interval" json:"status_interval"`
}

// BrowserConfig holds HTTP client behavior settings
type BrowserConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
	MaxRedirects   int           `yaml:"max_redirects" json:"max_redirects"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Output string `yaml:"output" json:"output"`
}

// DefaultConfig provides default configuration values
var DefaultConfig = Config{
	Version: "1.0",
	Network: NetworkConfig{
		Adapter: "",
		CIDR:    "",
		Gateway: "",
		DNS:     "",
	},
	Rotation: RotationConfig{
		Interval:    15 * time.Minute,
		PauseSettle: 5 * time.Second,
		LinkSettle:  2 * time.Second,
	},
	Browsing: BrowsingConfig{
		SitesFile:          "/etc/trafficgen/sites.txt",
		Users:              3,
		MaxDepth:           5,
		RequestDelay:       2 * time.Minute,
		SiteSwitchInterval: 30 * time.Minute,
		StatusInterval:     5 * time.Second,
	},
	Browser: BrowserConfig{
		ConnectTimeout: 30 * time.Second,
		RequestTimeout: 60 * time.Second,
		MaxRedirects:   10,
	},
	Logging: LoggingConfig{
		Level:  "INFO",
		Format: "text",
		Output: "stdout",
	},
}

// LoadConfig loads the configuration from file and environment variables.
//  1. Path specified in TRAFFICGEN_CONFIG_PATH environment variable
//  2. /etc/trafficgen/trafficgen-config.yml
//  3. ./config/trafficgen-config.yml
//  4. ./trafficgen-config.yml
//
// Applies environment variable overrides for logging. Validates the final
// configuration before returning.
// Returns (config, configPath, error) - configPath indicates source of configuration.
func LoadConfig() (*Config, string, error) {
	config := DefaultConfig

	path, err := loadFromFile(&config)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config file: %w", err)
	}

	if val := os.Getenv("TRAFFICGEN_LOG_LEVEL"); val != "" {
		config.Logging.Level = val
	}
	if val := os.Getenv("TRAFFICGEN_LOG_FORMAT"); val != "" {
		config.Logging.Format = val
	}

	if e := config.Validate(); e != nil {
		return nil, "", fmt.Errorf("configuration validation failed: %w", e)
	}

	return &config, path, nil
}

// loadFromFile loads configuration from the first available YAML file.
// Does not return error if no file is found - uses defaults instead.
func loadFromFile(config *Config) (string, error) {
	configPaths := []string{
		os.Getenv("TRAFFICGEN_CONFIG_PATH"),
		"/etc/trafficgen/trafficgen-config.yml",
		"./config/trafficgen-config.yml",
		"./trafficgen-config.yml",
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return "", fmt.Errorf("failed to parse config file %s: %w", path, err)
		}

		return path, nil
	}

	return "built-in defaults (no config file found)", nil
}

// Validate performs validation of the configuration. The adapter itself is
// verified against the enumerated adapter list at startup; here we only check
// that the values are well-formed.
func (c *Config) Validate() error {
	if c.Network.CIDR == "" {
		return fmt.Errorf("%w: network.cidr is required", errors.ErrInvalidConfig)
	}
	_, block, err := net.ParseCIDR(c.Network.CIDR)
	if err != nil {
		return fmt.Errorf("%w: invalid network.cidr %q: %v", errors.ErrInvalidConfig, c.Network.CIDR, err)
	}
	if ones, _ := block.Mask.Size(); ones < 8 {
		return fmt.Errorf("%w: network.cidr prefix length must be at least /8", errors.ErrInvalidConfig)
	}

	if c.Network.Gateway == "" {
		return fmt.Errorf("%w: network.gateway is required", errors.ErrInvalidConfig)
	}
	if net.ParseIP(c.Network.Gateway) == nil {
		return fmt.Errorf("%w: invalid network.gateway %q", errors.ErrInvalidConfig, c.Network.Gateway)
	}

	if c.Network.DNS == "" {
		return fmt.Errorf("%w: network.dns is required", errors.ErrInvalidConfig)
	}
	if net.ParseIP(c.Network.DNS) == nil {
		return fmt.Errorf("%w: invalid network.dns %q", errors.ErrInvalidConfig, c.Network.DNS)
	}

	if c.Rotation.Interval < time.Minute {
		return fmt.Errorf("%w: rotation.interval must be at least 1 minute", errors.ErrInvalidConfig)
	}

	if c.Browsing.Users < 1 || c.Browsing.Users > 50 {
		return fmt.Errorf("%w: browsing.users must be between 1 and 50", errors.ErrInvalidConfig)
	}

	if c.Browsing.MaxDepth < 1 {
		return fmt.Errorf("%w: browsing.max_depth must be at least 1", errors.ErrInvalidConfig)
	}

	if c.Browsing.RequestDelay < 0 {
		return fmt.Errorf("%w: browsing.request_delay cannot be negative", errors.ErrInvalidConfig)
	}

	if c.Browsing.SiteSwitchInterval <= 0 {
		return fmt.Errorf("%w: browsing.site_switch_interval must be positive", errors.ErrInvalidConfig)
	}

	if c.Browsing.StatusInterval <= 0 {
		return fmt.Errorf("%w: browsing.status_interval must be positive", errors.ErrInvalidConfig)
	}

	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}

	return nil
}

// ParseLogLevel checks that a logging level is one we understand
func ParseLogLevel(level string) (string, error) {
	switch level {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		return level, nil
	default:
		return "", fmt.Errorf("unknown log level: %s", level)
	}
}

// GatewayInsideCIDR reports whether the configured gateway falls inside the
// configured address block. A gateway outside the block is allowed but the
// default route needs the onlink fallback to be installed.
func (c *Config) GatewayInsideCIDR() bool {
	_, block, err := net.ParseCIDR(c.Network.CIDR)
	if err != nil {
		return false
	}
	gw := net.ParseIP(c.Network.Gateway)
	if gw == nil {
		return false
	}
	return block.Contains(gw)
}
