package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default ports of the three logical services.
const (
	DefaultIdentityPort = 5201
	DefaultAssetPort    = 5202
	DefaultHRPort       = 5203
)

// Config carries everything the console needs to reach the services and
// drive its list views.
type Config struct {
	Hostname     string        `yaml:"hostname"`
	IdentityPort int           `yaml:"identityPort"`
	AssetPort    int           `yaml:"assetPort"`
	HRPort       int           `yaml:"hrPort"`
	PageSize     int           `yaml:"pageSize"`
	Debounce     time.Duration `yaml:"debounce"`
	Token        string        `yaml:"token"`
}

// Load builds a Config from the environment with sane defaults.
func Load() *Config {
	cfg := &Config{
		Hostname:     getEnv("AMS_HOSTNAME", "localhost"),
		IdentityPort: getEnvInt("AMS_IDENTITY_PORT", DefaultIdentityPort),
		AssetPort:    getEnvInt("AMS_ASSET_PORT", DefaultAssetPort),
		HRPort:       getEnvInt("AMS_HR_PORT", DefaultHRPort),
		PageSize:     getEnvInt("AMS_PAGE_SIZE", 12),
		Debounce:     500 * time.Millisecond,
		Token:        os.Getenv("AMS_TOKEN"),
	}

	if s := os.Getenv("AMS_DEBOUNCE"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.Debounce = d
		}
	}

	return cfg
}

// LoadFile reads a YAML config file over the environment defaults. File
// values win where set.
func LoadFile(path string) (*Config, error) {
	cfg := Load()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IdentityBase returns the identity service base URL.
func (c *Config) IdentityBase() string { return serviceBase(c.Hostname, c.IdentityPort) }

// AssetBase returns the asset-management service base URL.
func (c *Config) AssetBase() string { return serviceBase(c.Hostname, c.AssetPort) }

// HRBase returns the HR service base URL.
func (c *Config) HRBase() string { return serviceBase(c.Hostname, c.HRPort) }

// serviceBase maps the current hostname to a service URL the way the
// dashboard derives API hosts: localhost and 127.0.0.1 both resolve to
// http://localhost, anything else to http://{hostname}.
func serviceBase(hostname string, port int) string {
	host := hostname
	if host == "localhost" || host == "127.0.0.1" || host == "" {
		host = "localhost"
	}
	return "http://" + host + ":" + strconv.Itoa(port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}
