package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// EnvAPIBaseURL overrides api_base_url when set.
const EnvAPIBaseURL = "FHSEARCH_API_BASE_URL"

const (
	DefaultRequestTimeout = 15 * time.Second
	DefaultWebHost        = "localhost"
	DefaultWebPort        = "8080"
)

type Config struct {
	APIBaseURL     string    `toml:"api_base_url"`
	RequestTimeout Duration  `toml:"request_timeout"`
	Web            WebConfig `toml:"web"`
}

type WebConfig struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg
}

// LoadConfig reads configPath. A missing file yields the defaults. The
// environment override is applied last.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	config.applyDefaults()
	config.applyEnv()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.RequestTimeout.Duration <= 0 {
		c.RequestTimeout = Duration{DefaultRequestTimeout}
	}
	if c.Web.Host == "" {
		c.Web.Host = DefaultWebHost
	}
	if c.Web.Port == "" {
		c.Web.Port = DefaultWebPort
	}
	c.APIBaseURL = strings.TrimSpace(c.APIBaseURL)
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); v != "" {
		c.APIBaseURL = v
	}
}

// HasAPIBaseURL reports whether a base URL is configured.
func (c *Config) HasAPIBaseURL() bool {
	return c.APIBaseURL != ""
}

// WebAddr returns host:port for the web server.
func (c *Config) WebAddr() string {
	return c.Web.Host + ":" + c.Web.Port
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the commented sample configuration.
func SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

// GetConfigDir returns the configuration directory for fhsearch
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "fhsearch"), nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
