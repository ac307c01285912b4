package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the per-source credentials. An absent credential disables
// that source; it never fails the pipeline.
type Config struct {
	GitHubToken  string `yaml:"github_token"`
	HIBPAPIKey   string `yaml:"hibp_api_key"`
	GoogleAPIKey string `yaml:"google_api_key"`
	GoogleCX     string `yaml:"google_cx"`
}

// Names of the recognized config keys, in display order.
var Keys = []string{"github_token", "hibp_api_key", "google_api_key", "google_cx"}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".osint-surface")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// 0600 permissions for security (api keys)
	return os.WriteFile(path, data, 0600)
}

// Set assigns a credential by its config-key name.
func (c *Config) Set(name, value string) error {
	switch name {
	case "github_token":
		c.GitHubToken = value
	case "hibp_api_key":
		c.HIBPAPIKey = value
	case "google_api_key":
		c.GoogleAPIKey = value
	case "google_cx":
		c.GoogleCX = value
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", name, strings.Join(Keys, ", "))
	}
	return nil
}

// Get returns a credential by its config-key name.
func (c *Config) Get(name string) string {
	switch name {
	case "github_token":
		return c.GitHubToken
	case "hibp_api_key":
		return c.HIBPAPIKey
	case "google_api_key":
		return c.GoogleAPIKey
	case "google_cx":
		return c.GoogleCX
	}
	return ""
}

// Redact shortens a credential for display.
func Redact(value string) string {
	if value == "" {
		return "(not set)"
	}
	if len(value) <= 6 {
		return "******"
	}
	return value[:3] + "..." + value[len(value)-3:]
}
