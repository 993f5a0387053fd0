package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Host modes
const (
	HostDesktop  = "desktop"
	HostHeadless = "headless"
)

// Config represents application configuration
type Config struct {
	Vault    VaultConfig    `mapstructure:"vault"`
	Settings SettingsConfig `mapstructure:"settings"`
	Log      LogConfig      `mapstructure:"log"`
	Host     HostConfig     `mapstructure:"host"`
}

// VaultConfig represents the document vault
type VaultConfig struct {
	Path string `mapstructure:"path"`
	Name string `mapstructure:"name"` // Defaults to the vault directory name
}

// SettingsConfig represents settings persistence
type SettingsConfig struct {
	File  string `mapstructure:"file"`  // .json, .yaml or .toml; defaults to <vault>/.vault-tray/settings.json
	Watch bool   `mapstructure:"watch"` // Apply external edits while running
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"` // Startup level; the logLevel setting takes over once loaded
}

// HostConfig represents the window host
type HostConfig struct {
	Mode   string `mapstructure:"mode"` // "desktop" or "headless"
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Hidden bool   `mapstructure:"hidden"` // Start with the main window hidden
}

// Load loads configuration from file. With no explicit path a missing
// config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("settings.watch", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("host.mode", HostDesktop)
	v.SetDefault("host.title", "Vault")
	v.SetDefault("host.width", 1024)
	v.SetDefault("host.height", 768)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.vault-tray")
	}

	// Read environment variables
	v.SetEnvPrefix("VAULT_TRAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Vault.Path == "" {
		return fmt.Errorf("vault.path is required")
	}

	switch c.Host.Mode {
	case HostDesktop, HostHeadless:
	default:
		return fmt.Errorf("host.mode must be '%s' or '%s', got '%s'", HostDesktop, HostHeadless, c.Host.Mode)
	}

	if c.Host.Width < 0 || c.Host.Height < 0 {
		return fmt.Errorf("host.width and host.height must not be negative")
	}

	return nil
}

// GetVaultName returns the vault display name
func (c *VaultConfig) GetVaultName() string {
	if c.Name != "" {
		return c.Name
	}
	return filepath.Base(filepath.Clean(c.Path))
}

// GetSettingsFile returns the settings file path
func (c *Config) GetSettingsFile() string {
	if c.Settings.File != "" {
		return c.Settings.File
	}
	return filepath.Join(c.Vault.Path, ".vault-tray", "settings.json")
}

// ExpandEnvVars expands environment variables and a leading ~ in paths
func (c *Config) ExpandEnvVars() {
	c.Vault.Path = expandPath(c.Vault.Path)
	c.Settings.File = expandPath(c.Settings.File)
	c.Log.File = expandPath(c.Log.File)
}

func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
