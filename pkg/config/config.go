package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/records"
)

// Config represents the pagedec configuration
type Config struct {
	DataDir  string   `yaml:"data_dir"`
	Port     int      `yaml:"port"`
	Bind     string   `yaml:"bind"`
	Receiver Receiver `yaml:"receiver"`
	Logging  Logging  `yaml:"logging"`
}

// Receiver describes the device whose page dumps are being decoded.
// Page dumps are not self-describing, so the generation must match
// the device the dump came from.
type Receiver struct {
	Generation string `yaml:"generation"`
	// Epoch optionally overrides the device epoch as an RFC3339
	// instant. Empty means the production receiver epoch.
	Epoch string `yaml:"epoch"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Receiver: Receiver{
			Generation: "rev2",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, err := config.Generation(); err != nil {
		return nil, err
	}
	if _, err := config.Epoch(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Generation resolves the configured page format generation.
func (c *Config) Generation() (records.Generation, error) {
	return records.ParseGeneration(c.Receiver.Generation)
}

// Epoch resolves the configured device epoch.
func (c *Config) Epoch() (devicetime.Epoch, error) {
	if c.Receiver.Epoch == "" {
		return devicetime.Receiver, nil
	}
	ref, err := time.Parse(time.RFC3339, c.Receiver.Epoch)
	if err != nil {
		return devicetime.Epoch{}, fmt.Errorf("invalid receiver epoch: %w", err)
	}
	return devicetime.NewEpoch(ref), nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./pagedec.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "pagedec")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
