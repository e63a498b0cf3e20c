package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// YAML returns the config in file form.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), FileName))
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := c.YAML()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
