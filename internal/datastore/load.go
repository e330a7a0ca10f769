package datastore

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse parses a YAML configuration document and validates its structure.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse datastore config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads and parses a YAML configuration document from disk.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read datastore config %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal serializes a config to YAML.
func Marshal(c *Config) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal datastore config: %w", err)
	}
	return data, nil
}

// WriteFile serializes a config and writes it to the given path.
func WriteFile(c *Config, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write datastore config %s: %w", path, err)
	}
	return nil
}
