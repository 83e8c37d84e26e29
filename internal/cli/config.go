// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk registry of paired SmartCast devices
type Config struct {
	Default string         `yaml:"default,omitempty"`
	Devices []DeviceConfig `yaml:"devices"`
}

// DeviceConfig is one saved device: where it lives and the token issued
// during pairing
type DeviceConfig struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name,omitempty"`
	Type      string `yaml:"type"`
	Address   string `yaml:"address"`
	AuthToken string `yaml:"auth_token,omitempty"`
	PairingID string `yaml:"pairing_id,omitempty"`
}

// NewDefaultConfig returns an empty registry
func NewDefaultConfig() *Config {
	return &Config{Devices: []DeviceConfig{}}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// SaveConfig writes configuration to a YAML file
func SaveConfig(config *Config, filepath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid. An empty device list
// is fine; devices are added as they are paired.
func (c *Config) Validate() error {
	deviceIDs := make(map[string]bool)
	for i, device := range c.Devices {
		if device.ID == "" {
			return fmt.Errorf("device[%d].id is required", i)
		}
		if deviceIDs[device.ID] {
			return fmt.Errorf("duplicate device ID: %s", device.ID)
		}
		deviceIDs[device.ID] = true

		if device.Type == "" {
			return fmt.Errorf("device[%d].type is required", i)
		}
		if device.Type != "tv" && device.Type != "speaker" {
			return fmt.Errorf("device[%d].type must be 'tv' or 'speaker', got %q", i, device.Type)
		}
		if device.Address == "" {
			return fmt.Errorf("device[%d].address is required", i)
		}
	}

	if c.Default != "" && !deviceIDs[c.Default] {
		return fmt.Errorf("default device %q is not in the device list", c.Default)
	}

	return nil
}
