// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvDatabaseDSN overrides database.dsn when set.
const EnvDatabaseDSN = "TOKENSIM_DATABASE_DSN"

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(ConfigFile())
}

func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDatabaseDSN)); v != "" {
		cfg.Database.DSN = v
	}
}

func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, ConfigFile())
}

func SaveConfigTo(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadOrDefault loads path (or the default config file when path is empty),
// falling back to defaults plus environment overrides.
func LoadOrDefault(path string) *Config {
	if path == "" {
		path = ConfigFile()
	}
	cfg, err := LoadConfigFrom(path)
	if err != nil {
		cfg = DefaultConfig()
		applyEnv(cfg)
	}
	return cfg
}
