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
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the on-disk configuration (config.yaml).
type Config struct {
	Version  int            `yaml:"version" validate:"gte=1"`
	Profile  ProfileConfig  `yaml:"profile"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Wizard   WizardConfig   `yaml:"wizard"`
}

// ProfileConfig identifies the local user.
type ProfileConfig struct {
	Name  string `yaml:"name,omitempty" validate:"max=80"`
	Email string `yaml:"email,omitempty" validate:"omitempty,email"`
}

// DatabaseConfig points at the Postgres database holding project listings.
// An empty DSN means fixtures only.
type DatabaseConfig struct {
	DSN     string        `yaml:"dsn,omitempty"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0s,lte=1m"`
}

// CacheConfig controls the local listing cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl" validate:"gte=0s"`
}

// WizardConfig holds wizard defaults.
type WizardConfig struct {
	Pro             bool          `yaml:"pro"`
	DefaultCategory string        `yaml:"default_category,omitempty"`
	DeployStepDelay time.Duration `yaml:"deploy_step_delay" validate:"gt=0s,lte=10s"`
	AnalysisDelay   time.Duration `yaml:"analysis_delay" validate:"gt=0s,lte=10s"`
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
