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

// Package projects loads the tokenized project listing shown next to the
// wizard. The listing comes from Postgres, a local cache, or built-in
// fixtures, in that order.
package projects

import (
	"fmt"
	"strings"

	"github.com/cloud-exit/tokensim/static"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Property is one row of the properties table. Every column is nullable
// upstream; applyDefaults fills the gaps.
type Property struct {
	ID          string  `json:"id" yaml:"id" validate:"required"`
	Title       string  `json:"title" yaml:"title"`
	Location    string  `json:"location" yaml:"location"`
	AssetType   string  `json:"asset_type" yaml:"asset_type"`
	Valuation   float64 `json:"valuation" yaml:"valuation" validate:"gte=0"`
	TokenPrice  float64 `json:"token_price" yaml:"token_price" validate:"gte=0"`
	TotalTokens int64   `json:"total_tokens" yaml:"total_tokens" validate:"gte=0"`
	TokensSold  int64   `json:"tokens_sold" yaml:"tokens_sold" validate:"gte=0,ltefield=TotalTokens"`
	AnnualYield float64 `json:"annual_yield" yaml:"annual_yield" validate:"gte=0,lte=100"`
	Status      string  `json:"status" yaml:"status" validate:"oneof=draft live funded closed"`
	ImageURL    string  `json:"image_url,omitempty" yaml:"image_url,omitempty" validate:"omitempty,url"`
}

func (p *Property) applyDefaults() {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		p.Title = "Untitled"
	}
	if strings.TrimSpace(p.Location) == "" {
		p.Location = "Unknown"
	}
	if p.AssetType == "" {
		p.AssetType = "other"
	}
	p.Status = strings.ToLower(strings.TrimSpace(p.Status))
	if p.Status == "" {
		p.Status = "draft"
	}
}

// FundedPct returns the share of tokens sold, 0-100.
func (p Property) FundedPct() float64 {
	if p.TotalTokens <= 0 {
		return 0
	}
	return float64(p.TokensSold) / float64(p.TotalTokens) * 100
}

var validate = validator.New()

// clean defaults every record and drops the ones that still fail
// validation. dropped receives the reason for each removed record.
func clean(in []Property, dropped func(Property, error)) []Property {
	out := make([]Property, 0, len(in))
	for _, p := range in {
		p.applyDefaults()
		if err := validate.Struct(p); err != nil {
			if dropped != nil {
				dropped(p, err)
			}
			continue
		}
		out = append(out, p)
	}
	return out
}

// Fixtures returns the built-in listing.
func Fixtures() ([]Property, error) {
	var raw []Property
	if err := yaml.Unmarshal(static.FixtureProperties, &raw); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return clean(raw, nil), nil
}
