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

// Package preset holds the static asset-class, step and country tables that
// drive the tokenization wizard.
package preset

import "strings"

// Category is an asset-category key.
type Category string

const (
	RealEstate Category = "Real Estate"
	Business   Category = "Business"
	Art        Category = "Art"
	Debt       Category = "Debt"
	Energy     Category = "Energy"
	Funds      Category = "Funds"
)

// AssetClassPreset describes which steps a category shows and which field
// values it seeds into the wizard state.
type AssetClassPreset struct {
	Category    Category
	Description string
	Steps       []StepID                  // enabled steps
	Optional    []StepID                  // shown, but not required to finish
	Defaults    map[string]map[string]any // section name -> field defaults
}

var allSteps = []StepID{
	StepVision, StepJurisdiction, StepAsset, StepFinancials, StepLegal,
	StepToken, StepPayout, StepDistribution, StepReports,
}

// Presets is the asset-class table in display order.
var Presets = []AssetClassPreset{
	{
		Category:    RealEstate,
		Description: "Residential and commercial property",
		Steps:       allSteps,
		Optional:    []StepID{StepFinancials},
		Defaults: map[string]map[string]any{
			"projectInfo":    {"assetType": "real_estate"},
			"proContext":     {"valuationMethod": "NOI_cap_rate"},
			"proMarketData":  {"valuationMethod": "Income Approach", "marketTrend": "up"},
			"proFinancials":  {"capRate": 5.5},
			"proTokenDesign": {"tokenStandard": "ERC-3643"},
			"proPayout":      {"frequency": "quarterly", "currency": "USDC"},
		},
	},
	{
		Category:    Business,
		Description: "Private company equity and revenue shares",
		Steps:       allSteps,
		Optional:    []StepID{StepPayout},
		Defaults: map[string]map[string]any{
			"projectInfo":    {"assetType": "business_equity"},
			"proContext":     {"valuationMethod": "DCF"},
			"proMarketData":  {"valuationMethod": "Discounted Cash Flow", "marketTrend": "flat"},
			"proTokenDesign": {"tokenStandard": "ERC-1400"},
			"proPayout":      {"frequency": "annual", "currency": "USDC"},
		},
	},
	{
		Category:    Art,
		Description: "Fine art and collectibles",
		Steps: []StepID{
			StepVision, StepJurisdiction, StepAsset, StepLegal,
			StepToken, StepDistribution, StepReports,
		},
		Defaults: map[string]map[string]any{
			"projectInfo":    {"assetType": "art"},
			"proContext":     {"valuationMethod": "art_appraisal"},
			"proMarketData":  {"valuationMethod": "Art Appraisal", "provenanceRequired": true},
			"proTokenDesign": {"tokenStandard": "ERC-3643"},
		},
	},
	{
		Category:    Debt,
		Description: "Loans, notes and receivables",
		Steps:       allSteps,
		Optional:    []StepID{StepAsset},
		Defaults: map[string]map[string]any{
			"projectInfo":    {"assetType": "debt"},
			"proContext":     {"valuationMethod": "yield_to_maturity"},
			"proMarketData":  {"valuationMethod": "Yield to Maturity"},
			"proFinancials":  {"couponRate": 7.0},
			"proTokenDesign": {"tokenStandard": "ERC-3643"},
			"proPayout":      {"frequency": "monthly", "currency": "USDC"},
		},
	},
	{
		Category:    Energy,
		Description: "Solar, wind and storage projects",
		Steps:       allSteps,
		Defaults: map[string]map[string]any{
			"projectInfo":    {"assetType": "energy"},
			"proContext":     {"valuationMethod": "ppa_dcf"},
			"proMarketData":  {"valuationMethod": "PPA-backed DCF", "marketTrend": "up"},
			"proTokenDesign": {"tokenStandard": "ERC-1400"},
			"proPayout":      {"frequency": "quarterly", "currency": "EURC"},
		},
	},
	{
		Category:    Funds,
		Description: "Fund units and feeder vehicles",
		Steps: []StepID{
			StepVision, StepJurisdiction, StepFinancials, StepLegal,
			StepToken, StepPayout, StepDistribution, StepReports,
		},
		Defaults: map[string]map[string]any{
			"projectInfo":    {"assetType": "fund"},
			"proContext":     {"valuationMethod": "nav"},
			"proMarketData":  {"valuationMethod": "Net Asset Value"},
			"proTokenDesign": {"tokenStandard": "ERC-3643"},
			"proPayout":      {"frequency": "quarterly", "currency": "USDC"},
			"compliance":     {"investorTypes": []string{"professional"}},
		},
	},
}

// Categories returns the category keys in display order.
func Categories() []Category {
	out := make([]Category, 0, len(Presets))
	for _, p := range Presets {
		out = append(out, p.Category)
	}
	return out
}

// Lookup returns the preset for a category. Matching is case-insensitive.
func Lookup(c Category) (AssetClassPreset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(string(p.Category), strings.TrimSpace(string(c))) {
			return p, true
		}
	}
	return AssetClassPreset{}, false
}

// IsOptional reports whether step id is optional for the preset.
func (p AssetClassPreset) IsOptional(id StepID) bool {
	for _, o := range p.Optional {
		if o == id {
			return true
		}
	}
	return false
}

// DefaultSections returns the section names seeded by the preset, sorted in
// the order they should be applied.
func (p AssetClassPreset) DefaultSections() []string {
	var out []string
	for _, name := range sectionOrder {
		if _, ok := p.Defaults[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

var sectionOrder = []string{
	"projectInfo", "jurisdiction", "property", "compliance", "tokenAllocation",
	"distribution", "proContext", "proMarketData", "proFinancials", "proLegal",
	"proTokenDesign", "proPayout", "proReports",
}
