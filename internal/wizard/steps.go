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

package wizard

import (
	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/spv"
	"github.com/cloud-exit/tokensim/internal/state"
)

// StepSpec is everything the wizard needs to drive one step: the fields of
// each tab, the validity rule and the footer summary.
type StepSpec struct {
	ID   preset.StepID
	Tabs map[string][]Field // tab id -> fields
	// Rule is a CEL expression over the state snapshot, bound to "s".
	Rule    string
	Summary func(state.Snapshot) map[string]string
}

// Fields returns the fields of one tab.
func (s StepSpec) Fields(tab string) []Field { return s.Tabs[tab] }

var valuationMethods = []string{"NOI_cap_rate", "DCF", "art_appraisal", "yield_to_maturity", "ppa_dcf", "nav"}

var marketMethods = []string{
	"Income Approach", "Sales Comparison", "Discounted Cash Flow", "Art Appraisal",
	"Yield to Maturity", "PPA-backed DCF", "Net Asset Value",
}

func legalFormsOf(sn state.Snapshot) []string {
	r, ok := spv.Lookup(sn[state.Jurisdiction].String(spv.FieldCountry))
	if !ok {
		return nil
	}
	return r.LegalForms
}

func spvCountries(state.Snapshot) []string { return spv.Countries() }

var stepSpecs = map[preset.StepID]StepSpec{
	preset.StepVision: {
		ID: preset.StepVision,
		Tabs: map[string][]Field{
			"overview": {
				{Section: state.ProjectInfo, Key: "name", Label: "Project name", Kind: KindText},
				{Section: state.ProjectInfo, Key: "category", Label: "Category", Kind: KindText, ReadOnly: true},
				{Section: state.ProjectInfo, Key: "description", Label: "Description", Kind: KindText},
			},
			"goals": {
				{Section: state.ProjectInfo, Key: "goal", Label: "Primary goal", Kind: KindChoice,
					Options: []string{"raise_capital", "liquidity", "community", "refinancing"}},
				{Section: state.ProjectInfo, Key: "targetRaise", Label: "Target raise", Kind: KindNumber},
				{Section: state.ProContext, Key: "horizonYears", Label: "Horizon (years)", Kind: KindNumber},
			},
			"valuation": {
				{Section: state.ProjectInfo, Key: "valuation", Label: "Asset valuation", Kind: KindNumber},
				{Section: state.ProContext, Key: "valuationMethod", Label: "Valuation method", Kind: KindChoice, Options: valuationMethods},
			},
		},
		Rule: `has(s.projectInfo.category) && has(s.proContext.valuationMethod) &&
			has(s.projectInfo.name) && s.projectInfo.name != "" &&
			has(s.projectInfo.valuation) && s.projectInfo.valuation > 0.0`,
		Summary: func(sn state.Snapshot) map[string]string {
			return summarize(sn,
				ref(state.ProjectInfo, "name", "Project"),
				ref(state.ProjectInfo, "category", "Category"),
				ref(state.ProjectInfo, "valuation", "Valuation"),
				ref(state.ProContext, "valuationMethod", "Method"),
			)
		},
	},
	preset.StepJurisdiction: {
		ID: preset.StepJurisdiction,
		Tabs: map[string][]Field{
			"country": {
				{Section: state.Jurisdiction, Key: spv.FieldCountry, Label: "SPV country", Kind: KindChoice, OptionsFrom: spvCountries},
				{Section: state.Jurisdiction, Key: "investorCountries", Label: "Investor countries", Kind: KindList},
			},
			"spv": {
				{Section: state.Jurisdiction, Key: spv.FieldLegalForm, Label: "Legal form", Kind: KindChoice, OptionsFrom: legalFormsOf},
				{Section: state.Jurisdiction, Key: spv.FieldRole, Label: "SPV role", Kind: KindText, ReadOnly: true},
				{Section: state.Jurisdiction, Key: spv.FieldDirector, Label: "Local director required", Kind: KindBool, ReadOnly: true},
				{Section: state.Jurisdiction, Key: spv.FieldComplexity, Label: "Setup complexity", Kind: KindText, ReadOnly: true},
			},
			"regulation": {
				{Section: state.Jurisdiction, Key: "regime", Label: "Regulatory regime", Kind: KindChoice,
					Options: []string{"MiCA", "ECSP", "Prospectus exemption", "Reg D", "Reg S", "Reg A+"}},
				{Section: state.Jurisdiction, Key: "passporting", Label: "EU passporting", Kind: KindBool},
			},
		},
		Rule: `has(s.jurisdiction.spvCountry) && has(s.jurisdiction.spvLegalForm) && has(s.jurisdiction.regime)`,
		Summary: func(sn state.Snapshot) map[string]string {
			return summarize(sn,
				ref(state.Jurisdiction, spv.FieldCountry, "Country"),
				ref(state.Jurisdiction, spv.FieldLegalForm, "Legal form"),
				ref(state.Jurisdiction, spv.FieldComplexity, "Complexity"),
				ref(state.Jurisdiction, "regime", "Regime"),
			)
		},
	},
	preset.StepAsset: {
		ID: preset.StepAsset,
		Tabs: map[string][]Field{
			"details": {
				{Section: state.Property, Key: "location", Label: "Location", Kind: KindText},
				{Section: state.Property, Key: "size", Label: "Size (sqm / units)", Kind: KindNumber},
				{Section: state.Property, Key: "yearBuilt", Label: "Year built / created", Kind: KindNumber},
				{Section: state.Property, Key: "condition", Label: "Condition", Kind: KindChoice,
					Options: []string{"new", "good", "needs_work"}},
			},
			"market": {
				{Section: state.ProMarketData, Key: "valuationMethod", Label: "Market valuation", Kind: KindChoice, Options: marketMethods},
				{Section: state.ProMarketData, Key: "marketTrend", Label: "Market trend", Kind: KindChoice,
					Options: []string{"up", "flat", "down"}},
				{Section: state.ProMarketData, Key: "comparables", Label: "Comparables found", Kind: KindNumber},
				{Section: state.ProMarketData, Key: "provenanceRequired", Label: "Provenance required", Kind: KindBool},
			},
		},
		Rule: `has(s.property.location) && s.property.location != "" && has(s.proMarketData.valuationMethod)`,
		Summary: func(sn state.Snapshot) map[string]string {
			return summarize(sn,
				ref(state.Property, "location", "Location"),
				ref(state.ProMarketData, "valuationMethod", "Market valuation"),
				ref(state.ProMarketData, "marketTrend", "Trend"),
			)
		},
	},
	preset.StepFinancials: {
		ID: preset.StepFinancials,
		Tabs: map[string][]Field{
			"revenue": {
				{Section: state.ProFinancials, Key: "annualRevenue", Label: "Annual revenue", Kind: KindNumber},
				{Section: state.ProFinancials, Key: "growthRate", Label: "Growth rate %", Kind: KindNumber},
			},
			"costs": {
				{Section: state.ProFinancials, Key: "operatingCosts", Label: "Operating costs", Kind: KindNumber},
				{Section: state.ProFinancials, Key: "capex", Label: "Capex", Kind: KindNumber},
			},
			"projections": {
				{Section: state.ProFinancials, Key: "capRate", Label: "Cap rate %", Kind: KindNumber},
				{Section: state.ProFinancials, Key: "couponRate", Label: "Coupon rate %", Kind: KindNumber},
				{Section: state.ProFinancials, Key: "targetIrr", Label: "Target IRR %", Kind: KindNumber},
			},
		},
		Rule: `has(s.proFinancials.annualRevenue) && s.proFinancials.annualRevenue >= 0.0 &&
			(!has(s.proFinancials.operatingCosts) || s.proFinancials.operatingCosts >= 0.0)`,
		Summary: func(sn state.Snapshot) map[string]string {
			out := summarize(sn,
				ref(state.ProFinancials, "annualRevenue", "Revenue"),
				ref(state.ProFinancials, "operatingCosts", "Costs"),
				ref(state.ProFinancials, "capRate", "Cap rate %"),
			)
			fin := sn[state.ProFinancials]
			if fin.Has("annualRevenue") {
				out["NOI"] = FormatNumber(fin.Float("annualRevenue") - fin.Float("operatingCosts"))
			}
			return out
		},
	},
	preset.StepLegal: {
		ID: preset.StepLegal,
		Tabs: map[string][]Field{
			"structure": {
				{Section: state.ProLegal, Key: "structure", Label: "Ownership structure", Kind: KindChoice,
					Options: []string{"SPV equity", "Debt note", "Direct co-ownership", "Fund units"}},
				{Section: state.ProLegal, Key: "governingLaw", Label: "Governing law", Kind: KindText},
			},
			"compliance": {
				{Section: state.Compliance, Key: "investorTypes", Label: "Investor types", Kind: KindList,
					Options: []string{"retail", "professional", "qualified"}},
				{Section: state.Compliance, Key: "kycRequired", Label: "KYC required", Kind: KindBool},
				{Section: state.Compliance, Key: "minInvestment", Label: "Minimum investment", Kind: KindNumber},
			},
			"documents": {
				{Section: state.ProLegal, Key: "documents", Label: "Documents", Kind: KindList,
					Options: []string{"Articles of association", "Whitepaper", "Term sheet", "Subscription agreement", "KID"}},
			},
		},
		Rule: `has(s.proLegal.structure) && has(s.compliance.investorTypes) && size(s.compliance.investorTypes) > 0`,
		Summary: func(sn state.Snapshot) map[string]string {
			return summarize(sn,
				ref(state.ProLegal, "structure", "Structure"),
				ref(state.Compliance, "investorTypes", "Investors"),
				ref(state.Compliance, "kycRequired", "KYC"),
			)
		},
	},
	preset.StepToken: {
		ID: preset.StepToken,
		Tabs: map[string][]Field{
			"standard": {
				{Section: state.ProTokenDesign, Key: "tokenStandard", Label: "Token standard", Kind: KindChoice,
					Options: []string{"ERC-3643", "ERC-1400", "ERC-20"}},
				{Section: state.ProTokenDesign, Key: "chain", Label: "Chain", Kind: KindChoice,
					Options: []string{"Ethereum", "Polygon", "Base", "Arbitrum"}},
				{Section: state.ProTokenDesign, Key: "symbol", Label: "Symbol", Kind: KindText},
			},
			"supply": {
				{Section: state.ProTokenDesign, Key: "totalSupply", Label: "Total supply", Kind: KindNumber},
				{Section: state.ProTokenDesign, Key: "tokenPrice", Label: "Price per token", Kind: KindNumber, ReadOnly: true},
			},
			"allocation": {
				{Section: state.TokenAllocation, Key: "investors", Label: "Investors %", Kind: KindNumber},
				{Section: state.TokenAllocation, Key: "sponsor", Label: "Sponsor %", Kind: KindNumber},
				{Section: state.TokenAllocation, Key: "reserve", Label: "Reserve %", Kind: KindNumber},
			},
		},
		Rule: `has(s.proTokenDesign.tokenStandard) &&
			has(s.proTokenDesign.totalSupply) && s.proTokenDesign.totalSupply > 0.0 &&
			(has(s.tokenAllocation.investors) ? s.tokenAllocation.investors : 0.0) +
			(has(s.tokenAllocation.sponsor) ? s.tokenAllocation.sponsor : 0.0) +
			(has(s.tokenAllocation.reserve) ? s.tokenAllocation.reserve : 0.0) <= 100.0`,
		Summary: func(sn state.Snapshot) map[string]string {
			out := summarize(sn,
				ref(state.ProTokenDesign, "tokenStandard", "Standard"),
				ref(state.ProTokenDesign, "symbol", "Symbol"),
				ref(state.ProTokenDesign, "totalSupply", "Supply"),
			)
			if price, err := TokenPrice(sn[state.ProjectInfo].Float("valuation"), sn[state.ProTokenDesign].Float("totalSupply")); err == nil {
				out["Price"] = price.StringFixed(2)
			}
			alloc := sn[state.TokenAllocation]
			if len(alloc) > 0 {
				out["Allocated %"] = FormatNumber(alloc.Float("investors") + alloc.Float("sponsor") + alloc.Float("reserve"))
			}
			return out
		},
	},
	preset.StepPayout: {
		ID: preset.StepPayout,
		Tabs: map[string][]Field{
			"schedule": {
				{Section: state.ProPayout, Key: "frequency", Label: "Frequency", Kind: KindChoice,
					Options: []string{"monthly", "quarterly", "semiannual", "annual"}},
				{Section: state.ProPayout, Key: "currency", Label: "Payout currency", Kind: KindChoice,
					Options: []string{"USDC", "EURC", "EUR", "USD"}},
			},
			"waterfall": {
				{Section: state.ProPayout, Key: "waterfall", Label: "Waterfall", Kind: KindChoice,
					Options: []string{"pro_rata", "preferred_return", "senior_junior"}},
				{Section: state.ProPayout, Key: "preferredReturn", Label: "Preferred return %", Kind: KindNumber},
			},
		},
		Rule: `has(s.proPayout.frequency) && has(s.proPayout.currency)`,
		Summary: func(sn state.Snapshot) map[string]string {
			return summarize(sn,
				ref(state.ProPayout, "frequency", "Frequency"),
				ref(state.ProPayout, "currency", "Currency"),
				ref(state.ProPayout, "waterfall", "Waterfall"),
			)
		},
	},
	preset.StepDistribution: {
		ID: preset.StepDistribution,
		Tabs: map[string][]Field{
			"channels": {
				{Section: state.Distribution, Key: "channels", Label: "Channels", Kind: KindList,
					Options: []string{"Own platform", "Partner marketplace", "Private placement", "Secondary ATS"}},
				{Section: state.Distribution, Key: "marketingBudget", Label: "Marketing budget", Kind: KindNumber},
			},
			"investors": {
				{Section: state.Distribution, Key: "targetInvestors", Label: "Target investors", Kind: KindNumber},
				{Section: state.Distribution, Key: "lockupMonths", Label: "Lock-up (months)", Kind: KindNumber},
			},
		},
		Rule: `has(s.distribution.channels) && size(s.distribution.channels) > 0`,
		Summary: func(sn state.Snapshot) map[string]string {
			return summarize(sn,
				ref(state.Distribution, "channels", "Channels"),
				ref(state.Distribution, "targetInvestors", "Investors"),
			)
		},
	},
	preset.StepReports: {
		ID: preset.StepReports,
		Tabs: map[string][]Field{
			"summary": {
				{Section: state.ProReports, Key: "includeAnalysis", Label: "Include analysis", Kind: KindBool},
				{Section: state.ProReports, Key: "reportingFrequency", Label: "Investor reporting", Kind: KindChoice,
					Options: []string{"monthly", "quarterly", "annual"}},
			},
			"export": {
				{Section: state.ProReports, Key: "exportPath", Label: "Export file", Kind: KindText},
			},
		},
		Rule: `true`,
		Summary: func(sn state.Snapshot) map[string]string {
			return summarize(sn,
				ref(state.ProReports, "reportingFrequency", "Reporting"),
				ref(state.ProReports, "exportPath", "Export"),
			)
		},
	},
}

// Spec returns the spec of a step.
func Spec(id preset.StepID) (StepSpec, bool) {
	s, ok := stepSpecs[id]
	return s, ok
}

type fieldRef struct {
	section state.SectionName
	key     string
	label   string
}

func ref(section state.SectionName, key, label string) fieldRef {
	return fieldRef{section, key, label}
}

// summarize projects the set fields into label -> display value.
func summarize(sn state.Snapshot, refs ...fieldRef) map[string]string {
	out := make(map[string]string, len(refs))
	for _, r := range refs {
		v := Field{Section: r.section, Key: r.key}.Display(sn)
		if v != "" {
			out[r.label] = v
		}
	}
	return out
}
