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

package preset

// StepID identifies one wizard step.
type StepID string

const (
	StepVision       StepID = "vision"
	StepJurisdiction StepID = "jurisdiction"
	StepAsset        StepID = "asset"
	StepFinancials   StepID = "financials"
	StepLegal        StepID = "legal"
	StepToken        StepID = "token"
	StepPayout       StepID = "payout"
	StepDistribution StepID = "distribution"
	StepReports      StepID = "reports"
)

// StepDescriptor identifies one step or tab. Slice order is display and
// navigation order.
type StepDescriptor struct {
	ID    string
	Label string
	Icon  string
}

// Flavor selects the ordered step list used by the wizard.
type Flavor int

const (
	FlavorBasic Flavor = iota
	FlavorPro
)

func (f Flavor) String() string {
	if f == FlavorPro {
		return "pro"
	}
	return "basic"
}

// ProSteps is the full step order of the pro wizard.
var ProSteps = []StepDescriptor{
	{ID: string(StepVision), Label: "Vision", Icon: "◆"},
	{ID: string(StepJurisdiction), Label: "Jurisdiction", Icon: "§"},
	{ID: string(StepAsset), Label: "Asset & Market", Icon: "▣"},
	{ID: string(StepFinancials), Label: "Financials", Icon: "$"},
	{ID: string(StepLegal), Label: "Legal", Icon: "⚖"},
	{ID: string(StepToken), Label: "Token Design", Icon: "◎"},
	{ID: string(StepPayout), Label: "Payout", Icon: "↻"},
	{ID: string(StepDistribution), Label: "Distribution", Icon: "⇄"},
	{ID: string(StepReports), Label: "Reports", Icon: "≡"},
}

// BasicSteps is the shorter ordinary wizard.
var BasicSteps = []StepDescriptor{
	{ID: string(StepVision), Label: "Project", Icon: "◆"},
	{ID: string(StepJurisdiction), Label: "Jurisdiction", Icon: "§"},
	{ID: string(StepAsset), Label: "Asset", Icon: "▣"},
	{ID: string(StepToken), Label: "Token", Icon: "◎"},
	{ID: string(StepDistribution), Label: "Distribution", Icon: "⇄"},
	{ID: string(StepReports), Label: "Report", Icon: "≡"},
}

// stepTabs lists the tabs of each step, in order.
var stepTabs = map[StepID][]StepDescriptor{
	StepVision: {
		{ID: "overview", Label: "Overview"},
		{ID: "goals", Label: "Goals"},
		{ID: "valuation", Label: "Valuation"},
	},
	StepJurisdiction: {
		{ID: "country", Label: "Country"},
		{ID: "spv", Label: "SPV"},
		{ID: "regulation", Label: "Regulation"},
	},
	StepAsset: {
		{ID: "details", Label: "Details"},
		{ID: "market", Label: "Market"},
	},
	StepFinancials: {
		{ID: "revenue", Label: "Revenue"},
		{ID: "costs", Label: "Costs"},
		{ID: "projections", Label: "Projections"},
	},
	StepLegal: {
		{ID: "structure", Label: "Structure"},
		{ID: "compliance", Label: "Compliance"},
		{ID: "documents", Label: "Documents"},
	},
	StepToken: {
		{ID: "standard", Label: "Standard"},
		{ID: "supply", Label: "Supply"},
		{ID: "allocation", Label: "Allocation"},
	},
	StepPayout: {
		{ID: "schedule", Label: "Schedule"},
		{ID: "waterfall", Label: "Waterfall"},
	},
	StepDistribution: {
		{ID: "channels", Label: "Channels"},
		{ID: "investors", Label: "Investors"},
	},
	StepReports: {
		{ID: "summary", Label: "Summary"},
		{ID: "export", Label: "Export"},
	},
}

// AllSteps returns every step id in pro order.
func AllSteps() []StepID {
	out := make([]StepID, 0, len(ProSteps))
	for _, s := range ProSteps {
		out = append(out, StepID(s.ID))
	}
	return out
}

// Tabs returns a copy of the ordered tab list for a step.
func Tabs(id StepID) []StepDescriptor {
	tabs := stepTabs[id]
	out := make([]StepDescriptor, len(tabs))
	copy(out, tabs)
	return out
}

// StepsFor returns the descriptors of flavor f that are enabled in p, keeping
// the flavor's order.
func StepsFor(f Flavor, p AssetClassPreset) []StepDescriptor {
	base := BasicSteps
	if f == FlavorPro {
		base = ProSteps
	}
	enabled := make(map[StepID]bool, len(p.Steps))
	for _, id := range p.Steps {
		enabled[id] = true
	}
	var out []StepDescriptor
	for _, s := range base {
		if enabled[StepID(s.ID)] {
			out = append(out, s)
		}
	}
	return out
}
