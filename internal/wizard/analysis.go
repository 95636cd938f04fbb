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
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/state"
	"github.com/lithammer/dedent"
	"github.com/shopspring/decimal"
)

var (
	ErrZeroSupply = errors.New("token supply must be greater than zero")
	ErrNotFinite  = errors.New("amount is not a finite number")
)

var (
	rangeLow  = decimal.RequireFromString("0.95")
	rangeHigh = decimal.RequireFromString("1.10")
)

// ValuationRange is the mock analyst's band around the declared valuation.
type ValuationRange struct {
	Low  decimal.Decimal
	Base decimal.Decimal
	High decimal.Decimal
}

func checkFinite(vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrNotFinite, v)
		}
	}
	return nil
}

// EstimateRange returns base*0.95 to base*1.10, rounded to cents.
func EstimateRange(base float64) (ValuationRange, error) {
	if err := checkFinite(base); err != nil {
		return ValuationRange{}, err
	}
	b := decimal.NewFromFloat(base)
	return ValuationRange{
		Low:  b.Mul(rangeLow).Round(2),
		Base: b.Round(2),
		High: b.Mul(rangeHigh).Round(2),
	}, nil
}

// TokenPrice divides valuation by supply, rounded to four places.
func TokenPrice(valuation, supply float64) (decimal.Decimal, error) {
	if err := checkFinite(valuation, supply); err != nil {
		return decimal.Zero, err
	}
	if supply <= 0 {
		return decimal.Zero, ErrZeroSupply
	}
	return decimal.NewFromFloat(valuation).DivRound(decimal.NewFromFloat(supply), 4), nil
}

// Analysis is the canned "AI" feedback for a project. It is deterministic:
// the same state always yields the same text.
type Analysis struct {
	Category preset.Category
	Headline string
	Body     string
	Range    ValuationRange
	Risk     string
}

var analysisTemplates = map[preset.Category]string{
	preset.RealEstate: dedent.Dedent(`
		%s shows a stable income profile for a property in %s.
		Comparable transactions support an income-approach valuation.
		Net operating income should cover quarterly distributions after a
		reserve of three months of operating costs.
	`),
	preset.Business: dedent.Dedent(`
		%s has a revenue base that suits a revenue-share or equity token.
		The discounted cash flow is sensitive to the growth assumption;
		investors will ask for audited accounts for the last two years.
		Location noted: %s.
	`),
	preset.Art: dedent.Dedent(`
		%s is a unique asset with no recurring income. Value depends on
		provenance and on a recent independent appraisal. Storage and
		insurance in %s should be disclosed in the offering documents.
	`),
	preset.Debt: dedent.Dedent(`
		%s pays a fixed coupon, so yield to maturity drives pricing.
		Default and prepayment risk dominate; a monthly payout schedule
		matches the underlying cash flows. Servicer location: %s.
	`),
	preset.Energy: dedent.Dedent(`
		%s benefits from contracted power purchase revenue. Production
		estimates for %s should come from an independent yield study.
		Curtailment and merchant-price exposure are the main risks.
	`),
	preset.Funds: dedent.Dedent(`
		%s is valued at net asset value. Units should be offered to
		professional investors only, with NAV published at each
		distribution date. Administrator location: %s.
	`),
}

var riskByComplexity = map[string]string{
	"low":    "Low setup complexity. Standard corporate paperwork applies.",
	"medium": "Medium setup complexity. Budget for local counsel and a resident director.",
	"high":   "High setup complexity. Expect notarial deeds and longer registration times.",
}

// Analyze builds the mock analysis for the current state.
func Analyze(sn state.Snapshot) Analysis {
	info := sn[state.ProjectInfo]
	cat := preset.Category(info.String("category"))
	name := info.String("name")
	if name == "" {
		name = "The project"
	}
	location := sn[state.Property].String("location")
	if location == "" {
		location = "an undisclosed location"
	}

	tmpl, ok := analysisTemplates[cat]
	if !ok {
		tmpl = dedent.Dedent(`
			%s has not been classified yet. Pick an asset category for a
			tailored review. Location noted: %s.
		`)
	}

	risk := riskByComplexity[sn[state.Jurisdiction].String("spvComplexity")]
	if risk == "" {
		risk = "Pick an SPV country to assess setup complexity."
	}

	// a zero range is shown for a value the store should never have accepted
	rng, _ := EstimateRange(info.Float("valuation"))

	return Analysis{
		Category: cat,
		Headline: fmt.Sprintf("Analysis of %s", name),
		Body:     strings.TrimSpace(fmt.Sprintf(tmpl, name, location)),
		Range:    rng,
		Risk:     risk,
	}
}

// Patch returns the fields the analysis fills into the market section.
func (a Analysis) Patch() state.Section {
	low, _ := a.Range.Low.Float64()
	high, _ := a.Range.High.Float64()
	return state.Section{
		"aiValuationLow":  low,
		"aiValuationHigh": high,
		"aiSummary":       a.Body,
	}
}
