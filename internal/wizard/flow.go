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

	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/spv"
	"github.com/cloud-exit/tokensim/internal/state"
	"github.com/cloud-exit/tokensim/internal/stepper"
	"go.uber.org/zap"
)

// Phase is the top-level screen of the wizard.
type Phase int

const (
	PhaseCategorySelect Phase = iota
	PhaseSteps
	PhaseDeploying
	PhaseSummary
)

func (p Phase) String() string {
	switch p {
	case PhaseCategorySelect:
		return "category-select"
	case PhaseSteps:
		return "steps"
	case PhaseDeploying:
		return "deploying"
	case PhaseSummary:
		return "summary"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var (
	ErrStepInvalid     = errors.New("current step is not complete")
	ErrUnknownCategory = errors.New("unknown asset category")
	ErrUnknownCountry  = errors.New("no SPV rules for country")
	ErrWrongPhase      = errors.New("operation not allowed in this phase")
)

// Flow sequences the wizard: category selection, the ordered steps with
// their tabs, the deploy animation and the summary. It is not safe for
// concurrent use; the TUI drives it from its update loop.
type Flow struct {
	flavor   preset.Flavor
	phase    Phase
	category preset.Category
	steps    []preset.StepDescriptor
	index    int
	valid    bool
	store    *state.Store
	tabs     *stepper.Navigator
	logger   *zap.Logger

	// set by the navigator's completion callback during NextTab
	stepErr error
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

func WithLogger(l *zap.Logger) FlowOption {
	return func(f *Flow) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithStore seeds the flow with an existing store.
func WithStore(s *state.Store) FlowOption {
	return func(f *Flow) {
		if s != nil {
			f.store = s
		}
	}
}

// NewFlow returns a flow waiting for a category.
func NewFlow(flavor preset.Flavor, opts ...FlowOption) *Flow {
	f := &Flow{
		flavor: flavor,
		store:  state.New(),
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *Flow) Phase() Phase              { return f.phase }
func (f *Flow) Flavor() preset.Flavor     { return f.flavor }
func (f *Flow) Category() preset.Category { return f.category }
func (f *Flow) Index() int                { return f.index }
func (f *Flow) Valid() bool               { return f.valid }
func (f *Flow) Store() *state.Store       { return f.store }
func (f *Flow) Snapshot() state.Snapshot  { return f.store.Snapshot() }
func (f *Flow) Tabs() *stepper.Navigator  { return f.tabs }
func (f *Flow) Steps() []preset.StepDescriptor {
	return append([]preset.StepDescriptor(nil), f.steps...)
}

// Current returns the active step, if the flow is in the steps phase.
func (f *Flow) Current() (preset.StepDescriptor, bool) {
	if f.phase != PhaseSteps || len(f.steps) == 0 {
		return preset.StepDescriptor{}, false
	}
	return f.steps[f.index], true
}

// CurrentSpec returns the spec of the active step.
func (f *Flow) CurrentSpec() (StepSpec, bool) {
	cur, ok := f.Current()
	if !ok {
		return StepSpec{}, false
	}
	return Spec(preset.StepID(cur.ID))
}

// SetValid is the validation callback of the active step.
func (f *Flow) SetValid(v bool) { f.valid = v }

// Revalidate evaluates the active step's rule and stores the result.
// Optional steps of the selected category are always valid.
func (f *Flow) Revalidate() (bool, error) {
	cur, ok := f.Current()
	if !ok {
		return false, ErrWrongPhase
	}
	id := preset.StepID(cur.ID)
	if p, ok := preset.Lookup(f.category); ok && p.IsOptional(id) {
		f.SetValid(true)
		return true, nil
	}
	valid, err := CheckStep(id, f.store.Snapshot())
	if err != nil {
		f.logger.Debug("step rule failed", zap.String("step", cur.ID), zap.Error(err))
	}
	f.SetValid(valid)
	return valid, err
}

// Next advances to the following step. It refuses while the active step is
// invalid. From the last step it moves to the deploy phase.
func (f *Flow) Next() error {
	if f.phase != PhaseSteps {
		return ErrWrongPhase
	}
	if !f.valid {
		return ErrStepInvalid
	}
	if f.index == len(f.steps)-1 {
		f.phase = PhaseDeploying
		f.tabs = nil
		f.logger.Info("wizard complete, deploying", zap.String("category", string(f.category)))
		return nil
	}
	f.index++
	f.valid = false
	f.enterStep()
	return nil
}

// Back returns to the previous step, or to category selection from the
// first step.
func (f *Flow) Back() error {
	if f.phase != PhaseSteps {
		return ErrWrongPhase
	}
	if f.index == 0 {
		f.phase = PhaseCategorySelect
		f.tabs = nil
		f.valid = false
		return nil
	}
	f.index--
	f.valid = false
	f.enterStep()
	return nil
}

// NextTab moves to the next tab of the active step; on the last tab it
// completes the step via Next.
func (f *Flow) NextTab() error {
	if f.tabs == nil {
		return ErrWrongPhase
	}
	f.stepErr = nil
	f.tabs.Next()
	return f.stepErr
}

// PrevTab moves to the previous tab. On the first tab it goes back a step.
func (f *Flow) PrevTab() error {
	if f.tabs == nil {
		return ErrWrongPhase
	}
	if f.tabs.Back() {
		return nil
	}
	return f.Back()
}

// JumpTo selects step i directly, as the sidebar does. Only steps up to the
// current one can be reached.
func (f *Flow) JumpTo(i int) error {
	if f.phase != PhaseSteps {
		return ErrWrongPhase
	}
	if i < 0 || i > f.index {
		return ErrStepInvalid
	}
	if i != f.index {
		f.index = i
		f.valid = false
		f.enterStep()
	}
	return nil
}

func (f *Flow) enterStep() {
	cur := f.steps[f.index]
	tabs, err := stepper.New(preset.Tabs(preset.StepID(cur.ID)),
		stepper.OnTabChange(func(id string) {
			f.logger.Debug("tab change", zap.String("step", cur.ID), zap.String("tab", id))
		}),
		stepper.OnNextStep(func() { f.stepErr = f.Next() }),
	)
	if err != nil {
		// every step has tabs; a missing entry is a table bug
		panic(fmt.Sprintf("step %s: %v", cur.ID, err))
	}
	f.tabs = tabs
	f.logger.Debug("enter step", zap.String("step", cur.ID), zap.Int("index", f.index))
}

// SelectCategory applies the category preset. Every default field is
// overwritten, so selecting the same category twice is idempotent; fields
// outside the preset's default set are kept.
func (f *Flow) SelectCategory(cat preset.Category) error {
	p, ok := preset.Lookup(cat)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	if f.phase == PhaseDeploying || f.phase == PhaseSummary {
		return ErrWrongPhase
	}
	for _, name := range p.DefaultSections() {
		if err := f.store.Merge(state.SectionName(name), state.Section(p.Defaults[name])); err != nil {
			return fmt.Errorf("applying %s defaults: %w", p.Category, err)
		}
	}
	if err := f.store.Set(state.ProjectInfo, "category", string(p.Category)); err != nil {
		return err
	}

	prevID := ""
	if cur, ok := f.Current(); ok {
		prevID = cur.ID
	}
	f.category = p.Category
	f.steps = preset.StepsFor(f.flavor, p)
	f.valid = false

	if f.phase == PhaseCategorySelect {
		f.phase = PhaseSteps
		f.index = 0
	} else {
		f.index = 0
		for i, s := range f.steps {
			if s.ID == prevID {
				f.index = i
				break
			}
		}
	}
	f.enterStep()
	f.logger.Info("category selected",
		zap.String("category", string(p.Category)),
		zap.Int("steps", len(f.steps)),
	)
	return nil
}

// SetSPVCountry writes the SPV country and re-derives the legal form, role,
// director requirement and complexity from the country's rules.
func (f *Flow) SetSPVCountry(code string) error {
	patch, ok := spv.Patch(code, f.store.Section(state.Jurisdiction))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, code)
	}
	if err := f.store.Merge(state.Jurisdiction, patch); err != nil {
		return err
	}
	f.logger.Debug("spv derived",
		zap.String("country", patch.String(spv.FieldCountry)),
		zap.String("legalForm", patch.String(spv.FieldLegalForm)),
	)
	return nil
}

// Update writes one field. Jurisdiction edits re-run the SPV derivation so a
// legal form outside the country's list is corrected immediately. Supply and
// valuation edits refresh the derived token price.
func (f *Flow) Update(section state.SectionName, key string, value any) error {
	if section == state.Jurisdiction && key == spv.FieldCountry {
		code, _ := value.(string)
		return f.SetSPVCountry(code)
	}
	if err := f.store.Set(section, key, value); err != nil {
		return err
	}
	if section == state.Jurisdiction && key == spv.FieldLegalForm {
		if country := f.store.Section(state.Jurisdiction).String(spv.FieldCountry); country != "" {
			return f.SetSPVCountry(country)
		}
	}
	if (section == state.ProTokenDesign && key == "totalSupply") || (section == state.ProjectInfo && key == "valuation") {
		f.refreshTokenPrice()
	}
	return nil
}

func (f *Flow) refreshTokenPrice() {
	sn := f.store.Snapshot()
	price, err := TokenPrice(sn[state.ProjectInfo].Float("valuation"), sn[state.ProTokenDesign].Float("totalSupply"))
	var v any
	if err == nil {
		v = price.InexactFloat64()
	}
	_ = f.store.Set(state.ProTokenDesign, "tokenPrice", v)
}

// RunAnalysis computes the mock analysis and fills its fields into the
// market section.
func (f *Flow) RunAnalysis() (Analysis, error) {
	a := Analyze(f.store.Snapshot())
	if err := f.store.Merge(state.ProMarketData, a.Patch()); err != nil {
		return a, err
	}
	f.logger.Debug("analysis applied", zap.String("category", string(a.Category)))
	return a, nil
}

// DeployDone moves from the deploy animation to the summary.
func (f *Flow) DeployDone() error {
	if f.phase != PhaseDeploying {
		return ErrWrongPhase
	}
	f.phase = PhaseSummary
	return nil
}

// StepSummary is the footer projection of one step.
type StepSummary struct {
	Step   preset.StepDescriptor
	Fields map[string]string
}

// Summaries projects every step of the flow, in order. Nothing is cached.
func (f *Flow) Summaries() []StepSummary {
	sn := f.store.Snapshot()
	out := make([]StepSummary, 0, len(f.steps))
	for _, s := range f.steps {
		spec, ok := Spec(preset.StepID(s.ID))
		if !ok || spec.Summary == nil {
			continue
		}
		out = append(out, StepSummary{Step: s, Fields: spec.Summary(sn)})
	}
	return out
}

// Reset discards all progress and returns to category selection.
func (f *Flow) Reset() {
	f.store.Reset()
	f.phase = PhaseCategorySelect
	f.category = ""
	f.steps = nil
	f.index = 0
	f.valid = false
	f.tabs = nil
}
