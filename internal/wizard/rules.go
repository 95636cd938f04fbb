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
	"fmt"

	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/state"
	"github.com/google/cel-go/cel"
)

// ruleSet holds the compiled validity rule of every step.
type ruleSet struct {
	programs map[preset.StepID]cel.Program
}

func newRuleEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("s", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}
	return env, nil
}

func compileRules(specs map[preset.StepID]StepSpec) (*ruleSet, error) {
	env, err := newRuleEnv()
	if err != nil {
		return nil, err
	}
	rs := &ruleSet{programs: make(map[preset.StepID]cel.Program, len(specs))}
	for id, spec := range specs {
		ast, issues := env.Compile(spec.Rule)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("step %s: CEL compile error: %w", id, issues.Err())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("step %s: CEL program error: %w", id, err)
		}
		rs.programs[id] = prg
	}
	return rs, nil
}

// eval reports whether the step's rule holds for sn. Evaluation errors,
// such as a field holding the wrong type, count as invalid.
func (rs *ruleSet) eval(id preset.StepID, sn state.Snapshot) (bool, error) {
	prg, ok := rs.programs[id]
	if !ok {
		return false, fmt.Errorf("no rule for step %s", id)
	}
	out, _, err := prg.Eval(map[string]any{"s": sn.AsMap()})
	if err != nil {
		return false, fmt.Errorf("step %s: CEL eval error: %w", id, err)
	}
	valid, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("step %s: result not boolean", id)
	}
	return valid, nil
}

var stepRules = mustCompileRules()

func mustCompileRules() *ruleSet {
	rs, err := compileRules(stepSpecs)
	if err != nil {
		panic(err)
	}
	return rs
}

// CheckStep evaluates the validity rule of step id against sn.
func CheckStep(id preset.StepID, sn state.Snapshot) (bool, error) {
	return stepRules.eval(id, sn)
}
