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

package spv

import (
	"sort"
	"strings"

	"github.com/cloud-exit/tokensim/internal/state"
)

// Field keys written into the jurisdiction section.
const (
	FieldCountry    = "spvCountry"
	FieldLegalForm  = "spvLegalForm"
	FieldRole       = "spvRole"
	FieldDirector   = "localDirectorRequired"
	FieldComplexity = "spvComplexity"
)

// Lookup returns the rule for a 2-letter country code.
func Lookup(code string) (LegalFormRule, bool) {
	r, ok := rules[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return LegalFormRule{}, false
	}
	r.LegalForms = append([]string(nil), r.LegalForms...)
	return r, true
}

// Countries returns every code with a rule, sorted.
func Countries() []string {
	out := make([]string, 0, len(rules))
	for code := range rules {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Allows reports whether form is a legal form of the rule's country.
func (r LegalFormRule) Allows(form string) bool {
	for _, f := range r.LegalForms {
		if f == form {
			return true
		}
	}
	return false
}

// Derive recomputes the SPV fields of a jurisdiction section for country
// code. A legal form already valid for the country is kept; anything else is
// replaced by the country's first form. Role, director flag and complexity
// always come from the rule. Unknown countries return current unchanged and
// false.
func Derive(code string, current state.Section) (state.Section, bool) {
	r, ok := Lookup(code)
	if !ok {
		return current.Clone(), false
	}
	out := current.Clone()
	if out == nil {
		out = state.Section{}
	}
	if !r.Allows(out.String(FieldLegalForm)) {
		out[FieldLegalForm] = r.LegalForms[0]
	}
	out[FieldRole] = r.DefaultRole
	out[FieldDirector] = r.DirectorRequired
	out[FieldComplexity] = string(r.Complexity)
	return out, true
}

// Patch returns only the fields Derive would change, suitable for a shallow
// merge into the jurisdiction section.
func Patch(code string, current state.Section) (state.Section, bool) {
	derived, ok := Derive(code, current)
	if !ok {
		return nil, false
	}
	return state.Section{
		FieldCountry:    strings.ToUpper(strings.TrimSpace(code)),
		FieldLegalForm:  derived[FieldLegalForm],
		FieldRole:       derived[FieldRole],
		FieldDirector:   derived[FieldDirector],
		FieldComplexity: derived[FieldComplexity],
	}, true
}
