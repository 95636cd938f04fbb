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
	"math"
	"strings"

	"github.com/cloud-exit/tokensim/internal/state"
	"github.com/shopspring/decimal"
)

// FieldKind selects how a field is edited and parsed.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindBool
	KindChoice
	KindList
)

// Field is one editable form field bound to a state section key.
type Field struct {
	Section state.SectionName
	Key     string
	Label   string
	Kind    FieldKind
	Options []string
	// OptionsFrom computes choices from the current state, e.g. the legal
	// forms of the selected country. It wins over Options when set.
	OptionsFrom func(state.Snapshot) []string
	ReadOnly    bool
}

// Choices returns the selectable values for choice and list fields.
func (f Field) Choices(sn state.Snapshot) []string {
	if f.OptionsFrom != nil {
		return f.OptionsFrom(sn)
	}
	return f.Options
}

// Display formats the field's current value.
func (f Field) Display(sn state.Snapshot) string {
	v := sn.Get(f.Section, f.Key)
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case float64:
		return FormatNumber(x)
	case []string:
		return strings.Join(x, ", ")
	}
	return fmt.Sprint(v)
}

// Parse converts user input into a value suitable for state.Merge. An empty
// input clears the field.
func (f Field) Parse(input string) (any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	switch f.Kind {
	case KindNumber:
		d, err := decimal.NewFromString(strings.ReplaceAll(input, ",", ""))
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", f.Label, input)
		}
		v := d.InexactFloat64()
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%s: %q is out of range", f.Label, input)
		}
		return v, nil
	case KindBool:
		switch strings.ToLower(input) {
		case "y", "yes", "true", "1", "on":
			return true, nil
		case "n", "no", "false", "0", "off":
			return false, nil
		}
		return nil, fmt.Errorf("%s: expected yes or no", f.Label)
	case KindList:
		var out []string
		for _, part := range strings.Split(input, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
	return input, nil
}

// Cycle returns the choice after the current one, wrapping around. For bool
// fields it toggles.
func (f Field) Cycle(sn state.Snapshot) any {
	if f.Kind == KindBool {
		b, _ := sn.Get(f.Section, f.Key).(bool)
		return !b
	}
	opts := f.Choices(sn)
	if len(opts) == 0 {
		return sn.Get(f.Section, f.Key)
	}
	cur, _ := sn.Get(f.Section, f.Key).(string)
	for i, o := range opts {
		if o == cur {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}

// Toggle adds or removes option from a list field.
func (f Field) Toggle(sn state.Snapshot, option string) []string {
	cur, _ := sn.Get(f.Section, f.Key).([]string)
	out := make([]string, 0, len(cur)+1)
	found := false
	for _, c := range cur {
		if c == option {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		out = append(out, option)
	}
	return out
}
