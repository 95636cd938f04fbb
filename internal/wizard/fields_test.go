// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package wizard

import (
	"testing"

	"github.com/cloud-exit/tokensim/internal/state"
	"github.com/google/go-cmp/cmp"
)

func TestFieldParse(t *testing.T) {
	tests := []struct {
		name    string
		kind    FieldKind
		in      string
		want    any
		wantErr bool
	}{
		{"number with separators", KindNumber, "1,250,000", 1250000.0, false},
		{"decimal number", KindNumber, "5.5", 5.5, false},
		{"not a number", KindNumber, "lots", nil, true},
		{"overflowing number", KindNumber, "1e400", nil, true},
		{"negative overflow", KindNumber, "-1e400", nil, true},
		{"NaN", KindNumber, "NaN", nil, true},
		{"Inf", KindNumber, "Inf", nil, true},
		{"bool yes", KindBool, "Yes", true, false},
		{"bool off", KindBool, "off", false, false},
		{"bool junk", KindBool, "maybe", nil, true},
		{"list", KindList, " retail, professional,, ", []string{"retail", "professional"}, false},
		{"text", KindText, "  Villa  ", "Villa", false},
		{"empty clears", KindNumber, "   ", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Field{Label: "f", Kind: tc.kind}.Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestFieldCycle(t *testing.T) {
	f := Field{Section: state.ProPayout, Key: "frequency", Kind: KindChoice, Options: []string{"monthly", "quarterly", "annual"}}
	s := state.New()

	if got := f.Cycle(s.Snapshot()); got != "monthly" {
		t.Errorf("Cycle(unset) = %v, want monthly", got)
	}
	_ = s.Set(state.ProPayout, "frequency", "annual")
	if got := f.Cycle(s.Snapshot()); got != "monthly" {
		t.Errorf("Cycle(annual) = %v, want wrap to monthly", got)
	}

	b := Field{Section: state.Compliance, Key: "kycRequired", Kind: KindBool}
	if got := b.Cycle(s.Snapshot()); got != true {
		t.Errorf("Cycle(bool unset) = %v, want true", got)
	}
}

func TestFieldChoicesFromState(t *testing.T) {
	s := state.New()
	_ = s.Set(state.Jurisdiction, "spvCountry", "US")
	f := Field{Kind: KindChoice, OptionsFrom: legalFormsOf, Options: []string{"ignored"}}
	got := f.Choices(s.Snapshot())
	if len(got) == 0 || got[0] != "Delaware LLC" {
		t.Errorf("Choices = %v, want US legal forms", got)
	}
}

func TestFieldToggle(t *testing.T) {
	f := Field{Section: state.Distribution, Key: "channels", Kind: KindList}
	s := state.New()
	_ = s.Set(state.Distribution, "channels", []string{"Own platform"})

	got := f.Toggle(s.Snapshot(), "Private placement")
	if diff := cmp.Diff([]string{"Own platform", "Private placement"}, got); diff != "" {
		t.Errorf("Toggle add mismatch:\n%s", diff)
	}
	got = f.Toggle(s.Snapshot(), "Own platform")
	if len(got) != 0 {
		t.Errorf("Toggle remove = %v, want empty", got)
	}
}

func TestFieldDisplay(t *testing.T) {
	s := state.New()
	_ = s.Merge(state.Compliance, state.Section{"kycRequired": true, "minInvestment": 2500.5, "investorTypes": []string{"retail", "qualified"}})
	sn := s.Snapshot()
	for key, want := range map[string]string{
		"kycRequired":   "yes",
		"minInvestment": "2,500.5",
		"investorTypes": "retail, qualified",
		"missing":       "",
	} {
		if got := (Field{Section: state.Compliance, Key: key}).Display(sn); got != want {
			t.Errorf("Display(%s) = %q, want %q", key, got, want)
		}
	}
}
