// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package spv

import (
	"testing"

	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/state"
)

func TestDerive_ItalyUnsetLegalForm(t *testing.T) {
	got, ok := Derive("IT", state.Section{})
	if !ok {
		t.Fatal("Derive(IT) ok = false")
	}
	if got.String(FieldLegalForm) != "SRL SPV immobiliare" {
		t.Errorf("spvLegalForm = %q, want %q", got.String(FieldLegalForm), "SRL SPV immobiliare")
	}
	if !got.Bool(FieldDirector) {
		t.Error("localDirectorRequired = false, want true")
	}
	if got.String(FieldComplexity) != "medium" {
		t.Errorf("spvComplexity = %q, want medium", got.String(FieldComplexity))
	}
}

func TestDerive_KeepsValidLegalForm(t *testing.T) {
	got, _ := Derive("IT", state.Section{FieldLegalForm: "SPA"})
	if got.String(FieldLegalForm) != "SPA" {
		t.Errorf("spvLegalForm = %q, want SPA", got.String(FieldLegalForm))
	}
}

func TestDerive_ReplacesForeignLegalForm(t *testing.T) {
	got, _ := Derive("DE", state.Section{FieldLegalForm: "Delaware LLC"})
	if got.String(FieldLegalForm) != "GmbH" {
		t.Errorf("spvLegalForm = %q, want GmbH", got.String(FieldLegalForm))
	}
}

func TestDerive_OverwritesManualRoleOnly(t *testing.T) {
	in := state.Section{
		FieldRole:     "custom-role",
		FieldDirector: false,
		"notes":       "keep me",
	}
	got, _ := Derive("LU", in)
	if got.String(FieldRole) != "securitisation_vehicle" {
		t.Errorf("spvRole = %q, want securitisation_vehicle", got.String(FieldRole))
	}
	if !got.Bool(FieldDirector) {
		t.Error("localDirectorRequired = false, want true")
	}
	if got.String("notes") != "keep me" {
		t.Errorf("notes = %q, want untouched", got.String("notes"))
	}
	if in.String(FieldRole) != "custom-role" {
		t.Error("Derive mutated its input")
	}
}

func TestDerive_UnknownCountry(t *testing.T) {
	in := state.Section{FieldLegalForm: "Whatever"}
	got, ok := Derive("ZZ", in)
	if ok {
		t.Error("Derive(ZZ) ok = true, want false")
	}
	if got.String(FieldLegalForm) != "Whatever" {
		t.Errorf("spvLegalForm = %q, want unchanged", got.String(FieldLegalForm))
	}
}

func TestDerive_AlwaysAllowedForm(t *testing.T) {
	forms := []string{"", "SPA", "GmbH", "Delaware LLC", "SAS", "nonsense"}
	for _, code := range Countries() {
		r, _ := Lookup(code)
		for _, f := range forms {
			got, ok := Derive(code, state.Section{FieldLegalForm: f})
			if !ok {
				t.Fatalf("Derive(%s) ok = false", code)
			}
			if !r.Allows(got.String(FieldLegalForm)) {
				t.Errorf("Derive(%s, %q) legal form %q not in %v", code, f, got.String(FieldLegalForm), r.LegalForms)
			}
		}
	}
}

func TestEveryPresetCountryHasRule(t *testing.T) {
	for _, c := range preset.Countries {
		if _, ok := Lookup(c.Code); !ok {
			t.Errorf("country %s has no legal form rule", c.Code)
		}
	}
}

func TestPatch_OnlySPVFields(t *testing.T) {
	p, ok := Patch("us", state.Section{"other": "x"})
	if !ok {
		t.Fatal("Patch(us) ok = false")
	}
	if p.String(FieldCountry) != "US" {
		t.Errorf("spvCountry = %q, want US", p.String(FieldCountry))
	}
	if _, has := p["other"]; has {
		t.Error("Patch leaked non-SPV field")
	}
	if len(p) != 5 {
		t.Errorf("Patch has %d fields, want 5", len(p))
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	r, _ := Lookup("IT")
	r.LegalForms[0] = "mutated"
	r2, _ := Lookup("IT")
	if r2.LegalForms[0] != "SRL SPV immobiliare" {
		t.Error("Lookup exposed the shared table")
	}
}
