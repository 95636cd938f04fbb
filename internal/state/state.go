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

// Package state holds the in-memory wizard record: named sections of
// primitive fields, updated by shallow merges.
package state

import (
	"errors"
	"fmt"
	"math"
)

// SectionName names one independent part of the wizard state.
type SectionName string

const (
	ProjectInfo     SectionName = "projectInfo"
	Jurisdiction    SectionName = "jurisdiction"
	Property        SectionName = "property"
	Compliance      SectionName = "compliance"
	TokenAllocation SectionName = "tokenAllocation"
	Distribution    SectionName = "distribution"
	ProContext      SectionName = "proContext"
	ProMarketData   SectionName = "proMarketData"
	ProFinancials   SectionName = "proFinancials"
	ProLegal        SectionName = "proLegal"
	ProTokenDesign  SectionName = "proTokenDesign"
	ProPayout       SectionName = "proPayout"
	ProReports      SectionName = "proReports"
)

// Sections lists every section name in display order.
var Sections = []SectionName{
	ProjectInfo, Jurisdiction, Property, Compliance, TokenAllocation, Distribution,
	ProContext, ProMarketData, ProFinancials, ProLegal, ProTokenDesign, ProPayout, ProReports,
}

var (
	ErrUnknownSection   = errors.New("unknown section")
	ErrUnsupportedValue = errors.New("unsupported field value")
)

// Known reports whether name is a defined section.
func Known(name SectionName) bool {
	for _, s := range Sections {
		if s == name {
			return true
		}
	}
	return false
}

// Store is the wizard state. It is not safe for concurrent use; all updates
// happen on the UI goroutine.
type Store struct {
	sections map[SectionName]Section
}

// New returns an empty store.
func New() *Store {
	return &Store{sections: make(map[SectionName]Section)}
}

// Merge shallow-merges patch into the named section. The section is rebuilt
// as a new map, so earlier snapshots and other sections are never touched.
// A nil value removes the field.
func (s *Store) Merge(name SectionName, patch Section) error {
	if !Known(name) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	normalized := make(Section, len(patch))
	for k, v := range patch {
		nv, err := normalize(v)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", name, k, err)
		}
		normalized[k] = nv
	}

	old := s.sections[name]
	next := make(Section, len(old)+len(normalized))
	for k, v := range old {
		next[k] = v
	}
	for k, v := range normalized {
		if v == nil {
			delete(next, k)
			continue
		}
		next[k] = v
	}
	s.sections[name] = next
	return nil
}

// Set is Merge for a single field.
func (s *Store) Set(name SectionName, key string, value any) error {
	return s.Merge(name, Section{key: value})
}

// Section returns a copy of the named section (never nil).
func (s *Store) Section(name SectionName) Section {
	c := s.sections[name].Clone()
	if c == nil {
		return Section{}
	}
	return c
}

// Snapshot deep-copies the whole state.
func (s *Store) Snapshot() Snapshot {
	out := make(Snapshot, len(Sections))
	for _, name := range Sections {
		out[name] = s.Section(name)
	}
	return out
}

// Reset discards everything.
func (s *Store) Reset() {
	s.sections = make(map[SectionName]Section)
}

// Snapshot is a detached copy of the state, keyed by section.
type Snapshot map[SectionName]Section

// Get returns a field from a snapshot, or nil.
func (sn Snapshot) Get(name SectionName, key string) any {
	return sn[name][key]
}

// AsMap converts the snapshot to plain nested maps for expression engines
// and serializers.
func (sn Snapshot) AsMap() map[string]any {
	out := make(map[string]any, len(sn))
	for name, sec := range sn {
		m := make(map[string]any, len(sec))
		for k, v := range sec {
			m[k] = v
		}
		out[string(name)] = m
	}
	return out
}

func normalize(v any) (any, error) {
	switch x := v.(type) {
	case nil, string, bool:
		return x, nil
	case float64:
		return finite(x)
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float32:
		return finite(float64(x))
	case []string:
		return append([]string{}, x...), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// finite rejects NaN and infinities; nothing downstream can represent them.
func finite(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, f)
	}
	return f, nil
}
