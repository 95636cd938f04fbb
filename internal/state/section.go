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

package state

// Section is a partially filled record of primitive fields. Values are
// string, float64, bool or []string.
type Section map[string]any

// Clone returns a copy whose string slices are also copied.
func (s Section) Clone() Section {
	if s == nil {
		return nil
	}
	out := make(Section, len(s))
	for k, v := range s {
		if ss, ok := v.([]string); ok {
			v = append([]string{}, ss...)
		}
		out[k] = v
	}
	return out
}

// Has reports whether key is set.
func (s Section) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s Section) String(key string) string {
	v, _ := s[key].(string)
	return v
}

func (s Section) Float(key string) float64 {
	switch v := s[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (s Section) Bool(key string) bool {
	v, _ := s[key].(bool)
	return v
}

func (s Section) Strings(key string) []string {
	v, _ := s[key].([]string)
	return v
}
