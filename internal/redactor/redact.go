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

// Package redactor masks credentials before they reach the log file.
package redactor

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

const mask = "<redacted>"

// Redactor replaces registered secret values with <redacted>.
type Redactor struct {
	mu      sync.RWMutex
	secrets map[string]string // value -> name
}

func New() *Redactor {
	return &Redactor{secrets: make(map[string]string)}
}

// AddSecret registers value. Log lines are JSON, so the escaped form of
// value is registered too when it differs.
func (r *Redactor) AddSecret(value, name string) {
	if value == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.secrets[value] = name
	if esc := jsonEscape(value); esc != value {
		r.secrets[esc] = name
	}
}

// jsonEscape returns value as it appears inside a JSON string written by
// zap's encoder (no HTML escaping).
func jsonEscape(value string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return value
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return strings.TrimSuffix(strings.TrimPrefix(out, `"`), `"`)
}

// AddDSN registers the password of a Postgres connection string. Both the
// URL form (postgres://user:pw@host/db) and the key=value form are
// understood. It reports whether a password was found.
func (r *Redactor) AddDSN(dsn string) bool {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return false
	}
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		if pw, ok := u.User.Password(); ok && pw != "" {
			r.AddSecret(pw, "database.dsn")
			r.AddSecret(url.QueryEscape(pw), "database.dsn")
			return true
		}
		if pw := u.Query().Get("password"); pw != "" {
			r.AddSecret(pw, "database.dsn")
			return true
		}
		return false
	}
	for _, kv := range strings.Fields(dsn) {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k == "password" {
			v = strings.Trim(v, "'")
			if v != "" {
				r.AddSecret(v, "database.dsn")
				return true
			}
		}
	}
	return false
}

// Filter returns input with every registered secret masked.
func (r *Redactor) Filter(input []byte) []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	output := input
	for secret := range r.secrets {
		output = bytes.ReplaceAll(output, []byte(secret), []byte(mask))
	}
	return output
}

// Count returns the number of registered secrets.
func (r *Redactor) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.secrets)
}

// WriteSyncer wraps ws so every log line is filtered before it is written.
// A nil Redactor returns ws unchanged.
func (r *Redactor) WriteSyncer(ws zapcore.WriteSyncer) zapcore.WriteSyncer {
	if r == nil {
		return ws
	}
	return &syncer{r: r, next: ws}
}

type syncer struct {
	r    *Redactor
	next zapcore.WriteSyncer
}

func (s *syncer) Write(p []byte) (int, error) {
	if _, err := s.next.Write(s.r.Filter(p)); err != nil {
		return 0, err
	}
	// zap checks n against len(p); the masked line may differ in length
	return len(p), nil
}

func (s *syncer) Sync() error { return s.next.Sync() }
