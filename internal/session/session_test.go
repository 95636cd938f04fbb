// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package session

import (
	"testing"
	"time"

	"github.com/cloud-exit/tokensim/internal/config"
	"github.com/cloud-exit/tokensim/internal/kvstore"
)

func TestOpen_ProfileFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Profile.Name = "Ada"
	cfg.Profile.Email = "ada@example.com"

	s, err := Open(cfg, nil, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.Profile.Name != "Ada" || s.Profile.Email != "ada@example.com" {
		t.Errorf("Profile = %+v", s.Profile)
	}
	if s.ID.String() == "" {
		t.Error("session has no id")
	}
}

func TestOpen_ProfileFallsBackToUser(t *testing.T) {
	t.Setenv("USER", "grace")
	s, err := Open(config.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if s.Profile.Name != "grace" {
		t.Errorf("Profile.Name = %q, want grace", s.Profile.Name)
	}
}

func TestOpen_NilConfig(t *testing.T) {
	if _, err := Open(nil, nil, nil); err == nil {
		t.Error("Open(nil) error = nil, want error")
	}
}

func TestCloseRecordsEndAndPreviousIsVisible(t *testing.T) {
	dir := t.TempDir()

	store, err := kvstore.Open(kvstore.Options{Dir: dir})
	if err != nil {
		t.Fatalf("kvstore.Open: %v", err)
	}
	first, err := Open(config.DefaultConfig(), nil, store)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if first.Previous() != nil {
		t.Errorf("Previous() = %+v on empty store, want nil", first.Previous())
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	store2, err := kvstore.Open(kvstore.Options{Dir: dir})
	if err != nil {
		t.Fatalf("kvstore.Open: %v", err)
	}
	second, err := Open(config.DefaultConfig(), nil, store2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer second.Close()

	prev := second.Previous()
	if prev == nil {
		t.Fatal("Previous() = nil, want first session")
	}
	if prev.ID != first.ID.String() {
		t.Errorf("Previous().ID = %s, want %s", prev.ID, first.ID)
	}
	if prev.EndedAt.IsZero() {
		t.Error("Previous().EndedAt is zero, want close time")
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	store, err := kvstore.Open(kvstore.Options{InMemory: true})
	if err != nil {
		t.Fatalf("kvstore.Open: %v", err)
	}
	defer store.Close()

	var ids []string
	for i := 0; i < 3; i++ {
		s, err := Open(config.DefaultConfig(), nil, store)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		s.StartedAt = time.Date(2026, 1, i+1, 0, 0, 0, 0, time.UTC)
		if err := s.save(time.Time{}); err != nil {
			t.Fatalf("save: %v", err)
		}
		ids = append(ids, s.ID.String())
	}

	all, err := History(store, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("History returned %d records, want 3 (last-session pointer must be skipped)", len(all))
	}
	if all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Errorf("History order = %s, %s, %s; want newest first", all[0].ID, all[1].ID, all[2].ID)
	}

	two, err := History(store, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(two) != 2 || two[0].ID != ids[2] {
		t.Errorf("History(2) = %+v", two)
	}
}

func TestProfileString(t *testing.T) {
	if got := (Profile{Name: "Ada"}).String(); got != "Ada" {
		t.Errorf("String() = %q, want Ada", got)
	}
	if got := (Profile{Name: "Ada", Email: "ada@example.com"}).String(); got != "Ada <ada@example.com>" {
		t.Errorf("String() = %q", got)
	}
}
