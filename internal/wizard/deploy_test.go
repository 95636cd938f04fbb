// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/cloud-exit/tokensim/internal/state"
	"go.uber.org/goleak"
)

func TestDeployEmitsAllLines(t *testing.T) {
	defer goleak.VerifyNone(t)

	lines := []string{"one", "two", "three"}
	var got []string
	for line := range Deploy(context.Background(), lines, time.Millisecond) {
		got = append(got, line)
	}
	if len(got) != len(lines) {
		t.Fatalf("got %d lines, want %d", len(got), len(lines))
	}
	for i := range lines {
		if got[i] != lines[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], lines[i])
		}
	}
}

func TestDeployStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	lines := DeployLines(state.New().Snapshot())
	ch := Deploy(ctx, lines, 20*time.Millisecond)

	first, ok := <-ch
	if !ok {
		t.Fatal("channel closed before the first line")
	}
	if first != lines[0] {
		t.Errorf("first line = %q, want %q", first, lines[0])
	}
	cancel()

	n := 1
	for range ch {
		n++
	}
	if n >= len(lines) {
		t.Errorf("received %d lines after cancel, want fewer than %d", n, len(lines))
	}
}

func TestDeployLinesUseState(t *testing.T) {
	s := state.New()
	_ = s.Merge(state.ProTokenDesign, state.Section{"tokenStandard": "ERC-1400", "chain": "Base"})
	_ = s.Merge(state.Jurisdiction, state.Section{"spvLegalForm": "Delaware LLC"})
	lines := DeployLines(s.Snapshot())

	want := map[int]string{
		0: "Registering Delaware LLC ...",
		3: "Compiling ERC-1400 token contract ...",
		4: "Deploying to Base ...",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}
