// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package stepper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func tabs(n int) []preset.StepDescriptor {
	out := make([]preset.StepDescriptor, n)
	for i := range out {
		out[i] = preset.StepDescriptor{ID: fmt.Sprintf("t%d", i), Label: fmt.Sprintf("Tab %d", i)}
	}
	return out
}

func TestNew_Empty(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoTabs) {
		t.Errorf("New(nil) error = %v, want ErrNoTabs", err)
	}
}

func TestNextAndBack(t *testing.T) {
	var changes []string
	n, err := New(tabs(3), OnTabChange(func(id string) { changes = append(changes, id) }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	n.Next()
	n.Next()
	n.Back()

	want := []string{"t1", "t2", "t1"}
	if fmt.Sprint(changes) != fmt.Sprint(want) {
		t.Errorf("tab changes = %v, want %v", changes, want)
	}
	if n.Index() != 1 {
		t.Errorf("Index() = %d, want 1", n.Index())
	}
}

func TestNextOnLastTabSignalsStepCompletion(t *testing.T) {
	completed := 0
	changes := 0
	n, _ := New(tabs(2),
		OnNextStep(func() { completed++ }),
		OnTabChange(func(string) { changes++ }),
	)
	n.Next()
	if moved := n.Next(); moved {
		t.Error("Next() on last tab reported a move")
	}
	if completed != 1 {
		t.Errorf("OnNextStep called %d times, want 1", completed)
	}
	if changes != 1 {
		t.Errorf("OnTabChange called %d times, want 1", changes)
	}
	if n.Index() != 1 {
		t.Errorf("Index() = %d, want 1", n.Index())
	}
}

func TestBackOnFirstTabIsNoop(t *testing.T) {
	fired := false
	n, _ := New(tabs(3), OnTabChange(func(string) { fired = true }))
	if n.Back() {
		t.Error("Back() on first tab reported a move")
	}
	if fired || n.Index() != 0 {
		t.Errorf("Back() on first tab: fired=%v index=%d", fired, n.Index())
	}
}

func TestSync(t *testing.T) {
	fired := false
	n, _ := New(tabs(4), OnTabChange(func(string) { fired = true }))

	if !n.Sync("t2") {
		t.Error("Sync(t2) = false, want true")
	}
	if n.Active().ID != "t2" {
		t.Errorf("Active() = %s, want t2", n.Active().ID)
	}
	if fired {
		t.Error("Sync should not fire OnTabChange")
	}

	if n.Sync("missing") {
		t.Error("Sync(missing) = true, want false")
	}
	if n.Active().ID != "t2" {
		t.Errorf("unknown id moved the navigator to %s", n.Active().ID)
	}
}

func TestActiveTabOption(t *testing.T) {
	n, _ := New(tabs(3), ActiveTab("t2"))
	if !n.IsLast() {
		t.Errorf("Index() = %d, want last", n.Index())
	}
	n2, _ := New(tabs(3), ActiveTab("bogus"))
	if !n2.IsFirst() {
		t.Errorf("unknown ActiveTab moved navigator to %d", n2.Index())
	}
}

func TestNavigatorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("index stays within bounds for any key sequence", prop.ForAll(
		func(size int, moves []bool) bool {
			n, _ := New(tabs(size))
			for _, forward := range moves {
				if forward {
					n.Next()
				} else {
					n.Back()
				}
				if n.Index() < 0 || n.Index() > size-1 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("Next on the last tab completes exactly once and stays put", prop.ForAll(
		func(size int) bool {
			completed := 0
			n, _ := New(tabs(size), OnNextStep(func() { completed++ }))
			for i := 0; i < size-1; i++ {
				n.Next()
			}
			n.Next()
			return completed == 1 && n.Index() == size-1
		},
		gen.IntRange(1, 12),
	))

	properties.Property("Back at index 0 is a no-op", prop.ForAll(
		func(size int) bool {
			fired := false
			n, _ := New(tabs(size), OnTabChange(func(string) { fired = true }))
			return !n.Back() && !fired && n.Index() == 0
		},
		gen.IntRange(1, 12),
	))

	properties.TestingRun(t)
}
