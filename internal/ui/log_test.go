// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ui

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	DisableColor()
	t.Cleanup(func() {
		SetOutput(nil, nil)
		SetLogger(nil)
		Verbose = false
	})
	return &out, &errOut
}

func TestMessagesGoToTheRightStream(t *testing.T) {
	out, errOut := capture(t)

	Info("loading")
	Successf("%d projects", 3)
	Warn("cache stale")
	ErrorNoExit("boom")

	if got := out.String(); got != "[INFO] loading\n[OK] 3 projects\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); got != "[WARN] cache stale\n[ERROR] boom\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestDebugOnlyWhenVerbose(t *testing.T) {
	_, errOut := capture(t)
	Debug("hidden")
	if errOut.Len() != 0 {
		t.Errorf("Debug printed while not verbose: %q", errOut.String())
	}
	Verbose = true
	Debugf("shown %s", "now")
	if !strings.Contains(errOut.String(), "[DEBUG] shown now") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestMessagesAreMirroredToLogger(t *testing.T) {
	capture(t)
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	Info("a")
	Warn("b")
	Debug("c")

	entries := logs.AllUntimed()
	if len(entries) != 3 {
		t.Fatalf("got %d log entries, want 3", len(entries))
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].Message != "b" {
		t.Errorf("entry[1] = %+v", entries[1])
	}
}

func TestTable(t *testing.T) {
	out, _ := capture(t)
	Table([]string{"CODE", "NAME"}, [][]string{{"IT", "Italy"}, {"US", "United States"}})
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[1], "IT    Italy") {
		t.Errorf("row not aligned: %q", lines[1])
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := NewSpinner("working")
	s.Start()
	s.Stop()
	s.Stop()
}
