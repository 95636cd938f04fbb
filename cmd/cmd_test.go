// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package cmd

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/cloud-exit/tokensim/internal/config"
	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/projects"
	"github.com/cloud-exit/tokensim/internal/session"
	"github.com/cloud-exit/tokensim/internal/spv"
	"github.com/cloud-exit/tokensim/internal/state"
	"github.com/cloud-exit/tokensim/internal/wizard"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportFlow(t *testing.T) {
	f, err := buildReportFlow(reportParams{
		category:  "real estate",
		name:      "Via Roma 12",
		valuation: 1_000_000,
		supply:    100_000,
		country:   "it",
		pro:       true,
		analysis:  true,
	})
	require.NoError(t, err)

	sn := f.Snapshot()
	assert.Equal(t, preset.RealEstate, f.Category())
	assert.Equal(t, "Via Roma 12", sn[state.ProjectInfo].String("name"))
	assert.Equal(t, "IT", sn[state.Jurisdiction].String(spv.FieldCountry))
	assert.Equal(t, "SRL SPV immobiliare", sn[state.Jurisdiction].String(spv.FieldLegalForm))
	assert.InDelta(t, 10.0, sn[state.ProTokenDesign].Float("tokenPrice"), 1e-9)
	assert.NotEmpty(t, sn[state.ProMarketData].String("aiSummary"))

	md := wizard.Report(wizard.ReportFromFlow(f, true))
	assert.Contains(t, md, "# Tokenization report: Via Roma 12")
	assert.Contains(t, md, "**Valuation range:**")
}

func TestBuildReportFlow_Errors(t *testing.T) {
	_, err := buildReportFlow(reportParams{category: "Spaceships"})
	assert.ErrorIs(t, err, wizard.ErrUnknownCategory)

	_, err = buildReportFlow(reportParams{category: "Art", country: "ZZ"})
	assert.ErrorIs(t, err, wizard.ErrUnknownCountry)
}

func TestBuildReportFlow_BasicFlavor(t *testing.T) {
	f, err := buildReportFlow(reportParams{category: "Art"})
	require.NoError(t, err)
	assert.Equal(t, preset.FlavorBasic, f.Flavor())
	assert.Equal(t, "Untitled project", firstHeading(wizard.Report(wizard.ReportFromFlow(f, false))))
}

func firstHeading(md string) string {
	_, rest, _ := strings.Cut(md, "# Tokenization report: ")
	title, _, _ := strings.Cut(rest, "\n")
	return title
}

func TestLoadProjects_FallsBackToFixtures(t *testing.T) {
	cfg := config.DefaultConfig()
	s, err := session.Open(cfg, nil, nil)
	require.NoError(t, err)

	props, origin := loadProjects(context.Background(), s, true)
	assert.Equal(t, projects.OriginFixtures, origin)
	assert.NotEmpty(t, props)
}

func TestSessionFrom_Missing(t *testing.T) {
	c := &cobra.Command{}
	c.SetContext(context.Background())
	_, err := sessionFrom(c)
	assert.Error(t, err)
}

func TestCompleteCategories(t *testing.T) {
	got, _ := completeCategories(nil, nil, "")
	assert.Contains(t, got, string(preset.RealEstate))
	assert.Len(t, got, len(preset.Presets))
}

func TestDescribeSession(t *testing.T) {
	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.Local)
	r := session.Record{
		ID:        "s-1",
		Profile:   session.Profile{Name: "Ada"},
		StartedAt: start,
		EndedAt:   start.Add(90 * time.Second),
	}
	assert.Equal(t, "2026-05-04 10:00 by Ada (1m30s)", describeSession(r))

	r.EndedAt = time.Time{}
	assert.Equal(t, "2026-05-04 10:00 by Ada", describeSession(r))
	assert.Equal(t, "-", formatTime(time.Time{}))
}

func TestBuildReportFlow_RejectsInfiniteValuation(t *testing.T) {
	_, err := buildReportFlow(reportParams{category: "Art", valuation: math.Inf(1)})
	assert.ErrorIs(t, err, state.ErrUnsupportedValue)
}

func TestWriteCompletion(t *testing.T) {
	for shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeCompletion(rootCmd, shell, &buf))
			assert.Contains(t, buf.String(), "tokensim")
		})
	}

	var buf bytes.Buffer
	assert.ErrorContains(t, writeCompletion(rootCmd, "tcsh", &buf), "unsupported shell")
	assert.Zero(t, buf.Len())
}

func TestDetectShell(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")
	assert.Equal(t, "zsh", detectShell())

	t.Setenv("SHELL", "/bin/fish")
	assert.Equal(t, "fish", detectShell())
}
