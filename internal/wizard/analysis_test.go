// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package wizard

import (
	"math"
	"strings"
	"testing"

	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/state"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRange(t *testing.T) {
	r, err := EstimateRange(1000000)
	require.NoError(t, err)
	assert.True(t, r.Low.Equal(decimal.NewFromInt(950000)), r.Low.String())
	assert.True(t, r.High.Equal(decimal.NewFromInt(1100000)), r.High.String())

	r, err = EstimateRange(123.45)
	require.NoError(t, err)
	assert.Equal(t, "117.28", r.Low.StringFixed(2))
	assert.Equal(t, "123.45", r.Base.StringFixed(2))
	assert.Equal(t, "135.80", r.High.StringFixed(2))
}

func TestTokenPrice(t *testing.T) {
	p, err := TokenPrice(1000000, 20000)
	require.NoError(t, err)
	assert.Equal(t, "50", p.String())

	p, err = TokenPrice(100, 3)
	require.NoError(t, err)
	assert.Equal(t, "33.3333", p.String())

	_, err = TokenPrice(100, 0)
	assert.ErrorIs(t, err, ErrZeroSupply)
}

func TestNonFiniteAmounts(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		_, err := EstimateRange(v)
		assert.ErrorIs(t, err, ErrNotFinite, "EstimateRange(%v)", v)

		_, err = TokenPrice(v, 1000)
		assert.ErrorIs(t, err, ErrNotFinite, "TokenPrice(%v, 1000)", v)

		_, err = TokenPrice(1000, v)
		assert.ErrorIs(t, err, ErrNotFinite, "TokenPrice(1000, %v)", v)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	s := state.New()
	_ = s.Merge(state.ProjectInfo, state.Section{"name": "Fontana No. 4", "category": string(preset.Art), "valuation": 860000.0})
	_ = s.Merge(state.Property, state.Section{"location": "Lugano"})
	_ = s.Merge(state.Jurisdiction, state.Section{"spvComplexity": "high"})

	a := Analyze(s.Snapshot())
	b := Analyze(s.Snapshot())
	assert.Equal(t, a, b)
	assert.Equal(t, "Analysis of Fontana No. 4", a.Headline)
	assert.Contains(t, a.Body, "provenance")
	assert.Contains(t, a.Body, "Lugano")
	assert.False(t, strings.HasPrefix(a.Body, "\n"))
	assert.Contains(t, a.Risk, "High setup complexity")
}

func TestAnalyzeUnclassified(t *testing.T) {
	a := Analyze(state.New().Snapshot())
	assert.Contains(t, a.Body, "not been classified")
	assert.Contains(t, a.Risk, "Pick an SPV country")
	assert.True(t, a.Range.Low.IsZero())
}

func TestAnalysisTemplatesCoverEveryCategory(t *testing.T) {
	for _, c := range preset.Categories() {
		tmpl, ok := analysisTemplates[c]
		require.True(t, ok, "no analysis template for %s", c)
		assert.Equal(t, 2, strings.Count(tmpl, "%s"), c)
	}
}
