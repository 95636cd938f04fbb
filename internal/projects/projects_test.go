// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package projects

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cloud-exit/tokensim/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "title", "location", "asset_type", "valuation", "token_price",
	"total_tokens", "tokens_sold", "annual_yield", "status", "image_url",
}

func newMock(t *testing.T) (*PostgresSource, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresSource(db), mock
}

func memCache(t *testing.T) *Cache {
	t.Helper()
	store, err := kvstore.Open(kvstore.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewCache(store, time.Hour)
}

func TestPostgresSource_ListScansNullColumns(t *testing.T) {
	src, mock := newMock(t)
	rows := sqlmock.NewRows(columns).
		AddRow("p1", "Canal House", "Amsterdam, NL", "real_estate", 1000000.0, 50.0, int64(20000), int64(5000), 4.5, "live", "https://img.example.com/p1.png").
		AddRow("p2", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnRows(rows)

	got, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Canal House", got[0].Title)
	assert.Equal(t, int64(5000), got[0].TokensSold)
	assert.Equal(t, "", got[1].Title)
	assert.Zero(t, got[1].Valuation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_QueryError(t *testing.T) {
	src, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnError(errors.New("connection refused"))

	_, err := src.List(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestClean_DefaultsAndDrops(t *testing.T) {
	var dropped []string
	got := clean([]Property{
		{ID: "ok"},
		{ID: ""},
		{ID: "oversold", TotalTokens: 10, TokensSold: 11},
		{ID: "bad-status", Status: "pending"},
		{ID: "bad-url", ImageURL: "not a url"},
		{ID: "upper", Status: " LIVE "},
	}, func(p Property, _ error) { dropped = append(dropped, p.ID) })

	require.Len(t, got, 2)
	assert.Equal(t, Property{
		ID: "ok", Title: "Untitled", Location: "Unknown", AssetType: "other", Status: "draft",
	}, got[0])
	assert.Equal(t, "live", got[1].Status)
	assert.ElementsMatch(t, []string{"", "oversold", "bad-status", "bad-url"}, dropped)
}

func TestFixtures(t *testing.T) {
	props, err := Fixtures()
	require.NoError(t, err)
	require.NotEmpty(t, props)
	for _, p := range props {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Title)
		assert.LessOrEqual(t, p.TokensSold, p.TotalTokens, p.ID)
	}
}

func TestFundedPct(t *testing.T) {
	assert.Equal(t, 50.0, Property{TotalTokens: 10, TokensSold: 5}.FundedPct())
	assert.Zero(t, Property{}.FundedPct())
}

func TestLoader_DatabaseFillsCache(t *testing.T) {
	src, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("p1", "Canal House", nil, nil, 1.0, 1.0, int64(1), int64(0), nil, "live", nil))
	cache := memCache(t)

	l := &Loader{Source: src, Cache: cache, Timeout: time.Second}
	props, origin := l.Load(context.Background())
	assert.Equal(t, OriginDatabase, origin)
	require.Len(t, props, 1)

	cached, err := cache.Get()
	require.NoError(t, err)
	assert.Equal(t, props, cached)
}

func TestLoader_FallsBackToCache(t *testing.T) {
	src, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnError(errors.New("timeout"))
	cache := memCache(t)
	require.NoError(t, cache.Put([]Property{{ID: "cached", Title: "Cached", Location: "X", AssetType: "art", Status: "live"}}))

	props, origin := (&Loader{Source: src, Cache: cache}).Load(context.Background())
	assert.Equal(t, OriginCache, origin)
	require.Len(t, props, 1)
	assert.Equal(t, "cached", props[0].ID)
}

func TestLoader_FallsBackToFixtures(t *testing.T) {
	src, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnError(errors.New("timeout"))

	props, origin := (&Loader{Source: src, Cache: memCache(t)}).Load(context.Background())
	assert.Equal(t, OriginFixtures, origin)

	want, err := Fixtures()
	require.NoError(t, err)
	assert.Equal(t, want, props)
}

func TestLoader_NoSourceNoCache(t *testing.T) {
	props, origin := (&Loader{}).Load(context.Background())
	assert.Equal(t, OriginFixtures, origin)
	assert.NotEmpty(t, props)
}

func TestCache_Invalidate(t *testing.T) {
	cache := memCache(t)
	require.NoError(t, cache.Put([]Property{{ID: "a"}}))
	require.NoError(t, cache.Invalidate())
	_, err := cache.Get()
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
	assert.NoError(t, cache.Invalidate())

	var nilCache *Cache
	assert.NoError(t, nilCache.Put(nil))
	_, err = nilCache.Get()
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}
