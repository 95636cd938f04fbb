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

package projects

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Source lists properties.
type Source interface {
	List(ctx context.Context) ([]Property, error)
}

const listQuery = "SELECT id, title, location, asset_type, valuation, token_price, total_tokens, tokens_sold, annual_yield, status, image_url FROM properties ORDER BY id"

// PostgresSource reads the properties table. It never writes.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// OpenPostgres opens a connection pool for dsn. The connection is not
// tested until the first query.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(2)
	return db, nil
}

func (s *PostgresSource) List(ctx context.Context) ([]Property, error) {
	rows, err := s.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var out []Property
	for rows.Next() {
		var (
			id, title, location, assetType, status, imageURL sql.NullString
			valuation, tokenPrice, annualYield               sql.NullFloat64
			totalTokens, tokensSold                          sql.NullInt64
		)
		if err := rows.Scan(&id, &title, &location, &assetType, &valuation, &tokenPrice,
			&totalTokens, &tokensSold, &annualYield, &status, &imageURL); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		out = append(out, Property{
			ID:          id.String,
			Title:       title.String,
			Location:    location.String,
			AssetType:   assetType.String,
			Valuation:   valuation.Float64,
			TokenPrice:  tokenPrice.Float64,
			TotalTokens: totalTokens.Int64,
			TokensSold:  tokensSold.Int64,
			AnnualYield: annualYield.Float64,
			Status:      status.String,
			ImageURL:    imageURL.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return out, nil
}
