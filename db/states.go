// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/refdata"
)

// SeedStates upserts states, keeping their order in the position column.
func SeedStates(ctx context.Context, db *sql.DB, states []models.StateRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, s := range states {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO state_population (code, name, region, population, apportioned, position)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (code) DO UPDATE SET
				name = excluded.name,
				region = excluded.region,
				population = excluded.population,
				apportioned = excluded.apportioned,
				position = excluded.position
		`, s.Code, s.Name, s.Region, s.Population, s.Apportioned, i)
		if err != nil {
			return fmt.Errorf("failed to insert state %s: %w", s.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit states: %w", err)
	}
	return nil
}

// LoadStates reads every state in stored order and validates the set.
func LoadStates(ctx context.Context, db *sql.DB) ([]models.StateRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT code, name, region, population, apportioned
		FROM state_population
		ORDER BY position, code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query states: %w", err)
	}
	defer rows.Close()

	var states []models.StateRecord
	for rows.Next() {
		var s models.StateRecord
		if err := rows.Scan(&s.Code, &s.Name, &s.Region, &s.Population, &s.Apportioned); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		states = append(states, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read states: %w", err)
	}

	if err := refdata.Validate(states); err != nil {
		return nil, fmt.Errorf("invalid population data: %w", err)
	}
	return states, nil
}

// CountStates returns the number of stored states.
func CountStates(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM state_population").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count states: %w", err)
	}
	return n, nil
}

// EnsureStates creates the schema, seeds it with fallback when empty and
// returns the stored states.
func EnsureStates(ctx context.Context, db *sql.DB, fallback []models.StateRecord) ([]models.StateRecord, error) {
	if err := CreateSchema(db); err != nil {
		return nil, err
	}

	n, err := CountStates(ctx, db)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := SeedStates(ctx, db, fallback); err != nil {
			return nil, err
		}
		slog.Info("Seeded population data", "states", len(fallback))
	}

	return LoadStates(ctx, db)
}
