// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db loads population reference data from SQL.

The engine never needs a database; by default the server uses the data
embedded in refdata. Setting DATABASE_URL points it at a state_population
table instead, on SQLite (modernc.org/sqlite, pure Go) or PostgreSQL
(lib/pq):

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	embedded, _ := refdata.Load()
	states, err := db.EnsureStates(ctx, conn, embedded)

EnsureStates creates the schema, seeds an empty table from the fallback and
validates what it reads back with refdata.Validate.

# Tables

  - state_population: code, name, region, population, apportioned, position

Queries use $n placeholders, which both drivers accept.
*/
package db
