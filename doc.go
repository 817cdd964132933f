// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the housesim API server.

housesim models how the size of the House of Representatives and party vote
shares ripple through seat apportionment, electoral votes and
proportional-representation outcomes.

# Starting the Server

No configuration is required; population data is embedded:

	go run .

Or with flags:

	go run . -p 3318 -settings settings.yaml -admin-key secret

# Configuration

Optional settings (flag or env, a .env file is read first):

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): Load population data from SQL instead
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ADMIN_KEY (-admin-key): Enables POST /cache/reset
  - SETTINGS_FILE (-settings): YAML simulation settings
  - LOG_LEVEL (-log-level): debug, info, warn, error

# Architecture

Engine packages, leaf first:

  - models: shared types and sentinel errors
  - seats: Hamilton and Sainte-Lague allocation
  - apportion: Huntington-Hill and per-state metrics
  - districts: multi-member district plans
  - ballots: seeded ranked-ballot synthesis
  - stv: single transferable vote counting
  - topup: mixed-member correction seats
  - metrics: Gallagher index and wasted-vote proxy
  - simulation: orchestration, national runs and the result cache
  - history: historical electoral-college replay
  - refdata: embedded population data

Service packages:

  - handlers, router, middleware: JSON HTTP transport
  - auth: admin key and result fingerprints
  - db: optional SQL population source
  - cliparse: configuration parsing

The cmd/housesim command exposes the same engine as a CLI.
*/
package main
