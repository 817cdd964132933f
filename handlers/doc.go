// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the housesim API.

# Handler Types

  - ApportionHandler: per-state apportionment metrics
  - SimulationHandler: jurisdiction and national PR runs, cache reset
  - HistoryHandler: historical electoral-college replay

Handlers hold the population data loaded at startup and, for simulation,
the shared *simulation.Engine:

	simHandler := handlers.NewSimulationHandler(engine, states, cfg)

# Errors

Engine errors wrapping models.ErrInvalidConfiguration become 400, a
cancelled request 503, and anything else 500. House sizes above
MaxHouseSize are rejected before apportioning.

# Caching

POST /simulate/jurisdiction sets an ETag derived from the normalized input
and answers 304 when If-None-Match matches, without running the engine.
*/
package handlers
