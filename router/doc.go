// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the housesim API.

# Route Registration

	mux := router.NewRouter(engine, states, elections, cfg)

# Endpoints

Health:

	GET /health

Apportionment:

	GET  /states?seats=N  - Per-state seats, electors and people per seat
	POST /apportion       - Same, with a baseline and a two-party feed

Simulation:

	POST /simulate/jurisdiction - One state, ETag per input
	POST /simulate/national     - Every state, aggregated

History:

	GET /history?seats=N - Past elections replayed on N seats

Admin (requires X-Admin-Key):

	POST /cache/reset

All routes except /health and / are wrapped with request logging.
*/
package router
