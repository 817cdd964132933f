// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package simulation composes the engine packages into a full
proportional-representation run.

For one jurisdiction RunJurisdiction:

 1. normalizes vote shares over the party roster
 2. reserves round(seats * TopUpShare) top-up seats when enabled
 3. validates an override plan or builds one with districts.Build
 4. synthesizes ballots per district and counts them with stv.Count
 5. allocates top-up seats with topup.Allocate
 6. scores the outcome with the metrics package

District i is seeded with JurisdictionSeed(settings.Seed, code) + i*1009,
so a jurisdiction's result depends only on its own inputs.

# Caching

Results are memoized in a Cache owned by the Engine. Keys are the JSON
encoding of the normalized inputs, so equivalent requests share an entry:

	engine := simulation.NewEngine(simulation.NewCache(), logger)
	res, err := engine.RunJurisdiction(ctx, input, settings)
	cleared := engine.Cache().Reset()

Concurrent callers with the same key share one computation.

# National Runs

RunNational fans out over jurisdictions with an errgroup bounded by
GOMAXPROCS and aggregates in input order. BuildInputs converts an
apportionment and a two-party vote-share feed into inputs.
*/
package simulation
