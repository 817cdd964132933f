// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the value types shared by the engine, the HTTP
handlers and the CLI.

# Parties

Parties are identified by PartyID. Maps keyed by PartyID are always walked
through an explicit roster slice so tie-breaks and aggregation never depend
on map iteration order:

	shares := models.PartyShare{"D": 0.52, "R": 0.48}.Normalize(models.DefaultRoster())

Normalize treats negative inputs as zero and falls back to an even split
when nothing positive is left.

# Reference Data

  - StateRecord: name, code, region, population, apportioned flag

# Settings

Settings holds the simulation knobs. Clamp forces each field into range:

	district_target   [1, 10]   default 5
	district_min      [1, 10]   default 3
	district_max      [min, 12] default 7
	top_up_share      [0, 0.3]  default 0.15
	ballots_per_seat  >= 100    default 2000

# Result Types

  - DistrictOutcome: STV count of one district
  - JurisdictionPRResult: district, top-up and final seats plus metrics
  - NationalPRResult: aggregate over jurisdictions
  - StateMetrics: per-state seats, electoral votes and people per seat
  - ElectionOutcome: a historical election replayed on an apportionment

# Errors

	ErrInvalidConfiguration  fatal to the call, surfaced to the caller
	ErrPlanMismatch          override plan rejected, plan is rebuilt
*/
package models
