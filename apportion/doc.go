// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apportion assigns House seats to states by population.

# Method of Equal Proportions

HuntingtonHill gives every state one seat, then awards the remaining seats
one at a time to the state with the highest priority

	priority(P, n) = P / sqrt(n * (n + 1))

where n is the state's current seat count. A max-heap keeps each award at
O(log n). When two priorities are exactly equal the state whose code sorts
later wins, so repeated runs always agree.

	seats, err := apportion.HuntingtonHill(refdata.Populations(states), 435)
	if errors.Is(err, models.ErrInvalidConfiguration) {
		// fewer seats than states
	}

# Per-State Metrics

StateMetrics turns an apportionment into the rows the presentation layer
shows: seats, change against a baseline house size, electoral votes,
people per seat and the Hamilton split of the delegation for a two-party
vote share.
*/
package apportion
