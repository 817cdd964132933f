// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stv counts ranked ballots with the single transferable vote.

# Quota

The Droop quota is floor(validWeight / (seats + 1)) + 1, where validWeight
is the summed weight of ballots that rank at least one slate candidate.

# Counting Loop

Each ballot keeps a pointer to its highest-ranked candidate still in the
count. Until every seat is filled or no candidate is left:

  - If the active candidates fit in the remaining seats, all of them are
    elected in ascending id order and the count stops.
  - Otherwise every active candidate's current weight is tallied.
  - Candidates at or above the quota are elected highest tally first (ties
    by ascending id). Ballots they hold are scaled by surplus/tally and move
    on to their next preference.
  - If nobody reached the quota the lowest tally (ties by ascending id) is
    eliminated and its ballots move on at full weight.

Every round elects or eliminates at least one candidate, so the count
always terminates.

	res := stv.Count(seats, slate, ballots)
	fmt.Println(res.Elected, res.SeatsByParty["D"], res.Quota)
*/
package stv
