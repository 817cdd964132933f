// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/housesim/apportion"
	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/refdata"
)

func electoralVotes(t *testing.T, houseSize int) map[string]int {
	t.Helper()
	states, err := refdata.Load()
	require.NoError(t, err)
	seats, err := apportion.HuntingtonHill(refdata.Populations(states), houseSize)
	require.NoError(t, err)
	return apportion.ElectoralVotes(states, seats)
}

func TestLoad(t *testing.T) {
	elections, err := Load()
	require.NoError(t, err)
	require.Len(t, elections, 5)

	years := make([]int, len(elections))
	for i, e := range elections {
		years[i] = e.Year
	}
	assert.Equal(t, []int{2008, 2012, 2016, 2020, 2024}, years)
}

func TestReplay_KnownResults(t *testing.T) {
	elections, err := Load()
	require.NoError(t, err)

	tests := []struct {
		house int
		year  int
		d, r  int
	}{
		{435, 2008, 357, 181},
		{435, 2012, 329, 209},
		{435, 2016, 231, 307},
		{435, 2020, 303, 235},
		{435, 2024, 226, 312},
		{535, 2016, 273, 365},
		{385, 2020, 274, 214},
	}

	byYear := make(map[int]Election)
	for _, e := range elections {
		byYear[e.Year] = e
	}

	for _, tt := range tests {
		ev := electoralVotes(t, tt.house)
		got := Replay(byYear[tt.year], ev)

		assert.Equal(t, tt.d, got.VotesByParty[models.PartyDemocratic], "%d at %d", tt.year, tt.house)
		assert.Equal(t, tt.r, got.VotesByParty[models.PartyRepublican], "%d at %d", tt.year, tt.house)
		assert.Equal(t, tt.d+tt.r, got.TotalVotes)
		assert.Equal(t, (tt.d+tt.r)/2+1, got.Threshold)
		assert.Equal(t, got.HistoricWinner, got.Winner)
		assert.False(t, got.Flipped)
	}
}

func TestReplay_ThresholdAndWinner(t *testing.T) {
	e := Election{
		Year:           1,
		Parties:        []models.PartyID{"D", "R"},
		HistoricWinner: "D",
		DefaultWinner:  "R",
		StatesWon:      map[models.PartyID][]string{"D": {"AA"}},
	}

	tests := []struct {
		name    string
		ev      map[string]int
		winner  models.PartyID
		thresh  int
		flipped bool
	}{
		{"clear majority", map[string]int{"AA": 10, "BB": 5}, "D", 8, false},
		{"exact threshold", map[string]int{"AA": 6, "BB": 5}, "D", 6, false},
		{"tie has no winner", map[string]int{"AA": 5, "BB": 5}, "", 6, true},
		{"flip", map[string]int{"AA": 3, "BB": 5}, "R", 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Replay(e, tt.ev)
			assert.Equal(t, tt.thresh, got.Threshold)
			assert.Equal(t, tt.winner, got.Winner)
			assert.Equal(t, tt.flipped, got.Flipped)
		})
	}
}

func TestReplay_SplitState(t *testing.T) {
	e := Election{
		Parties:        []models.PartyID{"D", "R"},
		HistoricWinner: "R",
		DefaultWinner:  "R",
		Splits:         []Split{{Code: "NE", AtLarge: "R", DistrictShare: 0.3333333333}},
	}

	got := Replay(e, map[string]int{"NE": 5})
	assert.Equal(t, 1, got.VotesByParty["D"])
	assert.Equal(t, 4, got.VotesByParty["R"])

	// Fewer electors than the at-large pair all go at large.
	got = Replay(e, map[string]int{"NE": 1})
	assert.Equal(t, 0, got.VotesByParty["D"])
	assert.Equal(t, 1, got.VotesByParty["R"])
}

func TestReplayAll_Chronological(t *testing.T) {
	elections, err := Load()
	require.NoError(t, err)

	reversed := make([]Election, len(elections))
	for i, e := range elections {
		reversed[len(elections)-1-i] = e
	}

	out := ReplayAll(reversed, electoralVotes(t, 435))
	require.Len(t, out, len(elections))
	for i := 1; i < len(out); i++ {
		assert.Less(t, out[i-1].Year, out[i].Year)
	}
	assert.Equal(t, 2008, reversed[len(reversed)-1].Year, "input left untouched")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "elections: ["},
		{"three parties", "elections:\n  - {year: 1, parties: [A, B, C], historic_winner: A, default_winner: A}\n"},
		{"winner off roster", "elections:\n  - {year: 1, parties: [A, B], historic_winner: X, default_winner: A}\n"},
		{"duplicate state", "elections:\n  - {year: 1, parties: [A, B], historic_winner: A, default_winner: A, states_won: {A: [XX], B: [XX]}}\n"},
		{"split share", "elections:\n  - {year: 1, parties: [A, B], historic_winner: A, default_winner: A, splits: [{code: XX, at_large: A, district_share: 2}]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 270, Threshold(538))
	assert.Equal(t, 245, Threshold(488))
	assert.Equal(t, 1, Threshold(0))
}
