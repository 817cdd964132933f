// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package districts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/housesim/models"
)

func sum(parts []int) int {
	total := 0
	for _, p := range parts {
		total += p
	}
	return total
}

func TestSizes_ElevenSeats(t *testing.T) {
	parts := Sizes(11, 5, 3, 7)
	assert.Equal(t, []int{6, 5}, parts)
	for _, p := range parts {
		assert.GreaterOrEqual(t, p, 3)
		assert.LessOrEqual(t, p, 7)
	}
	assert.Equal(t, 11, sum(parts))
}

func TestSizes_BoundsHoldWhenFeasible(t *testing.T) {
	for total := 3; total <= 60; total++ {
		parts := Sizes(total, 5, 3, 7)
		require.Equal(t, total, sum(parts), "total %d", total)
		for _, p := range parts {
			assert.GreaterOrEqual(t, p, 3, "total %d parts %v", total, parts)
			assert.LessOrEqual(t, p, 7, "total %d parts %v", total, parts)
		}
	}
}

func TestSizes(t *testing.T) {
	tests := []struct {
		name             string
		total, target    int
		minSize, maxSize int
		want             []int
	}{
		{"exact target", 10, 5, 3, 7, []int{5, 5}},
		{"single seat", 1, 5, 1, 7, []int{1}},
		{"below minimum falls back to one district", 2, 5, 3, 7, []int{2}},
		{"no feasible count", 8, 5, 5, 6, []int{8}},
		{"single member districts", 4, 1, 1, 1, []int{1, 1, 1, 1}},
		{"zero seats", 0, 5, 3, 7, nil},
		{"inverted bounds use min", 9, 3, 3, 1, []int{3, 3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sizes(tt.total, tt.target, tt.minSize, tt.maxSize))
		})
	}
}

func TestBuild(t *testing.T) {
	plan := Build("OH", 13, 5, 3, 7)
	assert.Equal(t, "OH", plan.Jurisdiction)
	assert.Equal(t, 13, plan.TotalSeats())
	require.NotEmpty(t, plan.Districts)
	assert.Equal(t, "OH-1", plan.Districts[0].ID)
}

func TestValidate(t *testing.T) {
	t.Run("raises empty districts to one seat", func(t *testing.T) {
		plan := models.DistrictPlan{Districts: []models.DistrictSpec{{Seats: 0}, {ID: "x", Seats: 3}}}
		got, err := Validate(plan, "ME", 4)
		require.NoError(t, err)
		assert.Equal(t, "ME", got.Jurisdiction)
		assert.Equal(t, "ME-1", got.Districts[0].ID)
		assert.Equal(t, 1, got.Districts[0].Seats)
		assert.Equal(t, "x", got.Districts[1].ID)
	})

	t.Run("rejects mismatched totals", func(t *testing.T) {
		plan := models.DistrictPlan{Districts: []models.DistrictSpec{{Seats: 2}}}
		_, err := Validate(plan, "ME", 3)
		assert.True(t, errors.Is(err, models.ErrPlanMismatch))
	})

	t.Run("rejects empty plans", func(t *testing.T) {
		_, err := Validate(models.DistrictPlan{}, "ME", 3)
		assert.True(t, errors.Is(err, models.ErrPlanMismatch))
	})

	t.Run("does not modify the input", func(t *testing.T) {
		plan := models.DistrictPlan{Districts: []models.DistrictSpec{{Seats: 0}}}
		_, _ = Validate(plan, "ME", 1)
		assert.Equal(t, 0, plan.Districts[0].Seats)
	})
}
