// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package districts divides a jurisdiction's seats into multi-member
// districts of bounded size.
package districts

import (
	"fmt"
	"math"

	"github.com/danielhkuo/housesim/models"
)

// varianceWeight scales the size variance against the distance from the
// target district size when scoring a partition.
const varianceWeight = 10.0

// Sizes returns the district sizes for total seats. Every feasible district
// count c (c*min <= total <= c*max) is tried with its most balanced split,
// and the split minimising 10*variance + sum|size-target| wins; ties keep
// the smaller count. When no count is feasible the whole total becomes a
// single district. total <= 0 yields no districts.
func Sizes(total, target, minSize, maxSize int) []int {
	if total <= 0 {
		return nil
	}
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < minSize {
		maxSize = minSize
	}

	lo := ceilDiv(total, maxSize)
	if lo < 1 {
		lo = 1
	}
	hi := total / minSize

	var best []int
	bestScore := math.Inf(1)
	for c := lo; c <= hi; c++ {
		if c*minSize > total || total > c*maxSize {
			continue
		}
		parts, ok := balanced(total, c, minSize, maxSize)
		if !ok {
			continue
		}
		if s := score(parts, target); s < bestScore {
			best, bestScore = parts, s
		}
	}

	if best == nil {
		return []int{total}
	}
	return best
}

// Build returns a plan for jurisdiction with district ids "<code>-<n>".
func Build(jurisdiction string, total, target, minSize, maxSize int) models.DistrictPlan {
	sizes := Sizes(total, target, minSize, maxSize)
	plan := models.DistrictPlan{
		Jurisdiction: jurisdiction,
		Districts:    make([]models.DistrictSpec, len(sizes)),
	}
	for i, n := range sizes {
		plan.Districts[i] = models.DistrictSpec{
			ID:    DistrictID(jurisdiction, i),
			Seats: n,
		}
	}
	return plan
}

// DistrictID names the i-th (zero based) district of a jurisdiction.
func DistrictID(jurisdiction string, i int) string {
	return fmt.Sprintf("%s-%d", jurisdiction, i+1)
}

// Validate normalizes an override plan: districts with fewer than one seat
// are raised to one and missing ids are filled in. The plan is rejected
// with models.ErrPlanMismatch when its seats do not sum to total.
func Validate(plan models.DistrictPlan, jurisdiction string, total int) (models.DistrictPlan, error) {
	if len(plan.Districts) == 0 {
		return models.DistrictPlan{}, fmt.Errorf("%w: plan has no districts", models.ErrPlanMismatch)
	}

	out := models.DistrictPlan{
		Jurisdiction: jurisdiction,
		Districts:    make([]models.DistrictSpec, len(plan.Districts)),
	}
	for i, d := range plan.Districts {
		if d.Seats < 1 {
			d.Seats = 1
		}
		if d.ID == "" {
			d.ID = DistrictID(jurisdiction, i)
		}
		out.Districts[i] = d
	}

	if got := out.TotalSeats(); got != total {
		return models.DistrictPlan{}, fmt.Errorf("%w: plan has %d seats, want %d", models.ErrPlanMismatch, got, total)
	}
	return out, nil
}

// balanced splits total into c parts that differ by at most one seat, with
// the extra seats on the leading parts, then repairs any part outside
// [minSize, maxSize] by moving single seats between parts.
func balanced(total, c, minSize, maxSize int) ([]int, bool) {
	parts := make([]int, c)
	base, rem := total/c, total%c
	for i := range parts {
		parts[i] = base
		if i < rem {
			parts[i]++
		}
	}

	for moves := 0; moves < total; moves++ {
		over, under := -1, -1
		for i, p := range parts {
			if p > maxSize && over < 0 {
				over = i
			}
			if p < minSize && under < 0 {
				under = i
			}
		}
		switch {
		case over < 0 && under < 0:
			return parts, true
		case over >= 0:
			to := firstBelow(parts, maxSize)
			if to < 0 {
				return nil, false
			}
			parts[over]--
			parts[to]++
		default:
			from := firstAbove(parts, minSize)
			if from < 0 {
				return nil, false
			}
			parts[from]--
			parts[under]++
		}
	}
	return nil, false
}

func firstBelow(parts []int, limit int) int {
	for i, p := range parts {
		if p < limit {
			return i
		}
	}
	return -1
}

func firstAbove(parts []int, limit int) int {
	for i, p := range parts {
		if p > limit {
			return i
		}
	}
	return -1
}

func score(parts []int, target int) float64 {
	n := float64(len(parts))
	var sum float64
	for _, p := range parts {
		sum += float64(p)
	}
	mean := sum / n

	var variance, distance float64
	for _, p := range parts {
		d := float64(p) - mean
		variance += d * d
		distance += math.Abs(float64(p - target))
	}
	variance /= n

	return varianceWeight*variance + distance
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
