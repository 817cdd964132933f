// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"github.com/danielhkuo/housesim/models"
)

// Priority is the Huntington-Hill priority of a state with population pop
// currently holding n seats.
func Priority(pop int64, n int) float64 {
	return float64(pop) / math.Sqrt(float64(n)*float64(n+1))
}

// HuntingtonHill apportions total seats among the states in populations
// using the method of equal proportions. Every state receives at least one
// seat; the result always sums to total.
func HuntingtonHill(populations map[string]int64, total int) (map[string]int, error) {
	if total < len(populations) {
		return nil, fmt.Errorf("%w: %d seats for %d states", models.ErrInvalidConfiguration, total, len(populations))
	}

	codes := make([]string, 0, len(populations))
	for code := range populations {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	seats := make(map[string]int, len(codes))
	pq := make(priorityQueue, 0, len(codes))
	for _, code := range codes {
		seats[code] = 1
		pq = append(pq, &entry{code: code, pop: populations[code], seats: 1, priority: Priority(populations[code], 1)})
	}
	heap.Init(&pq)

	for awarded := len(codes); awarded < total; awarded++ {
		next := heap.Pop(&pq).(*entry)
		next.seats++
		seats[next.code] = next.seats
		next.priority = Priority(next.pop, next.seats)
		heap.Push(&pq, next)
	}

	return seats, nil
}

type entry struct {
	code     string
	pop      int64
	seats    int
	priority float64
}

// priorityQueue is a max-heap on priority. Exactly equal priorities go to
// the state whose code sorts later.
type priorityQueue []*entry

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority > pq[j].priority
	}
	return pq[i].code > pq[j].code
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) { *pq = append(*pq, x.(*entry)) }

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return e
}
