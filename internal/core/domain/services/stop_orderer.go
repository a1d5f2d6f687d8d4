package services

import (
	"fulfillment/internal/pkg/errs"
)

// DistanceFunc returns the walking distance between two nodes, or false when
// no traversal exists between them.
type DistanceFunc func(from, to int32) (float64, bool)

// StopOrderer decides the visiting order of a route's stops. Implementations
// are interchangeable; the planner ships with a nearest-neighbor construction
// refined by 2-opt.
type StopOrderer interface {
	Order(start int32, stops []int32, dist DistanceFunc) ([]int32, error)
}

// NearestNeighborOrderer builds a tour greedily from the start node, always
// walking to the closest unvisited stop, then untangles crossings with 2-opt
// passes until no swap shortens the tour.
type NearestNeighborOrderer struct{}

// NewNearestNeighborOrderer creates the default orderer.
func NewNearestNeighborOrderer() *NearestNeighborOrderer {
	return &NearestNeighborOrderer{}
}

// Order returns the stops in visiting order. It fails when some stop cannot
// be reached from the tour built so far.
func (o *NearestNeighborOrderer) Order(start int32, stops []int32, dist DistanceFunc) ([]int32, error) {
	if len(stops) == 0 {
		return nil, errs.NewValueIsRequiredError("stops")
	}

	order := make([]int32, 0, len(stops))
	visited := make(map[int32]bool, len(stops))

	cur := start
	for len(order) < len(stops) {
		bestIdx := -1
		bestDist := 0.0
		for i, s := range stops {
			if visited[s] {
				continue
			}
			d, ok := dist(cur, s)
			if !ok {
				continue
			}
			if bestIdx == -1 || d < bestDist {
				bestIdx, bestDist = i, d
			}
		}
		if bestIdx == -1 {
			return nil, errs.NewValueIsInvalidError("stops are not mutually reachable")
		}

		cur = stops[bestIdx]
		visited[cur] = true
		order = append(order, cur)
	}

	o.twoOpt(start, order, dist)
	return order, nil
}

// twoOpt reverses tour segments while doing so shortens the total distance.
// Reversal legs that have no traversal (one-way aisles) are left alone.
func (o *NearestNeighborOrderer) twoOpt(start int32, order []int32, dist DistanceFunc) {
	improved := true
	for improved {
		improved = false
		for i := 0; i < len(order)-1; i++ {
			for j := i + 1; j < len(order); j++ {
				if o.trySwap(start, order, i, j, dist) {
					improved = true
				}
			}
		}
	}
}

func (o *NearestNeighborOrderer) trySwap(start int32, order []int32, i, j int, dist DistanceFunc) bool {
	prev := start
	if i > 0 {
		prev = order[i-1]
	}

	curA, ok := dist(prev, order[i])
	if !ok {
		return false
	}
	newA, ok := dist(prev, order[j])
	if !ok {
		return false
	}

	var curB, newB float64
	if j < len(order)-1 {
		curB, ok = dist(order[j], order[j+1])
		if !ok {
			return false
		}
		newB, ok = dist(order[i], order[j+1])
		if !ok {
			return false
		}
	}

	// The reversed segment must stay walkable end to end.
	segCur, segNew := 0.0, 0.0
	for k := i; k < j; k++ {
		d, ok := dist(order[k], order[k+1])
		if !ok {
			return false
		}
		segCur += d
		r, ok := dist(order[k+1], order[k])
		if !ok {
			return false
		}
		segNew += r
	}

	if newA+segNew+newB >= curA+segCur+curB {
		return false
	}

	for a, b := i, j; a < b; a, b = a+1, b-1 {
		order[a], order[b] = order[b], order[a]
	}
	return true
}
