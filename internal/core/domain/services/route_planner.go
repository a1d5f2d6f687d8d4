package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/model/topology"
)

// ErrNoFeasibleRoute is returned when no valid traversal covers the required
// stops under the current topology. Recompute after the topology is repaired.
var ErrNoFeasibleRoute = errors.New("no feasible route over required stops")

// RoutePlanner turns a plan's required stops into one or more PickingRoute
// aggregates. Stops living in mutually unreachable parts of the warehouse are
// split into separate routes, each depending on its predecessor so pickers
// finish one area before moving on.
type RoutePlanner struct {
	orderer StopOrderer
}

// NewRoutePlanner creates a planner with the given ordering strategy.
func NewRoutePlanner(orderer StopOrderer) *RoutePlanner {
	return &RoutePlanner{orderer: orderer}
}

// PlanRoutes computes the routes for a plan: stops are the shelf nodes of the
// reserved items, start is the node pickers depart from, zoneIDs restricts
// traversal to the plan's zone scope. All distances honor one-way direction
// and skip blocked paths.
func (p *RoutePlanner) PlanRoutes(g *topology.Graph, tenant kernel.TenantID, planID kernel.UUID,
	start int32, stops []int32, zoneIDs []int32, now time.Time) ([]*picking.Route, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("plan has no stops: %w", ErrNoFeasibleRoute)
	}

	stops = dedupe(stops)
	dist := p.distances(g, start, stops, zoneIDs)

	groups, fromStart, err := p.group(g, start, stops, zoneIDs)
	if err != nil {
		return nil, err
	}

	var routes []*picking.Route
	var dependID *kernel.UUID
	origin := start
	if !fromStart {
		// Even the first group is cut off from the start node; it opens at
		// its own first stop like any later disjoint group.
		origin = 0
	}
	for _, group := range groups {
		route, err := p.buildRoute(g, tenant, planID, dependID, origin, group, zoneIDs, dist, now)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)

		id := route.ID()
		dependID = &id
		// The next disjoint group starts from its own first stop; there is no
		// walkable connection from the previous route's end.
		origin = 0
	}

	if err := picking.ValidateDependencies(routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (p *RoutePlanner) buildRoute(g *topology.Graph, tenant kernel.TenantID, planID kernel.UUID,
	dependID *kernel.UUID, origin int32, group []int32, zoneIDs []int32,
	dist DistanceFunc, now time.Time) (*picking.Route, error) {

	entry := origin
	if entry == 0 {
		entry = group[0]
	}

	ordered, err := p.orderer.Order(entry, group, dist)
	if err != nil {
		return nil, fmt.Errorf("ordering stops: %w (%w)", err, ErrNoFeasibleRoute)
	}

	// Stitch the ordered stops into one concrete traversal.
	nodeIDs := []int32{entry}
	var pathIDs []int32
	total := 0.0
	cur := entry
	for _, stop := range ordered {
		if stop == cur {
			continue
		}
		walk, werr := g.ShortestPath(cur, stop, zoneIDs)
		if werr != nil {
			return nil, fmt.Errorf("no leg from %d to %d: %w", cur, stop, ErrNoFeasibleRoute)
		}
		nodeIDs = append(nodeIDs, walk.NodeIDs[1:]...)
		pathIDs = append(pathIDs, walk.PathIDs...)
		total += walk.Distance
		cur = stop
	}

	return picking.NewRoute(tenant, planID, dependID, nodeIDs, pathIDs, ordered, total, now)
}

// distances memoizes pairwise shortest distances between the start node and
// every stop.
func (p *RoutePlanner) distances(g *topology.Graph, start int32, stops []int32, zoneIDs []int32) DistanceFunc {
	type pair struct{ from, to int32 }
	cache := make(map[pair]float64)
	missing := make(map[pair]bool)

	nodes := append([]int32{start}, stops...)
	for _, from := range nodes {
		for _, to := range nodes {
			if from == to {
				cache[pair{from, to}] = 0
				continue
			}
			walk, err := g.ShortestPath(from, to, zoneIDs)
			if err != nil {
				missing[pair{from, to}] = true
				continue
			}
			cache[pair{from, to}] = walk.Distance
		}
	}

	return func(from, to int32) (float64, bool) {
		if missing[pair{from, to}] {
			return 0, false
		}
		d, ok := cache[pair{from, to}]
		return d, ok
	}
}

// group partitions stops into routes: stops reachable from the start form the
// first group; the rest cluster by mutual reachability among themselves.
// Groups are ordered deterministically by their smallest node id. The flag
// reports whether the first group departs from the start node.
func (p *RoutePlanner) group(g *topology.Graph, start int32, stops []int32, zoneIDs []int32) ([][]int32, bool, error) {
	reachable := func(from, to int32) bool {
		ok, err := g.IsReachable(from, to, zoneIDs)
		return err == nil && ok
	}

	var first []int32
	var rest []int32
	for _, s := range stops {
		if reachable(start, s) {
			first = append(first, s)
		} else {
			rest = append(rest, s)
		}
	}

	var groups [][]int32
	if len(first) > 0 {
		groups = append(groups, first)
	}

	assigned := make(map[int32]bool, len(rest))
	for _, seed := range rest {
		if assigned[seed] {
			continue
		}
		group := []int32{seed}
		assigned[seed] = true
		for _, other := range rest {
			if assigned[other] {
				continue
			}
			if reachable(seed, other) || reachable(other, seed) {
				group = append(group, other)
				assigned[other] = true
			}
		}
		groups = append(groups, group)
	}

	if len(groups) == 0 {
		return nil, false, ErrNoFeasibleRoute
	}

	tail := groups
	if len(first) > 0 {
		tail = groups[1:]
	}
	sort.Slice(tail, func(i, j int) bool {
		return minID(tail[i]) < minID(tail[j])
	})

	return groups, len(first) > 0, nil
}

func dedupe(stops []int32) []int32 {
	seen := make(map[int32]struct{}, len(stops))
	out := make([]int32, 0, len(stops))
	for _, s := range stops {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func minID(group []int32) int32 {
	m := group[0]
	for _, id := range group[1:] {
		if id < m {
			m = id
		}
	}
	return m
}
