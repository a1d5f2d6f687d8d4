package topology_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/topology"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTenant = kernel.TenantID(1)

func mustNode(t *testing.T, id, zoneID int32, kind topology.NodeKind, x, y float64) *topology.Node {
	t.Helper()
	pos, err := kernel.NewPoint(x, y)
	require.NoError(t, err)
	n, err := topology.NewNode(id, testTenant, zoneID, "", kind, pos)
	require.NoError(t, err)
	return n
}

func mustPath(t *testing.T, id, from, to int32, distance float64, oneWay bool) *topology.Path {
	t.Helper()
	p, err := topology.NewPath(id, testTenant, from, to, distance, nil, oneWay)
	require.NoError(t, err)
	return p
}

// aisleGraph builds a small two-zone warehouse:
//
//	zone 1:  dock(1) --2m-- junction(2) --3m-- shelf(3)
//	                          |
//	                         4m (one-way 2->4)
//	                          v
//	zone 2:               shelf(4) --1m-- shelf(5)
func aisleGraph(t *testing.T, extra ...*topology.Path) *topology.Graph {
	t.Helper()
	nodes := []*topology.Node{
		mustNode(t, 1, 1, topology.NodeKindDock, 0, 0),
		mustNode(t, 2, 1, topology.NodeKindJunction, 2, 0),
		mustNode(t, 3, 1, topology.NodeKindShelfAccess, 5, 0),
		mustNode(t, 4, 2, topology.NodeKindShelfAccess, 2, 4),
		mustNode(t, 5, 2, topology.NodeKindShelfAccess, 3, 4),
	}
	paths := []*topology.Path{
		mustPath(t, 10, 1, 2, 2, false),
		mustPath(t, 11, 2, 3, 3, false),
		mustPath(t, 12, 2, 4, 4, true),
		mustPath(t, 13, 4, 5, 1, false),
	}
	paths = append(paths, extra...)

	g, err := topology.NewGraph(nodes, paths)
	require.NoError(t, err)
	return g
}

func TestGraph_Neighbors(t *testing.T) {
	g := aisleGraph(t)

	t.Run("bidirectional_paths_appear_in_both_directions", func(t *testing.T) {
		edges, err := g.Neighbors(3)
		require.NoError(t, err)
		require.Len(t, edges, 1)
		assert.Equal(t, int32(2), edges[0].To)
		assert.InDelta(t, 3.0, edges[0].Distance, 1e-9)
	})

	t.Run("one_way_paths_appear_only_forward", func(t *testing.T) {
		edges, err := g.Neighbors(4)
		require.NoError(t, err)
		// Only 4->5; the 2->4 one-way must not be traversable backwards.
		require.Len(t, edges, 1)
		assert.Equal(t, int32(5), edges[0].To)
	})

	t.Run("blocked_paths_are_excluded", func(t *testing.T) {
		blocked := mustPath(t, 14, 3, 5, 1, false)
		blocked.Block()
		gb := aisleGraph(t, blocked)

		edges, err := gb.Neighbors(3)
		require.NoError(t, err)
		require.Len(t, edges, 1)
		assert.Equal(t, int32(2), edges[0].To)
	})

	t.Run("unknown_node_fails", func(t *testing.T) {
		_, err := g.Neighbors(99)
		require.Error(t, err)
	})
}

func TestGraph_IsReachable(t *testing.T) {
	g := aisleGraph(t)

	t.Run("reachable_across_zones", func(t *testing.T) {
		ok, err := g.IsReachable(1, 5, nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("one_way_prevents_return_traversal", func(t *testing.T) {
		ok, err := g.IsReachable(5, 1, nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("zone_scope_restricts_traversal", func(t *testing.T) {
		// Node 5 is in zone 2; restricting to zone 1 makes it unreachable.
		ok, err := g.IsReachable(1, 5, []int32{1})
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = g.IsReachable(1, 3, []int32{1})
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestGraph_ShortestPath(t *testing.T) {
	t.Run("picks_minimal_total_distance", func(t *testing.T) {
		// Add a long direct edge 1->3; the 1->2->3 chain (5m) must win over 9m.
		g := aisleGraph(t, mustPath(t, 15, 1, 3, 9, false))

		walk, err := g.ShortestPath(1, 3, nil)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, walk.Distance, 1e-9)
		assert.Equal(t, []int32{1, 2, 3}, walk.NodeIDs)
		assert.Equal(t, []int32{10, 11}, walk.PathIDs)
	})

	t.Run("same_node_yields_empty_walk", func(t *testing.T) {
		g := aisleGraph(t)
		walk, err := g.ShortestPath(2, 2, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, walk.Distance, 1e-9)
		assert.Equal(t, []int32{2}, walk.NodeIDs)
		assert.Empty(t, walk.PathIDs)
	})

	t.Run("unreachable_destination_fails_with_no_route", func(t *testing.T) {
		g := aisleGraph(t)
		_, err := g.ShortestPath(5, 1, nil)
		require.ErrorIs(t, err, topology.ErrNoRoute)
	})

	t.Run("blocking_the_only_connection_cuts_the_route", func(t *testing.T) {
		link := mustPath(t, 12, 2, 4, 4, true)
		link.Block()
		nodes := []*topology.Node{
			mustNode(t, 1, 1, topology.NodeKindDock, 0, 0),
			mustNode(t, 2, 1, topology.NodeKindJunction, 2, 0),
			mustNode(t, 4, 2, topology.NodeKindShelfAccess, 2, 4),
		}
		g, err := topology.NewGraph(nodes, []*topology.Path{
			mustPath(t, 10, 1, 2, 2, false),
			link,
		})
		require.NoError(t, err)

		_, err = g.ShortestPath(1, 4, nil)
		require.ErrorIs(t, err, topology.ErrNoRoute)
	})
}
