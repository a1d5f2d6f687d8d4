package topology

import (
	"container/heap"
	"errors"
	"math"

	"fulfillment/internal/pkg/errs"
)

// ErrNoRoute is returned when two nodes are not connected by any sequence of
// usable paths under the requested zone scope.
var ErrNoRoute = errors.New("no usable route between nodes")

// Edge is one usable outgoing connection of a node, as seen by the routing
// engine: blocked paths are excluded and one-way paths appear only in their
// permitted direction.
type Edge struct {
	PathID   int32
	To       int32
	Distance float64
}

// Walk is a concrete traversal between two nodes: the visited node ids, the
// path ids connecting each consecutive pair, and the summed distance.
type Walk struct {
	Distance float64
	NodeIDs  []int32
	PathIDs  []int32
}

// arc is the arena-internal adjacency entry, referencing nodes by index.
type arc struct {
	pathID   int32
	toIdx    int
	distance float64
}

// Graph is an immutable snapshot of the warehouse topology for one tenant.
// Nodes and paths live in index-based arenas; adjacency references nodes by
// arena index. Build a fresh Graph after administrative edits.
type Graph struct {
	nodes []*Node
	idx   map[int32]int
	adj   [][]arc
}

// NewGraph builds the adjacency structure from nodes and paths. Blocked paths
// are excluded entirely; one-way paths produce a single directed arc, all
// others produce one arc per direction. Paths referencing unknown nodes are
// rejected.
func NewGraph(nodes []*Node, paths []*Path) (*Graph, error) {
	g := &Graph{
		nodes: make([]*Node, 0, len(nodes)),
		idx:   make(map[int32]int, len(nodes)),
		adj:   make([][]arc, len(nodes)),
	}

	for _, n := range nodes {
		if _, dup := g.idx[n.ID()]; dup {
			return nil, errs.NewValueIsInvalidError("duplicate node id")
		}
		g.idx[n.ID()] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}

	for _, p := range paths {
		if !p.IsUsable() {
			continue
		}

		fromIdx, ok := g.idx[p.From()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("path from node", p.From())
		}
		toIdx, ok := g.idx[p.To()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("path to node", p.To())
		}

		g.adj[fromIdx] = append(g.adj[fromIdx], arc{pathID: p.ID(), toIdx: toIdx, distance: p.Distance()})
		if !p.IsOneWay() {
			g.adj[toIdx] = append(g.adj[toIdx], arc{pathID: p.ID(), toIdx: fromIdx, distance: p.Distance()})
		}
	}

	return g, nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id int32) (*Node, error) {
	i, ok := g.idx[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("node", id)
	}
	return g.nodes[i], nil
}

// Neighbors returns every usable outgoing edge of the node, honoring one-way
// direction and excluding blocked paths.
func (g *Graph) Neighbors(nodeID int32) ([]Edge, error) {
	i, ok := g.idx[nodeID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("node", nodeID)
	}

	edges := make([]Edge, 0, len(g.adj[i]))
	for _, a := range g.adj[i] {
		edges = append(edges, Edge{
			PathID:   a.pathID,
			To:       g.nodes[a.toIdx].ID(),
			Distance: a.distance,
		})
	}
	return edges, nil
}

// IsReachable reports whether a traversal from one node to the other exists
// using only usable edges whose endpoints lie inside the given zone set.
// An empty zone set means no zone restriction.
func (g *Graph) IsReachable(from, to int32, withinZones []int32) (bool, error) {
	walk, err := g.ShortestPath(from, to, withinZones)
	if errors.Is(err, ErrNoRoute) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return walk.NodeIDs != nil || from == to, nil
}

// ShortestPath runs Dijkstra from one node to the other, restricted to the
// zone set (empty set = unrestricted). Returns ErrNoRoute when the destination
// cannot be reached.
func (g *Graph) ShortestPath(from, to int32, withinZones []int32) (Walk, error) {
	fromIdx, ok := g.idx[from]
	if !ok {
		return Walk{}, errs.NewObjectNotFoundError("node", from)
	}
	toIdx, ok := g.idx[to]
	if !ok {
		return Walk{}, errs.NewObjectNotFoundError("node", to)
	}

	allowed := g.zoneFilter(withinZones)
	if !allowed(fromIdx) || !allowed(toIdx) {
		return Walk{}, ErrNoRoute
	}

	if fromIdx == toIdx {
		return Walk{NodeIDs: []int32{from}}, nil
	}

	dist := make([]float64, len(g.nodes))
	prevNode := make([]int, len(g.nodes))
	prevPath := make([]int32, len(g.nodes))
	for i := range dist {
		dist[i] = math.Inf(1)
		prevNode[i] = -1
	}
	dist[fromIdx] = 0

	pq := &nodeQueue{{idx: fromIdx, dist: 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(nodeItem)
		if cur.dist > dist[cur.idx] {
			continue
		}
		if cur.idx == toIdx {
			break
		}

		for _, a := range g.adj[cur.idx] {
			if !allowed(a.toIdx) {
				continue
			}
			candidate := cur.dist + a.distance
			if candidate < dist[a.toIdx] {
				dist[a.toIdx] = candidate
				prevNode[a.toIdx] = cur.idx
				prevPath[a.toIdx] = a.pathID
				heap.Push(pq, nodeItem{idx: a.toIdx, dist: candidate})
			}
		}
	}

	if math.IsInf(dist[toIdx], 1) {
		return Walk{}, ErrNoRoute
	}

	// Rebuild the walk backwards from the destination.
	var nodeIDs []int32
	var pathIDs []int32
	for i := toIdx; i != fromIdx; i = prevNode[i] {
		nodeIDs = append(nodeIDs, g.nodes[i].ID())
		pathIDs = append(pathIDs, prevPath[i])
	}
	nodeIDs = append(nodeIDs, from)
	reverse(nodeIDs)
	reverse(pathIDs)

	return Walk{Distance: dist[toIdx], NodeIDs: nodeIDs, PathIDs: pathIDs}, nil
}

func (g *Graph) zoneFilter(withinZones []int32) func(int) bool {
	if len(withinZones) == 0 {
		return func(int) bool { return true }
	}

	zones := make(map[int32]struct{}, len(withinZones))
	for _, z := range withinZones {
		zones[z] = struct{}{}
	}
	return func(idx int) bool {
		_, ok := zones[g.nodes[idx].ZoneID()]
		return ok
	}
}

func reverse(s []int32) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

type nodeItem struct {
	idx  int
	dist float64
}

type nodeQueue []nodeItem

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(nodeItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
