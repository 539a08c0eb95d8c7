// Package graph builds and validates the dependency graph over a
// project's tasks: referential integrity, acyclicity, and a
// deterministic topological order for the scheduling passes.
package graph

import (
	"sort"

	"github.com/ben9730/management-app-sub004/internal/project"
)

// Build indexes the tasks into an arena, attaches the dependency edges,
// and validates the result. It fails with *DanglingReferenceError or
// *CycleError; on failure no graph is returned.
func Build(tasks []project.Task, deps []project.Dependency) (*Graph, error) {
	g := &Graph{
		IDs:   make([]string, 0, len(tasks)),
		Index: make(map[string]int, len(tasks)),
	}

	// Arena order is sorted task ID, so identical snapshots always
	// produce identical graphs regardless of input slice order.
	for _, t := range tasks {
		g.IDs = append(g.IDs, t.ID)
	}
	sort.Strings(g.IDs)
	for i, id := range g.IDs {
		g.Index[id] = i
	}

	g.Out = make([][]int, len(g.IDs))
	g.In = make([][]int, len(g.IDs))

	for _, d := range deps {
		pred, ok := g.Index[d.PredecessorID]
		if !ok {
			return nil, &DanglingReferenceError{TaskID: d.PredecessorID, PredecessorID: d.PredecessorID, SuccessorID: d.SuccessorID}
		}
		succ, ok := g.Index[d.SuccessorID]
		if !ok {
			return nil, &DanglingReferenceError{TaskID: d.SuccessorID, PredecessorID: d.PredecessorID, SuccessorID: d.SuccessorID}
		}
		kind, err := ParseKind(d.Type)
		if err != nil {
			return nil, err
		}
		ei := len(g.Edges)
		g.Edges = append(g.Edges, Edge{Pred: pred, Succ: succ, Kind: kind, Lag: d.LagDays})
		g.Out[pred] = append(g.Out[pred], ei)
		g.In[succ] = append(g.In[succ], ei)
	}

	if cycle := g.findCycle(); cycle != nil {
		return nil, &CycleError{TaskIDs: cycle}
	}

	g.Topo = g.topoSort()
	return g, nil
}

// findCycle runs DFS with three-color marking over the arena. White =
// unvisited, gray = in progress, black = done. Returns one cycle's task
// IDs in forward order, or nil if the graph is acyclic.
func (g *Graph) findCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make([]byte, len(g.IDs))
	parent := make([]int, len(g.IDs))
	for i := range parent {
		parent[i] = -1
	}

	var dfs func(node int) []int
	dfs = func(node int) []int {
		color[node] = gray
		for _, ei := range g.Out[node] {
			next := g.Edges[ei].Succ
			if color[next] == gray {
				// Reconstruct the cycle by walking parents back to next.
				cycle := []int{next, node}
				for cur := node; cur != next; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				// The walk produced reverse order; flip it.
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle[:len(cycle)-1]
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for i := range g.IDs {
		if color[i] == white {
			if cycle := dfs(i); cycle != nil {
				ids := make([]string, len(cycle))
				for j, idx := range cycle {
					ids[j] = g.IDs[idx]
				}
				return ids
			}
		}
	}
	return nil
}

// topoSort runs Kahn's algorithm. Ready nodes are taken in arena (ID)
// order so the result is deterministic. Only called on acyclic graphs.
func (g *Graph) topoSort() []int {
	inDegree := make([]int, len(g.IDs))
	for i := range g.IDs {
		inDegree[i] = len(g.In[i])
	}

	var queue []int
	for i := range g.IDs {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, len(g.IDs))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		var newReady []int
		for _, ei := range g.Out[node] {
			succ := g.Edges[ei].Succ
			inDegree[succ]--
			if inDegree[succ] == 0 {
				newReady = append(newReady, succ)
			}
		}
		sort.Ints(newReady)
		queue = append(queue, newReady...)
	}

	return order
}
