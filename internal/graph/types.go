package graph

import "fmt"

// DepKind is the dependency type between two tasks.
type DepKind int

const (
	FinishToStart  DepKind = iota // FS: successor starts after predecessor finishes
	StartToStart                  // SS: successor starts after predecessor starts
	FinishToFinish                // FF: successor finishes after predecessor finishes
	StartToFinish                 // SF: successor finishes after predecessor starts
)

var kindNames = map[DepKind]string{
	FinishToStart:  "FS",
	StartToStart:   "SS",
	FinishToFinish: "FF",
	StartToFinish:  "SF",
}

func (k DepKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("DepKind(%d)", int(k))
}

// ParseKind parses a dependency type string. An empty type means FS,
// which is what the surrounding app stores for plain dependencies.
func ParseKind(s string) (DepKind, error) {
	switch s {
	case "", "FS":
		return FinishToStart, nil
	case "SS":
		return StartToStart, nil
	case "FF":
		return FinishToFinish, nil
	case "SF":
		return StartToFinish, nil
	}
	return 0, fmt.Errorf("unknown dependency type %q", s)
}

// Edge is one validated dependency, with endpoints as arena indices.
type Edge struct {
	Pred int
	Succ int
	Kind DepKind
	Lag  int // working days; negative = lead
}

// Graph is a validated dependency graph over a project's tasks. Tasks
// live in an arena indexed by position; all adjacency uses integer
// indices rather than IDs or pointers.
type Graph struct {
	IDs   []string       // arena index -> task ID
	Index map[string]int // task ID -> arena index
	Edges []Edge
	Out   [][]int // arena index -> indices into Edges (outgoing)
	In    [][]int // arena index -> indices into Edges (incoming)
	Topo  []int   // arena indices in topological order
}

// TopoPos returns each arena index's position in the topological order.
func (g *Graph) TopoPos() []int {
	pos := make([]int, len(g.IDs))
	for i, idx := range g.Topo {
		pos[idx] = i
	}
	return pos
}
