package graph

import (
	"fmt"
	"strings"
)

// DanglingReferenceError reports a dependency edge naming a task that is
// not in the snapshot. The whole computation is invalid; no partial
// schedule is produced.
type DanglingReferenceError struct {
	TaskID        string // the missing task
	PredecessorID string
	SuccessorID   string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dependency %s -> %s references unknown task %s",
		e.PredecessorID, e.SuccessorID, e.TaskID)
}

// CycleError reports one concrete dependency cycle, task IDs in cycle
// order (the first ID is reachable again from the last).
type CycleError struct {
	TaskIDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.TaskIDs, " -> "))
}
