// Package phase derives whether each project phase may start. Pure
// function over phases and tasks: no state, no I/O, same inputs always
// give the same verdicts.
package phase

import (
	"sort"

	"github.com/ben9730/management-app-sub004/internal/project"
)

// Lock reasons.
const (
	ReasonFirstPhase         = "first_phase"
	ReasonPreviousComplete   = "previous_phase_complete"
	ReasonPreviousIncomplete = "previous_phase_incomplete"
)

// LockStatus is the verdict for one phase. BlockedByID/Name are set
// only when Locked.
type LockStatus struct {
	Locked        bool
	Reason        string
	BlockedByID   string
	BlockedByName string
}

// Evaluate returns a verdict per phase ID. A phase is unlocked if it is
// first by phase_order or if every task of the immediately preceding
// phase is done. A preceding phase with no tasks never blocks.
func Evaluate(phases []project.Phase, tasks []project.Task) map[string]LockStatus {
	ordered := make([]project.Phase, len(phases))
	copy(ordered, phases)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	total := make(map[string]int, len(ordered))
	done := make(map[string]int, len(ordered))
	for _, t := range tasks {
		if t.PhaseID == "" {
			continue
		}
		total[t.PhaseID]++
		if t.Status == project.StatusDone {
			done[t.PhaseID]++
		}
	}

	out := make(map[string]LockStatus, len(ordered))
	for i, p := range ordered {
		if i == 0 {
			out[p.ID] = LockStatus{Reason: ReasonFirstPhase}
			continue
		}
		prev := ordered[i-1]
		if done[prev.ID] == total[prev.ID] {
			out[p.ID] = LockStatus{Reason: ReasonPreviousComplete}
			continue
		}
		out[p.ID] = LockStatus{
			Locked:        true,
			Reason:        ReasonPreviousIncomplete,
			BlockedByID:   prev.ID,
			BlockedByName: prev.Name,
		}
	}
	return out
}
