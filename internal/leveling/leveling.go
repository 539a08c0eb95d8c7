// Package leveling re-derives task dates around finite per-person
// capacity: each assignee's timeline is a serial queue of occupied
// blocks walked in CPM order. A single deterministic first-fit pass, not
// a search.
package leveling

import (
	"math"
	"sort"
	"time"

	"github.com/ben9730/management-app-sub004/internal/calendar"
	"github.com/ben9730/management-app-sub004/internal/cpm"
	"github.com/ben9730/management-app-sub004/internal/graph"
	"github.com/ben9730/management-app-sub004/internal/project"
)

// Allocation is one reserved block on one person's timeline.
type Allocation struct {
	TaskID   string
	PersonID string
	Start    time.Time
	Finish   time.Time
	Days     int
}

// Ledger maps person ID to that person's reserved blocks in start
// order. It is a separate result shape from the task schedule: a task
// with several assignees appears once per assignee here while keeping a
// single set of task-level dates.
type Ledger map[string][]Allocation

var priorityRank = map[string]int{
	project.PriorityCritical: 0,
	project.PriorityHigh:     1,
	project.PriorityMedium:   2,
	project.PriorityLow:      3,
}

// Level serializes each person's assigned tasks against the CPM result.
// Schedules in res are updated in place for single-assignee tasks:
// realized ES/EF replace the CPM dates and slack is recomputed against
// the unchanged LS, going negative when the queue pushes a task past
// it. Multi-assignee tasks keep their CPM dates; their reservations
// appear only in the ledger.
func Level(g *graph.Graph, cal *calendar.WorkCalendar, res *cpm.Result, tasks map[string]project.Task, team []project.TeamMember, timeOff []project.TimeOff, assignments []project.Assignment) (Ledger, error) {
	members := make(map[string]project.TeamMember, len(team))
	for _, m := range team {
		members[m.ID] = m
	}

	assignees := assigneesByTask(tasks, assignments, members)
	if len(assignees) == 0 {
		return Ledger{}, nil
	}

	// Invert to per-person queues.
	queues := make(map[string][]string)
	for taskID, people := range assignees {
		for _, p := range people {
			queues[p] = append(queues[p], taskID)
		}
	}

	topoPos := g.TopoPos()
	ledger := make(Ledger, len(queues))

	personIDs := make([]string, 0, len(queues))
	for p := range queues {
		personIDs = append(personIDs, p)
	}
	sort.Strings(personIDs)

	for _, personID := range personIDs {
		member := members[personID]
		personCal, err := cal.WithTimeOff(member.WorkDays, personTimeOff(timeOff, personID))
		if err != nil {
			return nil, err
		}

		queue := queues[personID]
		sortQueue(queue, res, tasks, topoPos, g)

		var nextFree time.Time
		for _, taskID := range queue {
			ts := res.Tasks[taskID]
			days := personDays(tasks[taskID], member, ts.DurationDays)

			start := ts.ES
			if start.Before(nextFree) {
				start = nextFree
			}
			start = personCal.NextWorkingDay(start)
			finish := personCal.AddWorkingDays(start, days)
			nextFree = finish

			ledger[personID] = append(ledger[personID], Allocation{
				TaskID:   taskID,
				PersonID: personID,
				Start:    start,
				Finish:   finish,
				Days:     days,
			})

			if len(assignees[taskID]) == 1 {
				ts.ES = start
				ts.EF = finish
				ts.Slack = cal.CountWorkingDays(ts.ES, ts.LS)
				ts.IsCritical = ts.Slack == 0
			}
		}
	}

	return ledger, nil
}

// assigneesByTask resolves assignment records per task, falling back to
// the legacy single assignee_id. People not on the team are skipped.
func assigneesByTask(tasks map[string]project.Task, assignments []project.Assignment, members map[string]project.TeamMember) map[string][]string {
	byTask := make(map[string][]string)
	for _, a := range assignments {
		if _, ok := tasks[a.TaskID]; !ok {
			continue
		}
		if _, ok := members[a.PersonID]; !ok {
			continue
		}
		byTask[a.TaskID] = append(byTask[a.TaskID], a.PersonID)
	}
	for id, t := range tasks {
		if len(byTask[id]) == 0 && t.AssigneeID != "" {
			if _, ok := members[t.AssigneeID]; ok {
				byTask[id] = []string{t.AssigneeID}
			}
		}
	}
	for id := range byTask {
		sort.Strings(byTask[id])
	}
	return byTask
}

// sortQueue orders one person's tasks by CPM early start, then
// topological position, then priority, then ID.
func sortQueue(queue []string, res *cpm.Result, tasks map[string]project.Task, topoPos []int, g *graph.Graph) {
	sort.SliceStable(queue, func(i, j int) bool {
		a, b := res.Tasks[queue[i]], res.Tasks[queue[j]]
		if !a.ES.Equal(b.ES) {
			return a.ES.Before(b.ES)
		}
		pa, pb := topoPos[g.Index[queue[i]]], topoPos[g.Index[queue[j]]]
		if pa != pb {
			return pa < pb
		}
		ra, rb := rank(tasks[queue[i]].Priority), rank(tasks[queue[j]].Priority)
		if ra != rb {
			return ra < rb
		}
		return queue[i] < queue[j]
	})
}

func rank(priority string) int {
	if r, ok := priorityRank[priority]; ok {
		return r
	}
	return priorityRank[project.PriorityMedium]
}

// personDays converts a task's effort to this person's working days:
// estimated hours against their daily capacity when both are known,
// otherwise the task-level duration.
func personDays(t project.Task, m project.TeamMember, fallback int) int {
	if t.EstimatedHours > 0 && m.WorkHoursPerDay > 0 {
		return int(math.Ceil(t.EstimatedHours / m.WorkHoursPerDay))
	}
	return fallback
}

func personTimeOff(all []project.TimeOff, personID string) []project.TimeOff {
	var off []project.TimeOff
	for _, t := range all {
		if t.PersonID == personID {
			off = append(off, t)
		}
	}
	return off
}
