// Package cpm runs the forward and backward Critical Path Method passes
// over a validated dependency graph, producing early/late dates, slack,
// and the critical-path set, all in calendar working days.
package cpm

import (
	"math"
	"time"

	"github.com/ben9730/management-app-sub004/internal/calendar"
	"github.com/ben9730/management-app-sub004/internal/graph"
	"github.com/ben9730/management-app-sub004/internal/project"
)

// HoursPerDay converts estimated hours to working days when a task has
// no explicit duration.
const HoursPerDay = 8.0

// DurationDays derives a task's duration in working days: an explicit
// duration wins, then estimated hours rounded up to whole days, then
// zero (milestone). Inputs are assumed validated; see engine.Validate.
func DurationDays(t project.Task) int {
	if t.DurationDays > 0 {
		return t.DurationDays
	}
	if t.EstimatedHours > 0 {
		return int(math.Ceil(t.EstimatedHours / HoursPerDay))
	}
	return 0
}

// Analyze runs both passes plus start-constraint resolution. The graph
// must already be validated; tasks maps ID to the input record. The
// project start is rolled forward to the first working day.
func Analyze(g *graph.Graph, cal *calendar.WorkCalendar, projectStart time.Time, tasks map[string]project.Task) *Result {
	start := cal.NextWorkingDay(projectStart)

	result := &Result{Tasks: make(map[string]*TaskSchedule, len(g.IDs))}
	sched := make([]*TaskSchedule, len(g.IDs))
	for i, id := range g.IDs {
		sched[i] = &TaskSchedule{TaskID: id, DurationDays: DurationDays(tasks[id])}
		result.Tasks[id] = sched[i]
	}

	// Forward pass: ES is the max over all incoming constraints, with
	// the project start as the base case.
	for _, idx := range g.Topo {
		ts := sched[idx]
		es := start
		driving := -1
		for _, ei := range g.In[idx] {
			e := g.Edges[ei]
			cand := rules[e.Kind].earliest(cal, sched[e.Pred], e.Lag, ts.DurationDays)
			if cand.After(es) {
				es = cand
				driving = e.Pred
			}
		}
		resolveStartConstraint(ts, tasks[ts.TaskID], cal, es, driving, g, tasks)
		ts.EF = cal.AddWorkingDays(ts.ES, ts.DurationDays)
	}

	// Project end is the latest early finish across all tasks.
	end := start
	for _, ts := range sched {
		if ts.EF.After(end) {
			end = ts.EF
		}
	}
	result.ProjectEnd = end

	// Backward pass in reverse topological order: LF is the min over
	// all outgoing constraints; tasks with no successors finish the
	// project.
	for i := len(g.Topo) - 1; i >= 0; i-- {
		idx := g.Topo[i]
		ts := sched[idx]
		lf := end
		for _, ei := range g.Out[idx] {
			e := g.Edges[ei]
			bound := rules[e.Kind].latest(cal, sched[e.Succ], e.Lag, ts.DurationDays)
			if bound.Before(lf) {
				lf = bound
			}
		}
		ts.LF = lf
		ts.LS = cal.AddWorkingDays(lf, -ts.DurationDays)
		ts.Slack = cal.CountWorkingDays(ts.ES, ts.LS)
		ts.IsCritical = ts.Slack == 0
	}

	// The critical path may be several parallel zero-slack chains; all
	// of them are reported, in topological order.
	for _, idx := range g.Topo {
		if sched[idx].IsCritical {
			result.CriticalPath = append(result.CriticalPath, sched[idx].TaskID)
		}
	}

	return result
}

// resolveStartConstraint finalizes a task's ES against its own
// start_no_earlier_than constraint. The constraint date is a floor,
// rolled forward to a working day like every other computed date: it
// wins over an earlier unconstrained ES. When a predecessor forces a
// start past the floor the dependency wins and the task is flagged,
// carrying the driving predecessor for caller-side reporting.
func resolveStartConstraint(ts *TaskSchedule, t project.Task, cal *calendar.WorkCalendar, es time.Time, driving int, g *graph.Graph, tasks map[string]project.Task) {
	ts.ES = es
	if t.ConstraintType != project.ConstraintStartNoEarlier || t.ConstraintDate == "" {
		return
	}
	cd, err := project.ParseDate(t.ConstraintDate)
	if err != nil {
		return // rejected earlier by engine validation
	}
	floor := cal.NextWorkingDay(cd)
	switch {
	case es.Before(floor):
		ts.ES = floor
	case es.After(floor) && driving >= 0:
		ts.ConstraintOverridden = true
		ts.OverriddenByID = g.IDs[driving]
		ts.OverriddenByName = tasks[g.IDs[driving]].Name
	}
}

// ApplyDeadlines flags finish_no_later_than violations once final EF
// values are known — after leveling when leveling ran. Report-only; the
// schedule itself is untouched.
func ApplyDeadlines(tasks map[string]project.Task, sched map[string]*TaskSchedule) {
	for id, ts := range sched {
		t := tasks[id]
		if t.ConstraintType != project.ConstraintFinishNoLaterThan || t.ConstraintDate == "" {
			continue
		}
		cd, err := project.ParseDate(t.ConstraintDate)
		if err != nil {
			continue
		}
		if ts.EF.After(cd) {
			ts.DeadlineViolated = true
			ts.MissedDeadline = cd
		}
	}
}
