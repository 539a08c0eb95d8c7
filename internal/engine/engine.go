// Package engine is the entry point the surrounding app depends on: it
// validates a snapshot, runs the CPM passes, resolves constraints, and
// optionally levels resources. One invocation is a pure synchronous
// computation over immutable inputs; callers own recompute and
// persistence policy.
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/ben9730/management-app-sub004/internal/calendar"
	"github.com/ben9730/management-app-sub004/internal/cpm"
	"github.com/ben9730/management-app-sub004/internal/graph"
	"github.com/ben9730/management-app-sub004/internal/leveling"
	"github.com/ben9730/management-app-sub004/internal/phase"
	"github.com/ben9730/management-app-sub004/internal/project"
)

// ScheduledTask pairs an input task with its computed schedule. Input
// records are never mutated; every call returns fresh copies.
type ScheduledTask struct {
	Input    project.Task
	Schedule cpm.TaskSchedule
}

// Result is the output of one schedule computation.
type Result struct {
	Tasks           []ScheduledTask // topological order
	CriticalPathIDs []string
	ProjectEnd      time.Time
	Allocations     leveling.Ledger // only on the with-resources path
}

// ComputeSchedule runs the CPM-only path.
func ComputeSchedule(tasks []project.Task, deps []project.Dependency, projectStart time.Time, workDays []int, holidays []project.CalendarException) (*Result, error) {
	return compute(tasks, deps, projectStart, workDays, holidays, nil, nil, nil, false)
}

// ComputeScheduleWithResources additionally serializes each assignee's
// occupied time. Leveling activates only when team members and at least
// one assignment (or legacy assignee_id) are present.
func ComputeScheduleWithResources(tasks []project.Task, deps []project.Dependency, projectStart time.Time, workDays []int, holidays []project.CalendarException, team []project.TeamMember, timeOff []project.TimeOff, assignments []project.Assignment) (*Result, error) {
	return compute(tasks, deps, projectStart, workDays, holidays, team, timeOff, assignments, true)
}

// EvaluatePhaseLocks derives per-phase lock verdicts. Invoked by the
// caller independently of schedule computation.
func EvaluatePhaseLocks(phases []project.Phase, tasks []project.Task) map[string]phase.LockStatus {
	return phase.Evaluate(phases, tasks)
}

// ComputePlan is a convenience wrapper over a loaded plan file.
func ComputePlan(plan *project.Plan, withResources bool) (*Result, error) {
	start, err := project.ParseDate(plan.ProjectStart)
	if err != nil {
		return nil, fmt.Errorf("project start: %w", err)
	}
	if withResources {
		return ComputeScheduleWithResources(plan.Tasks, plan.Dependencies, start, plan.WorkDays, plan.Exceptions, plan.Team, plan.TimeOff, plan.Assignments)
	}
	return ComputeSchedule(plan.Tasks, plan.Dependencies, start, plan.WorkDays, plan.Exceptions)
}

func compute(tasks []project.Task, deps []project.Dependency, projectStart time.Time, workDays []int, holidays []project.CalendarException, team []project.TeamMember, timeOff []project.TimeOff, assignments []project.Assignment, withResources bool) (*Result, error) {
	byID, err := validate(tasks)
	if err != nil {
		return nil, err
	}

	g, err := graph.Build(tasks, deps)
	if err != nil {
		return nil, err
	}

	cal, err := calendar.New(workDays, holidays)
	if err != nil {
		return nil, fmt.Errorf("build calendar: %w", err)
	}

	analysis := cpm.Analyze(g, cal, projectStart, byID)

	result := &Result{
		CriticalPathIDs: analysis.CriticalPath,
		ProjectEnd:      analysis.ProjectEnd,
	}

	if withResources {
		ledger, err := leveling.Level(g, cal, analysis, byID, team, timeOff, assignments)
		if err != nil {
			return nil, fmt.Errorf("level resources: %w", err)
		}
		result.Allocations = ledger
		// Leveling may have moved tasks; the project finishes when the
		// last realized finish does.
		for _, ts := range analysis.Tasks {
			if ts.EF.After(result.ProjectEnd) {
				result.ProjectEnd = ts.EF
			}
		}
	}

	// Deadline flags use final EF values, post-leveling when it ran.
	cpm.ApplyDeadlines(byID, analysis.Tasks)

	for _, idx := range g.Topo {
		id := g.IDs[idx]
		result.Tasks = append(result.Tasks, ScheduledTask{
			Input:    byID[id],
			Schedule: *analysis.Tasks[id],
		})
	}

	return result, nil
}

// validate runs all structural checks before any date arithmetic:
// duplicate IDs, negative or non-finite durations, unparseable
// constraint dates. Any failure aborts with no partial output.
func validate(tasks []project.Task) (map[string]project.Task, error) {
	byID := make(map[string]project.Task, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("task with empty id")
		}
		if _, dup := byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate task id %s", t.ID)
		}
		if t.DurationDays < 0 {
			return nil, &InvalidDurationError{TaskID: t.ID, Field: "duration_days", Value: float64(t.DurationDays)}
		}
		if t.EstimatedHours < 0 || math.IsNaN(t.EstimatedHours) || math.IsInf(t.EstimatedHours, 0) {
			return nil, &InvalidDurationError{TaskID: t.ID, Field: "estimated_hours", Value: t.EstimatedHours}
		}
		if t.ConstraintDate != "" {
			switch t.ConstraintType {
			case project.ConstraintStartNoEarlier, project.ConstraintFinishNoLaterThan:
				if _, err := project.ParseDate(t.ConstraintDate); err != nil {
					return nil, fmt.Errorf("task %s: constraint date: %w", t.ID, err)
				}
			}
		}
		byID[t.ID] = t
	}
	return byID, nil
}
