package cpm

import "time"

// Result holds the complete critical path analysis for one snapshot.
type Result struct {
	Tasks        map[string]*TaskSchedule
	CriticalPath []string // zero-slack task IDs in topological order
	ProjectEnd   time.Time
}

// TaskSchedule holds the scheduling output for a single task. Dates are
// UTC midnights; Slack is integral working days with no tolerance band.
type TaskSchedule struct {
	TaskID       string
	DurationDays int
	ES, EF       time.Time // earliest start/finish
	LS, LF       time.Time // latest start/finish
	Slack        int
	IsCritical   bool

	// Report-only constraint flags (never fatal).
	ConstraintOverridden bool
	OverriddenByID       string // driving predecessor
	OverriddenByName     string
	DeadlineViolated     bool
	MissedDeadline       time.Time
}
