package project

import "time"

// Task statuses as stored by the surrounding app.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Constraint types a task may carry.
const (
	ConstraintNone              = "none"
	ConstraintStartNoEarlier    = "start_no_earlier_than"
	ConstraintFinishNoLaterThan = "finish_no_later_than"
)

// Priority levels, highest first. Used only as a leveling tie-break.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Task is one task in the caller-supplied snapshot. Scheduling output
// fields that may be present from a previous computation are ignored as
// input; the engine returns fresh records.
type Task struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	PhaseID        string  `json:"phase_id,omitempty"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority,omitempty"`
	DurationDays   int     `json:"duration_days,omitempty"`
	EstimatedHours float64 `json:"estimated_hours,omitempty"`
	AssigneeID     string  `json:"assignee_id,omitempty"` // legacy single assignee
	ConstraintType string  `json:"constraint_type,omitempty"`
	ConstraintDate string  `json:"constraint_date,omitempty"` // YYYY-MM-DD
}

// Dependency is an ordered edge between two tasks.
type Dependency struct {
	PredecessorID string `json:"predecessor_id"`
	SuccessorID   string `json:"successor_id"`
	Type          string `json:"type"`     // FS, SS, FF, SF
	LagDays       int    `json:"lag_days"` // negative = lead
}

// CalendarException marks a date or date range as non-working for the
// whole project. End is inclusive; an empty End means a single date.
type CalendarException struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end,omitempty"`
	Kind  string `json:"kind,omitempty"` // "holiday" or "non_working"
}

// Expand returns each individual calendar date covered by the exception.
func (e CalendarException) Expand() ([]time.Time, error) {
	start, err := ParseDate(e.Start)
	if err != nil {
		return nil, err
	}
	end := start
	if e.End != "" {
		end, err = ParseDate(e.End)
		if err != nil {
			return nil, err
		}
	}
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// TeamMember is an assignable person. WorkDays is a set of weekday
// indices (0 = Sunday); when empty the project work week applies.
type TeamMember struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	WorkHoursPerDay float64 `json:"work_hours_per_day,omitempty"`
	WorkDays        []int   `json:"work_days,omitempty"`
	HourlyRate      float64 `json:"hourly_rate,omitempty"`
}

// TimeOff is a per-person non-working date range, inclusive of both ends.
type TimeOff struct {
	PersonID string `json:"person_id"`
	Start    string `json:"start"`
	End      string `json:"end,omitempty"`
}

// Assignment maps a task to one person. Tasks may carry several; the
// legacy Task.AssigneeID is folded in when no Assignment rows exist.
type Assignment struct {
	TaskID   string `json:"task_id"`
	PersonID string `json:"person_id"`
}

// Phase is one project phase. Lock status is derived, never stored.
type Phase struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Order  int    `json:"phase_order"`
	Status string `json:"status,omitempty"`
}

// Plan is the full immutable snapshot handed to the engine.
type Plan struct {
	ProjectStart string              `json:"project_start"` // YYYY-MM-DD
	WorkDays     []int               `json:"work_days,omitempty"`
	Exceptions   []CalendarException `json:"calendar_exceptions,omitempty"`
	Tasks        []Task              `json:"tasks"`
	Dependencies []Dependency        `json:"dependencies,omitempty"`
	Team         []TeamMember        `json:"team_members,omitempty"`
	TimeOff      []TimeOff           `json:"time_off,omitempty"`
	Assignments  []Assignment        `json:"assignments,omitempty"`
	Phases       []Phase             `json:"phases,omitempty"`
}

// DateLayout is the wire format for all dates in a plan.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a date back to the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
