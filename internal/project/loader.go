package project

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// LoadFile reads a plan file from disk and parses it.
func LoadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	plan, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return plan, nil
}

// Parse decodes a plan from JSON. Parsing is deliberately lenient about
// shapes the surrounding app has drifted through over time: durations may
// be numbers or numeric strings, calendar exceptions may be a bare date
// string or a {start, end} object, and work_days accepts either weekday
// indices or names.
func Parse(data []byte) (*Plan, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("plan is not valid JSON")
	}
	root := gjson.ParseBytes(data)

	plan := &Plan{
		ProjectStart: root.Get("project_start").String(),
	}

	for _, wd := range root.Get("work_days").Array() {
		idx, err := weekdayIndex(wd)
		if err != nil {
			return nil, err
		}
		plan.WorkDays = append(plan.WorkDays, idx)
	}

	for _, ex := range root.Get("calendar_exceptions").Array() {
		plan.Exceptions = append(plan.Exceptions, parseException(ex))
	}

	for _, t := range root.Get("tasks").Array() {
		task, err := parseTask(t)
		if err != nil {
			return nil, err
		}
		plan.Tasks = append(plan.Tasks, task)
	}

	for _, d := range root.Get("dependencies").Array() {
		plan.Dependencies = append(plan.Dependencies, Dependency{
			PredecessorID: d.Get("predecessor_id").String(),
			SuccessorID:   d.Get("successor_id").String(),
			Type:          strings.ToUpper(d.Get("type").String()),
			LagDays:       int(d.Get("lag_days").Int()),
		})
	}

	for _, m := range root.Get("team_members").Array() {
		member := TeamMember{
			ID:              m.Get("id").String(),
			Name:            m.Get("name").String(),
			WorkHoursPerDay: m.Get("work_hours_per_day").Float(),
			HourlyRate:      m.Get("hourly_rate").Float(),
		}
		for _, wd := range m.Get("work_days").Array() {
			idx, err := weekdayIndex(wd)
			if err != nil {
				return nil, fmt.Errorf("team member %s: %w", member.ID, err)
			}
			member.WorkDays = append(member.WorkDays, idx)
		}
		plan.Team = append(plan.Team, member)
	}

	for _, to := range root.Get("time_off").Array() {
		plan.TimeOff = append(plan.TimeOff, TimeOff{
			PersonID: to.Get("person_id").String(),
			Start:    to.Get("start").String(),
			End:      to.Get("end").String(),
		})
	}

	for _, a := range root.Get("assignments").Array() {
		plan.Assignments = append(plan.Assignments, Assignment{
			TaskID:   a.Get("task_id").String(),
			PersonID: a.Get("person_id").String(),
		})
	}

	for _, p := range root.Get("phases").Array() {
		plan.Phases = append(plan.Phases, Phase{
			ID:     p.Get("id").String(),
			Name:   p.Get("name").String(),
			Order:  int(p.Get("phase_order").Int()),
			Status: p.Get("status").String(),
		})
	}

	return plan, nil
}

func parseTask(t gjson.Result) (Task, error) {
	task := Task{
		ID:             t.Get("id").String(),
		Name:           t.Get("name").String(),
		PhaseID:        t.Get("phase_id").String(),
		Status:         t.Get("status").String(),
		Priority:       t.Get("priority").String(),
		AssigneeID:     t.Get("assignee_id").String(),
		ConstraintType: t.Get("constraint_type").String(),
		ConstraintDate: t.Get("constraint_date").String(),
	}
	if task.ID == "" {
		return Task{}, fmt.Errorf("task missing id: %s", t.Raw)
	}
	if task.Status == "" {
		task.Status = StatusPending
	}

	// duration_days: number or numeric string. Fractional days round up
	// to whole working days, same as the estimated-hours path.
	dur := t.Get("duration_days")
	if !dur.Exists() {
		dur = t.Get("duration") // older plan files
	}
	if dur.Exists() {
		f := dur.Float()
		if dur.Type == gjson.String {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(dur.Str), 64)
			if err != nil {
				return Task{}, fmt.Errorf("task %s: bad duration %q", task.ID, dur.Str)
			}
			f = parsed
		}
		task.DurationDays = int(math.Ceil(f))
	}
	task.EstimatedHours = t.Get("estimated_hours").Float()

	return task, nil
}

// parseException accepts either a bare "YYYY-MM-DD" string or an object
// with start/end/kind fields.
func parseException(ex gjson.Result) CalendarException {
	if ex.Type == gjson.String {
		return CalendarException{Start: ex.String(), Kind: "non_working"}
	}
	kind := ex.Get("kind").String()
	if kind == "" {
		kind = "non_working"
	}
	return CalendarException{
		Start: firstOf(ex, "start", "date"),
		End:   ex.Get("end").String(),
		Kind:  kind,
	}
}

func firstOf(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() {
			return v.String()
		}
	}
	return ""
}

var weekdayNames = map[string]int{
	"sunday": 0, "sun": 0,
	"monday": 1, "mon": 1,
	"tuesday": 2, "tue": 2,
	"wednesday": 3, "wed": 3,
	"thursday": 4, "thu": 4,
	"friday": 5, "fri": 5,
	"saturday": 6, "sat": 6,
}

func weekdayIndex(v gjson.Result) (int, error) {
	if v.Type == gjson.Number {
		idx := int(v.Int())
		if idx < 0 || idx > 6 {
			return 0, fmt.Errorf("work day index out of range: %d", idx)
		}
		return idx, nil
	}
	if idx, ok := weekdayNames[strings.ToLower(v.String())]; ok {
		return idx, nil
	}
	return 0, fmt.Errorf("unknown work day: %s", v.String())
}
