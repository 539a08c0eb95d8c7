// Package calendar implements working-day arithmetic over a weekly work
// pattern and a set of non-working dates. All dates are UTC midnights;
// callers normalize before handing them in.
package calendar

import (
	"fmt"
	"time"

	"github.com/ben9730/management-app-sub004/internal/project"
)

// WorkCalendar answers working-day questions for one project. The zero
// value is not usable; construct with New.
type WorkCalendar struct {
	workDays   [7]bool
	nonWorking map[string]bool // YYYY-MM-DD -> true
}

// DefaultWorkDays is the Sun–Thu work week the surrounding app defaults
// to when a project carries no explicit pattern.
var DefaultWorkDays = []int{0, 1, 2, 3, 4}

// New builds a calendar from weekday indices (0 = Sunday) and expanded
// calendar exceptions. An empty workDays falls back to DefaultWorkDays;
// an index outside 0..6 is an error.
func New(workDays []int, exceptions []project.CalendarException) (*WorkCalendar, error) {
	if len(workDays) == 0 {
		workDays = DefaultWorkDays
	}
	c := &WorkCalendar{nonWorking: make(map[string]bool)}
	for _, wd := range workDays {
		if wd < 0 || wd > 6 {
			return nil, fmt.Errorf("work day index out of range: %d", wd)
		}
		c.workDays[wd] = true
	}
	for _, ex := range exceptions {
		dates, err := ex.Expand()
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			c.nonWorking[project.FormatDate(d)] = true
		}
	}
	return c, nil
}

// WithTimeOff returns a person-scoped view of the calendar: the project's
// pattern and holidays plus that person's time off, and optionally the
// person's own weekday pattern. The receiver is not modified.
func (c *WorkCalendar) WithTimeOff(workDays []int, off []project.TimeOff) (*WorkCalendar, error) {
	p := &WorkCalendar{workDays: c.workDays, nonWorking: make(map[string]bool, len(c.nonWorking))}
	for k := range c.nonWorking {
		p.nonWorking[k] = true
	}
	if len(workDays) > 0 {
		p.workDays = [7]bool{}
		for _, wd := range workDays {
			if wd < 0 || wd > 6 {
				return nil, fmt.Errorf("work day index out of range: %d", wd)
			}
			p.workDays[wd] = true
		}
	}
	for _, t := range off {
		dates, err := project.CalendarException{Start: t.Start, End: t.End}.Expand()
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			p.nonWorking[project.FormatDate(d)] = true
		}
	}
	return p, nil
}

// IsWorkingDay reports whether date falls on the weekly pattern and is
// not an exception date.
func (c *WorkCalendar) IsWorkingDay(date time.Time) bool {
	if !c.workDays[int(date.Weekday())] {
		return false
	}
	return !c.nonWorking[project.FormatDate(date)]
}

// AddWorkingDays steps n working days from date. Each step lands on the
// next (or previous, for negative n) working day. n == 0 returns date
// unchanged even when date itself is non-working; rolling a non-working
// start forward is the caller's policy.
func (c *WorkCalendar) AddWorkingDays(date time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
		n = -n
	}
	for i := 0; i < n; i++ {
		date = date.AddDate(0, 0, step)
		for !c.IsWorkingDay(date) {
			date = date.AddDate(0, 0, step)
		}
	}
	return date
}

// NextWorkingDay rolls date forward to the first working day at or after
// it.
func (c *WorkCalendar) NextWorkingDay(date time.Time) time.Time {
	for !c.IsWorkingDay(date) {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

// CountWorkingDays counts working-day steps from start to end, signed.
// It is the inverse of AddWorkingDays when both endpoints are working
// days: CountWorkingDays(d, AddWorkingDays(d, n)) == n.
func (c *WorkCalendar) CountWorkingDays(start, end time.Time) int {
	if start.Equal(end) {
		return 0
	}
	step := 1
	if end.Before(start) {
		step = -1
	}
	n := 0
	for d := start; !d.Equal(end); {
		d = d.AddDate(0, 0, step)
		if c.IsWorkingDay(d) {
			n += step
		}
	}
	return n
}
