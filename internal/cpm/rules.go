package cpm

import (
	"time"

	"github.com/ben9730/management-app-sub004/internal/calendar"
	"github.com/ben9730/management-app-sub004/internal/graph"
)

// kindRule holds the forward and backward bound for one dependency type.
// earliest returns the successor's earliest feasible start given the
// predecessor's schedule; latest returns the predecessor's latest
// feasible finish given the successor's. dur is always the duration of
// the task being bounded.
type kindRule struct {
	earliest func(cal *calendar.WorkCalendar, pred *TaskSchedule, lag, dur int) time.Time
	latest   func(cal *calendar.WorkCalendar, succ *TaskSchedule, lag, dur int) time.Time
}

// rules maps each dependency type to its constraint application. Adding
// a new dependency semantics means adding one entry here.
var rules = map[graph.DepKind]kindRule{
	graph.FinishToStart: {
		// succ.es >= pred.ef + lag
		earliest: func(cal *calendar.WorkCalendar, pred *TaskSchedule, lag, dur int) time.Time {
			return cal.AddWorkingDays(pred.EF, lag)
		},
		// pred.lf <= succ.ls - lag
		latest: func(cal *calendar.WorkCalendar, succ *TaskSchedule, lag, dur int) time.Time {
			return cal.AddWorkingDays(succ.LS, -lag)
		},
	},
	graph.StartToStart: {
		// succ.es >= pred.es + lag
		earliest: func(cal *calendar.WorkCalendar, pred *TaskSchedule, lag, dur int) time.Time {
			return cal.AddWorkingDays(pred.ES, lag)
		},
		// pred.es <= succ.ls - lag, so pred.lf <= that + pred duration
		latest: func(cal *calendar.WorkCalendar, succ *TaskSchedule, lag, dur int) time.Time {
			return cal.AddWorkingDays(cal.AddWorkingDays(succ.LS, -lag), dur)
		},
	},
	graph.FinishToFinish: {
		// succ.ef >= pred.ef + lag, so succ.es >= bound - succ duration
		earliest: func(cal *calendar.WorkCalendar, pred *TaskSchedule, lag, dur int) time.Time {
			return cal.AddWorkingDays(cal.AddWorkingDays(pred.EF, lag), -dur)
		},
		// pred.lf <= succ.lf - lag
		latest: func(cal *calendar.WorkCalendar, succ *TaskSchedule, lag, dur int) time.Time {
			return cal.AddWorkingDays(succ.LF, -lag)
		},
	},
	graph.StartToFinish: {
		// succ.ef >= pred.es + lag, so succ.es >= bound - succ duration
		earliest: func(cal *calendar.WorkCalendar, pred *TaskSchedule, lag, dur int) time.Time {
			return cal.AddWorkingDays(cal.AddWorkingDays(pred.ES, lag), -dur)
		},
		// pred.es <= succ.lf - lag, so pred.lf <= that + pred duration
		latest: func(cal *calendar.WorkCalendar, succ *TaskSchedule, lag, dur int) time.Time {
			return cal.AddWorkingDays(cal.AddWorkingDays(succ.LF, -lag), dur)
		},
	},
}
