package cpm

import (
	"testing"
	"time"

	"github.com/ben9730/management-app-sub004/internal/calendar"
	"github.com/ben9730/management-app-sub004/internal/graph"
	"github.com/ben9730/management-app-sub004/internal/project"
)

// All tests use a Sun–Thu work week with 2025-01-05 (a Sunday) as the
// project start, matching the surrounding app's defaults.
var sunThu = []int{0, 1, 2, 3, 4}

const start = "2025-01-05"

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := project.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %s: %v", s, err)
	}
	return d
}

func analyze(t *testing.T, tasks []project.Task, deps []project.Dependency) *Result {
	t.Helper()
	g, err := graph.Build(tasks, deps)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	cal, err := calendar.New(sunThu, nil)
	if err != nil {
		t.Fatalf("build calendar: %v", err)
	}
	byID := make(map[string]project.Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}
	return Analyze(g, cal, date(t, start), byID)
}

func assertSchedule(t *testing.T, ts *TaskSchedule, es, ef, ls, lf string, slack int, critical bool) {
	t.Helper()
	if got := project.FormatDate(ts.ES); got != es {
		t.Errorf("task %s: ES = %s, want %s", ts.TaskID, got, es)
	}
	if got := project.FormatDate(ts.EF); got != ef {
		t.Errorf("task %s: EF = %s, want %s", ts.TaskID, got, ef)
	}
	if got := project.FormatDate(ts.LS); got != ls {
		t.Errorf("task %s: LS = %s, want %s", ts.TaskID, got, ls)
	}
	if got := project.FormatDate(ts.LF); got != lf {
		t.Errorf("task %s: LF = %s, want %s", ts.TaskID, got, lf)
	}
	if ts.Slack != slack {
		t.Errorf("task %s: slack = %d, want %d", ts.TaskID, ts.Slack, slack)
	}
	if ts.IsCritical != critical {
		t.Errorf("task %s: critical = %v, want %v", ts.TaskID, ts.IsCritical, critical)
	}
}

func TestAnalyze_LinearFSChain(t *testing.T) {
	// A(2) -> B(3), FS lag 0. Both critical, B starts exactly on A's EF.
	tasks := []project.Task{
		{ID: "a", Name: "A", DurationDays: 2},
		{ID: "b", Name: "B", DurationDays: 3},
	}
	deps := []project.Dependency{{PredecessorID: "a", SuccessorID: "b", Type: "FS"}}

	result := analyze(t, tasks, deps)

	assertSchedule(t, result.Tasks["a"], "2025-01-05", "2025-01-07", "2025-01-05", "2025-01-07", 0, true)
	assertSchedule(t, result.Tasks["b"], "2025-01-07", "2025-01-12", "2025-01-07", "2025-01-12", 0, true)

	if got := project.FormatDate(result.ProjectEnd); got != "2025-01-12" {
		t.Errorf("project end = %s, want 2025-01-12", got)
	}
	if len(result.CriticalPath) != 2 {
		t.Errorf("critical path = %v, want both tasks", result.CriticalPath)
	}
}

func TestAnalyze_StartToStartWithLag(t *testing.T) {
	// A(4) -> B(2), SS lag 1: B starts one working day after A starts,
	// independent of A's duration.
	tasks := []project.Task{
		{ID: "a", Name: "A", DurationDays: 4},
		{ID: "b", Name: "B", DurationDays: 2},
	}
	deps := []project.Dependency{{PredecessorID: "a", SuccessorID: "b", Type: "SS", LagDays: 1}}

	result := analyze(t, tasks, deps)

	if got := project.FormatDate(result.Tasks["b"].ES); got != "2025-01-06" {
		t.Errorf("B.ES = %s, want 2025-01-06", got)
	}
}

func TestAnalyze_FinishToFinish(t *testing.T) {
	// A(2), B(1) with FF lag 0: B must finish no earlier than A.
	tasks := []project.Task{
		{ID: "a", Name: "A", DurationDays: 2},
		{ID: "b", Name: "B", DurationDays: 1},
	}
	deps := []project.Dependency{{PredecessorID: "a", SuccessorID: "b", Type: "FF"}}

	result := analyze(t, tasks, deps)

	a, b := result.Tasks["a"], result.Tasks["b"]
	if b.EF.Before(a.EF) {
		t.Errorf("B.EF %s earlier than A.EF %s", project.FormatDate(b.EF), project.FormatDate(a.EF))
	}
	if got := project.FormatDate(b.ES); got != "2025-01-06" {
		t.Errorf("B.ES = %s, want 2025-01-06", got)
	}
}

func TestAnalyze_StartToFinish(t *testing.T) {
	// A(2) -> B(1), SF lag 3: B finishes 3 working days after A starts.
	tasks := []project.Task{
		{ID: "a", Name: "A", DurationDays: 2},
		{ID: "b", Name: "B", DurationDays: 1},
	}
	deps := []project.Dependency{{PredecessorID: "a", SuccessorID: "b", Type: "SF", LagDays: 3}}

	result := analyze(t, tasks, deps)

	if got := project.FormatDate(result.Tasks["b"].EF); got != "2025-01-08" {
		t.Errorf("B.EF = %s, want 2025-01-08", got)
	}
}

func TestAnalyze_DiamondSlack(t *testing.T) {
	// A(1) -> {B(1), C(3)} -> D(1). B has 2 days of slack; A, C, D are
	// the critical chain.
	tasks := []project.Task{
		{ID: "a", DurationDays: 1},
		{ID: "b", DurationDays: 1},
		{ID: "c", DurationDays: 3},
		{ID: "d", DurationDays: 1},
	}
	deps := []project.Dependency{
		{PredecessorID: "a", SuccessorID: "b"},
		{PredecessorID: "a", SuccessorID: "c"},
		{PredecessorID: "b", SuccessorID: "d"},
		{PredecessorID: "c", SuccessorID: "d"},
	}

	result := analyze(t, tasks, deps)

	assertSchedule(t, result.Tasks["b"], "2025-01-06", "2025-01-07", "2025-01-08", "2025-01-09", 2, false)
	for _, id := range []string{"a", "c", "d"} {
		if !result.Tasks[id].IsCritical {
			t.Errorf("expected task %s to be critical", id)
		}
	}
	want := []string{"a", "c", "d"}
	if len(result.CriticalPath) != len(want) {
		t.Fatalf("critical path = %v, want %v", result.CriticalPath, want)
	}
	for i, id := range want {
		if result.CriticalPath[i] != id {
			t.Errorf("critical path = %v, want %v", result.CriticalPath, want)
			break
		}
	}
}

func TestAnalyze_ParallelZeroSlackChains(t *testing.T) {
	// Two equal-length independent chains: every task is critical even
	// though there is no single path.
	tasks := []project.Task{
		{ID: "a1", DurationDays: 2},
		{ID: "a2", DurationDays: 2},
		{ID: "b1", DurationDays: 2},
		{ID: "b2", DurationDays: 2},
	}
	deps := []project.Dependency{
		{PredecessorID: "a1", SuccessorID: "a2"},
		{PredecessorID: "b1", SuccessorID: "b2"},
	}

	result := analyze(t, tasks, deps)

	if len(result.CriticalPath) != 4 {
		t.Errorf("expected all 4 tasks critical, got %v", result.CriticalPath)
	}
}

func TestAnalyze_Milestone(t *testing.T) {
	// Zero-duration task: EF == ES.
	tasks := []project.Task{
		{ID: "a", DurationDays: 2},
		{ID: "m"},
	}
	deps := []project.Dependency{{PredecessorID: "a", SuccessorID: "m"}}

	result := analyze(t, tasks, deps)

	m := result.Tasks["m"]
	if !m.EF.Equal(m.ES) {
		t.Errorf("milestone EF %s != ES %s", project.FormatDate(m.EF), project.FormatDate(m.ES))
	}
	if got := project.FormatDate(m.ES); got != "2025-01-07" {
		t.Errorf("milestone ES = %s, want 2025-01-07", got)
	}
}

func TestAnalyze_EstimatedHoursDuration(t *testing.T) {
	// 20h at 8h/day rounds up to 3 working days.
	tasks := []project.Task{{ID: "a", EstimatedHours: 20}}

	result := analyze(t, tasks, nil)

	if got := result.Tasks["a"].DurationDays; got != 3 {
		t.Errorf("duration = %d days, want 3", got)
	}
}

func TestAnalyze_NonWorkingProjectStartRollsForward(t *testing.T) {
	// Project starting on Friday rolls to Sunday before any arithmetic.
	tasks := []project.Task{{ID: "a", DurationDays: 1}}
	g, err := graph.Build(tasks, nil)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	cal, err := calendar.New(sunThu, nil)
	if err != nil {
		t.Fatalf("build calendar: %v", err)
	}

	result := Analyze(g, cal, date(t, "2025-01-10"), map[string]project.Task{"a": tasks[0]})

	if got := project.FormatDate(result.Tasks["a"].ES); got != "2025-01-12" {
		t.Errorf("ES = %s, want 2025-01-12", got)
	}
}

func TestAnalyze_StartConstraintFloor(t *testing.T) {
	// start_no_earlier_than later than the unconstrained ES wins.
	tasks := []project.Task{{
		ID: "a", DurationDays: 1,
		ConstraintType: project.ConstraintStartNoEarlier,
		ConstraintDate: "2025-01-12",
	}}

	result := analyze(t, tasks, nil)

	a := result.Tasks["a"]
	if got := project.FormatDate(a.ES); got != "2025-01-12" {
		t.Errorf("ES = %s, want constraint floor 2025-01-12", got)
	}
	if a.ConstraintOverridden {
		t.Error("a respected constraint must not be flagged as overridden")
	}
}

func TestAnalyze_StartConstraintOnNonWorkingDayRollsForward(t *testing.T) {
	// Constraint date is a Friday; the floor rolls to Sunday like every
	// other computed date.
	tasks := []project.Task{{
		ID: "a", DurationDays: 1,
		ConstraintType: project.ConstraintStartNoEarlier,
		ConstraintDate: "2025-01-10",
	}}

	result := analyze(t, tasks, nil)

	a := result.Tasks["a"]
	if got := project.FormatDate(a.ES); got != "2025-01-12" {
		t.Errorf("ES = %s, want 2025-01-12", got)
	}
	if a.ConstraintOverridden {
		t.Error("a rolled floor must not be flagged as overridden")
	}
}

func TestAnalyze_ConstraintOverriddenByPredecessor(t *testing.T) {
	// A(2) forces B to start on 2025-01-07, past B's constraint date:
	// the dependency wins and B is flagged with the driving predecessor.
	tasks := []project.Task{
		{ID: "a", Name: "Groundwork", DurationDays: 2},
		{ID: "b", Name: "B", DurationDays: 1,
			ConstraintType: project.ConstraintStartNoEarlier,
			ConstraintDate: "2025-01-06"},
	}
	deps := []project.Dependency{{PredecessorID: "a", SuccessorID: "b"}}

	result := analyze(t, tasks, deps)

	b := result.Tasks["b"]
	if got := project.FormatDate(b.ES); got != "2025-01-07" {
		t.Errorf("ES = %s, want dependency-driven 2025-01-07", got)
	}
	if !b.ConstraintOverridden {
		t.Fatal("expected constraintOverridden flag")
	}
	if b.OverriddenByID != "a" || b.OverriddenByName != "Groundwork" {
		t.Errorf("driving predecessor = %s (%s), want a (Groundwork)", b.OverriddenByID, b.OverriddenByName)
	}
}

func TestApplyDeadlines(t *testing.T) {
	// Deadline one working day before the computed EF: the schedule
	// keeps the real EF and only flags the violation.
	tasks := []project.Task{
		{ID: "a", DurationDays: 2},
		{ID: "b", DurationDays: 3,
			ConstraintType: project.ConstraintFinishNoLaterThan,
			ConstraintDate: "2025-01-09"},
	}
	deps := []project.Dependency{{PredecessorID: "a", SuccessorID: "b"}}

	result := analyze(t, tasks, deps)
	byID := map[string]project.Task{"a": tasks[0], "b": tasks[1]}
	ApplyDeadlines(byID, result.Tasks)

	b := result.Tasks["b"]
	if got := project.FormatDate(b.EF); got != "2025-01-12" {
		t.Errorf("EF = %s, want the real finish 2025-01-12", got)
	}
	if !b.DeadlineViolated {
		t.Fatal("expected deadlineViolated flag")
	}
	if got := project.FormatDate(b.MissedDeadline); got != "2025-01-09" {
		t.Errorf("missed deadline = %s, want 2025-01-09", got)
	}
	if result.Tasks["a"].DeadlineViolated {
		t.Error("task without a deadline must not be flagged")
	}
}

func TestApplyDeadlines_MetDeadline(t *testing.T) {
	tasks := []project.Task{
		{ID: "a", DurationDays: 1,
			ConstraintType: project.ConstraintFinishNoLaterThan,
			ConstraintDate: "2025-01-09"},
	}

	result := analyze(t, tasks, nil)
	ApplyDeadlines(map[string]project.Task{"a": tasks[0]}, result.Tasks)

	if result.Tasks["a"].DeadlineViolated {
		t.Error("met deadline must not be flagged")
	}
}

func TestAnalyze_NegativeLagLead(t *testing.T) {
	// FS with lag -1 (lead): B may start one working day before A ends.
	tasks := []project.Task{
		{ID: "a", DurationDays: 3},
		{ID: "b", DurationDays: 1},
	}
	deps := []project.Dependency{{PredecessorID: "a", SuccessorID: "b", Type: "FS", LagDays: -1}}

	result := analyze(t, tasks, deps)

	// A: Sun..Wed (EF 2025-01-08); B.ES = EF - 1wd = 2025-01-07.
	if got := project.FormatDate(result.Tasks["b"].ES); got != "2025-01-07" {
		t.Errorf("B.ES = %s, want 2025-01-07", got)
	}
}
