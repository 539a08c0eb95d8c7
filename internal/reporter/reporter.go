// Package reporter renders a computed schedule for terminals and as
// machine-readable JSON. It only formats: every flag it prints was
// decided by the engine.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ben9730/management-app-sub004/internal/engine"
	"github.com/ben9730/management-app-sub004/internal/phase"
	"github.com/ben9730/management-app-sub004/internal/project"
	"github.com/ben9730/management-app-sub004/internal/ui"
)

// Reporter formats one engine result.
type Reporter struct {
	Result *engine.Result
}

// New creates a Reporter for a computed result.
func New(result *engine.Result) *Reporter {
	return &Reporter{Result: result}
}

// PrintSchedule writes the schedule table, critical path, and any
// violation flags.
func (r *Reporter) PrintSchedule(w io.Writer) {
	fmt.Fprintf(w, "📅 %s\n", ui.BoldCyan("Cadence Schedule"))
	fmt.Fprintln(w, ui.Cyan("═══════════════════════════"))
	fmt.Fprintln(w)

	for _, st := range r.Result.Tasks {
		r.printTask(w, st)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Finish:    %s\n", ui.Bold(project.FormatDate(r.Result.ProjectEnd)))
	if len(r.Result.CriticalPathIDs) > 0 {
		fmt.Fprintf(w, "Critical:  %s\n",
			ui.BoldYellow("⚡ "+strings.Join(r.Result.CriticalPathIDs, " → ")))
	}

	r.printViolations(w)
	r.printAllocations(w)
}

func (r *Reporter) printTask(w io.Writer, st engine.ScheduledTask) {
	s := st.Schedule

	name := st.Input.Name
	if name == "" {
		name = st.Input.ID
	}
	if len(name) > 32 {
		name = name[:29] + "..."
	}

	dates := fmt.Sprintf("%s → %s", project.FormatDate(s.ES), project.FormatDate(s.EF))
	if s.DurationDays == 0 {
		dates = fmt.Sprintf("%s %s", project.FormatDate(s.ES), ui.Dim("(milestone)"))
	}

	fmt.Fprintf(w, "  %s %s %-32s %-26s %s %s\n",
		ui.StatusIcon(st.Input.Status),
		ui.BoldMagenta(fmt.Sprintf("%-10s", st.Input.ID)),
		name,
		dates,
		ui.SlackBadge(s.Slack),
		ui.CriticalMark(s.IsCritical))
}

// printViolations lists the report-only anomalies: overridden start
// constraints, missed deadlines, and overallocation (negative slack).
func (r *Reporter) printViolations(w io.Writer) {
	var lines []string
	for _, st := range r.Result.Tasks {
		s := st.Schedule
		if s.ConstraintOverridden {
			name := s.OverriddenByName
			if name == "" {
				name = s.OverriddenByID
			}
			lines = append(lines, fmt.Sprintf("  %s %s start constraint overridden by predecessor %s",
				ui.Yellow("⚠"), ui.BoldMagenta(st.Input.ID), ui.BoldMagenta(name)))
		}
		if s.DeadlineViolated {
			lines = append(lines, fmt.Sprintf("  %s %s finishes %s, after its deadline %s",
				ui.Red("✗"), ui.BoldMagenta(st.Input.ID),
				project.FormatDate(s.EF), ui.Bold(project.FormatDate(s.MissedDeadline))))
		}
		if s.Slack < 0 {
			lines = append(lines, fmt.Sprintf("  %s %s overallocated: pushed %d working days past its latest start",
				ui.Red("✗"), ui.BoldMagenta(st.Input.ID), -s.Slack))
		}
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", ui.BoldRed("Warnings:"))
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

// printAllocations writes the per-person ledger from the leveling pass.
func (r *Reporter) printAllocations(w io.Writer) {
	if len(r.Result.Allocations) == 0 {
		return
	}

	people := make([]string, 0, len(r.Result.Allocations))
	for p := range r.Result.Allocations {
		people = append(people, p)
	}
	sort.Strings(people)

	fmt.Fprintf(w, "\n%s\n", ui.BoldWhite("Allocations:"))
	for _, p := range people {
		fmt.Fprintf(w, "  👤 %s\n", ui.BoldCyan(p))
		for _, a := range r.Result.Allocations[p] {
			fmt.Fprintf(w, "     %s  %s → %s  %s\n",
				ui.BoldMagenta(fmt.Sprintf("%-10s", a.TaskID)),
				project.FormatDate(a.Start), project.FormatDate(a.Finish),
				ui.Dim(fmt.Sprintf("(%dd)", a.Days)))
		}
	}
}

// PrintPhases writes phase lock verdicts in phase order.
func PrintPhases(w io.Writer, phases []project.Phase, locks map[string]phase.LockStatus) {
	ordered := make([]project.Phase, len(phases))
	copy(ordered, phases)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	fmt.Fprintf(w, "🗂  %s\n", ui.BoldCyan("Phase Locks"))
	fmt.Fprintln(w, ui.Cyan("═══════════════"))
	for _, p := range ordered {
		ls := locks[p.ID]
		line := fmt.Sprintf("  %s %s %s", ui.LockIcon(ls.Locked), ui.BoldMagenta(p.ID), ui.Dim("("+ls.Reason+")"))
		if ls.Locked {
			line += fmt.Sprintf("  blocked by %s", ui.BoldMagenta(ls.BlockedByName))
		}
		fmt.Fprintln(w, line)
	}
}

// JSON returns the machine-readable result.
func (r *Reporter) JSON() ([]byte, error) {
	type taskOut struct {
		ID                   string `json:"id"`
		Name                 string `json:"name,omitempty"`
		Status               string `json:"status"`
		DurationDays         int    `json:"duration_days"`
		ES                   string `json:"es"`
		EF                   string `json:"ef"`
		LS                   string `json:"ls"`
		LF                   string `json:"lf"`
		Slack                int    `json:"slack"`
		IsCritical           bool   `json:"is_critical"`
		ConstraintOverridden bool   `json:"constraint_overridden,omitempty"`
		OverriddenBy         string `json:"overridden_by,omitempty"`
		DeadlineViolated     bool   `json:"deadline_violated,omitempty"`
		MissedDeadline       string `json:"missed_deadline,omitempty"`
	}
	type allocOut struct {
		TaskID string `json:"task_id"`
		Start  string `json:"start"`
		Finish string `json:"finish"`
		Days   int    `json:"days"`
	}
	type output struct {
		Tasks           []taskOut             `json:"tasks"`
		CriticalPathIDs []string              `json:"critical_path_ids"`
		ProjectEnd      string                `json:"project_end_date"`
		Allocations     map[string][]allocOut `json:"allocations,omitempty"`
	}

	o := output{
		CriticalPathIDs: r.Result.CriticalPathIDs,
		ProjectEnd:      project.FormatDate(r.Result.ProjectEnd),
	}
	for _, st := range r.Result.Tasks {
		s := st.Schedule
		to := taskOut{
			ID:                   st.Input.ID,
			Name:                 st.Input.Name,
			Status:               st.Input.Status,
			DurationDays:         s.DurationDays,
			ES:                   project.FormatDate(s.ES),
			EF:                   project.FormatDate(s.EF),
			LS:                   project.FormatDate(s.LS),
			LF:                   project.FormatDate(s.LF),
			Slack:                s.Slack,
			IsCritical:           s.IsCritical,
			ConstraintOverridden: s.ConstraintOverridden,
			OverriddenBy:         s.OverriddenByID,
			DeadlineViolated:     s.DeadlineViolated,
		}
		if s.DeadlineViolated {
			to.MissedDeadline = project.FormatDate(s.MissedDeadline)
		}
		o.Tasks = append(o.Tasks, to)
	}
	if len(r.Result.Allocations) > 0 {
		o.Allocations = make(map[string][]allocOut, len(r.Result.Allocations))
		for p, allocs := range r.Result.Allocations {
			for _, a := range allocs {
				o.Allocations[p] = append(o.Allocations[p], allocOut{
					TaskID: a.TaskID,
					Start:  project.FormatDate(a.Start),
					Finish: project.FormatDate(a.Finish),
					Days:   a.Days,
				})
			}
		}
	}

	return json.MarshalIndent(o, "", "  ")
}
