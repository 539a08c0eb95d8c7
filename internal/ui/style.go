package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	Magenta     = color.New(color.FgMagenta).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen   = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
	BoldWhite   = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// PrintLogo renders the colored cadence logo to stderr.
func PrintLogo() {
	w := os.Stderr
	frame := color.New(color.FgCyan)
	ticks := color.New(color.FgYellow)
	sep := color.New(color.FgCyan)
	brand := color.New(color.Bold, color.FgMagenta)
	tag := color.New(color.Faint)

	fmt.Fprintln(w)
	frame.Fprintln(w, "   +--------------------------+")
	ticks.Fprintln(w, "   |  |--|--|--|--|--|--|--|  |")
	sep.Fprintln(w, "   |==========================|")
	brand.Fprintln(w, "   |  C  A  D  E  N  C  E     |")
	sep.Fprintln(w, "   |==========================|")
	ticks.Fprintln(w, "   |  |--|--|--|--|--|--|--|  |")
	frame.Fprintln(w, "   +--------------------------+")
	tag.Fprintf(w, "   %s Critical path scheduling\n", Dim("📅"))
	fmt.Fprintln(w)
}

// StatusIcon returns a colored icon for a task status.
func StatusIcon(status string) string {
	switch status {
	case "done":
		return Green("✓")
	case "in_progress":
		return Cyan("●")
	default:
		return Dim("◌")
	}
}

// CriticalMark returns the critical-path marker, or a space for
// alignment when the task is off the critical path.
func CriticalMark(critical bool) string {
	if critical {
		return BoldYellow("⚡")
	}
	return " "
}

// SlackBadge renders slack in working days; negative slack means an
// overallocated assignee pushed the task past its latest start.
func SlackBadge(slack int) string {
	switch {
	case slack < 0:
		return BoldRed(fmt.Sprintf("%+dd", slack))
	case slack == 0:
		return BoldYellow("0d")
	default:
		return Dim(fmt.Sprintf("+%dd", slack))
	}
}

// LockIcon returns a colored icon for a phase lock verdict.
func LockIcon(locked bool) string {
	if locked {
		return Red("🔒")
	}
	return Green("🔓")
}
