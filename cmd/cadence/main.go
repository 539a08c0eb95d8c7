package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ben9730/management-app-sub004/internal/config"
	"github.com/ben9730/management-app-sub004/internal/engine"
	"github.com/ben9730/management-app-sub004/internal/graph"
	"github.com/ben9730/management-app-sub004/internal/project"
	"github.com/ben9730/management-app-sub004/internal/reporter"
	"github.com/ben9730/management-app-sub004/internal/ui"
)

var (
	flagPlan   string
	flagConfig string
	flagStart  string
	flagJSON   bool
	flagOutput string
	flagFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cadence",
		Short: "Calendar-aware critical path scheduling for project plans",
		Long: `Cadence reads a project plan (tasks, dependencies, calendar, team),
computes early/late dates and the critical path with working-day
arithmetic, and optionally levels the schedule around each assignee's
capacity and time off.`,
	}

	rootCmd.PersistentFlags().StringVar(&flagPlan, "plan", "plan.json", "Project plan file")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: cadence.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&flagStart, "start", "", "Override project start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(levelCmd())
	rootCmd.AddCommand(phasesCmd())
	rootCmd.AddCommand(vizCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadPlan reads the plan file and layers config and flag overrides on
// top of it.
func loadPlan() (*project.Plan, error) {
	plan, err := project.LoadFile(flagPlan)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if len(plan.WorkDays) == 0 {
		plan.WorkDays = cfg.WorkDays
	}
	if plan.ProjectStart == "" {
		plan.ProjectStart = cfg.ProjectStart
	}
	if flagStart != "" {
		plan.ProjectStart = flagStart
	}
	if plan.ProjectStart == "" {
		return nil, fmt.Errorf("no project start date (set it in the plan, config, or --start)")
	}
	return plan, nil
}

func runCompute(withResources bool) error {
	plan, err := loadPlan()
	if err != nil {
		return err
	}

	result, err := engine.ComputePlan(plan, withResources)
	if err != nil {
		return fmt.Errorf("compute schedule: %w", err)
	}

	rpt := reporter.New(result)

	if flagJSON || flagOutput != "" {
		data, err := rpt.JSON()
		if err != nil {
			return err
		}
		if flagOutput != "" {
			return os.WriteFile(flagOutput, data, 0644)
		}
		fmt.Println(string(data))
		return nil
	}

	ui.PrintLogo()
	rpt.PrintSchedule(os.Stdout)
	return nil
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute the CPM schedule and critical path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(false)
		},
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Save JSON result to file")
	return cmd
}

func levelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "level",
		Short: "Compute the schedule with resource leveling",
		Long: `Runs the CPM passes, then serializes each assignee's occupied time
against their calendar and capacity. Overallocation shows up as
negative slack; it is reported, never clamped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(true)
		},
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Save JSON result to file")
	return cmd
}

func phasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phases",
		Short: "Evaluate phase locks",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := loadPlan()
			if err != nil {
				return err
			}

			locks := engine.EvaluatePhaseLocks(plan.Phases, plan.Tasks)

			if flagJSON {
				type lockOut struct {
					IsLocked      bool   `json:"is_locked"`
					Reason        string `json:"reason"`
					BlockedByID   string `json:"blocked_by_phase_id,omitempty"`
					BlockedByName string `json:"blocked_by_phase_name,omitempty"`
				}
				out := make(map[string]lockOut, len(locks))
				for id, ls := range locks {
					out[id] = lockOut{
						IsLocked:      ls.Locked,
						Reason:        ls.Reason,
						BlockedByID:   ls.BlockedByID,
						BlockedByName: ls.BlockedByName,
					}
				}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			reporter.PrintPhases(os.Stdout, plan.Phases, locks)
			return nil
		},
	}
}

func vizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Print the dependency graph with the critical path highlighted",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := loadPlan()
			if err != nil {
				return err
			}

			g, err := graph.Build(plan.Tasks, plan.Dependencies)
			if err != nil {
				return fmt.Errorf("build dependency graph: %w", err)
			}

			result, err := engine.ComputePlan(plan, false)
			if err != nil {
				return fmt.Errorf("compute schedule: %w", err)
			}
			critical := make(map[string]bool, len(result.CriticalPathIDs))
			for _, id := range result.CriticalPathIDs {
				critical[id] = true
			}

			if flagFormat == "dot" {
				printDOT(g, plan, critical)
				return nil
			}
			printASCIIDAG(g, plan, critical)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "ascii", "Output format (ascii, dot)")
	return cmd
}

func printASCIIDAG(g *graph.Graph, plan *project.Plan, critical map[string]bool) {
	names := taskNames(plan)

	fmt.Printf("🔗 %s\n", ui.BoldCyan("Task Dependency Graph"))
	fmt.Println(ui.Cyan("═══════════════════════"))
	fmt.Println()

	for _, idx := range g.Topo {
		id := g.IDs[idx]
		fmt.Printf("  %s [%s] %s\n", ui.CriticalMark(critical[id]), ui.BoldMagenta(id), names[id])
		for _, ei := range g.Out[idx] {
			e := g.Edges[ei]
			label := e.Kind.String()
			if e.Lag != 0 {
				label = fmt.Sprintf("%s%+d", label, e.Lag)
			}
			fmt.Printf("      %s %s %s\n", ui.Dim("└──→"), ui.Magenta(g.IDs[e.Succ]), ui.Dim("("+label+")"))
		}
	}
	fmt.Println()
}

func printDOT(g *graph.Graph, plan *project.Plan, critical map[string]bool) {
	names := taskNames(plan)

	fmt.Println("digraph cadence {")
	fmt.Println("  rankdir=LR;")
	fmt.Println("  node [shape=box, style=rounded];")
	fmt.Println()

	for _, id := range g.IDs {
		label := fmt.Sprintf("%s\\n%s", id, names[id])
		attrs := fmt.Sprintf(`label="%s"`, label)
		if critical[id] {
			attrs += `, style="rounded,bold", color=red`
		}
		fmt.Printf("  %q [%s];\n", id, attrs)
	}

	fmt.Println()

	for _, e := range g.Edges {
		from, to := g.IDs[e.Pred], g.IDs[e.Succ]
		style := fmt.Sprintf(` [label="%s"]`, e.Kind)
		if critical[from] && critical[to] {
			style = fmt.Sprintf(` [label="%s", color=red, penwidth=2]`, e.Kind)
		}
		fmt.Printf("  %q -> %q%s;\n", from, to, style)
	}

	fmt.Println("}")
}

func taskNames(plan *project.Plan) map[string]string {
	names := make(map[string]string, len(plan.Tasks))
	for _, t := range plan.Tasks {
		names[t.ID] = t.Name
		if t.Name == "" {
			names[t.ID] = t.ID
		}
	}
	return names
}
