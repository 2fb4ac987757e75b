package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/seqplan/seqplan"
	"github.com/seqplan/seqplan/internal/config"
	"github.com/seqplan/seqplan/internal/presentation/tui"
	"github.com/seqplan/seqplan/pkg/adapters/ptp"
	"github.com/seqplan/seqplan/pkg/domain"
)

var planCmd = &cobra.Command{
	Use:   "plan <sequence-file>",
	Short: "Plan a sequence file offline with the built-in planner",
	Long: `Plans every segment of a sequence with the built-in point-to-point
planner, blends same-group transitions, and reports the merged trajectories.
Requires a configuration file declaring the kinematic groups.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(cfg.Groups) == 0 {
			return fmt.Errorf("configuration declares no kinematic groups")
		}
		log := newLogger(cfg)

		req, err := config.LoadSequence(args[0])
		if err != nil {
			return err
		}

		engine, err := newEngine(cfg, log)
		if err != nil {
			return err
		}

		var plannerOpts []ptp.Option
		if step := sampleStep(cfg); step > 0 {
			plannerOpts = append(plannerOpts, ptp.WithSampleStep(step))
		}
		planner := ptp.New(engine.Model(), engine.Limits(), plannerOpts...)

		result, err := engine.Solve(cmd.Context(), nil, planner, req)
		if err != nil {
			return fmt.Errorf("planning failed: %w", err)
		}

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := writeResult(out, result); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", out)
		}

		report := planReport(args[0], req, result)
		if plain, _ := cmd.Flags().GetBool("plain"); plain || !isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Print(report)
			return nil
		}

		tui.PrintBanner(seqplan.Version)
		render := tui.NewRenderer()
		pretty, err := render(report)
		if err != nil {
			fmt.Print(report)
			return nil
		}
		fmt.Print(pretty)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringP("out", "o", "", "Write the solved trajectories to a JSON file")
	planCmd.Flags().Bool("plain", false, "Disable markdown rendering of the report")
}

func writeResult(path string, result *seqplan.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}

func planReport(source string, req domain.SequenceRequest, result *seqplan.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Plan: %s\n\n", source)
	fmt.Fprintf(&sb, "- Segments: %d\n", len(req.Items))
	fmt.Fprintf(&sb, "- Result ID: `%s`\n", result.ID)
	fmt.Fprintf(&sb, "- Trajectories: %d\n\n", len(result.Trajectories))

	for i, traj := range result.Trajectories {
		duration := 0.0
		if traj.Size() > 0 {
			duration = traj.Last().TimeFromStart.Seconds()
		}
		fmt.Fprintf(&sb, "## Trajectory %d (%s)\n\n", i+1, traj.Group)
		fmt.Fprintf(&sb, "- Waypoints: %d\n", traj.Size())
		fmt.Fprintf(&sb, "- Duration: %.2fs\n\n", duration)
	}
	return sb.String()
}
