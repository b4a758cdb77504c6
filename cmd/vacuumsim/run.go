package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spachava753/vacuumsim/internal/config"
	"github.com/spachava753/vacuumsim/internal/executor"
	"github.com/spachava753/vacuumsim/internal/render"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <job.yaml>",
		Short: "Run every comparison of a job file and store the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadJobConfig(args[0])
			if err != nil {
				return fmt.Errorf("loading job config: %w", err)
			}

			// The job file sets the level unless --log-level was given.
			if f := cmd.Flag("log-level"); f == nil || !f.Changed {
				if err := setupLogging(cfg.LogLevel); err != nil {
					return err
				}
			}

			orchestrator, err := executor.NewJobOrchestrator(cfg, executor.DefaultTrialExecutorFunc)
			if err != nil {
				return fmt.Errorf("creating orchestrator: %w", err)
			}

			result, err := orchestrator.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("job failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nJob: %s (run %s)\n", result.JobName, result.RunID)
			for i := range result.Comparisons {
				fmt.Fprintln(out)
				fmt.Fprintln(out, render.Summary(&result.Comparisons[i]))
			}
			fmt.Fprintf(out, "\nFailed trials: %d\n", result.FailedTrials)
			fmt.Fprintf(out, "Duration: %.2fs\n", result.TotalDurationSec)

			if result.FailedTrials > 0 {
				return fmt.Errorf("%d trials failed", result.FailedTrials)
			}
			if result.Cancelled {
				return fmt.Errorf("job cancelled")
			}
			return nil
		},
	}
}
