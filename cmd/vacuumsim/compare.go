package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spachava753/vacuumsim/internal/config"
	"github.com/spachava753/vacuumsim/internal/executor"
	"github.com/spachava753/vacuumsim/internal/models"
	"github.com/spachava753/vacuumsim/internal/render"
	"github.com/spachava753/vacuumsim/internal/util"
)

// worldFlags are shared by the commands that build a single world from flags.
type worldFlags struct {
	size      string
	dirt      float64
	stepLimit int
	seed      uint64
	world     string
}

func (f *worldFlags) register(cmd *cobra.Command) {
	def := config.DefaultWorld()
	cmd.Flags().StringVar(&f.size, "size", fmt.Sprintf("%dx%d", def.Width, def.Height), "grid size as WxH")
	cmd.Flags().Float64Var(&f.dirt, "dirt", def.DirtProbability, "probability that a cell starts dirty")
	cmd.Flags().IntVar(&f.stepLimit, "steps", def.StepLimit, "step limit per trial")
	cmd.Flags().Uint64Var(&f.seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&f.world, "world", "", "world.toml file or directory (overrides size, dirt and steps)")
}

func (f *worldFlags) resolve() (models.WorldConfig, error) {
	if f.world != "" {
		return config.LoadWorldConfigFromPath(f.world)
	}
	w, h, err := util.ParseDimensions(f.size)
	if err != nil {
		return models.WorldConfig{}, models.Invalidf("%v", err)
	}
	world := models.WorldConfig{
		Name:            "cli",
		Width:           w,
		Height:          h,
		DirtProbability: f.dirt,
		StepLimit:       f.stepLimit,
	}
	return world, world.Validate()
}

// failedTrialsErr reports trials excluded from the aggregates so the command
// exits non-zero, like run.
func failedTrialsErr(cmp *models.Comparison) error {
	if n := cmp.Reflex.FailedTrials + cmp.ModelBased.FailedTrials; n > 0 {
		return fmt.Errorf("%d trials failed", n)
	}
	return nil
}

func newCompareCmd() *cobra.Command {
	var (
		wf          worldFlags
		trials      int
		concurrency int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run repeated trials of both agents in one world and print the averages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			world, err := wf.resolve()
			if err != nil {
				return err
			}

			harness, err := executor.NewHarness(models.ComparisonConfig{
				World:             world,
				NTrials:           trials,
				NConcurrentTrials: concurrency,
				Seed:              wf.seed,
			}, executor.DefaultTrialExecutorFunc)
			if err != nil {
				return err
			}

			cmp, err := harness.Compare(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(cmp); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, render.Summary(cmp))
			}
			return failedTrialsErr(cmp)
		},
	}

	wf.register(cmd)
	cmd.Flags().IntVar(&trials, "trials", 20, "trials per agent")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "trials run in parallel")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")
	return cmd
}
