package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spachava753/vacuumsim/internal/agent"
	"github.com/spachava753/vacuumsim/internal/executor"
	"github.com/spachava753/vacuumsim/internal/grid"
	"github.com/spachava753/vacuumsim/internal/models"
	"github.com/spachava753/vacuumsim/internal/render"
)

func newWatchCmd() *cobra.Command {
	var (
		wf       worldFlags
		kind     string
		trial    int
		interval time.Duration
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Animate a single trial step by step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			world, err := wf.resolve()
			if err != nil {
				return err
			}

			gridRNG, agentRNG := executor.TrialSources(wf.seed, trial)
			g, err := grid.New(world.Width, world.Height, world.DirtProbability, gridRNG)
			if err != nil {
				return err
			}
			a, err := agent.New(models.AgentKind(kind), g.Bounds())
			if err != nil {
				return err
			}
			runner, err := executor.NewRunner(g, a, agentRNG, world.StepLimit)
			if err != nil {
				return err
			}

			var visited func(models.Position) bool
			if mb, ok := a.(*agent.ModelBased); ok {
				visited = mb.Visited
			}
			player := render.NewPlayer(fmt.Sprintf("%s Agent", a.Kind().DisplayName()), runner, visited)

			if plain {
				return render.Play(cmd.Context(), cmd.OutOrStdout(), player, interval)
			}
			return render.Watch(cmd.Context(), player, interval)
		},
	}

	wf.register(cmd)
	cmd.Flags().StringVar(&kind, "agent", string(models.AgentReflex), "agent kind (reflex, model_based)")
	cmd.Flags().IntVar(&trial, "trial", 0, "trial index, selects the same layout as the comparison")
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "delay between steps")
	cmd.Flags().BoolVar(&plain, "plain", false, "print frames instead of running the interactive view")
	return cmd
}
