package main

import (
	"github.com/mkoeppel/Markov-Market/internal/engine"
	"github.com/mkoeppel/Markov-Market/internal/render"
	"github.com/mkoeppel/Markov-Market/pkg/logger"
	"github.com/mkoeppel/Markov-Market/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a window and watch the simulation (press q to stop)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("scale") {
				s.Scale, _ = cmd.Flags().GetInt("scale")
			}
			market, cfg, err := buildMarket(s)
			if err != nil {
				return err
			}

			stop := &engine.StopFlag{}
			stats := engine.NewOccupancy()
			sinks := engine.MultiSink{stats, engine.LogSink{Log: logger.Component("tick")}}

			sim, err := engine.NewSimulation(market, cfg, utils.NewSource(cfg.Seed), stop, sinks)
			if err != nil {
				return err
			}

			logger.Log.WithField("seed", cfg.Seed).Info("Opening viewer")
			if err := render.NewViewer(sim, stop, s.Tick, s.Scale).Run("Markov Market"); err != nil {
				return err
			}

			logger.Log.WithFields(logrus.Fields{
				"ticks":      sim.TickCount(),
				"collisions": stats.Collisions(),
			}).Info("Viewer closed")
			return nil
		},
	}

	cmd.Flags().Int("scale", 32, "Pixels per grid cell")
	return cmd
}
