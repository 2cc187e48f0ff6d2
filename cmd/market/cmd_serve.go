package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/internal/engine"
	"github.com/mkoeppel/Markov-Market/internal/network"
	"github.com/mkoeppel/Markov-Market/internal/server"
	"github.com/mkoeppel/Markov-Market/internal/version"
	"github.com/mkoeppel/Markov-Market/pkg/logger"
	"github.com/mkoeppel/Markov-Market/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation in real time and stream it over WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				s.Port, _ = cmd.Flags().GetInt("port")
			}
			market, cfg, err := buildMarket(s)
			if err != nil {
				return err
			}

			runID := utils.NewRunID()
			log := logger.Log.WithFields(logrus.Fields{
				"run_id":   utils.ShortID(runID),
				"seed":     cfg.Seed,
				"scenario": s.Name,
			})
			log.Info("Starting Markov Market...")
			log.Info(version.String())

			hub := network.NewBroadcaster()
			stats := engine.NewOccupancy()
			latest := engine.NewLatest(domain.SimulationState{})
			stop := &engine.StopFlag{}
			pub := network.NewPublisher(hub, runID)

			sinks := engine.MultiSink{
				stats,
				latest,
				pub,
				engine.LogSink{Log: logger.Component("tick")},
			}
			sim, err := engine.NewSimulation(market, cfg, utils.NewSource(cfg.Seed), stop, sinks)
			if err != nil {
				return err
			}
			latest.Prime(sim.Snapshot())

			srv := server.New(server.Deps{
				Hub:    hub,
				Market: market,
				Latest: latest,
				Stats:  stats,
				Stop:   stop,
				RunID:  runID,
				Seed:   cfg.Seed,
			}, strconv.Itoa(s.Port))

			// SIGINT/SIGTERM не рвут цикл, а взводят флаг остановки:
			// симуляция сама перейдет в STOPPED на ближайшем тике.
			sigCtx, stopSignals := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stopSignals()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				select {
				case <-sigCtx.Done():
					log.Info("Shutdown signal received")
					stop.Stop()
				case <-gctx.Done():
				}
				return nil
			})

			g.Go(func() error {
				// Симуляция закончилась - гасим и HTTP
				defer cancel()
				err := engine.NewRunner(sim, s.Tick).Run(gctx)
				pub.Stopped(sim.Snapshot())
				log.WithFields(logrus.Fields{
					"ticks":      sim.TickCount(),
					"collisions": stats.Collisions(),
					"state":      sim.State().String(),
				}).Info("Simulation finished")
				return err
			})

			g.Go(func() error {
				return srv.Run(gctx)
			})

			return g.Wait()
		},
	}

	cmd.Flags().Int("port", 8080, "HTTP port (overrides scenario and MARKET_PORT)")
	return cmd
}
