package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mkoeppel/Markov-Market/internal/engine"
	"github.com/mkoeppel/Markov-Market/pkg/logger"
	"github.com/mkoeppel/Markov-Market/pkg/utils"
	"github.com/spf13/cobra"
)

// batchReport - итог прогона без окна: сколько тиков, сколько поимок
// и насколько доли зон сошлись со стационарным распределением цепи
type batchReport struct {
	Scenario   string             `json:"scenario"`
	Seed       int64              `json:"seed"`
	Ticks      uint64             `json:"ticks"`
	Collisions uint64             `json:"collisions"`
	Elapsed    time.Duration      `json:"elapsed_ns"`
	Zones      []engine.ZoneShare `json:"zones"`
}

// MaxDelta - худшее отклонение по зонам
func (r batchReport) MaxDelta() float64 {
	worst := 0.0
	for _, z := range r.Zones {
		if d := z.Delta(); d > worst {
			worst = d
		}
	}
	return worst
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run a fixed number of ticks headless and report zone occupancy",
		Long: `Runs the simulation as fast as possible for --ticks ticks and compares
the share of ticks the shopper spent in each zone with the stationary
distribution of the transition matrix.

Examples:
  market batch                       # 100,000 ticks, built-in market
  market batch --ticks 1000000 --seed 42
  market batch --json | jq .zones`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ticks, _ := cmd.Flags().GetUint64("ticks")
			jsonOut, _ := cmd.Flags().GetBool("json")

			s, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			market, cfg, err := buildMarket(s)
			if err != nil {
				return err
			}

			report, err := runBatch(market, cfg, ticks)
			if err != nil {
				return err
			}
			report.Scenario = s.Name

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			writeReport(out, report)
			return nil
		},
	}

	cmd.Flags().Uint64("ticks", 100000, "Number of ticks to simulate")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

// runBatch крутит симуляцию до лимита тиков. Лимит - обычный Control,
// поэтому симуляция останавливается штатно, через STOPPED.
func runBatch(market engine.Market, cfg engine.Config, ticks uint64) (batchReport, error) {
	stats := engine.NewOccupancy()
	limit := &engine.TickLimit{Max: ticks}

	sim, err := engine.NewSimulation(market, cfg, utils.NewSource(cfg.Seed), limit, stats)
	if err != nil {
		return batchReport{}, err
	}

	log := logger.Component("batch")
	log.WithField("ticks", ticks).WithField("seed", cfg.Seed).Info("Batch started")

	started := time.Now()
	for {
		ok, err := sim.Tick()
		if err != nil {
			return batchReport{}, fmt.Errorf("tick %d: %w", sim.TickCount(), err)
		}
		if !ok {
			break
		}
	}

	report := batchReport{
		Seed:       cfg.Seed,
		Ticks:      sim.TickCount(),
		Collisions: stats.Collisions(),
		Elapsed:    time.Since(started),
		Zones:      stats.Compare(market.Model.Zones(), market.Model.Stationary()),
	}
	log.WithField("elapsed", report.Elapsed).Info("Batch finished")
	return report, nil
}

func writeReport(w io.Writer, r batchReport) {
	fmt.Fprintf(w, "Scenario:   %s (seed %d)\n", r.Scenario, r.Seed)
	fmt.Fprintf(w, "Ticks:      %s in %s\n", humanize.Comma(int64(r.Ticks)), r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Collisions: %s\n", humanize.Comma(int64(r.Collisions)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-10s %12s %9s %9s %8s\n", "ZONE", "TICKS", "OBSERVED", "EXPECTED", "DELTA")
	for _, z := range r.Zones {
		fmt.Fprintf(w, "%-10s %12s %9.4f %9.4f %8.4f\n",
			z.Zone, humanize.Comma(int64(z.Ticks)), z.Observed, z.Expected, z.Delta())
	}
	fmt.Fprintf(w, "\nMax delta:  %.4f\n", r.MaxDelta())
}
