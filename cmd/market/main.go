package main

import (
	"fmt"
	"os"

	"github.com/mkoeppel/Markov-Market/internal/config"
	"github.com/mkoeppel/Markov-Market/internal/engine"
	"github.com/mkoeppel/Markov-Market/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "market",
		Short: "Markov Market - a shopper, a ghost and a transition matrix",
		Long: `market simulates a shopper walking between supermarket departments
according to a Markov chain, while a ghost random-walks the floor.
When the ghost catches the shopper, a new shopper enters at the entrance.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// batch печатает отчет в stdout, логи ему нужны отдельно
			if cmd.Name() == "batch" {
				logger.InitWithOutput(os.Stderr)
				return
			}
			logger.Init()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Scenario YAML (default: built-in market)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Master seed (0 for time-based)")

	rootCmd.AddCommand(
		newServeCmd(),
		newViewCmd(),
		newBatchCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadScenario: встроенный сценарий -> --config -> окружение -> --seed
func loadScenario(cmd *cobra.Command) (*config.Scenario, error) {
	path, _ := cmd.Flags().GetString("config")
	s, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetInt64("seed")
		s.Seed = config.Seed(seed)
	}
	return s, nil
}

// buildMarket проверяет сценарий, собирает мир и фиксирует сид, чтобы его можно было залогировать и повторить
func buildMarket(s *config.Scenario) (engine.Market, engine.Config, error) {
	if err := s.Validate(); err != nil {
		return engine.Market{}, engine.Config{}, err
	}
	market, cfg, err := s.Build()
	if err != nil {
		return engine.Market{}, engine.Config{}, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	cfg.Seed = cfg.ResolvedSeed()
	return market, cfg, nil
}
