package engine

import (
	"context"
	"time"

	"github.com/mkoeppel/Markov-Market/pkg/logger"
	"github.com/sirupsen/logrus"
)

// DefaultTickInterval - два шага в секунду
const DefaultTickInterval = 500 * time.Millisecond

// Runner - внешний "часовщик": дергает Simulation.Tick с фиксированным интервалом.
// Вся работа со временем живет здесь, в ядре ее нет.
type Runner struct {
	sim      *Simulation
	interval time.Duration
	log      *logrus.Entry
}

func NewRunner(sim *Simulation, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{
		sim:      sim,
		interval: interval,
		log:      logger.Component("runner"),
	}
}

// Run тикает до остановки симуляции или отмены контекста.
// Отмена контекста - штатное завершение, ошибкой не считается.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.WithField("interval", r.interval.String()).Info("Runner started")

	for {
		select {
		case <-ctx.Done():
			r.log.WithField("tick", r.sim.TickCount()).Info("Runner cancelled")
			return nil
		case <-ticker.C:
			ok, err := r.sim.Tick()
			if err != nil {
				r.log.WithError(err).Error("Simulation failed")
				return err
			}
			if !ok {
				r.log.WithField("tick", r.sim.TickCount()).Info("Runner finished")
				return nil
			}
		}
	}
}
