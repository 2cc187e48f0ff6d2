package engine

import (
	"errors"
	"fmt"

	"github.com/mkoeppel/Markov-Market/internal/agent"
	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/internal/systems"
	"github.com/mkoeppel/Markov-Market/pkg/logger"
	"github.com/mkoeppel/Markov-Market/pkg/utils"
	"github.com/sirupsen/logrus"
)

// RunState - состояние цикла симуляции
type RunState int

const (
	Running RunState = iota
	Stopped
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Stopped:
		return "STOPPED"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// Market - статическая часть мира: карта, зоны и цепь переходов
type Market struct {
	Grid    *domain.GridMap
	Catalog *domain.ZoneCatalog
	Model   *systems.MarkovModel
}

var errIncompleteMarket = errors.New("market is incomplete")

// Simulation - цикл одной симуляции. Сам не спит и не ждет:
// каждый вызов Tick - ровно один полный проход.
type Simulation struct {
	market Market
	cfg    Config

	shopper *agent.Shopper
	pursuer *agent.Pursuer
	rng     utils.Source

	control Control
	sink    Sink

	state    RunState
	tick     uint64
	respawns int
	collided bool

	log *logrus.Entry
}

// NewSimulation собирает симуляцию. Любая ошибка конфигурации возвращается здесь,
// до первого тика. control и sink могут быть nil.
func NewSimulation(market Market, cfg Config, rng utils.Source, control Control, sink Sink) (*Simulation, error) {
	if market.Grid == nil || market.Catalog == nil || market.Model == nil {
		return nil, errIncompleteMarket
	}
	if rng == nil {
		rng = utils.NewSource(cfg.ResolvedSeed())
	}
	if control == nil {
		control = never{}
	}
	if sink == nil {
		sink = Discard
	}

	// Покупатель и призрак берут случайность из одного источника:
	// порядок вызовов внутри тика фиксирован, значит прогон воспроизводим по сиду.
	shopper, err := agent.NewShopper(cfg.Entry, market.Model, market.Catalog, rng)
	if err != nil {
		return nil, fmt.Errorf("shopper: %w", err)
	}
	pursuer, err := agent.NewPursuer(cfg.PursuerStart, market.Grid)
	if err != nil {
		return nil, err
	}

	return &Simulation{
		market:  market,
		cfg:     cfg,
		shopper: shopper,
		pursuer: pursuer,
		rng:     rng,
		control: control,
		sink:    sink,
		state:   Running,
		log:     logger.Component("simulation"),
	}, nil
}

// Tick выполняет один шаг. Возвращает false, если симуляция остановлена
// (на этом тике или раньше). Ошибка означает баг конфигурации: симуляция останавливается.
func (s *Simulation) Tick() (bool, error) {
	if s.state == Stopped {
		return false, nil
	}

	// 0. Внешний сигнал остановки
	if s.control.StopRequested() {
		s.state = Stopped
		s.log.WithField("tick", s.tick).Info("Stop requested, simulation stopped")
		return false, nil
	}

	// 1. Покупатель: новая зона по цепи, новая клетка внутри нее
	if err := s.shopper.Tick(); err != nil {
		s.state = Stopped
		return false, fmt.Errorf("shopper tick %d: %w", s.tick+1, err)
	}

	// 2. Призрак: шаг случайного блуждания
	s.pursuer.Tick(s.rng)

	// 3. Проверка столкновения
	s.collided = s.shopper.Pos() == s.pursuer.Pos()

	// 4. Поимка: покупатель возрождается у входа, призрак остается где был
	if s.collided {
		caughtIn := s.shopper.Zone()
		if err := s.shopper.Respawn(s.cfg.Entry); err != nil {
			s.state = Stopped
			return false, fmt.Errorf("respawn on tick %d: %w", s.tick+1, err)
		}
		s.respawns++
		s.log.WithFields(logrus.Fields{
			"tick":     s.tick + 1,
			"zone":     caughtIn,
			"at":       s.pursuer.Pos().String(),
			"respawns": s.respawns,
		}).Info("Shopper caught, respawned at entrance")
	}

	s.tick++

	// 5. Снимок для рендерера
	s.sink.Emit(s.Snapshot())
	return true, nil
}

// Advance прогоняет до n тиков подряд (для батча и тестов).
// Возвращает число реально выполненных тиков.
func (s *Simulation) Advance(n int) (int, error) {
	done := 0
	for done < n {
		ok, err := s.Tick()
		if err != nil {
			return done, err
		}
		if !ok {
			break
		}
		done++
	}
	return done, nil
}

// Snapshot - текущее состояние. До первого тика Tick == 0.
func (s *Simulation) Snapshot() domain.SimulationState {
	return domain.SimulationState{
		Tick:          s.tick,
		ShopperZone:   s.shopper.Zone(),
		ShopperPos:    s.shopper.Pos(),
		ShopperAvatar: s.shopper.Avatar(),
		ShopperVisit:  s.shopper.Visit(),
		PursuerPos:    s.pursuer.Pos(),
		Collided:      s.collided,
		Respawns:      s.respawns,
	}
}

func (s *Simulation) State() RunState  { return s.state }
func (s *Simulation) Market() Market    { return s.market }
func (s *Simulation) Config() Config    { return s.cfg }
func (s *Simulation) TickCount() uint64 { return s.tick }
