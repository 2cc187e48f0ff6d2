package engine

import (
	"sync"

	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/sirupsen/logrus"
)

// Sink - рендеринг-коллаборатор. Получает снимок один раз за тик.
type Sink interface {
	Emit(state domain.SimulationState)
}

// SinkFunc позволяет использовать функцию как Sink
type SinkFunc func(state domain.SimulationState)

func (f SinkFunc) Emit(state domain.SimulationState) { f(state) }

// MultiSink рассылает снимок всем получателям по порядку
type MultiSink []Sink

func (m MultiSink) Emit(state domain.SimulationState) {
	for _, s := range m {
		s.Emit(state)
	}
}

// Discard - получатель по умолчанию
var Discard Sink = SinkFunc(func(domain.SimulationState) {})

// LogSink пишет каждый тик в лог на уровне Debug
type LogSink struct {
	Log *logrus.Entry
}

func (l LogSink) Emit(state domain.SimulationState) {
	l.Log.WithFields(logrus.Fields{
		"tick":    state.Tick,
		"zone":    state.ShopperZone,
		"shopper": state.ShopperPos.String(),
		"pursuer": state.PursuerPos.String(),
	}).Debug("Tick")
}

// Latest хранит последний снимок для читателей из других горутин (HTTP /state)
type Latest struct {
	mu    sync.RWMutex
	state domain.SimulationState
	seen  bool
}

// NewLatest - кэш с начальным состоянием (до первого тика)
func NewLatest(initial domain.SimulationState) *Latest {
	return &Latest{state: initial}
}

func (l *Latest) Emit(state domain.SimulationState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = state
	l.seen = true
}

// Get возвращает последний снимок и признак того, что был хотя бы один тик
func (l *Latest) Get() (domain.SimulationState, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state, l.seen
}

// Prime задает состояние до первого тика: Get вернет его с признаком false
func (l *Latest) Prime(state domain.SimulationState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = state
}
