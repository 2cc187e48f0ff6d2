package network

import (
	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/internal/engine"
	"github.com/mkoeppel/Markov-Market/pkg/api"
)

// Publisher - Sink симуляции: каждый тик превращается в UPDATE и уходит всем клиентам.
// Сама рассылка неблокирующая, так что тик не зависит от сети.
type Publisher struct {
	hub   *Broadcaster
	runID string
}

func NewPublisher(hub *Broadcaster, runID string) *Publisher {
	return &Publisher{hub: hub, runID: runID}
}

func (p *Publisher) Emit(state domain.SimulationState) {
	p.hub.Broadcast(engine.BuildUpdate(p.runID, state))
}

// Stopped сообщает клиентам, что тиков больше не будет
func (p *Publisher) Stopped(state domain.SimulationState) {
	msg := engine.BuildUpdate(p.runID, state)
	msg.Type = api.TypeStopped
	msg.Logs = nil
	p.hub.Broadcast(msg)
}
