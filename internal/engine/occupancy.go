package engine

import (
	"math"
	"sync"

	"github.com/mkoeppel/Markov-Market/internal/domain"
)

// Occupancy считает, сколько тиков покупатель провел в каждой зоне.
// Это Sink: его читают HTTP-хендлеры из других горутин, поэтому счетчики под мьютексом.
type Occupancy struct {
	mu         sync.RWMutex
	counts     map[domain.ZoneName]uint64
	total      uint64
	collisions uint64
}

func NewOccupancy() *Occupancy {
	return &Occupancy{counts: make(map[domain.ZoneName]uint64)}
}

func (o *Occupancy) Emit(state domain.SimulationState) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.counts[state.ShopperZone]++
	o.total++
	if state.Collided {
		o.collisions++
	}
}

func (o *Occupancy) Total() uint64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.total
}

func (o *Occupancy) Collisions() uint64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.collisions
}

// Fractions - доля тиков по зонам
func (o *Occupancy) Fractions() map[domain.ZoneName]float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make(map[domain.ZoneName]float64, len(o.counts))
	if o.total == 0 {
		return out
	}
	for zone, n := range o.counts {
		out[zone] = float64(n) / float64(o.total)
	}
	return out
}

// ZoneShare - строка сравнения наблюдаемой доли с теоретической
type ZoneShare struct {
	Zone     domain.ZoneName `json:"zone"`
	Ticks    uint64          `json:"ticks"`
	Observed float64         `json:"observed"`
	Expected float64         `json:"expected"`
}

// Delta - абсолютное отклонение наблюдения от стационарного распределения
func (z ZoneShare) Delta() float64 {
	return math.Abs(z.Observed - z.Expected)
}

// Compare строит таблицу в порядке order
func (o *Occupancy) Compare(order []domain.ZoneName, expected map[domain.ZoneName]float64) []ZoneShare {
	o.mu.RLock()
	defer o.mu.RUnlock()

	rows := make([]ZoneShare, 0, len(order))
	for _, zone := range order {
		row := ZoneShare{Zone: zone, Ticks: o.counts[zone], Expected: expected[zone]}
		if o.total > 0 {
			row.Observed = float64(row.Ticks) / float64(o.total)
		}
		rows = append(rows, row)
	}
	return rows
}
