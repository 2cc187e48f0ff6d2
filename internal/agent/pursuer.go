package agent

import (
	"fmt"

	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/internal/systems"
	"github.com/mkoeppel/Markov-Market/pkg/utils"
)

// Pursuer - "призрак", который бродит по залу случайным блужданием.
// Создается один раз и переживает все респавны покупателя.
type Pursuer struct {
	pos  domain.Position
	grid *domain.GridMap
}

// NewPursuer - стартовая клетка обязана быть проходимой
func NewPursuer(start domain.Position, grid *domain.GridMap) (*Pursuer, error) {
	walkable, err := grid.IsWalkable(start.X, start.Y)
	if err != nil {
		return nil, fmt.Errorf("pursuer start: %w", err)
	}
	if !walkable {
		return nil, fmt.Errorf("pursuer start %s: %w", start, domain.ErrNotWalkable)
	}
	return &Pursuer{pos: start, grid: grid}, nil
}

// Tick - шаг на ±1 по каждой оси. Шаг в стену или за край сетки отбрасывается,
// и призрак остается на месте до следующего тика.
func (p *Pursuer) Tick(rng utils.Source) systems.MovementResult {
	dx, dy := systems.RandomStep(rng)
	res := systems.CalculateMove(p.pos, dx, dy, p.grid)
	if res.HasMoved {
		p.pos = res.Target
	}
	return res
}

func (p *Pursuer) Pos() domain.Position { return p.pos }
