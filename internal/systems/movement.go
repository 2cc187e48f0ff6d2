package systems

import (
	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/pkg/utils"
)

// MovementResult - результат вычисления шага. Состояние мира не меняется.
type MovementResult struct {
	Target   domain.Position // Куда пытались шагнуть
	HasMoved bool
	IsWall   bool // Уперлись в преграду
	IsOOB    bool // Вышли бы за пределы сетки
}

// CalculateMove проверяет шаг (dx, dy) из позиции from.
// Стена или край сетки - нормальный исход, а не ошибка: агент просто остается на месте.
func CalculateMove(from domain.Position, dx, dy int, grid *domain.GridMap) MovementResult {
	target := from.Shift(dx, dy)
	res := MovementResult{Target: target}

	// 1. Проверка границ
	if !grid.InBounds(target.X, target.Y) {
		res.IsOOB = true
		return res
	}

	// 2. Проверка стен и стеллажей
	walkable, err := grid.IsWalkable(target.X, target.Y)
	if err != nil || !walkable {
		res.IsWall = true
		return res
	}

	res.HasMoved = true
	return res
}

// RandomStep тянет смещение по каждой оси из {-1, 0, 1}.
// Все 9 комбинаций (включая "стоять") равновероятны.
func RandomStep(rng utils.Source) (dx, dy int) {
	dx = utils.UniformInt(rng, -1, 1)
	dy = utils.UniformInt(rng, -1, 1)
	return dx, dy
}
