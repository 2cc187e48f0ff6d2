package systems

import (
	"fmt"
	"math"

	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/pkg/utils"
)

// RowSumTolerance - допустимое отклонение суммы строки от 1
const RowSumTolerance = 1e-6

// MarkovModel - цепь Маркова над отделами магазина.
// Строка i - распределение следующей зоны для текущей зоны order[i].
type MarkovModel struct {
	order []domain.ZoneName
	index map[domain.ZoneName]int
	rows  [][]float64
}

// NewMarkovModel строит модель и проверяет матрицу. Ничего не перенормирует:
// строка, сумма которой вне [1-ε, 1+ε], отклоняется целиком.
func NewMarkovModel(catalog *domain.ZoneCatalog, order []domain.ZoneName, rows [][]float64) (*MarkovModel, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: no zones", domain.ErrInvalidTransitionMatrix)
	}
	if len(rows) != len(order) {
		return nil, fmt.Errorf("%w: %d rows for %d zones", domain.ErrInvalidTransitionMatrix, len(rows), len(order))
	}

	m := &MarkovModel{
		order: append([]domain.ZoneName(nil), order...),
		index: make(map[domain.ZoneName]int, len(order)),
		rows:  make([][]float64, len(rows)),
	}

	for i, name := range order {
		if !catalog.Has(name) {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownZone, name)
		}
		if _, dup := m.index[name]; dup {
			return nil, fmt.Errorf("%w: zone %q listed twice", domain.ErrInvalidTransitionMatrix, name)
		}
		m.index[name] = i

		if err := validateRow(name, rows[i], len(order)); err != nil {
			return nil, err
		}
		m.rows[i] = append([]float64(nil), rows[i]...)
	}

	return m, nil
}

func validateRow(name domain.ZoneName, row []float64, n int) error {
	if len(row) != n {
		return fmt.Errorf("%w: row %q has %d entries, expected %d", domain.ErrInvalidTransitionMatrix, name, len(row), n)
	}
	sum := 0.0
	for j, p := range row {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return fmt.Errorf("%w: row %q entry %d is %v", domain.ErrInvalidTransitionMatrix, name, j, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > RowSumTolerance {
		return fmt.Errorf("%w: row %q sums to %.9f", domain.ErrInvalidTransitionMatrix, name, sum)
	}
	return nil
}

// NextZone - один взвешенный переход из текущей зоны
func (m *MarkovModel) NextZone(current domain.ZoneName, rng utils.Source) (domain.ZoneName, error) {
	i, ok := m.index[current]
	if !ok {
		return "", fmt.Errorf("%w: no transition row for %q", domain.ErrUnknownZone, current)
	}
	j := utils.Choose(rng, m.rows[i])
	if j < 0 {
		// Невозможно после валидации: строка с суммой 1 имеет ненулевой элемент
		return "", fmt.Errorf("%w: row %q has no positive entry", domain.ErrInvalidTransitionMatrix, current)
	}
	return m.order[j], nil
}

// Zones - канонический порядок зон
func (m *MarkovModel) Zones() []domain.ZoneName {
	return append([]domain.ZoneName(nil), m.order...)
}

// Row - копия строки переходов для зоны
func (m *MarkovModel) Row(zone domain.ZoneName) ([]float64, error) {
	i, ok := m.index[zone]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownZone, zone)
	}
	return append([]float64(nil), m.rows[i]...), nil
}

// Stationary считает стационарное распределение степенным методом: π <- π·P.
// Для статистического отчета; на сам тик не влияет.
func (m *MarkovModel) Stationary() map[domain.ZoneName]float64 {
	const (
		maxIterations = 100000
		epsilon       = 1e-13
	)

	n := len(m.order)
	pi := utils.Uniform(n)
	next := make([]float64, n)

	for it := 0; it < maxIterations; it++ {
		for j := range next {
			next[j] = 0
		}
		for i, row := range m.rows {
			for j, p := range row {
				next[j] += pi[i] * p
			}
		}

		// Усредняем с предыдущим шагом: сходится и для периодических цепей
		delta := 0.0
		for j := range next {
			v := 0.5*pi[j] + 0.5*next[j]
			delta += math.Abs(v - pi[j])
			pi[j] = v
		}
		if delta < epsilon {
			break
		}
	}

	total := 0.0
	for _, v := range pi {
		total += v
	}
	out := make(map[domain.ZoneName]float64, n)
	for i, name := range m.order {
		out[name] = pi[i] / total
	}
	return out
}
