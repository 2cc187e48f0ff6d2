package systems

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/mkoeppel/Markov-Market/internal/domain"
)

func TestNewMarkovModel_RowsSumToOne(t *testing.T) {
	_, catalog := createTestCatalog(t)

	m, err := NewMarkovModel(catalog, testOrder, testRows)
	if err != nil {
		t.Fatalf("NewMarkovModel() error = %v", err)
	}

	for _, z := range m.Zones() {
		row, err := m.Row(z)
		if err != nil {
			t.Fatal(err)
		}
		sum := 0.0
		for _, p := range row {
			sum += p
		}
		if math.Abs(sum-1) > RowSumTolerance {
			t.Errorf("Row %q sums to %v", z, sum)
		}
	}
}

func TestNewMarkovModel_Invalid(t *testing.T) {
	_, catalog := createTestCatalog(t)
	two := []domain.ZoneName{domain.ZoneDairy, domain.ZoneSpices}

	tests := []struct {
		name  string
		order []domain.ZoneName
		rows  [][]float64
		want  error
	}{
		{"row sums to 0.9", two, [][]float64{{0.5, 0.4}, {0.5, 0.5}}, domain.ErrInvalidTransitionMatrix},
		{"row sums to 1.1", two, [][]float64{{0.5, 0.5}, {0.6, 0.5}}, domain.ErrInvalidTransitionMatrix},
		{"negative entry", two, [][]float64{{1.2, -0.2}, {0.5, 0.5}}, domain.ErrInvalidTransitionMatrix},
		{"NaN entry", two, [][]float64{{math.NaN(), 1}, {0.5, 0.5}}, domain.ErrInvalidTransitionMatrix},
		{"short row", two, [][]float64{{1}, {0.5, 0.5}}, domain.ErrInvalidTransitionMatrix},
		{"missing row", two, [][]float64{{0.5, 0.5}}, domain.ErrInvalidTransitionMatrix},
		{"no zones", nil, nil, domain.ErrInvalidTransitionMatrix},
		{"duplicate zone", []domain.ZoneName{domain.ZoneDairy, domain.ZoneDairy}, [][]float64{{0.5, 0.5}, {0.5, 0.5}}, domain.ErrInvalidTransitionMatrix},
		{"unknown zone", []domain.ZoneName{domain.ZoneDairy, "bakery"}, [][]float64{{0.5, 0.5}, {0.5, 0.5}}, domain.ErrUnknownZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMarkovModel(catalog, tt.order, tt.rows)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewMarkovModel_WithinTolerance(t *testing.T) {
	_, catalog := createTestCatalog(t)
	two := []domain.ZoneName{domain.ZoneDairy, domain.ZoneSpices}

	// 1 - 5e-7 укладывается в допуск и не должна перенормироваться
	rows := [][]float64{{0.5, 0.4999995}, {0, 1}}
	m, err := NewMarkovModel(catalog, two, rows)
	if err != nil {
		t.Fatalf("Row within tolerance rejected: %v", err)
	}
	row, _ := m.Row(domain.ZoneDairy)
	if row[1] != 0.4999995 {
		t.Errorf("Row was modified: %v", row)
	}
}

func TestMarkovModel_NextZone_CumulativeSampling(t *testing.T) {
	_, catalog := createTestCatalog(t)
	m, err := NewMarkovModel(catalog, testOrder, testRows)
	if err != nil {
		t.Fatal(err)
	}

	// Накопленные суммы строки entrance: 0, .2157, .5122, .8768, 1.0
	tests := []struct {
		u    float64
		want domain.ZoneName
	}{
		{0.0, domain.ZoneDairy}, // вход с нулевой вероятностью не выбирается
		{0.2157, domain.ZoneDairy},
		{0.2158, domain.ZoneDrinks},
		{0.5, domain.ZoneDrinks},
		{0.6, domain.ZoneFruits},
		{0.95, domain.ZoneSpices},
		{0.99999999999, domain.ZoneSpices},
	}

	for _, tt := range tests {
		seq := floatSeq{tt.u}
		got, err := m.NextZone(domain.ZoneEntrance, &seq)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("u=%v: got %q, want %q", tt.u, got, tt.want)
		}
	}
}

func TestMarkovModel_NextZone_Unknown(t *testing.T) {
	_, catalog := createTestCatalog(t)
	m, _ := NewMarkovModel(catalog, []domain.ZoneName{domain.ZoneDairy}, [][]float64{{1}})

	// Зона есть в каталоге, но строки для нее нет
	_, err := m.NextZone(domain.ZoneSpices, rand.New(rand.NewSource(1)))
	if !errors.Is(err, domain.ErrUnknownZone) {
		t.Errorf("Expected ErrUnknownZone, got %v", err)
	}
}

func TestMarkovModel_Stationary(t *testing.T) {
	_, catalog := createTestCatalog(t)
	two := []domain.ZoneName{domain.ZoneDairy, domain.ZoneSpices}

	// Для P = [[0.9 0.1] [0.5 0.5]] π = (5/6, 1/6)
	m, err := NewMarkovModel(catalog, two, [][]float64{{0.9, 0.1}, {0.5, 0.5}})
	if err != nil {
		t.Fatal(err)
	}
	pi := m.Stationary()
	if math.Abs(pi[domain.ZoneDairy]-5.0/6.0) > 1e-9 || math.Abs(pi[domain.ZoneSpices]-1.0/6.0) > 1e-9 {
		t.Errorf("Unexpected stationary distribution %v", pi)
	}

	// Периодическая цепь тоже должна сойтись к (1/2, 1/2)
	flip, _ := NewMarkovModel(catalog, two, [][]float64{{0, 1}, {1, 0}})
	pi = flip.Stationary()
	if math.Abs(pi[domain.ZoneDairy]-0.5) > 1e-9 {
		t.Errorf("Periodic chain: unexpected %v", pi)
	}
}
