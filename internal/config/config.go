// Package config загружает сценарий магазина: планировку, зоны, матрицу переходов
// и параметры запуска. Порядок: встроенный market.yaml -> файл -> переменные окружения.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/internal/engine"
	"github.com/mkoeppel/Markov-Market/internal/systems"
	"github.com/mkoeppel/Markov-Market/pkg/utils"
	"gopkg.in/yaml.v3"
)

//go:embed market.yaml
var defaultMarket []byte

// ErrInvalidConfig - скалярные настройки вне допустимых значений
var ErrInvalidConfig = errors.New("invalid config")

// Seed - мастер-зерно сценария. В YAML и MARKET_SEED можно написать число
// или любую фразу: фраза превращается в стабильный сид через utils.StringToSeed.
type Seed int64

// ParseSeed: целое число берется как есть, остальное хешируется
func ParseSeed(v string) Seed {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return Seed(n)
	}
	return Seed(utils.StringToSeed(v))
}

func (s *Seed) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: seed must be a number or a string", ErrInvalidConfig)
	}
	switch node.ShortTag() {
	case "!!null":
		*s = 0
		return nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return fmt.Errorf("%w: seed: %v", ErrInvalidConfig, err)
		}
		*s = Seed(n)
		return nil
	}
	*s = ParseSeed(node.Value)
	return nil
}

// Scenario - все, что нужно для запуска одной симуляции
type Scenario struct {
	Name string `yaml:"name"`

	Seed  Seed          `yaml:"seed"`
	Tick  time.Duration `yaml:"tick"`
	Port  int           `yaml:"port"`
	Scale int           `yaml:"scale"`

	Layout       string          `yaml:"layout"`
	Entry        domain.ZoneName `yaml:"entry"`
	PursuerStart domain.Position `yaml:"pursuer_start"`

	Zones       []domain.Zone                   `yaml:"zones"`
	Order       []domain.ZoneName               `yaml:"order"`
	Transitions map[domain.ZoneName][]float64 `yaml:"transitions"`
}

// Default возвращает встроенный сценарий исходного магазина
func Default() *Scenario {
	var s Scenario
	if err := yaml.Unmarshal(defaultMarket, &s); err != nil {
		panic(fmt.Sprintf("embedded market.yaml is broken: %v", err))
	}
	return &s
}

// Load: встроенный сценарий, поверх него файл (если path не пуст), поверх - окружение
func Load(path string) (*Scenario, error) {
	s := Default()
	if path != "" {
		fileScenario, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		s = fileScenario
	}

	if err := applyEnvOverrides(s); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFromFile читает YAML поверх встроенных значений.
// Поля, которых нет в файле, остаются как в market.yaml.
func LoadFromFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// yaml дописывает ключи в существующую map, а матрица должна браться из файла целиком
	var own struct {
		Transitions map[domain.ZoneName][]float64 `yaml:"transitions"`
	}
	if err := yaml.Unmarshal(data, &own); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if own.Transitions != nil {
		s.Transitions = own.Transitions
	}
	return s, nil
}

// Validate проверяет скалярные настройки. Карта, зоны и матрица проверяются в Build.
func (s *Scenario) Validate() error {
	if s.Tick <= 0 {
		return fmt.Errorf("%w: tick must be positive, got %v", ErrInvalidConfig, s.Tick)
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("%w: port must be in 1..65535, got %d", ErrInvalidConfig, s.Port)
	}
	if s.Scale < 1 {
		return fmt.Errorf("%w: scale must be >= 1, got %d", ErrInvalidConfig, s.Scale)
	}
	if s.Entry == "" {
		return fmt.Errorf("%w: entry zone is required", ErrInvalidConfig)
	}
	return nil
}

// Build собирает карту, каталог и цепь. Любая ошибка конфигурации всплывает здесь,
// до первого тика.
func (s *Scenario) Build() (engine.Market, engine.Config, error) {
	if err := s.Validate(); err != nil {
		return engine.Market{}, engine.Config{}, err
	}

	grid, err := domain.ParseLayout(s.Layout)
	if err != nil {
		return engine.Market{}, engine.Config{}, fmt.Errorf("layout: %w", err)
	}

	catalog, err := domain.NewZoneCatalog(grid, s.Zones)
	if err != nil {
		return engine.Market{}, engine.Config{}, fmt.Errorf("zones: %w", err)
	}

	rows := make([][]float64, 0, len(s.Order))
	for _, name := range s.Order {
		row, ok := s.Transitions[name]
		if !ok {
			return engine.Market{}, engine.Config{}, fmt.Errorf("%w: no transitions for %q", domain.ErrInvalidTransitionMatrix, name)
		}
		rows = append(rows, row)
	}
	if len(s.Transitions) != len(s.Order) {
		return engine.Market{}, engine.Config{}, fmt.Errorf("%w: %d transition rows for %d zones in order",
			domain.ErrInvalidTransitionMatrix, len(s.Transitions), len(s.Order))
	}

	model, err := systems.NewMarkovModel(catalog, s.Order, rows)
	if err != nil {
		return engine.Market{}, engine.Config{}, fmt.Errorf("transitions: %w", err)
	}

	market := engine.Market{Grid: grid, Catalog: catalog, Model: model}
	cfg := engine.Config{
		Seed:         int64(s.Seed),
		Entry:        s.Entry,
		PursuerStart: s.PursuerStart,
	}
	return market, cfg, nil
}

// applyEnvOverrides: MARKET_SEED, MARKET_PORT, MARKET_TICK.
// Нечитаемый порт или тик - ошибка, а не тихий откат к умолчанию.
func applyEnvOverrides(s *Scenario) error {
	if v := os.Getenv("MARKET_SEED"); v != "" {
		s.Seed = ParseSeed(v)
	}
	if v := os.Getenv("MARKET_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: MARKET_PORT: %v", ErrInvalidConfig, err)
		}
		s.Port = port
	}
	if v := os.Getenv("MARKET_TICK"); v != "" {
		tick, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: MARKET_TICK: %v", ErrInvalidConfig, err)
		}
		s.Tick = tick
	}
	return nil
}
