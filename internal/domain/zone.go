package domain

import (
	"fmt"

	"github.com/mkoeppel/Markov-Market/pkg/utils"
)

// ZoneName - имя отдела магазина
type ZoneName string

// Отделы стандартной планировки
const (
	ZoneEntrance ZoneName = "entrance"
	ZoneDairy    ZoneName = "dairy"
	ZoneDrinks   ZoneName = "drinks"
	ZoneFruits   ZoneName = "fruits"
	ZoneSpices   ZoneName = "spices"
)

// Zone - именованный прямоугольник клеток
type Zone struct {
	Name  ZoneName `json:"name"`
	Cells Rect     `json:"cells"`
}

// ZoneCatalog - статическое отображение "отдел -> прямоугольник клеток".
// Заполняется один раз при старте и дальше только читается.
type ZoneCatalog struct {
	order []ZoneName
	zones map[ZoneName]Zone
}

// NewZoneCatalog проверяет каждую зону относительно сетки:
// непустой прямоугольник, внутри границ, только проходимые клетки, уникальное имя.
// Ошибочная конфигурация не исправляется, а возвращается как ошибка.
func NewZoneCatalog(grid *GridMap, zones []Zone) (*ZoneCatalog, error) {
	c := &ZoneCatalog{
		order: make([]ZoneName, 0, len(zones)),
		zones: make(map[ZoneName]Zone, len(zones)),
	}

	for _, z := range zones {
		if _, dup := c.zones[z.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateZone, z.Name)
		}
		if z.Cells.IsEmpty() {
			return nil, fmt.Errorf("%w: %q has rect %s", ErrEmptyZone, z.Name, z.Cells)
		}
		if !grid.InBounds(z.Cells.X0, z.Cells.Y0) || !grid.InBounds(z.Cells.X1, z.Cells.Y1) {
			return nil, fmt.Errorf("%w: zone %q rect %s outside %dx%d grid", ErrOutOfBounds, z.Name, z.Cells, grid.Width(), grid.Height())
		}
		for y := z.Cells.Y0; y <= z.Cells.Y1; y++ {
			for x := z.Cells.X0; x <= z.Cells.X1; x++ {
				// Границы уже проверены, ошибки тут быть не может
				ok, _ := grid.IsWalkable(x, y)
				if !ok {
					return nil, fmt.Errorf("%w: zone %q at (%d,%d)", ErrZoneNotWalkable, z.Name, x, y)
				}
			}
		}

		c.order = append(c.order, z.Name)
		c.zones[z.Name] = z
	}

	return c, nil
}

// Names - зоны в порядке объявления
func (c *ZoneCatalog) Names() []ZoneName {
	return append([]ZoneName(nil), c.order...)
}

func (c *ZoneCatalog) Has(name ZoneName) bool {
	_, ok := c.zones[name]
	return ok
}

// RangeOf возвращает прямоугольник зоны
func (c *ZoneCatalog) RangeOf(name ZoneName) (Rect, error) {
	z, ok := c.zones[name]
	if !ok {
		return Rect{}, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	return z.Cells, nil
}

// SampleCell выбирает клетку зоны равномерно: сначала столбец, затем строка.
func (c *ZoneCatalog) SampleCell(name ZoneName, rng utils.Source) (Position, error) {
	r, err := c.RangeOf(name)
	if err != nil {
		return Position{}, err
	}
	if r.IsEmpty() {
		return Position{}, fmt.Errorf("%w: %q has rect %s", ErrEmptyZone, name, r)
	}
	return Position{
		X: r.X0 + rng.Intn(r.Width()),
		Y: r.Y0 + rng.Intn(r.Height()),
	}, nil
}

// ZoneAt - в какую зону попадает клетка (первая по порядку объявления)
func (c *ZoneCatalog) ZoneAt(p Position) (ZoneName, bool) {
	for _, name := range c.order {
		if c.zones[name].Cells.Contains(p) {
			return name, true
		}
	}
	return "", false
}
