package agent

import (
	"fmt"

	"github.com/mkoeppel/Markov-Market/internal/domain"
	"github.com/mkoeppel/Markov-Market/internal/systems"
	"github.com/mkoeppel/Markov-Market/pkg/utils"
)

// AvatarVariants - сколько взаимозаменяемых спрайтов покупателя знает рендерер
const AvatarVariants = 3

// Shopper - покупатель, который перемещается между отделами по цепи Маркова.
// Поля меняются только через Tick и Respawn (их вызывает только цикл симуляции).
//
// Жизненный цикл:
//  1. NewShopper -> появляется во входной зоне.
//  2. Tick -> новый отдел по матрице переходов, затем новая клетка внутри отдела.
//  3. Respawn -> после поимки: снова у входа, новый спрайт, Visit++.
type Shopper struct {
	zone   domain.ZoneName
	pos    domain.Position
	avatar int
	visit  int

	model   *systems.MarkovModel
	catalog *domain.ZoneCatalog
	rng     utils.Source
}

// NewShopper создает покупателя в зоне entry.
// Зона должна быть и в каталоге, и в цепи, иначе первый же тик не сможет выбрать переход.
func NewShopper(entry domain.ZoneName, model *systems.MarkovModel, catalog *domain.ZoneCatalog, rng utils.Source) (*Shopper, error) {
	if _, err := model.Row(entry); err != nil {
		return nil, fmt.Errorf("entry zone: %w", err)
	}

	s := &Shopper{
		model:   model,
		catalog: catalog,
		rng:     rng,
	}
	if err := s.Respawn(entry); err != nil {
		return nil, err
	}
	return s, nil
}

// Tick - один переход цепи. Клетка пересэмплируется даже если отдел не сменился.
func (s *Shopper) Tick() error {
	next, err := s.model.NextZone(s.zone, s.rng)
	if err != nil {
		return err
	}
	// Клетка тянется из нового отдела до присваивания: при ошибке зона и позиция
	// остаются согласованными. Порядок обращений к rng тот же: сначала отдел, потом клетка.
	pos, err := s.catalog.SampleCell(next, s.rng)
	if err != nil {
		return err
	}

	s.zone = next
	s.pos = pos
	return nil
}

// Respawn возвращает покупателя в зону entry: свежая клетка, новый спрайт, новый визит
func (s *Shopper) Respawn(entry domain.ZoneName) error {
	pos, err := s.catalog.SampleCell(entry, s.rng)
	if err != nil {
		return err
	}

	// Тот же примитив, что и для выбора отдела: равномерное распределение по спрайтам
	avatar := utils.Choose(s.rng, utils.Uniform(AvatarVariants))

	s.zone = entry
	s.pos = pos
	s.avatar = avatar
	s.visit++
	return nil
}

func (s *Shopper) Zone() domain.ZoneName { return s.zone }
func (s *Shopper) Pos() domain.Position  { return s.pos }
func (s *Shopper) Avatar() int           { return s.avatar }

// Visit - номер текущего визита (1 для первого покупателя)
func (s *Shopper) Visit() int { return s.visit }
