package engine

import (
	"time"

	"github.com/mkoeppel/Markov-Market/internal/domain"
)

// Config хранит параметры запуска симуляции
type Config struct {
	// Seed - мастер-зерно. От него зависят и цепь покупателя, и блуждание призрака.
	// 0 означает "взять от времени".
	Seed int64

	// Entry - зона входа: в ней покупатель появляется и после каждой поимки
	Entry domain.ZoneName

	PursuerStart domain.Position
}

// ResolvedSeed возвращает сид, с которым реально стартует симуляция
func (c Config) ResolvedSeed() int64 {
	if c.Seed == 0 {
		return time.Now().UnixNano()
	}
	return c.Seed
}
