package engine

import (
	"math"
	"time"
)

// FramePacer переводит кадры игрового цикла (ebiten вызывает Update с частотой TPS)
// в тики симуляции: один тик на каждые every кадров.
type FramePacer struct {
	every int
	frame int
}

func NewFramePacer(tps int, interval time.Duration) *FramePacer {
	every := int(math.Round(interval.Seconds() * float64(tps)))
	if every < 1 {
		every = 1
	}
	return &FramePacer{every: every}
}

// Frame отмечает кадр и говорит, пора ли тикать
func (p *FramePacer) Frame() bool {
	p.frame++
	if p.frame >= p.every {
		p.frame = 0
		return true
	}
	return false
}

// FramesPerTick - сколько кадров приходится на один тик
func (p *FramePacer) FramesPerTick() int { return p.every }
