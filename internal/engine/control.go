package engine

import "sync/atomic"

// Control - внешний сигнал остановки. Симуляция опрашивает его ровно один раз за тик.
type Control interface {
	StopRequested() bool
}

// ControlFunc позволяет использовать обычную функцию как Control
type ControlFunc func() bool

func (f ControlFunc) StopRequested() bool { return f() }

// StopFlag - потокобезопасный флаг. Его взводят клавиатура, сигналы ОС или HTTP.
type StopFlag struct {
	stopped atomic.Bool
}

func (f *StopFlag) Stop()               { f.stopped.Store(true) }
func (f *StopFlag) StopRequested() bool { return f.stopped.Load() }

// TickLimit просит остановку после Max опросов, т.е. после Max полных тиков.
type TickLimit struct {
	Max   uint64
	polls uint64
}

func (l *TickLimit) StopRequested() bool {
	if l.polls >= l.Max {
		return true
	}
	l.polls++
	return false
}

// AnyOf останавливает, как только хотя бы один из сигналов попросил об этом.
// Опрашиваются все сигналы, чтобы счетчики вроде TickLimit не отставали.
func AnyOf(controls ...Control) Control {
	return ControlFunc(func() bool {
		stop := false
		for _, c := range controls {
			if c.StopRequested() {
				stop = true
			}
		}
		return stop
	})
}

// never - управление по умолчанию: симуляция идет, пока ее не перестанут тикать
type never struct{}

func (never) StopRequested() bool { return false }
