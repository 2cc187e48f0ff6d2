package utils

import (
	"hash/fnv"
	"math/rand"
)

// Source - минимальный источник случайности, который нужен симуляции.
// *rand.Rand подходит как есть; в тестах подставляется заранее записанная последовательность.
type Source interface {
	// Float64 возвращает число из [0, 1)
	Float64() float64
	// Intn возвращает число из [0, n)
	Intn(n int) int
}

// NewSource создает детерминированный генератор от сида
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// StringToSeed превращает строку (например, имя сценария) в стабильный сид
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// Choose выбирает индекс из дискретного распределения методом накопленной суммы:
// тянем u из [0,1) и берем первый индекс, чья накопленная вероятность больше u.
// Веса не перенормируются. Если из-за округления u оказался не меньше полной суммы,
// возвращается последний индекс с ненулевым весом. Пустой или нулевой вектор -> -1.
func Choose(rng Source, probs []float64) int {
	u := rng.Float64()
	acc := 0.0
	last := -1
	for i, p := range probs {
		if p <= 0 {
			continue
		}
		last = i
		acc += p
		if u < acc {
			return i
		}
	}
	return last
}

// Uniform - равномерное распределение на n исходах
func Uniform(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = 1.0 / float64(n)
	}
	return out
}

// UniformInt возвращает целое из [lo, hi] включительно
func UniformInt(rng Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
