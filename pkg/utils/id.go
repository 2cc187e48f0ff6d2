package utils

import "github.com/google/uuid"

// NewRunID - идентификатор запуска симуляции (метка в логах и в потоке снимков).
// Берется не из сида, чтобы не сдвигать детерминированную последовательность.
func NewRunID() string {
	return uuid.NewString()
}

// ShortID - первые 8 символов, для человекочитаемых логов
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
