package domain

import "errors"

// Ошибки конфигурации. Все они фатальны и должны всплыть до первого тика.
var (
	// ErrMalformedLayout - текст планировки не прямоугольный (или пустой)
	ErrMalformedLayout = errors.New("malformed layout")

	// ErrUnknownZone - имя зоны не зарегистрировано в каталоге
	ErrUnknownZone = errors.New("unknown zone")

	// ErrEmptyZone - прямоугольник зоны нулевой ширины или высоты
	ErrEmptyZone = errors.New("empty zone")

	// ErrInvalidTransitionMatrix - строка матрицы переходов не является распределением
	ErrInvalidTransitionMatrix = errors.New("invalid transition matrix")

	// ErrOutOfBounds - координата за пределами сетки.
	// После валидации при старте это ошибка программиста, а не штатная ситуация.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrZoneNotWalkable - прямоугольник зоны задевает стену или стеллаж
	ErrZoneNotWalkable = errors.New("zone covers non-walkable cell")

	// ErrDuplicateZone - зона с таким именем уже объявлена
	ErrDuplicateZone = errors.New("duplicate zone")

	// ErrNotWalkable - стартовая клетка агента непроходима
	ErrNotWalkable = errors.New("cell is not walkable")
)
