package world

import "errors"

// Ошибки мутаций мира. Запросы (BlockAt, IsSolid, SurfaceHeight) никогда не возвращают ошибок.
var (
	ErrOutOfWorld   = errors.New("coordinate outside world vertical bounds")
	ErrUnbreakable  = errors.New("block is unbreakable")
	ErrAirPlacement = errors.New("cannot place air")
	ErrOccupied     = errors.New("target voxel is occupied")
	ErrNotPlaceable = errors.New("block kind cannot be placed")
	ErrUnknownBlock = errors.New("unknown block kind")
)
