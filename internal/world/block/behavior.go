package block

import "math"

// BlockBehavior определяет свойства вида блока, нужные потребителям мира
// (добыча, установка, отображение названий).
type BlockBehavior interface {
	ID() BlockID
	Name() string
	// MiningTime — время добычи в секундах без инструмента; +Inf для неразрушаемых блоков
	MiningTime() float64
	// Drop — что выпадает при разрушении; AirBlockID означает "ничего"
	Drop() BlockID
	// Placeable — может ли игрок поставить этот блок
	Placeable() bool
}

// Breakable возвращает true, если блок можно разрушить за конечное время
func Breakable(id BlockID) bool {
	if id == AirBlockID {
		return false
	}
	behavior, ok := Get(id)
	if !ok {
		return false
	}
	t := behavior.MiningTime()
	return !math.IsInf(t, 1) && !math.IsNaN(t)
}

// DropOf возвращает выпадающий блок для id (AirBlockID, если ничего)
func DropOf(id BlockID) BlockID {
	behavior, ok := Get(id)
	if !ok {
		return AirBlockID
	}
	return behavior.Drop()
}

// Placeable возвращает true, если игрок может поставить блок id
func Placeable(id BlockID) bool {
	behavior, ok := Get(id)
	return ok && behavior.Placeable()
}
