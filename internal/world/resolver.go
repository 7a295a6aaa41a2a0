package world

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// Resolver объединяет оверлей правок с процедурным полем.
// Все компоненты читают блоки только через него.
type Resolver struct {
	field   *WorldGenerator
	overlay *EditOverlay
}

// NewResolver создаёт резолвер, владеющий новым пустым оверлеем
func NewResolver(field *WorldGenerator) *Resolver {
	return &Resolver{
		field:   field,
		overlay: NewEditOverlay(),
	}
}

// BlockAt возвращает действующий блок: правка, если есть, иначе процедурный
func (r *Resolver) BlockAt(pos vec.Vec3) block.BlockID {
	if id, ok := r.overlay.Get(pos); ok {
		return id
	}
	return r.field.ClassifyVoxel(pos.X, pos.Y, pos.Z)
}

// IsSolid сообщает, занят ли воксель
func (r *Resolver) IsSolid(pos vec.Vec3) bool {
	return r.BlockAt(pos) != block.AirBlockID
}

// Record записывает правку. Перестройку чанков инициирует вызывающий.
func (r *Resolver) Record(pos vec.Vec3, id block.BlockID) {
	r.overlay.Record(pos, id)
}

// HasEdit сообщает, правил ли игрок этот воксель
func (r *Resolver) HasEdit(pos vec.Vec3) bool {
	return r.overlay.Has(pos)
}

// EditsInChunk возвращает координаты правок чанка
func (r *Resolver) EditsInChunk(chunk vec.Vec2) []vec.Vec3 {
	return r.overlay.InChunk(chunk)
}

// EditCount возвращает размер оверлея
func (r *Resolver) EditCount() int {
	return r.overlay.Len()
}

// SurfaceHeight возвращает процедурную высоту поверхности (правки не учитываются)
func (r *Resolver) SurfaceHeight(x, z int) int {
	return r.field.SurfaceHeight(x, z)
}

// BiomeAt возвращает биом колонки
func (r *Resolver) BiomeAt(x, z int) Biome {
	return r.field.BiomeAt(x, z)
}

func (r *Resolver) Seed() int64       { return r.field.Seed() }
func (r *Resolver) WorldFloor() int   { return r.field.WorldFloor() }
func (r *Resolver) WorldCeiling() int { return r.field.WorldCeiling() }
