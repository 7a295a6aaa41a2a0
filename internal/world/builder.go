package world

import (
	"sort"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// Builder собирает чанк в батчи по видам блоков.
// Сборка чистая: читает только резолвер и пишет только в новый Chunk.
type Builder struct {
	resolver    *Resolver
	shape       *UnitShape
	renderDepth int
	treeDensity float64
}

// NewBuilder создаёт сборщик чанков
func NewBuilder(resolver *Resolver, shape *UnitShape, renderDepth int, treeDensity float64) *Builder {
	if renderDepth < 1 {
		renderDepth = 1
	}
	return &Builder{
		resolver:    resolver,
		shape:       shape,
		renderDepth: renderDepth,
		treeDensity: treeDensity,
	}
}

// Shape возвращает общую форму куба
func (b *Builder) Shape() *UnitShape {
	return b.shape
}

// scanWindow возвращает диапазон [bottom, top] сканирования колонки.
// Окно ограничено глубиной рендера и зажато дном мира.
func (b *Builder) scanWindow(surface int) (bottom, top int) {
	bottom = surface - b.renderDepth
	if floor := b.resolver.WorldFloor(); bottom < floor {
		bottom = floor
	}
	return bottom, surface
}

// Build собирает чанк: окно под поверхностью каждой колонки, правки вне окна
// и деревья. Повторная сборка без правок даёт те же множества вокселей.
func (b *Builder) Build(coords vec.Vec2) *Chunk {
	groups := make(map[block.BlockID][]vec.Vec3)
	origin := coords.Origin()

	var heights [vec.ChunkSize][vec.ChunkSize]int
	for lx := 0; lx < vec.ChunkSize; lx++ {
		for lz := 0; lz < vec.ChunkSize; lz++ {
			x, z := origin.X+lx, origin.Y+lz
			surface := b.resolver.SurfaceHeight(x, z)
			heights[lx][lz] = surface

			bottom, top := b.scanWindow(surface)
			for y := bottom; y <= top; y++ {
				pos := vec.Vec3{X: x, Y: y, Z: z}
				if kind := b.resolver.BlockAt(pos); kind != block.AirBlockID {
					groups[kind] = append(groups[kind], pos)
				}
			}
		}
	}

	// Поставленные игроком блоки вне окна сканирования
	for _, pos := range b.resolver.EditsInChunk(coords) {
		local := pos.LocalInChunk()
		bottom, top := b.scanWindow(heights[local.X][local.Y])
		if pos.Y >= bottom && pos.Y <= top {
			continue
		}
		if kind := b.resolver.BlockAt(pos); kind != block.AirBlockID {
			groups[kind] = append(groups[kind], pos)
		}
	}

	heightAt := func(lx, lz int) int { return heights[lx][lz] }
	b.visitTrees(coords, heightAt, fullTreeRange, func(pos vec.Vec3, kind block.BlockID) bool {
		groups[kind] = append(groups[kind], pos)
		return true
	})

	chunk := NewChunk(coords)
	kinds := make([]block.BlockID, 0, len(groups))
	for kind := range groups {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		positions := groups[kind]
		chunk.Batches[kind] = newRenderBatch(b.shape, coords, kind, positions)
		chunk.VoxelCount += len(positions)
	}
	chunk.State = ChunkBuilt
	return chunk
}
