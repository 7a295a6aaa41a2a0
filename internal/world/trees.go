package world

import (
	"github.com/annel0/blockverse/internal/util"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// Параметры деревьев
const (
	canopyRadius = 2
	minTrunk     = 4
	maxTrunk     = 6

	treeSalt  uint64 = 0x7472656573
	trunkSalt uint64 = 0x7472756e6b
)

// columnRange — прямоугольник локальных колонок чанка, включительно
type columnRange struct {
	minX, maxX int
	minZ, maxZ int
}

// Корни деревьев не ближе canopyRadius к краю, поэтому крона не пересекает границу чанка
var fullTreeRange = columnRange{
	minX: canopyRadius, maxX: vec.ChunkSize - 1 - canopyRadius,
	minZ: canopyRadius, maxZ: vec.ChunkSize - 1 - canopyRadius,
}

// treeChance возвращает вероятность дерева на колонке биома
func (b *Builder) treeChance(biome Biome) float64 {
	switch biome {
	case BiomePlains:
		return b.treeDensity
	case BiomeJungle:
		if p := b.treeDensity * 4; p < 1 {
			return p
		}
		return 1
	case BiomeSnow:
		return b.treeDensity / 2
	default:
		return 0
	}
}

// treeRoot решает, растёт ли дерево на поверхности (x, surface, z), и возвращает высоту ствола.
// Решение детерминировано хешем координаты: пересборка даёт те же деревья.
func (b *Builder) treeRoot(x, surface, z int) (int, bool) {
	biome := b.resolver.BiomeAt(x, z)
	chance := b.treeChance(biome)
	if chance <= 0 {
		return 0, false
	}

	seed := b.resolver.Seed()
	if util.Hash01(seed, treeSalt, x, surface, z) >= chance {
		return 0, false
	}

	ground := vec.Vec3{X: x, Y: surface, Z: z}
	if kind := b.resolver.BlockAt(ground); kind != block.GrassBlockID && kind != block.SnowBlockID {
		return 0, false
	}
	if b.resolver.IsSolid(vec.Vec3{X: x, Y: surface + 1, Z: z}) {
		return 0, false
	}

	return util.HashRange(seed, trunkSalt, x, surface, z, minTrunk, maxTrunk), true
}

// visitTrees обходит воксели деревьев в колонках cols чанка coords.
// Воксели с правкой игрока или уже занятые пропускаются. visit возвращает false для остановки.
func (b *Builder) visitTrees(coords vec.Vec2, heightAt func(lx, lz int) int, cols columnRange, visit func(vec.Vec3, block.BlockID) bool) {
	origin := coords.Origin()
	ceiling := b.resolver.WorldCeiling()
	emitted := make(map[vec.Vec3]struct{})

	emit := func(pos vec.Vec3, kind block.BlockID) bool {
		if pos.Y > ceiling {
			return true
		}
		if _, dup := emitted[pos]; dup {
			return true
		}
		if b.resolver.HasEdit(pos) || b.resolver.IsSolid(pos) {
			return true
		}
		emitted[pos] = struct{}{}
		return visit(pos, kind)
	}

	for lx := cols.minX; lx <= cols.maxX; lx++ {
		for lz := cols.minZ; lz <= cols.maxZ; lz++ {
			x, z := origin.X+lx, origin.Y+lz
			surface := heightAt(lx, lz)

			trunk, ok := b.treeRoot(x, surface, z)
			if !ok {
				continue
			}
			top := surface + trunk

			for y := surface + 1; y <= top; y++ {
				if !emit(vec.Vec3{X: x, Y: y, Z: z}, block.WoodBlockID) {
					return
				}
			}

			for y := top - 1; y <= top+1; y++ {
				radius := canopyRadius
				if y > top {
					radius = 1
				}
				for dx := -radius; dx <= radius; dx++ {
					for dz := -radius; dz <= radius; dz++ {
						if abs(dx) == radius && abs(dz) == radius {
							continue // скруглённые углы кроны
						}
						if dx == 0 && dz == 0 && y <= top {
							continue // ствол
						}
						if !emit(vec.Vec3{X: x + dx, Y: y, Z: z + dz}, block.LeavesBlockID) {
							return
						}
					}
				}
			}
		}
	}
}

// TreeAt возвращает вид блока дерева, отрисованного в координате, или воздух.
// Деревья существуют только в батчах, резолвер о них не знает.
func (b *Builder) TreeAt(pos vec.Vec3) block.BlockID {
	coords := pos.ToChunkCoords()
	local := pos.LocalInChunk()

	cols := columnRange{
		minX: max(fullTreeRange.minX, local.X-canopyRadius),
		maxX: min(fullTreeRange.maxX, local.X+canopyRadius),
		minZ: max(fullTreeRange.minZ, local.Y-canopyRadius),
		maxZ: min(fullTreeRange.maxZ, local.Y+canopyRadius),
	}
	if cols.minX > cols.maxX || cols.minZ > cols.maxZ {
		return block.AirBlockID
	}

	origin := coords.Origin()
	heightAt := func(lx, lz int) int {
		return b.resolver.SurfaceHeight(origin.X+lx, origin.Y+lz)
	}

	found := block.AirBlockID
	b.visitTrees(coords, heightAt, cols, func(p vec.Vec3, kind block.BlockID) bool {
		if p == pos {
			found = kind
			return false
		}
		return true
	})
	return found
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
