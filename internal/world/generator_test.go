package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/world/block"
)

// testWorldConfig возвращает параметры мира для тестов: фиксированный сид и мелкое окно рендера
func testWorldConfig() config.WorldConfig {
	cfg := config.Default().World
	cfg.Seed = 42
	cfg.RenderRadius = 2
	cfg.EvictMargin = 1
	cfg.RenderDepth = 6
	return cfg
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewWorldGenerator(testWorldConfig())
	b := NewWorldGenerator(testWorldConfig())

	for x := -40; x <= 40; x += 7 {
		for z := -40; z <= 40; z += 5 {
			require.Equal(t, a.SurfaceHeight(x, z), b.SurfaceHeight(x, z), "Высота (%d,%d) должна совпадать", x, z)
			require.Equal(t, a.BiomeAt(x, z), b.BiomeAt(x, z))
			for y := -30; y <= 40; y += 3 {
				first := a.ClassifyVoxel(x, y, z)
				assert.Equal(t, first, a.ClassifyVoxel(x, y, z), "Повторный вызов должен дать тот же блок")
				assert.Equal(t, first, b.ClassifyVoxel(x, y, z), "Независимый генератор должен дать тот же блок")
			}
		}
	}
}

func TestGenerator_SeedChangesTerrain(t *testing.T) {
	cfgA := testWorldConfig()
	cfgB := testWorldConfig()
	cfgB.Seed = 4242

	a := NewWorldGenerator(cfgA)
	b := NewWorldGenerator(cfgB)

	differs := false
	for x := 0; x < 256 && !differs; x += 3 {
		differs = a.SurfaceHeight(x, x/2) != b.SurfaceHeight(x, x/2)
	}
	assert.True(t, differs, "Разные сиды должны давать разный рельеф")
}

func TestGenerator_HeightClamped(t *testing.T) {
	cfg := testWorldConfig()
	cfg.MinHeight = 2
	cfg.MaxHeight = 3
	g := NewWorldGenerator(cfg)

	for x := -500; x <= 500; x += 37 {
		for z := -500; z <= 500; z += 41 {
			h := g.SurfaceHeight(x, z)
			assert.GreaterOrEqual(t, h, 2)
			assert.LessOrEqual(t, h, 3)
		}
	}
}

func TestGenerator_ColumnLayers(t *testing.T) {
	cfg := testWorldConfig()
	g := NewWorldGenerator(cfg)

	for x := -64; x <= 64; x += 16 {
		for z := -64; z <= 64; z += 16 {
			h := g.SurfaceHeight(x, z)
			biome := g.BiomeAt(x, z)

			assert.Equal(t, block.AirBlockID, g.ClassifyVoxel(x, h+1, z), "Над поверхностью пусто")
			assert.Equal(t, SurfaceBlock(biome), g.ClassifyVoxel(x, h, z), "Поверхность (%d,%d) биома %s", x, z, biome)
			for d := 1; d <= cfg.DirtDepth; d++ {
				assert.Equal(t, SubsurfaceBlock(biome), g.ClassifyVoxel(x, h-d, z))
			}

			below := g.ClassifyVoxel(x, h-cfg.DirtDepth-1, z)
			assert.Contains(t, []block.BlockID{block.StoneBlockID, block.CoalBlockID}, below,
				"Сразу под землёй камень или уголь")

			assert.Equal(t, block.BedrockBlockID, g.ClassifyVoxel(x, cfg.WorldFloor, z))
			assert.Equal(t, block.BedrockBlockID, g.ClassifyVoxel(x, cfg.WorldFloor-1000, z))
			assert.Equal(t, block.AirBlockID, g.ClassifyVoxel(x, cfg.WorldCeiling+1, z))
		}
	}
}

func TestGenerator_OreDepthBands(t *testing.T) {
	g := NewWorldGenerator(testWorldConfig())

	counts := make(map[block.BlockID]int)
	for x := 0; x < 48; x += 2 {
		for z := 0; z < 48; z += 2 {
			h := g.SurfaceHeight(x, z)
			for y := h - 40; y < h; y++ {
				kind := g.ClassifyVoxel(x, y, z)
				counts[kind]++
				switch kind {
				case block.DiamondBlockID:
					assert.GreaterOrEqual(t, h-y, 18, "Алмазы только глубоко")
				case block.IronBlockID:
					assert.GreaterOrEqual(t, h-y, 8, "Железо не у поверхности")
				}
			}
		}
	}

	assert.Greater(t, counts[block.StoneBlockID], counts[block.CoalBlockID], "Камня больше, чем угля")
	assert.GreaterOrEqual(t, counts[block.CoalBlockID], counts[block.DiamondBlockID], "Алмазы реже угля")
}

func TestGenerator_SurfaceBlocks(t *testing.T) {
	assert.Equal(t, block.SandBlockID, SurfaceBlock(BiomeDesert))
	assert.Equal(t, block.SnowBlockID, SurfaceBlock(BiomeSnow))
	assert.Equal(t, block.GrassBlockID, SurfaceBlock(BiomePlains))
	assert.Equal(t, block.GrassBlockID, SurfaceBlock(BiomeJungle))
	assert.Equal(t, block.SandBlockID, SubsurfaceBlock(BiomeDesert))
	assert.Equal(t, block.DirtBlockID, SubsurfaceBlock(BiomeSnow))
	assert.Equal(t, "jungle", BiomeJungle.String())
}
