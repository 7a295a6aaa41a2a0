package world

import (
	"math"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/util"
	"github.com/annel0/blockverse/internal/world/block"
)

// Biome представляет тип биома. Биом не хранится, а вычисляется по шуму заново.
type Biome int

const (
	BiomePlains Biome = iota
	BiomeDesert
	BiomeSnow
	BiomeJungle
)

// String возвращает имя биома
func (b Biome) String() string {
	switch b {
	case BiomePlains:
		return "plains"
	case BiomeDesert:
		return "desert"
	case BiomeSnow:
		return "snow"
	case BiomeJungle:
		return "jungle"
	default:
		return "unknown"
	}
}

// Параметры рельефа. Масштабы нецелые: go-perlin возвращает 0 в узлах решётки.
const (
	continentalScale = 0.0071
	detailScale      = 0.0431
	temperatureScale = 0.0037
	humidityScale    = 0.0043
	oreScale         = 0.1130

	baseHeight      = 4.0
	detailAmplitude = 3.0
)

// Пороги биомов в пространстве [0,1] температуры и влажности
const (
	snowTemperature   = 0.43
	desertTemperature = 0.57
	desertHumidity    = 0.50
	jungleHumidity    = 0.57
)

// biomeShape задаёт базу и амплитуду континентальной октавы для биома
type biomeShape struct {
	base      float64
	amplitude float64
}

var biomeShapes = map[Biome]biomeShape{
	BiomePlains: {base: baseHeight, amplitude: 14},
	BiomeDesert: {base: baseHeight, amplitude: 5},       // пустыня сглаживает рельеф
	BiomeSnow:   {base: baseHeight + 14, amplitude: 24}, // снег поднимает базу и усиливает рельеф
	BiomeJungle: {base: baseHeight + 2, amplitude: 16},
}

// oreBand описывает рудную жилу: руда заменяет камень, если значение 3D шума
// выше порога, а глубина под поверхностью не меньше minDepth.
type oreBand struct {
	kind      block.BlockID
	minDepth  int
	threshold float64
	offset    float64
}

// Проверяются от самой глубокой к самой мелкой; порог растёт с глубиной
var oreBands = []oreBand{
	{kind: block.DiamondBlockID, minDepth: 18, threshold: 0.40, offset: 7919.5},
	{kind: block.IronBlockID, minDepth: 8, threshold: 0.31, offset: 3571.5},
	{kind: block.CoalBlockID, minDepth: 1, threshold: 0.24, offset: 1237.5},
}

// WorldGenerator — процедурное поле: чистые функции от координаты.
// Генератор не знает об оверлее правок и не хранит состояния кроме полей шума.
type WorldGenerator struct {
	seed         int64
	dirtDepth    int
	worldFloor   int
	worldCeiling int
	minHeight    int
	maxHeight    int

	continental *util.NoiseField
	detail      *util.NoiseField
	temperature *util.NoiseField
	humidity    *util.NoiseField
	ore         *util.NoiseField
}

// NewWorldGenerator создаёт генератор по параметрам мира
func NewWorldGenerator(cfg config.WorldConfig) *WorldGenerator {
	seed := cfg.GetSeed()
	return &WorldGenerator{
		seed:         seed,
		dirtDepth:    cfg.DirtDepth,
		worldFloor:   cfg.WorldFloor,
		worldCeiling: cfg.WorldCeiling,
		minHeight:    cfg.MinHeight,
		maxHeight:    cfg.MaxHeight,

		continental: util.NewNoiseField(seed, continentalScale, 3),
		detail:      util.NewNoiseField(seed+1, detailScale, 2),
		temperature: util.NewNoiseField(seed+2, temperatureScale, 2),
		humidity:    util.NewNoiseField(seed+3, humidityScale, 2),
		ore:         util.NewNoiseField(seed+4, oreScale, 2),
	}
}

// Seed возвращает сид генератора
func (g *WorldGenerator) Seed() int64 { return g.seed }

// WorldFloor возвращает высоту дна мира (бедрок на ней и ниже)
func (g *WorldGenerator) WorldFloor() int { return g.worldFloor }

// WorldCeiling возвращает потолок мира (выше — всегда пусто)
func (g *WorldGenerator) WorldCeiling() int { return g.worldCeiling }

// BiomeAt определяет биом колонки по шуму температуры и влажности
func (g *WorldGenerator) BiomeAt(x, z int) Biome {
	fx, fz := float64(x), float64(z)
	temperature := g.temperature.Sample2D01(fx, fz)
	humidity := g.humidity.Sample2D01(fx, fz)

	switch {
	case temperature < snowTemperature:
		return BiomeSnow
	case temperature > desertTemperature && humidity < desertHumidity:
		return BiomeDesert
	case humidity > jungleHumidity:
		return BiomeJungle
	default:
		return BiomePlains
	}
}

// SurfaceHeight возвращает высоту верхнего твёрдого блока колонки.
// Континентальная и детальная октавы складываются с поправкой на биом,
// результат зажимается в [MinHeight, MaxHeight].
func (g *WorldGenerator) SurfaceHeight(x, z int) int {
	return g.surfaceHeight(x, z, g.BiomeAt(x, z))
}

func (g *WorldGenerator) surfaceHeight(x, z int, biome Biome) int {
	fx, fz := float64(x), float64(z)
	shape := biomeShapes[biome]

	h := shape.base +
		g.continental.Sample2D(fx, fz)*shape.amplitude +
		g.detail.Sample2D(fx, fz)*detailAmplitude

	if math.IsNaN(h) {
		h = shape.base
	}

	height := int(math.Floor(h + 0.5))
	if height < g.minHeight {
		return g.minHeight
	}
	if height > g.maxHeight {
		return g.maxHeight
	}
	return height
}

// ClassifyVoxel возвращает базовый блок координаты без учёта правок игрока
func (g *WorldGenerator) ClassifyVoxel(x, y, z int) block.BlockID {
	if y > g.worldCeiling {
		return block.AirBlockID
	}
	if y <= g.worldFloor {
		return block.BedrockBlockID
	}

	biome := g.BiomeAt(x, z)
	surface := g.surfaceHeight(x, z, biome)

	switch {
	case y > surface:
		return block.AirBlockID
	case y == surface:
		return SurfaceBlock(biome)
	case y >= surface-g.dirtDepth:
		return SubsurfaceBlock(biome)
	default:
		return g.stoneOrOre(x, y, z, surface-y)
	}
}

// stoneOrOre подменяет камень рудой по 3D шуму
func (g *WorldGenerator) stoneOrOre(x, y, z, depth int) block.BlockID {
	fx, fy, fz := float64(x), float64(y), float64(z)
	for _, band := range oreBands {
		if depth < band.minDepth {
			continue
		}
		if g.ore.Sample3D(fx+band.offset, fy, fz-band.offset) > band.threshold {
			return band.kind
		}
	}
	return block.StoneBlockID
}

// SurfaceBlock возвращает верхний блок биома
func SurfaceBlock(biome Biome) block.BlockID {
	switch biome {
	case BiomeDesert:
		return block.SandBlockID
	case BiomeSnow:
		return block.SnowBlockID
	default:
		return block.GrassBlockID
	}
}

// SubsurfaceBlock возвращает блок под поверхностью (слои земли)
func SubsurfaceBlock(biome Biome) block.BlockID {
	if biome == BiomeDesert {
		return block.SandBlockID
	}
	return block.DirtBlockID
}
