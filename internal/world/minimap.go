package world

import (
	"image"
	"image/color"

	"github.com/annel0/blockverse/internal/vec"
)

// Tile — класс клетки миникарты по высоте поверхности
type Tile int

const (
	TileWater Tile = iota
	TileSand
	TileGrass
	TileStone
)

// String возвращает имя клетки
func (t Tile) String() string {
	switch t {
	case TileWater:
		return "water"
	case TileSand:
		return "sand"
	case TileStone:
		return "stone"
	default:
		return "grass"
	}
}

var tileColors = map[Tile]color.RGBA{
	TileWater: {R: 48, G: 96, B: 200, A: 255},
	TileSand:  {R: 222, G: 204, B: 140, A: 255},
	TileGrass: {R: 76, G: 160, B: 60, A: 255},
	TileStone: {R: 128, G: 128, B: 128, A: 255},
}

var markerColor = color.RGBA{R: 220, G: 30, B: 30, A: 255}

// TileForHeight классифицирует высоту: вода ниже -2, песок ниже 0, камень выше 15
func TileForHeight(h int) Tile {
	switch {
	case h < -2:
		return TileWater
	case h < 0:
		return TileSand
	case h > 15:
		return TileStone
	default:
		return TileGrass
	}
}

// SurfaceQuerier — источник высот для миникарты
type SurfaceQuerier interface {
	SurfaceHeight(x, z int) int
}

// MinimapTile возвращает клетку миникарты для колонки
func (wm *WorldManager) MinimapTile(x, z int) Tile {
	return TileForHeight(wm.SurfaceHeight(x, z))
}

// RenderMinimap рисует квадрат миникарты вокруг center (в блоках).
// Одна точка изображения соответствует step блокам; центр помечен маркером.
func RenderMinimap(q SurfaceQuerier, center vec.Vec2, radius, step int) *image.RGBA {
	if step < 1 {
		step = 1
	}
	if radius < 0 {
		radius = 0
	}

	cells := radius / step
	size := 2*cells + 1
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for px := 0; px < size; px++ {
		for pz := 0; pz < size; pz++ {
			x := center.X + (px-cells)*step
			z := center.Y + (pz-cells)*step
			img.SetRGBA(px, pz, tileColors[TileForHeight(q.SurfaceHeight(x, z))])
		}
	}

	img.SetRGBA(cells, cells, markerColor)
	return img
}
