package util

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума Перлина по умолчанию
const (
	defaultAlpha = 2.0 // Сглаживание шума (делитель амплитуды октав)
	defaultBeta  = 2.0 // Частота шума (множитель частоты октав)
)

// NoiseField — детерминированное поле шума Перлина с собственным сидом и масштабом.
// Поле не изменяется после создания, поэтому безопасно для повторных вызовов.
type NoiseField struct {
	scale  float64
	perlin *perlin.Perlin
}

// NewNoiseField создаёт поле шума.
// scale — множитель координат (меньше значение — крупнее детали), octaves — число октав go-perlin.
func NewNoiseField(seed int64, scale float64, octaves int32) *NoiseField {
	if octaves <= 0 {
		octaves = 1
	}
	return &NoiseField{
		scale:  scale,
		perlin: perlin.NewPerlin(defaultAlpha, defaultBeta, octaves, seed),
	}
}

// Sample2D возвращает значение шума в диапазоне [-1, 1]
func (n *NoiseField) Sample2D(x, z float64) float64 {
	return clampUnit(n.perlin.Noise2D(x*n.scale, z*n.scale))
}

// Sample2D01 возвращает значение шума в диапазоне [0, 1]
func (n *NoiseField) Sample2D01(x, z float64) float64 {
	return (n.Sample2D(x, z) + 1.0) / 2.0
}

// Sample3D возвращает значение объёмного шума в диапазоне [-1, 1]
func (n *NoiseField) Sample3D(x, y, z float64) float64 {
	return clampUnit(n.perlin.Noise3D(x*n.scale, y*n.scale, z*n.scale))
}

// сумма октав go-perlin может выходить за [-1, 1]
func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
