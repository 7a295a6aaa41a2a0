package vec

import "math"

// Vec3 представляет трехмерный вектор с целочисленными координатами (координата вокселя).
// Y — вертикальная ось.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Vec3Float представляет трехмерный вектор с плавающими координатами
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// ToChunkCoords возвращает координаты чанка, которому принадлежит воксель
func (v Vec3) ToChunkCoords() Vec2 {
	return Vec2{X: v.X >> 4, Y: v.Z >> 4}
}

// LocalInChunk возвращает локальные (x, z) внутри чанка
func (v Vec3) LocalInChunk() Vec2 {
	return Vec2{X: v.X & 0xF, Y: v.Z & 0xF}
}

// Floor возвращает воксель, содержащий точку
func (v Vec3Float) Floor() Vec3 {
	return Vec3{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
		Z: int(math.Floor(v.Z)),
	}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// ChunkCoords возвращает координаты чанка под точкой
func (v Vec3Float) ChunkCoords() Vec2 {
	return v.Floor().ToChunkCoords()
}
