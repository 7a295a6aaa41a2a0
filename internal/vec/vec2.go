package vec

// ChunkSize — длина ребра чанка в блоках.
const ChunkSize = 16

// Vec2 представляет 2D координаты.
// Для координат чанка X = cx, Y = cz (горизонтальная плоскость мира).
type Vec2 struct {
	X, Y int
}

// ToChunkCoords преобразует глобальные координаты колонны (x, z) в координаты чанка
func (v Vec2) ToChunkCoords() Vec2 {
	return Vec2{X: v.X >> 4, Y: v.Y >> 4} // Деление на 16 с округлением вниз
}

// LocalInChunk возвращает локальные координаты внутри чанка
func (v Vec2) LocalInChunk() Vec2 {
	return Vec2{X: v.X & 0xF, Y: v.Y & 0xF} // Модуль 16
}

// Origin возвращает глобальные (x, z) угла чанка с минимальными координатами
func (v Vec2) Origin() Vec2 {
	return Vec2{X: v.X << 4, Y: v.Y << 4}
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// ChebyshevTo возвращает расстояние Чебышёва (max(|dx|, |dy|))
func (v Vec2) ChebyshevTo(other Vec2) int {
	dx := v.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := v.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// DistanceSqTo возвращает квадрат евклидова расстояния (без sqrt)
func (v Vec2) DistanceSqTo(other Vec2) int {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return dx*dx + dy*dy
}
