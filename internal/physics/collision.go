package physics

import (
	"math"

	"github.com/annel0/blockverse/internal/vec"
)

// Gravity — ускорение свободного падения в блоках/с²
const Gravity = 20.0

// probeEpsilon отодвигает точки проб от граней, чтобы стоящее на блоке тело не считалось застрявшим в нём
const probeEpsilon = 1e-3

// SolidQuerier — источник твёрдости вокселей (фасад мира или заглушка в тестах)
type SolidQuerier interface {
	IsSolid(pos vec.Vec3) bool
}

// Body — вертикальный прямоугольный коллайдер. Позиция тела — центр ступней.
type Body struct {
	Width  float64 // ширина по X и Z в блоках
	Height float64 // высота в блоках
}

// NewBody создаёт коллайдер с указанными размерами
func NewBody(width, height float64) *Body {
	return &Body{
		Width:  width,
		Height: height,
	}
}

// ProbePoints возвращает точки проверки: углы основания на уровне ступней,
// середины и головы
func (b *Body) ProbePoints(pos vec.Vec3Float) []vec.Vec3Float {
	half := b.Width/2 - probeEpsilon
	levels := []float64{
		pos.Y + probeEpsilon,
		pos.Y + b.Height/2,
		pos.Y + b.Height - probeEpsilon,
	}

	points := make([]vec.Vec3Float, 0, len(levels)*4)
	for _, y := range levels {
		points = append(points,
			vec.Vec3Float{X: pos.X - half, Y: y, Z: pos.Z - half},
			vec.Vec3Float{X: pos.X + half, Y: y, Z: pos.Z - half},
			vec.Vec3Float{X: pos.X - half, Y: y, Z: pos.Z + half},
			vec.Vec3Float{X: pos.X + half, Y: y, Z: pos.Z + half},
		)
	}
	return points
}

// Collides проверяет, пересекается ли тело в позиции pos с твёрдыми блоками
func (b *Body) Collides(q SolidQuerier, pos vec.Vec3Float) bool {
	for _, p := range b.ProbePoints(pos) {
		if q.IsSolid(p.Floor()) {
			return true
		}
	}
	return false
}

// ResolveMove перемещает тело на vel*dt, разрешая коллизии по осям Y, X, Z по очереди.
// При падении на блок тело прижимается к его верхней грани и становится grounded.
func (b *Body) ResolveMove(q SolidQuerier, pos, vel vec.Vec3Float, dt float64) (vec.Vec3Float, vec.Vec3Float, bool) {
	grounded := false

	// Y
	next := pos
	next.Y += vel.Y * dt
	if b.Collides(q, next) {
		if vel.Y < 0 {
			next.Y = math.Floor(next.Y) + 1
			if b.Collides(q, next) {
				next.Y = pos.Y
			}
			grounded = true
		} else {
			next.Y = pos.Y
		}
		vel.Y = 0
	}
	pos = next

	// X
	next = pos
	next.X += vel.X * dt
	if b.Collides(q, next) {
		snapped := pos
		snapped.X = b.faceClamp(next.X, vel.X)
		if !b.Collides(q, snapped) {
			pos = snapped
		}
		vel.X = 0
	} else {
		pos = next
	}

	// Z
	next = pos
	next.Z += vel.Z * dt
	if b.Collides(q, next) {
		snapped := pos
		snapped.Z = b.faceClamp(next.Z, vel.Z)
		if !b.Collides(q, snapped) {
			pos = snapped
		}
		vel.Z = 0
	} else {
		pos = next
	}

	if !grounded {
		below := pos
		below.Y -= 2 * probeEpsilon
		if vel.Y <= 0 && b.Collides(q, below) {
			grounded = true
			vel.Y = 0
			pos.Y = math.Floor(pos.Y + probeEpsilon)
		}
	}
	return pos, vel, grounded
}

// faceClamp возвращает координату центра, при которой тело стоит вплотную
// к грани блока, в который оно упёрлось при движении со скоростью v
func (b *Body) faceClamp(coord, v float64) float64 {
	half := b.Width / 2
	if v > 0 {
		return math.Floor(coord+half-probeEpsilon) - half - probeEpsilon
	}
	return math.Floor(coord-half+probeEpsilon) + 1 + half + probeEpsilon
}

// ClimbStep пытается подняться на блок высотой 1 при движении на (dx, dz).
// Возвращает новую позицию и true, если над препятствием свободно.
func (b *Body) ClimbStep(q SolidQuerier, pos vec.Vec3Float, dx, dz float64) (vec.Vec3Float, bool) {
	raised := pos.Add(vec.Vec3Float{Y: 1})
	if b.Collides(q, raised) {
		return pos, false
	}
	moved := raised.Add(vec.Vec3Float{X: dx, Z: dz})
	if b.Collides(q, moved) {
		return pos, false
	}
	return moved, true
}

// Step применяет гравитацию и перемещает тело; на земле вертикальная скорость обнуляется
func (b *Body) Step(q SolidQuerier, pos, vel vec.Vec3Float, dt float64) (vec.Vec3Float, vec.Vec3Float, bool) {
	vel.Y -= Gravity * dt
	return b.ResolveMove(q, pos, vel, dt)
}
