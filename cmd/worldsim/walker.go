package main

import (
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/vec"
)

// Размеры тела путника (как у игрока)
const (
	walkerWidth  = 0.6
	walkerHeight = 1.8
)

// walker — безголовый игрок, идущий по +X; держит опорную точку стриминга.
// Ступени высотой в блок преодолевает сразу, более высокие стены обходит по Z.
type walker struct {
	body   *physics.Body
	pos    vec.Vec3Float
	vel    vec.Vec3Float
	detour int     // оставшиеся тики обхода по Z
	side   float64 // направление обхода: +1 или -1
}

func newWalker(spawn vec.Vec3Float) *walker {
	return &walker{
		body: physics.NewBody(walkerWidth, walkerHeight),
		pos:  spawn,
		side: 1,
	}
}

// advance делает один шаг физики со скоростью speed
func (w *walker) advance(q physics.SolidQuerier, speed, dt float64, detourTicks int) {
	detouring := w.detour > 0
	dirX, dirZ := speed, 0.0
	if detouring {
		dirX, dirZ = 0, speed*w.side
		w.detour--
	}

	w.vel.X, w.vel.Z = dirX, dirZ
	var grounded bool
	w.pos, w.vel, grounded = w.body.Step(q, w.pos, w.vel, dt)

	blocked := (dirX != 0 && w.vel.X == 0) || (dirZ != 0 && w.vel.Z == 0)
	if !blocked || !grounded {
		return
	}
	if pos, ok := w.body.ClimbStep(q, w.pos, dirX*dt, dirZ*dt); ok {
		w.pos = pos
		return
	}

	// Упёрлись в стену во время обхода — разворачиваемся
	if detouring {
		w.side = -w.side
	}
	w.detour = detourTicks
}
