package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

func TestMemoryDisplay_AttachDetach(t *testing.T) {
	d := NewMemoryDisplay()
	shape := NewUnitCube()
	batch := newRenderBatch(shape, vec.Vec2{}, block.StoneBlockID, []vec.Vec3{{X: 1, Y: 2, Z: 3}, {X: 1, Y: 3, Z: 3}})

	d.Attach(batch)
	if d.Attached() != 1 || d.Instances() != 2 {
		t.Errorf("Ожидался 1 батч и 2 инстанса, получено %d и %d", d.Attached(), d.Instances())
	}

	d.Detach(batch)
	d.Detach(batch)
	assert.Equal(t, 0, d.Attached())
	assert.Equal(t, 1, d.Detaches())
	assert.Equal(t, 1, d.StrayDetaches(), "Повторное открепление считается отдельно")
	assert.Equal(t, 1, d.Attaches())
}

func TestUnitCube(t *testing.T) {
	shape := NewUnitCube()
	assert.Len(t, shape.Vertices, 8)
	for _, v := range shape.Vertices {
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 0.5, abs32(v[i]), 1e-6, "Куб единичный и центрирован")
		}
	}
	assert.NotEqual(t, shape.ID, NewUnitCube().ID)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
