package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// UnitShape — общий для всех батчей единичный куб [-0.5, 0.5]^3.
// Создаётся один раз на мир и никогда не копируется на воксель.
type UnitShape struct {
	ID       uuid.UUID
	Vertices []mgl32.Vec3
}

// NewUnitCube создаёт форму единичного куба
func NewUnitCube() *UnitShape {
	const h = 0.5
	return &UnitShape{
		ID: uuid.New(),
		Vertices: []mgl32.Vec3{
			{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
			{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
		},
	}
}

// RenderBatch — группа вокселей одного вида в чанке: одна форма, много трансформаций
type RenderBatch struct {
	ID         uuid.UUID
	Chunk      vec.Vec2
	Kind       block.BlockID
	Shape      *UnitShape
	Positions  []vec.Vec3
	Transforms []mgl32.Mat4
}

// newRenderBatch строит батч; куб ставится центром в центр вокселя
func newRenderBatch(shape *UnitShape, chunk vec.Vec2, kind block.BlockID, positions []vec.Vec3) *RenderBatch {
	transforms := make([]mgl32.Mat4, len(positions))
	for i, p := range positions {
		transforms[i] = mgl32.Translate3D(float32(p.X)+0.5, float32(p.Y)+0.5, float32(p.Z)+0.5)
	}
	return &RenderBatch{
		ID:         uuid.New(),
		Chunk:      chunk,
		Kind:       kind,
		Shape:      shape,
		Positions:  positions,
		Transforms: transforms,
	}
}

// Len возвращает число инстансов в батче
func (b *RenderBatch) Len() int {
	return len(b.Positions)
}

// Display — внешний коллаборатор сцены
type Display interface {
	Attach(batch *RenderBatch)
	Detach(batch *RenderBatch)
}

// MemoryDisplay — сцена в памяти: хранит прикреплённые батчи и считает операции.
// Используется headless-драйвером и тестами для поиска утечек.
type MemoryDisplay struct {
	attached      map[uuid.UUID]*RenderBatch
	attaches      int
	detaches      int
	strayDetaches int // Detach батча, который не был прикреплён
}

// NewMemoryDisplay создаёт пустую сцену
func NewMemoryDisplay() *MemoryDisplay {
	return &MemoryDisplay{attached: make(map[uuid.UUID]*RenderBatch)}
}

// Attach прикрепляет батч к сцене
func (d *MemoryDisplay) Attach(batch *RenderBatch) {
	d.attached[batch.ID] = batch
	d.attaches++
}

// Detach открепляет батч от сцены
func (d *MemoryDisplay) Detach(batch *RenderBatch) {
	if _, ok := d.attached[batch.ID]; !ok {
		d.strayDetaches++
		return
	}
	delete(d.attached, batch.ID)
	d.detaches++
}

// Attached возвращает число прикреплённых батчей
func (d *MemoryDisplay) Attached() int { return len(d.attached) }

// Has сообщает, прикреплён ли батч
func (d *MemoryDisplay) Has(id uuid.UUID) bool {
	_, ok := d.attached[id]
	return ok
}

// Instances возвращает суммарное число инстансов на сцене
func (d *MemoryDisplay) Instances() int {
	total := 0
	for _, b := range d.attached {
		total += b.Len()
	}
	return total
}

func (d *MemoryDisplay) Attaches() int      { return d.attaches }
func (d *MemoryDisplay) Detaches() int      { return d.detaches }
func (d *MemoryDisplay) StrayDetaches() int { return d.strayDetaches }
