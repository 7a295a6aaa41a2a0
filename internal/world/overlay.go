package world

import (
	"sort"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// EditOverlay хранит правки игрока поверх процедурного поля.
// Запись с AirBlockID означает сломанный блок. Записи не удаляются до конца сессии.
type EditOverlay struct {
	edits   map[vec.Vec3]block.BlockID
	byChunk map[vec.Vec2]map[vec.Vec3]struct{} // индекс для сборщика чанков
}

// NewEditOverlay создаёт пустой оверлей
func NewEditOverlay() *EditOverlay {
	return &EditOverlay{
		edits:   make(map[vec.Vec3]block.BlockID),
		byChunk: make(map[vec.Vec2]map[vec.Vec3]struct{}),
	}
}

// Record вставляет или перезаписывает правку
func (o *EditOverlay) Record(pos vec.Vec3, id block.BlockID) {
	o.edits[pos] = id

	chunk := pos.ToChunkCoords()
	index, ok := o.byChunk[chunk]
	if !ok {
		index = make(map[vec.Vec3]struct{})
		o.byChunk[chunk] = index
	}
	index[pos] = struct{}{}
}

// Has сообщает, есть ли правка в координате
func (o *EditOverlay) Has(pos vec.Vec3) bool {
	_, ok := o.edits[pos]
	return ok
}

// Get возвращает правку; ok == false означает отсутствие записи
func (o *EditOverlay) Get(pos vec.Vec3) (block.BlockID, bool) {
	id, ok := o.edits[pos]
	return id, ok
}

// Len возвращает число правок
func (o *EditOverlay) Len() int {
	return len(o.edits)
}

// InChunk возвращает координаты правок внутри чанка в детерминированном порядке
func (o *EditOverlay) InChunk(chunk vec.Vec2) []vec.Vec3 {
	index := o.byChunk[chunk]
	if len(index) == 0 {
		return nil
	}

	out := make([]vec.Vec3, 0, len(index))
	for pos := range index {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.Y < b.Y
	})
	return out
}
