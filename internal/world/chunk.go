package world

import (
	"sort"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// ChunkState — состояние жизненного цикла чанка
type ChunkState int

const (
	ChunkUnloaded ChunkState = iota // нет ни в очереди, ни среди загруженных
	ChunkQueued                     // запрошен, ждёт сборки
	ChunkBuilt                      // собран, батчи ещё не на сцене
	ChunkResident                   // батчи прикреплены к сцене
	ChunkEvicted                    // терминальное состояние, батчи откреплены
)

// String возвращает имя состояния
func (s ChunkState) String() string {
	switch s {
	case ChunkUnloaded:
		return "unloaded"
	case ChunkQueued:
		return "queued"
	case ChunkBuilt:
		return "built"
	case ChunkResident:
		return "resident"
	case ChunkEvicted:
		return "evicted"
	default:
		return "unknown"
	}
}

// Chunk — колонка 16x16 вокселей, единица стриминга и рендера.
// Выгруженный чанк не оживает: новый запрос создаёт новый Chunk.
type Chunk struct {
	Coords     vec.Vec2
	State      ChunkState
	Batches    map[block.BlockID]*RenderBatch // один батч на вид блока
	VoxelCount int
}

// NewChunk создаёт запрошенный чанк без батчей
func NewChunk(coords vec.Vec2) *Chunk {
	return &Chunk{
		Coords:  coords,
		State:   ChunkQueued,
		Batches: make(map[block.BlockID]*RenderBatch),
	}
}

// Kinds возвращает виды блоков чанка по возрастанию
func (c *Chunk) Kinds() []block.BlockID {
	kinds := make([]block.BlockID, 0, len(c.Batches))
	for kind := range c.Batches {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Positions возвращает позиции вокселей вида kind
func (c *Chunk) Positions(kind block.BlockID) []vec.Vec3 {
	if batch, ok := c.Batches[kind]; ok {
		return batch.Positions
	}
	return nil
}

// VoxelSet возвращает все отрисовываемые воксели чанка
func (c *Chunk) VoxelSet() map[vec.Vec3]block.BlockID {
	out := make(map[vec.Vec3]block.BlockID, c.VoxelCount)
	for kind, batch := range c.Batches {
		for _, p := range batch.Positions {
			out[p] = kind
		}
	}
	return out
}
