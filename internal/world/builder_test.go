package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

func newTestBuilder(cfg config.WorldConfig) (*Builder, *Resolver) {
	resolver := NewResolver(NewWorldGenerator(cfg))
	return NewBuilder(resolver, NewUnitCube(), cfg.RenderDepth, cfg.TreeDensity), resolver
}

func TestBuilder_IdempotentRebuild(t *testing.T) {
	b, _ := newTestBuilder(testWorldConfig())

	for _, c := range []vec.Vec2{{X: 0, Y: 0}, {X: -3, Y: 2}, {X: 7, Y: -5}} {
		first := b.Build(c)
		second := b.Build(c)

		assert.Equal(t, first.VoxelSet(), second.VoxelSet(), "Пересборка чанка %v должна дать те же воксели", c)
		assert.Equal(t, first.Kinds(), second.Kinds())
		assert.Equal(t, ChunkBuilt, second.State)
	}
}

func TestBuilder_BatchesAreWellFormed(t *testing.T) {
	b, resolver := newTestBuilder(testWorldConfig())
	coords := vec.Vec2{X: -1, Y: 1}
	chunk := b.Build(coords)

	require.NotEmpty(t, chunk.Batches)
	total := 0
	for kind, batch := range chunk.Batches {
		assert.NotEqual(t, block.AirBlockID, kind, "Пустота не попадает в батчи")
		assert.Equal(t, kind, batch.Kind)
		assert.Same(t, b.Shape(), batch.Shape, "Форма куба общая для всех батчей")
		require.Len(t, batch.Transforms, len(batch.Positions))

		for i, p := range batch.Positions {
			assert.Equal(t, coords, p.ToChunkCoords(), "Воксель %v вне чанка", p)
			want := mgl32.Translate3D(float32(p.X)+0.5, float32(p.Y)+0.5, float32(p.Z)+0.5)
			assert.Equal(t, want, batch.Transforms[i])

			if kind != block.WoodBlockID && kind != block.LeavesBlockID {
				assert.Equal(t, kind, resolver.BlockAt(p), "Батч совпадает с резолвером")
			}
		}
		total += batch.Len()
	}
	assert.Equal(t, total, chunk.VoxelCount)
}

func TestBuilder_ScanWindow(t *testing.T) {
	cfg := testWorldConfig()
	cfg.TreeDensity = 0
	b, resolver := newTestBuilder(cfg)
	chunk := b.Build(vec.Vec2{X: 2, Y: 2})

	for p := range chunk.VoxelSet() {
		h := resolver.SurfaceHeight(p.X, p.Z)
		assert.LessOrEqual(t, p.Y, h)
		assert.GreaterOrEqual(t, p.Y, h-cfg.RenderDepth, "Ниже окна рендера ничего не рисуется")
	}

	// Окно полностью заполнено: под поверхностью всё твёрдое
	assert.Equal(t, vec.ChunkSize*vec.ChunkSize*(cfg.RenderDepth+1), chunk.VoxelCount)
}

func TestBuilder_ScanWindowClampedToFloor(t *testing.T) {
	cfg := testWorldConfig()
	cfg.WorldFloor = -64
	cfg.MinHeight = -60
	cfg.MaxHeight = -60
	cfg.RenderDepth = 24
	cfg.TreeDensity = 0
	b, _ := newTestBuilder(cfg)

	chunk := b.Build(vec.Vec2{X: 0, Y: 0})
	lowest := 0
	for p := range chunk.VoxelSet() {
		lowest = min(lowest, p.Y)
	}
	assert.Equal(t, -64, lowest, "Окно зажимается дном мира")
	assert.Len(t, chunk.Positions(block.BedrockBlockID), vec.ChunkSize*vec.ChunkSize)
}

func TestBuilder_RendersEditsOutsideWindow(t *testing.T) {
	cfg := testWorldConfig()
	cfg.TreeDensity = 0
	b, resolver := newTestBuilder(cfg)

	h := resolver.SurfaceHeight(3, 3)
	high := vec.Vec3{X: 3, Y: h + 10, Z: 3}
	deep := vec.Vec3{X: 3, Y: h - cfg.RenderDepth - 5, Z: 3}
	broken := vec.Vec3{X: 4, Y: resolver.SurfaceHeight(4, 4), Z: 4}
	dug := vec.Vec3{X: 5, Y: h - cfg.RenderDepth - 8, Z: 5}

	resolver.Record(high, block.PlanksBlockID)
	resolver.Record(deep, block.DiamondBlockID)
	resolver.Record(broken, block.AirBlockID)
	resolver.Record(dug, block.AirBlockID)

	voxels := b.Build(vec.Vec2{X: 0, Y: 0}).VoxelSet()
	assert.Equal(t, block.PlanksBlockID, voxels[high], "Блок над поверхностью рисуется")
	assert.Equal(t, block.DiamondBlockID, voxels[deep], "Блок под окном рендера рисуется")
	assert.NotContains(t, voxels, broken, "Сломанный блок не рисуется")
	assert.NotContains(t, voxels, dug)
}

// findTreeChunk ищет чанк с деревом при плотности 1
func findTreeChunk(t *testing.T, b *Builder) *Chunk {
	t.Helper()
	for i := 0; i < 24; i++ {
		chunk := b.Build(vec.Vec2{X: i * 23, Y: -i * 17})
		if len(chunk.Positions(block.WoodBlockID)) > 0 {
			return chunk
		}
	}
	t.Fatal("Не найдено ни одного дерева")
	return nil
}

func TestBuilder_TreesStayInsideChunk(t *testing.T) {
	cfg := testWorldConfig()
	cfg.TreeDensity = 1
	b, resolver := newTestBuilder(cfg)

	chunk := findTreeChunk(t, b)
	for _, kind := range []block.BlockID{block.WoodBlockID, block.LeavesBlockID} {
		for _, p := range chunk.Positions(kind) {
			assert.Equal(t, chunk.Coords, p.ToChunkCoords(), "Крона не пересекает границу чанка")
			assert.False(t, resolver.IsSolid(p), "Дерево не перекрывает твёрдые блоки")
			assert.Equal(t, kind, b.TreeAt(p), "TreeAt согласован со сборкой")
		}
	}

	again := b.Build(chunk.Coords)
	assert.ElementsMatch(t, chunk.Positions(block.WoodBlockID), again.Positions(block.WoodBlockID),
		"Деревья детерминированы")
}

func TestBuilder_TreesRespectEdits(t *testing.T) {
	cfg := testWorldConfig()
	cfg.TreeDensity = 1
	b, resolver := newTestBuilder(cfg)

	chunk := findTreeChunk(t, b)
	wood := chunk.Positions(block.WoodBlockID)[0]
	leaves := chunk.Positions(block.LeavesBlockID)[0]

	resolver.Record(wood, block.AirBlockID)
	resolver.Record(leaves, block.PlanksBlockID)

	voxels := b.Build(chunk.Coords).VoxelSet()
	assert.NotContains(t, voxels, wood, "Сломанный ствол не восстанавливается пересборкой")
	assert.Equal(t, block.PlanksBlockID, voxels[leaves], "Правка игрока не перезаписывается листвой")
	assert.Equal(t, block.AirBlockID, b.TreeAt(wood))
}

func TestBuilder_NoTreesWithZeroDensity(t *testing.T) {
	cfg := testWorldConfig()
	cfg.TreeDensity = 0
	b, _ := newTestBuilder(cfg)

	for i := 0; i < 6; i++ {
		chunk := b.Build(vec.Vec2{X: i, Y: i})
		assert.Empty(t, chunk.Positions(block.WoodBlockID))
		assert.Empty(t, chunk.Positions(block.LeavesBlockID))
	}
}
