package world

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

func newTestWorld(t *testing.T) (*WorldManager, *MemoryDisplay) {
	t.Helper()
	cfg := testWorldConfig()
	cfg.RenderRadius = 1
	display := NewMemoryDisplay()
	return NewWorldManager(cfg, display, nil), display
}

func TestWorld_SpawnScenario(t *testing.T) {
	wm, _ := newTestWorld(t)

	h := wm.SurfaceHeight(0, 0)
	spawn := vec.Vec3Float{X: 0.5, Y: float64(h + 2), Z: 0.5}
	wm.Tick(context.Background(), spawn)

	assert.True(t, wm.IsSolid(vec.Vec3{X: 0, Y: h - 1, Z: 0}), "Под поверхностью твёрдо")
	assert.False(t, wm.IsSolid(vec.Vec3{X: 0, Y: h + 1, Z: 0}), "Над поверхностью пусто")
	assert.False(t, wm.IsSolid(spawn.Floor()), "Точка появления свободна")
	assert.Equal(t, h, wm.SurfaceHeight(0, 0), "Высота не зависит от количества вызовов")
}

func TestWorld_SetBlockOverridesField(t *testing.T) {
	wm, _ := newTestWorld(t)
	ctx := context.Background()

	pos := vec.Vec3{X: 5, Y: 10, Z: 5}
	require.NoError(t, wm.SetBlock(ctx, pos, block.StoneBlockID))
	assert.Equal(t, block.StoneBlockID, wm.GetBlock(pos))
	assert.True(t, wm.IsSolid(pos))
}

func TestWorld_BreakSurvivesRebuild(t *testing.T) {
	wm, _ := newTestWorld(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		wm.Tick(ctx, vec.Vec3Float{X: 8, Y: 30, Z: 8})
	}

	pos := vec.Vec3{X: 6, Y: wm.SurfaceHeight(6, 9), Z: 9}
	require.True(t, wm.IsSolid(pos))

	drop, err := wm.BreakBlock(ctx, pos)
	require.NoError(t, err)
	assert.Equal(t, block.DropOf(SurfaceBlock(wm.BiomeAt(6, 9))), drop)
	assert.False(t, wm.IsSolid(pos))

	chunk, ok := wm.Streamer().Chunk(pos.ToChunkCoords())
	require.True(t, ok)
	assert.NotContains(t, chunk.VoxelSet(), pos, "Сломанный блок исчез из батчей")

	wm.Streamer().NotifyEdit(ctx, pos)
	chunk, _ = wm.Streamer().Chunk(pos.ToChunkCoords())
	assert.NotContains(t, chunk.VoxelSet(), pos, "И после повторной пересборки")
	assert.False(t, wm.IsSolid(pos))
}

func TestWorld_EdgeEditRebuildsNeighbour(t *testing.T) {
	wm, _ := newTestWorld(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		wm.Tick(ctx, vec.Vec3Float{X: 8, Y: 30, Z: 8})
	}

	neighbour, _ := wm.Streamer().Chunk(vec.Vec2{X: -1, Y: 0})
	pos := vec.Vec3{X: 0, Y: wm.SurfaceHeight(0, 4), Z: 4}
	_, err := wm.BreakBlock(ctx, pos)
	require.NoError(t, err)

	rebuilt, _ := wm.Streamer().Chunk(vec.Vec2{X: -1, Y: 0})
	assert.NotSame(t, neighbour, rebuilt, "Правка на границе пересобирает соседа (cx-1, cz)")
	assert.Equal(t, uint64(2), wm.Stats().Rebuilds)
}

func TestWorld_MutationErrors(t *testing.T) {
	wm, _ := newTestWorld(t)
	ctx := context.Background()
	cfg := testWorldConfig()

	err := wm.SetBlock(ctx, vec.Vec3{X: 0, Y: cfg.WorldCeiling + 1, Z: 0}, block.StoneBlockID)
	assert.ErrorIs(t, err, ErrOutOfWorld)
	err = wm.SetBlock(ctx, vec.Vec3{X: 0, Y: cfg.WorldFloor - 1, Z: 0}, block.AirBlockID)
	assert.ErrorIs(t, err, ErrOutOfWorld)
	assert.ErrorIs(t, wm.SetBlock(ctx, vec.Vec3{}, block.BlockID(999)), ErrUnknownBlock)

	_, err = wm.BreakBlock(ctx, vec.Vec3{X: 3, Y: cfg.WorldFloor, Z: 3})
	assert.ErrorIs(t, err, ErrUnbreakable, "Бедрок не ломается")

	h := wm.SurfaceHeight(1, 1)
	drop, err := wm.BreakBlock(ctx, vec.Vec3{X: 1, Y: h + 40, Z: 1})
	assert.NoError(t, err, "Ломать пустоту не ошибка")
	assert.Equal(t, block.AirBlockID, drop)

	assert.ErrorIs(t, wm.PlaceBlock(ctx, vec.Vec3{X: 1, Y: h + 1, Z: 1}, block.AirBlockID), ErrAirPlacement)
	assert.ErrorIs(t, wm.PlaceBlock(ctx, vec.Vec3{X: 1, Y: h, Z: 1}, block.StoneBlockID), ErrOccupied)
	assert.ErrorIs(t, wm.PlaceBlock(ctx, vec.Vec3{X: 1, Y: h + 1, Z: 1}, block.BedrockBlockID), ErrNotPlaceable)

	require.NoError(t, wm.PlaceBlock(ctx, vec.Vec3{X: 1, Y: h + 1, Z: 1}, block.PlanksBlockID))
	assert.Equal(t, block.PlanksBlockID, wm.GetBlock(vec.Vec3{X: 1, Y: h + 1, Z: 1}))
	assert.Equal(t, 1, wm.EditCount(), "Отклонённые правки не попадают в оверлей")
}

func TestWorld_ExtremeHeights(t *testing.T) {
	wm, _ := newTestWorld(t)
	cfg := testWorldConfig()

	assert.True(t, wm.IsSolid(vec.Vec3{X: 7, Y: cfg.WorldFloor - 100000, Z: 7}), "Ниже дна мира твёрдо")
	assert.Equal(t, block.BedrockBlockID, wm.BlockAt(vec.Vec3{X: 7, Y: cfg.WorldFloor, Z: 7}))
	assert.False(t, wm.IsSolid(vec.Vec3{X: 7, Y: cfg.WorldCeiling + 100000, Z: 7}), "Выше потолка пусто")
}

func TestWorld_GroundHeightFloors(t *testing.T) {
	wm, _ := newTestWorld(t)
	assert.Equal(t, wm.SurfaceHeight(-1, 3), wm.GroundHeight(-0.5, 3.7))
	assert.Equal(t, wm.SurfaceHeight(12, -20), wm.GroundHeight(12.99, -19.01))
}

func TestWorld_BreakTreeVoxel(t *testing.T) {
	cfg := testWorldConfig()
	cfg.TreeDensity = 1
	cfg.RenderRadius = 0
	wm := NewWorldManager(cfg, NewMemoryDisplay(), nil)
	ctx := context.Background()

	chunk := findTreeChunk(t, wm.Builder())
	origin := chunk.Coords.Origin()
	wm.Tick(ctx, vec.Vec3Float{X: float64(origin.X) + 8, Y: 40, Z: float64(origin.Y) + 8})

	wood := chunk.Positions(block.WoodBlockID)[0]
	assert.False(t, wm.IsSolid(wood), "Деревья существуют только в батчах")
	assert.ErrorIs(t, wm.PlaceBlock(ctx, wood, block.StoneBlockID), ErrOccupied, "Но ставить в ствол нельзя")

	drop, err := wm.BreakBlock(ctx, wood)
	require.NoError(t, err)
	assert.Equal(t, block.WoodBlockID, drop)

	resident, ok := wm.Streamer().Chunk(chunk.Coords)
	require.True(t, ok)
	assert.NotContains(t, resident.VoxelSet(), wood)
}

func TestWorld_MetricsRegistered(t *testing.T) {
	cfg := testWorldConfig()
	cfg.RenderRadius = 1
	reg := prometheus.NewRegistry()
	wm := NewWorldManager(cfg, NewMemoryDisplay(), reg)

	for i := 0; i < 10; i++ {
		wm.Tick(context.Background(), vec.Vec3Float{})
	}
	assert.Equal(t, 9.0, testutil.ToFloat64(wm.Streamer().metrics.Resident))

	count, err := testutil.GatherAndCount(reg, "world_chunks_resident", "world_chunks_built_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	wm.Close()
	assert.Equal(t, 0, wm.Stats().Resident)
}
