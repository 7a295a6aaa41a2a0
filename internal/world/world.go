package world

import (
	"context"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	_ "github.com/annel0/blockverse/internal/world/block/implementations" // регистрация поведений блоков
)

// WorldManager — фасад мира: запросы для физики, ИИ и миникарты,
// правки игрока и тик стриминга. Состояние мира принадлежит экземпляру,
// глобальных карт нет. Методы не потокобезопасны.
type WorldManager struct {
	cfg       config.WorldConfig
	generator *WorldGenerator
	resolver  *Resolver
	builder   *Builder
	streamer  *StreamingManager
	logger    *logging.Logger
}

// NewWorldManager создаёт мир. reg может быть nil — тогда метрики не регистрируются.
func NewWorldManager(cfg config.WorldConfig, display Display, reg prometheus.Registerer) *WorldManager {
	generator := NewWorldGenerator(cfg)
	resolver := NewResolver(generator)
	builder := NewBuilder(resolver, NewUnitCube(), cfg.RenderDepth, cfg.TreeDensity)
	streamer := NewStreamingManager(builder, display, NewStreamMetrics(reg), StreamingConfig{
		RenderRadius:  cfg.RenderRadius,
		EvictMargin:   cfg.EvictMargin,
		BuildsPerTick: cfg.BuildsPerTick,
		SettleTicks:   cfg.SettleTicks,
	})

	wm := &WorldManager{
		cfg:       cfg,
		generator: generator,
		resolver:  resolver,
		builder:   builder,
		streamer:  streamer,
		logger:    logging.GetWorldLogger(),
	}
	wm.logger.Info("🌍 Мир создан: seed=%d, радиус=%d, запас=%d, глубина=%d",
		generator.Seed(), cfg.RenderRadius, cfg.EvictMargin, cfg.RenderDepth)
	return wm
}

// Seed возвращает сид мира
func (wm *WorldManager) Seed() int64 { return wm.generator.Seed() }

// Resolver возвращает резолвер блоков
func (wm *WorldManager) Resolver() *Resolver { return wm.resolver }

// Streamer возвращает менеджер стриминга
func (wm *WorldManager) Streamer() *StreamingManager { return wm.streamer }

// Builder возвращает сборщик чанков
func (wm *WorldManager) Builder() *Builder { return wm.builder }

// SurfaceHeight возвращает процедурную высоту поверхности; чанк не нужен
func (wm *WorldManager) SurfaceHeight(x, z int) int {
	return wm.resolver.SurfaceHeight(x, z)
}

// GroundHeight — высота поверхности под точкой с дробными координатами (для мобов)
func (wm *WorldManager) GroundHeight(x, z float64) int {
	return wm.resolver.SurfaceHeight(int(math.Floor(x)), int(math.Floor(z)))
}

// BiomeAt возвращает биом колонки
func (wm *WorldManager) BiomeAt(x, z int) Biome {
	return wm.resolver.BiomeAt(x, z)
}

// BlockAt возвращает действующий блок в координате
func (wm *WorldManager) BlockAt(pos vec.Vec3) block.BlockID {
	return wm.resolver.BlockAt(pos)
}

// IsSolid сообщает, занят ли воксель
func (wm *WorldManager) IsSolid(pos vec.Vec3) bool {
	return wm.resolver.IsSolid(pos)
}

// GetBlock — то же, что BlockAt; точка входа для механики добычи/установки
func (wm *WorldManager) GetBlock(pos vec.Vec3) block.BlockID {
	return wm.resolver.BlockAt(pos)
}

// SetBlock записывает правку и синхронно пересобирает затронутые чанки
func (wm *WorldManager) SetBlock(ctx context.Context, pos vec.Vec3, id block.BlockID) error {
	if pos.Y < wm.resolver.WorldFloor() || pos.Y > wm.resolver.WorldCeiling() {
		wm.logger.Warn("⚠️ Правка %v вне мира [%d,%d]", pos, wm.resolver.WorldFloor(), wm.resolver.WorldCeiling())
		return fmt.Errorf("set block at %v: %w", pos, ErrOutOfWorld)
	}
	if !block.IsValidBlockID(id) {
		wm.logger.Warn("⚠️ Неизвестный блок %d в %v", id, pos)
		return fmt.Errorf("set block %d at %v: %w", id, pos, ErrUnknownBlock)
	}

	wm.resolver.Record(pos, id)
	rebuilt := wm.streamer.NotifyEdit(ctx, pos)
	wm.logger.Debug("✏️ %v <- %s, пересобрано чанков: %d", pos, id, len(rebuilt))
	return nil
}

// renderedAt учитывает деревья, которые есть только в батчах
func (wm *WorldManager) renderedAt(pos vec.Vec3) block.BlockID {
	if kind := wm.resolver.BlockAt(pos); kind != block.AirBlockID {
		return kind
	}
	if wm.resolver.HasEdit(pos) {
		return block.AirBlockID
	}
	return wm.builder.TreeAt(pos)
}

// BreakBlock ломает блок и возвращает выпавший блок.
// Пустой воксель ломать нечего: возвращается AirBlockID без ошибки.
func (wm *WorldManager) BreakBlock(ctx context.Context, pos vec.Vec3) (block.BlockID, error) {
	kind := wm.renderedAt(pos)
	if kind == block.AirBlockID {
		return block.AirBlockID, nil
	}
	if !block.Breakable(kind) {
		wm.logger.Warn("⚠️ Попытка сломать %s в %v", kind, pos)
		return block.AirBlockID, fmt.Errorf("break %s at %v: %w", kind, pos, ErrUnbreakable)
	}

	if err := wm.SetBlock(ctx, pos, block.AirBlockID); err != nil {
		return block.AirBlockID, err
	}
	return block.DropOf(kind), nil
}

// PlaceBlock ставит блок в пустой воксель
func (wm *WorldManager) PlaceBlock(ctx context.Context, pos vec.Vec3, id block.BlockID) error {
	switch {
	case id == block.AirBlockID:
		return fmt.Errorf("place at %v: %w", pos, ErrAirPlacement)
	case !block.IsValidBlockID(id):
		return fmt.Errorf("place %d at %v: %w", id, pos, ErrUnknownBlock)
	case !block.Placeable(id):
		return fmt.Errorf("place %s at %v: %w", id, pos, ErrNotPlaceable)
	}

	if occupant := wm.renderedAt(pos); occupant != block.AirBlockID {
		wm.logger.Warn("⚠️ Воксель %v занят блоком %s", pos, occupant)
		return fmt.Errorf("place %s at %v (occupied by %s): %w", id, pos, occupant, ErrOccupied)
	}
	return wm.SetBlock(ctx, pos, id)
}

// Tick выполняет шаг стриминга для позиции наблюдателя
func (wm *WorldManager) Tick(ctx context.Context, position vec.Vec3Float) TickReport {
	return wm.streamer.Tick(ctx, position)
}

// Stats возвращает состояние стриминга
func (wm *WorldManager) Stats() StreamingStats {
	return wm.streamer.Stats()
}

// EditCount возвращает число правок в оверлее
func (wm *WorldManager) EditCount() int {
	return wm.resolver.EditCount()
}

// Close выгружает все чанки
func (wm *WorldManager) Close() {
	wm.streamer.Close()
	wm.logger.Info("🌍 Мир закрыт, правок за сессию: %d", wm.resolver.EditCount())
}
