package world

import (
	"container/heap"
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/vec"
)

// StreamingConfig параметры стриминга (в чанках)
type StreamingConfig struct {
	RenderRadius  int
	EvictMargin   int
	BuildsPerTick int
	// SettleTicks — сколько тиков опорный чанк должен стоять на месте,
	// чтобы запас выгрузки перестал действовать
	SettleTicks   int
}

// TickReport — итог одного тика стриминга
type TickReport struct {
	Reference vec.Vec2
	Enqueued  int
	Built     int
	Dropped   int
	Evicted   int
}

// StreamingStats — снимок состояния стриминга
type StreamingStats struct {
	Reference       vec.Vec2 `json:"reference"`
	Resident        int      `json:"resident"`
	Pending         int      `json:"pending"`
	AttachedBatches int      `json:"attached_batches"`
	Ticks           uint64   `json:"ticks"`
	Built           uint64   `json:"built"`
	Evicted         uint64   `json:"evicted"`
	Dropped         uint64   `json:"dropped"`
	Rebuilds        uint64   `json:"rebuilds"`
}

// StreamingManager держит загруженными чанки вокруг опорной точки.
// Однопоточный: все методы вызываются из цикла тиков. Сборка чанка не
// имеет побочных эффектов кроме записи в новый Chunk, поэтому её можно
// вынести в воркеры, не меняя этот тип.
type StreamingManager struct {
	builder *Builder
	display Display
	metrics *StreamMetrics
	logger  *logging.Logger
	tracer  trace.Tracer

	radius int
	margin int
	budget int
	settle int

	resident map[vec.Vec2]*Chunk
	queued   map[vec.Vec2]*queueItem
	queue    chunkQueue

	reference    vec.Vec2
	hasReference bool
	stationary   int
	seq          uint64
	attached     int

	ticks    uint64
	built    uint64
	evicted  uint64
	dropped  uint64
	rebuilds uint64
}

// NewStreamingManager создаёт менеджер стриминга
func NewStreamingManager(builder *Builder, display Display, metrics *StreamMetrics, cfg StreamingConfig) *StreamingManager {
	if metrics == nil {
		metrics = NewStreamMetrics(nil)
	}
	if cfg.BuildsPerTick < 1 {
		cfg.BuildsPerTick = 1
	}
	if cfg.RenderRadius < 0 {
		cfg.RenderRadius = 0
	}
	if cfg.EvictMargin < 0 {
		cfg.EvictMargin = 0
	}
	if cfg.SettleTicks < 1 {
		cfg.SettleTicks = 1
	}

	return &StreamingManager{
		builder:  builder,
		display:  display,
		metrics:  metrics,
		logger:   logging.GetStreamingLogger(),
		tracer:   otel.Tracer("blockverse/world"),
		radius:   cfg.RenderRadius,
		margin:   cfg.EvictMargin,
		budget:   cfg.BuildsPerTick,
		settle:   cfg.SettleTicks,
		resident: make(map[vec.Vec2]*Chunk),
		queued:   make(map[vec.Vec2]*queueItem),
	}
}

// desired сообщает, входит ли чанк в желаемое множество
func (s *StreamingManager) desired(c vec.Vec2) bool {
	return s.hasReference && c.ChebyshevTo(s.reference) <= s.radius
}

// Tick выполняет один шаг стриминга для опорной позиции.
func (s *StreamingManager) Tick(ctx context.Context, position vec.Vec3Float) TickReport {
	ctx, span := s.tracer.Start(ctx, "world.StreamingManager.Tick")
	defer span.End()

	s.ticks++
	rc := position.ChunkCoords()
	if !s.hasReference || rc != s.reference {
		if s.hasReference {
			s.logger.Debug("🧭 Опорный чанк %v -> %v", s.reference, rc)
		}
		s.reference = rc
		s.hasReference = true
		s.stationary = 0
		s.queue.reprioritize(rc)
	} else {
		s.stationary++
	}
	report := TickReport{Reference: rc}

	// 1-2. Желаемое множество и постановка недостающих в очередь
	for dx := -s.radius; dx <= s.radius; dx++ {
		for dz := -s.radius; dz <= s.radius; dz++ {
			c := vec.Vec2{X: rc.X + dx, Y: rc.Y + dz}
			if _, ok := s.resident[c]; ok {
				continue
			}
			if _, ok := s.queued[c]; ok {
				continue
			}
			s.enqueue(c)
			report.Enqueued++
		}
	}

	// 3. Не больше budget сборок за тик; устаревшие запросы снимаются без сборки
	for report.Built < s.budget && s.queue.Len() > 0 {
		item := heap.Pop(&s.queue).(*queueItem)
		delete(s.queued, item.coords)

		if !s.desired(item.coords) {
			report.Dropped++
			s.dropped++
			s.metrics.Dropped.Inc()
			s.logger.Debug("🗑️ Чанк %v снят с очереди без сборки", item.coords)
			continue
		}

		s.install(s.build(ctx, item.coords))
		report.Built++
	}

	// 4. Выгрузка с гистерезисом: пока опора движется, держим запас;
	// когда она простояла settle тиков, множество сжимается до радиуса
	limit := s.evictLimit()
	for _, c := range s.sortedResident() {
		if c.ChebyshevTo(rc) > limit {
			s.evict(c)
			report.Evicted++
		}
	}

	s.metrics.Pending.Set(float64(s.queue.Len()))
	span.SetAttributes(
		attribute.Int("reference.x", rc.X),
		attribute.Int("reference.z", rc.Y),
		attribute.Int("built", report.Built),
		attribute.Int("dropped", report.Dropped),
		attribute.Int("evicted", report.Evicted),
	)
	return report
}

// NotifyEdit синхронно пересобирает чанк правки и соседей по ребру.
// Возвращает координаты пересобранных чанков.
func (s *StreamingManager) NotifyEdit(ctx context.Context, pos vec.Vec3) []vec.Vec2 {
	ctx, span := s.tracer.Start(ctx, "world.StreamingManager.NotifyEdit")
	defer span.End()

	rebuilt := make([]vec.Vec2, 0, 3)
	for _, c := range EdgeAffectedChunks(pos) {
		if s.rebuild(ctx, c) {
			rebuilt = append(rebuilt, c)
		}
	}

	span.SetAttributes(attribute.Int("rebuilt", len(rebuilt)))
	return rebuilt
}

// evictLimit возвращает расстояние, дальше которого чанки выгружаются
func (s *StreamingManager) evictLimit() int {
	if s.stationary >= s.settle {
		return s.radius
	}
	return s.radius + s.margin
}

// EdgeAffectedChunks возвращает чанк вокселя и соседей по рёбрам, если воксель
// лежит на граничной плоскости (локальные x или z равны 0 или 15). Диагонали не затрагиваются.
func EdgeAffectedChunks(pos vec.Vec3) []vec.Vec2 {
	owner := pos.ToChunkCoords()
	local := pos.LocalInChunk()
	out := []vec.Vec2{owner}

	switch local.X {
	case 0:
		out = append(out, owner.Add(vec.Vec2{X: -1}))
	case vec.ChunkSize - 1:
		out = append(out, owner.Add(vec.Vec2{X: 1}))
	}
	switch local.Y {
	case 0:
		out = append(out, owner.Add(vec.Vec2{Y: -1}))
	case vec.ChunkSize - 1:
		out = append(out, owner.Add(vec.Vec2{Y: 1}))
	}
	return out
}

// rebuild пересобирает загруженный чанк или собирает желаемый, но ещё не загруженный
func (s *StreamingManager) rebuild(ctx context.Context, c vec.Vec2) bool {
	_, isResident := s.resident[c]
	if !isResident && !s.desired(c) {
		return false
	}

	if item, ok := s.queued[c]; ok {
		heap.Remove(&s.queue, item.index)
		delete(s.queued, c)
		s.metrics.Pending.Set(float64(s.queue.Len()))
	}

	s.install(s.build(ctx, c))
	s.rebuilds++
	s.metrics.Rebuilds.Inc()
	s.logger.Debug("🔁 Чанк %v пересобран после правки", c)
	return true
}

func (s *StreamingManager) enqueue(c vec.Vec2) {
	s.seq++
	item := &queueItem{
		coords: c,
		dist:   c.ChebyshevTo(s.reference),
		distSq: c.DistanceSqTo(s.reference),
		seq:    s.seq,
	}
	heap.Push(&s.queue, item)
	s.queued[c] = item
}

func (s *StreamingManager) build(ctx context.Context, c vec.Vec2) *Chunk {
	_, span := s.tracer.Start(ctx, "world.Builder.Build", trace.WithAttributes(
		attribute.Int("chunk.x", c.X),
		attribute.Int("chunk.z", c.Y),
	))
	defer span.End()

	start := time.Now()
	chunk := s.builder.Build(c)
	s.metrics.BuildSeconds.Observe(time.Since(start).Seconds())
	s.metrics.Built.Inc()
	s.built++

	span.SetAttributes(attribute.Int("voxels", chunk.VoxelCount), attribute.Int("batches", len(chunk.Batches)))
	return chunk
}

// install прикрепляет батчи нового чанка и заменяет им прежний
func (s *StreamingManager) install(chunk *Chunk) {
	for _, kind := range chunk.Kinds() {
		s.display.Attach(chunk.Batches[kind])
		s.attached++
	}
	chunk.State = ChunkResident
	s.swap(chunk.Coords, chunk)
	s.logger.Trace("📦 Чанк %v: %d вокселей, %d батчей", chunk.Coords, chunk.VoxelCount, len(chunk.Batches))
}

// evict выгружает чанк
func (s *StreamingManager) evict(c vec.Vec2) {
	if s.swap(c, nil) {
		s.evicted++
		s.metrics.Evicted.Inc()
		s.logger.Debug("📤 Чанк %v выгружен", c)
	}
}

// swap — единственное место, где чанк покидает карту загруженных.
// Прежний чанк открепляет все батчи и становится Evicted в том же вызове.
func (s *StreamingManager) swap(c vec.Vec2, next *Chunk) bool {
	prev, ok := s.resident[c]
	if next != nil {
		s.resident[c] = next
	} else {
		delete(s.resident, c)
	}

	if ok {
		for _, kind := range prev.Kinds() {
			s.display.Detach(prev.Batches[kind])
			s.attached--
		}
		prev.Batches = nil
		prev.State = ChunkEvicted
	}

	s.metrics.Resident.Set(float64(len(s.resident)))
	s.metrics.BatchesAttached.Set(float64(s.attached))
	return ok
}

func (s *StreamingManager) sortedResident() []vec.Vec2 {
	out := make([]vec.Vec2, 0, len(s.resident))
	for c := range s.resident {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

// Resident возвращает координаты загруженных чанков
func (s *StreamingManager) Resident() []vec.Vec2 {
	return s.sortedResident()
}

// Chunk возвращает загруженный чанк
func (s *StreamingManager) Chunk(c vec.Vec2) (*Chunk, bool) {
	chunk, ok := s.resident[c]
	return chunk, ok
}

// StateOf возвращает состояние чанка с точки зрения стриминга
func (s *StreamingManager) StateOf(c vec.Vec2) ChunkState {
	if _, ok := s.resident[c]; ok {
		return ChunkResident
	}
	if _, ok := s.queued[c]; ok {
		return ChunkQueued
	}
	return ChunkUnloaded
}

// Pending возвращает длину очереди сборки
func (s *StreamingManager) Pending() int {
	return s.queue.Len()
}

// Stats возвращает снимок счётчиков
func (s *StreamingManager) Stats() StreamingStats {
	return StreamingStats{
		Reference:       s.reference,
		Resident:        len(s.resident),
		Pending:         s.queue.Len(),
		AttachedBatches: s.attached,
		Ticks:           s.ticks,
		Built:           s.built,
		Evicted:         s.evicted,
		Dropped:         s.dropped,
		Rebuilds:        s.rebuilds,
	}
}

// Close выгружает все чанки и очищает очередь
func (s *StreamingManager) Close() {
	for _, c := range s.sortedResident() {
		s.evict(c)
	}
	s.queue = s.queue[:0]
	s.queued = make(map[vec.Vec2]*queueItem)
	s.metrics.Pending.Set(0)
	s.logger.Info("🛑 Стриминг остановлен")
}
