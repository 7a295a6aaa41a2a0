package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StreamMetrics — метрики стриминга чанков.
//
// Метрики:
// * world_chunks_resident — gauge
// * world_chunks_pending — gauge (длина очереди сборки)
// * world_render_batches_attached — gauge
// * world_chunks_built_total, world_chunks_evicted_total, world_chunks_dropped_total — counters
// * world_chunk_rebuilds_total — counter (синхронные пересборки после правок)
// * world_chunk_build_seconds — histogram
type StreamMetrics struct {
	Resident        prometheus.Gauge
	Pending         prometheus.Gauge
	BatchesAttached prometheus.Gauge
	Built           prometheus.Counter
	Evicted         prometheus.Counter
	Dropped         prometheus.Counter
	Rebuilds        prometheus.Counter
	BuildSeconds    prometheus.Histogram
}

// NewStreamMetrics создаёт метрики и регистрирует их в reg.
// При reg == nil метрики работают, но нигде не зарегистрированы (удобно для тестов).
func NewStreamMetrics(reg prometheus.Registerer) *StreamMetrics {
	m := &StreamMetrics{
		Resident: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "chunks_resident",
			Help:      "Количество чанков, прикреплённых к сцене.",
		}),
		Pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "chunks_pending",
			Help:      "Длина очереди чанков, ожидающих сборки.",
		}),
		BatchesAttached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "render_batches_attached",
			Help:      "Количество батчей, прикреплённых к сцене.",
		}),
		Built: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "chunks_built_total",
			Help:      "Общее число собранных чанков.",
		}),
		Evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "chunks_evicted_total",
			Help:      "Общее число выгруженных чанков.",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "chunks_dropped_total",
			Help:      "Чанки, снятые с очереди без сборки (вышли из радиуса).",
		}),
		Rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "chunk_rebuilds_total",
			Help:      "Синхронные пересборки чанков после правок.",
		}),
		BuildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "world",
			Name:      "chunk_build_seconds",
			Help:      "Длительность сборки одного чанка.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Resident, m.Pending, m.BatchesAttached,
			m.Built, m.Evicted, m.Dropped, m.Rebuilds, m.BuildSeconds)
	}
	return m
}
