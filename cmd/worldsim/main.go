package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/annel0/blockverse/internal/api"
	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/observability"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world"
)

func main() {
	configPath := flag.String("config", "", "Путь к YAML конфигу (или BLOCKVERSE_CONFIG)")
	logLevel := flag.String("log-level", "", "Уровень консоли: trace, debug, info, warn, error")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("worldsim"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer func() { _ = logging.GetLoggerManager().CloseAll() }()
	if *logLevel != "" {
		logging.GetLoggerManager().SetConsoleLevel(logging.ParseLevel(*logLevel))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфига: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		logging.Warn("⚠️ Телеметрия недоступна: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	// === МИР ===
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	display := world.NewMemoryDisplay()
	wm := world.NewWorldManager(cfg.World, display, registry)

	spawnHeight := wm.SurfaceHeight(0, 0)
	w := newWalker(vec.Vec3Float{X: 0.5, Y: float64(spawnHeight + 2), Z: 0.5})
	logging.Info("🚶 Путник появился в %v (поверхность %d, биом %s)", w.pos, spawnHeight, wm.BiomeAt(0, 0))

	// Один замок на мир: тик и HTTP обработчики не работают одновременно
	var mu sync.Mutex

	server := api.NewRestServer(api.Config{
		Addr:     cfg.Debug.GetAddr(),
		World:    wm,
		Locker:   &mu,
		Registry: registry,
	})
	if err := server.Start(); err != nil {
		log.Fatalf("❌ Ошибка запуска отладочного API: %v", err)
	}

	// === ЦИКЛ ТИКОВ ===
	dt := 1.0 / float64(cfg.Debug.TickRate)
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Debug.TickRate))
	defer ticker.Stop()

	var frames uint64
	logging.Info("✅ Симуляция запущена: %d тиков/с, скорость %.1f блоков/с", cfg.Debug.TickRate, cfg.Debug.WalkSpeed)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
		}

		mu.Lock()
		w.advance(wm, cfg.Debug.WalkSpeed, dt, cfg.Debug.TickRate)
		report := wm.Tick(ctx, w.pos)
		mu.Unlock()

		frames++
		if report.Evicted > 0 || report.Dropped > 0 {
			logging.Debug("🧭 Тик %d: опора %v, собрано %d, снято %d, выгружено %d",
				frames, report.Reference, report.Built, report.Dropped, report.Evicted)
		}
		if frames%uint64(cfg.Debug.TickRate*10) == 0 {
			stats := wm.Stats()
			logging.Info("📊 Позиция %.1f/%.1f/%.1f, загружено %d, в очереди %d, батчей %d",
				w.pos.X, w.pos.Y, w.pos.Z, stats.Resident, stats.Pending, display.Attached())
		}
	}

	// === GRACEFUL SHUTDOWN ===
	logging.Info("📡 Получен сигнал завершения, останавливаемся...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки отладочного API: %v", err)
	}

	mu.Lock()
	wm.Close()
	mu.Unlock()

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки телеметрии: %v", err)
	}

	logging.Info("👋 Симуляция остановлена")
}
