package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/middleware"
	"github.com/annel0/blockverse/internal/world"
)

// RestServer — отладочный HTTP API мира (только чтение)
type RestServer struct {
	router     *gin.Engine
	world      *world.WorldManager
	locker     sync.Locker
	addr       string
	metrics    *ServerMetrics
	httpServer *http.Server
	listener   net.Listener
	logger     *logging.Logger
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Addr     string               // адрес для запуска сервера
	World    *world.WorldManager  // мир, к которому выполняются запросы
	Locker   sync.Locker          // общий с циклом тиков замок; ядро мира без блокировок
	Registry *prometheus.Registry // регистр для /metrics; nil — дефолтный
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Addr == "" {
		config.Addr = ":8090"
	}
	if config.Locker == nil {
		config.Locker = &sync.Mutex{}
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	logger := logging.GetAPILogger()

	// === Observability middleware ===
	otelRouter := otelgin.Middleware("debug_api")
	router.Use(otelRouter)

	loggerMw := middleware.NewRequestLogger(logger)
	router.Use(loggerMw.Handler())

	var (
		registerer prometheus.Registerer
		gatherer   prometheus.Gatherer
	)
	if config.Registry != nil {
		registerer, gatherer = config.Registry, config.Registry
	}
	promMw := middleware.NewPrometheusMiddleware("debug_api", registerer)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, gatherer)

	server := &RestServer{
		router:  router,
		world:   config.World,
		locker:  config.Locker,
		addr:    config.Addr,
		metrics: NewServerMetrics(),
		logger:  logger,
	}

	// Настраиваем маршруты
	server.setupRoutes()

	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	api := rs.router.Group("/api")
	{
		api.GET("/surface", rs.handleSurface)
		api.GET("/block", rs.handleBlock)
		api.GET("/chunks", rs.handleChunks)
		api.GET("/stats", rs.handleStats)
		api.GET("/minimap.png", rs.handleMinimap)
	}

	// Health check
	rs.router.GET("/health", rs.handleHealth)
}

// Handler возвращает http.Handler сервера (для тестов и встраивания)
func (rs *RestServer) Handler() http.Handler {
	return rs.router
}

// Start занимает порт и запускает HTTP сервер в отдельной горутине.
// Ошибка привязки к адресу возвращается сразу.
func (rs *RestServer) Start() error {
	ln, err := net.Listen("tcp", rs.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", rs.addr, err)
	}
	rs.listener = ln

	rs.httpServer = &http.Server{
		Handler:           rs.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := rs.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rs.logger.Error("❌ Ошибка отладочного API: %v", err)
		}
	}()

	rs.logger.Info("✅ Отладочный API запущен на http://%s", ln.Addr())
	rs.logger.Info("📋 Доступные эндпоинты:")
	rs.logger.Info("   GET  /health              - Проверка состояния")
	rs.logger.Info("   GET  /api/surface?x=&z=   - Высота, биом, клетка миникарты")
	rs.logger.Info("   GET  /api/block?x=&y=&z=  - Блок и твёрдость")
	rs.logger.Info("   GET  /api/chunks          - Состояние стриминга")
	rs.logger.Info("   GET  /api/stats           - CPU и память процесса")
	rs.logger.Info("   GET  /api/minimap.png     - Миникарта")
	rs.logger.Info("   GET  /metrics             - Prometheus")
	return nil
}

// Addr возвращает фактический адрес сервера (после Start) или настроенный
func (rs *RestServer) Addr() string {
	if rs.listener != nil {
		return rs.listener.Addr().String()
	}
	return rs.addr
}

// Stop останавливает HTTP сервер
func (rs *RestServer) Stop(ctx context.Context) error {
	if rs.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := rs.httpServer.Shutdown(ctx); err != nil {
		rs.logger.Error("❌ Ошибка при остановке HTTP сервера: %v", err)
		return err
	}
	rs.logger.Info("🛑 Отладочный API остановлен")
	return nil
}
