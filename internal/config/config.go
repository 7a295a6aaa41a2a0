package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig возвращается Validate при невозможных значениях
var ErrInvalidConfig = errors.New("invalid config")

// Config корневая структура конфигурации приложения.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Debug     DebugConfig     `yaml:"debug"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WorldConfig параметры генерации и стриминга мира.
// Радиусы и отступы измеряются в чанках, высоты и глубины — в блоках.
type WorldConfig struct {
	Seed          int64   `yaml:"seed"`
	RenderRadius  int     `yaml:"render_radius"`
	EvictMargin   int     `yaml:"evict_margin"`
	BuildsPerTick int     `yaml:"builds_per_tick"`
	SettleTicks   int     `yaml:"settle_ticks"`
	RenderDepth   int     `yaml:"render_depth"`
	DirtDepth     int     `yaml:"dirt_depth"`
	WorldFloor    int     `yaml:"world_floor"`
	WorldCeiling  int     `yaml:"world_ceiling"`
	MinHeight     int     `yaml:"min_height"`
	MaxHeight     int     `yaml:"max_height"`
	TreeDensity   float64 `yaml:"tree_density"`
}

// DebugConfig параметры headless-драйвера и отладочного HTTP API
type DebugConfig struct {
	Addr      string  `yaml:"addr"`
	TickRate  int     `yaml:"tick_rate"`
	WalkSpeed float64 `yaml:"walk_speed"`
}

// TelemetryConfig параметры OpenTelemetry
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Значения по умолчанию
const (
	DefaultSeed      int64 = 20240601
	DefaultDebugAddr       = ":8090"
)

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			RenderRadius:  3,
			EvictMargin:   1,
			BuildsPerTick: 1,
			SettleTicks:   60,
			RenderDepth:   24,
			DirtDepth:     3,
			WorldFloor:    -64,
			WorldCeiling:  256,
			MinHeight:     -24,
			MaxHeight:     96,
			TreeDensity:   0.02,
		},
		Debug: DebugConfig{
			TickRate:  60,
			WalkSpeed: 4.0,
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "blockverse-world",
		},
	}
}

// GetSeed возвращает сид с приоритетом: config -> env -> default
func (w *WorldConfig) GetSeed() int64 {
	if w.Seed != 0 {
		return w.Seed
	}

	if envVal := os.Getenv("BLOCKVERSE_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil && seed != 0 {
			return seed
		}
	}

	return DefaultSeed
}

// GetAddr возвращает адрес отладочного HTTP API с приоритетом: config -> env -> default
func (d *DebugConfig) GetAddr() string {
	if d.Addr != "" {
		return d.Addr
	}
	if envVal := os.Getenv("BLOCKVERSE_DEBUG_ADDR"); envVal != "" {
		return envVal
	}
	return DefaultDebugAddr
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	w := c.World
	switch {
	case w.RenderRadius < 0:
		return fmt.Errorf("%w: render_radius=%d < 0", ErrInvalidConfig, w.RenderRadius)
	case w.EvictMargin < 0:
		return fmt.Errorf("%w: evict_margin=%d < 0", ErrInvalidConfig, w.EvictMargin)
	case w.BuildsPerTick < 1:
		return fmt.Errorf("%w: builds_per_tick=%d < 1", ErrInvalidConfig, w.BuildsPerTick)
	case w.SettleTicks < 1:
		return fmt.Errorf("%w: settle_ticks=%d < 1", ErrInvalidConfig, w.SettleTicks)
	case w.RenderDepth < 1:
		return fmt.Errorf("%w: render_depth=%d < 1", ErrInvalidConfig, w.RenderDepth)
	case w.DirtDepth < 0:
		return fmt.Errorf("%w: dirt_depth=%d < 0", ErrInvalidConfig, w.DirtDepth)
	case w.WorldFloor >= w.WorldCeiling:
		return fmt.Errorf("%w: world_floor=%d >= world_ceiling=%d", ErrInvalidConfig, w.WorldFloor, w.WorldCeiling)
	case w.MinHeight > w.MaxHeight:
		return fmt.Errorf("%w: min_height=%d > max_height=%d", ErrInvalidConfig, w.MinHeight, w.MaxHeight)
	case w.MinHeight <= w.WorldFloor || w.MaxHeight >= w.WorldCeiling:
		return fmt.Errorf("%w: height band [%d,%d] must lie strictly inside (%d,%d)",
			ErrInvalidConfig, w.MinHeight, w.MaxHeight, w.WorldFloor, w.WorldCeiling)
	case w.TreeDensity < 0 || w.TreeDensity > 1:
		return fmt.Errorf("%w: tree_density=%v outside [0,1]", ErrInvalidConfig, w.TreeDensity)
	case c.Debug.TickRate < 1:
		return fmt.Errorf("%w: tick_rate=%d < 1", ErrInvalidConfig, c.Debug.TickRate)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV BLOCKVERSE_CONFIG, иначе возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("BLOCKVERSE_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан — используем дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфига %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфига %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
