package api

import (
	"fmt"
	"image/png"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world"
)

// Ограничения миникарты, чтобы один запрос не считал миллионы колонок
const (
	defaultMinimapRadius = 64
	defaultMinimapStep   = 2
	maxMinimapCells      = 256
)

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SurfaceResponse — ответ /api/surface
type SurfaceResponse struct {
	X      int    `json:"x"`
	Z      int    `json:"z"`
	Height int    `json:"height"`
	Biome  string `json:"biome"`
	Tile   string `json:"tile"`
}

// BlockResponse — ответ /api/block
type BlockResponse struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Z      int    `json:"z"`
	Block  string `json:"block"`
	ID     uint16 `json:"id"`
	Solid  bool   `json:"solid"`
	Edited bool   `json:"edited"`
}

// ChunksResponse — ответ /api/chunks
type ChunksResponse struct {
	Seed      int64                `json:"seed"`
	Edits     int                  `json:"edits"`
	Streaming world.StreamingStats `json:"streaming"`
	Resident  []vec.Vec2           `json:"resident"`
}

// intQuery читает обязательный целочисленный параметр запроса
func intQuery(c *gin.Context, name string) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("параметр %s обязателен", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("параметр %s должен быть целым: %q", name, raw)
	}
	return v, nil
}

// intQueryDefault читает необязательный целочисленный параметр
func intQueryDefault(c *gin.Context, name string, def int) (int, error) {
	if _, ok := c.GetQuery(name); !ok {
		return def, nil
	}
	return intQuery(c, name)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, GenericResponse{
		Success: false,
		Message: err.Error(),
	})
}

// handleHealth обрабатывает проверку состояния
func (rs *RestServer) handleHealth(c *gin.Context) {
	rs.locker.Lock()
	seed := rs.world.Seed()
	rs.locker.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"seed":   seed,
		"uptime": rs.metrics.GetUptime(),
	})
}

// handleSurface возвращает высоту, биом и клетку миникарты колонки
func (rs *RestServer) handleSurface(c *gin.Context) {
	x, err := intQuery(c, "x")
	if err != nil {
		badRequest(c, err)
		return
	}
	z, err := intQuery(c, "z")
	if err != nil {
		badRequest(c, err)
		return
	}

	rs.locker.Lock()
	resp := SurfaceResponse{
		X:      x,
		Z:      z,
		Height: rs.world.SurfaceHeight(x, z),
		Biome:  rs.world.BiomeAt(x, z).String(),
		Tile:   rs.world.MinimapTile(x, z).String(),
	}
	rs.locker.Unlock()

	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "ok", Data: resp})
}

// handleBlock возвращает действующий блок в координате
func (rs *RestServer) handleBlock(c *gin.Context) {
	var coords [3]int
	for i, name := range []string{"x", "y", "z"} {
		v, err := intQuery(c, name)
		if err != nil {
			badRequest(c, err)
			return
		}
		coords[i] = v
	}
	pos := vec.Vec3{X: coords[0], Y: coords[1], Z: coords[2]}

	rs.locker.Lock()
	id := rs.world.BlockAt(pos)
	resp := BlockResponse{
		X:      pos.X,
		Y:      pos.Y,
		Z:      pos.Z,
		Block:  id.String(),
		ID:     uint16(id),
		Solid:  rs.world.IsSolid(pos),
		Edited: rs.world.Resolver().HasEdit(pos),
	}
	rs.locker.Unlock()

	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "ok", Data: resp})
}

// handleChunks возвращает состояние стриминга
func (rs *RestServer) handleChunks(c *gin.Context) {
	rs.locker.Lock()
	resp := ChunksResponse{
		Seed:      rs.world.Seed(),
		Edits:     rs.world.EditCount(),
		Streaming: rs.world.Stats(),
		Resident:  rs.world.Streamer().Resident(),
	}
	rs.locker.Unlock()

	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "ok", Data: resp})
}

// handleStats возвращает статистику процесса
func (rs *RestServer) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика процесса",
		Data:    rs.metrics.Snapshot(),
	})
}

// handleMinimap отдаёт PNG миникарты вокруг (x, z)
func (rs *RestServer) handleMinimap(c *gin.Context) {
	x, err := intQueryDefault(c, "x", 0)
	if err != nil {
		badRequest(c, err)
		return
	}
	z, err := intQueryDefault(c, "z", 0)
	if err != nil {
		badRequest(c, err)
		return
	}
	radius, err := intQueryDefault(c, "radius", defaultMinimapRadius)
	if err != nil {
		badRequest(c, err)
		return
	}
	step, err := intQueryDefault(c, "step", defaultMinimapStep)
	if err != nil {
		badRequest(c, err)
		return
	}
	if radius < 0 || step < 1 {
		badRequest(c, fmt.Errorf("radius должен быть >= 0, step >= 1"))
		return
	}
	if radius/step > maxMinimapCells {
		badRequest(c, fmt.Errorf("слишком большая миникарта: radius/step > %d", maxMinimapCells))
		return
	}

	rs.locker.Lock()
	img := world.RenderMinimap(rs.world, vec.Vec2{X: x, Y: z}, radius, step)
	rs.locker.Unlock()

	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := png.Encode(c.Writer, img); err != nil {
		rs.logger.Error("❌ Ошибка кодирования миникарты: %v", err)
	}
}
