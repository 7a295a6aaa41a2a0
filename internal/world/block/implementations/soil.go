package implementations

import (
	"github.com/annel0/blockverse/internal/world/block"
)

// SoilBehavior описывает мягкие поверхностные блоки (трава, земля, песок, снег)
type SoilBehavior struct {
	id   block.BlockID
	name string
	drop block.BlockID
}

// ID возвращает идентификатор блока
func (b *SoilBehavior) ID() block.BlockID {
	return b.id
}

// Name возвращает имя блока
func (b *SoilBehavior) Name() string {
	return b.name
}

// MiningTime — мягкие блоки копаются рукой почти мгновенно
func (b *SoilBehavior) MiningTime() float64 {
	return 0.1
}

// Drop возвращает выпадающий блок (трава превращается в землю)
func (b *SoilBehavior) Drop() block.BlockID {
	return b.drop
}

// Placeable — все почвенные блоки можно ставить
func (b *SoilBehavior) Placeable() bool {
	return true
}

// NewGrass создаёт поведение травы
func NewGrass() *SoilBehavior {
	return &SoilBehavior{id: block.GrassBlockID, name: "Grass", drop: block.DirtBlockID}
}

// NewDirt создаёт поведение земли
func NewDirt() *SoilBehavior {
	return &SoilBehavior{id: block.DirtBlockID, name: "Dirt", drop: block.DirtBlockID}
}

// NewSand создаёт поведение песка
func NewSand() *SoilBehavior {
	return &SoilBehavior{id: block.SandBlockID, name: "Sand", drop: block.SandBlockID}
}

// NewSnow создаёт поведение снега; снег при разрушении ничего не оставляет
func NewSnow() *SoilBehavior {
	return &SoilBehavior{id: block.SnowBlockID, name: "Snow", drop: block.AirBlockID}
}
