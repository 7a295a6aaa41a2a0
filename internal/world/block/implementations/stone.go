package implementations

import (
	"math"

	"github.com/annel0/blockverse/internal/world/block"
)

// StoneBehavior реализует поведение блока камня
type StoneBehavior struct{}

// ID возвращает идентификатор блока
func (b *StoneBehavior) ID() block.BlockID {
	return block.StoneBlockID
}

// Name возвращает имя блока
func (b *StoneBehavior) Name() string {
	return "Stone"
}

// MiningTime возвращает время добычи камня
func (b *StoneBehavior) MiningTime() float64 {
	return 0.4
}

// Drop — булыжник в мире не хранится, камень выпадает камнем
func (b *StoneBehavior) Drop() block.BlockID {
	return block.StoneBlockID
}

// Placeable возвращает true
func (b *StoneBehavior) Placeable() bool {
	return true
}

// OreBehavior описывает рудные блоки, заменяющие камень на глубине
type OreBehavior struct {
	id         block.BlockID
	name       string
	miningTime float64
}

func (b *OreBehavior) ID() block.BlockID   { return b.id }
func (b *OreBehavior) Name() string        { return b.name }
func (b *OreBehavior) MiningTime() float64 { return b.miningTime }
func (b *OreBehavior) Drop() block.BlockID { return b.id }
func (b *OreBehavior) Placeable() bool     { return true }

// BedrockBehavior — неразрушаемое дно мира
type BedrockBehavior struct{}

func (b *BedrockBehavior) ID() block.BlockID   { return block.BedrockBlockID }
func (b *BedrockBehavior) Name() string        { return "Bedrock" }
func (b *BedrockBehavior) MiningTime() float64 { return math.Inf(1) }
func (b *BedrockBehavior) Drop() block.BlockID { return block.AirBlockID }
func (b *BedrockBehavior) Placeable() bool     { return false }
