package implementations

import (
	"math"

	"github.com/annel0/blockverse/internal/world/block"
)

// AirBehavior реализует "пустой" блок.
// Воздух нельзя добыть или поставить: запись воздуха в оверлей означает разрушение.
type AirBehavior struct{}

func (b *AirBehavior) ID() block.BlockID   { return block.AirBlockID }
func (b *AirBehavior) Name() string        { return "Air" }
func (b *AirBehavior) MiningTime() float64 { return math.Inf(1) }
func (b *AirBehavior) Drop() block.BlockID { return block.AirBlockID }
func (b *AirBehavior) Placeable() bool     { return false }
