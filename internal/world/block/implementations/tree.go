package implementations

import (
	"github.com/annel0/blockverse/internal/world/block"
)

// WoodBehavior – ствол дерева. Деревья появляются только при сборке чанка,
// но игрок может поставить бревно как обычный блок.
type WoodBehavior struct{}

func (b *WoodBehavior) ID() block.BlockID   { return block.WoodBlockID }
func (b *WoodBehavior) Name() string        { return "Wood" }
func (b *WoodBehavior) MiningTime() float64 { return 0.2 }
func (b *WoodBehavior) Drop() block.BlockID { return block.WoodBlockID }
func (b *WoodBehavior) Placeable() bool     { return true }

// LeavesBehavior – листва; при разрушении ничего не выпадает
type LeavesBehavior struct{}

func (b *LeavesBehavior) ID() block.BlockID   { return block.LeavesBlockID }
func (b *LeavesBehavior) Name() string        { return "Leaves" }
func (b *LeavesBehavior) MiningTime() float64 { return 0.05 }
func (b *LeavesBehavior) Drop() block.BlockID { return block.AirBlockID }
func (b *LeavesBehavior) Placeable() bool     { return true }

// PlanksBehavior – доски
type PlanksBehavior struct{}

func (b *PlanksBehavior) ID() block.BlockID   { return block.PlanksBlockID }
func (b *PlanksBehavior) Name() string        { return "Planks" }
func (b *PlanksBehavior) MiningTime() float64 { return 0.2 }
func (b *PlanksBehavior) Drop() block.BlockID { return block.PlanksBlockID }
func (b *PlanksBehavior) Placeable() bool     { return true }
